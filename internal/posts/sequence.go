package posts

import (
	"time"

	"xsched/internal/schedule"
	"xsched/pkg/logx"
)

// Sequence assigns each post an absolute publish time.
//
// A running default starts at first and advances by every after each post
// that uses it. A post with an override schedule borrows a slot without
// touching the cadence: the default does not advance for it, so the next
// default-scheduled post keeps its expected time. An override that fails to
// parse falls back to the current default (warned, non-fatal) and likewise
// does not advance it.
func Sequence(list []Post, first time.Time, every time.Duration, log logx.Logger) []Scheduled {
	out := make([]Scheduled, 0, len(list))
	next := first

	for _, p := range list {
		at := next
		if p.ScheduleRaw != "" {
			if custom, err := schedule.Parse(p.ScheduleRaw); err == nil {
				at = custom
			} else {
				log.Warn("invalid override schedule, falling back to interval slot",
					logx.Int("post", p.Num),
					logx.String("raw", p.ScheduleRaw),
					logx.Err(err))
			}
		} else {
			next = next.Add(every)
		}
		out = append(out, Scheduled{Post: p, At: at})
	}
	return out
}
