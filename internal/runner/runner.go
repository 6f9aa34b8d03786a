// Package runner feeds the scheduled queue to the composer, one post at a
// time, and tallies the outcome.
package runner

import (
	"context"
	"fmt"
	"time"

	"xsched/internal/history"
	"xsched/internal/posts"
	"xsched/internal/ui"
	"xsched/pkg/logx"
)

// PostRunner schedules a single post. Implemented by *composer.Composer.
type PostRunner interface {
	Run(p posts.Post, at time.Time) error
}

type Runner struct {
	composer PostRunner
	printer  *ui.Printer
	store    history.Store // nil when history is disabled
	log      logx.Logger

	// pause between posts; skipped after the last one.
	pause time.Duration
}

func New(composer PostRunner, printer *ui.Printer, store history.Store, pause time.Duration, log logx.Logger) *Runner {
	return &Runner{composer: composer, printer: printer, store: store, log: log, pause: pause}
}

// Run processes the queue sequentially and returns the success count.
// Posts are never processed in parallel: the session underneath is a
// serially-mutated singleton. Cancellation is observed only between posts;
// a mid-post interrupt finishes (or fails) the post it landed in.
func (r *Runner) Run(ctx context.Context, queue []posts.Scheduled) int {
	succeeded := 0

	for i, s := range queue {
		if ctx.Err() != nil {
			r.printer.Interrupted()
			break
		}

		r.printer.PostStart(s.Post.Num, s.At)
		start := time.Now()
		err := r.runOne(s)
		took := time.Since(start)

		if err == nil {
			succeeded++
			r.printer.PostScheduled(s.Post.Num)
		} else {
			r.printer.PostFailed(s.Post.Num, err.Error())
			r.log.Error("post failed", logx.Int("post", s.Post.Num), logx.Err(err))
		}
		r.record(ctx, s, err, took)

		if i == len(queue)-1 {
			continue
		}
		select {
		case <-ctx.Done():
			r.printer.Interrupted()
			r.printer.Summary(succeeded, len(queue))
			return succeeded
		case <-time.After(r.pause):
		}
	}

	r.printer.Summary(succeeded, len(queue))
	return succeeded
}

// runOne is the per-post failure boundary: anything escaping the
// automation, panics included, becomes this post's failure and the loop
// moves on.
func (r *Runner) runOne(s posts.Scheduled) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("automation panicked: %v", p)
			r.log.Error("post automation panicked",
				logx.Int("post", s.Post.Num),
				logx.Any("panic", p),
				logx.Stack(logx.StackTrace(3, 32)))
		}
	}()
	return r.composer.Run(s.Post, s.At)
}

func (r *Runner) record(ctx context.Context, s posts.Scheduled, runErr error, took time.Duration) {
	if r.store == nil {
		return
	}
	e := history.Entry{
		Post:         s.Post.Num,
		MediaPath:    s.Post.MediaPath,
		MediaKind:    string(s.Post.MediaKind),
		TextLen:      len(s.Post.Text),
		ScheduledFor: s.At,
		Override:     s.Post.ScheduleRaw != "",
		OK:           runErr == nil,
		TookMS:       took.Milliseconds(),
	}
	if runErr != nil {
		e.Error = runErr.Error()
	}
	if err := r.store.Append(ctx, e); err != nil {
		r.log.Warn("history append failed", logx.Err(err))
	}
}
