package runner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"xsched/internal/history"
	"xsched/internal/posts"
	"xsched/internal/ui"
	"xsched/pkg/logx"
)

type scriptedComposer struct {
	results map[int]error // nil = success; special sentinel triggers a panic
	ran     []int
}

var errPanic = errors.New("panic please")

func (c *scriptedComposer) Run(p posts.Post, _ time.Time) error {
	c.ran = append(c.ran, p.Num)
	err := c.results[p.Num]
	if errors.Is(err, errPanic) {
		panic("selector exploded")
	}
	return err
}

type memStore struct {
	entries []history.Entry
	err     error
}

func (s *memStore) Append(_ context.Context, e history.Entry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, e)
	return nil
}

func (s *memStore) Close() error { return nil }

func queueOf(nums ...int) []posts.Scheduled {
	out := make([]posts.Scheduled, 0, len(nums))
	at := time.Date(2025, 11, 29, 21, 0, 0, 0, time.Local)
	for i, n := range nums {
		out = append(out, posts.Scheduled{
			Post: posts.Post{Num: n, Text: "t"},
			At:   at.Add(time.Duration(i) * time.Hour),
		})
	}
	return out
}

func TestRunTallyAndContinueOnFailure(t *testing.T) {
	t.Parallel()
	comp := &scriptedComposer{results: map[int]error{
		2: errors.New("preview timeout"),
	}}
	var buf bytes.Buffer
	store := &memStore{}
	r := New(comp, ui.New(&buf), store, 0, logx.Nop())

	got := r.Run(context.Background(), queueOf(1, 2, 3))
	if got != 2 {
		t.Fatalf("succeeded = %d, want 2", got)
	}
	if len(comp.ran) != 3 {
		t.Fatalf("ran %v, want all three posts", comp.ran)
	}
	if !strings.Contains(buf.String(), "2/3 posts scheduled successfully") {
		t.Fatalf("summary missing from output:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "preview timeout") {
		t.Fatal("failure reason not announced")
	}

	if len(store.entries) != 3 {
		t.Fatalf("history entries = %d, want 3", len(store.entries))
	}
	if store.entries[1].OK || store.entries[1].Error == "" {
		t.Fatalf("entry for failed post: %+v", store.entries[1])
	}
	if !store.entries[0].OK {
		t.Fatalf("entry for succeeded post: %+v", store.entries[0])
	}
}

func TestRunRecoversPanics(t *testing.T) {
	t.Parallel()
	comp := &scriptedComposer{results: map[int]error{1: errPanic}}
	var buf bytes.Buffer
	r := New(comp, ui.New(&buf), nil, 0, logx.Nop())

	got := r.Run(context.Background(), queueOf(1, 2))
	if got != 1 {
		t.Fatalf("succeeded = %d, want 1", got)
	}
	if len(comp.ran) != 2 {
		t.Fatalf("a panic must not stop the loop; ran %v", comp.ran)
	}
	if !strings.Contains(buf.String(), "panicked") {
		t.Fatal("panic not announced as the post's failure")
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	t.Parallel()
	comp := &scriptedComposer{}
	var buf bytes.Buffer
	r := New(comp, ui.New(&buf), nil, time.Hour, logx.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := r.Run(ctx, queueOf(1, 2))
	if got != 0 || len(comp.ran) != 0 {
		t.Fatalf("cancelled run processed posts: ok=%d ran=%v", got, comp.ran)
	}
	if !strings.Contains(buf.String(), "Interrupted") {
		t.Fatal("interrupt not announced")
	}
}

func TestRunInterruptDuringPause(t *testing.T) {
	t.Parallel()
	comp := &scriptedComposer{}
	var buf bytes.Buffer
	r := New(comp, ui.New(&buf), nil, time.Hour, logx.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	got := r.Run(ctx, queueOf(1, 2))
	if got != 1 || len(comp.ran) != 1 {
		t.Fatalf("expected to stop during the inter-post pause: ok=%d ran=%v", got, comp.ran)
	}
}

func TestRunHistoryAppendFailureIsNonFatal(t *testing.T) {
	t.Parallel()
	comp := &scriptedComposer{}
	var buf bytes.Buffer
	r := New(comp, ui.New(&buf), &memStore{err: errors.New("disk full")}, 0, logx.Nop())

	if got := r.Run(context.Background(), queueOf(1)); got != 1 {
		t.Fatalf("succeeded = %d, want 1", got)
	}
}
