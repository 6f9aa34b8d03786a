// Package history records per-post run outcomes in an append-only store.
//
// The store is write-only by design: a run never reads it back to resume or
// skip posts. Its only consumers are humans (and sqlite3 on the side).
package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"xsched/pkg/logx"
)

var ErrDisabled = errors.New("history disabled")

// Config configures the posting history.
//
// Driver values:
//   - "sqlite": SQLite database file
//
// If Driver is empty or "none", history is disabled.
type Config struct {
	Driver      string
	Path        string
	BusyTimeout time.Duration // 0 means default
}

// Entry records one post's outcome.
// Keep it compact and schema-stable.
type Entry struct {
	At           time.Time
	Post         int
	MediaPath    string
	MediaKind    string
	TextLen      int
	ScheduledFor time.Time
	Override     bool
	OK           bool
	Error        string
	TookMS       int64
}

// Store is the minimal persistence API used by the run loop.
type Store interface {
	Append(ctx context.Context, e Entry) error
	Close() error
}

// Open initializes the configured store.
// It returns (nil, nil) if history is disabled.
func Open(cfg Config, log logx.Logger) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" || driver == "none" {
		return nil, nil
	}
	if log.IsZero() {
		log = logx.Nop()
	}

	switch driver {
	case "sqlite", "sqlite3":
		return openSQLite(cfg, log)
	default:
		return nil, errors.New("unknown history driver: " + driver)
	}
}
