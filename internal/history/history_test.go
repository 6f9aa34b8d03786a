package history

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"xsched/pkg/logx"
)

func TestOpenDisabled(t *testing.T) {
	t.Parallel()
	for _, driver := range []string{"", "none", "NONE"} {
		st, err := Open(Config{Driver: driver}, logx.Nop())
		if err != nil {
			t.Fatalf("Open(%q): %v", driver, err)
		}
		if st != nil {
			t.Fatalf("Open(%q) returned a store, want nil", driver)
		}
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Parallel()
	if _, err := Open(Config{Driver: "postgres"}, logx.Nop()); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestSQLiteAppend(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "history.db")
	st, err := Open(Config{Driver: "sqlite", Path: path, BusyTimeout: time.Second}, logx.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer st.Close()

	ctx := context.Background()
	e := Entry{
		Post:         2,
		MediaPath:    "posts/2.mp4",
		MediaKind:    "video",
		ScheduledFor: time.Date(2025, 12, 1, 9, 30, 0, 0, time.Local),
		Override:     true,
		OK:           true,
		TookMS:       1234,
	}
	if err := st.Append(ctx, e); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := st.Append(ctx, Entry{Post: 3, TextLen: 11, ScheduledFor: time.Now(), Error: "preview timeout"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM posting_history").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("rows = %d, want 2", n)
	}

	var ok bool
	var errText sql.NullString
	if err := db.QueryRow("SELECT ok, err FROM posting_history WHERE post = 3").Scan(&ok, &errText); err != nil {
		t.Fatalf("select: %v", err)
	}
	if ok || errText.String != "preview timeout" {
		t.Fatalf("post 3 row: ok=%v err=%q", ok, errText.String)
	}
}
