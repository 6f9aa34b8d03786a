package posts

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"xsched/pkg/logx"
)

// Tiny valid PNG header; enough for magic byte sniffing.
var pngBytes = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanMissingRoot(t *testing.T) {
	t.Parallel()
	_, err := Scan(filepath.Join(t.TempDir(), "nope"), logx.Nop())
	if !errors.Is(err, ErrRootNotFound) {
		t.Fatalf("err = %v, want ErrRootNotFound", err)
	}
}

func TestScanFolderMediaOnly(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "3", "photo.png"), pngBytes)

	got, err := Scan(root, logx.Nop())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d posts, want 1", len(got))
	}
	p := got[0]
	if p.Num != 3 || p.MediaKind != MediaImage || p.Text != "" || p.ScheduleRaw != "" {
		t.Fatalf("unexpected post: %+v", p)
	}
}

func TestScanFlatScheduleText(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "4.txt"), []byte("10PM 30-11-2025"))

	got, err := Scan(root, logx.Nop())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	// Schedule-only posts have neither media nor text and are dropped.
	if len(got) != 0 {
		t.Fatalf("got %d posts, want 0: %+v", len(got), got)
	}

	// With media alongside, the .txt becomes the override schedule.
	writeFile(t, filepath.Join(root, "4.png"), pngBytes)
	got, err = Scan(root, logx.Nop())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d posts, want 1", len(got))
	}
	p := got[0]
	if p.ScheduleRaw != "10PM 30-11-2025" || p.Text != "" {
		t.Fatalf("unexpected post: %+v", p)
	}
}

func TestScanFlatMultilineIsText(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	body := "9PM 29-11-2025\nactually a caption that spans lines"
	writeFile(t, filepath.Join(root, "4.txt"), []byte(body))

	got, err := Scan(root, logx.Nop())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d posts, want 1", len(got))
	}
	p := got[0]
	if p.ScheduleRaw != "" {
		t.Fatalf("multi-line content misclassified as schedule: %+v", p)
	}
	if p.Text != body {
		t.Fatalf("Text = %q, want %q", p.Text, body)
	}
}

func TestScanFolderLongLineIsText(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	long := strings.Repeat("x", maxScheduleLen+10)
	writeFile(t, filepath.Join(root, "1", "caption.txt"), []byte(long))

	got, err := Scan(root, logx.Nop())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 1 || got[0].Text != long || got[0].ScheduleRaw != "" {
		t.Fatalf("unexpected posts: %+v", got)
	}
}

func TestScanMergesLayoutsAndOrders(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "10", "clip.mp4"), []byte{0, 0, 0, 0x18, 'f', 't', 'y', 'p'})
	writeFile(t, filepath.Join(root, "2", "pic.jpg"), []byte{0xFF, 0xD8, 0xFF, 0xE0})
	writeFile(t, filepath.Join(root, "2.txt"), []byte("Hello world"))
	writeFile(t, filepath.Join(root, "7.txt"), []byte("Caption seven"))
	writeFile(t, filepath.Join(root, "notes.txt"), []byte("ignored: not numbered"))
	writeFile(t, filepath.Join(root, "9", "nested", "deep.png"), pngBytes) // subdirs ignored

	got, err := Scan(root, logx.Nop())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d posts, want 3: %+v", len(got), got)
	}
	if got[0].Num != 2 || got[1].Num != 7 || got[2].Num != 10 {
		t.Fatalf("wrong order: %d, %d, %d", got[0].Num, got[1].Num, got[2].Num)
	}
	// Flat text and folder media merged into post 2.
	if got[0].MediaKind != MediaImage || got[0].Text != "Hello world" {
		t.Fatalf("merge failed: %+v", got[0])
	}
	if got[2].MediaKind != MediaVideo {
		t.Fatalf("mp4 should be video: %+v", got[2])
	}
}

func TestScanTextOnlyPost(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "1", "body.txt"), []byte("just words"))

	got, err := Scan(root, logx.Nop())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 1 || got[0].MediaPath != "" || got[0].Text != "just words" {
		t.Fatalf("unexpected posts: %+v", got)
	}
}
