package posts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"

	"xsched/internal/schedule"
	"xsched/pkg/logx"
)

// ErrRootNotFound marks a missing posts directory. The caller reports zero
// posts and ends the run cleanly.
var ErrRootNotFound = fmt.Errorf("posts directory not found")

// A .txt file inside a numbered folder is only considered a schedule
// override when its content is a single line shorter than this. Longer or
// multi-line content is always body text, even if its first line would
// parse.
const maxScheduleLen = 50

// Scan walks the posts directory and returns the discovered posts in
// ascending numeric order.
//
// Two layouts coexist and merge by shared number:
//   - flat files:  posts/1.png, posts/1.txt
//   - folders:     posts/1/anything.jpg, posts/1/anything.txt
//
// Flat entries are scanned before folders; the first writer wins per slot.
// A .txt file whose content parses as a schedule string becomes the post's
// override schedule instead of its text.
func Scan(root string, log logx.Logger) ([]Post, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("read posts directory: %w", err)
	}

	found := map[int]*Post{}
	slot := func(num int) *Post {
		p, ok := found[num]
		if !ok {
			p = &Post{Num: num}
			found[num] = p
		}
		return p
	}

	// Pass 1: flat numbered files.
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		num, ok := postNumber(strings.TrimSuffix(name, filepath.Ext(name)))
		if !ok {
			continue
		}
		p := slot(num)
		path := filepath.Join(root, name)

		if kind := mediaExts[ext]; kind != MediaNone {
			setMedia(p, path, kind, log)
			continue
		}
		if ext != ".txt" {
			continue
		}
		content, err := readTrimmed(path)
		if err != nil {
			log.Warn("skipping unreadable text file", logx.String("path", path), logx.Err(err))
			continue
		}
		if _, perr := schedule.Parse(content); perr == nil {
			if p.ScheduleRaw == "" {
				p.ScheduleRaw = content
			}
		} else if p.Text == "" {
			p.Text = content
		}
	}

	// Pass 2: numbered folders, any filenames inside.
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		num, ok := postNumber(e.Name())
		if !ok {
			continue
		}
		p := slot(num)
		dir := filepath.Join(root, e.Name())
		files, err := os.ReadDir(dir)
		if err != nil {
			log.Warn("skipping unreadable post folder", logx.String("path", dir), logx.Err(err))
			continue
		}
		for _, f := range files {
			if f.IsDir() {
				continue
			}
			path := filepath.Join(dir, f.Name())
			ext := strings.ToLower(filepath.Ext(f.Name()))

			if kind := mediaExts[ext]; kind != MediaNone {
				if p.MediaPath == "" {
					setMedia(p, path, kind, log)
				}
				continue
			}
			if ext != ".txt" || p.Text != "" || p.ScheduleRaw != "" {
				continue
			}
			content, err := readTrimmed(path)
			if err != nil {
				log.Warn("skipping unreadable text file", logx.String("path", path), logx.Err(err))
				continue
			}
			if !strings.Contains(content, "\n") && len(content) < maxScheduleLen {
				if _, perr := schedule.Parse(content); perr == nil {
					p.ScheduleRaw = content
					continue
				}
			}
			p.Text = content
		}
	}

	nums := make([]int, 0, len(found))
	for num, p := range found {
		if p.Empty() {
			log.Debug("dropping post with neither media nor text", logx.Int("post", num))
			continue
		}
		nums = append(nums, num)
	}
	sort.Ints(nums)

	out := make([]Post, 0, len(nums))
	for _, num := range nums {
		out = append(out, *found[num])
	}
	return out, nil
}

func setMedia(p *Post, path string, kind MediaKind, log logx.Logger) {
	if p.MediaPath != "" {
		return
	}
	p.MediaPath = path
	p.MediaKind = kind
	sniffMedia(path, kind, log)
}

// sniffMedia cross-checks the extension-derived kind against the file's
// magic bytes. A mismatch is only worth a warning: the extension still
// decides how the post is described, the remote UI does its own validation.
func sniffMedia(path string, kind MediaKind, log logx.Logger) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	head := make([]byte, 261)
	n, _ := f.Read(head)
	t, err := filetype.Match(head[:n])
	if err != nil || t == filetype.Unknown {
		return
	}

	sniffed := MediaNone
	switch {
	case t.MIME.Type == "image":
		sniffed = MediaImage
	case t == matchers.TypeMp4, t.MIME.Type == "video":
		sniffed = MediaVideo
	}
	if sniffed != MediaNone && sniffed != kind {
		log.Warn("media content does not match its extension",
			logx.String("path", path),
			logx.String("extension_kind", string(kind)),
			logx.String("sniffed", t.MIME.Value))
	}
}

func postNumber(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(name)
	if err != nil {
		return 0, false
	}
	return n, true
}

func readTrimmed(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
