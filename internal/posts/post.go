// Package posts discovers post specifications in a posts directory and
// assigns each one an absolute publish time.
package posts

import (
	"path/filepath"
	"strings"
	"time"
)

// MediaKind classifies an attached media file.
type MediaKind string

const (
	MediaNone  MediaKind = ""
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

var mediaExts = map[string]MediaKind{
	".png":  MediaImage,
	".jpg":  MediaImage,
	".jpeg": MediaImage,
	".gif":  MediaImage,
	".webp": MediaImage,
	".mp4":  MediaVideo,
}

// KindForPath returns the media kind implied by the file extension,
// or MediaNone for unrecognized extensions.
func KindForPath(path string) MediaKind {
	return mediaExts[strings.ToLower(filepath.Ext(path))]
}

// Post is one discoverable unit of content: media and/or text, plus an
// optional per-post schedule override. Read-only after scanning.
type Post struct {
	Num       int
	MediaPath string
	MediaKind MediaKind
	Text      string

	// ScheduleRaw is the raw override string; empty means the post takes
	// the interval-derived default.
	ScheduleRaw string
}

// Empty reports whether the post carries neither media nor text.
// Empty posts are dropped during scanning.
func (p Post) Empty() bool {
	return p.MediaPath == "" && p.Text == ""
}

// Scheduled pairs a post with its resolved absolute publish time.
type Scheduled struct {
	Post Post
	At   time.Time
}
