// Package config loads xsched's optional YAML/JSON configuration file.
// Every field has a default; a missing file means "all defaults".
package config

import "time"

type Config struct {
	// BaseURL is the authenticated landing page; cookies are scoped to it.
	BaseURL string `json:"base_url,omitempty"`
	// ComposerURL is opened in a fresh tab for every post.
	ComposerURL string `json:"composer_url,omitempty"`

	Browser  BrowserConfig  `json:"browser"`
	Composer ComposerConfig `json:"composer"`
	Run      RunConfig      `json:"run"`
	History  *HistoryConfig `json:"history,omitempty"`
	Logging  LoggingConfig  `json:"logging"`
}

type BrowserConfig struct {
	// Headless is off by default: the target site rejects headless sessions.
	Headless bool `json:"headless,omitempty"`
	// SlowMo is a Go duration string inserted between driver operations.
	SlowMo string `json:"slow_mo,omitempty"`
}

// ComposerConfig overrides the automation ceilings and poll intervals.
// All values are Go duration strings; zero/omitted fields keep the defaults.
type ComposerConfig struct {
	TextWait      string `json:"text_wait,omitempty"`
	FileInputWait string `json:"file_input_wait,omitempty"`
	PreviewWait   string `json:"preview_wait,omitempty"`
	PreviewPoll   string `json:"preview_poll,omitempty"`
	DialogWait    string `json:"dialog_wait,omitempty"`
	DialogPoll    string `json:"dialog_poll,omitempty"`
	ConfirmWait   string `json:"confirm_wait,omitempty"`
	ConfirmPoll   string `json:"confirm_poll,omitempty"`
}

type RunConfig struct {
	// PostPause is the pause between posts (not after the last one).
	PostPause string `json:"post_pause,omitempty"`
}

// HistoryConfig configures the append-only posting history.
//
// Driver values:
//   - "" or "none": history disabled
//   - "sqlite": SQLite database file
type HistoryConfig struct {
	Driver      string `json:"driver,omitempty"`
	Path        string `json:"path,omitempty"`
	BusyTimeout string `json:"busy_timeout,omitempty"`
}

type LoggingConfig struct {
	Level   string `json:"level,omitempty"`
	Console *bool  `json:"console,omitempty"`
	File    struct {
		Enabled bool   `json:"enabled,omitempty"`
		Path    string `json:"path,omitempty"`
	} `json:"file"`
}

const (
	DefaultBaseURL     = "https://x.com"
	DefaultComposerURL = "https://x.com/compose/tweet"

	defaultPostPause = 2 * time.Second
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		ComposerURL: DefaultComposerURL,
	}
}

func (c *Config) ResolvedBaseURL() string {
	if c == nil || c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

func (c *Config) ResolvedComposerURL() string {
	if c == nil || c.ComposerURL == "" {
		return DefaultComposerURL
	}
	return c.ComposerURL
}

// PostPause resolves run.post_pause, falling back to the default on a
// missing or invalid value.
func (c *Config) PostPause() time.Duration {
	if c == nil {
		return defaultPostPause
	}
	d, err := ParseDurationOrDefault("run.post_pause", c.Run.PostPause, defaultPostPause)
	if err != nil {
		return defaultPostPause
	}
	return d
}

func (c *Config) LogLevel() string {
	if c == nil || c.Logging.Level == "" {
		return "info"
	}
	return c.Logging.Level
}

func (c *Config) LogConsole() bool {
	if c == nil || c.Logging.Console == nil {
		return true
	}
	return *c.Logging.Console
}
