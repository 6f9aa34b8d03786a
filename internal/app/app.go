// Package app wires the run together: config, logging, history, browser
// session, composer, and the run loop, in that construction order.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"xsched/internal/browser"
	"xsched/internal/composer"
	"xsched/internal/config"
	"xsched/internal/history"
	"xsched/internal/posts"
	"xsched/internal/runner"
	"xsched/internal/schedule"
	"xsched/internal/ui"
	"xsched/pkg/logx"
)

// Options carries the command-line inputs.
type Options struct {
	PostsDir    string
	CookieFile  string
	TimeRaw     string // first schedule time, required
	IntervalRaw string
	ConfigPath  string
}

// Run executes one full scheduling run. A nil return means a clean run or a
// graceful interrupt; any error is fatal and maps to exit code 1.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	log, closeLog := logx.New(logx.Config{
		Level:   cfg.LogLevel(),
		Console: cfg.LogConsole(),
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	defer func() { _ = closeLog() }()

	first, err := schedule.Parse(opts.TimeRaw)
	if err != nil {
		return fmt.Errorf("--time: %w", err)
	}
	every := schedule.ParseInterval(opts.IntervalRaw)

	printer := ui.New(logx.Stdout())
	printer.Banner(opts.PostsDir, first, every)

	list, err := posts.Scan(opts.PostsDir, log)
	if err != nil {
		// A missing posts directory is a clean zero-post run, not a crash.
		if errors.Is(err, posts.ErrRootNotFound) {
			printer.NoPosts(opts.PostsDir)
			return nil
		}
		return err
	}
	if len(list) == 0 {
		printer.NoPosts(opts.PostsDir)
		return nil
	}

	queue := posts.Sequence(list, first, every, log)
	printer.Discovered(queue)

	store, err := history.Open(historyConfig(cfg), log)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	printer.Infof("Initializing browser...")
	sess, err := launchSession(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	records, err := browser.LoadCookies(opts.CookieFile)
	if err != nil {
		return err
	}
	loaded, err := sess.InjectCookies(records)
	if err != nil {
		return fmt.Errorf("inject cookies from %s: %w", opts.CookieFile, err)
	}
	printer.Infof("Loaded %d cookies", loaded)

	comp := composer.New(sess, cfg.ResolvedComposerURL(), composerConfig(cfg, log), log)
	r := runner.New(comp, printer, store, cfg.PostPause(), log)
	r.Run(ctx, queue)
	return nil
}

func launchSession(cfg *config.Config, log logx.Logger) (*browser.Session, error) {
	slowMo, err := config.ParseDurationField("browser.slow_mo", cfg.Browser.SlowMo)
	if err != nil {
		return nil, err
	}
	return browser.Launch(browser.Options{
		BaseURL:  cfg.ResolvedBaseURL(),
		Headless: cfg.Browser.Headless,
		SlowMo:   slowMo,
	}, log)
}

func historyConfig(cfg *config.Config) history.Config {
	if cfg.History == nil {
		return history.Config{}
	}
	busy, err := config.ParseDurationField("history.busy_timeout", cfg.History.BusyTimeout)
	if err != nil {
		busy = 0
	}
	return history.Config{
		Driver:      cfg.History.Driver,
		Path:        cfg.History.Path,
		BusyTimeout: busy,
	}
}

// composerConfig starts from the production timing profile and applies the
// config file's overrides. An unparsable override keeps the default.
func composerConfig(cfg *config.Config, log logx.Logger) composer.Config {
	c := composer.Default()
	over := cfg.Composer

	apply := func(path, raw string, dst *time.Duration) {
		d, err := config.ParseDurationOrDefault(path, raw, *dst)
		if err != nil {
			log.Warn("ignoring invalid composer timing override", logx.String("field", path), logx.Err(err))
			return
		}
		*dst = d
	}
	apply("composer.text_wait", over.TextWait, &c.TextWait)
	apply("composer.file_input_wait", over.FileInputWait, &c.FileInputWait)
	apply("composer.preview_wait", over.PreviewWait, &c.PreviewWait)
	apply("composer.preview_poll", over.PreviewPoll, &c.PreviewPoll)
	apply("composer.dialog_wait", over.DialogWait, &c.DialogWait)
	apply("composer.dialog_poll", over.DialogPoll, &c.DialogPoll)
	apply("composer.confirm_wait", over.ConfirmWait, &c.ConfirmWait)
	apply("composer.confirm_poll", over.ConfirmPoll, &c.ConfirmPoll)
	return c
}
