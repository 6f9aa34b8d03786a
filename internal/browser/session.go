package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"xsched/pkg/logx"
)

// Options configures the launched session.
type Options struct {
	BaseURL string
	// Headless is normally false: the target site detects and rejects
	// headless sessions.
	Headless bool
	SlowMo   time.Duration
}

// Session is the one live authenticated browser context for a run.
// It is owned by the run loop; the composer opens and closes per-post tabs
// through it but never tears down the session itself.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	ctx     playwright.BrowserContext
	home    playwright.Page
	baseURL string
	log     logx.Logger
}

// Launch starts the playwright driver, a headful Chromium, one browser
// context, and a home page. Callers must Close() the session.
func Launch(opts Options, log logx.Logger) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright driver: %w", err)
	}

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args: []string{
			"--no-first-run",
			"--no-default-browser-check",
			"--disable-extensions",
			"--start-maximized",
		},
	}
	if opts.SlowMo > 0 {
		launch.SlowMo = playwright.Float(float64(opts.SlowMo.Milliseconds()))
	}

	br, err := pw.Chromium.Launch(launch)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	ctx, err := br.NewContext(playwright.BrowserNewContextOptions{
		NoViewport: playwright.Bool(true),
	})
	if err != nil {
		_ = br.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("new browser context: %w", err)
	}

	home, err := ctx.NewPage()
	if err != nil {
		_ = ctx.Close()
		_ = br.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("open home page: %w", err)
	}

	s := &Session{pw: pw, browser: br, ctx: ctx, home: home, baseURL: opts.BaseURL, log: log}
	return s, nil
}

// InjectCookies adds the authentication records to the context and returns
// how many were accepted. For each record the full {name, value, domain,
// path} form is tried first; a rejected record falls back to the minimal
// URL-scoped form. Zero accepted records is ErrNoCookies.
func (s *Session) InjectCookies(records []CookieRecord) (int, error) {
	if _, err := s.home.Goto(s.baseURL); err != nil {
		// Some providers interrupt the first load; retry once from a blank page.
		_, _ = s.home.Goto("about:blank")
		if _, err := s.home.Goto(s.baseURL); err != nil {
			return 0, fmt.Errorf("open %s: %w", s.baseURL, err)
		}
	}

	loaded := 0
	for _, r := range records {
		full := playwright.OptionalCookie{
			Name:   r.Name,
			Value:  r.Value,
			Domain: playwright.String(r.Domain),
			Path:   playwright.String(r.Path),
		}
		if r.Domain == "" {
			full.Domain = nil
			full.URL = playwright.String(s.baseURL)
		}
		if err := s.ctx.AddCookies([]playwright.OptionalCookie{full}); err == nil {
			loaded++
			continue
		}
		minimal := playwright.OptionalCookie{
			Name:  r.Name,
			Value: r.Value,
			URL:   playwright.String(s.baseURL),
		}
		if err := s.ctx.AddCookies([]playwright.OptionalCookie{minimal}); err == nil {
			loaded++
		} else {
			s.log.Debug("cookie rejected", logx.String("name", r.Name), logx.Err(err))
		}
	}

	if loaded == 0 {
		return 0, ErrNoCookies
	}

	// Reload so the session applies to the home page.
	if _, err := s.home.Goto(s.baseURL); err != nil {
		s.log.Warn("reload after cookie injection failed", logx.Err(err))
	}
	return loaded, nil
}

// OpenTab opens a fresh tab at url and brings it to front.
func (s *Session) OpenTab(url string) (Tab, error) {
	before := len(s.ctx.Pages())

	page, err := s.ctx.NewPage()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoTab, err)
	}
	if len(s.ctx.Pages()) <= before {
		return nil, ErrNoTab
	}

	if _, err := page.Goto(url); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("open %s: %w", url, err)
	}
	if err := page.BringToFront(); err != nil {
		s.log.Debug("bring tab to front failed", logx.Err(err))
	}

	return &pwTab{page: page, session: s}, nil
}

// Close tears the whole session down, home tab included.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	var first error
	if s.ctx != nil {
		if err := s.ctx.Close(); err != nil && first == nil {
			first = err
		}
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil && first == nil {
			first = err
		}
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// refocusHome returns focus to the original tab after a post tab closes.
func (s *Session) refocusHome() {
	if s.home == nil {
		return
	}
	if err := s.home.BringToFront(); err != nil {
		s.log.Debug("refocus home tab failed", logx.Err(err))
	}
}
