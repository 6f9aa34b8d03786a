// Package composer drives one post through the target site's composer UI:
// attach content, open the scheduling dialog, set the date and time fields,
// confirm, and verify the result.
//
// The per-step error policy is deliberately asymmetric. Steps whose failure
// would silently change what gets posted (media upload, preview, dialog,
// final submission) abort the post; steps that only degrade it (text entry,
// individual dialog fields, the optional Confirm control) are best-effort.
package composer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"xsched/internal/browser"
	"xsched/internal/posts"
	"xsched/pkg/logx"
)

var (
	ErrMediaInputNotFound = errors.New("file input not found")
	ErrPreviewTimeout     = errors.New("upload preview timeout")
	ErrScheduleButton     = errors.New("schedule button not found")
	ErrDialogNotFound     = errors.New("schedule dialog not found")
	ErrSubmitNotFound     = errors.New("final schedule button not found")
	ErrSubmitClick        = errors.New("final schedule button click failed")
)

// Structural queries for the composer surface. The data-testid hooks are
// the most stable handle the site exposes; visible labels are the fallback.
const (
	selTextbox   = "div[role='textbox']"
	selFileInput = "input[type='file']"
	selDialog    = "div[role='dialog']"

	selScheduleExact  = `button:text-is("Schedule")`
	selScheduleAria   = `button[aria-label*="Schedule"]`
	selScheduleLoose  = `text=/schedule/i`
	selSubmitExact    = `button:text-is("Schedule")`
	selSubmitFallback = `:is(button, [role="button"]):text-is("Schedule")`
	selConfirm        = `button:text-is("Confirm")`
	selConfirmOK      = `button:text-is("OK")`
)

// Dialog field controls, in write order. The ids are positional: month,
// day, year, hour, minute, meridiem.
const (
	selMonth    = "#SELECTOR_1"
	selDay      = "#SELECTOR_2"
	selYear     = "#SELECTOR_3"
	selHour     = "#SELECTOR_4"
	selMinute   = "#SELECTOR_5"
	selMeridiem = "#SELECTOR_6"
)

const setValueJS = `(el, value) => {
	el.value = String(value);
	el.dispatchEvent(new Event('change', { bubbles: true }));
}`

// selectLabelJS picks the option whose visible label matches
// case-insensitively; meridiem option values are not stable across
// sessions, the labels are.
const selectLabelJS = `(el, label) => {
	for (let i = 0; i < el.options.length; i++) {
		if (el.options[i].text.toUpperCase() === String(label).toUpperCase()) {
			el.selectedIndex = i;
			el.value = el.options[i].value;
			el.dispatchEvent(new Event('change', { bubbles: true }));
			break;
		}
	}
}`

// TabOpener is the slice of the session the composer needs.
type TabOpener interface {
	OpenTab(url string) (browser.Tab, error)
}

// Composer carries one post at a time through the scheduling flow.
// It operates on tabs of the shared session but never owns the session.
type Composer struct {
	session TabOpener
	url     string
	cfg     Config
	log     logx.Logger
}

func New(session TabOpener, composerURL string, cfg Config, log logx.Logger) *Composer {
	return &Composer{session: session, url: composerURL, cfg: cfg, log: log}
}

// Run schedules one post for the given time. A nil return means the post
// was submitted (confirmation text may or may not have been observed); a
// non-nil return means the post was abandoned and its tab closed.
func (c *Composer) Run(p posts.Post, at time.Time) error {
	tab, err := c.session.OpenTab(c.url)
	if err != nil {
		return fmt.Errorf("open composer: %w", err)
	}
	// The tab is closed on every path, success and abort alike; close
	// errors are swallowed.
	defer func() { _ = tab.Close() }()

	settle(c.cfg.TabSettle)

	if p.Text != "" {
		c.enterText(tab, p.Text)
	}

	if p.MediaPath != "" {
		if err := c.attachMedia(tab, p); err != nil {
			return err
		}
		if !c.waitPreview(tab) {
			return ErrPreviewTimeout
		}
		c.log.Info("upload preview detected")
		settle(c.cfg.UploadSettle)
	}

	dialog, err := c.openScheduleDialog(tab)
	if err != nil {
		return err
	}

	c.setDialogFields(dialog, at)
	settle(c.cfg.FieldsSettle)

	c.confirmDialog(dialog)

	return c.submitSchedule(tab)
}

// enterText is best-effort: a post without its caption is still worth the
// scheduling slot, so a missing textbox is only logged.
func (c *Composer) enterText(tab browser.Tab, text string) {
	box, err := tab.WaitFor(selTextbox, c.cfg.TextWait)
	if err != nil {
		c.log.Warn("could not add text", logx.Err(err))
		return
	}
	if err := box.Fill(text); err != nil {
		c.log.Warn("could not add text", logx.Err(err))
		return
	}
	c.log.Info("added text", logx.Int("chars", len(text)))
	settle(c.cfg.TextSettle)
}

// attachMedia is fatal on failure: posting without the media would silently
// change the post's meaning.
func (c *Composer) attachMedia(tab browser.Tab, p posts.Post) error {
	input, err := tab.WaitFor(selFileInput, c.cfg.FileInputWait)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMediaInputNotFound, err)
	}
	abs, err := filepath.Abs(p.MediaPath)
	if err != nil {
		abs = p.MediaPath
	}
	if err := input.SetFiles(abs); err != nil {
		return fmt.Errorf("submit media %s: %w", p.MediaPath, err)
	}
	c.log.Info("uploaded media",
		logx.String("kind", string(p.MediaKind)),
		logx.String("file", filepath.Base(p.MediaPath)))
	return nil
}

// waitPreview polls for visual confirmation that the attached media
// rendered. Strategies in order: composer-scoped image, textarea-scoped
// image, any section image with a hosted/encoded/blob source.
func (c *Composer) waitPreview(tab browser.Tab) bool {
	c.log.Debug("waiting for upload preview")
	return pollUntil(c.cfg.PreviewWait, c.cfg.PreviewPoll, func() bool {
		for _, sel := range []string{
			"div[data-testid*='composer'] img",
			"div[data-testid*='tweetTextarea'] img",
		} {
			for _, img := range tab.FindAll(sel) {
				if len(img.Attr("src")) > 5 {
					return true
				}
			}
		}
		for _, img := range tab.FindAll("section img") {
			src := img.Attr("src")
			if strings.Contains(src, "pbs.twimg.com") ||
				strings.Contains(src, "data:") ||
				strings.Contains(src, "blob:") {
				return true
			}
		}
		return false
	})
}

func (c *Composer) openScheduleDialog(tab browser.Tab) (browser.Element, error) {
	c.log.Debug("opening schedule dialog")

	btn, ok := firstMatch(
		inTab(tab, selScheduleExact),
		inTab(tab, selScheduleAria),
		lastInTab(tab, selScheduleLoose),
	)
	if !ok {
		return nil, ErrScheduleButton
	}
	if !clickHard(btn) {
		return nil, fmt.Errorf("%w: click failed", ErrScheduleButton)
	}
	settle(c.cfg.DialogSettle)

	var dialog browser.Element
	found := pollUntil(c.cfg.DialogWait, c.cfg.DialogPoll, func() bool {
		els := tab.FindAll(selDialog)
		if len(els) == 0 {
			return false
		}
		dialog = els[len(els)-1]
		return true
	})
	if !found {
		return nil, ErrDialogNotFound
	}
	settle(c.cfg.DialogSettle)
	return dialog, nil
}

// setDialogFields writes the six interdependent date/time fields. Each
// write is independently best-effort: the dialog's DOM varies across
// sessions and a single missing control must not strand the others.
func (c *Composer) setDialogFields(dialog browser.Element, at time.Time) {
	hour12 := at.Hour() % 12
	if hour12 == 0 {
		hour12 = 12
	}
	meridiem := "am"
	if at.Hour() >= 12 {
		meridiem = "pm"
	}

	c.log.Debug("setting schedule fields", logx.Time("at", at))

	c.setField(dialog, selMonth, setValueJS, strconv.Itoa(int(at.Month())))
	c.setField(dialog, selDay, setValueJS, strconv.Itoa(at.Day()))
	c.setField(dialog, selYear, setValueJS, strconv.Itoa(at.Year()))
	c.setField(dialog, selHour, setValueJS, strconv.Itoa(hour12))
	c.setField(dialog, selMinute, setValueJS, strconv.Itoa(at.Minute()))
	c.setField(dialog, selMeridiem, selectLabelJS, meridiem)
}

func (c *Composer) setField(dialog browser.Element, sel, js, value string) {
	el, ok := dialog.Find(sel)
	if !ok {
		c.log.Debug("schedule field missing", logx.String("selector", sel))
		return
	}
	if _, err := el.Eval(js, value); err != nil {
		c.log.Debug("schedule field write failed", logx.String("selector", sel), logx.Err(err))
		return
	}
	settle(c.cfg.FieldSettle)
}

// confirmDialog clicks the dialog-local Confirm/OK control when present.
// Some dialog variants auto-confirm, so absence is fine.
func (c *Composer) confirmDialog(dialog browser.Element) {
	btn, ok := firstMatch(
		inElement(dialog, selConfirm),
		inElement(dialog, selConfirmOK),
	)
	if !ok {
		return
	}
	if err := btn.Click(); err != nil {
		c.log.Debug("confirm click failed", logx.Err(err))
		return
	}
	settle(c.cfg.ConfirmSettle)
}

// submitSchedule clicks the final Schedule control and scans for textual
// confirmation. A missing control or failed click aborts; a missing
// confirmation does not, since the click is the authoritative action and
// the text is only corroboration.
func (c *Composer) submitSchedule(tab browser.Tab) error {
	settle(c.cfg.SubmitDelay)

	btn, ok := firstMatch(
		inTab(tab, selSubmitExact),
		lastInTab(tab, selSubmitFallback),
	)
	if !ok {
		return ErrSubmitNotFound
	}
	if !clickHard(btn) {
		return ErrSubmitClick
	}
	c.log.Info("clicked final schedule button")
	settle(c.cfg.SubmitSettle)

	confirmed := pollUntil(c.cfg.ConfirmWait, c.cfg.ConfirmPoll, func() bool {
		body := strings.ToLower(tab.BodyText())
		return strings.Contains(body, "will send on") || strings.Contains(body, "scheduled")
	})
	if confirmed {
		c.log.Info("schedule confirmed")
	} else {
		c.log.Warn("schedule button clicked but confirmation not detected")
	}
	return nil
}
