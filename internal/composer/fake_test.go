package composer

import (
	"errors"
	"fmt"
	"time"

	"xsched/internal/browser"
)

// fakeEl is an in-memory Element. Scoped lookups resolve against children;
// every mutation is recorded for assertions.
type fakeEl struct {
	attrs    map[string]string
	children map[string][]*fakeEl

	clickErr error
	evalErr  error

	clicks   int
	filled   string
	files    string
	evalJS   []string
	evalArgs []any
}

func (e *fakeEl) Find(sel string) (browser.Element, bool) {
	els := e.children[sel]
	if len(els) == 0 {
		return nil, false
	}
	return els[0], true
}

func (e *fakeEl) FindAll(sel string) []browser.Element {
	out := make([]browser.Element, 0, len(e.children[sel]))
	for _, c := range e.children[sel] {
		out = append(out, c)
	}
	return out
}

func (e *fakeEl) Click() error { e.clicks++; return e.clickErr }

func (e *fakeEl) Fill(text string) error { e.filled = text; return nil }

func (e *fakeEl) SetFiles(path string) error { e.files = path; return nil }

func (e *fakeEl) Attr(name string) string { return e.attrs[name] }

func (e *fakeEl) Eval(js string, arg any) (any, error) {
	if e.evalErr != nil {
		return nil, e.evalErr
	}
	e.evalJS = append(e.evalJS, js)
	e.evalArgs = append(e.evalArgs, arg)
	return nil, nil
}

func (e *fakeEl) Visible() bool { return true }

func (e *fakeEl) Text() string { return "" }

// fakeTab is an in-memory Tab serving elements from a selector map.
type fakeTab struct {
	els    map[string][]*fakeEl
	body   string
	closed bool
}

func (t *fakeTab) Find(sel string) (browser.Element, bool) {
	els := t.els[sel]
	if len(els) == 0 {
		return nil, false
	}
	return els[0], true
}

func (t *fakeTab) FindAll(sel string) []browser.Element {
	out := make([]browser.Element, 0, len(t.els[sel]))
	for _, c := range t.els[sel] {
		out = append(out, c)
	}
	return out
}

func (t *fakeTab) WaitFor(sel string, _ time.Duration) (browser.Element, error) {
	if el, ok := t.Find(sel); ok {
		return el, nil
	}
	return nil, fmt.Errorf("%w: %s", browser.ErrNotFound, sel)
}

func (t *fakeTab) Eval(string) (any, error) { return nil, nil }

func (t *fakeTab) BodyText() string { return t.body }

func (t *fakeTab) Close() error { t.closed = true; return nil }

// fakeOpener hands out one prepared tab per OpenTab call.
type fakeOpener struct {
	tab *fakeTab
	err error
}

func (o *fakeOpener) OpenTab(string) (browser.Tab, error) {
	if o.err != nil {
		return nil, o.err
	}
	return o.tab, nil
}

var errBoom = errors.New("boom")

// newScheduleDialog builds a dialog carrying all six field controls and a
// Confirm button.
func newScheduleDialog() (*fakeEl, map[string]*fakeEl) {
	fields := map[string]*fakeEl{}
	children := map[string][]*fakeEl{}
	for _, sel := range []string{selMonth, selDay, selYear, selHour, selMinute, selMeridiem} {
		f := &fakeEl{}
		fields[sel] = f
		children[sel] = []*fakeEl{f}
	}
	confirm := &fakeEl{}
	children[selConfirm] = []*fakeEl{confirm}
	fields["confirm"] = confirm
	return &fakeEl{children: children}, fields
}

// newComposerTab builds a tab where the whole happy path succeeds.
func newComposerTab() (*fakeTab, map[string]*fakeEl) {
	dialog, fields := newScheduleDialog()
	scheduleBtn := &fakeEl{}
	textbox := &fakeEl{}
	fileInput := &fakeEl{}
	preview := &fakeEl{attrs: map[string]string{"src": "blob:https://x.com/a1b2c3"}}

	tab := &fakeTab{
		body: "Your post will send on Nov 29, 2025",
		els: map[string][]*fakeEl{
			selTextbox:                         {textbox},
			selFileInput:                       {fileInput},
			selScheduleExact:                   {scheduleBtn},
			selDialog:                          {dialog},
			"div[data-testid*='composer'] img": {preview},
		},
	}
	fields["textbox"] = textbox
	fields["file_input"] = fileInput
	fields["schedule_btn"] = scheduleBtn
	return tab, fields
}

// fastConfig keeps the polls tight so failing paths finish quickly.
func fastConfig() Config {
	return Config{
		TextWait:      10 * time.Millisecond,
		FileInputWait: 10 * time.Millisecond,
		PreviewWait:   30 * time.Millisecond,
		PreviewPoll:   time.Millisecond,
		DialogWait:    30 * time.Millisecond,
		DialogPoll:    time.Millisecond,
		ConfirmWait:   30 * time.Millisecond,
		ConfirmPoll:   time.Millisecond,
	}
}
