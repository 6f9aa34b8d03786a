package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// pwTab adapts a playwright page to the Tab contract.
type pwTab struct {
	page    playwright.Page
	session *Session
}

func (t *pwTab) Find(selector string) (Element, bool) {
	loc := t.page.Locator(selector)
	n, err := loc.Count()
	if err != nil || n == 0 {
		return nil, false
	}
	return &pwElement{loc: loc.First()}, true
}

func (t *pwTab) FindAll(selector string) []Element {
	locs, err := t.page.Locator(selector).All()
	if err != nil {
		return nil
	}
	out := make([]Element, 0, len(locs))
	for _, l := range locs {
		out = append(out, &pwElement{loc: l})
	}
	return out
}

func (t *pwTab) WaitFor(selector string, timeout time.Duration) (Element, error) {
	loc := t.page.Locator(selector).First()
	err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, selector)
	}
	return &pwElement{loc: loc}, nil
}

func (t *pwTab) Eval(js string) (any, error) {
	return t.page.Evaluate(js)
}

func (t *pwTab) BodyText() string {
	text, err := t.page.Locator("body").InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(2000),
	})
	if err != nil {
		return ""
	}
	return text
}

func (t *pwTab) Close() error {
	err := t.page.Close()
	if t.session != nil {
		t.session.refocusHome()
	}
	return err
}

// pwElement adapts a playwright locator to the Element contract.
type pwElement struct {
	loc playwright.Locator
}

func (e *pwElement) Find(selector string) (Element, bool) {
	loc := e.loc.Locator(selector)
	n, err := loc.Count()
	if err != nil || n == 0 {
		return nil, false
	}
	return &pwElement{loc: loc.First()}, true
}

func (e *pwElement) FindAll(selector string) []Element {
	locs, err := e.loc.Locator(selector).All()
	if err != nil {
		return nil
	}
	out := make([]Element, 0, len(locs))
	for _, l := range locs {
		out = append(out, &pwElement{loc: l})
	}
	return out
}

func (e *pwElement) Click() error {
	return e.loc.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(3000),
	})
}

func (e *pwElement) Fill(text string) error {
	return e.loc.Fill(text)
}

func (e *pwElement) SetFiles(absPath string) error {
	return e.loc.SetInputFiles(absPath)
}

func (e *pwElement) Attr(name string) string {
	v, err := e.loc.GetAttribute(name)
	if err != nil {
		return ""
	}
	return v
}

func (e *pwElement) Eval(js string, arg any) (any, error) {
	return e.loc.Evaluate(js, arg)
}

func (e *pwElement) Visible() bool {
	ok, err := e.loc.IsVisible()
	return err == nil && ok
}

func (e *pwElement) Text() string {
	s, err := e.loc.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(2000),
	})
	if err != nil {
		return ""
	}
	return s
}
