package composer

import "xsched/internal/browser"

// clickStrategy attempts one way of activating an element.
type clickStrategy func(el browser.Element) error

// clickChain escalates: a native click first, then a script-dispatched
// click, then a synthesized pointer event. The first strategy that does not
// error wins. Some of the site's controls swallow native clicks while an
// animation is still running; the scripted variants land regardless.
var clickChain = []clickStrategy{
	func(el browser.Element) error { return el.Click() },
	func(el browser.Element) error {
		_, err := el.Eval("el => el.click()", nil)
		return err
	},
	func(el browser.Element) error {
		_, err := el.Eval(`el => {
			const ev = new MouseEvent('click', { view: window, bubbles: true, cancelable: true });
			el.dispatchEvent(ev);
		}`, nil)
		return err
	},
}

// clickHard scrolls the element into view and runs the escalation chain.
// It reports whether any strategy succeeded.
func clickHard(el browser.Element) bool {
	_, _ = el.Eval("el => el.scrollIntoView({ block: 'center' })", nil)
	for _, attempt := range clickChain {
		if err := attempt(el); err == nil {
			return true
		}
	}
	return false
}
