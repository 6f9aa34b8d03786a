package composer

import "xsched/internal/browser"

// lookup is one strategy for locating an element. Strategies are evaluated
// in order and short-circuit on the first hit; the asynchronously rendered
// UI rarely exposes the same structure twice, so every location site lists
// its fallbacks explicitly.
type lookup func() (browser.Element, bool)

func firstMatch(candidates ...lookup) (browser.Element, bool) {
	for _, c := range candidates {
		if c == nil {
			continue
		}
		if el, ok := c(); ok && el != nil {
			return el, true
		}
	}
	return nil, false
}

// inTab locates the first element matching sel.
func inTab(tab browser.Tab, sel string) lookup {
	return func() (browser.Element, bool) { return tab.Find(sel) }
}

// lastInTab locates the LAST element matching sel. Overlayed composers
// stack duplicated affordances; the bottom-most match is the live one.
func lastInTab(tab browser.Tab, sel string) lookup {
	return func() (browser.Element, bool) {
		els := tab.FindAll(sel)
		if len(els) == 0 {
			return nil, false
		}
		return els[len(els)-1], true
	}
}

// inElement scopes the lookup to a subtree.
func inElement(root browser.Element, sel string) lookup {
	return func() (browser.Element, bool) { return root.Find(sel) }
}
