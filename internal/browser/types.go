// Package browser owns the authenticated browser session and exposes the
// narrow automation surface the composer drives: open a tab, locate
// elements by structural query, mutate them, run scripts.
//
// The session is backed by playwright-go and is not safe for concurrent
// use; the run loop holds it exclusively and drives one tab at a time.
package browser

import (
	"errors"
	"time"
)

var (
	// ErrNoCookies means no authentication records could be injected.
	// This is a fatal precondition: posting without a session only produces
	// login walls.
	ErrNoCookies = errors.New("no cookies injected")

	// ErrNoTab means a fresh composer tab did not materialize.
	ErrNoTab = errors.New("no new tab materialized")

	// ErrNotFound is returned by WaitFor when the selector never appeared
	// within its ceiling.
	ErrNotFound = errors.New("element not found")
)

// Tab is one open page of the session.
type Tab interface {
	// Find returns the first element matching the structural query, without
	// waiting for it to appear.
	Find(selector string) (Element, bool)
	// FindAll returns every element currently matching the query.
	FindAll(selector string) []Element
	// WaitFor blocks until the query matches or the timeout elapses.
	WaitFor(selector string, timeout time.Duration) (Element, error)
	// Eval runs a script against the page.
	Eval(js string) (any, error)
	// BodyText returns the page's visible text, best-effort.
	BodyText() string
	Close() error
}

// Element is one located element. Lookups scoped through Find/FindAll stay
// inside this element's subtree.
type Element interface {
	Find(selector string) (Element, bool)
	FindAll(selector string) []Element
	Click() error
	Fill(text string) error
	SetFiles(absPath string) error
	Attr(name string) string
	// Eval runs a script with the element bound as the first argument.
	Eval(js string, arg any) (any, error)
	Visible() bool
	Text() string
}
