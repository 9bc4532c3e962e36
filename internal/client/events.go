package client

import "builtat/pkg/domain"

// Event is an input to the client state machine.
type Event interface {
	isEvent()
}

// CacheLoaded carries the result of reading the cache slot at startup.
type CacheLoaded struct {
	Data  []byte
	Found bool
	Err   error
}

// FetchSettled carries the outcome of the request to the aggregator.
type FetchSettled struct {
	Result domain.ResultSet
	Err    error
}

// Input is the full search field text after a keystroke.
type Input struct {
	Text string
}

// Key is a key press. Name follows DOM KeyboardEvent.key values
// ("Enter", "Escape", "1", "k", ...).
type Key struct {
	Name string
	Meta bool
	Ctrl bool
	Alt  bool
}

// ClearClicked is a press of the clear-search control.
type ClearClicked struct{}

// FocusChanged reports the search field gaining or losing focus.
type FocusChanged struct {
	Focused bool
}

func (CacheLoaded) isEvent()  {}
func (FetchSettled) isEvent() {}
func (Input) isEvent()        {}
func (Key) isEvent()          {}
func (ClearClicked) isEvent() {}
func (FocusChanged) isEvent() {}

// Effect reports what handling an event did beyond changing state.
type Effect struct {
	// PreventDefault is set when the host's default handling of the key must
	// be suppressed.
	PreventDefault bool
	// NavigatedTo is the URL the client navigated to, if any.
	NavigatedTo string
}
