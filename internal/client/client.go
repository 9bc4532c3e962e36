// Package client implements the reconciling client: it renders the cached
// subdomain list immediately, fetches a fresh one from the aggregator,
// re-renders only when the content changed, and owns search and keyboard
// navigation state.
//
// The client is a state machine driven by events (cache read, fetch settled,
// keystrokes). All events are applied serially by a single owner, so State
// needs no locking.
package client

import (
	"builtat/pkg/domain"
	"builtat/pkg/logger"
	"builtat/pkg/storage"
	"bytes"
	"context"

	"go.uber.org/zap"
)

// View is the presentation side of the client.
type View interface {
	// Render replaces everything shown with frame.
	Render(frame Frame)
	// SetLoading shows or hides the loading indicator.
	SetLoading(visible bool)
	// SetQuery replaces the search field text.
	SetQuery(query string)
	// Focus moves focus to the search field.
	Focus()
	// Blur removes focus from the search field.
	Blur()
}

// Navigator leaves the list for the chosen subdomain.
type Navigator interface {
	Navigate(url string)
}

// Fetcher retrieves the current result set from the aggregator.
type Fetcher interface {
	Fetch(ctx context.Context) (domain.ResultSet, error)
}

// Deps are the collaborators of a Client.
type Deps struct {
	View      View
	Navigator Navigator
	Fetcher   Fetcher
	// Slot holds the serialized result set of the last changed fetch.
	Slot storage.Slot
}

// Options tune platform specific behavior.
type Options struct {
	// Apple selects Cmd instead of Ctrl as the modifier of the focus-search
	// shortcut.
	Apple bool
	// QueueSize is the capacity of the event queue. Zero selects a default.
	QueueSize int
}

const defaultQueueSize = 16

// Client owns State and applies events to it.
type Client struct {
	deps    Deps
	options Options
	state   State
	events  chan Event
}

// New creates a Client in PhaseUninitialized. The loading indicator is
// considered visible until the first render or the fetch settles.
func New(deps Deps, options Options) *Client {
	size := options.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}

	return &Client{
		deps:    deps,
		options: options,
		state:   State{Loading: true},
		events:  make(chan Event, size),
	}
}

// State returns a copy of the current state.
func (c *Client) State() State {
	return c.state
}

// Post queues ev for the event loop. It returns false when ctx ended first.
func (c *Client) Post(ctx context.Context, ev Event) bool {
	select {
	case c.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

// Start reads the cache slot and applies the result, rendering right away on
// a usable cache hit.
func (c *Client) Start(ctx context.Context) {
	data, found, err := c.deps.Slot.Load(ctx)
	c.Handle(ctx, CacheLoaded{Data: data, Found: found, Err: err})
}

// Run starts the client, issues the single fetch and applies events until
// ctx ends or a navigation happens. Navigation ends the loop with a nil error.
func (c *Client) Run(ctx context.Context) error {
	c.Start(ctx)

	go func() {
		rs, err := c.deps.Fetcher.Fetch(ctx)
		c.Post(ctx, FetchSettled{Result: rs, Err: err})
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-c.events:
			if eff := c.Handle(ctx, ev); eff.NavigatedTo != "" {
				return nil
			}
		}
	}
}

// Handle applies a single event. It is what Run calls for every queued
// event and may be called directly when the caller owns the loop.
func (c *Client) Handle(ctx context.Context, ev Event) Effect {
	switch ev := ev.(type) {
	case CacheLoaded:
		c.cacheLoaded(ctx, ev)
	case FetchSettled:
		c.fetchSettled(ctx, ev)
	case Input:
		c.state.Query = ev.Text
		c.render()
	case Key:
		return c.key(ev)
	case ClearClicked:
		c.clear()
	case FocusChanged:
		c.state.Focused = ev.Focused
	}

	return Effect{}
}

func (c *Client) cacheLoaded(ctx context.Context, ev CacheLoaded) {
	if c.state.Phase != PhaseUninitialized {
		return
	}

	var rs domain.ResultSet
	switch {
	case ev.Err != nil:
		logger.Warn(ctx, "could not read cached subdomains", zap.Error(ev.Err))
	case ev.Found:
		var err error
		if rs, err = domain.DecodeResultSet(ev.Data); err != nil {
			logger.Warn(ctx, "failed to parse cached subdomains", zap.Error(err))
			rs = nil
		}
	}

	if rs == nil {
		c.state.Phase = PhaseLoading
		c.state.Loading = true
		c.deps.View.SetLoading(true)

		return
	}

	c.state.Subdomains = rs
	c.state.HasCachedData = true
	c.state.Phase = PhaseCachedRender
	c.render()
}

func (c *Client) fetchSettled(ctx context.Context, ev FetchSettled) {
	defer func() {
		c.state.Phase = PhaseReady
		c.setLoading(false)
	}()

	if ev.Err != nil {
		logger.Warn(ctx, "failed to fetch subdomains", zap.Error(ev.Err))
		c.state.Outcome = OutcomeFetchFailed

		return
	}

	fresh := domain.EncodeResultSet(ev.Result)
	stored, _, err := c.deps.Slot.Load(ctx)
	if err != nil {
		logger.Warn(ctx, "could not read cached subdomains", zap.Error(err))
		stored = nil
	}

	switch {
	case !bytes.Equal(fresh, stored):
		if err := c.deps.Slot.Store(ctx, fresh); err != nil {
			logger.Warn(ctx, "could not cache subdomains", zap.Error(err))
		}
		c.state.Outcome = OutcomeRefreshed
		if !c.state.HasCachedData {
			c.state.Outcome = OutcomeFirstRender
		}
	case !c.state.HasCachedData:
		c.state.Outcome = OutcomeFirstRender
	default:
		c.state.Outcome = OutcomeUnchanged

		return
	}

	// ev.Result is fully built at this point; swapping the slice header keeps
	// renders from ever seeing a partial list.
	c.state.Subdomains = ev.Result
	c.render()
}

func (c *Client) clear() {
	c.state.Query = ""
	c.deps.View.SetQuery("")
	c.render()
	c.state.Focused = true
	c.deps.View.Focus()
}

func (c *Client) navigate(url string) Effect {
	c.deps.Navigator.Navigate(url)

	return Effect{PreventDefault: true, NavigatedTo: url}
}
