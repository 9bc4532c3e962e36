package client

import "builtat/pkg/domain"

// Phase is the lifecycle position of the client.
type Phase int

const (
	// PhaseUninitialized is the state before the cache slot was read.
	PhaseUninitialized Phase = iota
	// PhaseCachedRender means the cached result set is on screen and the
	// fetch is still in flight.
	PhaseCachedRender
	// PhaseLoading means nothing usable was cached and the fetch is in flight.
	PhaseLoading
	// PhaseReady is the steady state after the fetch settled. Interactions
	// only re-filter and re-render from here; they never re-fetch.
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseCachedRender:
		return "cached-render"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Outcome records how the fetch settled.
type Outcome int

const (
	// OutcomePending means the fetch has not settled yet.
	OutcomePending Outcome = iota
	// OutcomeUnchanged means the fetched set equals the cached one; nothing
	// was re-rendered or written.
	OutcomeUnchanged
	// OutcomeRefreshed means the fetched set replaced a cached render.
	OutcomeRefreshed
	// OutcomeFirstRender means the fetched set produced the first render.
	OutcomeFirstRender
	// OutcomeFetchFailed means the fetch failed and the current render was kept.
	OutcomeFetchFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeRefreshed:
		return "refreshed"
	case OutcomeFirstRender:
		return "first-render"
	case OutcomeFetchFailed:
		return "fetch-failed"
	default:
		return "unknown"
	}
}

// State is everything the client knows. It is owned by a single Client and
// only mutated from its event loop.
type State struct {
	// Subdomains is the authoritative list the view is rendered from.
	Subdomains domain.ResultSet
	// CurrentResults is Subdomains narrowed by Query; Enter and digit keys
	// navigate within it.
	CurrentResults domain.ResultSet
	// HasCachedData is true when a render happened from the cache slot
	// before the network answered.
	HasCachedData bool

	Query   string
	Focused bool
	Loading bool

	Phase   Phase
	Outcome Outcome
	// Renders counts full list rebuilds.
	Renders int
}
