package client_test

import (
	"builtat/internal/client"
	"builtat/pkg/domain"
	"builtat/pkg/logger"
	"builtat/pkg/storage"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Initialize logger to avoid nil pointer deref during tests
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

// fakeView records every call made by the client.
type fakeView struct {
	frames   []client.Frame
	loading  []bool
	queries  []string
	focuses  int
	blurs    int
	navigate []string
}

func (v *fakeView) Render(f client.Frame) { v.frames = append(v.frames, f) }
func (v *fakeView) SetLoading(b bool) { v.loading = append(v.loading, b) }
func (v *fakeView) SetQuery(q string) { v.queries = append(v.queries, q) }
func (v *fakeView) Focus() { v.focuses++ }
func (v *fakeView) Blur() { v.blurs++ }
func (v *fakeView) Navigate(url string) { v.navigate = append(v.navigate, url) }
func (v *fakeView) lastFrame() client.Frame { return v.frames[len(v.frames)-1] }

// fetcherFunc adapts a function to client.Fetcher.
type fetcherFunc func(ctx context.Context) (domain.ResultSet, error)

func (f fetcherFunc) Fetch(ctx context.Context) (domain.ResultSet, error) { return f(ctx) }

// countingSlot wraps a MemorySlot and counts writes.
type countingSlot struct {
	*storage.MemorySlot

	mu     sync.Mutex
	stores int
}

func (s *countingSlot) Store(ctx context.Context, data []byte) error {
	s.mu.Lock()
	s.stores++
	s.mu.Unlock()

	return s.MemorySlot.Store(ctx, data)
}

// failingSlot cannot be read.
type failingSlot struct{ storage.MemorySlot }

func (s *failingSlot) Load(context.Context) ([]byte, bool, error) {
	return nil, false, errors.New("disk on fire")
}

var (
	api  = domain.SubdomainRecord{Name: "Api", URL: "https://api.built.at"}
	app  = domain.SubdomainRecord{Name: "App", URL: "https://app.built.at"}
	docs = domain.SubdomainRecord{Name: "Docs", URL: "https://docs.built.at"}
)

type harness struct {
	view   *fakeView
	slot   *countingSlot
	client *client.Client
}

func newHarness(t *testing.T, cached []byte, opts client.Options) *harness {
	t.Helper()

	h := &harness{
		view: &fakeView{},
		slot: &countingSlot{MemorySlot: storage.NewMemorySlot()},
	}
	if cached != nil {
		require.NoError(t, h.slot.MemorySlot.Store(context.Background(), cached))
	}
	h.client = client.New(client.Deps{
		View:      h.view,
		Navigator: h.view,
		Fetcher: fetcherFunc(func(context.Context) (domain.ResultSet, error) {
			return nil, errors.New("fetch not expected")
		}),
		Slot: h.slot,
	}, opts)

	return h
}

func TestClient_CacheHit_RendersImmediately(t *testing.T) {
	h := newHarness(t, domain.EncodeResultSet(domain.ResultSet{api, docs}), client.Options{})
	h.client.Start(context.Background())

	st := h.client.State()
	require.Equal(t, client.PhaseCachedRender, st.Phase)
	require.True(t, st.HasCachedData)
	require.False(t, st.Loading)
	require.Equal(t, domain.ResultSet{api, docs}, st.CurrentResults)
	require.Len(t, h.view.frames, 1)
	require.Equal(t, []bool{false}, h.view.loading, "loading cleared without waiting for the fetch")
}

func TestClient_CacheMiss_ShowsLoading(t *testing.T) {
	h := newHarness(t, nil, client.Options{})
	h.client.Start(context.Background())

	st := h.client.State()
	require.Equal(t, client.PhaseLoading, st.Phase)
	require.False(t, st.HasCachedData)
	require.True(t, st.Loading)
	require.Empty(t, h.view.frames)
	require.Equal(t, []bool{true}, h.view.loading)
}

func TestClient_CorruptCache_TreatedAsMiss(t *testing.T) {
	h := newHarness(t, []byte(`{not json`), client.Options{})
	ctx := context.Background()
	h.client.Start(ctx)
	require.Equal(t, client.PhaseLoading, h.client.State().Phase)
	require.Empty(t, h.view.frames)

	h.client.Handle(ctx, client.FetchSettled{Result: domain.ResultSet{api}})

	st := h.client.State()
	require.Equal(t, client.OutcomeFirstRender, st.Outcome)
	require.Equal(t, domain.ResultSet{api}, st.Subdomains)
	require.Len(t, h.view.frames, 1)
	require.Equal(t, 1, h.slot.stores)
}

func TestClient_UnreadableSlot_TreatedAsMiss(t *testing.T) {
	view := &fakeView{}
	c := client.New(client.Deps{View: view, Navigator: view, Slot: &failingSlot{}}, client.Options{})
	c.Start(context.Background())

	require.Equal(t, client.PhaseLoading, c.State().Phase)
}

func TestClient_FetchUnchanged_NoRerender(t *testing.T) {
	cached := domain.EncodeResultSet(domain.ResultSet{api})
	h := newHarness(t, cached, client.Options{})
	ctx := context.Background()
	h.client.Start(ctx)
	require.Equal(t, 1, h.client.State().Renders)

	h.client.Handle(ctx, client.FetchSettled{Result: domain.ResultSet{api}})

	st := h.client.State()
	require.Equal(t, client.OutcomeUnchanged, st.Outcome)
	require.Equal(t, client.PhaseReady, st.Phase)
	require.True(t, st.HasCachedData)
	require.Equal(t, 1, st.Renders, "no re-render when nothing changed")
	require.Len(t, h.view.frames, 1)
	require.Zero(t, h.slot.stores, "cache write skipped")
}

func TestClient_FetchChanged_RefreshesAndKeepsQuery(t *testing.T) {
	h := newHarness(t, domain.EncodeResultSet(domain.ResultSet{api}), client.Options{})
	ctx := context.Background()
	h.client.Start(ctx)
	h.client.Handle(ctx, client.Input{Text: "ap"})

	fresh := domain.ResultSet{api, app, docs}
	h.client.Handle(ctx, client.FetchSettled{Result: fresh})

	st := h.client.State()
	require.Equal(t, client.OutcomeRefreshed, st.Outcome)
	require.Equal(t, fresh, st.Subdomains)
	require.Equal(t, "ap", st.Query)
	require.Equal(t, domain.ResultSet{api, app}, st.CurrentResults)
	require.Equal(t, "ap", h.view.lastFrame().Query)
	require.Equal(t, 1, h.slot.stores)

	stored, found, err := h.slot.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, domain.EncodeResultSet(fresh), stored)
}

func TestClient_FirstFetch_Renders(t *testing.T) {
	h := newHarness(t, nil, client.Options{})
	ctx := context.Background()
	h.client.Start(ctx)

	h.client.Handle(ctx, client.FetchSettled{Result: domain.ResultSet{api, docs}})

	st := h.client.State()
	require.Equal(t, client.OutcomeFirstRender, st.Outcome)
	require.Equal(t, client.PhaseReady, st.Phase)
	require.False(t, st.Loading)
	require.Len(t, h.view.frames, 1)
	require.Equal(t, []bool{true, false}, h.view.loading)
	require.Equal(t, 1, h.slot.stores)
}

func TestClient_FirstFetch_IdenticalToStoredStillRenders(t *testing.T) {
	// the slot already holds the same bytes but was never rendered from
	h := newHarness(t, nil, client.Options{})
	ctx := context.Background()
	h.client.Start(ctx)
	require.NoError(t, h.slot.MemorySlot.Store(ctx, domain.EncodeResultSet(domain.ResultSet{api})))

	h.client.Handle(ctx, client.FetchSettled{Result: domain.ResultSet{api}})

	st := h.client.State()
	require.Equal(t, client.OutcomeFirstRender, st.Outcome)
	require.Len(t, h.view.frames, 1)
	require.Zero(t, h.slot.stores)
}

func TestClient_FetchFailure_KeepsCachedRender(t *testing.T) {
	h := newHarness(t, domain.EncodeResultSet(domain.ResultSet{api}), client.Options{})
	ctx := context.Background()
	h.client.Start(ctx)

	h.client.Handle(ctx, client.FetchSettled{Err: errors.New("offline")})

	st := h.client.State()
	require.Equal(t, client.OutcomeFetchFailed, st.Outcome)
	require.Equal(t, client.PhaseReady, st.Phase)
	require.Equal(t, domain.ResultSet{api}, st.Subdomains)
	require.Equal(t, 1, st.Renders)
	require.Zero(t, h.slot.stores)
}

func TestClient_FetchFailure_WithoutCache_ClearsLoading(t *testing.T) {
	h := newHarness(t, nil, client.Options{})
	ctx := context.Background()
	h.client.Start(ctx)

	h.client.Handle(ctx, client.FetchSettled{Err: errors.New("offline")})

	st := h.client.State()
	require.False(t, st.Loading)
	require.Empty(t, st.Subdomains)
	require.Empty(t, h.view.frames)
	require.Equal(t, []bool{true, false}, h.view.loading)
}

// notifyingSlot signals every completed write.
type notifyingSlot struct {
	*storage.MemorySlot

	stored chan struct{}
}

func (s *notifyingSlot) Store(ctx context.Context, data []byte) error {
	err := s.MemorySlot.Store(ctx, data)
	s.stored <- struct{}{}

	return err
}

func TestClient_Run_ReconcilesAndNavigates(t *testing.T) {
	view := &fakeView{}
	slot := &notifyingSlot{MemorySlot: storage.NewMemorySlot(), stored: make(chan struct{}, 1)}
	c := client.New(client.Deps{
		View:      view,
		Navigator: view,
		Fetcher: fetcherFunc(func(context.Context) (domain.ResultSet, error) {
			return domain.ResultSet{api, docs}, nil
		}),
		Slot: slot,
	}, client.Options{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	select {
	case <-slot.stored:
	case <-ctx.Done():
		t.Fatal("fetch result was never cached")
	}
	// events are applied in order, so the digit sees the fetched list
	require.True(t, c.Post(ctx, client.Key{Name: "2"}))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("client did not stop after navigating")
	}
	require.Equal(t, []string{docs.URL}, view.navigate)

	stored, found, err := slot.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, domain.EncodeResultSet(domain.ResultSet{api, docs}), stored)
}

func TestClient_Run_StopsOnContextCancel(t *testing.T) {
	view := &fakeView{}
	c := client.New(client.Deps{
		View:      view,
		Navigator: view,
		Fetcher: fetcherFunc(func(ctx context.Context) (domain.ResultSet, error) {
			<-ctx.Done()

			return nil, ctx.Err()
		}),
		Slot: storage.NewMemorySlot(),
	}, client.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("client did not stop")
	}
}

func TestPhaseAndOutcomeStrings(t *testing.T) {
	require.Equal(t, "cached-render", client.PhaseCachedRender.String())
	require.Equal(t, "ready", client.PhaseReady.String())
	require.Equal(t, "unchanged", client.OutcomeUnchanged.String())
	require.Equal(t, "first-render", client.OutcomeFirstRender.String())
}
