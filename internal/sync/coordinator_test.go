package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/quennell/appliancelink/internal/appliance"
	"github.com/quennell/appliancelink/internal/cloud"
)

// MockAPIClient implements cloud.APIClient for coordinator tests.
type MockAPIClient struct {
	mu sync.Mutex

	summaries []cloud.ApplianceSummary
	listErr   error

	states   map[string]map[string]any
	stateErr map[string]error
	caps     map[string]map[string]any
	infos    map[string]*cloud.ApplianceInfo
	infoErr  map[string]error

	listCalls  int
	stateCalls map[string]int
	closed     bool
}

func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{
		states:     make(map[string]map[string]any),
		stateErr:   make(map[string]error),
		caps:       make(map[string]map[string]any),
		infos:      make(map[string]*cloud.ApplianceInfo),
		infoErr:    make(map[string]error),
		stateCalls: make(map[string]int),
	}
}

func (m *MockAPIClient) ListAppliances(context.Context) ([]cloud.ApplianceSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.summaries, nil
}

func (m *MockAPIClient) GetApplianceState(_ context.Context, id string) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stateCalls[id]++
	if err := m.stateErr[id]; err != nil {
		return nil, err
	}
	state, ok := m.states[id]
	if !ok {
		return nil, fmt.Errorf("no state for %s", id)
	}
	return state, nil
}

func (m *MockAPIClient) GetApplianceCapabilities(_ context.Context, id string) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.caps[id], nil
}

func (m *MockAPIClient) GetApplianceInfo(_ context.Context, id string) (*cloud.ApplianceInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.infoErr[id]; err != nil {
		return nil, err
	}
	info, ok := m.infos[id]
	if !ok {
		return nil, fmt.Errorf("no info for %s", id)
	}
	return info, nil
}

func (m *MockAPIClient) ExecuteCommand(context.Context, string, map[string]any) error {
	return nil
}

func (m *MockAPIClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MockAPIClient) StateCalls(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateCalls[id]
}

// MockStreamClient implements cloud.StreamClient for coordinator tests.
type MockStreamClient struct {
	mu          sync.Mutex
	subscribes  [][]string
	disconnects int
	closed      bool
	subErr      error
}

func (m *MockStreamClient) Subscribe(_ context.Context, ids []string, _ cloud.EventHandler) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subErr != nil {
		return m.subErr
	}
	m.subscribes = append(m.subscribes, ids)
	return nil
}

func (m *MockStreamClient) Disconnect(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disconnects++
	return nil
}

func (m *MockStreamClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// MockNotifier records host change signals.
type MockNotifier struct {
	mu                sync.Mutex
	stateChanged      []string
	appliancesChanged int
}

func (m *MockNotifier) StateChanged(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stateChanged = append(m.stateChanged, id)
}

func (m *MockNotifier) AppliancesChanged() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appliancesChanged++
}

func (m *MockNotifier) StateChanges() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.stateChanged))
	copy(out, m.stateChanged)
	return out
}

func (m *MockNotifier) SetChanges() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appliancesChanged
}

type sinkRecord struct {
	applianceID string
	source      string
}

// MockSink records state snapshots handed to it.
type MockSink struct {
	mu      sync.Mutex
	records []sinkRecord
	err     error
}

func (m *MockSink) RecordState(_ context.Context, applianceID string, _ appliance.State, source string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, sinkRecord{applianceID: applianceID, source: source})
	return nil
}

func (m *MockSink) Records() []sinkRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sinkRecord, len(m.records))
	copy(out, m.records)
	return out
}

func washerState(timeToEnd any) map[string]any {
	return map[string]any{
		"connectionState": "connected",
		"applianceData": map[string]any{
			"applianceType": "WM",
		},
		"properties": map[string]any{
			"reported": map[string]any{
				"applianceState": "RUNNING",
				"timeToEnd":      timeToEnd,
			},
		},
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.SetupTimeout = 5 * time.Second
	cfg.FetchTimeout = time.Second
	cfg.UpdateTimeout = time.Second
	cfg.DeferredDelay = time.Hour
	cfg.ShutdownTimeout = time.Second
	return cfg
}

func newTestCoordinator(api *MockAPIClient, stream *MockStreamClient, cfg Config) (*Coordinator, *MockNotifier) {
	coord := NewCoordinator(api, stream, appliance.NewRegistry(), cfg)
	notifier := &MockNotifier{}
	coord.SetNotifier(notifier)
	return coord, notifier
}

func TestLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		api := NewMockAPIClient()
		coord, _ := newTestCoordinator(api, &MockStreamClient{}, testConfig())
		if err := coord.Login(context.Background()); err != nil {
			t.Fatalf("Login() error = %v", err)
		}
	})

	t.Run("authorization failure is fatal", func(t *testing.T) {
		api := NewMockAPIClient()
		api.listErr = errors.New("server returned 401")
		coord, _ := newTestCoordinator(api, &MockStreamClient{}, testConfig())
		err := coord.Login(context.Background())
		if !errors.Is(err, ErrAuthenticationFailed) {
			t.Fatalf("Login() error = %v, want ErrAuthenticationFailed", err)
		}
	})

	t.Run("transient failure is retryable", func(t *testing.T) {
		api := NewMockAPIClient()
		api.listErr = errors.New("connection refused")
		coord, _ := newTestCoordinator(api, &MockStreamClient{}, testConfig())
		err := coord.Login(context.Background())
		if !errors.Is(err, ErrNotReady) {
			t.Fatalf("Login() error = %v, want ErrNotReady", err)
		}
	})
}

func TestSetupAppliances(t *testing.T) {
	t.Run("registers listed appliances with entities", func(t *testing.T) {
		api := NewMockAPIClient()
		api.summaries = []cloud.ApplianceSummary{
			{ID: "wm-1", Name: "Washer", ConnectionState: "connected"},
		}
		api.infos["wm-1"] = &cloud.ApplianceInfo{Brand: "Electrolux", Model: "EW9"}
		api.states["wm-1"] = washerState(1800)

		coord, notifier := newTestCoordinator(api, &MockStreamClient{}, testConfig())
		if err := coord.SetupAppliances(context.Background()); err != nil {
			t.Fatalf("SetupAppliances() error = %v", err)
		}

		if coord.registry.Count() != 1 {
			t.Fatalf("registry count = %d, want 1", coord.registry.Count())
		}
		if len(coord.Entities("wm-1")) == 0 {
			t.Error("no entities mapped for wm-1")
		}
		if notifier.SetChanges() != 1 {
			t.Errorf("AppliancesChanged fired %d times, want 1", notifier.SetChanges())
		}
	})

	t.Run("one appliance failing does not block the others", func(t *testing.T) {
		api := NewMockAPIClient()
		api.summaries = []cloud.ApplianceSummary{
			{ID: "wm-1", Name: "Washer"},
			{ID: "ov-1", Name: "Oven"},
		}
		api.infos["wm-1"] = &cloud.ApplianceInfo{Brand: "Electrolux", Model: "EW9"}
		api.states["wm-1"] = washerState(1800)
		api.infoErr["ov-1"] = errors.New("timeout")

		coord, _ := newTestCoordinator(api, &MockStreamClient{}, testConfig())
		if err := coord.SetupAppliances(context.Background()); err != nil {
			t.Fatalf("SetupAppliances() error = %v", err)
		}

		if _, err := coord.registry.Get("wm-1"); err != nil {
			t.Errorf("wm-1 not registered: %v", err)
		}
		if _, err := coord.registry.Get("ov-1"); err == nil {
			t.Error("ov-1 registered despite fetch failure")
		}
	})

	t.Run("capability failure leaves appliance functional", func(t *testing.T) {
		api := NewMockAPIClient()
		api.summaries = []cloud.ApplianceSummary{{ID: "wm-1", Name: "Washer"}}
		api.infos["wm-1"] = &cloud.ApplianceInfo{Brand: "Electrolux", Model: "EW9"}
		api.states["wm-1"] = washerState(1800)
		// no capabilities set, GetApplianceCapabilities returns nil map

		coord, _ := newTestCoordinator(api, &MockStreamClient{}, testConfig())
		if err := coord.SetupAppliances(context.Background()); err != nil {
			t.Fatalf("SetupAppliances() error = %v", err)
		}
		if _, err := coord.registry.Get("wm-1"); err != nil {
			t.Fatalf("wm-1 not registered: %v", err)
		}
	})
}

func TestHandleEvent(t *testing.T) {
	setup := func(t *testing.T) (*Coordinator, *MockNotifier, *MockSink) {
		t.Helper()
		api := NewMockAPIClient()
		api.summaries = []cloud.ApplianceSummary{{ID: "wm-1", Name: "Washer"}}
		api.infos["wm-1"] = &cloud.ApplianceInfo{Brand: "Electrolux", Model: "EW9"}
		api.states["wm-1"] = washerState(1800)

		coord, notifier := newTestCoordinator(api, &MockStreamClient{}, testConfig())
		sink := &MockSink{}
		coord.AddSink(sink)
		if err := coord.SetupAppliances(context.Background()); err != nil {
			t.Fatalf("SetupAppliances() error = %v", err)
		}
		return coord, notifier, sink
	}

	t.Run("incremental update", func(t *testing.T) {
		coord, notifier, sink := setup(t)
		coord.HandleEvent(cloud.Event{
			ApplianceID: "wm-1",
			Property:    "applianceState",
			Value:       "PAUSED",
		})

		app, _ := coord.registry.Get("wm-1")
		got, ok := app.ReportedValue("applianceState")
		if !ok || got != "PAUSED" {
			t.Errorf("applianceState = %v, want PAUSED", got)
		}
		if changes := notifier.StateChanges(); len(changes) != 1 || changes[0] != "wm-1" {
			t.Errorf("state changes = %v, want [wm-1]", changes)
		}
		records := sink.Records()
		if len(records) != 1 || records[0].source != appliance.HistorySourceStream {
			t.Errorf("sink records = %v, want one stream record", records)
		}
	})

	t.Run("bulk update", func(t *testing.T) {
		coord, _, _ := setup(t)
		coord.HandleEvent(cloud.Event{
			ApplianceID: "wm-1",
			Data: map[string]any{
				"applianceState": "END_OF_CYCLE",
				"doorState":      "OPEN",
			},
		})

		app, _ := coord.registry.Get("wm-1")
		if got, _ := app.ReportedValue("doorState"); got != "OPEN" {
			t.Errorf("doorState = %v, want OPEN", got)
		}
		if got, _ := app.ReportedValue("timeToEnd"); got != 1800 {
			t.Errorf("timeToEnd = %v, want 1800 preserved through merge", got)
		}
	})

	t.Run("malformed update is dropped", func(t *testing.T) {
		coord, notifier, _ := setup(t)
		// applianceState is a scalar, descending through it must fail
		coord.HandleEvent(cloud.Event{
			ApplianceID: "wm-1",
			Property:    "applianceState/nested",
			Value:       "X",
		})

		app, _ := coord.registry.Get("wm-1")
		if got, _ := app.ReportedValue("applianceState"); got != "RUNNING" {
			t.Errorf("applianceState = %v, want RUNNING untouched", got)
		}
		if len(notifier.StateChanges()) != 0 {
			t.Error("dropped update still notified the host")
		}
	})

	t.Run("unknown appliance is ignored", func(t *testing.T) {
		coord, notifier, _ := setup(t)
		coord.HandleEvent(cloud.Event{ApplianceID: "ghost", Property: "x", Value: 1})
		if len(notifier.StateChanges()) != 0 {
			t.Error("event for unknown appliance notified the host")
		}
	})
}

func TestRefreshAll(t *testing.T) {
	setupTwo := func(t *testing.T) (*Coordinator, *MockAPIClient, *MockSink) {
		t.Helper()
		api := NewMockAPIClient()
		api.summaries = []cloud.ApplianceSummary{
			{ID: "wm-1", Name: "Washer"},
			{ID: "wm-2", Name: "Washer 2"},
		}
		for _, id := range []string{"wm-1", "wm-2"} {
			api.infos[id] = &cloud.ApplianceInfo{Brand: "Electrolux", Model: "EW9"}
			api.states[id] = washerState(1800)
		}
		coord, _ := newTestCoordinator(api, &MockStreamClient{}, testConfig())
		sink := &MockSink{}
		coord.AddSink(sink)
		if err := coord.SetupAppliances(context.Background()); err != nil {
			t.Fatalf("SetupAppliances() error = %v", err)
		}
		return coord, api, sink
	}

	t.Run("partial failure succeeds", func(t *testing.T) {
		coord, api, sink := setupTwo(t)
		api.mu.Lock()
		api.states["wm-1"] = washerState(900)
		api.stateErr["wm-2"] = errors.New("timeout")
		api.mu.Unlock()

		if err := coord.RefreshAll(context.Background()); err != nil {
			t.Fatalf("RefreshAll() error = %v", err)
		}

		app, _ := coord.registry.Get("wm-1")
		if got, _ := app.ReportedValue("timeToEnd"); got != 900 {
			t.Errorf("timeToEnd = %v, want 900", got)
		}
		var pollRecords int
		for _, r := range sink.Records() {
			if r.source == appliance.HistorySourcePoll {
				pollRecords++
			}
		}
		if pollRecords != 1 {
			t.Errorf("poll sink records = %d, want 1", pollRecords)
		}
	})

	t.Run("all failing returns ErrAllUpdatesFailed", func(t *testing.T) {
		coord, api, _ := setupTwo(t)
		api.mu.Lock()
		api.stateErr["wm-1"] = errors.New("timeout")
		api.stateErr["wm-2"] = errors.New("timeout")
		api.mu.Unlock()

		err := coord.RefreshAll(context.Background())
		if !errors.Is(err, ErrAllUpdatesFailed) {
			t.Fatalf("RefreshAll() error = %v, want ErrAllUpdatesFailed", err)
		}
	})

	t.Run("authentication failure aborts immediately", func(t *testing.T) {
		coord, api, _ := setupTwo(t)
		api.mu.Lock()
		api.stateErr["wm-1"] = errors.New("401 unauthorized")
		api.mu.Unlock()

		err := coord.RefreshAll(context.Background())
		if !errors.Is(err, ErrAuthenticationFailed) {
			t.Fatalf("RefreshAll() error = %v, want ErrAuthenticationFailed", err)
		}
	})
}

func TestRefreshAppliance(t *testing.T) {
	setupOne := func(t *testing.T) (*Coordinator, *MockAPIClient, *MockSink) {
		t.Helper()
		api := NewMockAPIClient()
		api.summaries = []cloud.ApplianceSummary{{ID: "wm-1", Name: "Washer"}}
		api.infos["wm-1"] = &cloud.ApplianceInfo{Brand: "Electrolux", Model: "EW9"}
		api.states["wm-1"] = washerState(1800)
		coord, _ := newTestCoordinator(api, &MockStreamClient{}, testConfig())
		sink := &MockSink{}
		coord.AddSink(sink)
		if err := coord.SetupAppliances(context.Background()); err != nil {
			t.Fatalf("SetupAppliances() error = %v", err)
		}
		return coord, api, sink
	}

	t.Run("refetch attributes the given source", func(t *testing.T) {
		coord, api, sink := setupOne(t)
		api.mu.Lock()
		api.states["wm-1"] = washerState(600)
		api.mu.Unlock()

		if err := coord.RefreshAppliance(context.Background(), "wm-1", appliance.HistorySourceCommand); err != nil {
			t.Fatalf("RefreshAppliance() error = %v", err)
		}

		app, _ := coord.registry.Get("wm-1")
		if got, _ := app.ReportedValue("timeToEnd"); got != 600 {
			t.Errorf("timeToEnd = %v, want 600", got)
		}
		var commandRecords int
		for _, r := range sink.Records() {
			if r.source == appliance.HistorySourceCommand {
				commandRecords++
			}
		}
		if commandRecords != 1 {
			t.Errorf("command sink records = %d, want 1", commandRecords)
		}
	})

	t.Run("unknown appliance", func(t *testing.T) {
		coord, _, _ := setupOne(t)
		if err := coord.RefreshAppliance(context.Background(), "ghost", appliance.HistorySourceCommand); err == nil {
			t.Fatal("RefreshAppliance() should fail for an untracked appliance")
		}
	})

	t.Run("auth error classified", func(t *testing.T) {
		coord, api, _ := setupOne(t)
		api.mu.Lock()
		api.stateErr["wm-1"] = errors.New("401 unauthorized")
		api.mu.Unlock()

		err := coord.RefreshAppliance(context.Background(), "wm-1", appliance.HistorySourceCommand)
		if !errors.Is(err, ErrAuthenticationFailed) {
			t.Fatalf("RefreshAppliance() error = %v, want ErrAuthenticationFailed", err)
		}
	})
}

func TestReconcile(t *testing.T) {
	api := NewMockAPIClient()
	api.summaries = []cloud.ApplianceSummary{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
		{ID: "c", Name: "C"},
	}
	for _, id := range []string{"a", "b", "c"} {
		api.infos[id] = &cloud.ApplianceInfo{Brand: "Electrolux", Model: "EW9"}
		api.states[id] = washerState(1800)
	}
	coord, notifier := newTestCoordinator(api, &MockStreamClient{}, testConfig())
	if err := coord.SetupAppliances(context.Background()); err != nil {
		t.Fatalf("SetupAppliances() error = %v", err)
	}

	api.mu.Lock()
	api.summaries = []cloud.ApplianceSummary{
		{ID: "a", Name: "A"},
		{ID: "c", Name: "C"},
	}
	api.mu.Unlock()

	if err := coord.Reconcile(context.Background()); err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	if coord.registry.Count() != 2 {
		t.Errorf("registry count = %d, want 2", coord.registry.Count())
	}
	if _, err := coord.registry.Get("b"); err == nil {
		t.Error("vanished appliance b still tracked")
	}
	if coord.Entities("b") != nil {
		t.Error("vanished appliance b still has entities")
	}
	// one from setup, one from the removal
	if notifier.SetChanges() != 2 {
		t.Errorf("AppliancesChanged fired %d times, want 2", notifier.SetChanges())
	}
}

func TestDeferredScheduling(t *testing.T) {
	newCoord := func() *Coordinator {
		coord, _ := newTestCoordinator(NewMockAPIClient(), &MockStreamClient{}, testConfig())
		return coord
	}

	t.Run("trigger range", func(t *testing.T) {
		tests := []struct {
			value any
			want  bool
		}{
			{0, false},
			{0.5, true},
			{1, true},
			{1.5, false},
			{1800, false},
			{"soon", false},
		}
		for _, tt := range tests {
			if got := deferredTrigger(tt.value); got != tt.want {
				t.Errorf("deferredTrigger(%v) = %v, want %v", tt.value, got, tt.want)
			}
		}
	})

	t.Run("new trigger replaces pending task", func(t *testing.T) {
		coord := newCoord()
		coord.checkDeferred("wm-1", map[string]any{"timeToEnd": 1})
		coord.checkDeferred("wm-1", map[string]any{"timeToEnd": 0.5})
		if got := coord.pendingDeferred(); got != 1 {
			t.Errorf("pending tasks = %d, want 1", got)
		}
	})

	t.Run("net-new triggers beyond the cap are dropped", func(t *testing.T) {
		coord := newCoord()
		for i := 0; i < coord.cfg.DeferredTaskLimit+3; i++ {
			id := fmt.Sprintf("wm-%d", i)
			coord.checkDeferred(id, map[string]any{"timeToEnd": 1})
		}
		if got := coord.pendingDeferred(); got != coord.cfg.DeferredTaskLimit {
			t.Errorf("pending tasks = %d, want %d", got, coord.cfg.DeferredTaskLimit)
		}
	})

	t.Run("replacement bypasses the cap", func(t *testing.T) {
		coord := newCoord()
		for i := 0; i < coord.cfg.DeferredTaskLimit; i++ {
			id := fmt.Sprintf("wm-%d", i)
			coord.checkDeferred(id, map[string]any{"timeToEnd": 1})
		}
		// wm-0 already pending, retrigger must not be dropped
		coord.checkDeferred("wm-0", map[string]any{"timeToEnd": 0.5})
		if got := coord.pendingDeferred(); got != coord.cfg.DeferredTaskLimit {
			t.Errorf("pending tasks = %d, want %d", got, coord.cfg.DeferredTaskLimit)
		}
	})

	t.Run("zero remaining does not trigger", func(t *testing.T) {
		coord := newCoord()
		coord.checkDeferred("wm-1", map[string]any{"timeToEnd": 0})
		if got := coord.pendingDeferred(); got != 0 {
			t.Errorf("pending tasks = %d, want 0", got)
		}
	})
}

func TestDeferredRefetch(t *testing.T) {
	api := NewMockAPIClient()
	api.summaries = []cloud.ApplianceSummary{{ID: "wm-1", Name: "Washer"}}
	api.infos["wm-1"] = &cloud.ApplianceInfo{Brand: "Electrolux", Model: "EW9"}
	api.states["wm-1"] = washerState(1)

	cfg := testConfig()
	cfg.DeferredDelay = 10 * time.Millisecond

	coord, _ := newTestCoordinator(api, &MockStreamClient{}, cfg)
	sink := &MockSink{}
	coord.AddSink(sink)
	if err := coord.SetupAppliances(context.Background()); err != nil {
		t.Fatalf("SetupAppliances() error = %v", err)
	}

	api.mu.Lock()
	api.states["wm-1"] = washerState(0)
	api.mu.Unlock()

	coord.checkDeferred("wm-1", map[string]any{"timeToEnd": 1})

	deadline := time.After(2 * time.Second)
	for {
		app, _ := coord.registry.Get("wm-1")
		if got, _ := app.ReportedValue("timeToEnd"); got == 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("deferred refetch did not apply within 2s")
		case <-time.After(10 * time.Millisecond):
		}
	}

	if coord.pendingDeferred() != 0 {
		t.Errorf("pending tasks = %d after fire, want 0", coord.pendingDeferred())
	}
	var deferredRecords int
	for _, r := range sink.Records() {
		if r.source == appliance.HistorySourceDeferred {
			deferredRecords++
		}
	}
	if deferredRecords != 1 {
		t.Errorf("deferred sink records = %d, want 1", deferredRecords)
	}
}

func TestStartAndClose(t *testing.T) {
	api := NewMockAPIClient()
	api.summaries = []cloud.ApplianceSummary{{ID: "wm-1", Name: "Washer"}}
	api.infos["wm-1"] = &cloud.ApplianceInfo{Brand: "Electrolux", Model: "EW9"}
	api.states["wm-1"] = washerState(1800)

	stream := &MockStreamClient{}
	coord, _ := newTestCoordinator(api, stream, testConfig())
	if err := coord.SetupAppliances(context.Background()); err != nil {
		t.Fatalf("SetupAppliances() error = %v", err)
	}

	if err := coord.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	stream.mu.Lock()
	if len(stream.subscribes) != 1 || len(stream.subscribes[0]) != 1 {
		t.Errorf("subscribes = %v, want one subscription for one appliance", stream.subscribes)
	}
	stream.mu.Unlock()

	if err := coord.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	stream.mu.Lock()
	if !stream.closed {
		t.Error("stream not closed")
	}
	stream.mu.Unlock()
	api.mu.Lock()
	if !api.closed {
		t.Error("api client not closed")
	}
	api.mu.Unlock()
}
