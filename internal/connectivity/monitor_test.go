package connectivity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ST10257746/prog7314-part1-sub000/internal/config"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
)

// scriptedProber replays a fixed list of probe results, then keeps
// returning the last one.
type scriptedProber struct {
	mu      sync.Mutex
	results []bool
	calls   int
}

func (p *scriptedProber) Probe(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.calls
	if i >= len(p.results) {
		i = len(p.results) - 1
	}
	p.calls++
	if p.results[i] {
		return nil
	}
	return errors.New("unreachable")
}

func drain(ch <-chan Event) int {
	n := 0
	for {
		select {
		case <-ch:
			n++
		default:
			return n
		}
	}
}

func TestMonitor_StateMachine(t *testing.T) {
	tests := []struct {
		name       string
		stable     int
		probes     []bool
		wantStates []State
		wantEvents int
	}{
		{
			name:       "validates before going online",
			stable:     2,
			probes:     []bool{true, true, true},
			wantStates: []State{Validating, Online, Online},
			wantEvents: 1,
		},
		{
			name:       "failure while validating resets",
			stable:     2,
			probes:     []bool{true, false, true, true},
			wantStates: []State{Validating, Offline, Validating, Online},
			wantEvents: 1,
		},
		{
			name:       "flapping below threshold never emits",
			stable:     3,
			probes:     []bool{true, true, false, true, false, true, true, false},
			wantStates: []State{Validating, Validating, Offline, Validating, Offline, Validating, Validating, Offline},
			wantEvents: 0,
		},
		{
			name:       "single stable probe",
			stable:     1,
			probes:     []bool{false, true, true},
			wantStates: []State{Offline, Online, Online},
			wantEvents: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMonitor(&scriptedProber{}, time.Second, tt.stable, logger.Nop())
			assert.Equal(t, Offline, m.State())

			events := 0
			for i, ok := range tt.probes {
				m.observe(ok)
				assert.Equal(t, tt.wantStates[i], m.State(), "after probe %d", i)
				events += drain(m.Events())
			}
			assert.Equal(t, tt.wantEvents, events)
		})
	}
}

func TestMonitor_OneEventPerStableTransition(t *testing.T) {
	m := NewMonitor(&scriptedProber{}, time.Second, 2, logger.Nop())

	for _, ok := range []bool{true, true, false, true, true, true} {
		m.observe(ok)
	}

	// two transitions into online, but an undelivered event is not
	// duplicated
	assert.Equal(t, 1, drain(m.Events()))

	m.observe(false)
	m.observe(true)
	m.observe(true)
	assert.Equal(t, 1, drain(m.Events()))
}

func TestMonitor_Run(t *testing.T) {
	prober := &scriptedProber{results: []bool{false, true, true}}
	m := NewMonitor(prober, 10*time.Millisecond, 2, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	select {
	case <-m.Events():
	case <-time.After(2 * time.Second):
		t.Fatal("no reachability event")
	}
	assert.Equal(t, Online, m.State())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop")
	}
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "offline", Offline.String())
	assert.Equal(t, "validating", Validating.String())
	assert.Equal(t, "online", Online.String())
}

func TestHTTPProber(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	p := NewHTTPProber(config.ClientAdapter{HTTPAddress: srv.URL + "/", RequestTimeout: time.Second})
	require.NoError(t, p.Probe(context.Background()))

	healthy.Store(false)
	assert.Error(t, p.Probe(context.Background()))

	srv.Close()
	assert.Error(t, p.Probe(context.Background()))
}
