package exporter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/moffa90/go-fortelion/bms"
	"github.com/moffa90/go-fortelion/bms/bmstest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubSource returns queued results in order, then repeats the last one.
type stubSource struct {
	mu      sync.Mutex
	results []stubResult
	calls   int
}

type stubResult struct {
	snap *bms.Snapshot
	err  error
}

func (s *stubSource) Snapshot(ctx context.Context) (*bms.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	s.calls++
	return s.results[i].snap, s.results[i].err
}

func (s *stubSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestExporter(src Snapshotter) *Exporter {
	return New(src, Options{
		Device:   "test-exporter",
		Interval: time.Millisecond,
		Logger:   zerolog.Nop(),
	})
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestSnapshotBeforeFirstPoll(t *testing.T) {
	e := newTestExporter(&stubSource{results: []stubResult{{snap: &bms.Snapshot{}}}})

	rr := get(t, e.Handler(), "/snapshot")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), ErrNoSnapshot.Error()) {
		t.Errorf("body = %s", rr.Body.String())
	}

	if _, err := e.Latest(); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Latest() error = %v, want ErrNoSnapshot", err)
	}
}

func TestPollPublishesSnapshot(t *testing.T) {
	client := bms.New(bmstest.NewDevice(bmstest.DefaultState()))
	e := newTestExporter(client)

	if err := e.Poll(context.Background()); err != nil {
		t.Fatalf("Poll() error = %v", err)
	}

	rr := get(t, e.Handler(), "/snapshot")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var got struct {
		ModuleVoltage         uint32 `json:"module_voltage_mv"`
		RelativeStateOfCharge uint32 `json:"relative_state_of_charge"`
		Faults                []struct {
			Item  string `json:"item"`
			State string `json:"state"`
		} `json:"faults"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.ModuleVoltage != 26416 {
		t.Errorf("module_voltage_mv = %d, want 26416", got.ModuleVoltage)
	}
	if got.RelativeStateOfCharge != 64 {
		t.Errorf("relative_state_of_charge = %d, want 64", got.RelativeStateOfCharge)
	}
	if len(got.Faults) != 24 {
		t.Errorf("len(faults) = %d, want 24", len(got.Faults))
	}
}

func TestPollFailureKeepsLastSnapshot(t *testing.T) {
	first := &bms.Snapshot{StateOfHealth: 96}
	src := &stubSource{results: []stubResult{
		{snap: first},
		{err: errors.New("link down")},
	}}
	e := newTestExporter(src)

	if err := e.Poll(context.Background()); err != nil {
		t.Fatalf("first Poll() error = %v", err)
	}
	if err := e.Poll(context.Background()); err == nil {
		t.Fatal("second Poll() error = nil, want error")
	}

	snap, err := e.Latest()
	if err != nil || snap != first {
		t.Errorf("Latest() = %v, %v; want first snapshot", snap, err)
	}

	rr := get(t, e.Handler(), "/health")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `"status":"degraded"`) || !strings.Contains(body, "link down") {
		t.Errorf("health body = %s", body)
	}
}

func TestHealthOK(t *testing.T) {
	e := newTestExporter(&stubSource{results: []stubResult{{snap: &bms.Snapshot{}}}})
	_ = e.Poll(context.Background())

	rr := get(t, e.Handler(), "/health")
	body := rr.Body.String()
	if !strings.Contains(body, `"status":"ok"`) || !strings.Contains(body, `"device":"test-exporter"`) {
		t.Errorf("health body = %s", body)
	}
}

func TestMetricsRoute(t *testing.T) {
	client := bms.New(bmstest.NewDevice(bmstest.DefaultState()))
	e := New(client, Options{Device: "metrics-route", Logger: zerolog.Nop()})
	_ = e.Poll(context.Background())

	rr := get(t, e.Handler(), "/metrics")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{
		`fortelion_up{device="metrics-route"} 1`,
		`fortelion_battery_state_of_health_percent{device="metrics-route"} 96`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	e := New(&stubSource{results: []stubResult{{snap: &bms.Snapshot{}}}}, Options{
		CORSOrigins: []string{"http://dashboard.local"},
		Logger:      zerolog.Nop(),
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr := httptest.NewRecorder()
	e.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	rr = httptest.NewRecorder()
	e.Handler().ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://dashboard.local" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRunPollsUntilCancelled(t *testing.T) {
	src := &stubSource{results: []stubResult{{snap: &bms.Snapshot{}}}}
	e := newTestExporter(src)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		e.Run(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for src.Calls() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d polls before deadline", src.Calls())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestServe(t *testing.T) {
	src := &stubSource{results: []stubResult{{snap: &bms.Snapshot{}}}}
	e := newTestExporter(src)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- e.Serve(ctx, "127.0.0.1:0") }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServeListenError(t *testing.T) {
	e := newTestExporter(&stubSource{results: []stubResult{{snap: &bms.Snapshot{}}}})

	err := e.Serve(context.Background(), "256.0.0.1:bad")
	if err == nil {
		t.Fatal("Serve() error = nil, want listen error")
	}
}

func TestRequestLoggerWritesLine(t *testing.T) {
	var buf strings.Builder
	e := New(&stubSource{results: []stubResult{{snap: &bms.Snapshot{}}}}, Options{
		Logger: zerolog.New(&buf).Level(zerolog.DebugLevel),
	})

	get(t, e.Handler(), "/snapshot")

	line := buf.String()
	if !strings.Contains(line, `"path":"/snapshot"`) || !strings.Contains(line, `"status":503`) {
		t.Errorf("log = %s", line)
	}
}

func TestInvalidTrustedProxiesLogged(t *testing.T) {
	var buf strings.Builder
	New(&stubSource{results: []stubResult{{snap: &bms.Snapshot{}}}}, Options{
		Logger:         zerolog.New(&buf),
		TrustedProxies: []string{"not-an-address"},
	})

	line := buf.String()
	if !strings.Contains(line, "invalid trusted proxies") || !strings.Contains(line, "not-an-address") {
		t.Errorf("log = %s", line)
	}

	buf.Reset()
	New(&stubSource{results: []stubResult{{snap: &bms.Snapshot{}}}}, Options{
		Logger: zerolog.New(&buf),
	})
	if buf.Len() != 0 {
		t.Errorf("unexpected log for default proxies: %s", buf.String())
	}
}
