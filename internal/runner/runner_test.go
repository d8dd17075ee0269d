package runner

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/statuswatch/internal/domain"
	"github.com/hamed0406/statuswatch/internal/probe"
)

// --- fakes ---

type fakeChecker struct {
	mu      sync.Mutex
	results map[string]probe.CheckResult
	calls   int
}

func (f *fakeChecker) Check(ctx context.Context, t domain.Target) probe.CheckResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if r, ok := f.results[t.URL]; ok {
		return r
	}
	return probe.CheckResult{Success: false, Message: "unknown target"}
}

type memStore struct {
	mu    sync.Mutex
	snap  domain.Snapshot
	saves int
}

func (m *memStore) Load() domain.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return domain.Snapshot{}
	}
	return m.snap
}

func (m *memStore) Save(s domain.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = s
	m.saves++
}

type memNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (m *memNotifier) Send(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, text)
	return nil
}

func (m *memNotifier) messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

func tgt(name, url string) domain.Target {
	return domain.Target{Name: name, URL: url, Timeout: time.Second}
}

// --- tests ---

func TestRunner_WentDownNotifiesAndPersists(t *testing.T) {
	chk := &fakeChecker{results: map[string]probe.CheckResult{
		"https://a": {Success: false, StatusCode: 500, Message: "500 Internal Server Error"},
	}}
	st := &memStore{snap: domain.Snapshot{"https://a": true}}
	nt := &memNotifier{}

	r := &Runner{
		Logger:   zap.NewNop(),
		Checker:  chk,
		Store:    st,
		Notifier: nt,
		Targets:  []domain.Target{tgt("a", "https://a")},
	}
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	msgs := nt.messages()
	if len(msgs) != 1 {
		t.Fatalf("want one notification, got %d", len(msgs))
	}
	if !strings.Contains(msgs[0], "Went down") || !strings.Contains(msgs[0], "https://a") {
		t.Fatalf("message should name the downed target:\n%s", msgs[0])
	}
	if up, ok := st.snap["https://a"]; !ok || up {
		t.Fatalf("snapshot should record a as down, got %+v", st.snap)
	}
}

func TestRunner_SteadyStateIsSilentButStillSaves(t *testing.T) {
	chk := &fakeChecker{results: map[string]probe.CheckResult{
		"https://a": {Success: true, StatusCode: 200, LatencyMS: 10, Message: "200 OK"},
	}}
	st := &memStore{snap: domain.Snapshot{"https://a": true}}
	nt := &memNotifier{}

	r := &Runner{
		Logger:   zap.NewNop(),
		Checker:  chk,
		Store:    st,
		Notifier: nt,
		Targets:  []domain.Target{tgt("a", "https://a")},
	}
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(nt.messages()) != 0 {
		t.Fatalf("no transitions means no notification, got %v", nt.messages())
	}
	if st.saves != 1 {
		t.Fatalf("state must be saved regardless of notification, saves=%d", st.saves)
	}
}

func TestRunner_FirstRunHealthyIsSilent(t *testing.T) {
	chk := &fakeChecker{results: map[string]probe.CheckResult{
		"https://a": {Success: true, StatusCode: 200, LatencyMS: 5, Message: "200 OK"},
	}}
	st := &memStore{}
	nt := &memNotifier{}

	r := &Runner{
		Logger:   zap.NewNop(),
		Checker:  chk,
		Store:    st,
		Notifier: nt,
		Targets:  []domain.Target{tgt("a", "https://a")},
	}
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(nt.messages()) != 0 {
		t.Fatalf("healthy first run must not notify, got %v", nt.messages())
	}
}

func TestRunner_FirstRunDownNotifies(t *testing.T) {
	chk := &fakeChecker{results: map[string]probe.CheckResult{
		"https://a": {Success: false, Message: "connection refused"},
	}}
	st := &memStore{}
	nt := &memNotifier{}

	r := &Runner{
		Logger:   zap.NewNop(),
		Checker:  chk,
		Store:    st,
		Notifier: nt,
		Targets:  []domain.Target{tgt("a", "https://a")},
	}
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	msgs := nt.messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "no prior state") {
		t.Fatalf("first-ever-down must notify, got %v", msgs)
	}
}

func TestRunner_ForceReportAlwaysSendsFullReport(t *testing.T) {
	chk := &fakeChecker{results: map[string]probe.CheckResult{
		"https://a": {Success: true, StatusCode: 200, LatencyMS: 10, Message: "200 OK"},
		"https://b": {Success: true, StatusCode: 200, LatencyMS: 20, Message: "200 OK"},
	}}
	st := &memStore{snap: domain.Snapshot{"https://a": true, "https://b": true}}
	nt := &memNotifier{}

	r := &Runner{
		Logger:      zap.NewNop(),
		Checker:     chk,
		Store:       st,
		Notifier:    nt,
		Targets:     []domain.Target{tgt("a", "https://a"), tgt("b", "https://b")},
		ForceReport: true,
	}
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	msgs := nt.messages()
	if len(msgs) != 1 {
		t.Fatalf("forced report must send exactly once, got %d", len(msgs))
	}
	if !strings.Contains(msgs[0], "Up (2)") || !strings.Contains(msgs[0], "https://b") {
		t.Fatalf("forced report must list all targets:\n%s", msgs[0])
	}
}

func TestRunner_NilNotifierIsNoOp(t *testing.T) {
	chk := &fakeChecker{results: map[string]probe.CheckResult{
		"https://a": {Success: false, StatusCode: 500, Message: "500"},
	}}
	st := &memStore{snap: domain.Snapshot{"https://a": true}}

	r := &Runner{
		Logger:  zap.NewNop(),
		Checker: chk,
		Store:   st,
		Targets: []domain.Target{tgt("a", "https://a")},
	}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("unset notifier must not fail the run: %v", err)
	}
	if st.saves != 1 {
		t.Fatalf("state still saved, saves=%d", st.saves)
	}
}

func TestRunner_NoTargetsIsFatal(t *testing.T) {
	r := &Runner{Logger: zap.NewNop(), Checker: &fakeChecker{}, Store: &memStore{}}
	if err := r.Run(context.Background()); err == nil {
		t.Fatal("expected error with no targets")
	}
}

func TestRunner_OutcomesKeepConfigurationOrder(t *testing.T) {
	chk := &fakeChecker{results: map[string]probe.CheckResult{
		"https://a": {Success: false, StatusCode: 500, Message: "500"},
		"https://b": {Success: false, StatusCode: 503, Message: "503"},
	}}
	st := &memStore{snap: domain.Snapshot{"https://a": true, "https://b": true}}
	nt := &memNotifier{}

	r := &Runner{
		Logger:   zap.NewNop(),
		Checker:  chk,
		Store:    st,
		Notifier: nt,
		Targets:  []domain.Target{tgt("b", "https://b"), tgt("a", "https://a")},
	}
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	msgs := nt.messages()
	if len(msgs) != 1 {
		t.Fatalf("want one message, got %d", len(msgs))
	}
	bi := strings.Index(msgs[0], "https://b")
	ai := strings.Index(msgs[0], "https://a")
	if bi < 0 || ai < 0 || bi > ai {
		t.Fatalf("configuration order must survive the fan-out:\n%s", msgs[0])
	}
}
