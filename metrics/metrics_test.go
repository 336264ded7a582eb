package metrics

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/flavioheleno/oledbitmap"
)

func TestReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"dimensions", fmt.Errorf("a.png: %w", oledbitmap.ErrInvalidDimensions), "invalid_dimensions"},
		{"unreadable", oledbitmap.ErrUnreadableSource, "unreadable_source"},
		{"other", errors.New("disk full"), "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reason(tt.err); got != tt.want {
				t.Errorf("Reason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestObserveFrame(t *testing.T) {
	m := New(nil)

	m.ObserveFrame(time.Millisecond, nil)
	m.ObserveFrame(time.Millisecond, nil)
	m.ObserveFrame(time.Millisecond, oledbitmap.ErrInvalidDimensions)
	m.ObserveBatch()

	if got := testutil.ToFloat64(m.framesEncoded); got != 2 {
		t.Errorf("frames encoded = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.framesFailed.WithLabelValues("invalid_dimensions")); got != 1 {
		t.Errorf("frames failed = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.batches); got != 1 {
		t.Errorf("batches = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.encodeDuration); got != 1 {
		t.Errorf("histogram series = %d, want 1", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveFrame(time.Second, nil)
	m.ObserveBatch()
	if m.Registry() != nil {
		t.Error("nil Metrics should have no registry")
	}
	if err := m.Push("http://localhost:1", ""); err == nil {
		t.Error("Push() on nil Metrics should fail")
	}
}

func TestPush(t *testing.T) {
	var (
		gotPath string
		gotBody []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := New(nil)
	m.ObserveFrame(time.Millisecond, nil)

	if err := m.Push(srv.URL, ""); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if gotPath != "/metrics/job/"+DefaultJob {
		t.Errorf("push path = %q, want /metrics/job/%s", gotPath, DefaultJob)
	}
	if len(gotBody) == 0 {
		t.Error("push sent an empty body")
	}
}
