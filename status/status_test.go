package status

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeReporter struct {
	ports   map[uint16]int
	clients int
}

func (f fakeReporter) ActivePorts() map[uint16]int { return f.ports }
func (f fakeReporter) AllowedClientCount() int      { return f.clients }

func TestHandlerRendersStatusPage(t *testing.T) {
	reporter := fakeReporter{ports: map[uint16]int{8080: 2}, clients: 3}
	h := Handler(reporter, time.Now().Add(-time.Minute))

	req := httptest.NewRequest("GET", "/debug/status", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "8080")
	require.Contains(t, string(body), "rrp-server status")
}

func TestPortTrackerSetAndRemove(t *testing.T) {
	tr := NewTracker()
	tr.SetPending(1234, 5)
	require.Equal(t, map[uint16]int{1234: 5}, tr.ActivePorts())

	tr.Remove(1234)
	require.Empty(t, tr.ActivePorts())
}
