// Package status exposes a small operator-facing HTTP endpoint reporting
// the tunnel server's runtime state, rendered from Markdown to HTML the same
// way serverutil/frontend's documentation pages are, and gzip-compressed
// the same way too.
package status

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/russross/blackfriday"
)

// Reporter supplies the live facts the status page renders. Implemented in
// the server binary by a small adapter over a PortTracker and the
// config.Allowlist; kept as an
// interface here so this package doesn't import the domain packages that
// would otherwise create an import cycle.
type Reporter interface {
	// ActivePorts returns the external ports currently bound, each with
	// the number of connections presently queued on it.
	ActivePorts() map[uint16]int
	// AllowedClientCount returns how many clients are in the allow-list.
	AllowedClientCount() int
}

// Handler serves a Markdown-rendered snapshot of reporter's state at
// /debug/status, gzip-compressed for anything that asked for it.
func Handler(reporter Reporter, startedAt time.Time) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/status", func(w http.ResponseWriter, r *http.Request) {
		md := renderMarkdown(reporter, startedAt)
		html := blackfriday.MarkdownCommon(md)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(html)
	})
	return gziphandler.GzipHandler(mux)
}

func renderMarkdown(reporter Reporter, startedAt time.Time) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# rrp-server status\n\n")
	fmt.Fprintf(&buf, "Uptime: %s\n\n", time.Since(startedAt).Round(time.Second))
	fmt.Fprintf(&buf, "Allowed clients: %d\n\n", reporter.AllowedClientCount())

	ports := reporter.ActivePorts()
	if len(ports) == 0 {
		fmt.Fprintf(&buf, "No bound ports.\n")
		return buf.Bytes()
	}

	fmt.Fprintf(&buf, "## Bound ports\n\n")
	fmt.Fprintf(&buf, "| Port | Pending connections |\n")
	fmt.Fprintf(&buf, "| ---- | -------------------- |\n")
	for port, pending := range ports {
		fmt.Fprintf(&buf, "| %d | %d |\n", port, pending)
	}
	return buf.Bytes()
}

// NewTracker returns an empty, concurrency-safe port tracker.
func NewTracker() *PortTracker {
	return &PortTracker{ports: make(map[uint16]int)}
}

// PortTracker implements enough of Reporter's port accounting for the
// status endpoint, independent of tunnel.Queue's locking strategy.
type PortTracker struct {
	mu    sync.Mutex
	ports map[uint16]int
}

// SetPending records how many connections are currently queued for port.
func (t *PortTracker) SetPending(port uint16, pending int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ports[port] = pending
}

// Remove forgets port entirely, once its bind is torn down.
func (t *PortTracker) Remove(port uint16) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.ports, port)
}

// ActivePorts implements Reporter's ActivePorts method.
func (t *PortTracker) ActivePorts() map[uint16]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[uint16]int, len(t.ports))
	for k, v := range t.ports {
		out[k] = v
	}
	return out
}
