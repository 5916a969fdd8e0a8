package tunnel

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func pipeConn(t *testing.T) net.Conn {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() { client.Close(); server.Close() })
	return server
}

func TestQueuePushPopOrdering(t *testing.T) {
	q := NewQueue()
	a := pipeConn(t)
	b := pipeConn(t)

	q.Push(8080, a)
	q.Push(8080, b)

	got1, ok := q.Pop(8080)
	require.True(t, ok)
	require.Same(t, a, got1)

	got2, ok := q.Pop(8080)
	require.True(t, ok)
	require.Same(t, b, got2)

	_, ok = q.Pop(8080)
	require.False(t, ok)
}

func TestQueuePopEmptyReturnsFalse(t *testing.T) {
	q := NewQueue()
	_, ok := q.Pop(1234)
	require.False(t, ok)
}

func TestQueueReleaseClosesPendingConnections(t *testing.T) {
	q := NewQueue()
	client, server := net.Pipe()
	defer client.Close()

	q.Push(9090, server)
	q.Release(9090)

	_, ok := q.Pop(9090)
	require.False(t, ok, "Release must remove the port's entry entirely")

	_, err := server.Write([]byte("x"))
	require.Error(t, err, "Release must close every connection it discards")
}

func TestQueueIsolatesDifferentPorts(t *testing.T) {
	q := NewQueue()
	a := pipeConn(t)
	q.Push(1, a)

	_, ok := q.Pop(2)
	require.False(t, ok)

	got, ok := q.Pop(1)
	require.True(t, ok)
	require.Same(t, a, got)
}
