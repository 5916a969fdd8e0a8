// Package tunnel implements the server side of the reverse proxy: accepting
// external TCP connections on bound ports, queueing them until a tunnel
// driver claims one, and shuttling bytes between the claimed connection and
// the driver's gRPC stream. Grounded on
// original_source/server/src/services.rs's ReverseProxyService.
package tunnel

import (
	"net"
	"sync"
)

// numShards bounds how many independent locks the pending-connection queue
// uses. Every bound port hashes to exactly one shard, so concurrent Push and
// Pop calls on different ports rarely contend for the same mutex — the Go
// analogue of the DashMap<u16, Vec<TcpStream>> the original uses.
const numShards = 32

type queueShard struct {
	mu    sync.Mutex
	conns map[uint16][]net.Conn
}

// Queue is the set of TCP connections accepted on bound ports but not yet
// claimed by an AcceptTcpConnection call.
type Queue struct {
	shards [numShards]*queueShard
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	q := &Queue{}
	for i := range q.shards {
		q.shards[i] = &queueShard{conns: make(map[uint16][]net.Conn)}
	}
	return q
}

func (q *Queue) shardFor(port uint16) *queueShard {
	return q.shards[port%numShards]
}

// Push appends a newly accepted connection to port's queue.
func (q *Queue) Push(port uint16, conn net.Conn) {
	s := q.shardFor(port)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[port] = append(s.conns[port], conn)
}

// Pop removes and returns the oldest pending connection for port, if any.
func (q *Queue) Pop(port uint16) (net.Conn, bool) {
	s := q.shardFor(port)
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.conns[port]
	if len(list) == 0 {
		return nil, false
	}
	conn := list[0]
	s.conns[port] = list[1:]
	return conn, true
}

// Len reports how many connections are currently queued for port.
func (q *Queue) Len(port uint16) int {
	s := q.shardFor(port)
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns[port])
}

// Release closes and discards every connection still queued for port. It is
// called when a bind is torn down, so stale connections are never left
// dangling in the queue — the Go analogue of AcceptConnectionsStream's Drop
// implementation.
func (q *Queue) Release(port uint16) {
	s := q.shardFor(port)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conns[port] {
		c.Close()
	}
	delete(s.conns, port)
}
