package tunnel

import (
	"context"
	"io"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"

	"rrp.dev/internal/rpcproto"
)

// fakeBindStream is a minimal in-process stand-in for
// rpcproto.ReverseProxy_BindTcpServer, enough to drive Engine.BindTcp
// without a real gRPC transport.
type fakeBindStream struct {
	ctx  context.Context
	sent chan *rpcproto.TcpBindResponse
}

func newFakeBindStream(ctx context.Context) *fakeBindStream {
	return &fakeBindStream{ctx: ctx, sent: make(chan *rpcproto.TcpBindResponse, 16)}
}

func (f *fakeBindStream) Send(m *rpcproto.TcpBindResponse) error { f.sent <- m; return nil }
func (f *fakeBindStream) SetHeader(metadata.MD) error            { return nil }
func (f *fakeBindStream) SendHeader(metadata.MD) error           { return nil }
func (f *fakeBindStream) SetTrailer(metadata.MD)                 {}
func (f *fakeBindStream) Context() context.Context               { return f.ctx }
func (f *fakeBindStream) SendMsg(m interface{}) error            { return nil }
func (f *fakeBindStream) RecvMsg(m interface{}) error            { return nil }

func TestBindTcpSendsBoundPortThenAcceptsConnections(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := NewEngine()
	stream := newFakeBindStream(ctx)

	done := make(chan error, 1)
	go func() { done <- e.BindTcp(&rpcproto.TcpBindRequest{}, stream) }()

	var metadataMsg *rpcproto.TcpBindResponse
	select {
	case metadataMsg = <-stream.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for bind metadata")
	}
	md, ok := metadataMsg.Response.(*rpcproto.TcpBindResponse_Metadata)
	require.True(t, ok)
	port := md.Metadata.GetPort()
	require.NotZero(t, port)

	conn, err := net.Dial("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(int(port))))
	require.NoError(t, err)
	defer conn.Close()

	select {
	case notice := <-stream.sent:
		_, ok := notice.Response.(*rpcproto.TcpBindResponse_Connection)
		require.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for connection notice")
	}

	_, ok = e.queue.Pop(uint16(port))
	require.True(t, ok, "the accepted connection must be queued")

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("BindTcp did not return after context cancellation")
	}
}

// fakeAcceptStream is a minimal in-process stand-in for
// rpcproto.ReverseProxy_AcceptTcpConnectionServer.
type fakeAcceptStream struct {
	ctx  context.Context
	recv chan *rpcproto.TcpAcceptRequest
	sent chan *rpcproto.Packet
}

func newFakeAcceptStream(ctx context.Context) *fakeAcceptStream {
	return &fakeAcceptStream{
		ctx:  ctx,
		recv: make(chan *rpcproto.TcpAcceptRequest, 16),
		sent: make(chan *rpcproto.Packet, 16),
	}
}

func (f *fakeAcceptStream) Send(m *rpcproto.Packet) error { f.sent <- m; return nil }
func (f *fakeAcceptStream) Recv() (*rpcproto.TcpAcceptRequest, error) {
	m, ok := <-f.recv
	if !ok {
		return nil, io.EOF
	}
	return m, nil
}
func (f *fakeAcceptStream) SetHeader(metadata.MD) error  { return nil }
func (f *fakeAcceptStream) SendHeader(metadata.MD) error { return nil }
func (f *fakeAcceptStream) SetTrailer(metadata.MD)       {}
func (f *fakeAcceptStream) Context() context.Context     { return f.ctx }
func (f *fakeAcceptStream) SendMsg(m interface{}) error  { return nil }
func (f *fakeAcceptStream) RecvMsg(m interface{}) error  { return nil }

func TestAcceptTcpConnectionRejectsWhenQueueEmpty(t *testing.T) {
	e := NewEngine()
	stream := newFakeAcceptStream(context.Background())
	stream.recv <- &rpcproto.TcpAcceptRequest{
		Request: &rpcproto.TcpAcceptRequest_Metadata{Metadata: &rpcproto.TcpAcceptRequestMetadata{Port: 4242}},
	}

	err := e.AcceptTcpConnection(stream)
	require.Error(t, err)
}

func TestAcceptTcpConnectionRelaysBothDirections(t *testing.T) {
	e := NewEngine()
	external, peer := net.Pipe()
	defer peer.Close()
	e.queue.Push(4242, external)

	stream := newFakeAcceptStream(context.Background())
	stream.recv <- &rpcproto.TcpAcceptRequest{
		Request: &rpcproto.TcpAcceptRequest_Metadata{Metadata: &rpcproto.TcpAcceptRequestMetadata{Port: 4242}},
	}
	stream.recv <- &rpcproto.TcpAcceptRequest{
		Request: &rpcproto.TcpAcceptRequest_Packet{Packet: &rpcproto.Packet{Data: []byte("hello")}},
	}

	done := make(chan error, 1)
	go func() { done <- e.AcceptTcpConnection(stream) }()

	buf := make([]byte, 5)
	_, err := io.ReadFull(peer, buf)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf))

	_, err = peer.Write([]byte("world"))
	require.NoError(t, err)

	var packet *rpcproto.Packet
	select {
	case packet = <-stream.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for relayed packet")
	}
	require.Equal(t, "world", string(packet.Data))

	peer.Close()
	close(stream.recv)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("AcceptTcpConnection did not return after both sides closed")
	}
}
