package tunnel

import (
	"errors"
	"fmt"
	"io"
	"net"

	"rrp.dev/internal/rerr"
	"rrp.dev/internal/rlog"
	"rrp.dev/internal/rpcproto"
	"rrp.dev/status"
)

// connReadBufferSize is the chunk size used when relaying bytes from a TCP
// connection onto a gRPC stream, matching the original's fixed 4096-byte
// read buffer.
const connReadBufferSize = 4096

// Engine implements rpcproto.ReverseProxyServer: it is the whole of the
// server's domain logic, independent of the auth and transport plumbing
// around it.
type Engine struct {
	queue   *Queue
	tracker *status.PortTracker
}

// NewEngine returns an Engine with an empty pending-connection queue. One
// Engine is shared across every authenticated stream for the life of the
// server process.
func NewEngine() *Engine {
	return &Engine{queue: NewQueue()}
}

// SetTracker attaches a status.PortTracker that BindTcp keeps up to date
// with the set of bound ports and their queue depth, for the debug status
// endpoint to report. Optional: a nil tracker (the default) disables
// reporting.
func (e *Engine) SetTracker(tracker *status.PortTracker) {
	e.tracker = tracker
}

// BindTcp opens a TCP listener — on the requested port, or an OS-assigned
// one if the request didn't specify one — and streams back one message per
// event: first the bound port, then one TcpNewConnection notification per
// accepted connection. It runs for as long as the caller keeps the stream
// open; when the stream's context is cancelled the listener is torn down
// and any connections still queued for it are closed.
func (e *Engine) BindTcp(req *rpcproto.TcpBindRequest, stream rpcproto.ReverseProxy_BindTcpServer) error {
	const op = "tunnel.Engine.BindTcp"

	requested, err := rpcproto.ValidatePort(req.GetPort())
	if err != nil {
		return rerr.E(op, rerr.InvalidArgument, err)
	}

	listener, err := net.Listen("tcp", fmt.Sprintf("0.0.0.0:%d", requested))
	if err != nil {
		return rerr.E(op, rerr.Internal, rerr.Errorf("failed to start a new tcp server: %w", err))
	}
	defer listener.Close()

	boundPort := uint16(listener.Addr().(*net.TCPAddr).Port)
	defer e.queue.Release(boundPort)
	if e.tracker != nil {
		e.tracker.SetPending(boundPort, 0)
		defer e.tracker.Remove(boundPort)
	}

	if err := stream.Send(&rpcproto.TcpBindResponse{
		Response: &rpcproto.TcpBindResponse_Metadata{
			Metadata: &rpcproto.TcpBindResponseMetadata{Port: int32(boundPort)},
		},
	}); err != nil {
		return err
	}

	// Unblock listener.Accept once the caller hangs up, rather than
	// leaking the Accept goroutine for the life of the process.
	go func() {
		<-stream.Context().Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if stream.Context().Err() != nil {
				return nil
			}
			return rerr.E(op, rerr.Io, err)
		}

		e.queue.Push(boundPort, conn)
		if e.tracker != nil {
			e.tracker.SetPending(boundPort, e.queue.Len(boundPort))
		}
		if err := stream.Send(&rpcproto.TcpBindResponse{
			Response: &rpcproto.TcpBindResponse_Connection{Connection: &rpcproto.TcpNewConnection{}},
		}); err != nil {
			conn.Close()
			return err
		}
	}
}

// AcceptTcpConnection claims one connection queued by a prior BindTcp call
// and relays bytes between it and the caller for as long as either side
// keeps talking.
func (e *Engine) AcceptTcpConnection(stream rpcproto.ReverseProxy_AcceptTcpConnectionServer) error {
	const op = "tunnel.Engine.AcceptTcpConnection"

	first, err := stream.Recv()
	if err != nil {
		return rerr.E(op, rerr.Cancelled, rerr.Errorf("empty request"))
	}
	metadata, ok := first.Request.(*rpcproto.TcpAcceptRequest_Metadata)
	if !ok {
		return rerr.E(op, rerr.InvalidArgument, rerr.Errorf("the first message needs to contain metadata"))
	}
	port, err := rpcproto.ValidatePort(metadata.Metadata.GetPort())
	if err != nil {
		return rerr.E(op, rerr.InvalidArgument, err)
	}

	conn, ok := e.queue.Pop(port)
	if !ok {
		return rerr.E(op, rerr.InvalidArgument, rerr.Errorf("there are no pending connections on port: %d", port))
	}
	defer conn.Close()

	return duplex(stream, conn)
}

// duplex relays bytes between conn and stream in both directions at once.
// The receive-from-stream direction runs on the calling goroutine; the
// read-from-conn direction runs on a second goroutine, and its completion is
// reported back over sendDone. Closing conn unblocks whichever side is still
// waiting on it, the same role AcceptConnectionsStream's Drop plays for the
// listener on the bind side.
func duplex(stream rpcproto.ReverseProxy_AcceptTcpConnectionServer, conn net.Conn) error {
	sendDone := make(chan error, 1)
	go func() {
		sendDone <- connToStream(stream, conn)
	}()

	recvErr := streamToConn(stream, conn)
	conn.Close()
	sendErr := <-sendDone

	if recvErr != nil {
		return recvErr
	}
	return sendErr
}

// connToStream reads from conn and forwards each chunk as a Packet. When
// conn reaches EOF it sends one empty Packet to tell the peer that no more
// data is coming from this direction, then returns — matching the
// original's client_eof flag, which stops the read branch after the single
// EOF notification. Any other read error is treated the way the original's
// select! arm treats it: ignore this iteration and keep waiting on the
// other direction, rather than ending an otherwise healthy tunnel over one
// bad read.
func connToStream(stream rpcproto.ReverseProxy_AcceptTcpConnectionServer, conn net.Conn) error {
	buf := make([]byte, connReadBufferSize)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			data := append([]byte(nil), buf[:n]...)
			if sendErr := stream.Send(&rpcproto.Packet{Data: data}); sendErr != nil {
				return sendErr
			}
		}
		if err != nil {
			if err == io.EOF {
				return stream.Send(&rpcproto.Packet{Data: nil})
			}
			if errors.Is(err, net.ErrClosed) {
				// conn was closed out from under us by duplex's teardown,
				// not a transient failure; no other branch is left to wait
				// on, so stop here instead of spinning.
				return nil
			}
			rlog.Debug.Printf("tunnel.connToStream: read from connection failed: %v", err)
			continue
		}
	}
}

// streamToConn receives Packets from stream and writes their payload into
// conn, until the caller closes its send direction.
func streamToConn(stream rpcproto.ReverseProxy_AcceptTcpConnectionServer, conn net.Conn) error {
	for {
		msg, err := stream.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		packet, ok := msg.Request.(*rpcproto.TcpAcceptRequest_Packet)
		if !ok {
			return rerr.E("tunnel.streamToConn", rerr.InvalidArgument,
				rerr.Errorf("all messages, except the first one, need to contain a packet"))
		}
		if len(packet.Packet.GetData()) == 0 {
			continue
		}
		if _, err := conn.Write(packet.Packet.GetData()); err != nil {
			rlog.Debug.Printf("tunnel.streamToConn: write to connection failed: %v", err)
			return err
		}
	}
}
