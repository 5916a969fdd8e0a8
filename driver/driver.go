// Package driver implements the client half of the tunnel: dialing a
// configured server, requesting a bind, and for every connection the server
// reports, opening a fresh connection to the local service and a fresh
// AcceptTcpConnection stream to the server to relay bytes between them. All
// of those streams share the one gRPC connection that Expose is given; no
// separate connection to the server is dialed per tunnel. Grounded on
// original_source/client/src/proxy.rs's expose_port/accept_connection.
package driver

import (
	"context"
	"fmt"
	"io"
	"net"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/metadata"

	"rrp.dev/config"
	"rrp.dev/internal/rerr"
	"rrp.dev/internal/rlog"
	"rrp.dev/internal/rpcproto"
	"rrp.dev/tlsconfig"
	"rrp.dev/token"
)

// backpressureCapacity bounds how many unsent packets a single local
// connection's read side may buffer before it blocks, so one fast-reading
// local service can't run the tunnel out of memory. Matches the original's
// LOCAL_SERVER_PACKET_BACK_PRESSURE.
const backpressureCapacity = 10

const connReadBufferSize = 4096

// Dial opens an authenticated gRPC connection to server, pinning its
// certificate and attaching its token as the "authorization" metadata on
// every call.
func Dial(ctx context.Context, server config.ServerEntry) (*grpc.ClientConn, error) {
	const op = "driver.Dial"

	tlsCfg, err := tlsconfig.ClientConfig([]byte(server.Certificate), server.CertificateHostname)
	if err != nil {
		return nil, rerr.E(op, rerr.Config, err)
	}

	conn, err := grpc.DialContext(ctx, server.URL,
		grpc.WithTransportCredentials(credentials.NewTLS(tlsCfg)),
		grpc.WithBlock(),
		grpc.WithChainStreamInterceptor(authStreamInterceptor(server.Token)),
	)
	if err != nil {
		return nil, rerr.E(op, rerr.Io, err)
	}
	return conn, nil
}

func authStreamInterceptor(rawToken string) grpc.StreamClientInterceptor {
	return func(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string,
		streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
		ctx = metadata.AppendToOutgoingContext(ctx, token.MetadataKey, rawToken)
		return streamer(ctx, desc, cc, method, opts...)
	}
}

// Expose requests a bind on the server for externalPort (0 means "let the
// server choose"), prints the bound port the way the CLI's users expect,
// and then services every connection the server reports until ctx is
// cancelled or the bind stream ends.
func Expose(ctx context.Context, conn *grpc.ClientConn, localPort, externalPort uint16) error {
	const op = "driver.Expose"

	client := rpcproto.NewReverseProxyClient(conn)

	req := &rpcproto.TcpBindRequest{}
	if externalPort != 0 {
		port := int32(externalPort)
		req.Port = &port
	}

	bindStream, err := client.BindTcp(ctx, req)
	if err != nil {
		return rerr.E(op, rerr.Io, rerr.Errorf("failed to expose the local port: %w", err))
	}

	first, err := bindStream.Recv()
	if err != nil {
		return rerr.E(op, rerr.Io, err)
	}
	metadataMsg := first.GetMetadata()
	if metadataMsg == nil {
		return rerr.E(op, rerr.Internal, rerr.Errorf("the first message from the server should always contain metadata"))
	}
	boundPort, err := rpcproto.ValidatePort(metadataMsg.GetPort())
	if err != nil {
		return rerr.E(op, rerr.Internal, err)
	}
	fmt.Printf("Reverse proxy listening on port: %d\n", boundPort)

	for {
		msg, err := bindStream.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return rerr.E(op, rerr.Io, err)
		}
		if msg.GetConnection() == nil {
			continue
		}

		go func() {
			if err := acceptConnection(ctx, conn, localPort, boundPort); err != nil {
				rlog.Error.Printf("%s: a client connection was terminated: %v", op, err)
			}
		}()
	}
}

// acceptConnection claims one pending connection on boundPort by opening a
// fresh AcceptTcpConnection stream, dials the local service on localPort,
// and relays bytes between the two for as long as either side keeps
// talking.
func acceptConnection(ctx context.Context, conn *grpc.ClientConn, localPort, boundPort uint16) error {
	const op = "driver.acceptConnection"

	local, err := net.Dial("tcp", net.JoinHostPort("127.0.0.1", fmt.Sprintf("%d", localPort)))
	if err != nil {
		return rerr.E(op, rerr.Io, rerr.Errorf("failed to connect to the local server at %d: %w", localPort, err))
	}
	defer local.Close()

	client := rpcproto.NewReverseProxyClient(conn)
	stream, err := client.AcceptTcpConnection(ctx)
	if err != nil {
		return rerr.E(op, rerr.Io, err)
	}

	port := int32(boundPort)
	if err := stream.Send(&rpcproto.TcpAcceptRequest{
		Request: &rpcproto.TcpAcceptRequest_Metadata{Metadata: &rpcproto.TcpAcceptRequestMetadata{Port: port}},
	}); err != nil {
		return rerr.E(op, rerr.Io, err)
	}

	// The local connection's read side is decoupled from the stream's send
	// side by a bounded channel: a local service that produces data faster
	// than the tunnel can carry it blocks on this channel instead of
	// growing memory without limit.
	outgoing := make(chan []byte, backpressureCapacity)

	var g errgroup.Group
	g.Go(func() error { return readLocalInto(local, outgoing) })
	g.Go(func() error { return sendOutgoing(stream, outgoing) })
	g.Go(func() error { return pumpStreamToLocal(stream, local) })
	return g.Wait()
}

// readLocalInto reads from local and pushes each chunk onto outgoing,
// closing it once local reaches EOF.
func readLocalInto(local net.Conn, outgoing chan<- []byte) error {
	defer close(outgoing)
	buf := make([]byte, connReadBufferSize)
	for {
		n, err := local.Read(buf)
		if n > 0 {
			data := append([]byte(nil), buf[:n]...)
			outgoing <- data
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return rerr.E("driver.readLocalInto", rerr.Io, err)
		}
	}
}

// sendOutgoing drains outgoing onto the stream as Packets. Unlike the
// server side, EOF here is signalled implicitly by ending the send stream
// once outgoing closes, not by an explicit empty Packet — there is no
// "other direction" waiting on this stream to keep going.
func sendOutgoing(stream rpcproto.ReverseProxy_AcceptTcpConnectionClient, outgoing <-chan []byte) error {
	for data := range outgoing {
		if err := stream.Send(&rpcproto.TcpAcceptRequest{
			Request: &rpcproto.TcpAcceptRequest_Packet{Packet: &rpcproto.Packet{Data: data}},
		}); err != nil {
			return err
		}
	}
	return stream.CloseSend()
}

// pumpStreamToLocal receives Packets from the server and writes their
// payload into local. An empty Packet means the server's external
// connection reached EOF on its read side; this half-closes local's write
// side rather than fully closing it, mirroring the original's
// writer.shutdown().
func pumpStreamToLocal(stream rpcproto.ReverseProxy_AcceptTcpConnectionClient, local net.Conn) error {
	for {
		packet, err := stream.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if len(packet.GetData()) == 0 {
			if half, ok := local.(interface{ CloseWrite() error }); ok {
				return half.CloseWrite()
			}
			return nil
		}
		if _, err := local.Write(packet.GetData()); err != nil {
			return rerr.E("driver.pumpStreamToLocal", rerr.Io,
				rerr.Errorf("failed to write to the local server socket: %w", err))
		}
	}
}
