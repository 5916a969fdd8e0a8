// Code generated by hand in the style of protoc-gen-go-grpc against
// reverseproxy.proto. See reverseproxy.pb.go for the message types.

package rpcproto

import (
	context "context"

	grpc "google.golang.org/grpc"
)

// ReverseProxyClient is the client API for the ReverseProxy service.
type ReverseProxyClient interface {
	BindTcp(ctx context.Context, in *TcpBindRequest, opts ...grpc.CallOption) (ReverseProxy_BindTcpClient, error)
	AcceptTcpConnection(ctx context.Context, opts ...grpc.CallOption) (ReverseProxy_AcceptTcpConnectionClient, error)
}

type reverseProxyClient struct {
	cc *grpc.ClientConn
}

// NewReverseProxyClient returns a client stub bound to cc.
func NewReverseProxyClient(cc *grpc.ClientConn) ReverseProxyClient {
	return &reverseProxyClient{cc}
}

func (c *reverseProxyClient) BindTcp(ctx context.Context, in *TcpBindRequest, opts ...grpc.CallOption) (ReverseProxy_BindTcpClient, error) {
	stream, err := c.cc.NewStream(ctx, &_ReverseProxy_serviceDesc.Streams[0], "/reverseproxy.ReverseProxy/BindTcp", opts...)
	if err != nil {
		return nil, err
	}
	x := &reverseProxyBindTcpClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// ReverseProxy_BindTcpClient is the client side of the BindTcp response
// stream: one Metadata message followed by zero or more Connection
// notifications.
type ReverseProxy_BindTcpClient interface {
	Recv() (*TcpBindResponse, error)
	grpc.ClientStream
}

type reverseProxyBindTcpClient struct {
	grpc.ClientStream
}

func (x *reverseProxyBindTcpClient) Recv() (*TcpBindResponse, error) {
	m := new(TcpBindResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *reverseProxyClient) AcceptTcpConnection(ctx context.Context, opts ...grpc.CallOption) (ReverseProxy_AcceptTcpConnectionClient, error) {
	stream, err := c.cc.NewStream(ctx, &_ReverseProxy_serviceDesc.Streams[1], "/reverseproxy.ReverseProxy/AcceptTcpConnection", opts...)
	if err != nil {
		return nil, err
	}
	return &reverseProxyAcceptTcpConnectionClient{stream}, nil
}

// ReverseProxy_AcceptTcpConnectionClient is the client side of the
// AcceptTcpConnection duplex stream.
type ReverseProxy_AcceptTcpConnectionClient interface {
	Send(*TcpAcceptRequest) error
	Recv() (*Packet, error)
	grpc.ClientStream
}

type reverseProxyAcceptTcpConnectionClient struct {
	grpc.ClientStream
}

func (x *reverseProxyAcceptTcpConnectionClient) Send(m *TcpAcceptRequest) error {
	return x.ClientStream.SendMsg(m)
}

func (x *reverseProxyAcceptTcpConnectionClient) Recv() (*Packet, error) {
	m := new(Packet)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ReverseProxyServer is the server API for the ReverseProxy service.
type ReverseProxyServer interface {
	BindTcp(*TcpBindRequest, ReverseProxy_BindTcpServer) error
	AcceptTcpConnection(ReverseProxy_AcceptTcpConnectionServer) error
}

// ReverseProxy_BindTcpServer is the server side of the BindTcp response
// stream.
type ReverseProxy_BindTcpServer interface {
	Send(*TcpBindResponse) error
	grpc.ServerStream
}

type reverseProxyBindTcpServer struct {
	grpc.ServerStream
}

func (x *reverseProxyBindTcpServer) Send(m *TcpBindResponse) error {
	return x.ServerStream.SendMsg(m)
}

// ReverseProxy_AcceptTcpConnectionServer is the server side of the
// AcceptTcpConnection duplex stream.
type ReverseProxy_AcceptTcpConnectionServer interface {
	Send(*Packet) error
	Recv() (*TcpAcceptRequest, error)
	grpc.ServerStream
}

type reverseProxyAcceptTcpConnectionServer struct {
	grpc.ServerStream
}

func (x *reverseProxyAcceptTcpConnectionServer) Send(m *Packet) error {
	return x.ServerStream.SendMsg(m)
}

func (x *reverseProxyAcceptTcpConnectionServer) Recv() (*TcpAcceptRequest, error) {
	m := new(TcpAcceptRequest)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func _ReverseProxy_BindTcp_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(TcpBindRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ReverseProxyServer).BindTcp(m, &reverseProxyBindTcpServer{stream})
}

func _ReverseProxy_AcceptTcpConnection_Handler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(ReverseProxyServer).AcceptTcpConnection(&reverseProxyAcceptTcpConnectionServer{stream})
}

var _ReverseProxy_serviceDesc = grpc.ServiceDesc{
	ServiceName: "reverseproxy.ReverseProxy",
	HandlerType: (*ReverseProxyServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "BindTcp",
			Handler:       _ReverseProxy_BindTcp_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "AcceptTcpConnection",
			Handler:       _ReverseProxy_AcceptTcpConnection_Handler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
	Metadata: "reverseproxy.proto",
}

// RegisterReverseProxyServer registers srv with s under the service name
// reverseproxy.ReverseProxy.
func RegisterReverseProxyServer(s *grpc.Server, srv ReverseProxyServer) {
	s.RegisterService(&_ReverseProxy_serviceDesc, srv)
}
