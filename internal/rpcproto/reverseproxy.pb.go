// Code generated by hand in the style of protoc-gen-go against
// reverseproxy.proto. DO NOT expect byte-for-byte protoc output; this is
// maintained without a protoc toolchain, matching the message shapes and
// wire numbers declared in reverseproxy.proto.

package rpcproto

import (
	fmt "fmt"

	proto "github.com/golang/protobuf/proto"
)

// TcpBindRequest is the single request message of BindTcp. Port is optional;
// absent or zero means "let the server assign any free port."
type TcpBindRequest struct {
	Port                 *int32   `protobuf:"varint,1,opt,name=port" json:"port,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *TcpBindRequest) Reset()         { *m = TcpBindRequest{} }
func (m *TcpBindRequest) String() string { return proto.CompactTextString(m) }
func (*TcpBindRequest) ProtoMessage()    {}

func (m *TcpBindRequest) GetPort() int32 {
	if m != nil && m.Port != nil {
		return *m.Port
	}
	return 0
}

// TcpBindResponseMetadata is the first message sent on every BindTcp
// response stream, carrying the port the server actually bound.
type TcpBindResponseMetadata struct {
	Port                 int32    `protobuf:"varint,1,opt,name=port" json:"port,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *TcpBindResponseMetadata) Reset()         { *m = TcpBindResponseMetadata{} }
func (m *TcpBindResponseMetadata) String() string { return proto.CompactTextString(m) }
func (*TcpBindResponseMetadata) ProtoMessage()    {}

func (m *TcpBindResponseMetadata) GetPort() int32 {
	if m != nil {
		return m.Port
	}
	return 0
}

// TcpNewConnection notifies the client that one new external TCP connection
// was accepted and parked in the server's pending-connection queue.
type TcpNewConnection struct {
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *TcpNewConnection) Reset()         { *m = TcpNewConnection{} }
func (m *TcpNewConnection) String() string { return proto.CompactTextString(m) }
func (*TcpNewConnection) ProtoMessage()    {}

// TcpBindResponse is a BindTcp response message: either the one-time
// Metadata or a Connection notification, never both.
type TcpBindResponse struct {
	// Types that are valid to be assigned to Response:
	//	*TcpBindResponse_Metadata
	//	*TcpBindResponse_Connection
	Response             isTcpBindResponse_Response `protobuf_oneof:"response"`
	XXX_NoUnkeyedLiteral struct{}                   `json:"-"`
	XXX_unrecognized     []byte                     `json:"-"`
	XXX_sizecache        int32                      `json:"-"`
}

func (m *TcpBindResponse) Reset()         { *m = TcpBindResponse{} }
func (m *TcpBindResponse) String() string { return proto.CompactTextString(m) }
func (*TcpBindResponse) ProtoMessage()    {}

type isTcpBindResponse_Response interface {
	isTcpBindResponse_Response()
}

type TcpBindResponse_Metadata struct {
	Metadata *TcpBindResponseMetadata `protobuf:"bytes,1,opt,name=metadata,oneof"`
}

type TcpBindResponse_Connection struct {
	Connection *TcpNewConnection `protobuf:"bytes,2,opt,name=connection,oneof"`
}

func (*TcpBindResponse_Metadata) isTcpBindResponse_Response()   {}
func (*TcpBindResponse_Connection) isTcpBindResponse_Response() {}

func (m *TcpBindResponse) GetMetadata() *TcpBindResponseMetadata {
	if x, ok := m.GetResponse().(*TcpBindResponse_Metadata); ok {
		return x.Metadata
	}
	return nil
}

func (m *TcpBindResponse) GetConnection() *TcpNewConnection {
	if x, ok := m.GetResponse().(*TcpBindResponse_Connection); ok {
		return x.Connection
	}
	return nil
}

func (m *TcpBindResponse) GetResponse() isTcpBindResponse_Response {
	if m != nil {
		return m.Response
	}
	return nil
}

// XXX_OneofWrappers registers the oneof member types for the APIv1 reflection
// based marshaler in github.com/golang/protobuf/proto.
func (*TcpBindResponse) XXX_OneofWrappers() []interface{} {
	return []interface{}{
		(*TcpBindResponse_Metadata)(nil),
		(*TcpBindResponse_Connection)(nil),
	}
}

// TcpAcceptRequestMetadata is the mandatory first message on every
// AcceptTcpConnection request stream, naming the external port whose pending
// queue to claim one connection from.
type TcpAcceptRequestMetadata struct {
	Port                 int32    `protobuf:"varint,1,opt,name=port" json:"port,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *TcpAcceptRequestMetadata) Reset()         { *m = TcpAcceptRequestMetadata{} }
func (m *TcpAcceptRequestMetadata) String() string { return proto.CompactTextString(m) }
func (*TcpAcceptRequestMetadata) ProtoMessage()    {}

func (m *TcpAcceptRequestMetadata) GetPort() int32 {
	if m != nil {
		return m.Port
	}
	return 0
}

// Packet carries a chunk of bytes in either direction of a tunnel. An empty
// Data field carries EOF semantics that differ by direction; see
// reverseproxy.proto and spec.md §4.1.
type Packet struct {
	Data                 []byte   `protobuf:"bytes,1,opt,name=data,proto3" json:"data,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *Packet) Reset()         { *m = Packet{} }
func (m *Packet) String() string { return proto.CompactTextString(m) }
func (*Packet) ProtoMessage()    {}

func (m *Packet) GetData() []byte {
	if m != nil {
		return m.Data
	}
	return nil
}

// TcpAcceptRequest is an AcceptTcpConnection request message: either the
// mandatory first Metadata or a subsequent Packet, never both.
type TcpAcceptRequest struct {
	// Types that are valid to be assigned to Request:
	//	*TcpAcceptRequest_Metadata
	//	*TcpAcceptRequest_Packet
	Request              isTcpAcceptRequest_Request `protobuf_oneof:"request"`
	XXX_NoUnkeyedLiteral struct{}                   `json:"-"`
	XXX_unrecognized     []byte                     `json:"-"`
	XXX_sizecache        int32                      `json:"-"`
}

func (m *TcpAcceptRequest) Reset()         { *m = TcpAcceptRequest{} }
func (m *TcpAcceptRequest) String() string { return proto.CompactTextString(m) }
func (*TcpAcceptRequest) ProtoMessage()    {}

type isTcpAcceptRequest_Request interface {
	isTcpAcceptRequest_Request()
}

type TcpAcceptRequest_Metadata struct {
	Metadata *TcpAcceptRequestMetadata `protobuf:"bytes,1,opt,name=metadata,oneof"`
}

type TcpAcceptRequest_Packet struct {
	Packet *Packet `protobuf:"bytes,2,opt,name=packet,oneof"`
}

func (*TcpAcceptRequest_Metadata) isTcpAcceptRequest_Request() {}
func (*TcpAcceptRequest_Packet) isTcpAcceptRequest_Request()   {}

func (m *TcpAcceptRequest) GetRequest() isTcpAcceptRequest_Request {
	if m != nil {
		return m.Request
	}
	return nil
}

func (m *TcpAcceptRequest) GetMetadata() *TcpAcceptRequestMetadata {
	if x, ok := m.GetRequest().(*TcpAcceptRequest_Metadata); ok {
		return x.Metadata
	}
	return nil
}

func (m *TcpAcceptRequest) GetPacket() *Packet {
	if x, ok := m.GetRequest().(*TcpAcceptRequest_Packet); ok {
		return x.Packet
	}
	return nil
}

func (*TcpAcceptRequest) XXX_OneofWrappers() []interface{} {
	return []interface{}{
		(*TcpAcceptRequest_Metadata)(nil),
		(*TcpAcceptRequest_Packet)(nil),
	}
}

func init() {
	// Registered for parity with protoc-gen-go output; nothing in this
	// module looks messages up by name, but keeping the registration means
	// proto.CompactTextString and friends behave the way generated code
	// expects if anything ever does.
	proto.RegisterType((*TcpBindRequest)(nil), "reverseproxy.TcpBindRequest")
	proto.RegisterType((*TcpBindResponseMetadata)(nil), "reverseproxy.TcpBindResponseMetadata")
	proto.RegisterType((*TcpNewConnection)(nil), "reverseproxy.TcpNewConnection")
	proto.RegisterType((*TcpBindResponse)(nil), "reverseproxy.TcpBindResponse")
	proto.RegisterType((*TcpAcceptRequestMetadata)(nil), "reverseproxy.TcpAcceptRequestMetadata")
	proto.RegisterType((*Packet)(nil), "reverseproxy.Packet")
	proto.RegisterType((*TcpAcceptRequest)(nil), "reverseproxy.TcpAcceptRequest")
}

// validatePortRange is shared by server and client code that must reject
// out-of-range wire port numbers before using them (spec.md §4.1: "every
// receiver must validate 0 <= port <= 65535").
func validatePortRange(port int32) error {
	if port < 0 || port > 65535 {
		return fmt.Errorf("invalid port number: %d", port)
	}
	return nil
}

// ValidatePort validates a wire port value and returns it as a uint16.
func ValidatePort(port int32) (uint16, error) {
	if err := validatePortRange(port); err != nil {
		return 0, err
	}
	return uint16(port), nil
}
