package pb

import (
	"context"

	"google.golang.org/grpc"
)

// SandboxServer is implemented by the Execute RPC handler.
type SandboxServer interface {
	Execute(req *CodeRequest, stream SandboxExecuteServer) error
}

// SandboxExecuteServer is the server-side handle for the Execute stream.
type SandboxExecuteServer interface {
	Send(*ExecutionLog) error
	grpc.ServerStream
}

type sandboxExecuteServer struct {
	grpc.ServerStream
}

func (s *sandboxExecuteServer) Send(m *ExecutionLog) error {
	return s.ServerStream.SendMsg(m)
}

func sandboxExecuteHandler(srv any, stream grpc.ServerStream) error {
	req := new(CodeRequest)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	return srv.(SandboxServer).Execute(req, &sandboxExecuteServer{stream})
}

// SandboxServiceDesc is the hand-written equivalent of what protoc-gen-go
// would emit for sandbox.proto's Sandbox service. It exists because this
// repo has no protoc invocation available; grpc.ServiceDesc is a
// documented, supported way to register a service without codegen.
var SandboxServiceDesc = grpc.ServiceDesc{
	ServiceName: "dcodex.Sandbox",
	HandlerType: (*SandboxServer)(nil),
	Methods:     []grpc.MethodDesc{},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Execute",
			Handler:       sandboxExecuteHandler,
			ServerStreams: true,
		},
	},
	Metadata: "sandbox.proto",
}

// RegisterSandboxServer registers srv against s under SandboxServiceDesc.
func RegisterSandboxServer(s grpc.ServiceRegistrar, srv SandboxServer) {
	s.RegisterService(&SandboxServiceDesc, srv)
}

// SandboxClient is a minimal hand-written client stub for the Execute
// RPC.
type SandboxClient interface {
	Execute(ctx context.Context, req *CodeRequest) (SandboxExecuteClient, error)
}

// SandboxExecuteClient is the client-side handle for the Execute stream.
type SandboxExecuteClient interface {
	Recv() (*ExecutionLog, error)
	grpc.ClientStream
}

type sandboxClient struct {
	cc grpc.ClientConnInterface
}

// NewSandboxClient builds a SandboxClient over cc. Its Execute passes
// WithJSONCodec on every call, since this service registers its messages
// under the "json" codec, not the grpc-go default.
func NewSandboxClient(cc grpc.ClientConnInterface) SandboxClient {
	return &sandboxClient{cc: cc}
}

func (c *sandboxClient) Execute(ctx context.Context, req *CodeRequest) (SandboxExecuteClient, error) {
	stream, err := c.cc.NewStream(ctx, &SandboxServiceDesc.Streams[0], "/dcodex.Sandbox/Execute", WithJSONCodec())
	if err != nil {
		return nil, err
	}
	cs := &sandboxExecuteClient{stream}
	if err := cs.SendMsg(req); err != nil {
		return nil, err
	}
	if err := cs.CloseSend(); err != nil {
		return nil, err
	}
	return cs, nil
}

type sandboxExecuteClient struct {
	grpc.ClientStream
}

func (c *sandboxExecuteClient) Recv() (*ExecutionLog, error) {
	m := new(ExecutionLog)
	if err := c.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// WithJSONCodec selects this package's JSON codec for a single call,
// the call-site equivalent of registering "json" as the wire codec.
func WithJSONCodec() grpc.CallOption {
	return grpc.CallContentSubtype(codecName)
}
