package service

import (
	"context"

	"google.golang.org/grpc"

	"github.com/rshade/ghgcalc/internal/carbon"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "ghgcalc.v1.EmissionsService"

// Full method names.
const (
	MethodCalculateScope1 = "/" + ServiceName + "/CalculateScope1"
	MethodCalculateScope2 = "/" + ServiceName + "/CalculateScope2"
	MethodCalculateScope3 = "/" + ServiceName + "/CalculateScope3"
	MethodCalculateReport = "/" + ServiceName + "/CalculateReport"
)

// EmissionsServer is the server API for the emissions service.
type EmissionsServer interface {
	CalculateScope1(context.Context, *carbon.Scope1Input) (*carbon.Scope1Output, error)
	CalculateScope2(context.Context, *carbon.Scope2Input) (*carbon.Scope2Output, error)
	CalculateScope3(context.Context, *carbon.Scope3Input) (*carbon.Scope3Output, error)
	CalculateReport(context.Context, *carbon.ReportInput) (*carbon.ReportOutput, error)
}

var _ EmissionsServer = (*Server)(nil)

// ServiceDesc describes the emissions service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EmissionsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CalculateScope1",
			Handler:    unaryHandler(MethodCalculateScope1, EmissionsServer.CalculateScope1),
		},
		{
			MethodName: "CalculateScope2",
			Handler:    unaryHandler(MethodCalculateScope2, EmissionsServer.CalculateScope2),
		},
		{
			MethodName: "CalculateScope3",
			Handler:    unaryHandler(MethodCalculateScope3, EmissionsServer.CalculateScope3),
		},
		{
			MethodName: "CalculateReport",
			Handler:    unaryHandler(MethodCalculateReport, EmissionsServer.CalculateReport),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ghgcalc/v1/emissions.json",
}

// Register attaches srv to a gRPC server.
func Register(s grpc.ServiceRegistrar, srv EmissionsServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unaryHandler[In, Out any](
	fullMethod string,
	call func(EmissionsServer, context.Context, *In) (*Out, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(In)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(EmissionsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(EmissionsServer), ctx, req.(*In))
		}
		return interceptor(ctx, in, info, handler)
	}
}
