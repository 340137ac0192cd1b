package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName - полное имя gRPC сервиса поиска по каталогу.
const ServiceName = "catalog.v1.CatalogLookup"

// Полные имена методов.
const (
	CheckMovieExistsMethod = "/" + ServiceName + "/CheckMovieExists"
	GetMovieInfoMethod     = "/" + ServiceName + "/GetMovieInfo"
	GetUserMethod          = "/" + ServiceName + "/GetUser"
)

// LookupServer - read-only поиск для соседних сервисов. Сообщения - well-known типы protobuf,
// поэтому сгенерированный код не нужен.
type LookupServer interface {
	CheckMovieExists(ctx context.Context, id *wrapperspb.StringValue) (*wrapperspb.BoolValue, error)
	GetMovieInfo(ctx context.Context, id *wrapperspb.StringValue) (*structpb.Struct, error)
	GetUser(ctx context.Context, id *wrapperspb.StringValue) (*structpb.Struct, error)
}

// RegisterLookupServer регистрирует srv на gRPC сервере.
func RegisterLookupServer(s grpc.ServiceRegistrar, srv LookupServer) {
	s.RegisterService(&LookupServiceDesc, srv)
}

type unaryCall func(srv LookupServer, ctx context.Context, in *wrapperspb.StringValue) (interface{}, error)

func unaryHandler(method string, call unaryCall) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(wrapperspb.StringValue)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LookupServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(LookupServer), ctx, req.(*wrapperspb.StringValue))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// LookupServiceDesc - описание сервиса, написанное вручную вместо protoc-gen-go-grpc.
var LookupServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LookupServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CheckMovieExists",
			Handler: unaryHandler(CheckMovieExistsMethod, func(srv LookupServer, ctx context.Context, in *wrapperspb.StringValue) (interface{}, error) {
				return srv.CheckMovieExists(ctx, in)
			}),
		},
		{
			MethodName: "GetMovieInfo",
			Handler: unaryHandler(GetMovieInfoMethod, func(srv LookupServer, ctx context.Context, in *wrapperspb.StringValue) (interface{}, error) {
				return srv.GetMovieInfo(ctx, in)
			}),
		},
		{
			MethodName: "GetUser",
			Handler: unaryHandler(GetUserMethod, func(srv LookupServer, ctx context.Context, in *wrapperspb.StringValue) (interface{}, error) {
				return srv.GetUser(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog/v1/lookup.proto",
}
