package jwtauth

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// UnaryServerInterceptor returns a gRPC unary server interceptor applying the
// same decision as RequireRole to the "authorization" metadata.
//
// methodRoles maps a full method name ("/pkg.Service/Method") to its required
// role. Methods absent from the map require a verified caller of any role.
func UnaryServerInterceptor(cfg *Config, methodRoles map[string]string) grpc.UnaryServerInterceptor {
	roles := make(map[string]string, len(methodRoles))
	for method, role := range methodRoles {
		roles[method] = role
	}

	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		md, _ := metadata.FromIncomingContext(ctx)

		requestID := requestIDFromMetadata(md)

		principal, authErr := authorizeAndLog(cfg, requestID, authorizationFromMetadata(md), roles[info.FullMethod])
		if authErr != nil {
			return nil, status.Error(grpcCode(authErr), authErr.PublicMessage())
		}

		ctx = WithPrincipal(ctx, principal)
		ctx = WithRequestID(ctx, requestID)

		return handler(ctx, req)
	}
}

func grpcCode(err *AuthError) codes.Code {
	if err.Kind == KindForbidden {
		return codes.PermissionDenied
	}
	return codes.Unauthenticated
}

func requestIDFromMetadata(md metadata.MD) string {
	if values := md.Get("x-request-id"); len(values) > 0 && values[0] != "" {
		return values[0]
	}
	return uuid.New().String()
}
