package jwtauth

import (
	"context"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	listUsersMethod = "/userguard.v1.UserService/ListUsers"
	whoAmIMethod    = "/userguard.v1.UserService/WhoAmI"
)

func TestUnaryServerInterceptor(t *testing.T) {
	secret := newTestSecret(t)
	cfg := mustCreateConfig(t, WithHS256(secret))
	interceptor := UnaryServerInterceptor(cfg, map[string]string{listUsersMethod: RoleAdmin})

	adminToken := signHS256(t, secret, identityClaims(1, "admin1", RoleAdmin))
	userToken := signHS256(t, secret, identityClaims(2, "bob", RoleUser))

	tests := []struct {
		name        string
		method      string
		md          metadata.MD
		wantCode    codes.Code
		wantMessage string
		wantUser    string
	}{
		{name: "no metadata", method: listUsersMethod, wantCode: codes.Unauthenticated, wantMessage: "Token is missing"},
		{name: "no authorization", method: listUsersMethod, md: metadata.Pairs("x-other", "1"), wantCode: codes.Unauthenticated, wantMessage: "Token is missing"},
		{name: "invalid token", method: listUsersMethod, md: metadata.Pairs("authorization", bearer("garbage")), wantCode: codes.Unauthenticated, wantMessage: "Token is invalid"},
		{name: "non-admin", method: listUsersMethod, md: metadata.Pairs("authorization", bearer(userToken)), wantCode: codes.PermissionDenied, wantMessage: "Admin access required"},
		{name: "admin", method: listUsersMethod, md: metadata.Pairs("authorization", bearer(adminToken)), wantCode: codes.OK, wantUser: "admin1"},
		{name: "unmapped method any role", method: whoAmIMethod, md: metadata.Pairs("authorization", bearer(userToken)), wantCode: codes.OK, wantUser: "bob"},
		{name: "unmapped method still authenticates", method: whoAmIMethod, md: metadata.Pairs(), wantCode: codes.Unauthenticated, wantMessage: "Token is missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.md != nil {
				ctx = metadata.NewIncomingContext(ctx, tt.md)
			}

			called := false
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				called = true
				return MustGetPrincipal(ctx).Username, nil
			}

			resp, err := interceptor(ctx, "request", &grpc.UnaryServerInfo{FullMethod: tt.method}, handler)

			if tt.wantCode != codes.OK {
				st, _ := status.FromError(err)
				if st.Code() != tt.wantCode {
					t.Errorf("Expected code %v, got %v", tt.wantCode, st.Code())
				}
				if st.Message() != tt.wantMessage {
					t.Errorf("Expected message %q, got %q", tt.wantMessage, st.Message())
				}
				if called {
					t.Error("Handler must not run for rejected calls")
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if resp != tt.wantUser {
				t.Errorf("Expected handler to see %q, got %v", tt.wantUser, resp)
			}
		})
	}
}

func TestUnaryServerInterceptorRequestID(t *testing.T) {
	secret := newTestSecret(t)
	cfg := mustCreateConfig(t, WithHS256(secret))
	interceptor := UnaryServerInterceptor(cfg, nil)

	md := metadata.Pairs(
		"authorization", bearer(signHS256(t, secret, identityClaims(2, "bob", RoleUser))),
		"x-request-id", "grpc-req-1",
	)
	ctx := metadata.NewIncomingContext(context.Background(), md)

	var seen string
	_, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: whoAmIMethod}, func(ctx context.Context, req interface{}) (interface{}, error) {
		seen, _ = GetRequestID(ctx)
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if seen != "grpc-req-1" {
		t.Errorf("Expected request id grpc-req-1, got %q", seen)
	}
}

// TestUnaryServerInterceptorCopiesRoles verifies later map mutation does not change decisions
func TestUnaryServerInterceptorCopiesRoles(t *testing.T) {
	secret := newTestSecret(t)
	cfg := mustCreateConfig(t, WithHS256(secret))
	roles := map[string]string{listUsersMethod: RoleAdmin}
	interceptor := UnaryServerInterceptor(cfg, roles)
	delete(roles, listUsersMethod)

	md := metadata.Pairs("authorization", bearer(signHS256(t, secret, identityClaims(2, "bob", RoleUser))))
	ctx := metadata.NewIncomingContext(context.Background(), md)

	_, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: listUsersMethod}, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, nil
	})
	if status.Code(err) != codes.PermissionDenied {
		t.Errorf("Expected PermissionDenied, got %v", status.Code(err))
	}
}
