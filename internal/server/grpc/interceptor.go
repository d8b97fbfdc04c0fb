package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/netx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

var protectedMethods = map[string]bool{
	MethodMe: true,
}

func userIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
			header = values[0]
		}
	}

	token, err := netx.ExtractBearerToken(header)
	if errors.Is(err, netx.ErrNoToken) {
		return nil, status.Error(codes.Unauthenticated, msgNoToken)
	}
	if err != nil {
		return nil, status.Error(codes.PermissionDenied, msgBadToken)
	}

	userID, err := s.tokens.Resolve(token)
	if err != nil {
		return nil, status.Error(codes.PermissionDenied, msgBadToken)
	}

	return handler(context.WithValue(ctx, userIDKey, userID), req)
}

func (s *GRPCServer) observeInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	elapsed := time.Since(start)

	code := status.Code(err)
	if s.metrics != nil {
		s.metrics.ObserveRequest("grpc", info.FullMethod, int(code), elapsed)
	}
	s.logger.Info(ctx, "grpc request",
		"method", info.FullMethod,
		"code", code.String(),
		"duration", elapsed,
	)
	return resp, err
}
