package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/godiecl/fivet-grpc/internal/common"
	pb "github.com/godiecl/fivet-grpc/internal/proto"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	personaIDKey ctxKey = "personaID"
	requestIDKey ctxKey = "requestID"
)

// protectedMethods require a valid access token.
var protectedMethods = map[string]bool{
	pb.FivetService_DeleteAccount_FullMethodName: true,
	pb.FivetService_GetAccount_FullMethodName:    true,
}

func firstMetadata(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(key); len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !protectedMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	accessToken := firstMetadata(ctx, common.AccessTokenHeaderName)
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	personaID, err := s.tokens.PersonaID(accessToken)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "token expired")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	return handler(context.WithValue(ctx, personaIDKey, personaID), req)
}

// loggingInterceptor tags each call with a request id, taken from the
// caller's metadata or generated, and logs its outcome.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	requestID := firstMetadata(ctx, common.RequestIDHeaderName)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	_ = grpc.SetHeader(ctx, metadata.Pairs(common.RequestIDHeaderName, requestID))

	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"request_id", requestID, "method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.OK:
		s.logger.Info(ctx, "call handled", args...)
	case codes.Internal, codes.Unknown:
		s.logger.Error(ctx, "call failed", append(args, "error", err)...)
	default:
		s.logger.Warn(ctx, "call rejected", args...)
	}

	return resp, err
}

func personaIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(personaIDKey).(int64)
	return id, ok
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
