package grpcserver

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/dcodex/sandboxrunner/internal/ratelimit"
)

// RateLimitInterceptor rejects a stream before it reaches the handler if
// the calling peer has exceeded its token bucket, enforced in front of
// (not instead of) the admission gate inside the handler itself.
func RateLimitInterceptor(limiter *ratelimit.Limiter) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		addr := "unknown"
		if p, ok := peer.FromContext(ss.Context()); ok && p.Addr != nil {
			addr = p.Addr.String()
		}
		if !limiter.Allow(addr) {
			return status.Error(codes.ResourceExhausted, "rate limit exceeded")
		}
		return handler(srv, ss)
	}
}
