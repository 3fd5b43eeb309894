package daemon

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// unaryLogger logs every call with a fresh request id, its method, duration
// and code. Request bodies are never logged; they carry API keys and whole
// exports.
func unaryLogger(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		l := logger.With(zap.String("request_id", uuid.NewString()))
		resp, err := handler(ctx, req)
		logCall(l, info.FullMethod, start, err)
		return resp, err
	}
}

func streamLogger(logger *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		l := logger.With(zap.String("request_id", uuid.NewString()))
		l.Info("stream opened", zap.String("method", info.FullMethod))
		err := handler(srv, ss)
		logCall(l, info.FullMethod, start, err)
		return err
	}
}

func logCall(logger *zap.Logger, method string, start time.Time, err error) {
	code := status.Code(err)
	level := zapcore.InfoLevel
	switch code {
	case codes.OK, codes.Canceled:
	case codes.Internal, codes.Unknown:
		level = zapcore.ErrorLevel
	default:
		level = zapcore.WarnLevel
	}
	fields := []zap.Field{
		zap.String("method", method),
		zap.Duration("duration", time.Since(start)),
		zap.String("code", code.String()),
	}
	if err != nil {
		fields = append(fields, zap.String("error", status.Convert(err).Message()))
	}
	if ce := logger.Check(level, "rpc"); ce != nil {
		ce.Write(fields...)
	}
}
