package api

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/matheus3301/chatlens/internal/analytics"
	"github.com/matheus3301/chatlens/internal/answer"
	"github.com/matheus3301/chatlens/internal/corpus"
	"github.com/matheus3301/chatlens/internal/export"
	"github.com/matheus3301/chatlens/internal/llm"
)

// toStatus maps domain errors onto gRPC status codes.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	var ae *llm.AuthError
	var se *llm.ServiceError
	switch {
	case errors.Is(err, export.ErrUnrecognizedFormat):
		return status.Error(codes.FailedPrecondition, "could not parse this export: no recognised message headers")
	case errors.Is(err, corpus.ErrNoCorpus):
		return status.Error(codes.FailedPrecondition, "no chat export loaded")
	case errors.Is(err, answer.ErrNoContext):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, analytics.ErrInvalidQuery), errors.Is(err, answer.ErrEmptyQuestion):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &ae):
		return status.Error(codes.Unauthenticated, ae.Message)
	case errors.As(err, &se):
		switch {
		case se.Timeout:
			return status.Error(codes.DeadlineExceeded, se.Error())
		case se.RateLimited:
			return status.Error(codes.ResourceExhausted, se.Error())
		default:
			return status.Error(codes.Unavailable, se.Error())
		}
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
