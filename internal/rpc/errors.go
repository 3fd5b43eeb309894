package rpc

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Describe turns an error returned by an AnalyzerClient call into a message
// fit for an end user.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	st, ok := status.FromError(err)
	if !ok {
		return err.Error()
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return "API key missing or rejected: " + st.Message()
	case codes.ResourceExhausted:
		return "The language model is rate limited, try again in a minute."
	case codes.DeadlineExceeded:
		return "The language model did not answer in time, try again."
	case codes.Unavailable:
		if st.Message() == "" {
			return "Daemon or language model unavailable."
		}
		return "Service unavailable: " + st.Message()
	default:
		return st.Message()
	}
}
