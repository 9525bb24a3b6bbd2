package service

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rshade/ghgcalc/internal/carbon"
)

// ErrorDomain is the ErrorInfo domain attached to InvalidArgument statuses.
const ErrorDomain = "ghgcalc.rshade.github.com"

// ReasonInvalidInput is the ErrorInfo reason for rejected inputs.
const ReasonInvalidInput = "INVALID_INPUT"

// classify maps an engine error to a gRPC code and metrics outcome.
func classify(err error) (codes.Code, string) {
	switch {
	case errors.Is(err, carbon.ErrInvalidInput):
		return codes.InvalidArgument, OutcomeInvalidInput
	case errors.Is(err, context.Canceled):
		return codes.Canceled, OutcomeError
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded, OutcomeError
	default:
		return codes.Internal, OutcomeError
	}
}

// newErrorWithID creates a gRPC error with trace_id in the error details.
// Only InvalidArgument carries the engine message; internal errors are
// reported generically.
func (s *Server) newErrorWithID(traceID string, code codes.Code, err error) error {
	msg := err.Error()
	if code == codes.Internal {
		msg = "internal error"
	}
	st := status.New(code, msg)
	if code != codes.InvalidArgument {
		return st.Err()
	}

	info := &errdetails.ErrorInfo{
		Reason: ReasonInvalidInput,
		Domain: ErrorDomain,
		Metadata: map[string]string{
			"trace_id": traceID,
		},
	}
	var inputErr *carbon.InputError
	if errors.As(err, &inputErr) {
		info.Metadata["field"] = inputErr.Field
	}

	stWithDetails, detailErr := st.WithDetails(info)
	if detailErr != nil {
		s.logger.Warn().
			Str(FieldTraceID, traceID).
			Str("grpc_code", code.String()).
			Err(detailErr).
			Msg("failed to attach error details to gRPC status")
		return st.Err()
	}
	return stWithDetails.Err()
}

// ErrorInfo extracts the ErrorInfo detail from a status error returned by
// the service, if any.
func ErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	st, ok := status.FromError(err)
	if !ok {
		return nil, false
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info, true
		}
	}
	return nil, false
}
