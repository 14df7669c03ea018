package errors

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const detailViolations = "violations"

// Public messages returned to players over the wire
const (
	PublicInvalidPayload  = "Invalid payload"
	PublicTooManyRequests = "Too Many Requests"
	PublicInternal        = "Internal Server Error"
)

// ToGRPCError converts an error to a gRPC status error
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	// Check if it's already a gRPC status error
	if _, ok := status.FromError(err); ok {
		return err
	}

	var customErr *Error
	if As(err, &customErr) {
		return withViolations(status.New(customErr.Code.GRPCCode(), customErr.Message), err).Err()
	}

	return status.Error(codes.Internal, err.Error())
}

// ToPublicGRPCError converts an error to the status exposed to players.
// Validation failures keep their field violations, rate limiting keeps its
// code, and everything else collapses to a bare Internal status.
func ToPublicGRPCError(err error) error {
	if err == nil {
		return nil
	}

	switch GetCode(err) {
	case CodeInvalidArgument:
		return withViolations(status.New(codes.InvalidArgument, PublicInvalidPayload), err).Err()
	case CodeResourceExhausted:
		return status.Error(codes.ResourceExhausted, PublicTooManyRequests)
	default:
		return status.Error(codes.Internal, PublicInternal)
	}
}

// FromGRPCError converts a gRPC error to our custom error
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	customErr := &Error{
		Code:    grpcCodeToCode(st.Code()),
		Message: st.Message(),
	}

	for _, detail := range st.Details() {
		details, ok := detail.(*structpb.Struct)
		if !ok {
			continue
		}
		if fields := violationsFromStruct(details); len(fields) > 0 {
			customErr.WithMeta(metaValidationErrors, fields)
		}
	}

	return customErr
}

// GRPCCode returns the corresponding gRPC code
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeOK:
		return codes.OK
	case CodeCanceled:
		return codes.Canceled
	case CodeInvalidArgument:
		return codes.InvalidArgument
	case CodeDeadlineExceeded:
		return codes.DeadlineExceeded
	case CodeNotFound:
		return codes.NotFound
	case CodeAlreadyExists:
		return codes.AlreadyExists
	case CodeResourceExhausted:
		return codes.ResourceExhausted
	case CodeFailedPrecondition:
		return codes.FailedPrecondition
	case CodeAborted:
		return codes.Aborted
	case CodeUnimplemented:
		return codes.Unimplemented
	case CodeInternal, CodeMalformedResponse:
		return codes.Internal
	case CodeUnavailable:
		return codes.Unavailable
	case CodeDataLoss:
		return codes.DataLoss
	default:
		return codes.Unknown
	}
}

// grpcCodeToCode converts a gRPC code to our error code
func grpcCodeToCode(grpcCode codes.Code) Code {
	switch grpcCode {
	case codes.OK:
		return CodeOK
	case codes.Canceled:
		return CodeCanceled
	case codes.InvalidArgument:
		return CodeInvalidArgument
	case codes.DeadlineExceeded:
		return CodeDeadlineExceeded
	case codes.NotFound:
		return CodeNotFound
	case codes.AlreadyExists:
		return CodeAlreadyExists
	case codes.ResourceExhausted:
		return CodeResourceExhausted
	case codes.FailedPrecondition:
		return CodeFailedPrecondition
	case codes.Aborted:
		return CodeAborted
	case codes.Unimplemented:
		return CodeUnimplemented
	case codes.Unavailable:
		return CodeUnavailable
	case codes.DataLoss:
		return CodeDataLoss
	default:
		return CodeInternal
	}
}

// withViolations attaches validation field violations as a Struct detail
func withViolations(st *status.Status, err error) *status.Status {
	violations := FieldViolations(err)
	if len(violations) == 0 {
		return st
	}

	list := make([]any, len(violations))
	for i, v := range violations {
		list[i] = map[string]any{"field": v.Field, "message": v.Message}
	}

	details, convErr := structpb.NewStruct(map[string]any{detailViolations: list})
	if convErr != nil {
		return st
	}

	withDetails, detailErr := st.WithDetails(details)
	if detailErr != nil {
		return st
	}
	return withDetails
}

func violationsFromStruct(details *structpb.Struct) map[string][]string {
	list := details.GetFields()[detailViolations].GetListValue()
	if list == nil {
		return nil
	}

	fields := make(map[string][]string)
	for _, item := range list.GetValues() {
		entry := item.GetStructValue().GetFields()
		field := entry["field"].GetStringValue()
		if field == "" {
			continue
		}
		fields[field] = append(fields[field], entry["message"].GetStringValue())
	}
	return fields
}
