package errmap

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ToGRPCStatus converts err to a gRPC status. A nil err is codes.OK.
func ToGRPCStatus(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}
	if m, ok := lookup(err); ok {
		return status.New(m.grpc, err.Error())
	}
	return status.New(codes.Internal, internalMessage)
}

// ToGRPCError is ToGRPCStatus as an error, nil for a nil err.
func ToGRPCError(err error) error {
	return ToGRPCStatus(err).Err()
}

// FromGRPCError returns the status code carried by err: codes.OK for nil,
// codes.Unknown when err is not a status error.
func FromGRPCError(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if st, ok := status.FromError(err); ok {
		return st.Code()
	}
	return codes.Unknown
}
