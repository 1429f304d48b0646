package grpcapi

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/metacatalog/timefmt/internal/domain"
)

// Every message travels as a google.protobuf.Struct under the default
// proto codec. The typed structs below are the Go view of those fields.

// maxExactInt bounds the integers a Struct number holds without loss.
const maxExactInt = 1 << 53

func (r *FormatRequest) toStruct() (*structpb.Struct, error) {
	fields := map[string]any{"operation": string(r.Operation)}
	if r.Timestamp != nil {
		fields["timestamp"] = *r.Timestamp
	}
	if r.Base != nil {
		fields["base"] = *r.Base
	}
	if r.Pattern != "" {
		fields["pattern"] = r.Pattern
	}
	if r.Locale != "" {
		fields["locale"] = r.Locale
	}
	return newStruct(fields)
}

func formatRequestFromStruct(s *structpb.Struct) (*FormatRequest, error) {
	var (
		r   FormatRequest
		op  string
		err error
	)
	if op, err = stringField(s, "operation"); err != nil {
		return nil, err
	}
	r.Operation = Operation(op)
	if r.Timestamp, err = intField(s, "timestamp"); err != nil {
		return nil, err
	}
	if r.Base, err = intField(s, "base"); err != nil {
		return nil, err
	}
	if r.Pattern, err = stringField(s, "pattern"); err != nil {
		return nil, err
	}
	if r.Locale, err = stringField(s, "locale"); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *FormatResponse) toStruct() (*structpb.Struct, error) {
	return newStruct(map[string]any{"value": r.Value, "locale": r.Locale})
}

func formatResponseFromStruct(s *structpb.Struct) (*FormatResponse, error) {
	value, err := stringField(s, "value")
	if err != nil {
		return nil, err
	}
	tag, err := stringField(s, "locale")
	if err != nil {
		return nil, err
	}
	return &FormatResponse{Value: value, Locale: tag}, nil
}

func (r *ValidatePatternRequest) toStruct() (*structpb.Struct, error) {
	fields := map[string]any{"pattern": r.Pattern}
	if r.Locale != "" {
		fields["locale"] = r.Locale
	}
	return newStruct(fields)
}

func validatePatternRequestFromStruct(s *structpb.Struct) (*ValidatePatternRequest, error) {
	pattern, err := stringField(s, "pattern")
	if err != nil {
		return nil, err
	}
	tag, err := stringField(s, "locale")
	if err != nil {
		return nil, err
	}
	return &ValidatePatternRequest{Pattern: pattern, Locale: tag}, nil
}

func (r *ValidatePatternResponse) toStruct() (*structpb.Struct, error) {
	fields := map[string]any{"valid": r.Valid}
	if r.Reason != "" {
		fields["reason"] = r.Reason
	}
	return newStruct(fields)
}

func validatePatternResponseFromStruct(s *structpb.Struct) (*ValidatePatternResponse, error) {
	var (
		r   ValidatePatternResponse
		err error
	)
	if v, ok := s.GetFields()["valid"]; ok {
		b, isBool := v.GetKind().(*structpb.Value_BoolValue)
		if !isBool {
			return nil, fmt.Errorf("%w: valid must be a bool", domain.ErrInvalidInput)
		}
		r.Valid = b.BoolValue
	}
	if r.Reason, err = stringField(s, "reason"); err != nil {
		return nil, err
	}
	return &r, nil
}

func newStruct(fields map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return s, nil
}

// stringField returns "" for absent and null fields.
func stringField(s *structpb.Struct, key string) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", nil
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue, nil
	case *structpb.Value_NullValue:
		return "", nil
	}
	return "", fmt.Errorf("%w: %s must be a string", domain.ErrInvalidInput, key)
}

// intField returns nil for absent and null fields. Numbers must be whole
// and within the range a double represents exactly.
func intField(s *structpb.Struct, key string) (*int64, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return nil, nil
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		n := k.NumberValue
		if n != math.Trunc(n) || math.Abs(n) > maxExactInt {
			return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		i := int64(n)
		return &i, nil
	case *structpb.Value_NullValue:
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
}
