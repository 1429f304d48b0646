// Package grpcapi serves the formatter over gRPC for backend callers.
// Requests and responses are google.protobuf.Struct messages on the wire,
// so any gRPC client can call the service without generated stubs. Client
// maps them to the typed structs below.
package grpcapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/metacatalog/timefmt/internal/datetime"
	"github.com/metacatalog/timefmt/internal/domain"
	"github.com/metacatalog/timefmt/internal/errmap"
	"github.com/metacatalog/timefmt/internal/locale"
	"github.com/metacatalog/timefmt/internal/observability"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "timefmt.v1.Formatter"

// Metadata keys read for locale resolution.
const (
	MetadataUserID         = "x-user-id"
	MetadataAcceptLanguage = "accept-language"
)

// Operation selects what Format renders.
type Operation string

const (
	OpDateTime Operation = "datetime"
	OpDate     Operation = "date"
	OpZoned    Operation = "zoned"
	OpLong     Operation = "long"
	OpCustom   Operation = "custom"
	OpRelative Operation = "relative"
	OpCalendar Operation = "calendar"
)

// FormatRequest asks for one rendering of Timestamp.
type FormatRequest struct {
	Operation Operation `validate:"required,oneof=datetime date zoned long custom relative calendar"`
	Timestamp *int64
	Base      *int64
	Pattern   string
	Locale    string
}

// FormatResponse is the rendered value and the locale it was rendered in.
type FormatResponse struct {
	Value  string
	Locale string
}

// ValidatePatternRequest asks whether Pattern round-trips in Locale.
type ValidatePatternRequest struct {
	Pattern string
	Locale  string
}

// ValidatePatternResponse reports the outcome; Reason is set when invalid.
type ValidatePatternResponse struct {
	Valid  bool
	Reason string
}

// FormatterServer is the server API of the Formatter service.
type FormatterServer interface {
	Format(ctx context.Context, req *FormatRequest) (*FormatResponse, error)
	ValidatePattern(ctx context.Context, req *ValidatePatternRequest) (*ValidatePatternResponse, error)
}

// Service implements FormatterServer over a base Formatter.
type Service struct {
	base     *datetime.Formatter
	resolver *locale.Resolver
	metrics  *observability.RequestMetrics
	validate *validator.Validate
	logger   *slog.Logger
}

var _ FormatterServer = (*Service)(nil)

// NewService creates a Service. Request instruments bind to the global
// meter provider, so call it after telemetry is initialized.
func NewService(base *datetime.Formatter, resolver *locale.Resolver, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if resolver == nil {
		resolver = locale.NewResolver(nil, base.Locale(), logger)
	}
	metrics, err := observability.NewRequestMetrics("github.com/metacatalog/timefmt/internal/grpcapi")
	if err != nil {
		return nil, fmt.Errorf("grpcapi: %w", err)
	}
	return &Service{
		base:     base,
		resolver: resolver,
		metrics:  metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}, nil
}

// Register adds the service to s.
func (svc *Service) Register(s *grpc.Server) {
	s.RegisterService(&serviceDesc, svc)
}

// Format renders req.Timestamp according to req.Operation.
func (svc *Service) Format(ctx context.Context, req *FormatRequest) (*FormatResponse, error) {
	var resp *FormatResponse
	err := svc.observe(ctx, "Format", func() error {
		if err := svc.validate.Struct(req); err != nil {
			return fmt.Errorf("%w: operation %q", domain.ErrInvalidInput, req.Operation)
		}
		f, err := svc.formatter(ctx, req.Locale)
		if err != nil {
			return err
		}
		value, err := render(f, req)
		if err != nil {
			return err
		}
		tag := f.Locale()
		if req.Operation == OpLong {
			tag = locale.EnUS
		}
		resp = &FormatResponse{Value: value, Locale: tag.String()}
		return nil
	})
	if err != nil {
		return nil, errmap.ToGRPCError(err)
	}
	return resp, nil
}

// ValidatePattern reports whether req.Pattern formats and parses back.
func (svc *Service) ValidatePattern(ctx context.Context, req *ValidatePatternRequest) (*ValidatePatternResponse, error) {
	resp := &ValidatePatternResponse{Valid: true}
	err := svc.observe(ctx, "ValidatePattern", func() error {
		f, err := svc.formatter(ctx, req.Locale)
		if err != nil {
			return err
		}
		if err := f.ValidateDateFormat(req.Pattern); err != nil {
			resp.Valid = false
			resp.Reason = err.Error()
		}
		return nil
	})
	if err != nil {
		return nil, errmap.ToGRPCError(err)
	}
	return resp, nil
}

func render(f *datetime.Formatter, req *FormatRequest) (string, error) {
	switch req.Operation {
	case OpDateTime:
		return f.FormatDateTime(req.Timestamp), nil
	case OpDate:
		return f.FormatDate(req.Timestamp), nil
	case OpZoned:
		return f.FormatDateTimeWithTimezone(req.Timestamp), nil
	case OpCustom:
		return f.CustomFormatDateTime(req.Timestamp, req.Pattern), nil
	case OpRelative:
		return f.RelativeTime(req.Timestamp), nil
	}

	if req.Timestamp == nil {
		return "", fmt.Errorf("%w: %s requires a timestamp", domain.ErrInvalidInput, req.Operation)
	}
	ms := *req.Timestamp
	if req.Operation == OpLong {
		return f.FormatDateTimeLong(ms, req.Pattern)
	}
	if !domain.ValidMillis(ms) || (req.Base != nil && !domain.ValidMillis(*req.Base)) {
		return "", fmt.Errorf("%w: calendar instant out of range", domain.ErrInvalidInstant)
	}
	return f.RelativeCalendar(ms, req.Base), nil
}

// formatter resolves the call's locale from the explicit value and the
// incoming metadata.
func (svc *Service) formatter(ctx context.Context, explicit string) (*datetime.Formatter, error) {
	req := locale.Request{Explicit: explicit}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		req.UserID = first(md.Get(MetadataUserID))
		req.AcceptLanguage = first(md.Get(MetadataAcceptLanguage))
	}
	tag, _, err := svc.resolver.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	return svc.base.WithLocale(tag), nil
}

// observe records metrics and logs for one call.
func (svc *Service) observe(ctx context.Context, method string, fn func() error) error {
	start := time.Now()
	err := fn()
	st := errmap.ToGRPCStatus(err)
	route := "/" + ServiceName + "/" + method
	svc.metrics.Record(ctx, route, int(st.Code()), time.Since(start))

	logger := observability.Correlate(ctx, svc.logger)
	switch {
	case err == nil:
		logger.DebugContext(ctx, "rpc served", slog.String("method", route))
	case domain.IsClientError(err):
		logger.InfoContext(ctx, "rpc rejected", slog.String("method", route), slog.String("error", err.Error()))
	default:
		logger.ErrorContext(ctx, "rpc failed", slog.String("method", route), slog.String("error", err.Error()))
	}
	return err
}

func first(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}
