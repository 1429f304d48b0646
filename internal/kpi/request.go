package kpi

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/metacatalog/timefmt/internal/domain"
)

// MetricType is how a KPI target value is measured.
type MetricType string

const (
	MetricPercentage MetricType = "PERCENTAGE"
	MetricNumber     MetricType = "NUMBER"
)

// maxPercentage caps percentage targets.
const maxPercentage = 100

// CreateRequest is a KPI definition as submitted by the console.
type CreateRequest struct {
	ChartType   string     `json:"chartType" validate:"required"`
	Name        string     `json:"name,omitempty" validate:"omitempty,max=256,kebabcase"`
	DisplayName string     `json:"displayName,omitempty" validate:"max=256"`
	Description string     `json:"description,omitempty"`
	MetricType  MetricType `json:"metricType" validate:"required,oneof=PERCENTAGE NUMBER"`
	TargetValue float64    `json:"targetValue" validate:"gte=0"`
	StartDate   int64      `json:"startDate" validate:"required"`
	EndDate     int64      `json:"endDate" validate:"required"`
}

// Definition is a validated, normalized CreateRequest.
type Definition struct {
	Name        string     `json:"name"`
	DisplayName string     `json:"displayName,omitempty"`
	Description string     `json:"description,omitempty"`
	ChartType   string     `json:"chartType"`
	MetricType  MetricType `json:"metricType"`
	TargetValue float64    `json:"targetValue"`
	StartDate   int64      `json:"startDate"`
	EndDate     int64      `json:"endDate"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("kebabcase", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || s == KebabCase(s)
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		req := sl.Current().Interface().(CreateRequest)
		if req.MetricType == MetricPercentage && req.TargetValue > maxPercentage {
			sl.ReportError(req.TargetValue, "TargetValue", "targetValue", "lte", "100")
		}
	}, CreateRequest{})

	return v
}

// Validate checks req and returns its normalized Definition: dates snapped
// to day bounds and Name derived from DisplayName and MetricType when
// empty. Field failures wrap domain.ErrInvalidInput; a window ending before
// it starts is domain.ErrInvalidDateRange; a start before today is
// domain.ErrDateInPast.
func (p *Planner) Validate(req CreateRequest) (Definition, error) {
	if err := p.validate.Struct(req); err != nil {
		return Definition{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, formatValidationErrors(err))
	}
	if !domain.ValidMillis(req.StartDate) || !domain.ValidMillis(req.EndDate) {
		return Definition{}, fmt.Errorf("%w: dates outside representable range", domain.ErrInvalidInstant)
	}

	start := p.dt.StartOfLocalDay(req.StartDate)
	end := p.dt.EndOfLocalDay(req.EndDate)
	if end < start {
		return Definition{}, fmt.Errorf("%w: end %d before start %d", domain.ErrInvalidDateRange, req.EndDate, req.StartDate)
	}
	if !p.IsSelectableDate(start) {
		return Definition{}, fmt.Errorf("%w: start %d", domain.ErrDateInPast, req.StartDate)
	}

	name := req.Name
	if name == "" {
		name = KebabCase(req.DisplayName + " " + string(req.MetricType))
	}

	return Definition{
		Name:        name,
		DisplayName: req.DisplayName,
		Description: req.Description,
		ChartType:   req.ChartType,
		MetricType:  req.MetricType,
		TargetValue: req.TargetValue,
		StartDate:   start,
		EndDate:     end,
	}, nil
}

func formatValidationErrors(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", e.Field(), e.Tag(), e.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s", e.Field(), e.Tag()))
	}
	return strings.Join(msgs, "; ")
}

// KebabCase lower-cases s and joins its words with "-". Words break at
// anything that is not a letter or digit and at case changes:
// "Description Coverage PERCENTAGE" → "description-coverage-percentage",
// "ownerKPIValue" → "owner-kpi-value".
func KebabCase(s string) string {
	var (
		words []string
		cur   []rune
		lower = cases.Lower(language.Und)
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, lower.String(string(cur)))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(cur) > 0 {
			prev := cur[len(cur)-1]
			switch {
			case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
				flush()
			case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return strings.Join(words, "-")
}
