package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/metacatalog/timefmt/internal/datetime"
	"github.com/metacatalog/timefmt/internal/domain"
)

func (h *Handler) duration(w http.ResponseWriter, r *http.Request) error {
	ms, err := requiredInt(r, "ms")
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, valueResponse{Value: datetime.FormatDuration(ms)})
	return nil
}

func (h *Handler) durationHuman(w http.ResponseWriter, r *http.Request) error {
	ms, err := requiredInt(r, "ms")
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, valueResponse{Value: datetime.HumanReadableDuration(ms)})
	return nil
}

func (h *Handler) durationClock(w http.ResponseWriter, r *http.Request) error {
	seconds, err := optionalInt(r, "seconds")
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, valueResponse{Value: datetime.FormatTimeDurationFromSeconds(seconds)})
	return nil
}

type intervalResponse struct {
	Value  string `json:"value"`
	Millis int64  `json:"millis"`
	datetime.Interval
}

func (h *Handler) interval(w http.ResponseWriter, r *http.Request) error {
	start, err := requiredInt(r, "start")
	if err != nil {
		return err
	}
	end, err := requiredInt(r, "end")
	if err != nil {
		return err
	}
	iv, err := datetime.IntervalBetween(start, end)
	if err != nil {
		return err
	}
	ms, err := datetime.IntervalInMilliseconds(start, end)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, intervalResponse{Value: iv.String(), Millis: ms, Interval: iv})
	return nil
}

func (h *Handler) daysRemaining(w http.ResponseWriter, r *http.Request) error {
	ts, err := requiredInt(r, "ts")
	if err != nil {
		return err
	}
	if !domain.ValidMillis(ts) {
		return fmt.Errorf("%w: ts %d", domain.ErrInvalidInstant, ts)
	}
	writeJSON(w, http.StatusOK, valueResponse{Value: h.base.DaysRemaining(ts)})
	return nil
}

type boundsResponse struct {
	StartOfDay      int64 `json:"startOfDay"`
	EndOfDay        int64 `json:"endOfDay"`
	StartOfLocalDay int64 `json:"startOfLocalDay"`
	EndOfLocalDay   int64 `json:"endOfLocalDay"`
}

func (h *Handler) dayBounds(w http.ResponseWriter, r *http.Request) error {
	ts, err := optionalInt(r, "ts")
	if err != nil {
		return err
	}
	ms := h.base.CurrentMillis()
	if ts != nil {
		ms = *ts
	}
	if !domain.ValidMillis(ms) {
		return fmt.Errorf("%w: ts %d", domain.ErrInvalidInstant, ms)
	}
	writeJSON(w, http.StatusOK, boundsResponse{
		StartOfDay:      datetime.StartOfDayInMillis(ms),
		EndOfDay:        datetime.EndOfDayInMillis(ms),
		StartOfLocalDay: h.base.StartOfLocalDay(ms),
		EndOfLocalDay:   h.base.EndOfLocalDay(ms),
	})
	return nil
}

// dayOffsetQuery bounds ?days= to a century either way.
type dayOffsetQuery struct {
	Days int64 `validate:"gte=0,lte=36500"`
}

type offsetResponse struct {
	PastMillis   int64 `json:"pastMillis"`
	FutureMillis int64 `json:"futureMillis"`
	PastUnix     int64 `json:"pastUnix"`
}

func (h *Handler) dayOffset(w http.ResponseWriter, r *http.Request) error {
	days, err := requiredInt(r, "days")
	if err != nil {
		return err
	}
	if err := h.validate.Struct(dayOffsetQuery{Days: days}); err != nil {
		return fmt.Errorf("%w: days %s", domain.ErrInvalidInput, validationTag(err))
	}
	n := int(days)
	writeJSON(w, http.StatusOK, offsetResponse{
		PastMillis:   h.base.EpochMillisForPastDays(n),
		FutureMillis: h.base.EpochMillisForFutureDays(n),
		PastUnix:     h.base.UnixSecondsForPastDays(n),
	})
	return nil
}

type nowResponse struct {
	ISO      string `json:"iso"`
	Millis   int64  `json:"millis"`
	Unix     int64  `json:"unix"`
	TimeZone string `json:"timeZone"`
}

func (h *Handler) now(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, nowResponse{
		ISO:      h.base.CurrentISODate(),
		Millis:   h.base.CurrentMillis(),
		Unix:     h.base.CurrentUnixInteger(),
		TimeZone: h.base.TimeZone(),
	})
	return nil
}

func validationTag(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return fmt.Sprintf("failed %s=%s", errs[0].Tag(), errs[0].Param())
	}
	return err.Error()
}
