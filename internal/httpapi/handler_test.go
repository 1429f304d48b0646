package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metacatalog/timefmt/internal/datetime"
	"github.com/metacatalog/timefmt/internal/domain"
	"github.com/metacatalog/timefmt/internal/domain/domaintest"
	"github.com/metacatalog/timefmt/internal/httpapi"
	"github.com/metacatalog/timefmt/internal/locale"
	iredis "github.com/metacatalog/timefmt/internal/redis"
)

var (
	refTime   = time.Date(2024, time.January, 5, 15, 45, 0, 0, time.UTC)
	refMillis = refTime.UnixMilli()
)

type testAPI struct {
	mux   *http.ServeMux
	store *locale.PreferenceStore
	mr    *miniredis.Miniredis
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	mr := miniredis.RunT(t)
	client := iredis.NewClient(iredis.Config{Addr: mr.Addr(), Timeout: time.Second})
	t.Cleanup(func() { _ = client.Close() })
	store := locale.NewPreferenceStore(client.RDB)

	f := datetime.New(
		datetime.WithClock(domaintest.NewFakeClock(refTime)),
		datetime.WithLocation(time.UTC),
	)
	h, err := httpapi.New(httpapi.Config{
		Formatter:   f,
		Resolver:    locale.NewResolver(store, locale.EnUS, nil),
		Preferences: store,
	})
	require.NoError(t, err)

	mux := http.NewServeMux()
	h.Register(mux)
	return &testAPI{mux: mux, store: store, mr: mr}
}

func (a *testAPI) do(t *testing.T, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	a.mux.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, http.MethodGet, target, "", nil)
}

type valueBody struct {
	Value  any    `json:"value"`
	Locale string `json:"locale"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, rec.Code, "body: %s", rec.Body.String())
	assert.Equal(t, code, decode[errorBody](t, rec).Code)
}

func ms(v int64) string {
	return strconv.FormatInt(v, 10)
}

func TestFormatDateTime(t *testing.T) {
	api := newTestAPI(t)

	rec := api.get(t, "/v1/format/datetime?ts="+ms(refMillis))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[valueBody](t, rec)
	assert.Equal(t, "Jan 5, 2024, 3:45 PM", body.Value)
	assert.Equal(t, "en-US", body.Locale)
	assert.Equal(t, "en-US", rec.Header().Get("Content-Language"))
	assert.NotEmpty(t, rec.Header().Get(httpapi.HeaderRequestID))
}

func TestRequestIDIsEchoed(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/v1/now", "", map[string]string{httpapi.HeaderRequestID: "req-42"})

	assert.Equal(t, "req-42", rec.Header().Get(httpapi.HeaderRequestID))
}

func TestLocaleResolution(t *testing.T) {
	api := newTestAPI(t)
	require.NoError(t, api.store.Set(context.Background(), "u-zh", locale.ZhCN))

	target := "/v1/format/datetime?ts=" + ms(refMillis)
	tests := []struct {
		name    string
		query   string
		headers map[string]string
		want    string
		locale  string
	}{
		{name: "default", want: "Jan 5, 2024, 3:45 PM", locale: "en-US"},
		{name: "query", query: "&locale=de_DE", want: "05.01.2024, 15:45", locale: "de-DE"},
		{name: "accept-language", headers: map[string]string{"Accept-Language": "de-DE,de;q=0.9"}, want: "05.01.2024, 15:45", locale: "de-DE"},
		{name: "stored preference", headers: map[string]string{httpapi.HeaderUserID: "u-zh"}, want: "2024年1月5日 15:45", locale: "zh-CN"},
		{
			name:    "preference beats accept-language",
			headers: map[string]string{httpapi.HeaderUserID: "u-zh", "Accept-Language": "de-DE"},
			want:    "2024年1月5日 15:45",
			locale:  "zh-CN",
		},
		{
			name:    "query beats preference",
			query:   "&locale=de-DE",
			headers: map[string]string{httpapi.HeaderUserID: "u-zh"},
			want:    "05.01.2024, 15:45",
			locale:  "de-DE",
		},
		{name: "user without preference", headers: map[string]string{httpapi.HeaderUserID: "u-none"}, want: "Jan 5, 2024, 3:45 PM", locale: "en-US"},
		{name: "unsupported accept-language", headers: map[string]string{"Accept-Language": "ko-KR"}, want: "Jan 5, 2024, 3:45 PM", locale: "en-US"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, http.MethodGet, target+tt.query, "", tt.headers)

			require.Equal(t, http.StatusOK, rec.Code)
			body := decode[valueBody](t, rec)
			assert.Equal(t, tt.want, body.Value)
			assert.Equal(t, tt.locale, body.Locale)
		})
	}
}

func TestLocaleResolution_StoreDownFallsBack(t *testing.T) {
	api := newTestAPI(t)
	api.mr.Close()

	rec := api.do(t, http.MethodGet, "/v1/format/date?ts="+ms(refMillis), "", map[string]string{
		httpapi.HeaderUserID: "u-1",
		"Accept-Language":    "fr-FR",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fr-FR", decode[valueBody](t, rec).Locale)
}

func TestFormatRoutes(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name   string
		target string
		want   any
	}{
		{name: "date", target: "/v1/format/date?ts=" + ms(refMillis), want: "Jan 5, 2024"},
		{name: "zoned", target: "/v1/format/zoned?ts=" + ms(refMillis), want: "Jan 5, 2024, 3:45 PM"},
		{name: "missing ts", target: "/v1/format/datetime", want: ""},
		{name: "long default", target: "/v1/format/long?ts=" + ms(refMillis), want: "Fri 5th January, 2024, 03:45 PM"},
		{name: "long ignores locale", target: "/v1/format/long?locale=de-DE&ts=" + ms(refMillis), want: "Fri 5th January, 2024, 03:45 PM"},
		{name: "custom", target: "/v1/format/custom?pattern=" + url.QueryEscape("yyyy-MM-dd HH:mm") + "&ts=" + ms(refMillis), want: "2024-01-05 15:45"},
		{name: "custom empty pattern", target: "/v1/format/custom?ts=" + ms(refMillis), want: "Jan 5, 2024, 3:45 PM"},
		{name: "timezone", target: "/v1/format/timezone", want: "CUT"},
		{name: "relative", target: "/v1/relative?ts=" + ms(refMillis-3*domain.MillisPerHour), want: "3 hours ago"},
		{name: "relative german", target: "/v1/relative?locale=de-DE&ts=" + ms(refMillis+2*domain.MillisPerHour), want: "in 2 Stunden"},
		{name: "calendar", target: "/v1/relative/calendar?ts=" + ms(refMillis-domain.MillisPerDay), want: "Yesterday"},
		{name: "calendar french", target: "/v1/relative/calendar?locale=fr-FR&ts=" + ms(refMillis-domain.MillisPerDay), want: "Hier"},
		{name: "duration", target: "/v1/duration?ms=30000", want: "30.00 seconds"},
		{name: "duration human", target: "/v1/duration/human?ms=3661000", want: "1h 1m 1s"},
		{name: "duration clock", target: "/v1/duration/clock?seconds=571", want: "00:09:31"},
		{name: "duration clock missing", target: "/v1/duration/clock", want: ""},
		{name: "days remaining", target: "/v1/days/remaining?ts=" + ms(refMillis+5*domain.MillisPerDay), want: float64(5)},
		{name: "pattern valid", target: "/v1/pattern/validate?pattern=" + url.QueryEscape("yyyy-MM-dd"), want: true},
		{name: "pattern empty", target: "/v1/pattern/validate", want: false},
		{name: "pattern unparseable zone", target: "/v1/pattern/validate?pattern=" + url.QueryEscape("yyyy-MM-dd ZZZZ"), want: false},
		{name: "parse", target: "/v1/pattern/parse?value=2024-01-05&pattern=yyyy-MM-dd", want: float64(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC).UnixMilli())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.get(t, tt.target)

			require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
			assert.Equal(t, tt.want, decode[valueBody](t, rec).Value)
		})
	}
}

func TestErrorMapping(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name   string
		target string
		status int
		code   string
	}{
		{name: "unsupported locale", target: "/v1/format/datetime?locale=ko-KR", status: http.StatusBadRequest, code: "UNSUPPORTED_LOCALE"},
		{name: "non-numeric ts", target: "/v1/format/datetime?ts=abc", status: http.StatusBadRequest, code: "INVALID_ARGUMENT"},
		{name: "ts overflows int64", target: "/v1/relative?ts=99999999999999999999", status: http.StatusBadRequest, code: "INVALID_INSTANT"},
		{name: "long missing ts", target: "/v1/format/long", status: http.StatusBadRequest, code: "INVALID_ARGUMENT"},
		{name: "long out of range", target: "/v1/format/long?ts=" + ms(domain.MaxEpochMillis+1), status: http.StatusBadRequest, code: "INVALID_INSTANT"},
		{name: "calendar out of range", target: "/v1/relative/calendar?ts=" + ms(-domain.MaxEpochMillis-1), status: http.StatusBadRequest, code: "INVALID_INSTANT"},
		{name: "negative interval", target: "/v1/interval?start=10&end=5", status: http.StatusBadRequest, code: "INVALID_INTERVAL"},
		{name: "interval missing end", target: "/v1/interval?start=10", status: http.StatusBadRequest, code: "INVALID_ARGUMENT"},
		{name: "parse mismatch", target: "/v1/pattern/parse?value=05/01/2024&pattern=yyyy-MM-dd", status: http.StatusBadRequest, code: "INVALID_PATTERN"},
		{name: "negative day offset", target: "/v1/days/offset?days=-1", status: http.StatusBadRequest, code: "INVALID_ARGUMENT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireError(t, api.get(t, tt.target), tt.status, tt.code)
		})
	}
}

func TestInterval(t *testing.T) {
	api := newTestAPI(t)
	end := domain.MillisPerDay + 2*domain.MillisPerHour + 59*domain.MillisPerMinute

	rec := api.get(t, "/v1/interval?start=0&end="+ms(end))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Value  string `json:"value"`
		Millis int64  `json:"millis"`
		Days   int64  `json:"days"`
		Hours  int64  `json:"hours"`
	}](t, rec)
	assert.Equal(t, "1 Days, 2 Hours", body.Value)
	assert.Equal(t, end, body.Millis)
	assert.Equal(t, int64(1), body.Days)
	assert.Equal(t, int64(2), body.Hours)
}

func TestDayBoundsAndOffsets(t *testing.T) {
	api := newTestAPI(t)
	dayStart := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC).UnixMilli()

	t.Run("bounds", func(t *testing.T) {
		rec := api.get(t, "/v1/days/bounds?ts="+ms(refMillis))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[map[string]int64](t, rec)
		assert.Equal(t, dayStart, body["startOfDay"])
		assert.Equal(t, dayStart+domain.MillisPerDay-1, body["endOfDay"])
		assert.Equal(t, dayStart, body["startOfLocalDay"])
		assert.Equal(t, dayStart+domain.MillisPerDay-1, body["endOfLocalDay"])
	})

	t.Run("bounds default to now", func(t *testing.T) {
		rec := api.get(t, "/v1/days/bounds")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, dayStart, decode[map[string]int64](t, rec)["startOfDay"])
	})

	t.Run("offset", func(t *testing.T) {
		rec := api.get(t, "/v1/days/offset?days=5")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[map[string]int64](t, rec)
		assert.Equal(t, refMillis-5*domain.MillisPerDay, body["pastMillis"])
		assert.Equal(t, refMillis+5*domain.MillisPerDay, body["futureMillis"])
		assert.Equal(t, (refMillis-5*domain.MillisPerDay)/1000, body["pastUnix"])
	})
}

func TestNow(t *testing.T) {
	api := newTestAPI(t)

	rec := api.get(t, "/v1/now")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		ISO      string `json:"iso"`
		Millis   int64  `json:"millis"`
		Unix     int64  `json:"unix"`
		TimeZone string `json:"timeZone"`
	}](t, rec)
	assert.Equal(t, "2024-01-05T15:45:00.000", body.ISO)
	assert.Equal(t, refMillis, body.Millis)
	assert.Equal(t, refMillis/1000, body.Unix)
	assert.Equal(t, "CUT", body.TimeZone)
}

func TestLocales(t *testing.T) {
	api := newTestAPI(t)

	rec := api.get(t, "/v1/locales")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		Value   []string `json:"value"`
		Default string   `json:"default"`
	}](t, rec)
	assert.Len(t, body.Value, len(locale.Supported()))
	assert.Contains(t, body.Value, "ru-RU")
	assert.Equal(t, "en-US", body.Default)
}

func TestPreferences(t *testing.T) {
	api := newTestAPI(t)
	user := map[string]string{httpapi.HeaderUserID: "u-1"}

	t.Run("requires a user", func(t *testing.T) {
		requireError(t, api.get(t, "/v1/preferences/locale"), http.StatusBadRequest, "INVALID_ARGUMENT")
	})

	t.Run("absent", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/v1/preferences/locale", "", user)
		requireError(t, rec, http.StatusNotFound, "NOT_FOUND")
	})

	t.Run("rejects unsupported", func(t *testing.T) {
		rec := api.do(t, http.MethodPut, "/v1/preferences/locale", `{"locale":"ko-KR"}`, user)
		requireError(t, rec, http.StatusBadRequest, "UNSUPPORTED_LOCALE")
	})

	t.Run("rejects empty", func(t *testing.T) {
		rec := api.do(t, http.MethodPut, "/v1/preferences/locale", `{"locale":""}`, user)
		requireError(t, rec, http.StatusBadRequest, "INVALID_ARGUMENT")
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		rec := api.do(t, http.MethodPut, "/v1/preferences/locale", `{"lang":"de-DE"}`, user)
		requireError(t, rec, http.StatusBadRequest, "INVALID_ARGUMENT")
	})

	t.Run("round trip", func(t *testing.T) {
		rec := api.do(t, http.MethodPut, "/v1/preferences/locale", `{"locale":"pt_br"}`, user)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pt-BR", decode[valueBody](t, rec).Value)

		rec = api.do(t, http.MethodGet, "/v1/preferences/locale", "", user)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pt-BR", decode[valueBody](t, rec).Value)

		rec = api.do(t, http.MethodGet, "/v1/format/date?ts="+ms(refMillis), "", user)
		assert.Equal(t, "pt-BR", decode[valueBody](t, rec).Locale)
	})

	t.Run("delete", func(t *testing.T) {
		rec := api.do(t, http.MethodDelete, "/v1/preferences/locale", "", user)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = api.do(t, http.MethodGet, "/v1/preferences/locale", "", user)
		requireError(t, rec, http.StatusNotFound, "NOT_FOUND")
	})

	t.Run("store down", func(t *testing.T) {
		down := newTestAPI(t)
		down.mr.Close()

		rec := down.do(t, http.MethodGet, "/v1/preferences/locale", "", user)
		requireError(t, rec, http.StatusServiceUnavailable, "UNAVAILABLE")
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	})

	t.Run("rate limited", func(t *testing.T) {
		busy := newTestAPI(t)
		writer := map[string]string{httpapi.HeaderUserID: "u-busy"}
		for i := 0; i < domain.PreferenceWriteLimit; i++ {
			rec := busy.do(t, http.MethodPut, "/v1/preferences/locale", `{"locale":"nl-NL"}`, writer)
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := busy.do(t, http.MethodPut, "/v1/preferences/locale", `{"locale":"ru-RU"}`, writer)

		requireError(t, rec, http.StatusTooManyRequests, "RATE_LIMITED")
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	})
}

func TestPreferences_NotConfigured(t *testing.T) {
	h, err := httpapi.New(httpapi.Config{
		Formatter: datetime.New(datetime.WithClock(domaintest.NewFakeClock(refTime)), datetime.WithLocation(time.UTC)),
	})
	require.NoError(t, err)
	mux := http.NewServeMux()
	h.Register(mux)

	req := httptest.NewRequest(http.MethodGet, "/v1/preferences/locale", nil)
	req.Header.Set(httpapi.HeaderUserID, "u-1")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	requireError(t, rec, http.StatusServiceUnavailable, "UNAVAILABLE")
}

func TestNew_RequiresFormatter(t *testing.T) {
	_, err := httpapi.New(httpapi.Config{})

	assert.Error(t, err)
}

func TestKPIWindow(t *testing.T) {
	api := newTestAPI(t)
	dayStart := func(y int, m time.Month, d int) int64 { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).UnixMilli() }

	t.Run("start edit snaps and clears an earlier end", func(t *testing.T) {
		body := `{"window":{"endDate":` + ms(dayStart(2024, 1, 20)) + `},"start":` + ms(dayStart(2024, 2, 1)+13*domain.MillisPerHour) + `}`

		rec := api.do(t, http.MethodPost, "/v1/kpi/window", body, nil)

		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
		got := decode[map[string]any](t, rec)
		assert.Equal(t, float64(dayStart(2024, 2, 1)), got["startDate"])
		assert.NotContains(t, got, "endDate")
		assert.Equal(t, true, got["startSelectable"])
	})

	t.Run("end edit before start moves start", func(t *testing.T) {
		body := `{"window":{"startDate":` + ms(dayStart(2024, 2, 10)) + `},"end":` + ms(dayStart(2024, 2, 3)+8*domain.MillisPerHour) + `}`

		rec := api.do(t, http.MethodPost, "/v1/kpi/window", body, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[map[string]any](t, rec)
		assert.Equal(t, float64(dayStart(2024, 2, 3)), got["startDate"])
		assert.Equal(t, float64(dayStart(2024, 2, 4)-1), got["endDate"])
	})

	t.Run("past start is not selectable", func(t *testing.T) {
		body := `{"window":{},"start":` + ms(dayStart(2023, 12, 1)) + `}`

		rec := api.do(t, http.MethodPost, "/v1/kpi/window", body, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, decode[map[string]any](t, rec)["startSelectable"])
	})

	t.Run("needs exactly one edit", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/v1/kpi/window", `{"window":{}}`, nil)
		requireError(t, rec, http.StatusBadRequest, "INVALID_ARGUMENT")
	})
}

func TestKPIValidate(t *testing.T) {
	api := newTestAPI(t)
	start := time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC).UnixMilli()
	end := time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC).UnixMilli()

	t.Run("valid", func(t *testing.T) {
		body := `{"chartType":"PercentageOfEntitiesWithDescriptionByType","displayName":"Description Coverage",` +
			`"metricType":"PERCENTAGE","targetValue":80,"startDate":` + ms(start) + `,"endDate":` + ms(end) + `}`

		rec := api.do(t, http.MethodPost, "/v1/kpi/validate", body, nil)

		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
		got := decode[map[string]any](t, rec)
		assert.Equal(t, "description-coverage-percentage", got["name"])
		assert.Equal(t, float64(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC).UnixMilli()), got["startDate"])
	})

	t.Run("end before start", func(t *testing.T) {
		body := `{"chartType":"c","metricType":"NUMBER","targetValue":1,"startDate":` + ms(end) + `,"endDate":` + ms(start) + `}`

		rec := api.do(t, http.MethodPost, "/v1/kpi/validate", body, nil)

		requireError(t, rec, http.StatusBadRequest, "INVALID_DATE_RANGE")
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/v1/kpi/validate", `{`, nil)
		requireError(t, rec, http.StatusBadRequest, "INVALID_ARGUMENT")
	})
}

func TestMethodNotAllowed(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodPost, "/v1/now", "", nil)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
