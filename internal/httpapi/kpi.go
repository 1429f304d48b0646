package httpapi

import (
	"fmt"
	"net/http"

	"github.com/metacatalog/timefmt/internal/domain"
	"github.com/metacatalog/timefmt/internal/kpi"
)

// windowEdit applies one date-picker change to a KPI window. Exactly one
// of Start or End must be set.
type windowEdit struct {
	Window kpi.Window `json:"window"`
	Start  *int64     `json:"start,omitempty"`
	End    *int64     `json:"end,omitempty"`
}

type windowResponse struct {
	kpi.Window
	StartSelectable bool `json:"startSelectable"`
}

func (h *Handler) kpiWindow(w http.ResponseWriter, r *http.Request) error {
	var edit windowEdit
	if err := decodeJSON(r, &edit); err != nil {
		return err
	}
	if (edit.Start == nil) == (edit.End == nil) {
		return fmt.Errorf("%w: set exactly one of start or end", domain.ErrInvalidInput)
	}
	for _, p := range []*int64{edit.Start, edit.End, edit.Window.Start, edit.Window.End} {
		if p != nil && !domain.ValidMillis(*p) {
			return fmt.Errorf("%w: %d", domain.ErrInvalidInstant, *p)
		}
	}

	win := edit.Window
	if edit.Start != nil {
		win = h.planner.ApplyStart(win, *edit.Start)
	} else {
		win = h.planner.ApplyEnd(win, *edit.End)
	}

	resp := windowResponse{Window: win}
	if win.Start != nil {
		resp.StartSelectable = h.planner.IsSelectableDate(*win.Start)
	}
	writeJSON(w, http.StatusOK, resp)
	return nil
}

func (h *Handler) kpiValidate(w http.ResponseWriter, r *http.Request) error {
	var req kpi.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	def, err := h.planner.Validate(req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, def)
	return nil
}
