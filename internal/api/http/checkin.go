package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/piyushKumar-1/betterbe/internal/api/respond"
	"github.com/piyushKumar-1/betterbe/internal/model"
	"github.com/piyushKumar-1/betterbe/internal/services"
)

// CheckInHandler handles check-in requests.
type CheckInHandler struct {
	checkIns *services.CheckInService
}

func NewCheckInHandler(svc *services.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkIns: svc}
}

// Upsert handles POST /api/checkins
func (h *CheckInHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		HabitID       string  `json:"habitId"`
		Value         int     `json:"value"`
		Note          *string `json:"note,omitempty"`
		EffectiveDate string  `json:"effectiveDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	effectiveDate, err := model.ParseDate(req.EffectiveDate)
	if err != nil {
		respond.WriteBadRequest(w, "effectiveDate must be YYYY-MM-DD")
		return
	}

	checkIn, err := h.checkIns.UpsertCheckIn(r.Context(), &model.CheckIn{
		HabitID:       req.HabitID,
		UserID:        userID,
		Value:         req.Value,
		Note:          req.Note,
		EffectiveDate: effectiveDate,
	})
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, checkIn)
}

// List handles GET /api/checkins with optional habitId, startDate, endDate
// and date query filters.
func (h *CheckInHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	req := model.ListCheckInsRequest{UserID: userID}
	q := r.URL.Query()
	if v := q.Get("habitId"); v != "" {
		req.HabitID = &v
	}
	for param, dest := range map[string]**model.Date{
		"startDate": &req.StartDate,
		"endDate":   &req.EndDate,
	} {
		if v := q.Get(param); v != "" {
			d, err := model.ParseDate(v)
			if err != nil {
				respond.WriteBadRequest(w, param+" must be YYYY-MM-DD")
				return
			}
			*dest = &d
		}
	}
	if v := q.Get("date"); v != "" {
		d, err := model.ParseDate(v)
		if err != nil {
			respond.WriteBadRequest(w, "date must be YYYY-MM-DD")
			return
		}
		req.StartDate = &d
		req.EndDate = &d
	}

	checkIns, err := h.checkIns.ListCheckIns(r.Context(), req)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"checkIns": checkIns,
		"count":    len(checkIns),
	})
}

// ListForDate handles GET /api/checkins/date/{date}
func (h *CheckInHandler) ListForDate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	date, err := model.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		respond.WriteBadRequest(w, "date must be YYYY-MM-DD")
		return
	}

	checkIns, err := h.checkIns.ListCheckInsForDate(r.Context(), userID, date)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"checkIns": checkIns,
		"count":    len(checkIns),
	})
}

// Update handles PUT /api/checkins/{checkInId}
func (h *CheckInHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req model.UpdateCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	checkIn, err := h.checkIns.UpdateCheckIn(r.Context(), userID, mux.Vars(r)["checkInId"], req)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, checkIn)
}

// Delete handles DELETE /api/checkins/{checkInId}
func (h *CheckInHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	if err := h.checkIns.DeleteCheckIn(r.Context(), userID, mux.Vars(r)["checkInId"]); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
