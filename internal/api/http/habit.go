package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/piyushKumar-1/betterbe/internal/api/respond"
	"github.com/piyushKumar-1/betterbe/internal/model"
	"github.com/piyushKumar-1/betterbe/internal/services"
)

// HabitHandler handles habit CRUD requests.
type HabitHandler struct {
	habits *services.HabitService
}

func NewHabitHandler(svc *services.HabitService) *HabitHandler {
	return &HabitHandler{habits: svc}
}

// Create handles POST /api/habits
func (h *HabitHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		Name            string  `json:"name"`
		Description     *string `json:"description,omitempty"`
		HabitType       string  `json:"habitType"`
		Unit            *string `json:"unit,omitempty"`
		TargetValue     *int    `json:"targetValue,omitempty"`
		TargetDirection string  `json:"targetDirection,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	habit, err := h.habits.CreateHabit(r.Context(), &model.Habit{
		UserID:          userID,
		Name:            req.Name,
		Description:     req.Description,
		HabitType:       model.HabitType(req.HabitType),
		Unit:            req.Unit,
		TargetValue:     req.TargetValue,
		TargetDirection: model.TargetDirection(req.TargetDirection),
	})
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, habit)
}

// List handles GET /api/habits
func (h *HabitHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	habits, err := h.habits.ListHabits(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"habits": habits,
		"count":  len(habits),
	})
}

// Get handles GET /api/habits/{habitId}
func (h *HabitHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	habit, err := h.habits.GetHabit(r.Context(), userID, mux.Vars(r)["habitId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, habit)
}

// Update handles PUT /api/habits/{habitId}
func (h *HabitHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req model.UpdateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	habit, err := h.habits.UpdateHabit(r.Context(), userID, mux.Vars(r)["habitId"], req)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, habit)
}

// Delete handles DELETE /api/habits/{habitId}
func (h *HabitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	if err := h.habits.DeleteHabit(r.Context(), userID, mux.Vars(r)["habitId"]); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Archive handles POST /api/habits/{habitId}/archive
func (h *HabitHandler) Archive(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	habit, err := h.habits.ArchiveHabit(r.Context(), userID, mux.Vars(r)["habitId"], true)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, habit)
}
