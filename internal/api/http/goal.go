package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/piyushKumar-1/betterbe/internal/api/respond"
	"github.com/piyushKumar-1/betterbe/internal/model"
	"github.com/piyushKumar-1/betterbe/internal/services"
)

// GoalHandler handles goal and goal-habit link requests.
type GoalHandler struct {
	goals *services.GoalService
}

func NewGoalHandler(svc *services.GoalService) *GoalHandler {
	return &GoalHandler{goals: svc}
}

// Create handles POST /api/goals
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		Name        string   `json:"name"`
		Description *string  `json:"description,omitempty"`
		Deadline    string   `json:"deadline"`
		HabitIDs    []string `json:"habitIds,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	deadline, err := model.ParseDate(req.Deadline)
	if err != nil {
		respond.WriteBadRequest(w, "deadline must be YYYY-MM-DD")
		return
	}

	goal, err := h.goals.CreateGoal(r.Context(), &model.Goal{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Deadline:    deadline,
	}, req.HabitIDs)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, goal)
}

// List handles GET /api/goals
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	goals, err := h.goals.ListGoals(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"goals": goals,
		"count": len(goals),
	})
}

// Get handles GET /api/goals/{goalId}
func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	goal, err := h.goals.GetGoal(r.Context(), userID, mux.Vars(r)["goalId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, goal)
}

// Update handles PUT /api/goals/{goalId}
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req model.UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	goal, err := h.goals.UpdateGoal(r.Context(), userID, mux.Vars(r)["goalId"], req)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, goal)
}

// Delete handles DELETE /api/goals/{goalId}
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	if err := h.goals.DeleteGoal(r.Context(), userID, mux.Vars(r)["goalId"]); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListHabits handles GET /api/goals/{goalId}/habits
func (h *GoalHandler) ListHabits(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	links, err := h.goals.ListGoalHabits(r.Context(), userID, mux.Vars(r)["goalId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"goalHabits": links,
		"count":      len(links),
	})
}

// LinkHabit handles POST /api/goals/{goalId}/habits
func (h *GoalHandler) LinkHabit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	var req struct {
		HabitID string   `json:"habitId"`
		Weight  *float64 `json:"weight,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	weight := 1.0
	if req.Weight != nil {
		weight = *req.Weight
	}

	link, err := h.goals.LinkHabit(r.Context(), userID, mux.Vars(r)["goalId"], req.HabitID, weight)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, link)
}

// UnlinkHabit handles DELETE /api/goals/{goalId}/habits/{habitId}
func (h *GoalHandler) UnlinkHabit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUserID(w, r)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	if err := h.goals.UnlinkHabit(r.Context(), userID, vars["goalId"], vars["habitId"]); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
