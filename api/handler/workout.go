package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/swolemates/backend/api/transport"
	"github.com/swolemates/backend/domain"
	"github.com/swolemates/backend/pkg/httpcontext"
	workoutUC "github.com/swolemates/backend/usecase/workout"
)

type WorkoutHandler struct {
	baseHandler
	uc *workoutUC.UseCase
}

func NewWorkoutHandler(uc *workoutUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *WorkoutHandler {
	return &WorkoutHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Log a finished workout
// @Tags workouts
// @Router /api/v1/workouts [post]
func (h *WorkoutHandler) LogWorkout(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.WorkoutRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	workout := &domain.Workout{
		UserID:    userID,
		Type:      req.Type,
		Exercises: req.Exercises,
		Duration:  req.Duration,
		BuddyID:   req.BuddyID,
		Notes:     req.Notes,
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			h.respondInvalid(ctx, "invalid date format")
			return
		}
		workout.Date = date
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	logged, err := h.uc.Log(stdCtx, workout)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, logged)
}

// @Summary List logged workouts
// @Tags workouts
// @Router /api/v1/workouts [get]
func (h *WorkoutHandler) ListWorkouts(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 0)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	workouts, err := h.uc.List(stdCtx, userID, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, workouts)
}

// @Summary Schedule a workout with a matched buddy
// @Tags workouts
// @Router /api/v1/workouts/schedule [post]
func (h *WorkoutHandler) ScheduleWorkout(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.ScheduleWorkoutRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	workout := &domain.ScheduledWorkout{
		UserID:  userID,
		BuddyID: req.BuddyID,
		Time:    req.Time,
		Gym:     req.Gym,
		Type:    req.Type,
		Notes:   req.Notes,
	}
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			h.respondInvalid(ctx, "invalid date format")
			return
		}
		workout.Date = date
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	scheduled, err := h.uc.Schedule(stdCtx, workout)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, scheduled)
}

// @Summary List scheduled workouts
// @Tags workouts
// @Router /api/v1/workouts/scheduled [get]
func (h *WorkoutHandler) ListScheduled(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	workouts, err := h.uc.ListScheduled(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, workouts)
}

// parseDate accepts both plain dates and full RFC3339 timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
