package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fitcenter/backend/internal/models"
	"github.com/fitcenter/backend/internal/services"
)

type AwardHandler struct {
	awards    *services.AwardService
	validator *services.ValidationHelper
}

func NewAwardHandler(awards *services.AwardService) *AwardHandler {
	return &AwardHandler{
		awards:    awards,
		validator: services.NewValidationHelper(),
	}
}

type awardRequest struct {
	MemberID string `json:"memberId" validate:"required"`
}

// Award credits the configured points for a verified event
// @Summary Award points for an event
// @Description kind is one of attendance, workout, signup
// @Tags awards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "Event kind"
// @Param request body awardRequest true "Member to award"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /awards/{kind} [post]
func (h *AwardHandler) Award(w http.ResponseWriter, r *http.Request) {
	var award func(context.Context, string) (*models.Transaction, error)
	switch chi.URLParam(r, "kind") {
	case services.SourceAttendance:
		award = h.awards.AttendanceConfirmed
	case services.SourceWorkout:
		award = h.awards.WorkoutVerified
	case services.SourceSignup:
		award = h.awards.AccountCreated
	default:
		services.SendErrorResponse(w, "Unknown award kind", http.StatusNotFound, nil)
		return
	}

	var req awardRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	txn, err := award(r.Context(), req.MemberID)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, txn)
}
