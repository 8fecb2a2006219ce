package handlers

import (
	"net/http"

	mW "github.com/fitcenter/backend/internal/middleware"
	"github.com/fitcenter/backend/internal/models"
	"github.com/fitcenter/backend/internal/services"
)

type PointsHandler struct {
	ledger    *services.LedgerService
	validator *services.ValidationHelper
}

func NewPointsHandler(ledger *services.LedgerService) *PointsHandler {
	return &PointsHandler{
		ledger:    ledger,
		validator: services.NewValidationHelper(),
	}
}

// GetBalance returns the caller's point balance
// @Summary Get point balance
// @Tags points
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{memberId=string,balance=int64}
// @Failure 401 {object} services.ErrorResponse
// @Router /points/balance [get]
func (h *PointsHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	memberID := mW.UserIDFromContext(r.Context())
	if memberID == "" {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	balance, err := h.ledger.GetBalance(r.Context(), memberID)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"memberId": memberID,
		"balance":  balance,
	})
}

// GetTransactions returns the caller's ledger, newest first
// @Summary List point transactions
// @Tags points
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Transaction
// @Failure 401 {object} services.ErrorResponse
// @Router /points/transactions [get]
func (h *PointsHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	memberID := mW.UserIDFromContext(r.Context())
	if memberID == "" {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	txns, err := h.ledger.GetTransactions(r.Context(), memberID)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	if txns == nil {
		txns = []models.Transaction{}
	}

	writeJSON(w, http.StatusOK, txns)
}

type earnRequest struct {
	MemberID    string `json:"memberId" validate:"required"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Description string `json:"description" validate:"required,max=200"`
}

// EarnPoints credits points to a member on behalf of a collaborator
// @Summary Earn points
// @Description Credit points for an externally verified event
// @Tags points
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body earnRequest true "Earn request"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} services.ErrorResponse
// @Router /points/earn [post]
func (h *PointsHandler) EarnPoints(w http.ResponseWriter, r *http.Request) {
	var req earnRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	txn, err := h.ledger.EarnPoints(r.Context(), req.MemberID, req.Amount, req.Description, services.SourceManual)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, txn)
}
