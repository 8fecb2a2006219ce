package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	mW "github.com/fitcenter/backend/internal/middleware"
	"github.com/fitcenter/backend/internal/models"
	"github.com/fitcenter/backend/internal/services"
)

type RedemptionHandler struct {
	service   *services.RedemptionService
	qr        *services.QRService
	members   MemberDirectory
	validator *services.ValidationHelper
}

func NewRedemptionHandler(service *services.RedemptionService, qr *services.QRService, members MemberDirectory) *RedemptionHandler {
	if members == nil {
		members = idDirectory{}
	}
	return &RedemptionHandler{
		service:   service,
		qr:        qr,
		members:   members,
		validator: services.NewValidationHelper(),
	}
}

// RequestView is what the member screen shows while the code counts down.
type RequestView struct {
	ID               string                  `json:"id"`
	VerificationCode string                  `json:"verificationCode"`
	Amount           int64                   `json:"amount"`
	Status           models.RedemptionStatus `json:"status"`
	ExpiresAt        time.Time               `json:"expiresAt"`
	ExpiresIn        int                     `json:"expiresIn"` // seconds
}

// PreviewView is what the staff terminal shows before confirming.
type PreviewView struct {
	ID         string    `json:"id"`
	MemberID   string    `json:"memberId"`
	MemberName string    `json:"memberName"`
	Amount     int64     `json:"amount"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

func newRequestView(req *models.RedemptionRequest, now time.Time) RequestView {
	remaining := int(req.ExpiresAt.Sub(now).Seconds())
	if remaining < 0 || req.Status != models.RedemptionPending {
		remaining = 0
	}
	return RequestView{
		ID:               req.ID,
		VerificationCode: req.VerificationCode,
		Amount:           req.Amount,
		Status:           req.Status,
		ExpiresAt:        req.ExpiresAt,
		ExpiresIn:        remaining,
	}
}

type createUsageRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// CreateUsageRequest issues a verification code for spending points
// @Summary Create redemption request
// @Description Reserve nothing; issue a single-use code valid for the confirmation window
// @Tags redemptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createUsageRequest true "Amount to redeem"
// @Success 201 {object} object{request=RequestView,qrImage=string}
// @Failure 400 {object} services.ErrorResponse
// @Failure 422 {object} services.ErrorResponse "Insufficient points"
// @Failure 429 {object} services.ErrorResponse
// @Router /redemptions [post]
func (h *RedemptionHandler) CreateUsageRequest(w http.ResponseWriter, r *http.Request) {
	memberID := mW.UserIDFromContext(r.Context())
	if memberID == "" {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req createUsageRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	created, err := h.service.CreateUsageRequest(r.Context(), memberID, req.Amount)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	resp := map[string]any{
		"success": true,
		"request": newRequestView(created, time.Now()),
	}
	if h.qr != nil {
		if img, err := h.qr.Base64PNG(created.VerificationCode); err == nil {
			resp["qrImage"] = img
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

// ListRequests lists the caller's redemption requests
// @Summary List redemption requests
// @Tags redemptions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.RedemptionRequest
// @Router /redemptions [get]
func (h *RedemptionHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	memberID := mW.UserIDFromContext(r.Context())
	if memberID == "" {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	reqs, err := h.service.ListRequests(r.Context(), memberID)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}
	if reqs == nil {
		reqs = []models.RedemptionRequest{}
	}
	writeJSON(w, http.StatusOK, reqs)
}

// GetRequest returns the status of one of the caller's requests
// @Summary Get redemption request
// @Tags redemptions
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Success 200 {object} RequestView
// @Failure 404 {object} services.ErrorResponse
// @Router /redemptions/{requestId} [get]
func (h *RedemptionHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := h.ownedRequest(w, r)
	if !ok {
		return
	}
	view := newRequestView(req, time.Now())
	if req.Status.IsTerminal() {
		view.VerificationCode = req.Masked().VerificationCode
	}
	writeJSON(w, http.StatusOK, view)
}

// GetRequestQR renders the verification code of a pending request as PNG
// @Summary Get redemption QR code
// @Tags redemptions
// @Produce png
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Success 200 {file} binary
// @Failure 404 {object} services.ErrorResponse
// @Failure 410 {object} services.ErrorResponse
// @Router /redemptions/{requestId}/qr [get]
func (h *RedemptionHandler) GetRequestQR(w http.ResponseWriter, r *http.Request) {
	req, ok := h.ownedRequest(w, r)
	if !ok {
		return
	}
	if req.Status != models.RedemptionPending {
		services.SendServiceError(w, statusError(req.Status))
		return
	}

	png, err := h.qr.PNG(req.VerificationCode)
	if err != nil {
		services.SendErrorResponse(w, "Failed to render QR code", http.StatusInternalServerError, nil)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// CancelRequest withdraws one of the caller's pending requests
// @Summary Cancel redemption request
// @Tags redemptions
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "Request ID"
// @Success 200 {object} object{success=bool,request=models.RedemptionRequest}
// @Failure 403 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse "Already confirmed or cancelled"
// @Failure 410 {object} services.ErrorResponse "Expired"
// @Router /redemptions/{requestId} [delete]
func (h *RedemptionHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)
	if actor.ID == "" {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	cancelled, err := h.service.CancelRequest(r.Context(), chi.URLParam(r, "requestId"), actor)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"request": cancelled.Masked(),
	})
}

// PreviewRequest shows staff what a code would redeem
// @Summary Preview redemption by code
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param code path string true "Verification code"
// @Success 200 {object} PreviewView
// @Failure 404 {object} services.ErrorResponse "Invalid code"
// @Failure 410 {object} services.ErrorResponse "Expired code"
// @Router /staff/redemptions/{code} [get]
func (h *RedemptionHandler) PreviewRequest(w http.ResponseWriter, r *http.Request) {
	req, err := h.service.GetPendingRequest(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	name, err := h.members.MemberName(r.Context(), req.MemberID)
	if err != nil || name == "" {
		name = req.MemberID
	}

	writeJSON(w, http.StatusOK, PreviewView{
		ID:         req.ID,
		MemberID:   req.MemberID,
		MemberName: name,
		Amount:     req.Amount,
		ExpiresAt:  req.ExpiresAt,
	})
}

type confirmUsageRequest struct {
	Code string `json:"code" validate:"required,min=4,max=16"`
}

// ConfirmUsage redeems a verification code and debits the member
// @Summary Confirm redemption
// @Description Exactly one confirmation per code succeeds
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body confirmUsageRequest true "Verification code"
// @Success 200 {object} object{success=bool,confirmed=bool}
// @Failure 404 {object} services.ErrorResponse "Invalid code"
// @Failure 409 {object} services.ErrorResponse "Already confirmed or cancelled"
// @Failure 410 {object} services.ErrorResponse "Expired code"
// @Failure 422 {object} services.ErrorResponse "Insufficient points"
// @Router /staff/redemptions/confirm [post]
func (h *RedemptionHandler) ConfirmUsage(w http.ResponseWriter, r *http.Request) {
	staffID := mW.UserIDFromContext(r.Context())
	if staffID == "" {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	var req confirmUsageRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	confirmed, err := h.service.ConfirmUsage(r.Context(), req.Code, staffID)
	if err != nil {
		services.SendServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"confirmed": confirmed,
	})
}

func (h *RedemptionHandler) ownedRequest(w http.ResponseWriter, r *http.Request) (*models.RedemptionRequest, bool) {
	actor := actorFromRequest(r)
	if actor.ID == "" {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return nil, false
	}

	req, err := h.service.GetRequest(r.Context(), chi.URLParam(r, "requestId"), actor)
	if err != nil {
		services.SendServiceError(w, err)
		return nil, false
	}
	return req, true
}

func actorFromRequest(r *http.Request) services.Actor {
	return services.Actor{
		ID:    mW.UserIDFromContext(r.Context()),
		Staff: mW.RoleFromContext(r.Context()) == mW.RoleStaff,
	}
}

func statusError(status models.RedemptionStatus) error {
	switch status {
	case models.RedemptionConfirmed:
		return services.ErrAlreadyConfirmed
	case models.RedemptionCancelled:
		return services.ErrCancelled
	case models.RedemptionExpired:
		return services.ErrExpired
	default:
		return services.ErrNotFound
	}
}
