package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fitcenter/backend/internal/models"
	mW "github.com/fitcenter/backend/internal/middleware"
	"github.com/fitcenter/backend/internal/services"
)

func TestPointsHandler_GetBalance(t *testing.T) {
	env := newTestEnv(t)
	h := NewPointsHandler(env.ledger)

	t.Run("unknown member has zero balance", func(t *testing.T) {
		w := serve(h.GetBalance, http.MethodGet, "/points/balance", "/points/balance", nil, member("nobody"))
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		decode(t, w, &resp)
		assert.Equal(t, float64(0), resp["balance"])
	})

	t.Run("balance reflects earnings", func(t *testing.T) {
		env.seed(t, "member-1", 150)

		w := serve(h.GetBalance, http.MethodGet, "/points/balance", "/points/balance", nil, member("member-1"))
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		decode(t, w, &resp)
		assert.Equal(t, "member-1", resp["memberId"])
		assert.Equal(t, float64(150), resp["balance"])
	})

	t.Run("missing identity", func(t *testing.T) {
		w := serve(h.GetBalance, http.MethodGet, "/points/balance", "/points/balance", nil, mW.Identity{})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPointsHandler_GetTransactions(t *testing.T) {
	env := newTestEnv(t)
	h := NewPointsHandler(env.ledger)
	env.seed(t, "member-1", 10)
	env.seed(t, "member-1", 20)

	w := serve(h.GetTransactions, http.MethodGet, "/points/transactions", "/points/transactions", nil, member("member-1"))
	assert.Equal(t, http.StatusOK, w.Code)

	var txns []models.Transaction
	decode(t, w, &txns)
	if assert.Len(t, txns, 2) {
		assert.Equal(t, int64(20), txns[0].Amount, "newest first")
		assert.Equal(t, int64(10), txns[1].Amount)
	}
}

func TestPointsHandler_EarnPoints(t *testing.T) {
	env := newTestEnv(t)
	h := NewPointsHandler(env.ledger)
	system := mW.Identity{UserID: "scheduler", Role: mW.RoleSystem}

	t.Run("credits member", func(t *testing.T) {
		body := map[string]any{"memberId": "member-1", "amount": 25, "description": "Class bonus"}
		w := serve(h.EarnPoints, http.MethodPost, "/points/earn", "/points/earn", body, system)
		assert.Equal(t, http.StatusCreated, w.Code)

		var txn models.Transaction
		decode(t, w, &txn)
		assert.Equal(t, models.TransactionEarn, txn.Type)
		assert.Equal(t, int64(25), txn.Amount)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		body := map[string]any{"memberId": "member-1", "amount": 0, "description": "nothing"}
		w := serve(h.EarnPoints, http.MethodPost, "/points/earn", "/points/earn", body, system)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp services.ErrorResponse
		decode(t, w, &resp)
		assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		w := serve(h.EarnPoints, http.MethodPost, "/points/earn", "/points/earn", "invalid", system)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		body := map[string]any{"memberId": "member-1", "amount": 5, "description": "x", "balance": 1000}
		w := serve(h.EarnPoints, http.MethodPost, "/points/earn", "/points/earn", body, system)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
