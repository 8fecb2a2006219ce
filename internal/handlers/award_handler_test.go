package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mW "github.com/fitcenter/backend/internal/middleware"
	"github.com/fitcenter/backend/internal/models"
)

func TestAwardHandler_Award(t *testing.T) {
	env := newTestEnv(t)
	h := NewAwardHandler(env.awards)
	system := mW.Identity{UserID: "checkin-kiosk", Role: mW.RoleSystem}

	tests := []struct {
		kind   string
		points int64
	}{
		{"attendance", 10},
		{"workout", 20},
		{"signup", 100},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			w := serve(h.Award, http.MethodPost, "/awards/{kind}", "/awards/"+tt.kind,
				map[string]any{"memberId": "member-1"}, system)
			require.Equal(t, http.StatusCreated, w.Code)

			var txn models.Transaction
			decode(t, w, &txn)
			assert.Equal(t, tt.points, txn.Amount)
			assert.Equal(t, models.TransactionEarn, txn.Type)
		})
	}

	balance, err := env.ledger.GetBalance(context.Background(), "member-1")
	require.NoError(t, err)
	assert.Equal(t, int64(130), balance)

	t.Run("unknown kind", func(t *testing.T) {
		w := serve(h.Award, http.MethodPost, "/awards/{kind}", "/awards/birthday",
			map[string]any{"memberId": "member-1"}, system)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing member", func(t *testing.T) {
		w := serve(h.Award, http.MethodPost, "/awards/{kind}", "/awards/workout",
			map[string]any{}, system)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
