package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/fitcenter/backend/internal/config"
	mW "github.com/fitcenter/backend/internal/middleware"
	"github.com/fitcenter/backend/internal/services"
)

type testEnv struct {
	ledger     *services.LedgerService
	redemption *services.RedemptionService
	awards     *services.AwardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := services.NewMemoryStore()
	codes, err := services.NewCodeGenerator(&config.RedemptionConfig{})
	require.NoError(t, err)

	ledger := services.NewLedgerService(store, nil, nil, nil, nil)
	return &testEnv{
		ledger: ledger,
		redemption: services.NewRedemptionService(services.RedemptionDeps{
			Store:  store,
			Codes:  codes,
			Config: &config.RedemptionConfig{CodeTimeout: config.DefaultCodeTimeout, SpendDescription: "Redeemed"},
		}),
		awards: services.NewAwardService(ledger, &config.AwardConfig{Attendance: 10, Workout: 20, Signup: 100}),
	}
}

func (e *testEnv) seed(t *testing.T, memberID string, amount int64) {
	t.Helper()
	_, err := e.ledger.EarnPoints(context.Background(), memberID, amount, "seed", services.SourceManual)
	require.NoError(t, err)
}

// serve routes a single request through chi so URL params resolve, with the
// identity the auth middleware would have attached.
func serve(handler http.HandlerFunc, method, pattern, target string, body any, identity mW.Identity) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(mW.WithIdentity(req.Context(), identity)))
		})
	})
	r.Method(method, pattern, handler)

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func member(id string) mW.Identity {
	return mW.Identity{UserID: id, Role: mW.RoleMember}
}

func staff(id string) mW.Identity {
	return mW.Identity{UserID: id, Role: mW.RoleStaff}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, jsonDecode(w.Body.Bytes(), dst))
}

func jsonDecode(raw []byte, dst any) error {
	return json.Unmarshal(raw, dst)
}

func lower(s string) string {
	return strings.ToLower(s)
}
