package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fitcenter/backend/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// createRetries bounds whole-transaction retries when a concurrent issuer
// claimed the same code between our check and our insert.
const createRetries = 3

const requestCols = `id, member_id, amount, verification_code, status, created_at, expires_at, confirmed_by, confirmed_at, cancelled_by, cancelled_at`

// PostgresStore persists the ledger and redemption requests. Every mutation
// runs in one SQL transaction with row locks on the request and the account.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func scanRequest(scanner interface{ Scan(...any) error }) (*models.RedemptionRequest, error) {
	var r models.RedemptionRequest
	var status string
	var confirmedBy, cancelledBy sql.NullString
	var confirmedAt, cancelledAt sql.NullTime

	err := scanner.Scan(&r.ID, &r.MemberID, &r.Amount, &r.VerificationCode, &status,
		&r.CreatedAt, &r.ExpiresAt, &confirmedBy, &confirmedAt, &cancelledBy, &cancelledAt)
	if err != nil {
		return nil, err
	}

	r.Status = models.RedemptionStatus(status)
	r.ConfirmedBy = confirmedBy.String
	r.CancelledBy = cancelledBy.String
	if confirmedAt.Valid {
		t := confirmedAt.Time
		r.ConfirmedAt = &t
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		r.CancelledAt = &t
	}
	return &r, nil
}

func (s *PostgresStore) Earn(ctx context.Context, memberID string, amount int64, description string, now time.Time) (*models.Transaction, int64, error) {
	if amount <= 0 {
		return nil, 0, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, storageError("begin earn", err)
	}
	defer tx.Rollback()

	var balance int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO accounts (member_id, balance, version, created_at, updated_at)
		VALUES ($1, $2, 1, $3, $3)
		ON CONFLICT (member_id) DO UPDATE
		SET balance = accounts.balance + EXCLUDED.balance, version = accounts.version + 1, updated_at = EXCLUDED.updated_at
		RETURNING balance`,
		memberID, amount, now).Scan(&balance)
	if err != nil {
		return nil, 0, storageError("credit account", err)
	}

	txn := &models.Transaction{
		ID:          uuid.NewString(),
		MemberID:    memberID,
		Type:        models.TransactionEarn,
		Amount:      amount,
		Description: description,
		CreatedAt:   now,
	}
	if err := s.insertTransaction(ctx, tx, txn); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, storageError("commit earn", err)
	}
	return txn, balance, nil
}

func (s *PostgresStore) insertTransaction(ctx context.Context, tx *sql.Tx, txn *models.Transaction) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO point_transactions (id, member_id, type, amount, description, related_request_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		txn.ID, txn.MemberID, string(txn.Type), txn.Amount, txn.Description, txn.RelatedRequestID, txn.CreatedAt)
	if err != nil {
		return storageError("insert transaction", err)
	}
	return nil
}

func (s *PostgresStore) Balance(ctx context.Context, memberID string) (int64, error) {
	var balance int64
	err := s.db.QueryRowContext(ctx, `SELECT balance FROM accounts WHERE member_id = $1`, memberID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, storageError("get balance", err)
	}
	return balance, nil
}

func (s *PostgresStore) Transactions(ctx context.Context, memberID string) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, member_id, type, amount, description, related_request_id, created_at
		FROM point_transactions
		WHERE member_id = $1
		ORDER BY seq DESC`, memberID)
	if err != nil {
		return nil, storageError("list transactions", err)
	}
	defer rows.Close()

	txns := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		var typ string
		var related sql.NullString
		if err := rows.Scan(&t.ID, &t.MemberID, &typ, &t.Amount, &t.Description, &related, &t.CreatedAt); err != nil {
			return nil, storageError("scan transaction", err)
		}
		t.Type = models.TransactionType(typ)
		if related.Valid {
			id := related.String
			t.RelatedRequestID = &id
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list transactions", err)
	}
	return txns, nil
}

func (s *PostgresStore) CreateRequest(ctx context.Context, memberID string, amount int64, now time.Time, window time.Duration, codes *CodeGenerator) (*models.RedemptionRequest, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	for attempt := 0; attempt < createRetries; attempt++ {
		req, err := s.createRequest(ctx, memberID, amount, now, window, codes)
		if isUniqueViolation(err) {
			continue
		}
		return req, err
	}
	return nil, ErrCodeSpaceExhausted
}

func (s *PostgresStore) createRequest(ctx context.Context, memberID string, amount int64, now time.Time, window time.Duration, codes *CodeGenerator) (*models.RedemptionRequest, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageError("begin create request", err)
	}
	defer tx.Rollback()

	balance, _, err := s.lockAccount(ctx, tx, memberID)
	if err != nil {
		return nil, err
	}
	if amount > balance {
		return nil, ErrInsufficientBalance
	}

	var queryErr error
	code, err := codes.Generate(func(code string) bool {
		if queryErr != nil {
			return true
		}
		// Release the code from a holder whose window elapsed, then check.
		if _, err := tx.ExecContext(ctx, `
			UPDATE redemption_requests SET status = 'expired'
			WHERE verification_code = $1 AND status = 'pending' AND expires_at < $2`,
			code, now); err != nil {
			queryErr = err
			return true
		}
		var held bool
		if err := tx.QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM redemption_requests WHERE verification_code = $1 AND status = 'pending')`,
			code).Scan(&held); err != nil {
			queryErr = err
			return true
		}
		return held
	})
	if queryErr != nil {
		return nil, storageError("check code", queryErr)
	}
	if err != nil {
		return nil, err
	}

	req := &models.RedemptionRequest{
		ID:               uuid.NewString(),
		MemberID:         memberID,
		Amount:           amount,
		VerificationCode: code,
		Status:           models.RedemptionPending,
		CreatedAt:        now,
		ExpiresAt:        now.Add(window),
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO redemption_requests (id, member_id, amount, verification_code, status, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		req.ID, req.MemberID, req.Amount, req.VerificationCode, string(req.Status), req.CreatedAt, req.ExpiresAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, err
		}
		return nil, storageError("insert request", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageError("commit create request", err)
	}
	return req, nil
}

// lockAccount returns the member's balance and version under a row lock.
// A member with no account has balance zero and version zero.
func (s *PostgresStore) lockAccount(ctx context.Context, tx *sql.Tx, memberID string) (int64, int, error) {
	var balance int64
	var version int
	err := tx.QueryRowContext(ctx, `
		SELECT balance, version FROM accounts WHERE member_id = $1 FOR UPDATE`,
		memberID).Scan(&balance, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, storageError("lock account", err)
	}
	return balance, version, nil
}

// lockRequestByCode prefers the pending holder of code, falling back to the
// most recent terminal holder for diagnostics.
func (s *PostgresStore) lockRequestByCode(ctx context.Context, tx *sql.Tx, code string) (*models.RedemptionRequest, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+requestCols+` FROM redemption_requests
		WHERE verification_code = $1
		ORDER BY (status = 'pending') DESC, created_at DESC
		LIMIT 1
		FOR UPDATE`, NormalizeCode(code))
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageError("lock request", err)
	}
	return req, nil
}

func (s *PostgresStore) lockRequestByID(ctx context.Context, tx *sql.Tx, id string) (*models.RedemptionRequest, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+requestCols+` FROM redemption_requests WHERE id = $1 FOR UPDATE`, id)
	req, err := scanRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageError("lock request", err)
	}
	return req, nil
}

func (s *PostgresStore) markExpired(ctx context.Context, tx *sql.Tx, req *models.RedemptionRequest) error {
	_, err := tx.ExecContext(ctx, `UPDATE redemption_requests SET status = 'expired' WHERE id = $1 AND status = 'pending'`, req.ID)
	if err != nil {
		return storageError("expire request", err)
	}
	req.Status = models.RedemptionExpired
	return nil
}

// settle runs the state machine on a locked request. A lazy expiry is
// committed before ErrExpired is returned.
func (s *PostgresStore) settle(ctx context.Context, tx *sql.Tx, req *models.RedemptionRequest, now time.Time) error {
	expireNow, err := checkPending(req, now)
	if expireNow {
		if err := s.markExpired(ctx, tx, req); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return storageError("commit expiry", err)
		}
	}
	return err
}

func (s *PostgresStore) RequestByCode(ctx context.Context, code string, now time.Time) (*models.RedemptionRequest, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageError("begin lookup", err)
	}
	defer tx.Rollback()

	req, err := s.lockRequestByCode(ctx, tx, code)
	if err != nil {
		return nil, err
	}
	if err := s.settle(ctx, tx, req, now); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, storageError("commit lookup", err)
	}
	return req, nil
}

func (s *PostgresStore) RequestByID(ctx context.Context, id string, now time.Time) (*models.RedemptionRequest, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageError("begin lookup", err)
	}
	defer tx.Rollback()

	req, err := s.lockRequestByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if req.Status == models.RedemptionPending && req.Expired(now) {
		if err := s.markExpired(ctx, tx, req); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, storageError("commit lookup", err)
	}
	return req, nil
}

func (s *PostgresStore) ListRequests(ctx context.Context, memberID string, now time.Time) ([]models.RedemptionRequest, error) {
	if _, err := s.db.ExecContext(ctx, `
		UPDATE redemption_requests SET status = 'expired'
		WHERE member_id = $1 AND status = 'pending' AND expires_at < $2`,
		memberID, now); err != nil {
		return nil, storageError("expire member requests", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+requestCols+` FROM redemption_requests
		WHERE member_id = $1
		ORDER BY created_at DESC`, memberID)
	if err != nil {
		return nil, storageError("list requests", err)
	}
	defer rows.Close()

	reqs := []models.RedemptionRequest{}
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, storageError("scan request", err)
		}
		reqs = append(reqs, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list requests", err)
	}
	return reqs, nil
}

func (s *PostgresStore) Confirm(ctx context.Context, code, staffID string, now time.Time, description string) (*models.RedemptionRequest, *models.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, storageError("begin confirm", err)
	}
	defer tx.Rollback()

	req, err := s.lockRequestByCode(ctx, tx, code)
	if err != nil {
		return nil, nil, err
	}
	if err := s.settle(ctx, tx, req, now); err != nil {
		return nil, nil, err
	}

	txn, err := s.spendTx(ctx, tx, req, description, now)
	if err != nil {
		return nil, nil, err
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE redemption_requests
		SET status = 'confirmed', confirmed_by = $1, confirmed_at = $2
		WHERE id = $3 AND status = 'pending'`,
		staffID, now, req.ID)
	if err != nil {
		return nil, nil, storageError("confirm request", err)
	}
	if n, err := result.RowsAffected(); err != nil || n != 1 {
		return nil, nil, storageError("confirm request", fmt.Errorf("request %s left pending concurrently", req.ID))
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, storageError("commit confirm", err)
	}

	confirmedAt := now
	req.Status = models.RedemptionConfirmed
	req.ConfirmedBy = staffID
	req.ConfirmedAt = &confirmedAt
	return req, txn, nil
}

// spendTx debits req.Amount from the member inside tx. Only Confirm calls it.
func (s *PostgresStore) spendTx(ctx context.Context, tx *sql.Tx, req *models.RedemptionRequest, description string, now time.Time) (*models.Transaction, error) {
	balance, version, err := s.lockAccount(ctx, tx, req.MemberID)
	if err != nil {
		return nil, err
	}
	if req.Amount > balance {
		return nil, ErrInsufficientBalance
	}

	related := req.ID
	txn := &models.Transaction{
		ID:               uuid.NewString(),
		MemberID:         req.MemberID,
		Type:             models.TransactionSpend,
		Amount:           req.Amount,
		Description:      description,
		RelatedRequestID: &related,
		CreatedAt:        now,
	}
	if err := s.insertTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET balance = $1, version = version + 1, updated_at = $2
		WHERE member_id = $3 AND version = $4`,
		balance-req.Amount, now, req.MemberID, version)
	if err != nil {
		return nil, storageError("debit account", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, storageError("debit account", err)
	}
	if rowsAffected == 0 {
		return nil, storageError("debit account", fmt.Errorf("optimistic lock failed for account %s", req.MemberID))
	}
	return txn, nil
}

func (s *PostgresStore) Cancel(ctx context.Context, requestID, actorID string, now time.Time) (*models.RedemptionRequest, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageError("begin cancel", err)
	}
	defer tx.Rollback()

	req, err := s.lockRequestByID(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}
	if err := s.settle(ctx, tx, req, now); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE redemption_requests
		SET status = 'cancelled', cancelled_by = $1, cancelled_at = $2
		WHERE id = $3 AND status = 'pending'`,
		actorID, now, req.ID); err != nil {
		return nil, storageError("cancel request", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, storageError("commit cancel", err)
	}

	cancelledAt := now
	req.Status = models.RedemptionCancelled
	req.CancelledBy = actorID
	req.CancelledAt = &cancelledAt
	return req, nil
}

func (s *PostgresStore) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE redemption_requests SET status = 'expired'
		WHERE status = 'pending' AND expires_at < $1`, now)
	if err != nil {
		return 0, storageError("expire stale requests", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, storageError("expire stale requests", err)
	}
	return int(n), nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
