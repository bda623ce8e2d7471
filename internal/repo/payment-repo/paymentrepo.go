package paymentrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/internal/pg"
)

var (
	// ErrDuplicateGatewayTxn means another payment already carries this
	// gateway transaction id.
	ErrDuplicateGatewayTxn = errors.New("duplicate gateway transaction id")
	// ErrSubjectAlreadyPaid means the subject already has an active payment.
	ErrSubjectAlreadyPaid = errors.New("subject already has an active payment")
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

const paymentColumns = `id, user_id, subject_type, subject_id, amount, currency, method, status, gateway_txn_id, failure_reason, created_at, updated_at`

func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	query := `
        INSERT INTO payments (user_id, subject_type, subject_id, amount, currency, method, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + paymentColumns
	row := r.db.QueryRow(ctx, query, p.UserID, p.SubjectType, p.SubjectID, p.Amount, p.Currency, p.Method, p.Status)
	created, err := scanPayment(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSubjectAlreadyPaid
		}
		zap.L().Error("failed to create payment", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("failed to get payment", zap.Int("paymentID", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (r *Repository) GetByGatewayTxnID(ctx context.Context, gatewayTxnID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE gateway_txn_id = $1`
	p, err := scanPayment(r.db.QueryRow(ctx, query, gatewayTxnID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("failed to get payment by gateway txn", zap.String("gatewayTxnID", gatewayTxnID), zap.Error(err))
		return nil, err
	}
	return p, nil
}

// SetProcessing is a compare-and-swap on pending; it also pins the gateway
// transaction id, which is immutable once set.
func (r *Repository) SetProcessing(ctx context.Context, id int, gatewayTxnID string) (bool, error) {
	query := `
        UPDATE payments
        SET status = $2, gateway_txn_id = $3, updated_at = now()
        WHERE id = $1 AND status = $4 AND gateway_txn_id IS NULL
    `
	tag, err := r.db.Exec(ctx, query, id, domain.PaymentProcessing, gatewayTxnID, domain.PaymentPending)
	if err != nil {
		if isUniqueViolation(err) {
			return false, ErrDuplicateGatewayTxn
		}
		zap.L().Error("failed to mark payment processing", zap.Int("paymentID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) SetPendingVerification(ctx context.Context, id int, proofRef string) (bool, error) {
	query := `
        UPDATE payments
        SET status = $2, gateway_txn_id = $3, updated_at = now()
        WHERE id = $1 AND status = $4 AND gateway_txn_id IS NULL
    `
	tag, err := r.db.Exec(ctx, query, id, domain.PaymentPendingVerification, proofRef, domain.PaymentPending)
	if err != nil {
		if isUniqueViolation(err) {
			return false, ErrDuplicateGatewayTxn
		}
		zap.L().Error("failed to mark payment pending verification", zap.Int("paymentID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// SettleTerminal moves a payment into a terminal status guarded by its
// current non-terminal status. Zero rows affected means the payment is
// already terminal and the caller must treat the call as a duplicate.
func (r *Repository) SettleTerminal(ctx context.Context, id int, status domain.PaymentStatus, gatewayTxnID *string, reason string) (bool, error) {
	query := `
        UPDATE payments
        SET status = $2,
            gateway_txn_id = COALESCE(gateway_txn_id, $3),
            failure_reason = $4,
            updated_at = now()
        WHERE id = $1 AND status IN ($5, $6, $7)
    `
	tag, err := r.db.Exec(ctx, query, id, status, gatewayTxnID, reason,
		domain.PaymentPending, domain.PaymentProcessing, domain.PaymentPendingVerification)
	if err != nil {
		if isUniqueViolation(err) {
			return false, ErrDuplicateGatewayTxn
		}
		zap.L().Error("failed to settle payment", zap.Int("paymentID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// SetRefunded is a compare-and-swap on completed.
func (r *Repository) SetRefunded(ctx context.Context, id int) (bool, error) {
	query := `
        UPDATE payments
        SET status = $2, updated_at = now()
        WHERE id = $1 AND status = $3
    `
	tag, err := r.db.Exec(ctx, query, id, domain.PaymentRefunded, domain.PaymentCompleted)
	if err != nil {
		zap.L().Error("failed to refund payment", zap.Int("paymentID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// FindStaleProcessing returns processing payments the settlement poller
// should query the gateway about.
func (r *Repository) FindStaleProcessing(ctx context.Context, limit uint32) ([]domain.Payment, error) {
	query := `
        SELECT ` + paymentColumns + `
        FROM payments
        WHERE status = $1 AND gateway_txn_id IS NOT NULL
        ORDER BY updated_at ASC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, domain.PaymentProcessing, limit)
	if err != nil {
		zap.L().Error("failed to fetch processing payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		err := rows.Scan(&p.ID, &p.UserID, &p.SubjectType, &p.SubjectID, &p.Amount, &p.Currency, &p.Method, &p.Status, &p.GatewayTxnID, &p.FailureReason, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			zap.L().Error("failed to scan payment row", zap.Error(err))
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(&p.ID, &p.UserID, &p.SubjectType, &p.SubjectID, &p.Amount, &p.Currency, &p.Method, &p.Status, &p.GatewayTxnID, &p.FailureReason, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
