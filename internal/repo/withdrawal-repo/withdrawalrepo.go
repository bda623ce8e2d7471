package withdrawalrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

const withdrawalColumns = `id, user_id, amount, fee, net, currency, method, status, notes, created_at, updated_at`

func (r *Repository) Create(ctx context.Context, w *domain.Withdrawal) (*domain.Withdrawal, error) {
	query := `
        INSERT INTO withdrawals (user_id, amount, fee, net, currency, method, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + withdrawalColumns
	row := r.db.QueryRow(ctx, query, w.UserID, w.Amount, w.Fee, w.Net, w.Currency, w.Method, w.Status)
	created, err := scanWithdrawal(row)
	if err != nil {
		zap.L().Error("failed to create withdrawal", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE id = $1`
	w, err := scanWithdrawal(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("failed to get withdrawal", zap.Int("withdrawalID", id), zap.Error(err))
		return nil, err
	}
	return w, nil
}

// CountActiveByUser backs the pending-withdrawals fairness cap.
func (r *Repository) CountActiveByUser(ctx context.Context, userID int) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM withdrawals
        WHERE user_id = $1 AND status IN ($2, $3)
    `
	var count int
	err := r.db.QueryRow(ctx, query, userID, domain.WithdrawalPending, domain.WithdrawalProcessing).Scan(&count)
	if err != nil {
		zap.L().Error("failed to count active withdrawals", zap.Int("userID", userID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// UpdateStatus is a compare-and-swap guarded by the current status; terminal
// states can never be overwritten.
func (r *Repository) UpdateStatus(ctx context.Context, id int, from, to domain.WithdrawalStatus, notes string) (bool, error) {
	query := `
        UPDATE withdrawals
        SET status = $3, notes = $4, updated_at = now()
        WHERE id = $1 AND status = $2
    `
	tag, err := r.db.Exec(ctx, query, id, from, to, notes)
	if err != nil {
		zap.L().Error("failed to update withdrawal status", zap.Int("withdrawalID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Withdrawal, error) {
	query := `SELECT ` + withdrawalColumns + ` FROM withdrawals WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		var w domain.Withdrawal
		err := rows.Scan(&w.ID, &w.UserID, &w.Amount, &w.Fee, &w.Net, &w.Currency, &w.Method, &w.Status, &w.Notes, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			zap.L().Error("failed to scan withdrawal row", zap.Error(err))
			return nil, err
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, rows.Err()
}

func scanWithdrawal(row pgx.Row) (*domain.Withdrawal, error) {
	var w domain.Withdrawal
	err := row.Scan(&w.ID, &w.UserID, &w.Amount, &w.Fee, &w.Net, &w.Currency, &w.Method, &w.Status, &w.Notes, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
