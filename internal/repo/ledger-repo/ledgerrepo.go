package ledgerrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/internal/pg"
)

// All balance mutations are single guarded UPDATE statements so the
// sufficient-funds check and the write are one atomic step per user.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Get(ctx context.Context, userID int) (*domain.LedgerEntry, error) {
	query := `
        SELECT id, user_id, available, pending, reserved, withdrawn_total, updated_at
        FROM ledger_entries
        WHERE user_id = $1
    `
	row := r.db.QueryRow(ctx, query, userID)
	var entry domain.LedgerEntry
	err := row.Scan(&entry.ID, &entry.UserID, &entry.Available, &entry.Pending, &entry.Reserved, &entry.WithdrawnTotal, &entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get ledger entry", zap.Error(err))
		return nil, err
	}
	return &entry, nil
}

// CreditPending creates the entry on first use.
func (r *Repository) CreditPending(ctx context.Context, userID int, amount int64) error {
	query := `
        INSERT INTO ledger_entries (user_id, pending)
        VALUES ($1, $2)
        ON CONFLICT (user_id)
        DO UPDATE SET pending = ledger_entries.pending + EXCLUDED.pending, updated_at = now()
    `
	if _, err := r.db.Exec(ctx, query, userID, amount); err != nil {
		zap.L().Error("failed to credit pending", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) ReleasePendingToAvailable(ctx context.Context, userID int, amount int64) (bool, error) {
	query := `
        UPDATE ledger_entries
        SET pending = pending - $2, available = available + $2, updated_at = now()
        WHERE user_id = $1 AND pending >= $2
    `
	return r.guardedExec(ctx, query, userID, amount)
}

func (r *Repository) DebitAvailableToReserved(ctx context.Context, userID int, amount int64) (bool, error) {
	query := `
        UPDATE ledger_entries
        SET available = available - $2, reserved = reserved + $2, updated_at = now()
        WHERE user_id = $1 AND available >= $2
    `
	return r.guardedExec(ctx, query, userID, amount)
}

func (r *Repository) FinalizeReserved(ctx context.Context, userID int, amount int64) (bool, error) {
	query := `
        UPDATE ledger_entries
        SET reserved = reserved - $2, withdrawn_total = withdrawn_total + $2, updated_at = now()
        WHERE user_id = $1 AND reserved >= $2
    `
	return r.guardedExec(ctx, query, userID, amount)
}

func (r *Repository) ReverseReservedToAvailable(ctx context.Context, userID int, amount int64) (bool, error) {
	query := `
        UPDATE ledger_entries
        SET reserved = reserved - $2, available = available + $2, updated_at = now()
        WHERE user_id = $1 AND reserved >= $2
    `
	return r.guardedExec(ctx, query, userID, amount)
}

func (r *Repository) DebitPending(ctx context.Context, userID int, amount int64) (bool, error) {
	query := `
        UPDATE ledger_entries
        SET pending = pending - $2, updated_at = now()
        WHERE user_id = $1 AND pending >= $2
    `
	return r.guardedExec(ctx, query, userID, amount)
}

func (r *Repository) DebitAvailable(ctx context.Context, userID int, amount int64) (bool, error) {
	query := `
        UPDATE ledger_entries
        SET available = available - $2, updated_at = now()
        WHERE user_id = $1 AND available >= $2
    `
	return r.guardedExec(ctx, query, userID, amount)
}

func (r *Repository) guardedExec(ctx context.Context, query string, userID int, amount int64) (bool, error) {
	tag, err := r.db.Exec(ctx, query, userID, amount)
	if err != nil {
		zap.L().Error("ledger update failed", zap.Int("userID", userID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
