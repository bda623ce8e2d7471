package serviceorderrepo

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

const serviceOrderColumns = `id, buyer_id, provider_id, service_id, amount, currency, status, revisions_left, delivery_due, payment_id, paid_at, created_at, updated_at`

func (r *Repository) Create(ctx context.Context, so *domain.ServiceOrder) (*domain.ServiceOrder, error) {
	query := `
        INSERT INTO service_orders (buyer_id, provider_id, service_id, amount, currency, status, revisions_left, delivery_due)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + serviceOrderColumns
	row := r.db.QueryRow(ctx, query, so.BuyerID, so.ProviderID, so.ServiceID, so.Amount, so.Currency, so.Status, so.RevisionsLeft, so.DeliveryDue)
	created, err := scanServiceOrder(row)
	if err != nil {
		zap.L().Error("failed to create service order", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.ServiceOrder, error) {
	query := `SELECT ` + serviceOrderColumns + ` FROM service_orders WHERE id = $1`
	so, err := scanServiceOrder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("failed to get service order", zap.Int("serviceOrderID", id), zap.Error(err))
		return nil, err
	}
	return so, nil
}

// CountActiveByProvider backs the provider capacity guard.
func (r *Repository) CountActiveByProvider(ctx context.Context, providerID int) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM service_orders
        WHERE provider_id = $1 AND status NOT IN ($2, $3)
    `
	var count int
	err := r.db.QueryRow(ctx, query, providerID, domain.ServiceOrderCompleted, domain.ServiceOrderCancelled).Scan(&count)
	if err != nil {
		zap.L().Error("failed to count active service orders", zap.Int("providerID", providerID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int, from, to domain.ServiceOrderStatus) (bool, error) {
	query := `
        UPDATE service_orders
        SET status = $3, updated_at = now()
        WHERE id = $1 AND status = $2
    `
	tag, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		zap.L().Error("failed to update service order status", zap.Int("serviceOrderID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// RequestRevision decrements the counter and flips the status in one guarded
// statement so the counter can never go negative.
func (r *Repository) RequestRevision(ctx context.Context, id int) (bool, error) {
	query := `
        UPDATE service_orders
        SET status = $2, revisions_left = revisions_left - 1, updated_at = now()
        WHERE id = $1 AND status = $3 AND revisions_left > 0
    `
	tag, err := r.db.Exec(ctx, query, id, domain.ServiceOrderRevisionRequested, domain.ServiceOrderDelivered)
	if err != nil {
		zap.L().Error("failed to request revision", zap.Int("serviceOrderID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) SetPaymentID(ctx context.Context, id, paymentID int) error {
	query := `UPDATE service_orders SET payment_id = $2, updated_at = now() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id, paymentID); err != nil {
		zap.L().Error("failed to link payment to service order", zap.Int("serviceOrderID", id), zap.Error(err))
		return err
	}
	return nil
}

// MarkPaid records a confirmed settlement. The guard keeps it a one-shot:
// only a pending, not-yet-paid order can take the marker.
func (r *Repository) MarkPaid(ctx context.Context, id, paymentID int) (bool, error) {
	query := `
        UPDATE service_orders
        SET payment_id = $2, paid_at = now(), updated_at = now()
        WHERE id = $1 AND status = $3 AND paid_at IS NULL
    `
	tag, err := r.db.Exec(ctx, query, id, paymentID, domain.ServiceOrderPending)
	if err != nil {
		zap.L().Error("failed to mark service order paid", zap.Int("serviceOrderID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) FindByBuyerID(ctx context.Context, buyerID int) ([]domain.ServiceOrder, error) {
	query := `SELECT ` + serviceOrderColumns + ` FROM service_orders WHERE buyer_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, buyerID)
	if err != nil {
		zap.L().Error("failed to fetch service orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var sos []domain.ServiceOrder
	for rows.Next() {
		var so domain.ServiceOrder
		err := rows.Scan(&so.ID, &so.BuyerID, &so.ProviderID, &so.ServiceID, &so.Amount, &so.Currency, &so.Status, &so.RevisionsLeft, &so.DeliveryDue, &so.PaymentID, &so.PaidAt, &so.CreatedAt, &so.UpdatedAt)
		if err != nil {
			zap.L().Error("failed to scan service order row", zap.Error(err))
			return nil, err
		}
		sos = append(sos, so)
	}
	return sos, rows.Err()
}

func scanServiceOrder(row pgx.Row) (*domain.ServiceOrder, error) {
	var so domain.ServiceOrder
	err := row.Scan(&so.ID, &so.BuyerID, &so.ProviderID, &so.ServiceID, &so.Amount, &so.Currency, &so.Status, &so.RevisionsLeft, &so.DeliveryDue, &so.PaymentID, &so.PaidAt, &so.CreatedAt, &so.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &so, nil
}
