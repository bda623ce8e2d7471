package orderrepo

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

const orderColumns = `id, buyer_id, seller_id, product_id, amount, currency, status, stock_reserved, payment_id, created_at, updated_at`

func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	query := `
        INSERT INTO orders (buyer_id, seller_id, product_id, amount, currency, status, stock_reserved)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + orderColumns
	row := r.db.QueryRow(ctx, query, order.BuyerID, order.SellerID, order.ProductID, order.Amount, order.Currency, order.Status, order.StockReserved)
	created, err := scanOrder(row)
	if err != nil {
		zap.L().Error("failed to create order", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("failed to get order", zap.Int("orderID", id), zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (r *Repository) FindByBuyerID(ctx context.Context, buyerID int) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE buyer_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, buyerID)
	if err != nil {
		zap.L().Error("failed to fetch orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		err := rows.Scan(&o.ID, &o.BuyerID, &o.SellerID, &o.ProductID, &o.Amount, &o.Currency, &o.Status, &o.StockReserved, &o.PaymentID, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			zap.L().Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// UpdateStatus is a compare-and-swap guarded by the current status.
func (r *Repository) UpdateStatus(ctx context.Context, id int, from, to domain.OrderStatus) (bool, error) {
	query := `
        UPDATE orders
        SET status = $3, updated_at = now()
        WHERE id = $1 AND status = $2
    `
	tag, err := r.db.Exec(ctx, query, id, from, to)
	if err != nil {
		zap.L().Error("failed to update order status", zap.Int("orderID", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) SetPaymentID(ctx context.Context, id, paymentID int) error {
	query := `UPDATE orders SET payment_id = $2, updated_at = now() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id, paymentID); err != nil {
		zap.L().Error("failed to link payment to order", zap.Int("orderID", id), zap.Error(err))
		return err
	}
	return nil
}

// ReleaseStock drops the reservation flag when a pending order is cancelled.
func (r *Repository) ReleaseStock(ctx context.Context, id int) error {
	query := `UPDATE orders SET stock_reserved = FALSE, updated_at = now() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		zap.L().Error("failed to release order stock", zap.Int("orderID", id), zap.Error(err))
		return err
	}
	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.BuyerID, &o.SellerID, &o.ProductID, &o.Amount, &o.Currency, &o.Status, &o.StockReserved, &o.PaymentID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
