package dto

import "time"

type CreateOrderRequestDTO struct {
	SellerID  int    `json:"seller_id" validate:"required,gt=0" example:"2"`
	ProductID int    `json:"product_id" validate:"required,gt=0" example:"100"`
	Amount    int64  `json:"amount" validate:"required,gt=0" example:"10000"`
	Currency  string `json:"currency" validate:"required,len=3" example:"USD"`
}

type OrderResponseDTO struct {
	ID            int       `json:"id" example:"10"`
	SellerID      int       `json:"seller_id" example:"2"`
	ProductID     int       `json:"product_id" example:"100"`
	Amount        int64     `json:"amount" example:"10000"`
	Currency      string    `json:"currency" example:"USD"`
	Status        string    `json:"status" example:"pending"`
	StockReserved bool      `json:"stock_reserved" example:"true"`
	PaymentID     *int      `json:"payment_id,omitempty" example:"5"`
	CreatedAt     time.Time `json:"created_at" example:"2025-12-09T16:09:57+03:00"`
}

type CreateServiceOrderRequestDTO struct {
	ProviderID int    `json:"provider_id" validate:"required,gt=0" example:"2"`
	ServiceID  int    `json:"service_id" validate:"required,gt=0" example:"200"`
	Amount     int64  `json:"amount" validate:"required,gt=0" example:"20000"`
	Currency   string `json:"currency" validate:"required,len=3" example:"USD"`
}

type ServiceOrderActionRequestDTO struct {
	Action string `json:"action" validate:"required,oneof=accept start deliver complete cancel" example:"accept"`
}

type ServiceOrderResponseDTO struct {
	ID            int        `json:"id" example:"20"`
	ProviderID    int        `json:"provider_id" example:"2"`
	ServiceID     int        `json:"service_id" example:"200"`
	Amount        int64      `json:"amount" example:"20000"`
	Currency      string     `json:"currency" example:"USD"`
	Status        string     `json:"status" example:"in_progress"`
	RevisionsLeft int        `json:"revisions_left" example:"2"`
	DeliveryDue   *time.Time `json:"delivery_due,omitempty"`
	PaymentID     *int       `json:"payment_id,omitempty" example:"5"`
	CreatedAt     time.Time  `json:"created_at" example:"2025-12-09T16:09:57+03:00"`
}
