package domain

import "time"

type SubjectType string

const (
	SubjectOrder           SubjectType = "order"
	SubjectServiceOrder    SubjectType = "service_order"
	SubjectContentPurchase SubjectType = "content_purchase"
)

type PaymentMethod string

const (
	MethodCard         PaymentMethod = "card"
	MethodEWallet      PaymentMethod = "ewallet"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodManualProof  PaymentMethod = "manual_proof"
)

type PayoutMethod string

const (
	PayoutBankTransfer PayoutMethod = "bank_transfer"
	PayoutEWallet      PayoutMethod = "ewallet"
	PayoutCard         PayoutMethod = "card"
)

type LedgerEntry struct {
	ID             int       `db:"id"`
	UserID         int       `db:"user_id"`
	Available      int64     `db:"available"`
	Pending        int64     `db:"pending"`
	Reserved       int64     `db:"reserved"`
	WithdrawnTotal int64     `db:"withdrawn_total"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Total is available + pending. Reserved funds already left the ledger and
// only wait for admin payout confirmation.
func (e *LedgerEntry) Total() int64 {
	return e.Available + e.Pending
}

type Payment struct {
	ID            int           `db:"id"`
	UserID        int           `db:"user_id"`
	SubjectType   SubjectType   `db:"subject_type"`
	SubjectID     int           `db:"subject_id"`
	Amount        int64         `db:"amount"`
	Currency      string        `db:"currency"`
	Method        PaymentMethod `db:"method"`
	Status        PaymentStatus `db:"status"`
	GatewayTxnID  *string       `db:"gateway_txn_id"`
	FailureReason string        `db:"failure_reason"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
}

type Order struct {
	ID            int         `db:"id"`
	BuyerID       int         `db:"buyer_id"`
	SellerID      int         `db:"seller_id"`
	ProductID     int         `db:"product_id"`
	Amount        int64       `db:"amount"`
	Currency      string      `db:"currency"`
	Status        OrderStatus `db:"status"`
	StockReserved bool        `db:"stock_reserved"`
	PaymentID     *int        `db:"payment_id"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

type ServiceOrder struct {
	ID            int                `db:"id"`
	BuyerID       int                `db:"buyer_id"`
	ProviderID    int                `db:"provider_id"`
	ServiceID     int                `db:"service_id"`
	Amount        int64              `db:"amount"`
	Currency      string             `db:"currency"`
	Status        ServiceOrderStatus `db:"status"`
	RevisionsLeft int                `db:"revisions_left"`
	DeliveryDue   *time.Time         `db:"delivery_due"`
	PaymentID     *int               `db:"payment_id"`
	PaidAt        *time.Time         `db:"paid_at"`
	CreatedAt     time.Time          `db:"created_at"`
	UpdatedAt     time.Time          `db:"updated_at"`
}

type AccessKind string

const (
	AccessLifetime AccessKind = "lifetime"
	AccessWindow   AccessKind = "window"
)

type ContentLicense struct {
	ID            int           `db:"id"`
	BuyerID       int           `db:"buyer_id"`
	AuthorID      int           `db:"author_id"`
	ContentID     int           `db:"content_id"`
	Amount        int64         `db:"amount"`
	Currency      string        `db:"currency"`
	Status        LicenseStatus `db:"status"`
	Access        AccessKind    `db:"access"`
	WindowSecs    int64         `db:"window_secs"`
	ExpiresAt     *time.Time    `db:"expires_at"`
	DownloadsLeft *int          `db:"downloads_left"`
	PaymentID     *int          `db:"payment_id"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
}

type Withdrawal struct {
	ID        int              `db:"id"`
	UserID    int              `db:"user_id"`
	Amount    int64            `db:"amount"`
	Fee       int64            `db:"fee"`
	Net       int64            `db:"net"`
	Currency  string           `db:"currency"`
	Method    PayoutMethod     `db:"method"`
	Status    WithdrawalStatus `db:"status"`
	Notes     string           `db:"notes"`
	CreatedAt time.Time        `db:"created_at"`
	UpdatedAt time.Time        `db:"updated_at"`
}

// SubjectRef identifies the transaction a payment settles.
type SubjectRef struct {
	Type SubjectType `json:"type"`
	ID   int         `json:"id"`
}
