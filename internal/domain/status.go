package domain

// Every machine keeps its legal edges in one table so there is a single place
// to read, test and extend them. A transition absent from the table is illegal.

type PaymentStatus string

const (
	PaymentPending             PaymentStatus = "pending"
	PaymentProcessing          PaymentStatus = "processing"
	PaymentPendingVerification PaymentStatus = "pending_verification"
	PaymentCompleted           PaymentStatus = "completed"
	PaymentFailed              PaymentStatus = "failed"
	PaymentRefunded            PaymentStatus = "refunded"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:             {PaymentProcessing, PaymentPendingVerification, PaymentCompleted, PaymentFailed},
	PaymentProcessing:          {PaymentCompleted, PaymentFailed},
	PaymentPendingVerification: {PaymentCompleted, PaymentFailed},
	PaymentCompleted:           {PaymentRefunded},
}

func (s PaymentStatus) CanTransition(to PaymentStatus) bool {
	return contains(paymentTransitions[s], to)
}

func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentCompleted || s == PaymentFailed || s == PaymentRefunded
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefunded   OrderStatus = "refunded"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderCompleted},
	OrderCompleted:  {OrderRefunded},
}

func (s OrderStatus) CanTransition(to OrderStatus) bool {
	return contains(orderTransitions[s], to)
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderCompleted || s == OrderCancelled || s == OrderRefunded
}

type ServiceOrderStatus string

const (
	ServiceOrderPending           ServiceOrderStatus = "pending"
	ServiceOrderAccepted          ServiceOrderStatus = "accepted"
	ServiceOrderInProgress        ServiceOrderStatus = "in_progress"
	ServiceOrderDelivered         ServiceOrderStatus = "delivered"
	ServiceOrderRevisionRequested ServiceOrderStatus = "revision_requested"
	ServiceOrderCompleted         ServiceOrderStatus = "completed"
	ServiceOrderCancelled         ServiceOrderStatus = "cancelled"
)

var serviceOrderTransitions = map[ServiceOrderStatus][]ServiceOrderStatus{
	ServiceOrderPending:           {ServiceOrderAccepted, ServiceOrderCancelled},
	ServiceOrderAccepted:          {ServiceOrderInProgress, ServiceOrderCancelled},
	ServiceOrderInProgress:        {ServiceOrderDelivered, ServiceOrderCancelled},
	ServiceOrderDelivered:         {ServiceOrderCompleted, ServiceOrderRevisionRequested},
	ServiceOrderRevisionRequested: {ServiceOrderInProgress, ServiceOrderDelivered},
}

func (s ServiceOrderStatus) CanTransition(to ServiceOrderStatus) bool {
	return contains(serviceOrderTransitions[s], to)
}

func (s ServiceOrderStatus) IsTerminal() bool {
	return s == ServiceOrderCompleted || s == ServiceOrderCancelled
}

type LicenseStatus string

const (
	LicensePending LicenseStatus = "pending"
	LicenseActive  LicenseStatus = "active"
	LicenseExpired LicenseStatus = "expired"
	LicenseRevoked LicenseStatus = "revoked"
)

var licenseTransitions = map[LicenseStatus][]LicenseStatus{
	LicensePending: {LicenseActive, LicenseRevoked},
	LicenseActive:  {LicenseExpired, LicenseRevoked},
}

func (s LicenseStatus) CanTransition(to LicenseStatus) bool {
	return contains(licenseTransitions[s], to)
}

func (s LicenseStatus) IsTerminal() bool {
	return s == LicenseExpired || s == LicenseRevoked
}

type WithdrawalStatus string

const (
	WithdrawalPending    WithdrawalStatus = "pending"
	WithdrawalProcessing WithdrawalStatus = "processing"
	WithdrawalCompleted  WithdrawalStatus = "completed"
	WithdrawalRejected   WithdrawalStatus = "rejected"
	WithdrawalCancelled  WithdrawalStatus = "cancelled"
)

var withdrawalTransitions = map[WithdrawalStatus][]WithdrawalStatus{
	WithdrawalPending:    {WithdrawalProcessing, WithdrawalCompleted, WithdrawalRejected, WithdrawalCancelled},
	WithdrawalProcessing: {WithdrawalCompleted, WithdrawalRejected},
}

func (s WithdrawalStatus) CanTransition(to WithdrawalStatus) bool {
	return contains(withdrawalTransitions[s], to)
}

func (s WithdrawalStatus) IsTerminal() bool {
	return s == WithdrawalCompleted || s == WithdrawalRejected || s == WithdrawalCancelled
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
