package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Each machine's legal edges and terminal states are restated here by hand.
// The loops below walk every (from, to) pair, so an edge added to or dropped
// from a table without a matching change here fails loudly.

func TestPaymentTransitions(t *testing.T) {
	all := []PaymentStatus{
		PaymentPending, PaymentProcessing, PaymentPendingVerification,
		PaymentCompleted, PaymentFailed, PaymentRefunded,
	}
	legal := map[PaymentStatus]map[PaymentStatus]bool{
		PaymentPending:             {PaymentProcessing: true, PaymentPendingVerification: true, PaymentCompleted: true, PaymentFailed: true},
		PaymentProcessing:          {PaymentCompleted: true, PaymentFailed: true},
		PaymentPendingVerification: {PaymentCompleted: true, PaymentFailed: true},
		PaymentCompleted:           {PaymentRefunded: true},
	}
	terminal := map[PaymentStatus]bool{PaymentCompleted: true, PaymentFailed: true, PaymentRefunded: true}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, legal[from][to], from.CanTransition(to),
				fmt.Sprintf("%s -> %s", from, to))
		}
		assert.Equal(t, terminal[from], from.IsTerminal(), string(from))
	}
}

func TestOrderTransitions(t *testing.T) {
	all := []OrderStatus{OrderPending, OrderProcessing, OrderCompleted, OrderCancelled, OrderRefunded}
	legal := map[OrderStatus]map[OrderStatus]bool{
		OrderPending:    {OrderProcessing: true, OrderCancelled: true},
		OrderProcessing: {OrderCompleted: true},
		OrderCompleted:  {OrderRefunded: true},
	}
	terminal := map[OrderStatus]bool{OrderCompleted: true, OrderCancelled: true, OrderRefunded: true}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, legal[from][to], from.CanTransition(to),
				fmt.Sprintf("%s -> %s", from, to))
		}
		assert.Equal(t, terminal[from], from.IsTerminal(), string(from))
	}
}

func TestServiceOrderTransitions(t *testing.T) {
	all := []ServiceOrderStatus{
		ServiceOrderPending, ServiceOrderAccepted, ServiceOrderInProgress,
		ServiceOrderDelivered, ServiceOrderRevisionRequested,
		ServiceOrderCompleted, ServiceOrderCancelled,
	}
	legal := map[ServiceOrderStatus]map[ServiceOrderStatus]bool{
		ServiceOrderPending:           {ServiceOrderAccepted: true, ServiceOrderCancelled: true},
		ServiceOrderAccepted:          {ServiceOrderInProgress: true, ServiceOrderCancelled: true},
		ServiceOrderInProgress:        {ServiceOrderDelivered: true, ServiceOrderCancelled: true},
		ServiceOrderDelivered:         {ServiceOrderCompleted: true, ServiceOrderRevisionRequested: true},
		ServiceOrderRevisionRequested: {ServiceOrderInProgress: true, ServiceOrderDelivered: true},
	}
	terminal := map[ServiceOrderStatus]bool{ServiceOrderCompleted: true, ServiceOrderCancelled: true}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, legal[from][to], from.CanTransition(to),
				fmt.Sprintf("%s -> %s", from, to))
		}
		assert.Equal(t, terminal[from], from.IsTerminal(), string(from))
	}
}

func TestLicenseTransitions(t *testing.T) {
	all := []LicenseStatus{LicensePending, LicenseActive, LicenseExpired, LicenseRevoked}
	legal := map[LicenseStatus]map[LicenseStatus]bool{
		LicensePending: {LicenseActive: true, LicenseRevoked: true},
		LicenseActive:  {LicenseExpired: true, LicenseRevoked: true},
	}
	terminal := map[LicenseStatus]bool{LicenseExpired: true, LicenseRevoked: true}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, legal[from][to], from.CanTransition(to),
				fmt.Sprintf("%s -> %s", from, to))
		}
		assert.Equal(t, terminal[from], from.IsTerminal(), string(from))
	}
}

func TestWithdrawalTransitions(t *testing.T) {
	all := []WithdrawalStatus{
		WithdrawalPending, WithdrawalProcessing, WithdrawalCompleted,
		WithdrawalRejected, WithdrawalCancelled,
	}
	legal := map[WithdrawalStatus]map[WithdrawalStatus]bool{
		WithdrawalPending:    {WithdrawalProcessing: true, WithdrawalCompleted: true, WithdrawalRejected: true, WithdrawalCancelled: true},
		WithdrawalProcessing: {WithdrawalCompleted: true, WithdrawalRejected: true},
	}
	terminal := map[WithdrawalStatus]bool{WithdrawalCompleted: true, WithdrawalRejected: true, WithdrawalCancelled: true}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, legal[from][to], from.CanTransition(to),
				fmt.Sprintf("%s -> %s", from, to))
		}
		assert.Equal(t, terminal[from], from.IsTerminal(), string(from))
	}
}

// No status may transition to itself; a CAS that "moves" a record to its
// current state would mask lost updates.
func TestNoSelfTransitions(t *testing.T) {
	for _, s := range []PaymentStatus{PaymentPending, PaymentProcessing, PaymentPendingVerification, PaymentCompleted, PaymentFailed, PaymentRefunded} {
		assert.False(t, s.CanTransition(s), string(s))
	}
	for _, s := range []ServiceOrderStatus{ServiceOrderPending, ServiceOrderAccepted, ServiceOrderInProgress, ServiceOrderDelivered, ServiceOrderRevisionRequested, ServiceOrderCompleted, ServiceOrderCancelled} {
		assert.False(t, s.CanTransition(s), string(s))
	}
}
