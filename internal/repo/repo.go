package repo

import (
	"github.com/settleflow/settleflow/internal/pg"
	contentrepo "github.com/settleflow/settleflow/internal/repo/content-repo"
	ledgerrepo "github.com/settleflow/settleflow/internal/repo/ledger-repo"
	orderrepo "github.com/settleflow/settleflow/internal/repo/order-repo"
	paymentrepo "github.com/settleflow/settleflow/internal/repo/payment-repo"
	serviceorderrepo "github.com/settleflow/settleflow/internal/repo/serviceorder-repo"
	withdrawalrepo "github.com/settleflow/settleflow/internal/repo/withdrawal-repo"
	"github.com/settleflow/settleflow/internal/service/contentservice"
	"github.com/settleflow/settleflow/internal/service/ledgerservice"
	"github.com/settleflow/settleflow/internal/service/orderservice"
	"github.com/settleflow/settleflow/internal/service/paymentservice"
	"github.com/settleflow/settleflow/internal/service/serviceorderservice"
	"github.com/settleflow/settleflow/internal/service/withdrawalservice"
)

type Repositories struct {
	LedgerRepo       ledgerservice.Repo
	PaymentRepo      paymentservice.Repo
	OrderRepo        orderservice.Repo
	ServiceOrderRepo serviceorderservice.Repo
	ContentRepo      contentservice.Repo
	WithdrawalRepo   withdrawalservice.Repo
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		LedgerRepo:       ledgerrepo.New(conn),
		PaymentRepo:      paymentrepo.New(conn),
		OrderRepo:        orderrepo.New(conn),
		ServiceOrderRepo: serviceorderrepo.New(conn),
		ContentRepo:      contentrepo.New(conn),
		WithdrawalRepo:   withdrawalrepo.New(conn),
	}
}
