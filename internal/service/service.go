package service

import (
	"github.com/settleflow/settleflow/internal/config"
	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/internal/gateway"
	balancehandlers "github.com/settleflow/settleflow/internal/handlers/balance"
	contenthandlers "github.com/settleflow/settleflow/internal/handlers/content"
	ordershandlers "github.com/settleflow/settleflow/internal/handlers/orders"
	serviceordershandlers "github.com/settleflow/settleflow/internal/handlers/serviceorders"
	"github.com/settleflow/settleflow/internal/notify"
	"github.com/settleflow/settleflow/internal/pg"
	"github.com/settleflow/settleflow/internal/repo"
	contentservice "github.com/settleflow/settleflow/internal/service/contentservice"
	ledgerservice "github.com/settleflow/settleflow/internal/service/ledgerservice"
	orderservice "github.com/settleflow/settleflow/internal/service/orderservice"
	paymentservice "github.com/settleflow/settleflow/internal/service/paymentservice"
	reconcileservice "github.com/settleflow/settleflow/internal/service/reconcileservice"
	serviceorderservice "github.com/settleflow/settleflow/internal/service/serviceorderservice"
	withdrawalservice "github.com/settleflow/settleflow/internal/service/withdrawalservice"
	"github.com/settleflow/settleflow/pkg/clients"
)

type Services struct {
	OrderService        ordershandlers.Service
	ServiceOrderService serviceordershandlers.Service
	ContentService      contenthandlers.Service
	LedgerService       balancehandlers.LedgerService
	WithdrawalService   balancehandlers.WithdrawalService

	// Concrete types: the payment pipeline is wired into the gateway
	// dispatcher and settlement poller as well as the handlers.
	PaymentService   *paymentservice.Service
	ReconcileService *reconcileservice.Service
	Dispatcher       *gateway.Dispatcher
}

func New(cfg *config.Config, repo *repo.Repositories, txManager pg.TXManager, client clients.HTTPClientI) *Services {
	notifier := notify.NewLogNotifier()

	ledgerService := ledgerservice.New(repo.LedgerRepo)
	orderService := orderservice.New(repo.OrderRepo, ledgerService, txManager, notifier, cfg.ProductSellerShareBP)
	serviceOrderService := serviceorderservice.New(repo.ServiceOrderRepo, ledgerService, txManager, notifier,
		cfg.ServiceSellerShareBP, cfg.ProviderMaxInFlight, cfg.DefaultRevisions)
	contentService := contentservice.New(repo.ContentRepo, ledgerService, txManager, notifier, cfg.ContentSellerShareBP)

	machines := map[domain.SubjectType]paymentservice.Machine{
		domain.SubjectOrder:           orderService,
		domain.SubjectServiceOrder:    serviceOrderService,
		domain.SubjectContentPurchase: contentService,
	}
	shares := map[domain.SubjectType]int64{
		domain.SubjectOrder:           cfg.ProductSellerShareBP,
		domain.SubjectServiceOrder:    cfg.ServiceSellerShareBP,
		domain.SubjectContentPurchase: cfg.ContentSellerShareBP,
	}

	paymentService := paymentservice.New(repo.PaymentRepo, ledgerService, machines, shares, txManager, notifier)
	reconcileService := reconcileservice.New(paymentService, cfg.WebhookSecret)
	withdrawalService := withdrawalservice.New(repo.WithdrawalRepo, ledgerService, txManager, notifier, cfg)

	dispatcher := gateway.NewDispatcher(
		gateway.NewCardAdapter(cfg, client),
		gateway.NewWalletAdapter(cfg, client),
		gateway.NewBankTransferAdapter(cfg, client),
		gateway.NewManualAdapter(),
	)

	return &Services{
		OrderService:        orderService,
		ServiceOrderService: serviceOrderService,
		ContentService:      contentService,
		LedgerService:       ledgerService,
		WithdrawalService:   withdrawalService,
		PaymentService:      paymentService,
		ReconcileService:    reconcileService,
		Dispatcher:          dispatcher,
	}
}
