package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/settleflow/settleflow/docs"
	balancehandlers "github.com/settleflow/settleflow/internal/handlers/balance"
	contenthandlers "github.com/settleflow/settleflow/internal/handlers/content"
	ordershandlers "github.com/settleflow/settleflow/internal/handlers/orders"
	paymentshandlers "github.com/settleflow/settleflow/internal/handlers/payments"
	serviceordershandlers "github.com/settleflow/settleflow/internal/handlers/serviceorders"
	"github.com/settleflow/settleflow/internal/service"
	"github.com/settleflow/settleflow/pkg/auth"
)

type OrderHandler interface {
	AddOrder(w http.ResponseWriter, r *http.Request)
	GetOrders(w http.ResponseWriter, r *http.Request)
	ReceiveOrder(w http.ResponseWriter, r *http.Request)
	CancelOrder(w http.ResponseWriter, r *http.Request)
}

type ServiceOrderHandler interface {
	AddServiceOrder(w http.ResponseWriter, r *http.Request)
	GetServiceOrders(w http.ResponseWriter, r *http.Request)
	ApplyAction(w http.ResponseWriter, r *http.Request)
	RequestRevision(w http.ResponseWriter, r *http.Request)
}

type ContentHandler interface {
	Purchase(w http.ResponseWriter, r *http.Request)
	GetLicenses(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
}

type PaymentHandler interface {
	CreatePayment(w http.ResponseWriter, r *http.Request)
	GetPayment(w http.ResponseWriter, r *http.Request)
	SubmitProof(w http.ResponseWriter, r *http.Request)
	ConfirmPayment(w http.ResponseWriter, r *http.Request)
	VerifyPayment(w http.ResponseWriter, r *http.Request)
	RefundPayment(w http.ResponseWriter, r *http.Request)
	Webhook(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetLedger(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
	CancelWithdrawal(w http.ResponseWriter, r *http.Request)
	ProcessWithdrawal(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	OrderHandler        OrderHandler
	ServiceOrderHandler ServiceOrderHandler
	ContentHandler      ContentHandler
	PaymentHandler      PaymentHandler
	BalanceHandler      BalanceHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		OrderHandler:        ordershandlers.New(s.OrderService),
		ServiceOrderHandler: serviceordershandlers.New(s.ServiceOrderService),
		ContentHandler:      contenthandlers.New(s.ContentService),
		PaymentHandler:      paymentshandlers.New(s.PaymentService, s.Dispatcher, s.ReconcileService),
		BalanceHandler:      balancehandlers.New(s.LedgerService, s.WithdrawalService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	// The gateway authenticates with a body signature, not a bearer token.
	r.Post("/webhooks/gateway", h.PaymentHandler.Webhook)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware)
			r.Route("/orders", func(r chi.Router) {
				r.Post("/", h.OrderHandler.AddOrder)
				r.Get("/", h.OrderHandler.GetOrders)
				r.Post("/{id}/receive", h.OrderHandler.ReceiveOrder)
				r.Post("/{id}/cancel", h.OrderHandler.CancelOrder)
			})
			r.Route("/service-orders", func(r chi.Router) {
				r.Post("/", h.ServiceOrderHandler.AddServiceOrder)
				r.Get("/", h.ServiceOrderHandler.GetServiceOrders)
				r.Post("/{id}/actions", h.ServiceOrderHandler.ApplyAction)
				r.Post("/{id}/revisions", h.ServiceOrderHandler.RequestRevision)
			})
			r.Route("/content/purchases", func(r chi.Router) {
				r.Post("/", h.ContentHandler.Purchase)
				r.Get("/", h.ContentHandler.GetLicenses)
				r.Post("/{id}/download", h.ContentHandler.Download)
			})
			r.Route("/payments", func(r chi.Router) {
				r.Post("/", h.PaymentHandler.CreatePayment)
				r.Get("/{id}", h.PaymentHandler.GetPayment)
				r.Post("/{id}/proof", h.PaymentHandler.SubmitProof)
				r.Post("/{id}/confirm", h.PaymentHandler.ConfirmPayment)
			})
			r.Get("/ledger", h.BalanceHandler.GetLedger)
			r.Route("/withdrawals", func(r chi.Router) {
				r.Post("/", h.BalanceHandler.Withdraw)
				r.Get("/", h.BalanceHandler.GetWithdrawals)
				r.Post("/{id}/cancel", h.BalanceHandler.CancelWithdrawal)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.AdminMiddleware)
				r.Post("/payments/{id}/verify", h.PaymentHandler.VerifyPayment)
				r.Post("/payments/{id}/refund", h.PaymentHandler.RefundPayment)
				r.Post("/withdrawals/{id}/process", h.BalanceHandler.ProcessWithdrawal)
			})
		})
	})

	return r
}
