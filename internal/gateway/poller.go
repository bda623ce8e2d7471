package gateway

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/settleflow/settleflow/internal/config"
	"github.com/settleflow/settleflow/internal/domain"
)

// PaymentSource supplies processing payments the gateway has not yet
// confirmed.
type PaymentSource interface {
	FindStaleProcessing(ctx context.Context, limit uint32) ([]domain.Payment, error)
}

// Settler feeds a gateway status answer into the reconciliation path.
type Settler interface {
	ProcessChargeResult(ctx context.Context, paymentID int, res *ChargeResult) (*domain.Payment, error)
}

// Poller periodically asks the gateway about in-flight payments so an
// undelivered webhook cannot strand a payment in processing.
type Poller struct {
	source     PaymentSource
	settler    Settler
	dispatcher *Dispatcher
	limit      uint32
	interval   time.Duration
	workerPool WorkerPoolI

	inFlight sync.Map
}

func NewPoller(cfg *config.Config, source PaymentSource, settler Settler, dispatcher *Dispatcher) *Poller {
	return &Poller{
		source:     source,
		settler:    settler,
		dispatcher: dispatcher,
		limit:      1000,
		interval:   cfg.SettlePollInterval,
		workerPool: NewWorkerPool(cfg.SettleWorkers),
	}
}

func (p *Poller) Start(ctx context.Context) {
	zap.L().Info("settlement poller started")
	go p.run(ctx)
}

func (p *Poller) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping settlement poller")
			return
		case <-ticker.C:
			p.processPayments(ctx)
		}
	}
}

func (p *Poller) processPayments(ctx context.Context) {
	payments, err := p.source.FindStaleProcessing(ctx, p.limit)
	if err != nil {
		zap.L().Error("failed to fetch payments for polling", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, payment := range payments {
		payment := payment

		// Manual proofs resolve through admin verification, not polling.
		if payment.Method == domain.MethodManualProof {
			continue
		}
		if _, loaded := p.inFlight.LoadOrStore(payment.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := p.workerPool.AddTask(ctx, func() error {
				defer p.inFlight.Delete(payment.ID)
				return p.handlePayment(ctx, payment)
			})
			if err != nil {
				p.inFlight.Delete(payment.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("error polling payments", zap.Error(err))
	}
}

func (p *Poller) handlePayment(ctx context.Context, payment domain.Payment) error {
	if payment.GatewayTxnID == nil {
		return nil
	}

	res, err := p.dispatcher.Status(ctx, payment.Method, *payment.GatewayTxnID)
	if err != nil {
		zap.L().Warn("gateway status check failed",
			zap.Int("paymentID", payment.ID),
			zap.Error(err),
		)
		return err
	}

	// Still pending at the gateway; try again next tick.
	if res.Status == ChargePending || res.Status == ChargePendingVerification {
		return nil
	}

	if _, err := p.settler.ProcessChargeResult(ctx, payment.ID, res); err != nil {
		return err
	}
	return nil
}
