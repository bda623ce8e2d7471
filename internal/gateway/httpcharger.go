package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/pkg/clients"
)

const retryInterval = time.Second * 1

// httpCharger is the shared transport for the HTTP-backed gateway variants.
// Retries are idempotent on the gateway side because every attempt carries
// the same Idempotency-Key derived from the payment id; once the retry
// budget is spent the charge surfaces as a failed result, never as an
// indefinitely processing payment.
type httpCharger struct {
	baseURL    string
	client     clients.HTTPClientI
	maxRetries int
}

type chargeRequest struct {
	PaymentID  int        `json:"payment_id"`
	Amount     int64      `json:"amount"`
	Currency   string     `json:"currency"`
	Method     string     `json:"method"`
	Instrument Instrument `json:"instrument"`
}

func (c *httpCharger) charge(ctx context.Context, path string, payment *domain.Payment, instrument Instrument) (*ChargeResult, error) {
	body, err := json.Marshal(chargeRequest{
		PaymentID:  payment.ID,
		Amount:     payment.Amount,
		Currency:   payment.Currency,
		Method:     string(payment.Method),
		Instrument: instrument,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode charge request: %w", err)
	}

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result, retryAfter, err := c.doCharge(ctx, path, payment.ID, body)
		if err == nil {
			return result, nil
		}
		if attempt < c.maxRetries {
			wait := retryInterval * time.Duration(attempt)
			if retryAfter > 0 {
				wait = retryAfter
			}
			zap.L().Warn("gateway charge attempt failed, retrying",
				zap.Int("paymentID", payment.ID),
				zap.Int("attempt", attempt),
				zap.Duration("retryAfter", wait),
				zap.Error(err),
			)
			time.Sleep(wait)
			continue
		}
		zap.L().Error("gateway retry budget exhausted",
			zap.Int("paymentID", payment.ID),
			zap.Int("attempts", c.maxRetries),
			zap.Error(err),
		)
	}

	// The retry budget is spent: report a terminal failure with a local
	// reference so the settlement path still has an idempotency anchor.
	return &ChargeResult{
		GatewayTxnID: fmt.Sprintf("local-%s-%d", payment.Method, payment.ID),
		Status:       ChargeFailed,
		Reason:       "gateway unavailable",
	}, nil
}

func (c *httpCharger) doCharge(ctx context.Context, path string, paymentID int, body []byte) (*ChargeResult, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "payment-"+strconv.Itoa(paymentID))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var result ChargeResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, 0, fmt.Errorf("failed to decode charge response: %w", err)
		}
		return &result, 0, nil
	case http.StatusTooManyRequests:
		return nil, parseRetryAfter(resp.Header), fmt.Errorf("%w: %d", ErrGatewayStatus, resp.StatusCode)
	default:
		return nil, 0, fmt.Errorf("%w: %d", ErrGatewayStatus, resp.StatusCode)
	}
}

func (c *httpCharger) status(ctx context.Context, gatewayTxnID string) (*ChargeResult, error) {
	statusCode, respBody, _, err := c.client.Get(c.baseURL+"/api/charges/"+gatewayTxnID, nil)
	if err != nil {
		return nil, err
	}
	if statusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrGatewayStatus, statusCode)
	}
	var result ChargeResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode status response: %w", err)
	}
	return &result, nil
}

func parseRetryAfter(headers http.Header) time.Duration {
	if v := headers.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return 0
}
