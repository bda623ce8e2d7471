package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/settleflow/settleflow/internal/config"
	"github.com/settleflow/settleflow/internal/domain"
)

// luhn-valid test number
const testCard = "4561261212345467"

type fakeHTTPClient struct {
	responses []*http.Response
	errs      []error
	calls     int
	getStatus int
	getBody   []byte
	getErr    error
	lastReq   *http.Request
}

func (f *fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	f.lastReq = req
	i := f.calls
	f.calls++
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	if f.errs != nil && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	return f.responses[i], nil
}

func (f *fakeHTTPClient) Get(url string, headers http.Header) (int, []byte, http.Header, error) {
	return f.getStatus, f.getBody, nil, f.getErr
}

func jsonResponse(status int, result *ChargeResult) *http.Response {
	body, _ := json.Marshal(result)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{},
		Body:       io.NopCloser(bytes.NewReader(body)),
	}
}

func emptyResponse(status int, headers http.Header) *http.Response {
	if headers == nil {
		headers = http.Header{}
	}
	return &http.Response{
		StatusCode: status,
		Header:     headers,
		Body:       io.NopCloser(bytes.NewReader(nil)),
	}
}

func testConfig() *config.Config {
	return &config.Config{
		GatewayAddress:    "http://gateway.local",
		GatewayMaxRetries: 3,
	}
}

func testPayment(method domain.PaymentMethod) *domain.Payment {
	return &domain.Payment{
		ID:       1,
		UserID:   1,
		Amount:   10000,
		Currency: "USD",
		Method:   method,
		Status:   domain.PaymentPending,
	}
}

func TestCardAdapterCharge(t *testing.T) {
	client := &fakeHTTPClient{
		responses: []*http.Response{
			jsonResponse(http.StatusOK, &ChargeResult{GatewayTxnID: "gw-123", Status: ChargeSucceeded}),
		},
	}
	adapter := NewCardAdapter(testConfig(), client)

	res, err := adapter.Charge(context.Background(), testPayment(domain.MethodCard), Instrument{CardNumber: testCard})
	assert.NoError(t, err)
	assert.Equal(t, ChargeSucceeded, res.Status)
	assert.Equal(t, "gw-123", res.GatewayTxnID)
	assert.Equal(t, "payment-1", client.lastReq.Header.Get("Idempotency-Key"))
}

func TestCardAdapterRejectsBadCard(t *testing.T) {
	adapter := NewCardAdapter(testConfig(), &fakeHTTPClient{})

	_, err := adapter.Charge(context.Background(), testPayment(domain.MethodCard), Instrument{CardNumber: "1234"})
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestWalletAdapterRequiresWallet(t *testing.T) {
	adapter := NewWalletAdapter(testConfig(), &fakeHTTPClient{})

	_, err := adapter.Charge(context.Background(), testPayment(domain.MethodEWallet), Instrument{})
	assert.ErrorIs(t, err, ErrMissingWallet)
}

// A spent retry budget must produce a terminal failed result with a local
// reference, never an error that leaves the payment dangling.
func TestChargeRetryBudgetExhausted(t *testing.T) {
	client := &fakeHTTPClient{
		responses: []*http.Response{
			emptyResponse(http.StatusBadGateway, nil),
			emptyResponse(http.StatusBadGateway, nil),
			emptyResponse(http.StatusBadGateway, nil),
		},
	}
	charger := httpCharger{baseURL: "http://gateway.local", client: client, maxRetries: 3}

	res, err := charger.charge(context.Background(), "/api/charges/card", testPayment(domain.MethodCard), Instrument{CardNumber: testCard})
	assert.NoError(t, err)
	assert.Equal(t, ChargeFailed, res.Status)
	assert.Equal(t, "local-card-1", res.GatewayTxnID)
	assert.Equal(t, "gateway unavailable", res.Reason)
	assert.Equal(t, 3, client.calls)
}

func TestChargeRetriesAfterThrottle(t *testing.T) {
	throttled := http.Header{}
	throttled.Set("Retry-After", "0")
	client := &fakeHTTPClient{
		responses: []*http.Response{
			emptyResponse(http.StatusTooManyRequests, throttled),
			jsonResponse(http.StatusOK, &ChargeResult{GatewayTxnID: "gw-123", Status: ChargeSucceeded}),
		},
	}
	charger := httpCharger{baseURL: "http://gateway.local", client: client, maxRetries: 3}

	res, err := charger.charge(context.Background(), "/api/charges/card", testPayment(domain.MethodCard), Instrument{CardNumber: testCard})
	assert.NoError(t, err)
	assert.Equal(t, ChargeSucceeded, res.Status)
	assert.Equal(t, 2, client.calls)
}

func TestStatus(t *testing.T) {
	body, _ := json.Marshal(&ChargeResult{GatewayTxnID: "gw-123", Status: ChargeSucceeded})
	client := &fakeHTTPClient{getStatus: http.StatusOK, getBody: body}
	charger := httpCharger{baseURL: "http://gateway.local", client: client}

	res, err := charger.status(context.Background(), "gw-123")
	assert.NoError(t, err)
	assert.Equal(t, ChargeSucceeded, res.Status)
}

func TestStatusGatewayError(t *testing.T) {
	client := &fakeHTTPClient{getStatus: http.StatusInternalServerError}
	charger := httpCharger{baseURL: "http://gateway.local", client: client}

	_, err := charger.status(context.Background(), "gw-123")
	assert.ErrorIs(t, err, ErrGatewayStatus)
}

func TestManualAdapter(t *testing.T) {
	adapter := NewManualAdapter()

	res, err := adapter.Charge(context.Background(), testPayment(domain.MethodManualProof), Instrument{ProofRef: "receipt-77"})
	assert.NoError(t, err)
	assert.Equal(t, ChargePendingVerification, res.Status)
	assert.Equal(t, "manual-receipt-77", res.GatewayTxnID)

	status, err := adapter.Status(context.Background(), res.GatewayTxnID)
	assert.NoError(t, err)
	assert.Equal(t, ChargePendingVerification, status.Status)
}

func TestDispatcher(t *testing.T) {
	dispatcher := NewDispatcher(NewManualAdapter())

	res, err := dispatcher.Charge(context.Background(), testPayment(domain.MethodManualProof), Instrument{ProofRef: "r"})
	assert.NoError(t, err)
	assert.Equal(t, ChargePendingVerification, res.Status)

	_, err = dispatcher.Charge(context.Background(), testPayment(domain.MethodCard), Instrument{})
	assert.ErrorIs(t, err, ErrUnsupportedMethod)

	_, err = dispatcher.Status(context.Background(), domain.MethodEWallet, "gw-123")
	assert.ErrorIs(t, err, ErrUnsupportedMethod)
}

func TestWorkerPool(t *testing.T) {
	pool := NewWorkerPool(2)

	var mu sync.Mutex
	ran := 0
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		err := pool.AddTask(context.Background(), func() error {
			defer wg.Done()
			mu.Lock()
			ran++
			mu.Unlock()
			return nil
		})
		assert.NoError(t, err)
	}
	wg.Wait()

	mu.Lock()
	assert.Equal(t, 5, ran)
	mu.Unlock()

	// Close is idempotent; a second call must not panic.
	pool.Close()
	pool.Close()
}

func TestWorkerPoolRespectsContext(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	block := make(chan struct{})
	assert.NoError(t, pool.AddTask(context.Background(), func() error {
		<-block
		return nil
	}))
	// Fill the queue so the next AddTask has to block.
	assert.NoError(t, pool.AddTask(context.Background(), func() error { return nil }))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := pool.AddTask(ctx, func() error { return nil })
	assert.ErrorIs(t, err, context.Canceled)

	close(block)
}
