package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/settleflow/settleflow/internal/domain"
	"github.com/settleflow/settleflow/internal/gateway"
	paymentrepo "github.com/settleflow/settleflow/internal/repo/payment-repo"
	paymentservice "github.com/settleflow/settleflow/internal/service/paymentservice"
	reconcileservice "github.com/settleflow/settleflow/internal/service/reconcileservice"
	"github.com/settleflow/settleflow/pkg/auth"
)

func NewMock(t *testing.T) (*PaymentHandler, *MockService, *MockCharger, *MockReconciler) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	charger := NewMockCharger(ctrl)
	reconciler := NewMockReconciler(ctrl)
	handler := New(service, charger, reconciler)
	defer ctrl.Finish()
	return handler, service, charger, reconciler
}

func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return r.WithContext(context.WithValue(r.Context(), auth.UserIDKey, 1))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func sign(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCreatePaymentHandler(t *testing.T) {
	handler, service, charger, reconciler := NewMock(t)

	pending := &domain.Payment{ID: 5, UserID: 1, SubjectType: domain.SubjectOrder, SubjectID: 10, Amount: 10000, Currency: "USD", Method: domain.MethodCard, Status: domain.PaymentPending}
	completed := &domain.Payment{ID: 5, UserID: 1, SubjectType: domain.SubjectOrder, SubjectID: 10, Amount: 10000, Currency: "USD", Method: domain.MethodCard, Status: domain.PaymentCompleted}

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Synchronous success",
			body: `{"subject_type":"order","subject_id":10,"method":"card","card_number":"4561261212345467"}`,
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), 1, domain.SubjectRef{Type: domain.SubjectOrder, ID: 10}, domain.MethodCard).
					Return(pending, nil)
				charger.EXPECT().
					Charge(gomock.Any(), pending, gateway.Instrument{CardNumber: "4561261212345467"}).
					Return(&gateway.ChargeResult{GatewayTxnID: "gw-123", Status: gateway.ChargeSucceeded}, nil)
				reconciler.EXPECT().
					ProcessChargeResult(gomock.Any(), 5, &gateway.ChargeResult{GatewayTxnID: "gw-123", Status: gateway.ChargeSucceeded}).
					Return(completed, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Subject not payable",
			body: `{"subject_type":"order","subject_id":10,"method":"card","card_number":"4561261212345467"}`,
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), 1, gomock.Any(), domain.MethodCard).
					Return(nil, paymentservice.ErrInvalidSubject)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Subject already paid",
			body: `{"subject_type":"order","subject_id":10,"method":"card","card_number":"4561261212345467"}`,
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), 1, gomock.Any(), domain.MethodCard).
					Return(nil, paymentrepo.ErrSubjectAlreadyPaid)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Bad card number",
			body: `{"subject_type":"order","subject_id":10,"method":"card","card_number":"1234"}`,
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), 1, gomock.Any(), domain.MethodCard).
					Return(pending, nil)
				charger.EXPECT().
					Charge(gomock.Any(), pending, gateway.Instrument{CardNumber: "1234"}).
					Return(nil, gateway.ErrInvalidCard)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "Unknown subject type rejected by validation",
			body:         `{"subject_type":"subscription","subject_id":10,"method":"card"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := authedRequest(http.MethodPost, "/api/payments", tt.body)
			w := httptest.NewRecorder()
			handler.CreatePayment(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestGetPaymentHandler(t *testing.T) {
	handler, service, _, _ := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Own payment",
			prepareMock: func() {
				service.EXPECT().
					GetByID(gomock.Any(), 5).
					Return(&domain.Payment{ID: 5, UserID: 1, Status: domain.PaymentCompleted}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Someone else's payment",
			prepareMock: func() {
				service.EXPECT().
					GetByID(gomock.Any(), 5).
					Return(&domain.Payment{ID: 5, UserID: 2}, nil)
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name: "Not found",
			prepareMock: func() {
				service.EXPECT().
					GetByID(gomock.Any(), 5).
					Return(nil, paymentservice.ErrPaymentNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := withURLParam(authedRequest(http.MethodGet, "/api/payments/5", ""), "id", "5")
			w := httptest.NewRecorder()
			handler.GetPayment(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestSubmitProofHandler(t *testing.T) {
	handler, service, _, _ := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Proof attached",
			body: `{"proof_ref":"receipt-77"}`,
			prepareMock: func() {
				service.EXPECT().
					GetByID(gomock.Any(), 5).
					Return(&domain.Payment{ID: 5, UserID: 1, Method: domain.MethodManualProof}, nil)
				service.EXPECT().
					SubmitProof(gomock.Any(), 5, "receipt-77").
					Return(&domain.Payment{ID: 5, UserID: 1, Status: domain.PaymentPendingVerification}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Wrong method",
			body: `{"proof_ref":"receipt-77"}`,
			prepareMock: func() {
				service.EXPECT().
					GetByID(gomock.Any(), 5).
					Return(&domain.Payment{ID: 5, UserID: 1, Method: domain.MethodCard}, nil)
				service.EXPECT().
					SubmitProof(gomock.Any(), 5, "receipt-77").
					Return(nil, paymentservice.ErrNotManualMethod)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "Missing proof reference",
			body:         `{}`,
			prepareMock:  func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := withURLParam(authedRequest(http.MethodPost, "/api/payments/5/proof", tt.body), "id", "5")
			w := httptest.NewRecorder()
			handler.SubmitProof(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestConfirmPaymentHandler(t *testing.T) {
	handler, service, charger, reconciler := NewMock(t)

	txn := "gw-456"
	processing := &domain.Payment{ID: 7, UserID: 1, Method: domain.MethodBankTransfer, Status: domain.PaymentProcessing, GatewayTxnID: &txn}

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Gateway reports success",
			prepareMock: func() {
				service.EXPECT().
					GetByID(gomock.Any(), 7).
					Return(processing, nil)
				charger.EXPECT().
					Status(gomock.Any(), domain.MethodBankTransfer, "gw-456").
					Return(&gateway.ChargeResult{GatewayTxnID: "gw-456", Status: gateway.ChargeSucceeded}, nil)
				reconciler.EXPECT().
					ProcessChargeResult(gomock.Any(), 7, &gateway.ChargeResult{GatewayTxnID: "gw-456", Status: gateway.ChargeSucceeded}).
					Return(&domain.Payment{ID: 7, UserID: 1, Status: domain.PaymentCompleted, GatewayTxnID: &txn}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Already settled",
			prepareMock: func() {
				service.EXPECT().
					GetByID(gomock.Any(), 7).
					Return(&domain.Payment{ID: 7, UserID: 1, Status: domain.PaymentCompleted, GatewayTxnID: &txn}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "No gateway transaction yet",
			prepareMock: func() {
				service.EXPECT().
					GetByID(gomock.Any(), 7).
					Return(&domain.Payment{ID: 7, UserID: 1, Status: domain.PaymentPending}, nil)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Not the payer",
			prepareMock: func() {
				service.EXPECT().
					GetByID(gomock.Any(), 7).
					Return(&domain.Payment{ID: 7, UserID: 2, Status: domain.PaymentProcessing, GatewayTxnID: &txn}, nil)
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name: "Payment not found",
			prepareMock: func() {
				service.EXPECT().
					GetByID(gomock.Any(), 7).
					Return(nil, paymentservice.ErrPaymentNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := withURLParam(authedRequest(http.MethodPost, "/api/payments/7/confirm", ""), "id", "7")
			w := httptest.NewRecorder()
			handler.ConfirmPayment(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestVerifyPaymentHandler(t *testing.T) {
	handler, service, _, _ := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Approved",
			body: `{"approve":true}`,
			prepareMock: func() {
				service.EXPECT().
					Settle(gomock.Any(), 5, paymentservice.OutcomeSuccess, "", "").
					Return(&domain.Payment{ID: 5, Status: domain.PaymentCompleted}, true, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Rejected with reason",
			body: `{"approve":false,"reason":"receipt does not match amount"}`,
			prepareMock: func() {
				service.EXPECT().
					Settle(gomock.Any(), 5, paymentservice.OutcomeFailure, "", "receipt does not match amount").
					Return(&domain.Payment{ID: 5, Status: domain.PaymentFailed}, true, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Already settled",
			body: `{"approve":true}`,
			prepareMock: func() {
				service.EXPECT().
					Settle(gomock.Any(), 5, paymentservice.OutcomeSuccess, "", "").
					Return(&domain.Payment{ID: 5, Status: domain.PaymentCompleted}, false, nil)
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := withURLParam(authedRequest(http.MethodPost, "/api/admin/payments/5/verify", tt.body), "id", "5")
			w := httptest.NewRecorder()
			handler.VerifyPayment(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestWebhookHandler(t *testing.T) {
	handler, _, _, reconciler := NewMock(t)

	const secret = "test-webhook-secret"
	body := `{"gateway_txn_id":"gw-123","event_type":"payment.succeeded"}`

	tests := []struct {
		name         string
		body         string
		signature    string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:      "Processed",
			body:      body,
			signature: sign(secret, body),
			prepareMock: func() {
				reconciler.EXPECT().
					VerifySignature([]byte(body), sign(secret, body)).
					Return(nil)
				reconciler.EXPECT().
					Reconcile(gomock.Any(), reconcileservice.Event{GatewayTxnID: "gw-123", EventType: "payment.succeeded"}).
					Return(&domain.Payment{ID: 5, Status: domain.PaymentCompleted}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:      "Bad signature",
			body:      body,
			signature: "deadbeef",
			prepareMock: func() {
				reconciler.EXPECT().
					VerifySignature([]byte(body), "deadbeef").
					Return(reconcileservice.ErrAuthenticity)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:      "Orphan transaction still acked",
			body:      body,
			signature: sign(secret, body),
			prepareMock: func() {
				reconciler.EXPECT().
					VerifySignature([]byte(body), sign(secret, body)).
					Return(nil)
				reconciler.EXPECT().
					Reconcile(gomock.Any(), gomock.Any()).
					Return(nil, reconcileservice.ErrUnknownTransaction)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:      "Unknown event type",
			body:      `{"gateway_txn_id":"gw-123","event_type":"payment.exploded"}`,
			signature: sign(secret, `{"gateway_txn_id":"gw-123","event_type":"payment.exploded"}`),
			prepareMock: func() {
				reconciler.EXPECT().
					VerifySignature(gomock.Any(), gomock.Any()).
					Return(nil)
				reconciler.EXPECT().
					Reconcile(gomock.Any(), gomock.Any()).
					Return(nil, reconcileservice.ErrUnknownEventType)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:      "Malformed body after valid signature",
			body:      `{"gateway_txn_id":`,
			signature: sign(secret, `{"gateway_txn_id":`),
			prepareMock: func() {
				reconciler.EXPECT().
					VerifySignature(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/webhooks/gateway", strings.NewReader(tt.body))
			r.Header.Set(SignatureHeader, tt.signature)
			w := httptest.NewRecorder()
			handler.Webhook(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
