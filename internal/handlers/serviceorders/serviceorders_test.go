package serviceorders

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/settleflow/settleflow/internal/domain"
	serviceorderservice "github.com/settleflow/settleflow/internal/service/serviceorderservice"
	"github.com/settleflow/settleflow/pkg/auth"
)

func NewMock(t *testing.T) (*ServiceOrderHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
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

func TestAddServiceOrderHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful creation",
			body: `{"provider_id":2,"service_id":200,"amount":20000,"currency":"USD"}`,
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), 1, serviceorderservice.CreateServiceOrderInput{
						ProviderID: 2,
						ServiceID:  200,
						Amount:     20000,
						Currency:   "USD",
					}).
					Return(&domain.ServiceOrder{ID: 20, Status: domain.ServiceOrderPending, RevisionsLeft: 2}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "Provider at capacity",
			body: `{"provider_id":2,"service_id":200,"amount":20000,"currency":"USD"}`,
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), 1, gomock.Any()).
					Return(nil, serviceorderservice.ErrProviderBusy)
			},
			expectedCode: http.StatusTooManyRequests,
		},
		{
			name:         "Validation failure",
			body:         `{"provider_id":2,"service_id":200,"amount":20000,"currency":"US"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := authedRequest(http.MethodPost, "/api/service-orders", tt.body)
			w := httptest.NewRecorder()
			handler.AddServiceOrder(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestApplyActionHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Provider accepts",
			body: `{"action":"accept"}`,
			prepareMock: func() {
				service.EXPECT().
					Apply(gomock.Any(), 1, 20, serviceorderservice.ActionAccept).
					Return(&domain.ServiceOrder{ID: 20, Status: domain.ServiceOrderAccepted}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Unknown action rejected by validation",
			body:         `{"action":"explode"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name: "Wrong party",
			body: `{"action":"deliver"}`,
			prepareMock: func() {
				service.EXPECT().
					Apply(gomock.Any(), 1, 20, serviceorderservice.ActionDeliver).
					Return(nil, serviceorderservice.ErrNotOrderParty)
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name: "Accept before payment",
			body: `{"action":"accept"}`,
			prepareMock: func() {
				service.EXPECT().
					Apply(gomock.Any(), 1, 20, serviceorderservice.ActionAccept).
					Return(nil, serviceorderservice.ErrNotPaid)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Not found",
			body: `{"action":"complete"}`,
			prepareMock: func() {
				service.EXPECT().
					Apply(gomock.Any(), 1, 20, serviceorderservice.ActionComplete).
					Return(nil, serviceorderservice.ErrServiceOrderNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Internal server error",
			body: `{"action":"start"}`,
			prepareMock: func() {
				service.EXPECT().
					Apply(gomock.Any(), 1, 20, serviceorderservice.ActionStart).
					Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := withURLParam(authedRequest(http.MethodPost, "/api/service-orders/20/actions", tt.body), "id", "20")
			w := httptest.NewRecorder()
			handler.ApplyAction(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestRequestRevisionHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Revision granted",
			prepareMock: func() {
				service.EXPECT().
					RequestRevision(gomock.Any(), 1, 20).
					Return(&domain.ServiceOrder{ID: 20, Status: domain.ServiceOrderRevisionRequested, RevisionsLeft: 1}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "No revisions remaining",
			prepareMock: func() {
				service.EXPECT().
					RequestRevision(gomock.Any(), 1, 20).
					Return(nil, serviceorderservice.ErrNoRevisionsRemaining)
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := withURLParam(authedRequest(http.MethodPost, "/api/service-orders/20/revisions", ""), "id", "20")
			w := httptest.NewRecorder()
			handler.RequestRevision(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
