package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*PortalClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewPortalClientWithConfig(srv.URL, 5*time.Second), srv
}

func writeEnvelope(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func TestPayments(t *testing.T) {
	var gotPath, gotRequestID string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRequestID = r.Header.Get("X-Request-ID")
		writeEnvelope(w, 200, "", []Payment{
			{PaymentCode: "P1", MchtCode: "M1", Amount: "1000", Currency: "KRW", PayType: PayTypeOnline, Status: StatusSuccess, PaymentAt: "2024-01-01T10:00:00Z"},
		})
	})

	payments, err := client.Payments(context.Background())

	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "P1", payments[0].PaymentCode)
	assert.Equal(t, StatusSuccess, payments[0].Status)
	assert.Equal(t, "/payments/list", gotPath)
	assert.NotEmpty(t, gotRequestID)
}

func TestPaymentTypeCodesRouteKeepsBackendTypo(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeEnvelope(w, 200, "", []PaymentType{{Type: "ONLINE", Description: "온라인"}})
	})

	types, err := client.PaymentTypeCodes(context.Background())

	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "/common/paymemt-type/all", gotPath)
}

func TestMerchantDetailPath(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeEnvelope(w, 200, "", MerchantDetail{
			Merchant: Merchant{MchtCode: "M001", MchtName: "ABC Store", Status: "01", BizType: "Retail"},
			BizNo:    "123-45-67890",
		})
	})

	detail, err := client.MerchantDetail(context.Background(), "M001")

	require.NoError(t, err)
	assert.Equal(t, "/merchants/details/M001", gotPath)
	assert.Equal(t, "ABC Store", detail.MchtName)
	assert.Equal(t, "123-45-67890", detail.BizNo)
}

func TestEnvelopeFailureSurfacesMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 500, "backend exploded", nil)
	})

	_, err := client.Payments(context.Background())

	require.Error(t, err)
	assert.EqualError(t, err, "backend exploded")
}

func TestEnvelopeFailureFallsBackToGenericMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, 500, "", nil)
	})

	_, err := client.Merchants(context.Background())

	require.Error(t, err)
	assert.EqualError(t, err, GenericFetchError)
}

func TestTransportFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.PaymentStatusCodes(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "portal request failed")
}

func TestRequestHonorsContextCancellation(t *testing.T) {
	blocked := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	})
	defer close(blocked)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.MerchantStatusCodes(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
