package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"payboard/output"
	"payboard/pkg/config"
)

// GenericFetchError is shown when the backend rejects a request without a
// message of its own. Matches the wording the web portal uses.
const GenericFetchError = "데이터를 불러오는 중 오류가 발생했습니다."

// PortalClient talks to the payment-operations portal backend. Every
// response is wrapped in the {status, message, data} envelope; status other
// than 200 inside a structurally valid envelope is an application failure.
type PortalClient struct {
	BaseURL string
	HTTP    *http.Client
}

// envelope is the uniform response wrapper of the portal backend.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func NewPortalClient(timeout time.Duration) *PortalClient {
	base := config.Get("PORTAL_BASE_URL", "http://localhost:8080/api/v1")
	return &PortalClient{BaseURL: base, HTTP: &http.Client{Timeout: timeout}}
}

func NewPortalClientWithConfig(baseURL string, timeout time.Duration) *PortalClient {
	return &PortalClient{BaseURL: baseURL, HTTP: &http.Client{Timeout: timeout}}
}

func (c *PortalClient) get(ctx context.Context, path string, out any) error {
	reqURL, err := url.JoinPath(c.BaseURL, path)
	if err != nil {
		return fmt.Errorf("invalid portal URL: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		output.LogEvent("portal_http_error", map[string]any{"path": path, "error": err.Error()})
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			output.LogEvent("portal_body_close_error", map[string]any{"path": path, "error": err.Error()})
		}
	}()

	if resp.StatusCode >= 300 {
		var bodyBytes []byte
		if resp.Body != nil {
			bb, _ := io.ReadAll(resp.Body)
			bodyBytes = bb
		}
		output.LogEvent("portal_request_failed", map[string]any{
			"path":   path,
			"status": resp.Status,
			"body":   string(bodyBytes),
		})
		return errors.New("portal request failed: " + resp.Status)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		output.LogEvent("portal_decode_error", map[string]any{"path": path, "error": err.Error()})
		return err
	}
	if env.Status != http.StatusOK {
		output.LogEvent("portal_envelope_error", map[string]any{
			"path":    path,
			"status":  env.Status,
			"message": env.Message,
		})
		msg := env.Message
		if msg == "" {
			msg = GenericFetchError
		}
		return errors.New(msg)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			output.LogEvent("portal_data_decode_error", map[string]any{"path": path, "error": err.Error()})
			return err
		}
	}
	return nil
}

// Payments fetches the full transaction list snapshot.
func (c *PortalClient) Payments(ctx context.Context) ([]Payment, error) {
	var payments []Payment
	if err := c.get(ctx, "/payments/list", &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// Merchants fetches the full merchant list snapshot.
func (c *PortalClient) Merchants(ctx context.Context) ([]Merchant, error) {
	var merchants []Merchant
	if err := c.get(ctx, "/merchants/list", &merchants); err != nil {
		return nil, err
	}
	return merchants, nil
}

// MerchantDetail fetches registration metadata for one merchant.
func (c *PortalClient) MerchantDetail(ctx context.Context, mchtCode string) (*MerchantDetail, error) {
	var detail MerchantDetail
	if err := c.get(ctx, "/merchants/details/"+url.PathEscape(mchtCode), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// PaymentStatusCodes fetches the payment status code table.
func (c *PortalClient) PaymentStatusCodes(ctx context.Context) ([]CommonCode, error) {
	var codes []CommonCode
	if err := c.get(ctx, "/common/payment-status/all", &codes); err != nil {
		return nil, err
	}
	return codes, nil
}

// PaymentTypeCodes fetches the payment method code table. The backend route
// spells it "paymemt-type"; the typo is load-bearing and must stay until the
// backend fixes it on their side.
func (c *PortalClient) PaymentTypeCodes(ctx context.Context) ([]PaymentType, error) {
	var types []PaymentType
	if err := c.get(ctx, "/common/paymemt-type/all", &types); err != nil {
		return nil, err
	}
	return types, nil
}

// MerchantStatusCodes fetches the merchant status code table.
func (c *PortalClient) MerchantStatusCodes(ctx context.Context) ([]CommonCode, error) {
	var codes []CommonCode
	if err := c.get(ctx, "/common/mcht-status/all", &codes); err != nil {
		return nil, err
	}
	return codes, nil
}
