package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// InvoicingService is the outbound contract against the external billing
// provider. Every call is remote and may fail independently; none of
// them participates in a local transaction.
type InvoicingService interface {
	// EnsureCustomer creates a billing customer record for an employer
	// and returns its reference. Callers memoize the ref on the employer
	// profile so the record is created at most once per employer.
	EnsureCustomer(ctx context.Context, employerId string, email string, name string) (string, error)
	// CreateInvoice creates a fixed-amount line item plus a collected
	// invoice document for the customer.
	CreateInvoice(ctx context.Context, customerRef string, amountCents int64, currency string, description string) (*InvoiceRef, error)
	// SendInvoice finalizes and sends the invoice document, returning
	// the finalized reference.
	SendInvoice(ctx context.Context, invoiceRef string) (string, error)
}

type InvoiceRef struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type stripeClient struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

// NewStripeClientFromEnv builds the provider client from STRIPE_SECRET_KEY
// and STRIPE_API_BASE_URL. Returns (nil, nil) when no secret key is
// configured: absence of a provider is not an error, the hire workflow
// degrades to draft invoices.
func NewStripeClientFromEnv() (InvoicingService, error) {
	secretKey := strings.TrimSpace(os.Getenv("STRIPE_SECRET_KEY"))
	if secretKey == "" {
		return nil, nil
	}
	baseURL := strings.TrimSpace(os.Getenv("STRIPE_API_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &stripeClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		http:      &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (c *stripeClient) postForm(ctx context.Context, path string, params url.Values, dest interface{}) error {
	endpoint := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(params.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("billing api error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if dest == nil {
		return nil
	}
	return json.Unmarshal(body, dest)
}

func (c *stripeClient) EnsureCustomer(ctx context.Context, employerId string, email string, name string) (string, error) {
	params := url.Values{}
	params.Set("email", email)
	params.Set("name", name)
	params.Set("metadata[employer_id]", employerId)

	var customer struct {
		ID string `json:"id"`
	}
	if err := c.postForm(ctx, "/v1/customers", params, &customer); err != nil {
		return "", err
	}
	if customer.ID == "" {
		return "", errors.New("billing api returned no customer id")
	}
	return customer.ID, nil
}

func (c *stripeClient) CreateInvoice(ctx context.Context, customerRef string, amountCents int64, currency string, description string) (*InvoiceRef, error) {
	itemParams := url.Values{}
	itemParams.Set("customer", customerRef)
	itemParams.Set("amount", strconv.FormatInt(amountCents, 10))
	itemParams.Set("currency", currency)
	itemParams.Set("description", description)
	if err := c.postForm(ctx, "/v1/invoiceitems", itemParams, nil); err != nil {
		return nil, err
	}

	invoiceParams := url.Values{}
	invoiceParams.Set("customer", customerRef)
	invoiceParams.Set("auto_advance", "true")
	invoiceParams.Set("collection_method", "send_invoice")
	invoiceParams.Set("days_until_due", "7")

	var invoice InvoiceRef
	if err := c.postForm(ctx, "/v1/invoices", invoiceParams, &invoice); err != nil {
		return nil, err
	}
	if invoice.ID == "" {
		return nil, errors.New("billing api returned no invoice id")
	}
	return &invoice, nil
}

func (c *stripeClient) SendInvoice(ctx context.Context, invoiceRef string) (string, error) {
	var finalized InvoiceRef
	if err := c.postForm(ctx, "/v1/invoices/"+url.PathEscape(invoiceRef)+"/send", url.Values{}, &finalized); err != nil {
		return "", err
	}
	if finalized.ID == "" {
		return "", errors.New("billing api returned no finalized invoice id")
	}
	return finalized.ID, nil
}
