package widepay

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/smallbiznis/widepay/internal/observability/metrics"
	"github.com/smallbiznis/widepay/internal/observability/tracing"
)

const (
	defaultBaseURL = "https://api.widepay.com/v1"

	sdkHeader     = "WP-API"
	sdkIdentifier = "SDK-Go"

	routeCreateCharge       = "recebimentos/cobrancas/adicionar"
	routeNotificationCharge = "recebimentos/cobrancas/notificacao"
)

// Config holds the per-wallet client settings. Credentials live only for the
// lifetime of the client; nothing here is persisted.
type Config struct {
	BaseURL     string
	WalletID    string
	WalletToken string

	// ConnectTimeout bounds connection establishment, separately from the
	// total request timeout.
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 30 * time.Second
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 60 * time.Second
	}
	return c
}

// Client issues signed requests to the WidePay API. Calls are at-most-once:
// there is no retry and no idempotency token in the protocol, so a transport
// failure leaves the remote state unknown.
type Client struct {
	http    *resty.Client
	metrics *metrics.GatewayMetrics
}

// NewClient builds a WidePay client. Certificate verification is always on.
func NewClient(cfg Config, m *metrics.GatewayMetrics) *Client {
	cfg = cfg.withDefaults()

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: cfg.ConnectTimeout,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
	httpClient := tracing.WrapHTTPClient(&http.Client{
		Transport: transport,
		Timeout:   cfg.RequestTimeout,
	})

	rc := resty.NewWithClient(httpClient).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetBasicAuth(cfg.WalletID, cfg.WalletToken).
		SetHeader(sdkHeader, sdkIdentifier)

	return &Client{http: rc, metrics: m}
}

// CreateCharge submits a new charge.
//
// The protocol carries no client-supplied idempotency token, so a resubmission
// after a timeout may create a duplicate charge on the processor side.
func (c *Client) CreateCharge(ctx context.Context, params ChargeParams) *Response {
	return c.send(ctx, routeCreateCharge, params.Values(), http.MethodPost)
}

// NotificationCharge fetches the authoritative charge state for a webhook
// notification id. Webhook payloads are never trusted directly.
func (c *Client) NotificationCharge(ctx context.Context, notificationID string) *Response {
	body := url.Values{}
	body.Set("id", notificationID)
	return c.send(ctx, routeNotificationCharge, body, http.MethodPost)
}

// send issues a single request. GET and DELETE bodies travel as the query
// string, everything else as a form-encoded payload. A non-2xx status is not
// an error at this layer; only a missing response is.
func (c *Client) send(ctx context.Context, route string, body url.Values, method string) *Response {
	method = strings.ToUpper(strings.TrimSpace(method))

	req := c.http.R().SetContext(ctx)
	switch method {
	case http.MethodGet, http.MethodDelete:
		if len(body) > 0 {
			req.SetQueryParamsFromValues(body)
		}
	default:
		req.SetFormDataFromValues(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, route)
	if err != nil {
		c.metrics.RecordCall(ctx, route, 0, time.Since(start))
		return newTransportErrorResponse()
	}
	c.metrics.RecordCall(ctx, route, resp.StatusCode(), time.Since(start))

	return Parse(frame(resp))
}

// frame reassembles the wire block the parser expects: the status line and
// header lines first, the body as the single trailing line.
func frame(resp *resty.Response) []byte {
	var b strings.Builder

	proto := "HTTP/1.1"
	if resp.RawResponse != nil && resp.RawResponse.Proto != "" {
		proto = resp.RawResponse.Proto
	}
	b.WriteString(proto)
	b.WriteString(" ")
	b.WriteString(resp.Status())
	b.WriteString("\n")

	for key, values := range resp.Header() {
		for _, value := range values {
			b.WriteString(key)
			b.WriteString(": ")
			b.WriteString(value)
			b.WriteString("\n")
		}
	}

	b.WriteString(strings.TrimRight(string(resp.Body()), "\r\n"))
	return []byte(b.String())
}
