package stockanalysis

import (
	"net/http"
	"net/url"
)

// baseURL is the default base URL for stockanalysis.com.
const baseURL = "https://stockanalysis.com"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=stockanalysis_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client scrapes dividend history pages from stockanalysis.com.
type Client struct {
	// baseURL is the base URL for the site.
	baseURL string
	// httpClient is the HTTP httpClient.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// exchange is the exchange path segment quoted symbols live under.
	exchange string
}

// ClientOption is a configuration option for the client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the site.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithExchange sets the exchange path segment (default "bvmf").
func WithExchange(exchange string) ClientOption {
	return func(c *Client) {
		c.exchange = exchange
	}
}

// NewClient creates a new stockanalysis.com client.
func NewClient(options ...ClientOption) (*Client, error) {
	var client = &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		exchange:   "bvmf",
	}
	client.header.Set("User-Agent", "Mozilla/5.0")
	for _, option := range options {
		option(client)
	}
	return client, nil
}

// dividendURL builds the dividend page URL for a symbol.
func (c *Client) dividendURL(symbol string) string {
	return c.baseURL + "/quote/" + c.exchange + "/" + url.PathEscape(symbol) + "/dividend/"
}
