// Package quote fetches live prices from the external market-data API.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a price snapshot for one ticker at request time.
type Quote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"companyName"`
	Price  decimal.Decimal `json:"latestPrice"`
}

// Client calls the quote API. One HTTP request per Lookup, no caching and
// no retries.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// NewClient builds a client for the API rooted at baseURL.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup returns the current quote for symbol, or (nil, nil) when the
// symbol is unknown. An error means the API itself could not be reached
// or returned garbage.
func (c *Client) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, nil
	}

	u := fmt.Sprintf("%s/stock/%s/quote?token=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(c.token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("quote: build request for %s: %w", symbol, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote: fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote: fetch %s: unexpected status %s", symbol, resp.Status)
	}

	var q Quote
	if err := json.NewDecoder(resp.Body).Decode(&q); err != nil {
		return nil, fmt.Errorf("quote: decode %s: %w", symbol, err)
	}
	if q.Symbol == "" {
		return nil, nil
	}
	q.Symbol = strings.ToUpper(q.Symbol)
	return &q, nil
}
