package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuoteServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") != "test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/stock/NFLX/quote":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"symbol":"NFLX","companyName":"Netflix Inc.","latestPrice":123.45}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestLookup(t *testing.T) {
	srv := newQuoteServer(t)
	defer srv.Close()

	c := NewClient(srv.URL, "test-token")

	q, err := c.Lookup(context.Background(), "nflx")
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "NFLX", q.Symbol)
	assert.Equal(t, "Netflix Inc.", q.Name)
	assert.True(t, q.Price.Equal(decimal.RequireFromString("123.45")))
}

func TestLookupUnknownSymbol(t *testing.T) {
	srv := newQuoteServer(t)
	defer srv.Close()

	c := NewClient(srv.URL, "test-token")

	q, err := c.Lookup(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestLookupEmptySymbol(t *testing.T) {
	c := NewClient("http://example.invalid", "test-token")

	q, err := c.Lookup(context.Background(), "   ")
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestLookupTransportError(t *testing.T) {
	srv := newQuoteServer(t)
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, "test-token")

	_, err := c.Lookup(context.Background(), "NFLX")
	assert.Error(t, err)
}

func TestLookupBadToken(t *testing.T) {
	srv := newQuoteServer(t)
	defer srv.Close()

	c := NewClient(srv.URL, "wrong")

	_, err := c.Lookup(context.Background(), "NFLX")
	assert.Error(t, err)
}

func TestLookupIdempotent(t *testing.T) {
	srv := newQuoteServer(t)
	defer srv.Close()

	c := NewClient(srv.URL, "test-token")

	first, err := c.Lookup(context.Background(), "NFLX")
	require.NoError(t, err)
	second, err := c.Lookup(context.Background(), "NFLX")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
