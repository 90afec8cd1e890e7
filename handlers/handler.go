package handlers

import (
	"context"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/AksSC/finance/middleware"
	"github.com/AksSC/finance/quote"
	"github.com/AksSC/finance/session"
	"github.com/AksSC/finance/store"
)

// Quoter is the slice of the quote client the handlers need.
type Quoter interface {
	Lookup(ctx context.Context, symbol string) (*quote.Quote, error)
}

// Handler carries every dependency the route handlers use. All routes
// are methods on it; nothing is package-level state.
type Handler struct {
	store    store.Store
	quotes   Quoter
	sessions *session.Manager
}

func New(st store.Store, quotes Quoter, sessions *session.Manager) *Handler {
	return &Handler{store: st, quotes: quotes, sessions: sessions}
}

// apology renders the uniform error page with the given status code.
// Every failure path in the application ends here.
func (h *Handler) apology(c *gin.Context, code int, message string) {
	c.HTML(code, "apology.tmpl", gin.H{
		"Title":   "Apology",
		"Code":    code,
		"Message": message,
	})
	c.Abort()
}

func currentUserID(c *gin.Context) uint {
	return c.MustGet(middleware.UserIDKey).(uint)
}

const flashCookie = "flash"

// setFlash stores a one-shot message shown on the next rendered page.
func setFlash(c *gin.Context, message string) {
	c.SetCookie(flashCookie, url.QueryEscape(message), 60, "/", "", false, false)
}

// takeFlash reads and clears the pending flash message, if any.
func takeFlash(c *gin.Context) string {
	raw, err := c.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, false)
	message, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return message
}

// usd formats a money value for the templates.
func usd(v decimal.Decimal) string {
	return "$" + v.StringFixed(2)
}
