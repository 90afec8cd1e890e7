package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/AksSC/finance/store"
)

type indexRow struct {
	Symbol string
	Name   string
	Shares int
	Price  decimal.Decimal
	Total  decimal.Decimal
}

// Index shows the dashboard: each held symbol priced live, plus cash and
// the grand total.
func (h *Handler) Index(c *gin.Context) {
	userID := currentUserID(c)
	ctx := c.Request.Context()

	user, err := h.store.UserByID(ctx, userID)
	if err != nil || user == nil {
		log.Printf("index: load user %d: %v", userID, err)
		h.apology(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	holdings, err := h.store.Holdings(ctx, userID)
	if err != nil {
		log.Printf("index: holdings for %d: %v", userID, err)
		h.apology(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	rows := make([]indexRow, 0, len(holdings))
	total := user.Cash
	for _, holding := range holdings {
		q, err := h.quotes.Lookup(ctx, holding.Symbol)
		if err != nil || q == nil {
			log.Printf("index: quote %s: %v", holding.Symbol, err)
			h.apology(c, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		value := q.Price.Mul(decimal.NewFromInt(int64(holding.Shares)))
		rows = append(rows, indexRow{
			Symbol: holding.Symbol,
			Name:   q.Name,
			Shares: holding.Shares,
			Price:  q.Price,
			Total:  value,
		})
		total = total.Add(value)
	}

	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Title":    "Portfolio",
		"Holdings": rows,
		"Cash":     user.Cash,
		"Total":    total,
		"Flash":    takeFlash(c),
	})
}

type tradeForm struct {
	Symbol string `form:"symbol"`
	Shares string `form:"shares"`
}

func (h *Handler) BuyForm(c *gin.Context) {
	c.HTML(http.StatusOK, "buy.tmpl", gin.H{"Title": "Buy"})
}

func (h *Handler) Buy(c *gin.Context) {
	var form tradeForm
	_ = c.ShouldBind(&form)
	ctx := c.Request.Context()

	q, err := h.quotes.Lookup(ctx, form.Symbol)
	if err != nil || q == nil {
		h.apology(c, http.StatusBadRequest, "Must provide valid symbol")
		return
	}
	if form.Shares == "" {
		h.apology(c, http.StatusBadRequest, "Must provide number of shares")
		return
	}
	shares, err := strconv.Atoi(strings.TrimSpace(form.Shares))
	if err != nil {
		h.apology(c, http.StatusBadRequest, "Must provide valid number of shares")
		return
	}
	if shares < 1 {
		h.apology(c, http.StatusBadRequest, "Must provide positive number of shares")
		return
	}

	err = h.store.Buy(ctx, currentUserID(c), q.Symbol, shares, q.Price)
	if errors.Is(err, store.ErrInsufficientCash) {
		h.apology(c, http.StatusBadRequest, "Insufficient cash")
		return
	}
	if err != nil {
		log.Printf("buy: %d x %s: %v", shares, q.Symbol, err)
		h.apology(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	setFlash(c, "Transaction successful")
	c.Redirect(http.StatusSeeOther, "/")
}

// SellForm lists the symbols the user currently holds so the form can
// offer them in a select.
func (h *Handler) SellForm(c *gin.Context) {
	holdings, err := h.store.Holdings(c.Request.Context(), currentUserID(c))
	if err != nil {
		log.Printf("sell form: holdings: %v", err)
		h.apology(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	symbols := make([]string, 0, len(holdings))
	for _, holding := range holdings {
		symbols = append(symbols, holding.Symbol)
	}
	c.HTML(http.StatusOK, "sell.tmpl", gin.H{"Title": "Sell", "Symbols": symbols})
}

func (h *Handler) Sell(c *gin.Context) {
	var form tradeForm
	_ = c.ShouldBind(&form)
	ctx := c.Request.Context()

	q, err := h.quotes.Lookup(ctx, form.Symbol)
	if err != nil || q == nil {
		h.apology(c, http.StatusBadRequest, "Must provide valid symbol")
		return
	}
	shares, err := strconv.Atoi(strings.TrimSpace(form.Shares))
	if err != nil {
		h.apology(c, http.StatusBadRequest, "Must provide valid number of shares")
		return
	}
	if shares < 1 {
		h.apology(c, http.StatusBadRequest, "Must provide positive number of shares")
		return
	}

	err = h.store.Sell(ctx, currentUserID(c), q.Symbol, shares, q.Price)
	if errors.Is(err, store.ErrInsufficientShares) {
		h.apology(c, http.StatusBadRequest, "Too many shares")
		return
	}
	if err != nil {
		log.Printf("sell: %d x %s: %v", shares, q.Symbol, err)
		h.apology(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	setFlash(c, "Sold!")
	c.Redirect(http.StatusSeeOther, "/")
}

// History renders every trade the user ever made, oldest first.
func (h *Handler) History(c *gin.Context) {
	rows, err := h.store.Transactions(c.Request.Context(), currentUserID(c))
	if err != nil {
		log.Printf("history: %v", err)
		h.apology(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.HTML(http.StatusOK, "history.tmpl", gin.H{"Title": "History", "Transactions": rows})
}
