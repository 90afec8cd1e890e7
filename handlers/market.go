package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type quoteForm struct {
	Symbol string `form:"symbol"`
}

func (h *Handler) QuoteForm(c *gin.Context) {
	c.HTML(http.StatusOK, "quote.tmpl", gin.H{"Title": "Quote"})
}

// Quote looks up one symbol and shows its current price.
func (h *Handler) Quote(c *gin.Context) {
	var form quoteForm
	_ = c.ShouldBind(&form)

	q, err := h.quotes.Lookup(c.Request.Context(), form.Symbol)
	if err != nil || q == nil {
		h.apology(c, http.StatusBadRequest, "Must provide valid symbol")
		return
	}
	c.HTML(http.StatusOK, "quoted.tmpl", gin.H{
		"Title":  "Quote",
		"Symbol": q.Symbol,
		"Name":   q.Name,
		"Price":  q.Price,
	})
}
