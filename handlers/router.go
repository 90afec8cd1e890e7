package handlers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AksSC/finance/middleware"
)

// NewRouter wires every route onto a gin engine. templatesGlob points at
// the HTML templates; tests pass a path relative to their own directory.
func NewRouter(h *Handler, templatesGlob string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		h.apology(c, http.StatusInternalServerError, "Internal Server Error")
	}))
	r.Use(middleware.NoStore())

	r.SetFuncMap(template.FuncMap{"usd": usd})
	r.LoadHTMLGlob(templatesGlob)

	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) {
		h.apology(c, http.StatusNotFound, "Not Found")
	})
	r.NoMethod(func(c *gin.Context) {
		h.apology(c, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	// Public routes
	r.GET("/login", h.LoginForm)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
	r.GET("/register", h.RegisterForm)
	r.POST("/register", h.Register)

	// Protected routes
	protected := r.Group("/", middleware.RequireLogin(h.sessions))
	{
		protected.GET("/", h.Index)
		protected.GET("/buy", h.BuyForm)
		protected.POST("/buy", h.Buy)
		protected.GET("/sell", h.SellForm)
		protected.POST("/sell", h.Sell)
		protected.GET("/quote", h.QuoteForm)
		protected.POST("/quote", h.Quote)
		protected.GET("/history", h.History)
		protected.GET("/change", h.ChangeForm)
		protected.POST("/change", h.Change)
	}

	return r
}
