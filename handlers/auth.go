package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AksSC/finance/auth"
)

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// LoginForm renders the login page. Reaching it forgets any existing
// session, matching the logout-on-login-page behavior users expect.
func (h *Handler) LoginForm(c *gin.Context) {
	h.sessions.Clear(c)
	c.HTML(http.StatusOK, "login.tmpl", gin.H{"Title": "Log In"})
}

func (h *Handler) Login(c *gin.Context) {
	h.sessions.Clear(c)

	var form loginForm
	_ = c.ShouldBind(&form)

	if form.Username == "" {
		h.apology(c, http.StatusForbidden, "must provide username")
		return
	}
	if form.Password == "" {
		h.apology(c, http.StatusForbidden, "must provide password")
		return
	}

	user, err := h.store.UserByUsername(c.Request.Context(), form.Username)
	if err != nil {
		log.Printf("login: lookup %q: %v", form.Username, err)
		h.apology(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if user == nil || !auth.CheckPassword(user.Hash, form.Password) {
		h.apology(c, http.StatusForbidden, "invalid username and/or password")
		return
	}

	if err := h.sessions.Issue(c, user.ID); err != nil {
		log.Printf("login: issue session for %q: %v", form.Username, err)
		h.apology(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	c.Redirect(http.StatusFound, "/login")
}

type registerForm struct {
	Username     string `form:"username"`
	Password     string `form:"password"`
	Confirmation string `form:"confirmation"`
}

func (h *Handler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.tmpl", gin.H{"Title": "Register"})
}

func (h *Handler) Register(c *gin.Context) {
	var form registerForm
	_ = c.ShouldBind(&form)

	if form.Username == "" {
		h.apology(c, http.StatusBadRequest, "Must provide Username")
		return
	}
	existing, err := h.store.UserByUsername(c.Request.Context(), form.Username)
	if err != nil {
		log.Printf("register: lookup %q: %v", form.Username, err)
		h.apology(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if existing != nil {
		h.apology(c, http.StatusBadRequest, "Username already exists")
		return
	}
	if form.Password == "" {
		h.apology(c, http.StatusBadRequest, "Must provide password")
		return
	}
	if form.Confirmation == "" {
		h.apology(c, http.StatusBadRequest, "Must provide confirmation for password")
		return
	}
	if form.Password != form.Confirmation {
		h.apology(c, http.StatusBadRequest, "Passwords must match")
		return
	}

	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		log.Printf("register: hash password: %v", err)
		h.apology(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if _, err := h.store.CreateUser(c.Request.Context(), form.Username, hash); err != nil {
		log.Printf("register: create %q: %v", form.Username, err)
		h.apology(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

type changeForm struct {
	Current      string `form:"current"`
	New          string `form:"new"`
	Confirmation string `form:"confirmation"`
}

func (h *Handler) ChangeForm(c *gin.Context) {
	c.HTML(http.StatusOK, "change.tmpl", gin.H{"Title": "Change Password"})
}

func (h *Handler) Change(c *gin.Context) {
	var form changeForm
	_ = c.ShouldBind(&form)

	if form.Current == "" {
		h.apology(c, http.StatusBadRequest, "Must provide current password")
		return
	}
	if form.New == "" {
		h.apology(c, http.StatusBadRequest, "Must provide new password")
		return
	}
	if form.Confirmation == "" {
		h.apology(c, http.StatusBadRequest, "Must provide confirmation for new password")
		return
	}

	userID := currentUserID(c)
	user, err := h.store.UserByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		log.Printf("change: load user %d: %v", userID, err)
		h.apology(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if !auth.CheckPassword(user.Hash, form.Current) {
		h.apology(c, http.StatusBadRequest, "Wrong password")
		return
	}
	if form.New != form.Confirmation {
		h.apology(c, http.StatusBadRequest, "New passwords don't match")
		return
	}

	hash, err := auth.HashPassword(form.New)
	if err != nil {
		log.Printf("change: hash password: %v", err)
		h.apology(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if err := h.store.UpdateUserHash(c.Request.Context(), userID, hash); err != nil {
		log.Printf("change: update hash for %d: %v", userID, err)
		h.apology(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	setFlash(c, "Password updated!")
	c.Redirect(http.StatusSeeOther, "/")
}
