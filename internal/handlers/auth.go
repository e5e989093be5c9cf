package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clamood/console/internal/guard"
	"clamood/console/internal/models"
	"clamood/console/internal/service"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) LoginPage(c *gin.Context) {
	h.screen.Clear()
	h.page(c, nil)
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, bindingErrors(err))
		return
	}

	if _, err := h.auth.Login(c.Request.Context(), models.LoginForm{
		Username: req.Username,
		Password: req.Password,
	}); err != nil {
		h.fail(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, guard.HomePath)
}

func (h HandlerSet) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context()); err != nil {
		h.log.Error().Err(err).Msg("logout failed")
	}
	h.screen.Clear()
	c.Redirect(http.StatusSeeOther, guard.LoginPath)
}

func (h HandlerSet) Settings(c *gin.Context) {
	h.screen.Show(c.Request.URL.Path, service.ProfileKey())

	profile, err := h.auth.Profile(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.page(c, gin.H{"profile": profile})
}

type passwordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func (h HandlerSet) ChangePassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalid(c, bindingErrors(err))
		return
	}

	if err := h.auth.ChangePassword(c.Request.Context(), models.PasswordChange{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"changed": true})
}

func (h HandlerSet) Notices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notices": h.notices.Drain()})
}
