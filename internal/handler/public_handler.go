package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-admin-api/internal/middleware"
	"github.com/noah-isme/academy-admin-api/internal/service"
	"github.com/noah-isme/academy-admin-api/pkg/response"
)

// PublicHandler serves the unauthenticated homepage feed.
type PublicHandler struct {
	notices   *service.NoticeService
	popups    *service.PopupService
	loginPath string
}

// NewPublicHandler constructs PublicHandler. apiPrefix locates the login route
// advertised by the landing page.
func NewPublicHandler(notices *service.NoticeService, popups *service.PopupService, apiPrefix string) *PublicHandler {
	return &PublicHandler{notices: notices, popups: popups, loginPath: apiPrefix + "/auth/login"}
}

// Landing is the login entry point every unknown route falls back to.
func (h *PublicHandler) Landing(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{
		"login":   h.loginPath,
		"landing": service.AdminLandingPath,
	}, nil)
}

// RedirectHome sends unknown routes back to the landing page.
func (h *PublicHandler) RedirectHome(c *gin.Context) {
	c.Redirect(http.StatusFound, middleware.LoginRedirect)
}

// Popups godoc
// @Summary Popups currently shown on the homepage
// @Description Effectively active popups, lowest priority number first
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /public/popups [get]
func (h *PublicHandler) Popups(c *gin.Context) {
	popups := h.popups.Showing(c.Request.Context())
	response.JSON(c, http.StatusOK, popups, map[string]interface{}{
		"count":        len(popups),
		"evaluated_at": h.popups.Now(),
	})
}

// Notices godoc
// @Summary Published notices
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /public/notices [get]
func (h *PublicHandler) Notices(c *gin.Context) {
	notices := h.notices.Published(c.Request.Context())
	response.JSON(c, http.StatusOK, notices, map[string]interface{}{"count": len(notices)})
}

// Notice godoc
// @Summary Read one published notice
// @Description Increments the view counter
// @Tags Public
// @Produce json
// @Param id path int true "Notice ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /public/notices/{id} [get]
func (h *PublicHandler) Notice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	notice, err := h.notices.Read(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notice, nil)
}
