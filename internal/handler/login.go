package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel/internal/auth"
)

var (
	dashboards = map[auth.Role]string{
		auth.RoleStudent: "student_dashboard.html",
		auth.RoleWarden:  "warden_dashboard.html",
	}
	rejections = map[auth.Role]string{
		auth.RoleStudent: "Invalid Student Credentials",
		auth.RoleWarden:  "Invalid Warden Credentials",
	}
)

// login checks the submitted pair for role. Success serves the role's
// dashboard and sets a session cookie; failure answers with a fixed string.
func (h *Handler) login(role auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		fields, ok := h.fields(c)
		if !ok {
			return
		}
		username, _ := fields["username"].(string)
		password, _ := fields["password"].(string)

		if !h.verifier.Verify(role, username, password) {
			h.countLogin(role, "rejected")
			html(c, http.StatusOK, rejections[role])
			return
		}
		h.countLogin(role, "success")

		token, _, err := auth.Issue(role, username, h.session.Issuer, h.session.SigningKey, h.session.TTL)
		if err != nil {
			h.log.Errorw("issue session failed", "role", role, "error", err)
		} else {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(auth.SessionCookie, token, int(h.session.TTL.Seconds()), "/", "", h.session.Secure, true)
		}
		c.File(h.pages.public(dashboards[role]))
	}
}

func (h *Handler) currentSession(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)
	body := gin.H{"role": claims.Role, "username": claims.Subject}
	if claims.ExpiresAt != nil {
		body["expires_at"] = claims.ExpiresAt.Unix()
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", h.session.Secure, true)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) countLogin(role auth.Role, outcome string) {
	if h.metrics != nil {
		h.metrics.Logins.WithLabelValues(string(role), outcome).Inc()
	}
}
