package handler

import (
	"github.com/gin-gonic/gin"

	"hostel/internal/auth"
)

// pageRoutes maps GET paths to files under the public directory.
var pageRoutes = map[string]string{
	"/":                   "index.html",
	"/student-attendance": "student_attendance.html",
	"/warden-attendance":  "warden_attendance.html",
	"/student-leave":      "student_leave.html",
	"/warden-leave":       "warden_leave.html",
	"/room-allotment":     "room_allotment.html",
	"/warden-dashboard":   "warden_dashboard.html",
	"/warden-room-view":   "warden_room_view.html",
	"/warden-message":     "warden_message.html",
	"/student-messages":   "student_messages.html",
}

// viewRoutes maps GET paths to files under the views directory.
var viewRoutes = map[string]string{
	"/student": "student_login.html",
	"/warden":  "warden_login.html",
}

// Register mounts every route on r.
func (h *Handler) Register(r *gin.Engine) {
	r.Use(auth.Session(h.session.SigningKey, h.session.Issuer))

	for path, file := range pageRoutes {
		r.StaticFile(path, h.pages.public(file))
	}
	for path, file := range viewRoutes {
		r.StaticFile(path, h.pages.view(file))
	}
	r.Static("/static", h.pages.PublicDir)

	r.POST("/student-login", h.login(auth.RoleStudent))
	r.POST("/warden-login", h.login(auth.RoleWarden))
	r.GET("/session", auth.RequireSession(), h.currentSession)
	r.POST("/logout", h.logout)

	r.GET("/get-attendance", h.ListAttendance)
	r.POST("/submit-attendance", h.SubmitAttendance)

	r.GET("/get-leave", h.ListLeave)
	r.POST("/submit-leave", h.SubmitLeave)

	r.GET("/all-rooms", h.ListRooms)
	r.POST("/submit-room", h.SubmitRoom)
	r.DELETE("/delete-room/:index", h.DeleteRoom)

	r.GET("/get-warden-messages", h.ListWardenMessages)
	r.POST("/send-warden-message", h.SendWardenMessage)

	r.GET("/activity", auth.RequireRole(auth.RoleWarden), h.ListActivity)
	r.GET("/healthz", h.Healthz)

	r.NoRoute(h.publicFallback)
}
