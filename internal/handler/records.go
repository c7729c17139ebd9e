package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel/internal/recordstore"
)

// Fixed response bodies of the collection endpoints.
const (
	attendanceSubmitted = "✅ Attendance Submitted!"
	leaveSubmitted      = `<h3>✅ Leave submitted successfully!</h3><a href="/student-leave">Go back</a>`
	roomSubmitted       = "✅ Room data submitted successfully!"
	roomDeleted         = "✅ Room deleted successfully"
	messageSent         = `<script>alert('✅ Message sent successfully!'); window.location='/warden-message';</script>`
)

// ListAttendance returns every attendance record.
func (h *Handler) ListAttendance(c *gin.Context) {
	h.writeList(c, h.svc.ListAttendance)
}

// SubmitAttendance stores the submitted fields as one attendance record.
func (h *Handler) SubmitAttendance(c *gin.Context) {
	fields, ok := h.fields(c)
	if !ok {
		return
	}
	if _, err := h.svc.SubmitAttendance(c.Request.Context(), fields); err != nil {
		h.storeFailure(c, err)
		return
	}
	html(c, http.StatusOK, attendanceSubmitted)
}

// ListLeave returns every leave request.
func (h *Handler) ListLeave(c *gin.Context) {
	h.writeList(c, h.svc.ListLeave)
}

// SubmitLeave stores a leave request and answers with a link back to the form.
func (h *Handler) SubmitLeave(c *gin.Context) {
	fields, ok := h.fields(c)
	if !ok {
		return
	}
	if _, err := h.svc.SubmitLeave(c.Request.Context(), fields); err != nil {
		h.storeFailure(c, err)
		return
	}
	html(c, http.StatusOK, leaveSubmitted)
}

// ListRooms returns every room allotment.
func (h *Handler) ListRooms(c *gin.Context) {
	h.writeList(c, h.svc.ListRooms)
}

// SubmitRoom stores a room allotment with its five occupant slots filled in.
func (h *Handler) SubmitRoom(c *gin.Context) {
	fields, ok := h.fields(c)
	if !ok {
		return
	}
	if _, err := h.svc.SubmitRoom(c.Request.Context(), fields); err != nil {
		h.storeFailure(c, err)
		return
	}
	c.PureJSON(http.StatusOK, gin.H{"success": true, "message": roomSubmitted})
}

// DeleteRoom removes a room by its current position. An index without a
// leading integer is reported like an out of range one.
func (h *Handler) DeleteRoom(c *gin.Context) {
	index, ok := parseIndex(c.Param("index"))
	if !ok {
		h.storeFailure(c, recordstore.ErrInvalidIndex)
		return
	}
	if _, err := h.svc.DeleteRoom(c.Request.Context(), index); err != nil {
		h.storeFailure(c, err)
		return
	}
	c.PureJSON(http.StatusOK, gin.H{"success": true, "message": roomDeleted})
}

// ListWardenMessages returns every warden message.
func (h *Handler) ListWardenMessages(c *gin.Context) {
	h.writeList(c, h.svc.ListWardenMessages)
}

// SendWardenMessage stores a dated message and redirects back to the form.
func (h *Handler) SendWardenMessage(c *gin.Context) {
	fields, ok := h.fields(c)
	if !ok {
		return
	}
	if _, err := h.svc.SendWardenMessage(c.Request.Context(), fields); err != nil {
		h.storeFailure(c, err)
		return
	}
	html(c, http.StatusOK, messageSent)
}

func (h *Handler) writeList(c *gin.Context, list func() ([]recordstore.Record, error)) {
	recs, err := list()
	if err != nil {
		h.storeFailure(c, err)
		return
	}
	c.PureJSON(http.StatusOK, recs)
}

func (h *Handler) fields(c *gin.Context) (recordstore.Record, bool) {
	fields, err := bindFields(c)
	if err != nil {
		c.PureJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return nil, false
	}
	return fields, true
}

// storeFailure maps record store errors to responses. The process keeps
// serving; only the current request fails.
func (h *Handler) storeFailure(c *gin.Context, err error) {
	switch {
	case errors.Is(err, recordstore.ErrInvalidIndex):
		c.PureJSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid index"})
	case errors.Is(err, recordstore.ErrCorruptStore):
		c.PureJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Stored data is corrupt"})
	default:
		h.log.Errorw("request failed", "path", c.FullPath(), "error", err)
		c.PureJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}

func html(c *gin.Context, status int, body string) {
	c.Data(status, "text/html; charset=utf-8", []byte(body))
}
