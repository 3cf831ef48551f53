package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/01moynul/marketpro-admin/internal/email"
	"github.com/01moynul/marketpro-admin/internal/logging"
	"github.com/gin-gonic/gin"
)

type SendEmailInput struct {
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

type SendToSelfInput struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

func (h *Handlers) respondSend(c *gin.Context, to string, err error) {
	if errors.Is(err, email.ErrInvalidMessage) {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		logging.FromContext(c.Request.Context()).Error("send email", "to", to, "error", err)
		jsonError(c, http.StatusBadGateway, "Error sending email")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email sent", "to": to})
}

// SendEmail handles POST /api/email/send.
func (h *Handlers) SendEmail(c *gin.Context) {
	var input SendEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.Notifier.Send(c.Request.Context(), email.Message{
		To:      input.To,
		Subject: input.Subject,
		Body:    input.Body,
	})
	h.respondSend(c, input.To, err)
}

// SendEmailToSelf handles POST /api/email/send-to-self. The recipient is the
// configured admin address.
func (h *Handlers) SendEmailToSelf(c *gin.Context) {
	var input SendToSelfInput
	if err := c.ShouldBindJSON(&input); err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}

	err := h.Notifier.SendToSelf(c.Request.Context(), input.Subject, input.Body)
	h.respondSend(c, h.Notifier.AdminAddress(), err)
}

// ListSentEmails handles GET /api/email/sent?limit=N, newest first.
func (h *Handlers) ListSentEmails(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	sent, err := h.Store.ListSentEmails(c.Request.Context(), limit)
	if err != nil {
		storeError(c, err, "Email not found", "Error fetching sent emails")
		return
	}
	c.JSON(http.StatusOK, sent)
}
