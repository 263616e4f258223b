package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/moolahfactory/moolah/internal/config"
	apperrors "github.com/moolahfactory/moolah/internal/errors"
	"github.com/moolahfactory/moolah/internal/services"
)

// WhatsAppHandler handles the WhatsApp Business webhook and message reads.
type WhatsAppHandler struct {
	whatsAppService services.WhatsAppServicer
}

// NewWhatsAppHandler creates a new WhatsAppHandler.
func NewWhatsAppHandler(whatsAppService services.WhatsAppServicer) *WhatsAppHandler {
	return &WhatsAppHandler{whatsAppService: whatsAppService}
}

// webhookPayload mirrors the Meta webhook delivery envelope, keeping only
// the fields the ingest cares about.
type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []webhookMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// webhookMessage is one inbound message in a webhook delivery. Timestamp is
// a Unix-seconds string, per the WhatsApp Business API.
type webhookMessage struct {
	ID        string `json:"id"`
	From      string `json:"from"`
	Timestamp string `json:"timestamp"`
	Text      struct {
		Body string `json:"body"`
	} `json:"text"`
}

// ReceiveWebhook ingests every message in a webhook delivery. Duplicate
// message ids are silently ignored, so redelivered webhooks are safe.
func (h *WhatsAppHandler) ReceiveWebhook(c *gin.Context) {
	var payload webhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				seconds, _ := strconv.ParseInt(msg.Timestamp, 10, 64)
				_, err := h.whatsAppService.IngestMessage(services.InboundMessage{
					WaID:       msg.ID,
					FromNumber: msg.From,
					Body:       msg.Text.Body,
					Timestamp:  time.Unix(seconds, 0).UTC(),
				})
				if err != nil {
					respondWithError(c, err)
					return
				}
			}
		}
	}

	c.Status(http.StatusNoContent)
}

// GetMessages lists all stored webhook messages.
func (h *WhatsAppHandler) GetMessages(c *gin.Context) {
	messages, err := h.whatsAppService.GetMessages()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// GetConfig exposes the WhatsApp phone number id for webhook setup.
func (h *WhatsAppHandler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"phone_number_id": config.Get().WhatsAppPhoneNumberID})
}
