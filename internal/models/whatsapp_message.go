package models

import "time"

// WhatsAppMessage stores one inbound message from the WhatsApp Business
// webhook. WaID is the externally supplied message id; duplicates are
// silently ignored on ingest.
type WhatsAppMessage struct {
	Base
	WaID       string    `gorm:"uniqueIndex;not null" json:"wa_id"`
	FromNumber string    `json:"from"`
	Body       string    `json:"body"`
	Timestamp  time.Time `json:"timestamp"`
}

// TableName overrides GORM's default naming, which would split the
// camel case into whats_app_messages. The migrations create
// whatsapp_messages.
func (WhatsAppMessage) TableName() string {
	return "whatsapp_messages"
}
