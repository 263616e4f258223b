package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "github.com/moolahfactory/moolah/internal/errors"
	"github.com/moolahfactory/moolah/internal/logger"
	"github.com/moolahfactory/moolah/internal/models"
)

// whatsAppService handles inbound WhatsApp webhook messages.
type whatsAppService struct {
	db *gorm.DB
}

// NewWhatsAppService creates a new WhatsAppServicer.
func NewWhatsAppService(db *gorm.DB) WhatsAppServicer {
	return &whatsAppService{db: db}
}

// IngestMessage stores an inbound message keyed by its externally supplied
// message id. A duplicate id is not an error: the insert is skipped and the
// duplicate logged.
func (s *whatsAppService) IngestMessage(msg InboundMessage) (bool, error) {
	if msg.WaID == "" {
		return false, apperrors.WithMessage(apperrors.ErrInvalidInput, "message id is required")
	}

	record := &models.WhatsAppMessage{
		WaID:       msg.WaID,
		FromNumber: msg.FromNumber,
		Body:       msg.Body,
		Timestamp:  msg.Timestamp,
	}

	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wa_id"}},
		DoNothing: true,
	}).Create(record)
	if result.Error != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}

	if result.RowsAffected == 0 {
		logger.Get().Infow("duplicate WhatsApp message ignored", "wa_id", msg.WaID)
		return false, nil
	}
	return true, nil
}

// GetMessages retrieves all stored webhook messages.
func (s *whatsAppService) GetMessages() ([]models.WhatsAppMessage, error) {
	var messages []models.WhatsAppMessage
	if err := s.db.Find(&messages).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return messages, nil
}
