package services

import (
	"testing"
	"time"

	"github.com/moolahfactory/moolah/internal/models"
	"github.com/moolahfactory/moolah/internal/testutil"
)

func inbound(waID string) InboundMessage {
	return InboundMessage{
		WaID:       waID,
		FromNumber: "15551234567",
		Body:       "spent 12.50 on lunch",
		Timestamp:  time.Date(2023, time.March, 1, 9, 30, 0, 0, time.UTC),
	}
}

func TestIngestMessage(t *testing.T) {
	t.Run("stores_message", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWhatsAppService(db)

		stored, err := svc.IngestMessage(inbound("wamid.A1"))
		testutil.AssertNoError(t, err)
		if !stored {
			t.Error("expected message to be stored")
		}

		messages, err := svc.GetMessages()
		testutil.AssertNoError(t, err)
		if len(messages) != 1 {
			t.Fatalf("expected 1 message, got %d", len(messages))
		}
		if messages[0].WaID != "wamid.A1" {
			t.Errorf("expected wa_id wamid.A1, got %s", messages[0].WaID)
		}
		if messages[0].Body != "spent 12.50 on lunch" {
			t.Errorf("unexpected body %q", messages[0].Body)
		}
	})

	t.Run("duplicate_id_ignored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWhatsAppService(db)

		stored, err := svc.IngestMessage(inbound("wamid.B2"))
		testutil.AssertNoError(t, err)
		if !stored {
			t.Error("expected first delivery to be stored")
		}

		stored, err = svc.IngestMessage(inbound("wamid.B2"))
		testutil.AssertNoError(t, err)
		if stored {
			t.Error("expected redelivery to be skipped")
		}

		var count int64
		testutil.AssertNoError(t, db.Model(&models.WhatsAppMessage{}).Count(&count).Error)
		if count != 1 {
			t.Errorf("expected a single stored row, got %d", count)
		}
	})

	t.Run("writes_to_migrated_table", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWhatsAppService(db)

		_, err := svc.IngestMessage(inbound("wamid.C3"))
		testutil.AssertNoError(t, err)

		// The SQL migrations create whatsapp_messages; the model must map
		// to that name, not GORM's default camel-case split.
		var count int64
		testutil.AssertNoError(t, db.Table("whatsapp_messages").Count(&count).Error)
		if count != 1 {
			t.Errorf("expected 1 row in whatsapp_messages, got %d", count)
		}
	})

	t.Run("missing_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewWhatsAppService(db)

		_, err := svc.IngestMessage(inbound(""))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
