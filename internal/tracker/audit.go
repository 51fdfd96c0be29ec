package tracker

import (
	"context"
	"encoding/json"
	"log"

	"rank-tracker/internal/db"

	"gorm.io/datatypes"
)

// audit appends an event row for a successful mutation. Best effort: a
// failed audit write is logged and never fails the operation itself.
func (s *Service) audit(ctx context.Context, userID uint, eventType string, payload map[string]any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("audit payload marshal failed type=%s: %v", eventType, err)
		return
	}
	event := db.Event{
		UserID:  userID,
		Type:    eventType,
		Payload: datatypes.JSON(raw),
	}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		log.Printf("audit write failed type=%s user_id=%d: %v", eventType, userID, err)
	}
}
