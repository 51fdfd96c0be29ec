package tracker

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"rank-tracker/internal/db"
	"rank-tracker/internal/policy"

	"gorm.io/gorm"
)

const (
	MinRank = 1
	MaxRank = 5000

	maxDescriptionLength = 512
)

// EntryInput carries the caller-supplied fields of a rank entry. The
// owner is never part of the input; it comes from the actor on create
// and from the stored row on update.
type EntryInput struct {
	Rank        int
	Date        time.Time
	Description string
	GameID      uint
}

// ProgressionPoint is one observation in a user's rank history for a game.
type ProgressionPoint struct {
	Date time.Time `json:"date"`
	Rank int       `json:"rank"`
}

// ListEntries returns rank entries ordered by date descending with game
// and owner resolved. A non-positive perPage returns everything.
func (s *Service) ListEntries(ctx context.Context, page, perPage int) ([]db.RankEntry, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&db.RankEntry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	find := s.db.WithContext(ctx).Preload("Game").Preload("Owner").Order("date DESC, id DESC")
	if perPage > 0 {
		if page < 1 {
			page = 1
		}
		find = find.Offset((page - 1) * perPage).Limit(perPage)
	}
	var entries []db.RankEntry
	if err := find.Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// GetEntry loads one rank entry with game and owner resolved.
func (s *Service) GetEntry(ctx context.Context, id uint) (*db.RankEntry, error) {
	var entry db.RankEntry
	err := s.db.WithContext(ctx).Preload("Game").Preload("Owner").First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// CreateEntry records a new rank observation owned by the actor.
func (s *Service) CreateEntry(ctx context.Context, actor policy.Actor, in EntryInput) (*db.RankEntry, error) {
	if !actor.Authenticated() {
		return nil, ErrAuthRequired
	}
	if !policy.CanPerform(actor, policy.OpCreate, 0) {
		return nil, ErrForbidden
	}
	in.Description = strings.TrimSpace(in.Description)
	if err := validateEntryFields(in); err != nil {
		return nil, err
	}

	entry := db.RankEntry{
		Rank:        in.Rank,
		Date:        in.Date,
		Description: in.Description,
		OwnerID:     actor.ID,
		GameID:      in.GameID,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := gameExists(tx, in.GameID); err != nil {
			return err
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("rank entry created entry_id=%d game_id=%d rank=%d owner_id=%d", entry.ID, entry.GameID, entry.Rank, entry.OwnerID)
	s.audit(ctx, actor.ID, "entry.created", map[string]any{"entry_id": entry.ID, "game_id": entry.GameID, "rank": entry.Rank})
	return &entry, nil
}

// UpdateEntry rewrites the caller-supplied fields of an entry. The
// stored owner always survives; a different owner in the input is
// ignored.
func (s *Service) UpdateEntry(ctx context.Context, actor policy.Actor, id uint, in EntryInput) (*db.RankEntry, error) {
	if !actor.Authenticated() {
		return nil, ErrAuthRequired
	}
	in.Description = strings.TrimSpace(in.Description)
	if err := validateEntryFields(in); err != nil {
		return nil, err
	}

	var entry db.RankEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, id).Error; err != nil {
			return err
		}
		if !policy.CanPerform(actor, policy.OpUpdate, entry.OwnerID) {
			return ErrForbidden
		}
		if err := gameExists(tx, in.GameID); err != nil {
			return err
		}
		result := tx.Model(&db.RankEntry{}).Where("id = ?", id).Updates(map[string]any{
			"rank":        in.Rank,
			"date":        in.Date,
			"description": in.Description,
			"game_id":     in.GameID,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Deleted between load and save.
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	// Re-read so the caller gets game and owner resolved, like GetEntry.
	updated, err := s.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	log.Printf("rank entry updated entry_id=%d game_id=%d rank=%d actor_id=%d", updated.ID, updated.GameID, updated.Rank, actor.ID)
	s.audit(ctx, actor.ID, "entry.updated", map[string]any{"entry_id": updated.ID, "game_id": updated.GameID, "rank": updated.Rank})
	return updated, nil
}

// DeleteEntry removes a rank entry. Owner or admin only; a missing id is
// a no-op.
func (s *Service) DeleteEntry(ctx context.Context, actor policy.Actor, id uint) error {
	if !actor.Authenticated() {
		return ErrAuthRequired
	}
	var entry db.RankEntry
	err := s.db.WithContext(ctx).First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !policy.CanPerform(actor, policy.OpDelete, entry.OwnerID) {
		return ErrForbidden
	}
	if err := s.db.WithContext(ctx).Delete(&db.RankEntry{}, id).Error; err != nil {
		return err
	}
	log.Printf("rank entry deleted entry_id=%d actor_id=%d", id, actor.ID)
	s.audit(ctx, actor.ID, "entry.deleted", map[string]any{"entry_id": id})
	return nil
}

// RankProgression returns the time-ordered rank series one user recorded
// for one game, ascending by date. Used for charting.
func (s *Service) RankProgression(ctx context.Context, userID, gameID uint) ([]ProgressionPoint, error) {
	var points []ProgressionPoint
	err := s.db.WithContext(ctx).
		Model(&db.RankEntry{}).
		Select("date", "rank").
		Where("owner_id = ? AND game_id = ?", userID, gameID).
		Order("date ASC, id ASC").
		Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

func validateEntryFields(in EntryInput) error {
	if in.GameID == 0 {
		return validationErr("game_id", "you must select a game")
	}
	if in.Rank < MinRank || in.Rank > MaxRank {
		return validationErr("rank", "rank must be between 1 and 5000")
	}
	if in.Date.IsZero() {
		return validationErr("date", "date is required")
	}
	if len(in.Description) > maxDescriptionLength {
		return validationErr("description", "description is too long")
	}
	return nil
}

func gameExists(tx *gorm.DB, gameID uint) error {
	var count int64
	if err := tx.Model(&db.Game{}).Where("id = ?", gameID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return validationErr("game_id", "you must select a game")
	}
	return nil
}
