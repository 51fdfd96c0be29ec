package tracker

import (
	"context"
	"errors"
	"log"
	"strings"

	"rank-tracker/internal/db"
	"rank-tracker/internal/policy"

	"gorm.io/gorm"
)

const maxGameNameLength = 128

// ListGames returns games ordered by id with owners resolved. A
// non-positive perPage disables paging and returns the whole table.
func (s *Service) ListGames(ctx context.Context, page, perPage int) ([]db.Game, int64, error) {
	query := s.db.WithContext(ctx).Model(&db.Game{})
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	find := s.db.WithContext(ctx).Preload("Owner").Order("id")
	if perPage > 0 {
		if page < 1 {
			page = 1
		}
		find = find.Offset((page - 1) * perPage).Limit(perPage)
	}
	var games []db.Game
	if err := find.Find(&games).Error; err != nil {
		return nil, 0, err
	}
	return games, total, nil
}

// GetGame loads one game with its owner resolved.
func (s *Service) GetGame(ctx context.Context, id uint) (*db.Game, error) {
	var game db.Game
	err := s.db.WithContext(ctx).Preload("Owner").First(&game, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// CreateGame persists a new game owned by the actor. The owner is always
// the actor; callers cannot assign ownership to someone else.
func (s *Service) CreateGame(ctx context.Context, actor policy.Actor, name string) (*db.Game, error) {
	if !actor.Authenticated() {
		return nil, ErrAuthRequired
	}
	if !policy.CanPerform(actor, policy.OpCreate, 0) {
		return nil, ErrForbidden
	}
	name, err := validateGameName(name)
	if err != nil {
		return nil, err
	}

	game := db.Game{Name: name, OwnerID: actor.ID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&db.Game{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrNameTaken
		}
		return tx.Create(&game).Error
	})
	if isDuplicate(err) {
		return nil, ErrNameTaken
	}
	if err != nil {
		return nil, err
	}
	log.Printf("game created game_id=%d name=%q owner_id=%d", game.ID, game.Name, game.OwnerID)
	s.audit(ctx, actor.ID, "game.created", map[string]any{"game_id": game.ID, "name": game.Name})
	return &game, nil
}

// UpdateGame renames a game. Ownership never changes on update, and the
// new name is re-checked for uniqueness against every other game.
func (s *Service) UpdateGame(ctx context.Context, actor policy.Actor, id uint, name string) (*db.Game, error) {
	if !actor.Authenticated() {
		return nil, ErrAuthRequired
	}
	name, err := validateGameName(name)
	if err != nil {
		return nil, err
	}

	var game db.Game
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&game, id).Error; err != nil {
			return err
		}
		if !policy.CanPerform(actor, policy.OpUpdate, game.OwnerID) {
			return ErrForbidden
		}
		var count int64
		if err := tx.Model(&db.Game{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrNameTaken
		}
		result := tx.Model(&db.Game{}).Where("id = ?", id).Update("name", name)
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
	if isDuplicate(err) {
		return nil, ErrNameTaken
	}
	if err != nil {
		return nil, err
	}
	// Re-read so the caller gets the owner resolved, like GetGame.
	updated, err := s.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	log.Printf("game updated game_id=%d name=%q actor_id=%d", updated.ID, updated.Name, actor.ID)
	s.audit(ctx, actor.ID, "game.updated", map[string]any{"game_id": updated.ID, "name": updated.Name})
	return updated, nil
}

// DeleteGame removes a game. Deleting an id that does not exist is a
// no-op, not an error. Games with rank entries cannot be deleted; the
// entries are an audit log and must be removed first.
func (s *Service) DeleteGame(ctx context.Context, actor policy.Actor, id uint) error {
	if !actor.Authenticated() {
		return ErrAuthRequired
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var game db.Game
		if err := tx.First(&game, id).Error; err != nil {
			return err
		}
		if !policy.CanPerform(actor, policy.OpDelete, game.OwnerID) {
			return ErrForbidden
		}
		var entries int64
		if err := tx.Model(&db.RankEntry{}).Where("game_id = ?", id).Count(&entries).Error; err != nil {
			return err
		}
		if entries > 0 {
			return validationErr("game", "game still has rank entries")
		}
		return tx.Delete(&db.Game{}, id).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	log.Printf("game deleted game_id=%d actor_id=%d", id, actor.ID)
	s.audit(ctx, actor.ID, "game.deleted", map[string]any{"game_id": id})
	return nil
}

func validateGameName(name string) (string, error) {
	name = strings.Join(strings.Fields(strings.TrimSpace(name)), " ")
	if name == "" {
		return "", validationErr("name", "name is required")
	}
	if len(name) > maxGameNameLength {
		return "", validationErr("name", "name is too long")
	}
	return name, nil
}
