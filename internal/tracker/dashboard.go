package tracker

import (
	"context"

	"rank-tracker/internal/db"
	"rank-tracker/internal/policy"
)

const recentEntryCount = 5

// DashboardData summarizes overall activity plus the actor's latest entries.
type DashboardData struct {
	TotalGames    int64
	TotalEntries  int64
	RecentEntries []db.RankEntry
}

// Dashboard returns the aggregate counts and the actor's five most
// recent rank entries, newest first.
func (s *Service) Dashboard(ctx context.Context, actor policy.Actor) (*DashboardData, error) {
	if !actor.Authenticated() {
		return nil, ErrAuthRequired
	}
	data := &DashboardData{}
	if err := s.db.WithContext(ctx).Model(&db.Game{}).Count(&data.TotalGames).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&db.RankEntry{}).Count(&data.TotalEntries).Error; err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).
		Preload("Game").
		Where("owner_id = ?", actor.ID).
		Order("date DESC, id DESC").
		Limit(recentEntryCount).
		Find(&data.RecentEntries).Error
	if err != nil {
		return nil, err
	}
	return data, nil
}
