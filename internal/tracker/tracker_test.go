package tracker

import (
	"context"
	"testing"
	"time"

	"rank-tracker/internal/db"
	"rank-tracker/internal/policy"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(conn)
}

func seedUser(t *testing.T, s *Service, email, role string) policy.Actor {
	t.Helper()
	user := db.User{Email: email, PasswordHash: "x", Role: role}
	if err := s.db.Create(&user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return policy.Actor{ID: user.ID, Role: user.Role}
}

func mustCreateGame(t *testing.T, s *Service, actor policy.Actor, name string) *db.Game {
	t.Helper()
	game, err := s.CreateGame(context.Background(), actor, name)
	if err != nil {
		t.Fatalf("create game %q: %v", name, err)
	}
	return game
}

func mustCreateEntry(t *testing.T, s *Service, actor policy.Actor, in EntryInput) *db.RankEntry {
	t.Helper()
	entry, err := s.CreateEntry(context.Background(), actor, in)
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	return entry
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed
}
