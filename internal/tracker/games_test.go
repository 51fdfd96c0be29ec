package tracker

import (
	"context"
	"errors"
	"testing"

	"rank-tracker/internal/db"
	"rank-tracker/internal/policy"
)

func TestCreateGameForcesOwner(t *testing.T) {
	s := newTestService(t)
	alice := seedUser(t, s, "alice@example.com", db.RoleUser)

	game := mustCreateGame(t, s, alice, "Chess")
	if game.ID == 0 {
		t.Fatal("expected generated id")
	}
	if game.OwnerID != alice.ID {
		t.Fatalf("owner = %d, want %d", game.OwnerID, alice.ID)
	}
}

func TestCreateGameDuplicateName(t *testing.T) {
	s := newTestService(t)
	alice := seedUser(t, s, "alice@example.com", db.RoleUser)
	bob := seedUser(t, s, "bob@example.com", db.RoleUser)

	mustCreateGame(t, s, alice, "Chess")
	_, err := s.CreateGame(context.Background(), bob, "Chess")
	if !errors.Is(err, ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
}

func TestCreateGameValidation(t *testing.T) {
	s := newTestService(t)
	alice := seedUser(t, s, "alice@example.com", db.RoleUser)

	if _, err := s.CreateGame(context.Background(), alice, "   "); !IsValidation(err) {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}
	if _, err := s.CreateGame(context.Background(), policy.Actor{}, "Go"); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired for anonymous create, got %v", err)
	}
}

func TestCreateGameNormalizesName(t *testing.T) {
	s := newTestService(t)
	alice := seedUser(t, s, "alice@example.com", db.RoleUser)

	game := mustCreateGame(t, s, alice, "  Street   Fighter  ")
	if game.Name != "Street Fighter" {
		t.Fatalf("name = %q, want %q", game.Name, "Street Fighter")
	}
}

func TestUpdateGameOwnership(t *testing.T) {
	s := newTestService(t)
	alice := seedUser(t, s, "alice@example.com", db.RoleUser)
	bob := seedUser(t, s, "bob@example.com", db.RoleUser)
	admin := seedUser(t, s, "admin@example.com", db.RoleAdmin)

	game := mustCreateGame(t, s, alice, "Chess")

	if _, err := s.UpdateGame(context.Background(), bob, game.ID, "Checkers"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	stored, err := s.GetGame(context.Background(), game.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if stored.Name != "Chess" {
		t.Fatalf("forbidden update changed name to %q", stored.Name)
	}

	updated, err := s.UpdateGame(context.Background(), admin, game.ID, "Shogi")
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.OwnerID != alice.ID {
		t.Fatalf("admin update changed owner to %d", updated.OwnerID)
	}
	if updated.Name != "Shogi" {
		t.Fatalf("name = %q, want %q", updated.Name, "Shogi")
	}
}

func TestUpdateGameRechecksUniqueness(t *testing.T) {
	s := newTestService(t)
	alice := seedUser(t, s, "alice@example.com", db.RoleUser)

	mustCreateGame(t, s, alice, "Chess")
	game := mustCreateGame(t, s, alice, "Checkers")

	if _, err := s.UpdateGame(context.Background(), alice, game.ID, "Chess"); !errors.Is(err, ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken on rename collision, got %v", err)
	}
	// Renaming to its own current name is not a collision.
	if _, err := s.UpdateGame(context.Background(), alice, game.ID, "Checkers"); err != nil {
		t.Fatalf("self-rename: %v", err)
	}
}

func TestUpdateGameResolvesOwner(t *testing.T) {
	s := newTestService(t)
	alice := seedUser(t, s, "alice@example.com", db.RoleUser)
	game := mustCreateGame(t, s, alice, "Chess")

	updated, err := s.UpdateGame(context.Background(), alice, game.ID, "Shogi")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Owner == nil || updated.Owner.Email != "alice@example.com" {
		t.Fatalf("owner not resolved on update result: %+v", updated.Owner)
	}
}

func TestUpdateGameMissing(t *testing.T) {
	s := newTestService(t)
	alice := seedUser(t, s, "alice@example.com", db.RoleUser)

	if _, err := s.UpdateGame(context.Background(), alice, 404, "Chess"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteGameIdempotent(t *testing.T) {
	s := newTestService(t)
	alice := seedUser(t, s, "alice@example.com", db.RoleUser)

	game := mustCreateGame(t, s, alice, "Chess")
	if err := s.DeleteGame(context.Background(), alice, game.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// Deleting an id that is already gone succeeds quietly, twice.
	if err := s.DeleteGame(context.Background(), alice, game.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if err := s.DeleteGame(context.Background(), alice, game.ID); err != nil {
		t.Fatalf("third delete: %v", err)
	}
}

func TestDeleteGameForbidden(t *testing.T) {
	s := newTestService(t)
	alice := seedUser(t, s, "alice@example.com", db.RoleUser)
	bob := seedUser(t, s, "bob@example.com", db.RoleUser)

	game := mustCreateGame(t, s, alice, "Chess")
	if err := s.DeleteGame(context.Background(), bob, game.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := s.GetGame(context.Background(), game.ID); err != nil {
		t.Fatalf("game should survive forbidden delete: %v", err)
	}
}

func TestDeleteGameBlockedByEntries(t *testing.T) {
	s := newTestService(t)
	alice := seedUser(t, s, "alice@example.com", db.RoleUser)

	game := mustCreateGame(t, s, alice, "Chess")
	mustCreateEntry(t, s, alice, EntryInput{Rank: 1200, Date: date(t, "2024-01-01"), GameID: game.ID})

	if err := s.DeleteGame(context.Background(), alice, game.ID); !IsValidation(err) {
		t.Fatalf("expected validation error while entries exist, got %v", err)
	}
	if _, err := s.GetGame(context.Background(), game.ID); err != nil {
		t.Fatalf("blocked delete must leave the game intact: %v", err)
	}

	entries, _, err := s.ListEntries(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if err := s.DeleteEntry(context.Background(), alice, entries[0].ID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if err := s.DeleteGame(context.Background(), alice, game.ID); err != nil {
		t.Fatalf("delete after clearing entries: %v", err)
	}
}

func TestListGamesPagination(t *testing.T) {
	s := newTestService(t)
	alice := seedUser(t, s, "alice@example.com", db.RoleUser)

	for _, name := range []string{"Chess", "Checkers", "Go", "Shogi", "Backgammon"} {
		mustCreateGame(t, s, alice, name)
	}

	games, total, err := s.ListGames(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}
	if len(games) != 2 {
		t.Fatalf("page size = %d, want 2", len(games))
	}
	if games[0].Name != "Go" || games[1].Name != "Shogi" {
		t.Fatalf("page 2 = %q, %q", games[0].Name, games[1].Name)
	}
	if games[0].Owner == nil || games[0].Owner.Email != "alice@example.com" {
		t.Fatalf("owner not resolved: %+v", games[0].Owner)
	}

	all, _, err := s.ListGames(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("unpaged list = %d games, want 5", len(all))
	}
}

func TestGameAuditTrail(t *testing.T) {
	s := newTestService(t)
	alice := seedUser(t, s, "alice@example.com", db.RoleUser)

	game := mustCreateGame(t, s, alice, "Chess")
	if _, err := s.UpdateGame(context.Background(), alice, game.ID, "Shogi"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.DeleteGame(context.Background(), alice, game.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var events []db.Event
	if err := s.db.Order("id").Find(&events).Error; err != nil {
		t.Fatalf("load events: %v", err)
	}
	types := make([]string, 0, len(events))
	for _, event := range events {
		types = append(types, event.Type)
	}
	want := []string{"game.created", "game.updated", "game.deleted"}
	if len(types) != len(want) {
		t.Fatalf("event types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("event types = %v, want %v", types, want)
		}
	}
}
