package server

import (
	"time"

	"rank-tracker/internal/db"
)

type userView struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

type gameView struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Owner     *userView `json:"owner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type entryView struct {
	ID          uint      `json:"id"`
	Rank        int       `json:"rank"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	Game        *gameView `json:"game,omitempty"`
	Owner       *userView `json:"owner,omitempty"`
	GameID      uint      `json:"game_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func viewUser(user *db.User) *userView {
	if user == nil {
		return nil
	}
	return &userView{ID: user.ID, Email: user.Email}
}

func viewGame(game *db.Game) *gameView {
	if game == nil {
		return nil
	}
	return &gameView{
		ID:        game.ID,
		Name:      game.Name,
		Owner:     viewUser(game.Owner),
		CreatedAt: game.CreatedAt,
	}
}

func viewGames(games []db.Game) []*gameView {
	views := make([]*gameView, 0, len(games))
	for i := range games {
		views = append(views, viewGame(&games[i]))
	}
	return views
}

func viewEntry(entry *db.RankEntry) *entryView {
	if entry == nil {
		return nil
	}
	return &entryView{
		ID:          entry.ID,
		Rank:        entry.Rank,
		Date:        entry.Date,
		Description: entry.Description,
		Game:        viewGame(entry.Game),
		Owner:       viewUser(entry.Owner),
		GameID:      entry.GameID,
		CreatedAt:   entry.CreatedAt,
	}
}

func viewEntries(entries []db.RankEntry) []*entryView {
	views := make([]*entryView, 0, len(entries))
	for i := range entries {
		views = append(views, viewEntry(&entries[i]))
	}
	return views
}
