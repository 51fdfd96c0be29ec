package server

import (
	"net/http"
	"time"

	"rank-tracker/internal/tracker"

	"github.com/gin-gonic/gin"
)

type entryIDRequest struct {
	ID uint `uri:"id" binding:"required"`
}

type entryRequest struct {
	Rank        int       `json:"rank" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	Description string    `json:"description"`
	GameID      uint      `json:"game_id" binding:"required"`
}

var entryBindMessages = bindMessages{
	"Rank": {
		"required": "rank is required",
	},
	"Date": {
		"required": "date is required",
	},
	"GameID": {
		"required": "you must select a game",
	},
}

func (r entryRequest) input() tracker.EntryInput {
	return tracker.EntryInput{
		Rank:        r.Rank,
		Date:        r.Date,
		Description: r.Description,
		GameID:      r.GameID,
	}
}

func (s *Server) handleListEntries(c *gin.Context) {
	page, perPage := parsePagination(c, s.cfg.DefaultPerPage, s.cfg.MaxPerPage)
	entries, total, err := s.tracker.ListEntries(c.Request.Context(), page, perPage)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"entries":    viewEntries(entries),
		"pagination": buildPaginationData(page, perPage, total),
	})
}

func (s *Server) handleGetEntry(c *gin.Context) {
	var uri entryIDRequest
	if !bindURI(c, &uri) {
		return
	}
	entry, err := s.tracker.GetEntry(c.Request.Context(), uri.ID)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewEntry(entry))
}

func (s *Server) handleCreateEntry(c *gin.Context) {
	var req entryRequest
	if !bindJSON(c, &req, entryBindMessages, "invalid rank entry") {
		return
	}
	entry, err := s.tracker.CreateEntry(c.Request.Context(), actorFrom(c), req.input())
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewEntry(entry))
}

func (s *Server) handleUpdateEntry(c *gin.Context) {
	var uri entryIDRequest
	if !bindURI(c, &uri) {
		return
	}
	var req entryRequest
	if !bindJSON(c, &req, entryBindMessages, "invalid rank entry") {
		return
	}
	entry, err := s.tracker.UpdateEntry(c.Request.Context(), actorFrom(c), uri.ID, req.input())
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewEntry(entry))
}

func (s *Server) handleDeleteEntry(c *gin.Context) {
	var uri entryIDRequest
	if !bindURI(c, &uri) {
		return
	}
	if err := s.tracker.DeleteEntry(c.Request.Context(), actorFrom(c), uri.ID); err != nil {
		renderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
