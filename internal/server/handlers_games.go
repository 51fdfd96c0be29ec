package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type gameIDRequest struct {
	ID uint `uri:"id" binding:"required"`
}

type gameRequest struct {
	Name string `json:"name" binding:"required"`
}

var gameBindMessages = bindMessages{
	"Name": {
		"required": "name is required",
	},
}

func (s *Server) handleListGames(c *gin.Context) {
	page, perPage := parsePagination(c, s.cfg.DefaultPerPage, s.cfg.MaxPerPage)
	games, total, err := s.tracker.ListGames(c.Request.Context(), page, perPage)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"games":      viewGames(games),
		"pagination": buildPaginationData(page, perPage, total),
	})
}

func (s *Server) handleGetGame(c *gin.Context) {
	var req gameIDRequest
	if !bindURI(c, &req) {
		return
	}
	game, err := s.tracker.GetGame(c.Request.Context(), req.ID)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewGame(game))
}

func (s *Server) handleCreateGame(c *gin.Context) {
	var req gameRequest
	if !bindJSON(c, &req, gameBindMessages, "invalid game") {
		return
	}
	game, err := s.tracker.CreateGame(c.Request.Context(), actorFrom(c), req.Name)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, viewGame(game))
}

func (s *Server) handleUpdateGame(c *gin.Context) {
	var uri gameIDRequest
	if !bindURI(c, &uri) {
		return
	}
	var req gameRequest
	if !bindJSON(c, &req, gameBindMessages, "invalid game") {
		return
	}
	game, err := s.tracker.UpdateGame(c.Request.Context(), actorFrom(c), uri.ID, req.Name)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewGame(game))
}

func (s *Server) handleDeleteGame(c *gin.Context) {
	var uri gameIDRequest
	if !bindURI(c, &uri) {
		return
	}
	if err := s.tracker.DeleteGame(c.Request.Context(), actorFrom(c), uri.ID); err != nil {
		renderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
