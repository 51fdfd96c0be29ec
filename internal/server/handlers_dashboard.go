package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type progressionQuery struct {
	GameID uint `form:"game_id" binding:"required"`
	UserID uint `form:"user_id"`
}

var progressionBindMessages = bindMessages{
	"GameID": {
		"required": "game_id is required",
	},
}

func (s *Server) handleDashboard(c *gin.Context) {
	data, err := s.tracker.Dashboard(c.Request.Context(), actorFrom(c))
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total_games":    data.TotalGames,
		"total_entries":  data.TotalEntries,
		"recent_entries": viewEntries(data.RecentEntries),
	})
}

func (s *Server) handleProgression(c *gin.Context) {
	var query progressionQuery
	if !bindQuery(c, &query, progressionBindMessages, "invalid progression query") {
		return
	}
	userID := query.UserID
	if userID == 0 {
		userID = actorFrom(c).ID
	}
	points, err := s.tracker.RankProgression(c.Request.Context(), userID, query.GameID)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id": userID,
		"game_id": query.GameID,
		"points":  points,
	})
}
