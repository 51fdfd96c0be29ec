package server

import (
	"net/http"

	"rank-tracker/internal/config"
	"rank-tracker/internal/tracker"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	db       *gorm.DB
	cfg      config.Config
	tracker  *tracker.Service
	sessions *sessionStore
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	return &Server{
		db:       conn,
		cfg:      cfg,
		tracker:  tracker.New(conn),
		sessions: newSessionStore(conn),
	}
}

// Router wires every route. All /api routes require an authenticated
// session; the services re-check the actor on every mutation anyway.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := r.Group("/auth")
	auth.POST("/register", s.handleRegister)
	auth.POST("/login", s.handleLogin)
	auth.POST("/logout", s.handleLogout)
	auth.GET("/me", s.handleMe)

	api := r.Group("/api", s.requireAuth)
	api.GET("/games", s.handleListGames)
	api.POST("/games", s.handleCreateGame)
	api.GET("/games/:id", s.handleGetGame)
	api.PUT("/games/:id", s.handleUpdateGame)
	api.DELETE("/games/:id", s.handleDeleteGame)

	api.GET("/entries", s.handleListEntries)
	api.POST("/entries", s.handleCreateEntry)
	api.GET("/entries/:id", s.handleGetEntry)
	api.PUT("/entries/:id", s.handleUpdateEntry)
	api.DELETE("/entries/:id", s.handleDeleteEntry)

	api.GET("/dashboard", s.handleDashboard)
	api.GET("/progression", s.handleProgression)

	return r
}
