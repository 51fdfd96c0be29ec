package server

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"rank-tracker/internal/db"
	"rank-tracker/internal/policy"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const actorContextKey = "actor"

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var authBindMessages = bindMessages{
	"Email": {
		"required": "email is required",
		"email":    "email is invalid",
	},
	"Password": {
		"required": "password is required",
		"min":      "password must be at least 8 characters",
	},
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req, authBindMessages, "invalid registration") {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	user := db.User{Email: email, PasswordHash: string(hash), Role: db.RoleUser}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "email is already registered"})
			return
		}
		log.Printf("register failed email=%s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	s.sessions.SetUser(c.Writer, c.Request, user.ID)
	s.sessions.SetFlash(c.Writer, c.Request, "account created")
	log.Printf("user registered user_id=%d email=%s", user.ID, user.Email)
	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "email": user.Email, "role": user.Role})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, authBindMessages, "invalid login") {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Same response for unknown email and bad password.
	var user db.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	s.sessions.SetUser(c.Writer, c.Request, user.ID)
	s.sessions.SetFlash(c.Writer, c.Request, "signed in")
	log.Printf("user logged in user_id=%d email=%s", user.ID, user.Email)
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "email": user.Email, "role": user.Role})
}

func (s *Server) handleLogout(c *gin.Context) {
	s.sessions.Destroy(c.Writer, c.Request)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleMe(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	resp := gin.H{"id": user.ID, "email": user.Email, "role": user.Role}
	// One-shot notice set by register/login; gone after the first read.
	if flash := s.sessions.PopFlash(c.Writer, c.Request); flash != "" {
		resp["flash"] = flash
	}
	c.JSON(http.StatusOK, resp)
}

// requireAuth resolves the session into an actor and aborts with 401
// when there is none. The actor is stashed on the gin context for the
// handlers behind it.
func (s *Server) requireAuth(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.Set(actorContextKey, policy.Actor{ID: user.ID, Role: user.Role})
	c.Next()
}

func (s *Server) currentUser(c *gin.Context) (*db.User, bool) {
	userID := s.sessions.UserID(c.Writer, c.Request)
	if userID == 0 {
		return nil, false
	}
	var user db.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, false
	}
	return &user, true
}

func actorFrom(c *gin.Context) policy.Actor {
	value, ok := c.Get(actorContextKey)
	if !ok {
		return policy.Actor{}
	}
	actor, _ := value.(policy.Actor)
	return actor
}

// SeedAdmin promotes the configured admin account if it exists. Called
// at startup; registration itself always hands out the user role.
func SeedAdmin(conn *gorm.DB, email string) error {
	if email == "" {
		return nil
	}
	email = strings.ToLower(strings.TrimSpace(email))
	result := conn.Model(&db.User{}).Where("email = ? AND role <> ?", email, db.RoleAdmin).Update("role", db.RoleAdmin)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("admin role granted email=%s", email)
	}
	return nil
}
