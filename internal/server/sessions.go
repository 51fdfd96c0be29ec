package server

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"sync"
	"time"

	"rank-tracker/internal/db"

	"gorm.io/gorm"
)

const sessionCookie = "rt_session"

// sessionStore keeps login state and one-shot flash messages keyed by a
// cookie token. Sessions live in the database; without a connection it
// falls back to an in-process map (tests).
type sessionStore struct {
	db       *gorm.DB
	mu       sync.Mutex
	sessions map[string]sessionData
}

type sessionData struct {
	UserID uint
	Flash  string
}

func newSessionStore(conn *gorm.DB) *sessionStore {
	return &sessionStore{
		db:       conn,
		sessions: make(map[string]sessionData),
	}
}

func (s *sessionStore) SetUser(w http.ResponseWriter, r *http.Request, userID uint) {
	id := s.ensureSessionID(w, r)
	s.update(id, func(data *sessionData) {
		data.UserID = userID
	})
}

func (s *sessionStore) UserID(w http.ResponseWriter, r *http.Request) uint {
	id := s.ensureSessionID(w, r)
	return s.read(id).UserID
}

// Destroy removes the session row entirely; used on logout.
func (s *sessionStore) Destroy(w http.ResponseWriter, r *http.Request) {
	id := s.ensureSessionID(w, r)
	if s.db == nil {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return
	}
	_ = s.db.Where("id = ?", id).Delete(&db.Session{}).Error
}

func (s *sessionStore) SetFlash(w http.ResponseWriter, r *http.Request, message string) {
	if message == "" {
		return
	}
	id := s.ensureSessionID(w, r)
	s.update(id, func(data *sessionData) {
		data.Flash = message
	})
}

func (s *sessionStore) PopFlash(w http.ResponseWriter, r *http.Request) string {
	id := s.ensureSessionID(w, r)
	message := s.read(id).Flash
	if message == "" {
		return ""
	}
	s.update(id, func(data *sessionData) {
		data.Flash = ""
	})
	return message
}

func (s *sessionStore) read(id string) sessionData {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.sessions[id]
	}
	var record db.Session
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		return sessionData{}
	}
	return sessionData{UserID: record.UserID, Flash: record.Flash}
}

func (s *sessionStore) update(id string, apply func(*sessionData)) {
	if s.db == nil {
		s.mu.Lock()
		data := s.sessions[id]
		apply(&data)
		s.sessions[id] = data
		s.mu.Unlock()
		return
	}
	var record db.Session
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		record = db.Session{ID: id}
	}
	data := sessionData{UserID: record.UserID, Flash: record.Flash}
	apply(&data)
	record.UserID = data.UserID
	record.Flash = data.Flash
	_ = s.db.Save(&record).Error
}

func (s *sessionStore) ensureSessionID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(sessionCookie)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}
	id := newSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	// Later session calls within the same request must see the same id.
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: id})
	return id
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("sess-%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%x", buf)
}
