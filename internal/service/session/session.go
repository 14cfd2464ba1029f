package session_service

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInternal  = errors.New("internal error")
	ErrNoSession = errors.New("no such session")
)

// Session binds an issued token to a participant identity inside one
// room. It replaces nothing in the room itself: rooms never learn about
// tokens, they only see participant ids.
type Session struct {
	RoomCode      string `json:"room_code"`
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	IsAdmin       bool   `json:"is_admin"`
}

type SessionCache interface {
	Set(key string, value string, ttl time.Duration) error
	Get(key string) (string, error)
}

type Service struct {
	sessionCache SessionCache
	ttl          time.Duration
}

func New(
	sessionCache SessionCache,
	ttl *time.Duration,
) *Service {
	if ttl == nil {
		ttl = func() *time.Duration {
			defaultSessionTTL := time.Hour * 24
			return &defaultSessionTTL
		}()
	}

	return &Service{
		sessionCache: sessionCache,
		ttl:          *ttl,
	}
}

// Issue stores the session under a fresh opaque token and returns it.
func (s *Service) Issue(session Session) (string, error) {
	raw, err := json.Marshal(session)
	if err != nil {
		return "", errors.Join(ErrInternal, err)
	}

	t := s.genToken()
	if err := s.sessionCache.Set(t, string(raw), s.ttl); err != nil {
		return "", errors.Join(ErrInternal, err)
	}

	return t, nil
}

// Resolve maps a token back to its session. Unknown or expired tokens
// are an everyday condition, signaled as ErrNoSession.
func (s *Service) Resolve(token string) (Session, error) {
	raw, err := s.sessionCache.Get(token)
	if err != nil {
		return Session{}, errors.Join(ErrInternal, err)
	}
	if raw == "" {
		return Session{}, ErrNoSession
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return Session{}, errors.Join(ErrInternal, err)
	}

	return session, nil
}

func (s *Service) genToken() string {
	return uuid.New().String()
}
