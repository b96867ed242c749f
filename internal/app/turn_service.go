package app

import (
	"context"
	"errors"

	"trivia-dialogue-service/internal/domain"
	"trivia-dialogue-service/internal/engine"
)

// SessionStore abstracts how dialogue sessions persist between turns
// (in-memory, Redis, etc). Get returns domain.ErrNoSession when no session
// exists for the id.
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, sess *domain.Session) error
	Delete(ctx context.Context, id string) error
}

// TurnEngine executes one pre-classified action against a session.
type TurnEngine interface {
	HandleTurn(ctx context.Context, req engine.Request) engine.Response
}

// TurnService is the per-turn use case: load or create the session, run the
// turn, and persist or discard the session depending on how the turn ended.
type TurnService struct {
	sessions SessionStore
	engine   TurnEngine
}

func NewTurnService(sessions SessionStore, eng TurnEngine) *TurnService {
	return &TurnService{sessions: sessions, engine: eng}
}

// HandleTurn runs one turn for the given session id. A missing session is
// created fresh; a turn that ends the conversation deletes it.
func (s *TurnService) HandleTurn(ctx context.Context, sessionID string, req engine.Request) (engine.Response, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	switch {
	case errors.Is(err, domain.ErrNoSession):
		sess = &domain.Session{ID: sessionID, QuestionNumber: 1}
	case err != nil:
		return engine.Response{}, err
	}

	req.Session = sess
	resp := s.engine.HandleTurn(ctx, req)

	if resp.EndConversation {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			return resp, err
		}
		return resp, nil
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return resp, err
	}
	return resp, nil
}
