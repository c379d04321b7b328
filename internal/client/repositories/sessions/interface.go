package sessions

import (
	"context"
	"time"
)

// Session is what the CLI remembers after a successful second factor.
type Session struct {
	Endpoint    string
	PrincipalID string
	Email       string
	Role        string
	AccessToken string
	SavedAt     time.Time
}

type Repository interface {
	// Get returns (nil, nil) when no session exists for endpoint.
	Get(ctx context.Context, endpoint string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, endpoint string) error
	List(ctx context.Context) ([]Session, error)
}
