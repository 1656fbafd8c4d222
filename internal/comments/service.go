package comments

import (
	"context"
	"fmt"
	"time"
)

// Store is the persistent, append-only comment collection.
type Store interface {
	// List returns every comment, most recent first.
	List(ctx context.Context) ([]Comment, error)
	// Insert persists c and returns it with its store-assigned ID.
	Insert(ctx context.Context, c Comment) (Comment, error)
}

// Pinger is implemented by stores that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Service interface {
	List(ctx context.Context) ([]Comment, error)
	Create(ctx context.Context, req CreateCommentRequest) (*Comment, error)
}

type service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) Service {
	return &service{store: store, now: time.Now}
}

func (s *service) List(ctx context.Context) ([]Comment, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if out == nil {
		out = []Comment{}
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, req CreateCommentRequest) (*Comment, error) {
	name, message, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	// Millisecond precision is what the document store keeps, so the record
	// returned here matches the one a later List reads back.
	c := Comment{
		Name:      name,
		Message:   message,
		Timestamp: s.now().UTC().Truncate(time.Millisecond),
	}

	created, err := s.store.Insert(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &created, nil
}
