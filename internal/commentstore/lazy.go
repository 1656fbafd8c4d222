package commentstore

import (
	"context"
	"fmt"
	"sync"

	"portfolio/internal/comments"
)

// Backend is a comment store that owns a connection.
type Backend interface {
	comments.Store
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Opener connects a Backend.
type Opener func(ctx context.Context) (Backend, error)

// Lazy connects its backend on first use and hands the same connection to
// every later call. Callers arriving while a connect is in flight wait for
// that attempt or their own context, whichever ends first. A failed connect
// is not remembered; the next call dials again.
type Lazy struct {
	open Opener

	mu      sync.Mutex
	backend Backend
	attempt *dialAttempt
}

type dialAttempt struct {
	done    chan struct{}
	backend Backend
	err     error
}

func NewLazy(open Opener) *Lazy {
	return &Lazy{open: open}
}

func (l *Lazy) get(ctx context.Context) (Backend, error) {
	l.mu.Lock()
	if l.backend != nil {
		b := l.backend
		l.mu.Unlock()
		return b, nil
	}
	if a := l.attempt; a != nil {
		l.mu.Unlock()
		select {
		case <-a.done:
			return a.backend, a.err
		case <-ctx.Done():
			return nil, fmt.Errorf("connect comment store: %w", ctx.Err())
		}
	}
	a := &dialAttempt{done: make(chan struct{})}
	l.attempt = a
	l.mu.Unlock()

	defer close(a.done)

	b, err := l.open(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempt = nil
	if err != nil {
		a.err = fmt.Errorf("connect comment store: %w", err)
		return nil, a.err
	}
	a.backend = b
	l.backend = b
	return b, nil
}

func (l *Lazy) List(ctx context.Context) ([]comments.Comment, error) {
	b, err := l.get(ctx)
	if err != nil {
		return nil, err
	}
	return b.List(ctx)
}

func (l *Lazy) Insert(ctx context.Context, c comments.Comment) (comments.Comment, error) {
	b, err := l.get(ctx)
	if err != nil {
		return comments.Comment{}, err
	}
	return b.Insert(ctx, c)
}

func (l *Lazy) Ping(ctx context.Context) error {
	b, err := l.get(ctx)
	if err != nil {
		return err
	}
	return b.Ping(ctx)
}

// Close releases the connection if one was opened.
func (l *Lazy) Close(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.backend == nil {
		return nil
	}
	err := l.backend.Close(ctx)
	l.backend = nil
	return err
}

// OpenerFor returns the Opener for the named backend: mongo, postgres or memory.
func OpenerFor(kind, mongoURI, mongoDatabase, databaseURL string) (Opener, error) {
	switch kind {
	case "", "mongo", "mongodb":
		return func(ctx context.Context) (Backend, error) {
			return ConnectMongo(ctx, mongoURI, mongoDatabase)
		}, nil
	case "postgres", "postgresql":
		return func(ctx context.Context) (Backend, error) {
			return ConnectPostgres(ctx, databaseURL)
		}, nil
	case "memory":
		mem := NewMemory()
		return func(ctx context.Context) (Backend, error) {
			return mem, nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown comment store %q", kind)
	}
}
