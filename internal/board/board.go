// Package board is the comment widget: it loads the comment list once,
// renders it, and prepends each comment the server accepts without
// fetching the list again.
package board

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"portfolio/internal/comments"
)

const (
	DefaultNoticeDelay = 3 * time.Second

	loadFailedMessage  = "Failed to load comments."
	emptyFieldsMessage = "Error: Name and message cannot be empty."
	submittedMessage   = "Comment submitted successfully!"
	dateLayout         = "2 January 2006"
)

var (
	ErrEmptyFields    = errors.New("name and message cannot be empty")
	ErrSubmitInFlight = errors.New("a comment is already being submitted")
)

// API is the part of the HTTP client the board talks to.
type API interface {
	ListComments(ctx context.Context) ([]comments.Comment, error)
	CreateComment(ctx context.Context, name, message string) (*comments.Comment, error)
}

type State int

const (
	StateLoading State = iota
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Snapshot is a copy of the widget state at one instant.
type Snapshot struct {
	State      State
	LoadError  string
	Comments   []comments.Comment
	Name       string
	Message    string
	Submitting bool
	Notice     string
}

type Option func(*Board)

// WithNoticeDelay sets how long a submit notice stays visible.
func WithNoticeDelay(d time.Duration) Option {
	return func(b *Board) { b.noticeDelay = d }
}

// WithLocation sets the zone dates are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(b *Board) { b.loc = loc }
}

type Board struct {
	api         API
	noticeDelay time.Duration
	loc         *time.Location

	loadOnce sync.Once
	loadErr  error

	mu         sync.Mutex
	state      State
	loadError  string
	items      []comments.Comment
	name       string
	message    string
	submitting bool
	notice     string
	noticeSeq  uint64
	timer      *time.Timer
}

func New(api API, opts ...Option) *Board {
	b := &Board{
		api:         api,
		noticeDelay: DefaultNoticeDelay,
		loc:         time.Local,
		state:       StateLoading,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load fetches the list. Only the first call issues a request; a failure
// is terminal and later calls return the same error.
func (b *Board) Load(ctx context.Context) error {
	b.loadOnce.Do(func() {
		items, err := b.api.ListComments(ctx)

		b.mu.Lock()
		defer b.mu.Unlock()
		if err != nil {
			b.state = StateError
			b.loadError = loadFailedMessage
			b.loadErr = fmt.Errorf("load comments: %w", err)
			return
		}
		// Anything submitted before the list arrived stays on top.
		b.items = append(b.items, items...)
		b.state = StateReady
	})
	return b.loadErr
}

func (b *Board) SetName(name string) {
	b.mu.Lock()
	b.name = name
	b.mu.Unlock()
}

func (b *Board) SetMessage(message string) {
	b.mu.Lock()
	b.message = message
	b.mu.Unlock()
}

// Submit posts the form. On success the record returned by the server is
// prepended and the form cleared; on failure the form keeps its contents.
func (b *Board) Submit(ctx context.Context) error {
	b.mu.Lock()
	if b.submitting {
		b.mu.Unlock()
		return ErrSubmitInFlight
	}
	if strings.TrimSpace(b.name) == "" || strings.TrimSpace(b.message) == "" {
		b.setNoticeLocked(emptyFieldsMessage)
		b.mu.Unlock()
		return ErrEmptyFields
	}
	name, message := b.name, b.message
	b.submitting = true
	b.clearNoticeLocked()
	b.mu.Unlock()

	created, err := b.api.CreateComment(ctx, name, message)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.submitting = false

	if err != nil {
		b.setNoticeLocked("Error: " + err.Error())
		return fmt.Errorf("submit comment: %w", err)
	}

	b.items = append([]comments.Comment{*created}, b.items...)
	b.name = ""
	b.message = ""
	b.setNoticeLocked(submittedMessage)
	return nil
}

func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := make([]comments.Comment, len(b.items))
	copy(items, b.items)
	return Snapshot{
		State:      b.state,
		LoadError:  b.loadError,
		Comments:   items,
		Name:       b.name,
		Message:    b.message,
		Submitting: b.submitting,
		Notice:     b.notice,
	}
}

// Close stops a pending notice timer.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearNoticeLocked()
}

func (b *Board) setNoticeLocked(text string) {
	b.clearNoticeLocked()
	b.notice = text
	seq := b.noticeSeq
	b.timer = time.AfterFunc(b.noticeDelay, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.noticeSeq == seq {
			b.notice = ""
			b.timer = nil
		}
	})
}

func (b *Board) clearNoticeLocked() {
	b.noticeSeq++
	b.notice = ""
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
