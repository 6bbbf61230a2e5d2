// Package poll owns the poll collection and keeps it in step with the
// persisted snapshot. Every accepted mutation rewrites the full snapshot
// under Key before the in-memory collection changes.
package poll

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/idilsaglam/poll/internal/model"
	"github.com/idilsaglam/poll/internal/store"
)

// Key is the slot holding the snapshot.
const Key = "polls"

type Store struct {
	mu        sync.Mutex
	backend   store.Backend
	log       *slog.Logger
	now       func() time.Time
	polls     []model.Poll
	lastID    int64
	recovered error
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithClock replaces time.Now for id assignment.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open loads the snapshot from b. A missing, unparsable or malformed
// snapshot starts an empty collection; the reason is logged and kept for
// Recovered. Only a failing backend read is returned as an error.
func Open(b store.Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend: b,
		log:     slog.Default(),
		now:     time.Now,
		polls:   []model.Poll{},
	}
	for _, o := range opts {
		o(s)
	}

	raw, ok, err := b.Read(Key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", Key, err)
	}
	if !ok {
		s.log.Debug("no stored polls, starting empty")
		return s, nil
	}
	polls, err := decodeSnapshot(raw)
	if err != nil {
		s.recovered = err
		s.log.Warn("discarding unreadable poll snapshot", "error", err)
		return s, nil
	}
	s.polls = polls
	for _, p := range polls {
		s.lastID = max(s.lastID, p.ID)
	}
	s.log.Debug("loaded polls", "count", len(polls))
	return s, nil
}

// Recovered returns why the stored snapshot was discarded at Open, or nil.
func (s *Store) Recovered() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recovered
}

// Polls returns a copy of the collection in creation order.
func (s *Store) Polls() []model.Poll {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Poll, len(s.polls))
	for i, p := range s.polls {
		out[i] = p.Clone()
	}
	return out
}

// Poll returns a copy of the poll with the given id.
func (s *Store) Poll(id int64) (model.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return model.Poll{}, fmt.Errorf("%w: %d", ErrPollNotFound, id)
	}
	return s.polls[i].Clone(), nil
}

// CreatePoll validates and appends a new poll with all counters at zero.
// Names are stored trimmed. Rejected input returns a *ValidationError and
// leaves everything untouched.
func (s *Store) CreatePoll(name string, options []string) (model.Poll, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Poll{}, invalid("poll name is required")
	}
	if len(options) == 0 {
		return model.Poll{}, invalid("at least one option is required")
	}
	opts := make([]model.Option, len(options))
	for i, o := range options {
		o = strings.TrimSpace(o)
		if o == "" {
			return model.Poll{}, invalid("option %d is empty", i+1)
		}
		opts[i] = model.Option{Name: o}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := model.Poll{ID: s.nextID(), Name: name, Options: opts}
	next := make([]model.Poll, len(s.polls), len(s.polls)+1)
	copy(next, s.polls)
	next = append(next, p)

	if err := s.persist(next); err != nil {
		return model.Poll{}, err
	}
	s.polls = next
	s.log.Info("poll created", "id", p.ID, "name", p.Name, "options", len(p.Options))
	return p.Clone(), nil
}

// CastVote adds one vote to option optionIndex (0-based) of poll pollID.
// Unknown targets return ErrPollNotFound or ErrOptionNotFound.
func (s *Store) CastVote(pollID int64, optionIndex int) (model.Poll, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(pollID)
	if i < 0 {
		return model.Poll{}, fmt.Errorf("%w: %d", ErrPollNotFound, pollID)
	}
	if optionIndex < 0 || optionIndex >= len(s.polls[i].Options) {
		return model.Poll{}, fmt.Errorf("%w: poll %d has no option %d", ErrOptionNotFound, pollID, optionIndex)
	}

	next := make([]model.Poll, len(s.polls))
	copy(next, s.polls)
	voted := s.polls[i].Clone()
	voted.Options[optionIndex].Votes++
	next[i] = voted

	if err := s.persist(next); err != nil {
		return model.Poll{}, err
	}
	s.polls = next
	s.log.Debug("vote cast", "poll", pollID, "option", optionIndex)
	return voted.Clone(), nil
}

func (s *Store) persist(polls []model.Poll) error {
	raw, err := encodeSnapshot(polls)
	if err != nil {
		return err
	}
	if err := s.backend.Write(Key, raw); err != nil {
		s.log.Error("persist polls failed", "error", err)
		return fmt.Errorf("persist polls: %w", err)
	}
	return nil
}

// nextID derives ids from the clock in milliseconds, bumped past the
// highest id seen so ids never repeat even if the clock goes backwards.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) indexOf(id int64) int {
	for i := range s.polls {
		if s.polls[i].ID == id {
			return i
		}
	}
	return -1
}
