package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"memberlist/internal/member/models"
	"memberlist/pkg/platform/sentinel"
)

// InMemory keeps members in a mutex-guarded map. It favors clarity over
// performance and is the default backend when no database is configured.
type InMemory struct {
	mu      sync.RWMutex
	members map[int64]*models.Member
	nextID  int64
	clock   Clock
}

// InMemoryOption configures an InMemory store.
type InMemoryOption func(*InMemory)

// WithClock sets the clock used for timestamp assignment.
func WithClock(clock Clock) InMemoryOption {
	return func(s *InMemory) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewInMemory constructs an empty in-memory member store.
func NewInMemory(opts ...InMemoryOption) *InMemory {
	s := &InMemory{
		members: make(map[int64]*models.Member),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save inserts or updates a member. The active-email uniqueness check and the
// write happen under one lock, mirroring the database's partial unique index.
func (s *InMemory) Save(_ context.Context, member *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !member.IsDeleted {
		for id, existing := range s.members {
			if id != member.ID && existing.IsActive() && existing.Email == member.Email {
				return sentinel.ErrAlreadyUsed
			}
		}
	}

	now := s.clock()
	if !member.IsPersisted() {
		s.nextID++
		member.ID = s.nextID
		member.CreatedAt = now
	}
	member.UpdatedAt = now

	s.members[member.ID] = cloneMember(member)
	return nil
}

// FindByID returns a member regardless of its deletion state.
func (s *InMemory) FindByID(_ context.Context, id int64) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if member, ok := s.members[id]; ok {
		return cloneMember(member), nil
	}
	return nil, sentinel.ErrNotFound
}

// FindByEmail returns the active member holding the given email.
func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, member := range s.members {
		if member.IsActive() && member.Email == email {
			return cloneMember(member), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// FindAllActive returns active members ordered by descending creation time.
func (s *InMemory) FindAllActive(_ context.Context) ([]*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]*models.Member, 0, len(s.members))
	for _, member := range s.members {
		if member.IsActive() {
			active = append(active, cloneMember(member))
		}
	}
	sort.Slice(active, func(i, j int) bool {
		if !active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].CreatedAt.After(active[j].CreatedAt)
		}
		// Ties fall back to insertion order, newest first.
		return active[i].ID > active[j].ID
	})
	return active, nil
}

// ExistsActiveByEmail reports whether an active member holds the email.
func (s *InMemory) ExistsActiveByEmail(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, member := range s.members {
		if member.IsActive() && member.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// MarkDeleted flags the member as logically deleted and persists the change.
func (s *InMemory) MarkDeleted(_ context.Context, member *models.Member) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.members[member.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	now := s.clock()
	stored.Delete()
	stored.UpdatedAt = now

	member.Delete()
	member.UpdatedAt = now
	return nil
}

// cloneMember copies a member including its optional fields so callers never
// alias store-internal state.
func cloneMember(m *models.Member) *models.Member {
	clone := *m
	clone.Position = cloneString(m.Position)
	clone.Location = cloneString(m.Location)
	clone.ProfileImageURL = cloneString(m.ProfileImageURL)
	clone.SelfIntroduction = cloneString(m.SelfIntroduction)
	return &clone
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
