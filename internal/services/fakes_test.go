package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/isdelr/meetings/internal/models"
	"github.com/isdelr/meetings/internal/store"
)

type memUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]models.User
	err    error
	calls  int
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]models.User)}
}

func (s *memUserStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return models.User{}, s.err
	}
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, store.ErrNotFound
}

func (s *memUserStore) FindByID(ctx context.Context, id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return models.User{}, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return models.User{}, store.ErrNotFound
	}
	return u, nil
}

func (s *memUserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return models.User{}, s.err
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return models.User{}, store.ErrDuplicateEmail
		}
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	return user, nil
}

func (s *memUserStore) CountByEmail(ctx context.Context, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	n := 0
	for _, u := range s.users {
		if u.Email == email {
			n++
		}
	}
	return n, nil
}

type memMeetingStore struct {
	mu       sync.Mutex
	nextID   int64
	meetings map[int64]models.Meeting
	err      error
	calls    int
}

func newMemMeetingStore() *memMeetingStore {
	return &memMeetingStore{meetings: make(map[int64]models.Meeting)}
}

func (s *memMeetingStore) Create(ctx context.Context, meeting models.Meeting) (models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return models.Meeting{}, s.err
	}
	s.nextID++
	meeting.ID = s.nextID
	s.meetings[meeting.ID] = meeting
	return meeting, nil
}

func (s *memMeetingStore) FindByID(ctx context.Context, id int64) (models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return models.Meeting{}, s.err
	}
	m, ok := s.meetings[id]
	if !ok {
		return models.Meeting{}, store.ErrNotFound
	}
	return m, nil
}

func (s *memMeetingStore) Update(ctx context.Context, id int64, fields models.MeetingFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return s.err
	}
	m, ok := s.meetings[id]
	if !ok {
		return store.ErrNotFound
	}
	m.Apply(fields)
	s.meetings[id] = m
	return nil
}

func (s *memMeetingStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return s.err
	}
	if _, ok := s.meetings[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.meetings, id)
	return nil
}

func (s *memMeetingStore) ListAll(ctx context.Context) ([]models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Meeting, 0, len(s.meetings))
	for _, m := range s.meetings {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
