package service

import (
	"context"
	"errors"
	"sync"

	"emoticon-rest-api/internal/cache"
	"emoticon-rest-api/internal/model"
	"emoticon-rest-api/internal/repository"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// fakeUserRepo is an in-memory repository.UserRepository.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*model.User
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, username, passwordHash string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.users[username]; ok {
		return nil, repository.ErrDuplicateUsername
	}
	r.nextID++
	u := &model.User{ID: r.nextID, Username: username, PasswordHash: passwordHash}
	r.users[username] = u
	return u, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Ping(ctx context.Context) error { return nil }
func (r *fakeUserRepo) Close() error                   { return nil }

// countingStore wraps a MemoryStore and counts calls.
type countingStore struct {
	*cache.MemoryStore
	mu     sync.Mutex
	gets   int
	sets   int
	getErr error
	setErr error
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: cache.NewMemoryStore()}
}

func (s *countingStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	s.gets++
	getErr := s.getErr
	s.mu.Unlock()
	if getErr != nil {
		return nil, getErr
	}
	return s.MemoryStore.Get(ctx, key)
}

func (s *countingStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.sets++
	setErr := s.setErr
	s.mu.Unlock()
	if setErr != nil {
		return setErr
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *countingStore) calls() (gets, sets int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets, s.sets
}

// fakeFetcher returns canned bytes per username.
type fakeFetcher struct {
	mu     sync.Mutex
	images map[string][]byte
	err    error
	calls  int
}

func (f *fakeFetcher) Fetch(ctx context.Context, username string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	img, ok := f.images[username]
	if !ok {
		return nil, errors.New("incorrect url")
	}
	return img, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
