// Package user holds the user records served by the protected operation.
package user

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned when no user has the requested id
var ErrNotFound = errors.New("user not found")

// User is a stored user record
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Store provides read access to user records
type Store interface {
	ListUsers(ctx context.Context) ([]User, error)
	FindUser(ctx context.Context, id int64) (User, error)
}

// MemoryStore is an in-memory Store. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	users []User
}

// NewMemoryStore returns a store holding a copy of users in the given order
func NewMemoryStore(users ...User) *MemoryStore {
	return &MemoryStore{users: append([]User(nil), users...)}
}

// SeedUsers returns the default records: one admin and one regular user
func SeedUsers() []User {
	return []User{
		{ID: 1, Username: "admin1", Role: "admin"},
		{ID: 2, Username: "bob", Role: "user"},
	}
}

// ListUsers returns a copy of every user, in insertion order
func (s *MemoryStore) ListUsers(ctx context.Context) ([]User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return append(make([]User, 0, len(s.users)), s.users...), nil
}

// FindUser returns the user with the given id or ErrNotFound
func (s *MemoryStore) FindUser(ctx context.Context, id int64) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}
