package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/storeline/storefront-api/internal/domains/retailers/domain"
	"github.com/storeline/storefront-api/internal/domains/retailers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory retailer persistence adapter.
type Repository struct {
	mu        sync.RWMutex
	retailers map[string]*domain.Retailer
	byUser    map[string]string
}

func NewRepository() *Repository {
	return &Repository{
		retailers: map[string]*domain.Retailer{},
		byUser:    map[string]string{},
	}
}

func (r *Repository) Create(_ context.Context, retailer *domain.Retailer) (*domain.Retailer, error) {
	if retailer == nil {
		return nil, errors.New("retailer is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUser[retailer.UserID]; ok {
		return nil, ports.ErrUserAlreadyRegistered
	}
	clone := *retailer
	if clone.ID == "" {
		clone.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.retailers[clone.ID] = &clone
	r.byUser[clone.UserID] = clone.ID
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Retailer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	retailer, ok := r.retailers[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *retailer
	return &clone, nil
}

func (r *Repository) GetByUserID(_ context.Context, userID string) (*domain.Retailer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUser[userID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *r.retailers[id]
	return &clone, nil
}

func (r *Repository) Update(_ context.Context, retailer *domain.Retailer) (*domain.Retailer, error) {
	if retailer == nil {
		return nil, errors.New("retailer is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.retailers[retailer.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *retailer
	clone.CreatedAt = existing.CreatedAt
	clone.UpdatedAt = time.Now().UTC()
	r.retailers[clone.ID] = &clone
	out := clone
	return &out, nil
}
