package model

import (
	"context"
	"fmt"
	"sync"

	"github.com/hptimes-code/ai-crop-yield-prediction/internal/domain"
)

// Store holds the fitted model per crop type. Entries are replaced
// wholesale under the lock, so a concurrent reader sees either the old or
// the new scaler+forest pair, never a hybrid.
type Store struct {
	mu     sync.RWMutex
	models map[domain.CropType]*TrainedModel
}

// NewStore creates an empty model store.
func NewStore() *Store {
	return &Store{models: make(map[domain.CropType]*TrainedModel)}
}

// Get returns the fitted model for a crop. ErrUnsupportedCrop for crops
// outside the recognized set, ErrModelNotReady before training completes.
func (s *Store) Get(crop domain.CropType) (*TrainedModel, error) {
	if _, err := domain.ProfileFor(crop); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.models[crop]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrModelNotReady, crop)
	}
	return m, nil
}

// Put replaces the stored model for a crop.
func (s *Store) Put(crop domain.CropType, m *TrainedModel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models[crop] = m
}

// CheckReadiness returns nil once every supported crop has a trained model,
// or an error naming the first crop that is still missing one.
func (s *Store) CheckReadiness(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, crop := range domain.CropTypes() {
		if _, ok := s.models[crop]; !ok {
			return fmt.Errorf("%w: %s", domain.ErrModelNotReady, crop)
		}
	}
	return nil
}
