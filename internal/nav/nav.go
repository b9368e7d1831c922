// Package nav reads and writes the navigation data set.
package nav

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"quay/internal/domain"
	"quay/internal/logger"
	"quay/internal/store"
)

type Service struct {
	kv     store.KV
	logger logger.Logger
}

func NewService(kv store.KV, log logger.Logger) *Service {
	return &Service{kv: kv, logger: log}
}

// Get returns the stored categories and sites. It never fails outward: an
// absent key or a malformed blob degrades to an empty collection so the
// public page always renders.
func (s *Service) Get(ctx context.Context) domain.Data {
	data := domain.Empty()

	if raw, err := s.kv.Get(ctx, store.KeyCategories); err == nil {
		var categories []string
		if err := json.Unmarshal([]byte(raw), &categories); err != nil {
			s.logger.Warn("malformed categories blob, serving empty", logger.Error(err))
		} else if categories != nil {
			data.Categories = categories
		}
	}

	if raw, err := s.kv.Get(ctx, store.KeySites); err == nil {
		var sites []domain.Site
		if err := json.Unmarshal([]byte(raw), &sites); err != nil {
			s.logger.Warn("malformed sites blob, serving empty", logger.Error(err))
		} else if sites != nil {
			data.Sites = sites
		}
	}

	return data
}

// Save replaces both collections wholesale. The two keys are written in one
// atomic PutMulti so a failure cannot leave categories and sites from
// different snapshots.
func (s *Service) Save(ctx context.Context, data domain.Data) error {
	if data.Categories == nil {
		data.Categories = []string{}
	}
	if data.Sites == nil {
		data.Sites = []domain.Site{}
	}

	categories, err := json.Marshal(data.Categories)
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}
	sites, err := json.Marshal(data.Sites)
	if err != nil {
		return fmt.Errorf("failed to encode sites: %w", err)
	}

	if err := s.kv.PutMulti(ctx, map[string]string{
		store.KeyCategories: string(categories),
		store.KeySites:      string(sites),
	}); err != nil {
		return fmt.Errorf("failed to save data: %w", err)
	}

	s.logger.Info("data saved",
		logger.Int("categories", len(data.Categories)),
		logger.Int("sites", len(data.Sites)))
	return nil
}

// IsEmpty reports whether neither data key exists yet. The seeder uses it to
// decide whether a first-run import is safe.
func (s *Service) IsEmpty(ctx context.Context) (bool, error) {
	for _, key := range []string{store.KeyCategories, store.KeySites} {
		_, err := s.kv.Get(ctx, key)
		switch {
		case err == nil:
			return false, nil
		case errors.Is(err, store.ErrNotFound):
		default:
			return false, err
		}
	}
	return true, nil
}
