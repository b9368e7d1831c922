package seed

import (
	"context"
	"fmt"

	"quay/internal/logger"
	"quay/internal/nav"
)

// Seeder performs the one-shot first-run import.
type Seeder struct {
	loader *Loader
	nav    *nav.Service
	logger logger.Logger
}

func NewSeeder(seedFile string, navSvc *nav.Service, log logger.Logger) *Seeder {
	return &Seeder{
		loader: NewLoader(seedFile),
		nav:    navSvc,
		logger: log,
	}
}

// Run imports the seed file when, and only when, neither data key exists yet.
// Existing data is never overwritten, even if it is empty.
func (s *Seeder) Run(ctx context.Context) error {
	empty, err := s.nav.IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing data: %w", err)
	}
	if !empty {
		s.logger.Debug("store already holds data, skipping seed import")
		return nil
	}

	f, err := s.loader.Load()
	if err != nil {
		return err
	}
	data, err := Map(f)
	if err != nil {
		return err
	}

	if err := s.nav.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save seed data: %w", err)
	}

	s.logger.Info("seed data imported",
		logger.Int("categories", len(data.Categories)),
		logger.Int("sites", len(data.Sites)))
	return nil
}
