package service

import (
	"context"

	"smartpan"
	"smartpan/internal/repository"
)

const (
	defaultReadingsLimit = 100
	maxReadingsLimit     = 1000
)

type ReadingsService struct {
	readingRepo repository.ReadingRepo
}

func NewReadingsService(readingRepo repository.ReadingRepo) *ReadingsService {
	return &ReadingsService{readingRepo: readingRepo}
}

// Recent returns up to limit readings, newest first. Out-of-range limits are
// clamped rather than rejected.
func (s *ReadingsService) Recent(ctx context.Context, limit int) ([]smartpan.Reading, error) {
	if limit <= 0 {
		limit = defaultReadingsLimit
	}
	if limit > maxReadingsLimit {
		limit = maxReadingsLimit
	}
	return s.readingRepo.Recent(ctx, limit)
}
