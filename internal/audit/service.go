package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Repository provides storage for audit events.
type Repository interface {
	InsertEvent(ctx context.Context, event Event) error
	TimelineWindow(ctx context.Context, filters TimelineFilters, offset, limit int) ([]Event, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Service records authorization outcomes and serves the audit timeline.
// Recording is best effort: a storage failure is logged and never surfaces
// to the decision path.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs an audit service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Record persists the event, filling id and timestamp. Safe to call on a nil
// receiver so that callers need no wiring guards.
func (s *Service) Record(ctx context.Context, event Event) {
	if s == nil || s.repo == nil {
		return
	}
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	if err := s.repo.InsertEvent(ctx, event); err != nil {
		s.logger.Warn("audit record", slog.Any("error", err))
	}
}

// Timeline fetches events with paging. Page size is clamped to [1, 50].
func (s *Service) Timeline(ctx context.Context, filters TimelineFilters) (Result, error) {
	pageSize := filters.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 50 {
		pageSize = 50
	}
	page := filters.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * pageSize

	rows, err := s.repo.TimelineWindow(ctx, filters, offset, pageSize+1)
	if err != nil {
		return Result{}, err
	}
	hasNext := len(rows) > pageSize
	if hasNext {
		rows = rows[:pageSize]
	}

	paging := PagingInfo{Page: page, PageSize: pageSize, HasNext: hasNext}
	if page > 1 {
		paging.PrevPage = page - 1
	}
	if hasNext {
		paging.NextPage = page + 1
	}
	return Result{Rows: rows, Paging: paging}, nil
}

// Prune removes events older than the retention window.
func (s *Service) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	return s.repo.DeleteOlderThan(ctx, cutoff)
}
