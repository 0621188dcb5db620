package roster

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service manages roster entries.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a roster service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Seed installs the default names when the roster is empty. It runs once at
// startup; the unique name index is created first so that two processes
// starting at the same time cannot double-seed.
func (s *Service) Seed(ctx context.Context) error {
	if err := s.repo.EnsureNameIndex(ctx); err != nil {
		return err
	}
	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := s.now()
	emps := make([]Employee, len(DefaultNames))
	for i, name := range DefaultNames {
		emps[i] = Employee{Name: name, CreatedAt: now, UpdatedAt: now}
	}
	if err := s.repo.InsertMany(ctx, emps); err != nil {
		// A concurrent startup already seeded; the unique index caught it.
		if errors.Is(err, ErrDuplicate) {
			return nil
		}
		return err
	}
	return nil
}

// Add creates a roster entry from a trimmed name, rejecting empty and
// duplicate names.
func (s *Service) Add(ctx context.Context, name string) (Employee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Employee{}, ErrNameRequired
	}
	now := s.now()
	return s.repo.Insert(ctx, Employee{Name: name, CreatedAt: now, UpdatedAt: now})
}

// List returns all roster entries.
func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.repo.List(ctx)
}

// Names returns just the employee names, for the submission form dropdown.
func (s *Service) Names(ctx context.Context) ([]string, error) {
	emps, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(emps))
	for i, emp := range emps {
		names[i] = emp.Name
	}
	return names, nil
}

// Delete removes a roster entry. The id must parse as a store object id.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	n, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
