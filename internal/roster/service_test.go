package roster

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeRepo struct {
	ensureFn     func(ctx context.Context) error
	insertFn     func(ctx context.Context, emp Employee) (Employee, error)
	insertManyFn func(ctx context.Context, emps []Employee) error
	listFn       func(ctx context.Context) ([]Employee, error)
	deleteFn     func(ctx context.Context, id primitive.ObjectID) (int64, error)
	countFn      func(ctx context.Context) (int64, error)
}

func (f *fakeRepo) EnsureNameIndex(ctx context.Context) error {
	if f.ensureFn == nil {
		return nil
	}
	return f.ensureFn(ctx)
}

func (f *fakeRepo) Insert(ctx context.Context, emp Employee) (Employee, error) {
	if f.insertFn == nil {
		return emp, nil
	}
	return f.insertFn(ctx, emp)
}

func (f *fakeRepo) InsertMany(ctx context.Context, emps []Employee) error {
	if f.insertManyFn == nil {
		return nil
	}
	return f.insertManyFn(ctx, emps)
}

func (f *fakeRepo) List(ctx context.Context) ([]Employee, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx)
}

func (f *fakeRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if f.deleteFn == nil {
		return 0, nil
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeRepo) Count(ctx context.Context) (int64, error) {
	if f.countFn == nil {
		return 0, nil
	}
	return f.countFn(ctx)
}

func TestAddTrimsName(t *testing.T) {
	var inserted Employee
	svc := NewService(&fakeRepo{insertFn: func(ctx context.Context, emp Employee) (Employee, error) {
		inserted = emp
		return emp, nil
	}})

	if _, err := svc.Add(context.Background(), "  Budi  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted.Name != "Budi" {
		t.Fatalf("name not trimmed: %q", inserted.Name)
	}
	if inserted.CreatedAt.IsZero() || inserted.UpdatedAt.IsZero() {
		t.Fatal("timestamps not set")
	}
}

func TestAddRejectsEmptyName(t *testing.T) {
	svc := NewService(&fakeRepo{})
	if _, err := svc.Add(context.Background(), "   "); err != ErrNameRequired {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestAddPropagatesDuplicate(t *testing.T) {
	svc := NewService(&fakeRepo{insertFn: func(ctx context.Context, emp Employee) (Employee, error) {
		return Employee{}, ErrDuplicate
	}})
	if _, err := svc.Add(context.Background(), "Budi"); err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	var seeded []Employee
	indexed := false
	repo := &fakeRepo{
		ensureFn: func(ctx context.Context) error { indexed = true; return nil },
		countFn:  func(ctx context.Context) (int64, error) { return 0, nil },
		insertManyFn: func(ctx context.Context, emps []Employee) error {
			seeded = emps
			return nil
		},
	}
	if err := NewService(repo).Seed(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !indexed {
		t.Fatal("unique index must be ensured before seeding")
	}
	if len(seeded) != len(DefaultNames) {
		t.Fatalf("seeded %d names, want %d", len(seeded), len(DefaultNames))
	}

	// Non-empty roster: nothing inserted.
	seeded = nil
	repo.countFn = func(ctx context.Context) (int64, error) { return 3, nil }
	if err := NewService(repo).Seed(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seeded != nil {
		t.Fatal("seed must be a no-op when roster is not empty")
	}
}

func TestSeedToleratesConcurrentSeed(t *testing.T) {
	repo := &fakeRepo{
		insertManyFn: func(ctx context.Context, emps []Employee) error { return ErrDuplicate },
	}
	if err := NewService(repo).Seed(context.Background()); err != nil {
		t.Fatalf("a concurrent seed caught by the unique index is not an error, got %v", err)
	}
}

func TestNames(t *testing.T) {
	now := time.Now()
	svc := NewService(&fakeRepo{listFn: func(ctx context.Context) ([]Employee, error) {
		return []Employee{
			{Name: "Andita", CreatedAt: now},
			{Name: "Sobirin", CreatedAt: now},
		}, nil
	}})
	names, err := svc.Names(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "Andita" || names[1] != "Sobirin" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestDelete(t *testing.T) {
	valid := primitive.NewObjectID().Hex()

	svc := NewService(&fakeRepo{deleteFn: func(ctx context.Context, id primitive.ObjectID) (int64, error) {
		return 1, nil
	}})
	if err := svc.Delete(context.Background(), valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(context.Background(), "0123456789"); err != ErrInvalidID {
		t.Fatalf("expected ErrInvalidID for 10-char id, got %v", err)
	}

	svc = NewService(&fakeRepo{deleteFn: func(ctx context.Context, id primitive.ObjectID) (int64, error) {
		return 0, nil
	}})
	if err := svc.Delete(context.Background(), valid); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
