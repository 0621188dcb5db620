// Package roster manages the list of employee names a submission may use.
package roster

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User-facing errors, returned verbatim in the JSON envelope.
var (
	ErrNameRequired = errors.New("Nama harus diisi")
	ErrDuplicate    = errors.New("Nama sudah ada")
	ErrInvalidID    = errors.New("ID tidak valid")
	ErrNotFound     = errors.New("Pegawai tidak ditemukan")
)

// Employee is a roster entry. Names are unique and never renamed.
type Employee struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// DefaultNames seeds the roster on first run.
var DefaultNames = []string{
	"Andri Apriansyah",
	"Uli Hariyono",
	"Muhammad Redo Firdaus",
	"Ansori",
	"Andita",
	"Dwi Anugrah Sefrina Handayani",
	"Sefian Hadi",
	"Sobirin",
}

// Repository is the persistence surface the roster service needs.
type Repository interface {
	EnsureNameIndex(ctx context.Context) error
	Insert(ctx context.Context, emp Employee) (Employee, error)
	InsertMany(ctx context.Context, emps []Employee) error
	List(ctx context.Context) ([]Employee, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	Count(ctx context.Context) (int64, error)
}
