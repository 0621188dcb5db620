package absensi

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Repository is the persistence surface the service needs.
type Repository interface {
	Insert(ctx context.Context, rec Record) (Record, error)
	List(ctx context.Context) ([]Record, error)
	DeleteOne(ctx context.Context, id primitive.ObjectID) (int64, error)
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

// Uploader stores a photo and returns its durable public URL.
type Uploader interface {
	Upload(ctx context.Context, pathname string, data []byte, contentType string) (string, error)
}

// Service coordinates validation, photo upload and persistence of attendance
// records.
type Service struct {
	repo Repository
	blob Uploader
	now  func() time.Time
}

// NewService creates a service backed by a repository and a blob uploader.
func NewService(repo Repository, blob Uploader) *Service {
	return &Service{repo: repo, blob: blob, now: time.Now}
}

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	disallowedChar = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
)

// StorageFilename derives the blob pathname for an uploaded photo. The
// epoch-millisecond prefix makes concurrent uploads of identically named
// files land on distinct pathnames.
func StorageFilename(original string, at time.Time) string {
	clean := whitespaceRun.ReplaceAllString(original, "_")
	clean = disallowedChar.ReplaceAllString(clean, "")
	clean = strings.ToLower(clean)
	return fmt.Sprintf("foto_%d_%s", at.UnixMilli(), clean)
}

// Submit validates a raw submission, uploads the photo and persists the
// record. Validation failures reject before either collaborator is
// contacted. If the upload succeeds but the insert fails, the uploaded image
// is orphaned; this is accepted behavior, there is no compensating delete.
func (s *Service) Submit(ctx context.Context, raw RawSubmission, photo *Photo) (Record, error) {
	if photo == nil || len(photo.Data) == 0 {
		return Record{}, ErrPhotoRequired
	}
	draft, err := Validate(raw)
	if err != nil {
		return Record{}, err
	}

	now := s.now()
	pathname := StorageFilename(photo.Filename, now)
	fotoURL, err := s.blob.Upload(ctx, pathname, photo.Data, photo.ContentType)
	if err != nil {
		return Record{}, err
	}

	ts := draft.Timestamp
	if ts.IsZero() {
		ts = now
	}

	rec := Record{
		Timestamp:    ts,
		Nama:         draft.Nama,
		Area:         draft.Area,
		Jenis:        draft.Jenis,
		RentangWaktu: draft.RentangWaktu,
		Deskripsi:    draft.Deskripsi,
		Foto:         fotoURL,
		Consent:      draft.Consent,
		CreatedAt:    now,
	}
	return s.repo.Insert(ctx, rec)
}

// List returns all records sorted by timestamp descending.
func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.repo.List(ctx)
}

// DeleteOne removes a single record. The id must parse as a store object id;
// a well-formed id that matches nothing is reported as not found, not as an
// error.
func (s *Service) DeleteOne(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	n, err := s.repo.DeleteOne(ctx, oid)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMany removes records in one batch. Malformed ids are dropped
// silently; the call is rejected only when no valid id remains. The returned
// count may be lower than requested when some ids did not exist.
func (s *Service) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return 0, ErrInvalidID
	}
	return s.repo.DeleteMany(ctx, oids)
}
