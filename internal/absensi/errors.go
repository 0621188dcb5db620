package absensi

import "errors"

// User-facing errors. The messages are returned verbatim in the JSON error
// envelope, so they are worded for the client, not for logs.
var (
	// ErrMissingFields is returned when any required field is empty or
	// consent was not given.
	ErrMissingFields = errors.New("Semua field harus diisi dan persetujuan harus dicentang!")

	// ErrPhotoRequired is returned when a submission has no attached image.
	ErrPhotoRequired = errors.New("Foto harus diupload!")

	// ErrInvalidID is returned when an identifier does not parse as a store
	// object id.
	ErrInvalidID = errors.New("ID tidak valid")

	// ErrNotFound is returned when a delete matched no record.
	ErrNotFound = errors.New("Data tidak ditemukan")
)
