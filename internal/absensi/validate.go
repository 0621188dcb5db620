package absensi

import (
	"strings"
	"time"
)

// RawSubmission carries the form fields of a submission exactly as received,
// before any normalization.
type RawSubmission struct {
	Nama         string
	Area         []string
	Jenis        string
	RentangWaktu string
	Deskripsi    string
	Timestamp    string
	Consent      string
}

// Draft is a normalized submission that passed field validation. It still
// lacks the photo URL and the server-assigned fields.
type Draft struct {
	Nama         string
	Area         string
	Jenis        string
	RentangWaktu string
	Deskripsi    string
	Timestamp    time.Time
	Consent      bool
}

// NormalizeArea joins multiple submitted area values with ", ". A single
// value is trimmed instead, so an already comma-joined string passes through
// unchanged.
func NormalizeArea(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return strings.TrimSpace(values[0])
	default:
		return strings.Join(values, ", ")
	}
}

// NormalizeConsent treats only the literal string "true" as consent. Any
// other value, including "1" and an absent field, is no consent.
func NormalizeConsent(value string) bool {
	return value == "true"
}

// Validate normalizes a raw submission and enforces the required-field and
// consent contract. It never touches the store: a rejected submission leaves
// no trace.
func Validate(raw RawSubmission) (Draft, error) {
	d := Draft{
		Nama:         strings.TrimSpace(raw.Nama),
		Area:         NormalizeArea(raw.Area),
		Jenis:        raw.Jenis,
		RentangWaktu: raw.RentangWaktu,
		Deskripsi:    raw.Deskripsi,
		Consent:      NormalizeConsent(raw.Consent),
	}

	if d.Nama == "" || d.Area == "" || d.Jenis == "" || d.RentangWaktu == "" || d.Deskripsi == "" || !d.Consent {
		return Draft{}, ErrMissingFields
	}

	if raw.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, raw.Timestamp); err == nil {
			d.Timestamp = ts
		}
		// Unparseable timestamps fall back to submission time in Submit.
	}

	return d, nil
}
