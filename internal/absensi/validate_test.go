package absensi

import (
	"testing"
	"time"
)

func validRaw() RawSubmission {
	return RawSubmission{
		Nama:         "Ansori",
		Area:         []string{"Gudang"},
		Jenis:        "Perbaikan",
		RentangWaktu: "08:00-10:00",
		Deskripsi:    "Ganti lampu",
		Consent:      "true",
	}
}

func TestValidateAccepts(t *testing.T) {
	draft, err := Validate(validRaw())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Nama != "Ansori" || draft.Area != "Gudang" || !draft.Consent {
		t.Fatalf("unexpected draft: %+v", draft)
	}
}

func TestValidateRejectsMissingFields(t *testing.T) {
	cases := map[string]func(*RawSubmission){
		"nama":         func(r *RawSubmission) { r.Nama = "" },
		"nama spaces":  func(r *RawSubmission) { r.Nama = "   " },
		"area":         func(r *RawSubmission) { r.Area = nil },
		"jenis":        func(r *RawSubmission) { r.Jenis = "" },
		"rentangWaktu": func(r *RawSubmission) { r.RentangWaktu = "" },
		"desc":         func(r *RawSubmission) { r.Deskripsi = "" },
		"consent":      func(r *RawSubmission) { r.Consent = "false" },
	}
	for name, mutate := range cases {
		raw := validRaw()
		mutate(&raw)
		if _, err := Validate(raw); err != ErrMissingFields {
			t.Errorf("%s: expected ErrMissingFields, got %v", name, err)
		}
	}
}

func TestNormalizeConsent(t *testing.T) {
	cases := map[string]bool{
		"true":  true,
		"false": false,
		"1":     false,
		"TRUE":  false,
		"":      false,
	}
	for in, want := range cases {
		if got := NormalizeConsent(in); got != want {
			t.Errorf("NormalizeConsent(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNormalizeArea(t *testing.T) {
	if got := NormalizeArea([]string{"A", "B"}); got != "A, B" {
		t.Fatalf("join: got %q", got)
	}
	// Single already-joined value passes through unchanged.
	if got := NormalizeArea([]string{"A, B"}); got != "A, B" {
		t.Fatalf("idempotent: got %q", got)
	}
	if got := NormalizeArea([]string{"  Gudang  "}); got != "Gudang" {
		t.Fatalf("trim: got %q", got)
	}
	if got := NormalizeArea(nil); got != "" {
		t.Fatalf("empty: got %q", got)
	}
}

func TestValidateTimestamp(t *testing.T) {
	raw := validRaw()
	raw.Timestamp = "2024-03-01T08:00:00Z"
	draft, err := Validate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	if !draft.Timestamp.Equal(want) {
		t.Fatalf("timestamp: got %v, want %v", draft.Timestamp, want)
	}

	raw.Timestamp = "not-a-time"
	draft, err = Validate(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !draft.Timestamp.IsZero() {
		t.Fatalf("unparseable timestamp should stay zero, got %v", draft.Timestamp)
	}
}
