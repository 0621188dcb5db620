package absensi

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Record represents a stored attendance submission.
//
// Timestamp is when the activity occurred and may be client-supplied;
// CreatedAt is always assigned by the server at insert time.
type Record struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Timestamp    time.Time          `json:"timestamp" bson:"timestamp"`
	Nama         string             `json:"nama" bson:"nama"`
	Area         string             `json:"area" bson:"area"`
	Jenis        string             `json:"jenis" bson:"jenis"`
	RentangWaktu string             `json:"rentangWaktu" bson:"rentangWaktu"`
	Deskripsi    string             `json:"deskripsi" bson:"deskripsi"`
	Foto         string             `json:"foto" bson:"foto"`
	Consent      bool               `json:"consent" bson:"consent"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

// Photo is an uploaded image attached to a submission.
type Photo struct {
	Filename    string
	ContentType string
	Data        []byte
}
