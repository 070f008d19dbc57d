// Package records owns the append-only table of raw rehabilitation session
// records. Rows are created by patient data entry and never mutated or
// deleted afterwards.
package records

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/motuslabs/rehab/kpi"
	"github.com/motuslabs/rehab/store"
)

// ErrStoreUnavailable is surfaced when the record store cannot be reached.
// Data-quality problems never produce errors; only infrastructure does.
var ErrStoreUnavailable = errors.New("record store unavailable")

type Record struct {
	Id *primitive.ObjectID `bson:"_id,omitempty"`

	kpi.RawSessionRecord `bson:",inline"`

	CreatedTime time.Time `bson:"createdTime"`
}

type Filter struct {
	// PatientID scopes the listing to one patient exactly (patient role).
	PatientID *string
	// Search is a case-insensitive substring match on the patient id
	// (doctor/manager dashboards).
	Search *string
}

type Service interface {
	Append(ctx context.Context, record Record) (*Record, error)
	// List returns matching records in insertion order. The zero Pagination
	// returns the full listing.
	List(ctx context.Context, filter *Filter, page store.Pagination) ([]Record, error)
	Stats(ctx context.Context) (*Stats, error)
}

// Stats are the headline aggregates on the doctor dashboard.
type Stats struct {
	PatientCount    int
	RecordCount     int
	AvgFlexDegrees  kpi.Value
	LatestTimestamp *time.Time
}

// Raw strips the storage envelope from a listing, in order.
func Raw(list []Record) []kpi.RawSessionRecord {
	raw := make([]kpi.RawSessionRecord, len(list))
	for i, r := range list {
		raw[i] = r.RawSessionRecord
	}
	return raw
}
