package records

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/motuslabs/rehab/store"
)

const recordsCollectionName = "sessionRecords"

//go:generate mockgen --build_flags=--mod=mod -source=./repo.go -destination=./test/mock_repository.go -package test -aux_files=github.com/motuslabs/rehab/records=records.go MockRepository

type Repository interface {
	Append(ctx context.Context, record Record) (*Record, error)
	List(ctx context.Context, filter *Filter, page store.Pagination) ([]Record, error)
}

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(recordsCollectionName),
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.Initialize(ctx)
		},
	})

	return repo, nil
}

type repository struct {
	collection *mongo.Collection
}

func (r *repository) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "patientid", Value: 1},
				{Key: "timestamp", Value: 1},
			},
			Options: options.Index().
				SetName("PatientSessions"),
		},
	})
	return err
}

func (r *repository) Append(ctx context.Context, record Record) (*Record, error) {
	res, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	record.Id = &id
	return &record, nil
}

func (r *repository) List(ctx context.Context, filter *Filter, page store.Pagination) ([]Record, error) {
	selector := bson.M{}
	if filter != nil {
		if filter.PatientID != nil {
			selector["patientid"] = primitive.Regex{
				Pattern: "^" + escapeRegex(*filter.PatientID) + "$",
				Options: "i",
			}
		} else if filter.Search != nil && *filter.Search != "" {
			selector["patientid"] = primitive.Regex{
				Pattern: escapeRegex(*filter.Search),
				Options: "i",
			}
		}
	}

	// Insertion order; chronological ordering is the aggregator's job
	// because timestamps are stored as submitted and may be unparseable.
	sort := store.Sort{Attribute: "_id", Ascending: true}
	// A zero limit means the full listing; the reporting pipeline depends
	// on seeing every record.
	opts := options.Find().
		SetSort(bson.D{{Key: sort.Attribute, Value: sort.Order()}}).
		SetSkip(int64(page.Offset)).
		SetLimit(int64(page.Limit))
	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var list []Record
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return list, nil
}

func escapeRegex(s string) string {
	special := `\.+*?()|[]{}^$`
	escaped := make([]rune, 0, len(s))
	for _, r := range s {
		for _, sp := range special {
			if r == sp {
				escaped = append(escaped, '\\')
				break
			}
		}
		escaped = append(escaped, r)
	}
	return string(escaped)
}
