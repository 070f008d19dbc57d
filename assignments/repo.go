package assignments

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const assignmentsCollectionName = "assignments"

//go:generate mockgen --build_flags=--mod=mod -source=./repo.go -destination=./test/mock_repository.go -package test -aux_files=github.com/motuslabs/rehab/assignments=assignments.go MockRepository

type Repository interface {
	Service
}

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(assignmentsCollectionName),
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
				{Key: "patientId", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("UniquePatientAssignment"),
		},
	})
	return err
}

func (r *repository) Get(ctx context.Context, patientID string) (*Assignment, error) {
	selector := bson.M{
		"patientId": patientID,
	}

	assignment := &Assignment{}
	err := r.collection.FindOne(ctx, selector).Decode(assignment)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return assignment, nil
}

func (r *repository) Set(ctx context.Context, patientID string, doctorID string) (*Assignment, error) {
	assignment := Assignment{
		PatientID:   patientID,
		DoctorID:    doctorID,
		UpdatedTime: time.Now(),
	}

	selector := bson.M{
		"patientId": patientID,
	}
	update := bson.M{
		"$set": assignment,
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, selector, update, opts); err != nil {
		return nil, err
	}

	return &assignment, nil
}

func (r *repository) Clear(ctx context.Context, patientID string) error {
	selector := bson.M{
		"patientId": patientID,
	}

	res, err := r.collection.DeleteOne(ctx, selector)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]Assignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "patientId", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	var list []Assignment
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}

	return list, nil
}
