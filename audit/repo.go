package audit

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const auditCollectionName = "auditLog"

type Repository interface {
	Insert(ctx context.Context, entry Entry) error
	List(ctx context.Context) ([]Entry, error)
}

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(auditCollectionName),
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
				{Key: "time", Value: 1},
			},
			Options: options.Index().
				SetName("AuditByTime"),
		},
	})
	return err
}

func (r *repository) Insert(ctx context.Context, entry Entry) error {
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *repository) List(ctx context.Context) ([]Entry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	var list []Entry
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}

	return list, nil
}
