package users

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/motuslabs/rehab/store"
)

const usersCollectionName = "users"

//go:generate mockgen --build_flags=--mod=mod -source=./repo.go -destination=./test/mock_repository.go -package test -aux_files=github.com/motuslabs/rehab/users=users.go MockRepository

type Repository interface {
	Create(ctx context.Context, user User) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(usersCollectionName),
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
				{Key: "usernameKey", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("UniqueUsername"),
		},
	})
	return err
}

func (r *repository) Create(ctx context.Context, user User) (*User, error) {
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if store.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}

	return r.GetByUsername(ctx, user.Username)
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	selector := bson.M{
		"usernameKey": UsernameKey(username),
	}

	user := &User{}
	err := r.collection.FindOne(ctx, selector).Decode(user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return user, nil
}
