package test

import (
	"time"

	"github.com/jaswdr/faker"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/motuslabs/rehab/users"
)

var Faker = faker.New()

func RandomUser(role users.Role) users.User {
	id := primitive.NewObjectID()
	username := Faker.Internet().User()
	hash, _ := bcrypt.GenerateFromPassword([]byte(Faker.Internet().Password()), bcrypt.MinCost)
	return users.User{
		Id:           &id,
		Username:     username,
		UsernameKey:  users.UsernameKey(username),
		PasswordHash: string(hash),
		Role:         role,
		CreatedTime:  time.Now(),
	}
}
