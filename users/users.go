package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("user not found")
var ErrDuplicate = errors.New("username is already taken")
var ErrInvalidCredentials = errors.New("username or password is incorrect")
var ErrMissingFields = errors.New("username and password are required")
var ErrPasswordMismatch = errors.New("passwords do not match")
var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleManager Role = "manager"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleManager:
		return true
	}
	return false
}

type Service interface {
	Register(ctx context.Context, registration Registration) (*User, error)
	Authenticate(ctx context.Context, username string, password string) (*User, error)
	Get(ctx context.Context, username string) (*User, error)
}

type User struct {
	Id *primitive.ObjectID `bson:"_id,omitempty"`

	Username string `bson:"username"`
	// UsernameKey is the trimmed, lowercased form used for matching. Logins
	// have always been case-insensitive.
	UsernameKey string `bson:"usernameKey"`

	// Passwords are stored as bcrypt hashes only.
	PasswordHash string `bson:"passwordHash"`

	Role        Role      `bson:"role"`
	CreatedTime time.Time `bson:"createdTime"`
}

type Registration struct {
	Username        string
	Password        string
	ConfirmPassword string
	Role            Role
}

// Validate rejects a registration before any store write happens.
func (r Registration) Validate() error {
	if strings.TrimSpace(r.Username) == "" || r.Password == "" {
		return ErrMissingFields
	}
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if r.Role != "" && !r.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

func UsernameKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
