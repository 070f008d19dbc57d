// Package assignments tracks which doctor is responsible for which patient.
// A patient has at most one doctor; re-assigning overwrites, most recent wins.
package assignments

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("assignment not found")

type Assignment struct {
	PatientID   string    `bson:"patientId"`
	DoctorID    string    `bson:"doctorId"`
	UpdatedTime time.Time `bson:"updatedTime"`
}

type Service interface {
	Get(ctx context.Context, patientID string) (*Assignment, error)
	Set(ctx context.Context, patientID string, doctorID string) (*Assignment, error)
	Clear(ctx context.Context, patientID string) error
	List(ctx context.Context) ([]Assignment, error)
}
