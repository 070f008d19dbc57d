package test

import (
	"strconv"
	"time"

	"github.com/jaswdr/faker"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/motuslabs/rehab/kpi"
	"github.com/motuslabs/rehab/records"
)

var Faker = faker.New()

// RandomRecord produces a fully populated session record for one patient.
func RandomRecord(patientID string, ts time.Time) records.Record {
	id := primitive.NewObjectID()
	rec := records.Record{
		Id:          &id,
		CreatedTime: ts,
	}
	rec.Timestamp = ts.Format("2006-01-02 15:04:05")
	rec.PatientID = patientID
	for i := 0; i < kpi.JointCount; i++ {
		rec.Flex[i] = strconv.Itoa(Faker.IntBetween(0, 180))
		rec.Force[i] = strconv.FormatFloat(Faker.Float64(2, 0, 100), 'f', 2, 64)
	}
	rec.Pain = strconv.Itoa(Faker.IntBetween(0, 10))
	rec.Fatigue = strconv.Itoa(Faker.IntBetween(0, 10))
	return rec
}
