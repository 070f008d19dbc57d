// Package audit keeps an append-only trail of user-visible actions for the
// manager role. Recording is best-effort: a failed write is logged, never
// surfaced, because no user operation should fail on account of its audit
// entry.
package audit

import (
	"context"
	"time"

	"github.com/motuslabs/rehab/users"
)

type Action string

const (
	ActionLogin           Action = "login"
	ActionRegister        Action = "register"
	ActionRecordAppended  Action = "record-appended"
	ActionReportViewed    Action = "report-viewed"
	ActionNarrativeRun    Action = "narrative-run"
	ActionAssignmentSet   Action = "assignment-set"
	ActionAssignmentClear Action = "assignment-cleared"
)

type Entry struct {
	// Id is a stable identifier for the entry, useful when exports are
	// reconciled across environments.
	Id     string     `bson:"id"`
	Time   time.Time  `bson:"time"`
	Actor  string     `bson:"actor"`
	Role   users.Role `bson:"role"`
	Action Action     `bson:"action"`
	// Subject is the entity acted on (a patient id, a username), if any.
	Subject string `bson:"subject,omitempty"`
}

type Service interface {
	Record(ctx context.Context, entry Entry)
	List(ctx context.Context) ([]Entry, error)
}
