package api

import (
	"go.uber.org/fx"

	"github.com/motuslabs/rehab/assignments"
	"github.com/motuslabs/rehab/audit"
	"github.com/motuslabs/rehab/auth"
	"github.com/motuslabs/rehab/config"
	"github.com/motuslabs/rehab/records"
	"github.com/motuslabs/rehab/reports"
	"github.com/motuslabs/rehab/users"
)

type Handler struct {
	assignments   assignments.Service
	audit         audit.Service
	authenticator auth.Authenticator
	records       records.Service
	reports       reports.Service
	users         users.Service
	allowSignup   bool
}

type Params struct {
	fx.In

	Assignments   assignments.Service
	Audit         audit.Service
	Authenticator auth.Authenticator
	Cfg           *config.Config
	Records       records.Service
	Reports       reports.Service
	Users         users.Service
}

func NewHandler(p Params) *Handler {
	return &Handler{
		assignments:   p.Assignments,
		audit:         p.Audit,
		authenticator: p.Authenticator,
		records:       p.Records,
		reports:       p.Reports,
		users:         p.Users,
		allowSignup:   p.Cfg.AllowSignup,
	}
}
