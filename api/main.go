package api

import (
	"context"
	"fmt"

	"github.com/brpaz/echozap"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/motuslabs/rehab/ai"
	"github.com/motuslabs/rehab/assignments"
	"github.com/motuslabs/rehab/audit"
	"github.com/motuslabs/rehab/auth"
	"github.com/motuslabs/rehab/config"
	"github.com/motuslabs/rehab/errors"
	"github.com/motuslabs/rehab/logger"
	"github.com/motuslabs/rehab/records"
	"github.com/motuslabs/rehab/reports"
	"github.com/motuslabs/rehab/store"
	"github.com/motuslabs/rehab/users"
)

func Start(e *echo.Echo, cfg *config.Config, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(fmt.Sprintf(":%d", cfg.HttpPort)); err != nil {
					fmt.Println(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

func SetReady(healthCheck *HealthCheck, db *mongo.Database, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.Client().Ping(ctx, nil); err != nil {
				return err
			}

			// It's important this is set after mongo is initialized, which is ensured
			// by taking a dependency on mongo in the constructor, because lifecycle hooks
			// are executed in topological order
			healthCheck.SetReady(true)
			return nil
		},
		OnStop: nil,
	})
}

func NewServer(handler *Handler, healthCheck *HealthCheck, authenticator auth.Authenticator, log *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	// Skip auth and logging for the readiness probe and the session endpoints
	skipper := RouteSkipper([]string{"/ready", "/auth/login", "/auth/register"})
	authMiddleware := auth.NewAuthMiddleware(authenticator, auth.AuthMiddlewareOpts{
		Skipper: skipper,
	})

	e.Use(middleware.Recover())
	e.Use(echozap.ZapLogger(log))
	e.Use(authMiddleware)

	e.HTTPErrorHandler = errors.CustomHTTPErrorHandler

	e.GET("/ready", healthCheck.Ready)
	RegisterHandlers(e, handler)

	return e, nil
}

// RegisterHandlers binds every route, applying the role guards. Patients can
// submit and see only their own records; doctors and managers see the
// reporting surface; assignment management and the audit trail are
// manager-only.
func RegisterHandlers(e *echo.Echo, handler *Handler) {
	clinical := auth.RequireRoles(users.RoleDoctor, users.RoleManager)
	managers := auth.RequireRoles(users.RoleManager)

	e.POST("/auth/login", handler.Login)
	e.POST("/auth/register", handler.Register)

	e.POST("/records", handler.SubmitRecord, auth.RequireRoles(users.RolePatient))
	e.GET("/records", handler.ListRecords)

	e.GET("/dashboard/stats", handler.DashboardStats, clinical)
	e.GET("/reports/weekly", handler.WeeklyReport, clinical)
	e.POST("/reports/narrative", handler.NarrativeReport, clinical)
	e.POST("/reports/question", handler.AnswerQuestion, clinical)

	e.GET("/assignments", handler.ListAssignments, managers)
	e.GET("/assignments/:patientId", func(ec echo.Context) error {
		return handler.GetAssignment(ec, ec.Param("patientId"))
	}, managers)
	e.PUT("/assignments/:patientId", func(ec echo.Context) error {
		return handler.SetAssignment(ec, ec.Param("patientId"))
	}, managers)
	e.DELETE("/assignments/:patientId", func(ec echo.Context) error {
		return handler.ClearAssignment(ec, ec.Param("patientId"))
	}, managers)

	e.GET("/audit", handler.AuditLog, managers)
}

// Dependencies is the full object graph. rehabctl reuses it minus the server.
func Dependencies() fx.Option {
	return fx.Provide(
		logger.NewProductionLogger,
		logger.Suggar,
		config.New,
		store.NewConfig,
		store.GetConnectionString,
		store.NewClient,
		store.NewDatabase,
		users.NewRepository,
		users.NewService,
		records.NewRepository,
		records.NewService,
		assignments.NewRepository,
		assignments.NewService,
		audit.NewRepository,
		audit.NewService,
		auth.NewConfig,
		auth.NewAuthenticator,
		ai.NewConfig,
		ai.NewGenerator,
		reports.NewService,
	)
}

func MainLoop() {
	fx.New(
		Dependencies(),
		fx.Provide(
			NewHealthCheck,
			NewHandler,
			NewServer,
		),
		fx.Invoke(SetReady),
		fx.Invoke(Start),
	).Run()
}
