package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/motuslabs/rehab/users"
)

var (
	ErrUnauthenticated = fmt.Errorf("session token is invalid")
	AuthContextKey     = AuthKey("auth")
)

type AuthKey string

// Auth is the authenticated identity attached to each request context.
// Handlers receive it explicitly instead of reading ambient session state.
type Auth struct {
	SubjectId string     `json:"subjectId"`
	Username  string     `json:"username"`
	Role      users.Role `json:"role"`
}

type Config struct {
	SigningKey string        `envconfig:"REHAB_AUTH_SIGNING_KEY" required:"true"`
	TokenTTL   time.Duration `envconfig:"REHAB_AUTH_TOKEN_TTL" default:"12h"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

type Authenticator interface {
	IssueToken(user *users.User) (string, error)
	ValidateAndSetAuthData(token string, ec echo.Context) (bool, error)
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Username string     `json:"username"`
	Role     users.Role `json:"role"`
}

type JWTAuthenticator struct {
	signingKey []byte
	tokenTTL   time.Duration
}

var _ Authenticator = &JWTAuthenticator{}

func NewAuthenticator(cfg *Config) (Authenticator, error) {
	if cfg.SigningKey == "" {
		return nil, fmt.Errorf("auth signing key is not configured")
	}
	return &JWTAuthenticator{
		signingKey: []byte(cfg.SigningKey),
		tokenTTL:   cfg.TokenTTL,
	}, nil
}

func (a *JWTAuthenticator) IssueToken(user *users.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Id.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
		},
		Username: user.Username,
		Role:     user.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.signingKey)
}

func (a *JWTAuthenticator) ValidateAndSetAuthData(token string, ec echo.Context) (bool, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return false, ErrUnauthenticated
	}

	SetAuthData(ec, &Auth{
		SubjectId: claims.Subject,
		Username:  claims.Username,
		Role:      claims.Role,
	})
	return true, nil
}

type AuthMiddlewareOpts struct {
	Skipper middleware.Skipper
}

func NewAuthMiddleware(authenticator Authenticator, opts AuthMiddlewareOpts) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Allow skipping authentication for certain routes (e.g. readiness probe)
			if opts.Skipper != nil {
				if opts.Skipper(c) {
					return next(c)
				}
			}

			token := bearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "session token is missing")
			}

			valid, err := authenticator.ValidateAndSetAuthData(token, c)
			if err != nil {
				return &echo.HTTPError{
					Code:     http.StatusUnauthorized,
					Message:  "session token is invalid",
					Internal: err,
				}
			} else if valid {
				return next(c)
			}
			return echo.ErrUnauthorized
		}
	}
}

// RequireRoles guards a route group to the given roles.
func RequireRoles(roles ...users.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := GetAuthData(c.Request().Context())
			if auth == nil {
				return echo.ErrUnauthorized
			}
			for _, role := range roles {
				if auth.Role == role {
					return next(c)
				}
			}
			return echo.ErrForbidden
		}
	}
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

func GetAuthData(ctx context.Context) *Auth {
	if auth, ok := ctx.Value(AuthContextKey).(*Auth); ok {
		return auth
	}

	return nil
}

func SetAuthData(ec echo.Context, auth *Auth) {
	ctx := context.WithValue(ec.Request().Context(), AuthContextKey, auth)
	ec.SetRequest(ec.Request().WithContext(ctx))
}
