package main

import (
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"staybook/handler"
	"staybook/model"
)

type AuthorizationMW struct {
	Enforcer *casbin.Enforcer
}

// Authorize checks every role of the caller against the policy. Callers
// without a token act as "anonymous" and are asked to log in when denied.
func (cfg AuthorizationMW) Authorize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userRoles := []string{"anonymous"}
		user, err := handler.UserFromContext(c)
		if err == nil && len(user.Roles) > 0 {
			userRoles = user.Roles
		}

		for _, role := range userRoles {
			allowed, casbinErr := cfg.Enforcer.Enforce(role, c.Path(), c.Request().Method)
			if casbinErr != nil {
				log.Errorf("enforce %s %s for %s: %v", c.Request().Method, c.Path(), role, casbinErr)
				return echo.NewHTTPError(http.StatusInternalServerError, "Authorization error.")
			}
			if allowed {
				c.Set(handler.UserContextKey, &user)
				return next(c)
			}
		}

		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Login required.")
		}
		return echo.NewHTTPError(http.StatusForbidden, "Unauthorized.")
	}
}

type PublicPaths struct {
	Path   string
	Method string
}

var publicPaths = []PublicPaths{
	{Path: "/login", Method: http.MethodPost},
	{Path: "/signup", Method: http.MethodPost},
	{Path: "/categories", Method: http.MethodGet},
	{Path: "/listings", Method: http.MethodGet},
	{Path: "/listings/:id", Method: http.MethodGet},
	{Path: "/listings/:id/availability", Method: http.MethodGet},
	{Path: "/listings/:id/quote", Method: http.MethodGet},
	{Path: "/search", Method: http.MethodGet},
	{Path: "/search/summary", Method: http.MethodGet},
	{Path: "/files/:id/download", Method: http.MethodGet},
}

func isPublicPath(c echo.Context) bool {
	for _, p := range publicPaths {
		if c.Path() == p.Path && c.Request().Method == p.Method {
			return true
		}
	}
	return false
}

func getJwtMVConfig(secret []byte) echojwt.Config {
	return echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(model.JwtCustomClaims)
		},
		ContextKey: handler.TokenContextKey,
		SigningKey: secret,
		Skipper:    isPublicPath,
		// A missing or stale token means the guest has to log in first
		ErrorHandler: func(c echo.Context, err error) error {
			log.Debugf("jwt rejected for %s %s: %v", c.Request().Method, c.Path(), err)
			return echo.NewHTTPError(http.StatusUnauthorized, "Login required.")
		},
	}
}
