package handler

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"staybook/model"
)

// Context key the JWT middleware stores the parsed token under
const TokenContextKey = "user_auth"

// Context key the authorization middleware stores the *model.AuthUser under
const UserContextKey = "user"

// UserFromContext reads the user from the verified JWT, if any.
func UserFromContext(c echo.Context) (model.AuthUser, error) {
	jwtToken, ok := c.Get(TokenContextKey).(*jwt.Token)
	if !ok || jwtToken == nil {
		return model.AuthUser{}, fmt.Errorf("no token")
	}

	claims, ok := jwtToken.Claims.(*model.JwtCustomClaims)
	if !ok {
		return model.AuthUser{}, fmt.Errorf("invalid token claims")
	}

	// To make sure it's a valid uuid
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.AuthUser{}, fmt.Errorf("invalid subject; expected UUID: %v", err)
	}

	u := model.AuthUser{ID: id.String()}
	if claims.Roles != "" {
		u.Roles = strings.Split(claims.Roles, ",")
	}
	for _, role := range u.Roles {
		if role == "admin" {
			u.IsAdmin = true
		}
	}

	return u, nil
}

// authUser is the user the authorization middleware let through, or nil on
// public routes.
func authUser(c echo.Context) *model.AuthUser {
	u, _ := c.Get(UserContextKey).(*model.AuthUser)
	if u == nil || u.ID == "" {
		return nil
	}
	return u
}

func roles(c echo.Context) []string {
	if u := authUser(c); u != nil {
		return u.Roles
	}
	return nil
}
