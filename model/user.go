package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Primary user struct for DB interactions
type User struct {
	ID        string   `json:"id" gorm:"type:uuid;primarykey"`
	Name      string   `json:"name"`
	Email     string   `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	Password  string   `json:"-"`
	Roles     []string `json:"roles" gorm:"serializer:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// User extracted from JWT token
type AuthUser struct {
	ID      string   `json:"id"`
	Roles   []string `json:"roles"`
	IsAdmin bool     `json:"is_admin"`
}

// User to be returned to client
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// User as returned to themselves
type PrivateUser struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Roles       []string  `json:"roles"`
	FavoriteIDs []string  `json:"favorite_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

func (base *User) BeforeCreate(tx *gorm.DB) (err error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return err
	}

	base.ID = id.String()
	return
}

type SignupUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func (u *SignupUserReq) Strip() {
	u.Email = *StripEmail(u.Email)
}

type LoginUserReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginUserResponse struct {
	Token string `json:"token"`
}

type JwtCustomClaims struct {
	Roles string `json:"roles"`
	jwt.RegisteredClaims
}

func (user User) ToPublicFormat() any {
	return PublicUser{
		ID:        user.ID,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

func (user User) ToPrivateFormat(favoriteIDs []string) PrivateUser {
	if favoriteIDs == nil {
		favoriteIDs = []string{}
	}

	return PrivateUser{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Roles:       user.Roles,
		FavoriteIDs: favoriteIDs,
		CreatedAt:   user.CreatedAt,
	}
}

func (user User) IsAdmin() bool {
	for _, v := range user.Roles {
		if v == "admin" {
			return true
		}
	}

	return false
}
