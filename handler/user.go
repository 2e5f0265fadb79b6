package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jaswdr/faker"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"staybook/model"
)

const tokenLifetime = 72 * time.Hour

func (h *Handler) Signup(c echo.Context) error {
	u := model.SignupUserReq{}
	if err := c.Bind(&u); err != nil {
		return err
	}

	u.Strip()
	if err := c.Validate(&u); err != nil {
		return err
	}

	if !model.IsValidEmail(u.Email) {
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Improperly formatted email address."}
	}

	// Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("hash password: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError}
	}

	var existing model.User
	err = h.DB.Where("email = ?", u.Email).First(&existing).Error
	if err == nil {
		return &echo.HTTPError{Code: http.StatusConflict, Message: "User already exists. Reset password?"}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Errorf("lookup user %s: %v", u.Email, err)
		return &echo.HTTPError{Code: http.StatusInternalServerError}
	}

	// Hosts without a display name get a generated handle
	name := strings.TrimSpace(u.Name)
	if name == "" {
		name = faker.New().Internet().User()
	}

	newUser := model.User{
		Name:     name,
		Email:    u.Email,
		Roles:    []string{"member"},
		Password: string(hash),
	}

	if err := h.DB.Create(&newUser).Error; err != nil {
		log.Errorf("create user %s: %v", u.Email, err)
		return &echo.HTTPError{Code: http.StatusInternalServerError}
	}

	return c.JSON(http.StatusCreated, newUser.ToPrivateFormat(nil))
}

func (h *Handler) Login(c echo.Context) error {
	f := model.LoginUserReq{}
	if err := c.Bind(&f); err != nil {
		return err
	}

	f.Email = *model.StripEmail(f.Email)
	if err := c.Validate(&f); err != nil {
		return err
	}

	u := model.User{}
	r := h.DB.Where("email = ?", f.Email).First(&u)
	if r.Error != nil {
		if errors.Is(r.Error, gorm.ErrRecordNotFound) {
			return &echo.HTTPError{Code: http.StatusUnauthorized, Message: "Invalid email or password."}
		}
		log.Errorf("lookup user %s: %v", f.Email, r.Error)
		return &echo.HTTPError{Code: http.StatusInternalServerError}
	}

	// Check password hash
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(f.Password)) != nil {
		return &echo.HTTPError{Code: http.StatusUnauthorized, Message: "Invalid email or password."}
	}

	// Assemble JWT
	claims := &model.JwtCustomClaims{
		Roles: strings.Join(u.Roles, ","),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(h.now().Add(tokenLifetime)),
			Subject:   u.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(h.JWTSecret)
	if err != nil {
		log.Errorf("sign token: %v", err)
		return &echo.HTTPError{Code: http.StatusInternalServerError, Message: "Something went wrong. Please try again later."}
	}

	return c.JSON(http.StatusOK, model.LoginUserResponse{Token: signedToken})
}

func (h *Handler) Me(c echo.Context) error {
	reqUser := authUser(c)

	u := model.User{}
	r := h.DB.First(&u, "id = ?", reqUser.ID)
	if r.Error != nil {
		if errors.Is(r.Error, gorm.ErrRecordNotFound) {
			return &echo.HTTPError{Code: http.StatusNotFound, Message: "User not found. Please try again later."}
		}
		return &echo.HTTPError{Code: http.StatusInternalServerError}
	}

	favoriteIDs, err := h.favoriteIDs(reqUser.ID)
	if err != nil {
		log.Errorf("fetch favorites of %s: %v", reqUser.ID, err)
		return &echo.HTTPError{Code: http.StatusInternalServerError}
	}

	return c.JSON(http.StatusOK, u.ToPrivateFormat(favoriteIDs))
}
