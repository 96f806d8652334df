package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/zarascrunch/storefront/internal/apperr"
	"github.com/zarascrunch/storefront/internal/hash"
	auth "github.com/zarascrunch/storefront/internal/middleware/auth"
	"github.com/zarascrunch/storefront/internal/models"
)

type AuthHandler struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid payload")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return apperr.Validation("email and password are required")
	}

	var existing models.User
	err := h.DB.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return apperr.New(apperr.KindConflict, "user already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Backend(err)
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "could not hash password", err)
	}

	user := models.User{Email: req.Email, PasswordHash: passwordHash}
	if err := h.DB.Create(&user).Error; err != nil {
		return apperr.Backend(err)
	}

	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid payload")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return apperr.Unauthorized("invalid email or password")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return apperr.Unauthorized("invalid email or password")
	}

	accessToken, err := auth.SignAccessToken(user.ID, user.Email, h.JWTSecret)
	if err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "could not create access token", err)
	}
	refreshToken, err := auth.SignRefreshToken(user.ID, user.Email, h.RefreshSecret)
	if err != nil {
		return apperr.Wrap(apperr.KindUnavailable, "could not create refresh token", err)
	}
	if err := auth.SaveRefreshToken(h.DB, refreshToken, user.ID); err != nil {
		return err
	}

	c.SetCookie(auth.CreateCookie("accessToken", accessToken, "/", time.Now().Add(auth.AccessTTL)))
	c.SetCookie(auth.CreateCookie("refreshToken", refreshToken, "/", time.Now().Add(auth.RefreshTTL)))

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *AuthHandler) LogOut(c echo.Context) error {
	refreshCookie, err := c.Cookie("refreshToken")
	if err != nil {
		return apperr.Unauthorized("not authenticated")
	}

	if err := h.DB.Model(&models.RefreshToken{}).
		Where("token = ?", refreshCookie.Value).
		Update("revoked", true).Error; err != nil {
		return apperr.Backend(err)
	}

	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(auth.CreateCookie("accessToken", "", "/", expired))
	c.SetCookie(auth.CreateCookie("refreshToken", "", "/", expired))

	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}
