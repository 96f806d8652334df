package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/zarascrunch/storefront/internal/apperr"
)

type TokenService struct {
	DB            *gorm.DB
	JWTSecret     []byte
	RefreshSecret []byte
	AdminEmails   []string
}

// CheckCookie resolves the caller's identity from the access cookie,
// rotating through the refresh cookie when the access token has expired.
// The returned tokens are empty when no rotation happened.
func (t *TokenService) CheckCookie(c echo.Context) (newAccess, newRefresh string, claims jwt.MapClaims, err error) {
	asCookie, cookieErr := c.Cookie("accessToken")
	if cookieErr == nil && asCookie.Value != "" {
		claims, parseErr := ParseToken(asCookie.Value, t.JWTSecret)
		if parseErr == nil {
			return "", "", claims, nil
		}
		if !errors.Is(parseErr, jwt.ErrTokenExpired) {
			return "", "", nil, apperr.Wrap(apperr.KindUnauthorized, "invalid token", parseErr)
		}
	}

	rfCookie, cookieErr := c.Cookie("refreshToken")
	if cookieErr != nil {
		return "", "", nil, apperr.Unauthorized("not authenticated")
	}

	return t.rotate(rfCookie.Value)
}

func (t *TokenService) rotate(raw string) (string, string, jwt.MapClaims, error) {
	claims, err := ValidateRefresh(raw, t.RefreshSecret, t.DB)
	if err != nil {
		return "", "", nil, err
	}

	userID := uint(claims["sub"].(float64))
	email, _ := claims["email"].(string)

	newAccess, err := SignAccessToken(userID, email, t.JWTSecret)
	if err != nil {
		return "", "", nil, apperr.Wrap(apperr.KindUnauthorized, "could not sign access token", err)
	}
	newRefresh, err := SignRefreshToken(userID, email, t.RefreshSecret)
	if err != nil {
		return "", "", nil, apperr.Wrap(apperr.KindUnauthorized, "could not sign refresh token", err)
	}
	if err := SaveRefreshToken(t.DB, newRefresh, userID); err != nil {
		return "", "", nil, err
	}

	return newAccess, newRefresh, claims, nil
}

// IsAdmin reports whether the email is on the allow-list. An empty
// allow-list admits nobody: absent configuration fails closed.
func (t *TokenService) IsAdmin(email string) bool {
	if email == "" {
		return false
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, allowed := range t.AdminEmails {
		if allowed == email {
			return true
		}
	}
	return false
}

// RequireLogin authenticates the request and stores the identity on the
// echo context, refreshing cookies when a rotation happened.
func (t *TokenService) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		newAccess, newRefresh, claims, err := t.CheckCookie(c)
		if err != nil {
			return err
		}

		if newRefresh != "" {
			c.SetCookie(CreateCookie("accessToken", newAccess, "/", time.Now().Add(AccessTTL)))
			c.SetCookie(CreateCookie("refreshToken", newRefresh, "/", time.Now().Add(RefreshTTL)))
		}

		setUserContext(c, claims)
		return next(c)
	}
}

// RequireAdmin layers the allow-list gate on top of RequireLogin. Every
// privileged route goes through this one check.
func (t *TokenService) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return t.RequireLogin(func(c echo.Context) error {
		email, _ := c.Get("email").(string)
		if !t.IsAdmin(email) {
			return apperr.Unauthorized("not authorized")
		}
		return next(c)
	})
}

func setUserContext(c echo.Context, claims jwt.MapClaims) {
	if sub, ok := claims["sub"].(float64); ok {
		c.Set("userID", uint(sub))
	}
	if email, ok := claims["email"].(string); ok {
		c.Set("email", email)
	}
}
