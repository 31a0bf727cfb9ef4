package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	CookieName = "session"
	cookieTTL  = 14 * 24 * time.Hour
)

const ctxKeySID = "session_id"

// SID returns the session id the middleware attached to the request.
func SID(c echo.Context) string {
	sid, _ := c.Get(ctxKeySID).(string)
	return sid
}

// Middleware makes sure every request carries a valid session cookie. The
// cookie value is the session id wrapped in an HS256 token, so a client
// cannot pick someone else's id.
func Middleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := ""
			if cookie, err := c.Cookie(CookieName); err == nil {
				sid, _ = parseSID(cookie.Value, secret)
			}
			if sid == "" {
				sid = uuid.NewString()
				value, err := signSID(sid, secret)
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
				}
				c.SetCookie(&http.Cookie{
					Name:     CookieName,
					Value:    value,
					Path:     "/",
					Expires:  time.Now().Add(cookieTTL),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(ctxKeySID, sid)
			return next(c)
		}
	}
}

func signSID(sid string, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(cookieTTL).Unix(),
	})
	return token.SignedString(secret)
}

func parseSID(value string, secret []byte) (string, error) {
	token, err := jwt.Parse(value, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return "", fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid session cookie")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid session claims")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", fmt.Errorf("invalid sid claim")
	}
	return sid, nil
}
