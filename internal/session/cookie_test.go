package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestSignParseRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	value, err := signSID("abc", secret)
	require.NoError(t, err)

	sid, err := parseSID(value, secret)
	require.NoError(t, err)
	require.Equal(t, "abc", sid)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	value, err := signSID("abc", []byte("one"))
	require.NoError(t, err)

	_, err = parseSID(value, []byte("two"))
	require.Error(t, err)
}

func TestMiddlewareIssuesAndKeepsSID(t *testing.T) {
	secret := []byte("test-secret")
	e := echo.New()

	var seen []string
	handler := Middleware(secret)(func(c echo.Context) error {
		seen = append(seen, SID(c))
		return c.NoContent(http.StatusOK)
	})

	// first request: no cookie, one gets issued
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	require.Len(t, seen, 1)
	require.NotEmpty(t, seen[0])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, CookieName, cookies[0].Name)

	// second request with the cookie keeps the same sid
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	require.Len(t, seen, 2)
	require.Equal(t, seen[0], seen[1])
	require.Empty(t, rec.Result().Cookies())
}

func TestMiddlewareReplacesForgedCookie(t *testing.T) {
	e := echo.New()

	handler := Middleware([]byte("real"))(func(c echo.Context) error {
		require.NotEmpty(t, SID(c))
		return c.NoContent(http.StatusOK)
	})

	forged, err := signSID("abc", []byte("fake"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: forged})
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))

	// a fresh cookie is issued in place of the forged one
	require.Len(t, rec.Result().Cookies(), 1)
}
