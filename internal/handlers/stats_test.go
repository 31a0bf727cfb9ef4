package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatsDefaultToZero(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/session_stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec)
	require.Equal(t, float64(0), resp["index_visits"])
	require.Equal(t, float64(0), resp["detail_visits"])
	require.Equal(t, float64(0), resp["create_product_visits"])
	require.Equal(t, float64(0), resp["basket_visits"])
}

func TestIndexVisitsIncrement(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 3; i++ {
		rec := env.do(http.MethodGet, "/", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	resp := decode(t, env.do(http.MethodGet, "/session_stats", nil))
	require.Equal(t, float64(3), resp["index_visits"])
	require.Contains(t, resp, "index_start_time")
}

func TestVisitCountersAreIndependent(t *testing.T) {
	env := newTestEnv(t)
	env.seedProducts()

	env.do(http.MethodGet, "/", nil)
	env.do(http.MethodGet, "/products/1", nil)
	env.do(http.MethodGet, "/products/2", nil)
	env.do(http.MethodGet, "/product/create", nil)

	resp := decode(t, env.do(http.MethodGet, "/session_stats", nil))
	require.Equal(t, float64(1), resp["index_visits"])
	require.Equal(t, float64(2), resp["detail_visits"])
	require.Equal(t, float64(1), resp["create_product_visits"])
	require.Equal(t, float64(0), resp["basket_visits"])
}

func TestBasketVisitTrackedOnGetOnly(t *testing.T) {
	env := newTestEnv(t)

	env.do(http.MethodGet, "/basket", nil)
	env.do(http.MethodPost, "/basket", map[string]string{})

	resp := decode(t, env.do(http.MethodGet, "/session_stats", nil))
	require.Equal(t, float64(1), resp["basket_visits"])
}

func TestCheckoutKeepsVisitCounters(t *testing.T) {
	env := newTestEnv(t)
	env.seedProducts()

	env.do(http.MethodGet, "/", nil)
	env.do(http.MethodGet, "/basket/change?pk=1&action=add", nil)

	rec := env.do(http.MethodPost, "/basket", map[string]string{
		"first_name": "Anna",
		"last_name":  "Smith",
		"phone":      "+15550100",
		"email":      "anna@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decode(t, env.do(http.MethodGet, "/session_stats", nil))
	require.Equal(t, float64(1), resp["index_visits"])
}
