package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testSource(t *testing.T, url string) *Source {
	return NewSource(url, zaptest.NewLogger(t), SourceOptions{
		Timeout:        2 * time.Second,
		MaxElapsedTime: 2 * time.Second,
	})
}

func TestSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"currency":"ETH","price":3000,"date":"2023-08-29T07:10:40.000Z"},
			{"currency":"BTC","price":50000,"date":"2023-08-29T07:10:40.000Z"},
			{"currency":"ETH","price":3100,"date":"2023-08-29T07:10:52.000Z"}
		]`))
	}))
	defer srv.Close()

	catalog, err := testSource(t, srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, catalog.Len())

	price, ok := catalog.Lookup("ETH")
	require.True(t, ok)
	assert.Equal(t, 3100.0, price, "duplicate feed entries resolve last-write-wins")
}

func TestSourceFetchMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	_, err := testSource(t, srv.URL).Fetch(context.Background())
	require.Error(t, err)
}

func TestSourceFetchRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[{"currency":"ETH","price":3000,"date":""}]`))
	}))
	defer srv.Close()

	catalog, err := testSource(t, srv.URL).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Len())
	assert.GreaterOrEqual(t, calls, 3)
}

func TestSourceFetchClientErrorIsPermanent(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testSource(t, srv.URL).Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls, "4xx must not be retried")
}
