package geocode

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"starburger/config"
	"starburger/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) service.Geocoder {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewClient(&config.GeocoderConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
	}, logger)
}

func geocoderBody(positions ...string) string {
	members := ""
	for i, pos := range positions {
		if i > 0 {
			members += ","
		}
		members += `{"GeoObject":{"Point":{"pos":"` + pos + `"}}}`
	}

	return `{"response":{"GeoObjectCollection":{"featureMember":[` + members + `]}}}`
}

func TestClient_Fetch_ParsesLongitudeFirst(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(geocoderBody("37.617635 55.755814", "30.315868 59.939095")))
	})

	point, err := client.Fetch(context.Background(), "Moscow, Red Square 1")
	require.NoError(t, err)
	require.NotNil(t, point)

	// The provider answers "<longitude> <latitude>".
	assert.InDelta(t, 37.617635, point.Lon(), 1e-9)
	assert.InDelta(t, 55.755814, point.Lat(), 1e-9)

	assert.Equal(t, []string{"Moscow, Red Square 1"}, gotQuery["geocode"])
	assert.Equal(t, []string{"test-key"}, gotQuery["apikey"])
	assert.Equal(t, []string{"json"}, gotQuery["format"])
}

func TestClient_Fetch_NoMatchReturnsNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(geocoderBody()))
	})

	point, err := client.Fetch(context.Background(), "gibberish qwerty")
	require.NoError(t, err)
	assert.Nil(t, point)
}

func TestClient_Fetch_ServerErrorIsProviderUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	point, err := client.Fetch(context.Background(), "Moscow, Red Square 1")
	require.Error(t, err)
	assert.Nil(t, point)
	assert.ErrorIs(t, err, service.ErrProviderUnavailable)
}

func TestClient_Fetch_MalformedBodyIsProviderUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	point, err := client.Fetch(context.Background(), "Moscow, Red Square 1")
	require.Error(t, err)
	assert.Nil(t, point)
	assert.ErrorIs(t, err, service.ErrProviderUnavailable)
}

func TestClient_Fetch_MalformedPointIsProviderUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(geocoderBody("55.755814")))
	})

	point, err := client.Fetch(context.Background(), "Moscow, Red Square 1")
	require.Error(t, err)
	assert.Nil(t, point)
	assert.ErrorIs(t, err, service.ErrProviderUnavailable)
}
