package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"starburger/internal/delivery/http/response"
	"starburger/internal/delivery/http/validator"
	"starburger/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGeocodeUsecase returns a canned resolution outcome.
type stubGeocodeUsecase struct {
	resolved map[string]*usecase.Coordinates
	err      error
}

func (s *stubGeocodeUsecase) Resolve(_ context.Context, _ []string) (map[string]*usecase.Coordinates, error) {
	return s.resolved, s.err
}

func newGeocodeTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(http.MethodPost, "/api/geocode", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope
}

func TestGeocodeHandler_ResolveAddresses_Success(t *testing.T) {
	handler := &GeocodeHandler{
		geocodeUC: &stubGeocodeUsecase{
			resolved: map[string]*usecase.Coordinates{
				"Moscow, Red Square 1": {Latitude: 55.753930, Longitude: 37.620795},
				"nowhere at all":       nil,
			},
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	c, rec := newGeocodeTestContext(t, `{"addresses":["Moscow, Red Square 1","nowhere at all"]}`)
	require.NoError(t, handler.ResolveAddresses(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeResponse(t, rec)
	assert.True(t, envelope.Success)
	resolved, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, resolved, "Moscow, Red Square 1")
	assert.Nil(t, resolved["nowhere at all"])
}

func TestGeocodeHandler_ResolveAddresses_PartialFailureKeepsResolved(t *testing.T) {
	handler := &GeocodeHandler{
		geocodeUC: &stubGeocodeUsecase{
			resolved: map[string]*usecase.Coordinates{
				"Moscow, Red Square 1": {Latitude: 55.753930, Longitude: 37.620795},
			},
			err: errors.New(`failed to geocode "Moscow, Tverskaya 7": timeout`),
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	c, rec := newGeocodeTestContext(t, `{"addresses":["Moscow, Red Square 1","Moscow, Tverskaya 7"]}`)
	require.NoError(t, handler.ResolveAddresses(c))

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	// The failure is reported, but addresses resolved before it are kept
	// so the caller only retries the missing ones.
	envelope := decodeResponse(t, rec)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "GEOCODE_PROVIDER_UNAVAILABLE", envelope.Error.Code)
	assert.Contains(t, envelope.Error.Details, "Moscow, Tverskaya 7")

	resolved, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, resolved, "Moscow, Red Square 1")
	assert.NotContains(t, resolved, "Moscow, Tverskaya 7")
}

func TestGeocodeHandler_ResolveAddresses_EmptyBatchRejected(t *testing.T) {
	handler := &GeocodeHandler{
		geocodeUC: &stubGeocodeUsecase{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	c, rec := newGeocodeTestContext(t, `{"addresses":[]}`)
	require.NoError(t, handler.ResolveAddresses(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
