package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ride-client/internal/geo"
	"github.com/example/ride-client/internal/models"
	"github.com/example/ride-client/internal/storage"
	"github.com/example/ride-client/internal/stream"
)

func newHandlerTestServer() (*Server, *storage.MemoryStore, *geo.Index) {
	store := storage.NewMemoryStore()
	index := geo.NewIndex()
	srv := NewServer(Deps{
		Payments: &fakeGateway{},
		Users:    store,
		Rides:    store,
		Drivers:  index,
		Stream:   stream.NewRegistry(nil),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return srv, store, index
}

func TestCreateUser(t *testing.T) {
	srv, store, _ := newHandlerTestServer()

	w := postJSON(t, srv, "/api/user", map[string]string{
		"name":    "Taro Yamada",
		"email":   "taro@example.com",
		"clerkId": "user_2abc",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp struct {
		Data models.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.ID)
	assert.Equal(t, "user_2abc", resp.Data.ClerkID)

	u, err := store.UserByEmail("taro@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Taro Yamada", u.Name)
}

func TestCreateUserValidationAndDuplicate(t *testing.T) {
	srv, _, _ := newHandlerTestServer()

	w := postJSON(t, srv, "/api/user", map[string]string{"name": "Taro"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := map[string]string{"name": "Taro", "email": "t@example.com", "clerkId": "user_1"}
	require.Equal(t, http.StatusCreated, postJSON(t, srv, "/api/user", body).Code)
	assert.Equal(t, http.StatusConflict, postJSON(t, srv, "/api/user", body).Code)
}

func TestCreateAndListRidesSorted(t *testing.T) {
	srv, _, _ := newHandlerTestServer()

	rides := []models.Ride{
		{OriginAddress: "A", DestinationAddress: "B", UserEmail: "taro@example.com", CreatedAt: "2024-01-02", RideTime: "10:00", FarePrice: "12.50", PaymentStatus: "paid"},
		{OriginAddress: "C", DestinationAddress: "D", UserEmail: "taro@example.com", CreatedAt: "2024-01-01", RideTime: "10:00", FarePrice: "8.00", PaymentStatus: "paid"},
	}
	for _, r := range rides {
		require.Equal(t, http.StatusCreated, postJSON(t, srv, "/api/ride", r).Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/ride/taro@example.com", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []models.Ride `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "2024-01-01", resp.Data[0].CreatedAt, "earliest ride first")
	assert.Equal(t, "2024-01-02", resp.Data[1].CreatedAt)
	assert.NotEmpty(t, resp.Data[0].RideID)
}

func TestListRidesEmpty(t *testing.T) {
	srv, _, _ := newHandlerTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/ride/nobody@example.com", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[]}`, w.Body.String())
}

func TestDriverLocationAndListing(t *testing.T) {
	srv, _, _ := newHandlerTestServer()

	pings := []models.DriverPing{
		{Driver: models.Driver{ID: 1, FirstName: "James", LastName: "Wilson"}, Location: models.LatLng{Latitude: 35.66, Longitude: 139.74}},
		{Driver: models.Driver{ID: 2, FirstName: "David", LastName: "Brown"}, Location: models.LatLng{Latitude: 35.70, Longitude: 139.75}},
	}
	for _, p := range pings {
		require.Equal(t, http.StatusNoContent, postJSON(t, srv, "/internal/driver/locations", p).Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/driver?lat=35.66&lng=139.74", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []models.DriverPing `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, 1, resp.Data[0].ID, "nearest driver first")
	assert.True(t, resp.Data[0].Online, "ingested drivers are marked online")
}

func TestListDriversBadCoordinates(t *testing.T) {
	srv, _, _ := newHandlerTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/driver?lat=abc&lng=139.74", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthz(t *testing.T) {
	srv, _, _ := newHandlerTestServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
