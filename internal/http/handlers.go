package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/example/ride-client/internal/format"
	"github.com/example/ride-client/internal/models"
	"github.com/example/ride-client/internal/observability"
	"github.com/example/ride-client/internal/storage"
)

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		ClerkID string `json:"clerkId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}
	if req.Name == "" || req.Email == "" || req.ClerkID == "" {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	u := &models.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		ClerkID:   req.ClerkID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Users.CreateUser(u); err != nil {
		if err == storage.ErrDuplicateEmail {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		s.requestLogger(r.Context()).Error("user creation failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	observability.UsersCreated.Inc()
	writeJSON(w, http.StatusCreated, map[string]any{"data": u})
}

func (s *Server) handleListDrivers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	latStr, lngStr := q.Get("lat"), q.Get("lng")

	var pings []models.DriverPing
	if latStr != "" && lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil {
			writeError(w, http.StatusBadRequest, "invalid coordinates")
			return
		}
		pings = s.Drivers.Nearby(lat, lng, 10)
	} else {
		pings = s.Drivers.All(50)
	}

	if pings == nil {
		pings = []models.DriverPing{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": pings})
}

func (s *Server) handleCreateRide(w http.ResponseWriter, r *http.Request) {
	var ride models.Ride
	if err := json.NewDecoder(r.Body).Decode(&ride); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}
	if ride.UserEmail == "" || ride.OriginAddress == "" || ride.DestinationAddress == "" {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	ride.RideID = uuid.NewString()
	now := time.Now().UTC()
	if ride.CreatedAt == "" {
		ride.CreatedAt = now.Format("2006-01-02")
	}
	if ride.RideTime == "" {
		ride.RideTime = now.Format("15:04:05")
	}

	if err := s.Rides.SaveRide(&ride); err != nil {
		s.requestLogger(r.Context()).Error("ride save failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	if err := s.Events.PublishRideCreated(ride); err != nil {
		// event delivery is best effort
		s.requestLogger(r.Context()).Warn("ride event publish failed", "ride_id", ride.RideID, "error", err)
	}

	observability.RidesCreated.Inc()
	writeJSON(w, http.StatusCreated, map[string]any{"data": ride})
}

func (s *Server) handleListRides(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	rides, err := s.Rides.RidesByUser(email)
	if err != nil {
		s.requestLogger(r.Context()).Error("ride listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	rides = format.SortRides(rides)
	if rides == nil {
		rides = []models.Ride{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": rides})
}

func (s *Server) handleDriverLocation(w http.ResponseWriter, r *http.Request) {
	var ping models.DriverPing
	if err := json.NewDecoder(r.Body).Decode(&ping); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ping.Online = true

	if err := s.Events.PublishDriverLocation(ping); err != nil {
		s.requestLogger(r.Context()).Warn("location event publish failed", "driver_id", ping.ID, "error", err)
	}
	s.Drivers.Upsert(ping)
	if s.Stream != nil {
		s.Stream.Broadcast(ping)
	}

	observability.LocationPings.Inc()
	w.WriteHeader(http.StatusNoContent)
}

var upgrader = websocket.Upgrader{}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	if s.Stream == nil {
		writeError(w, http.StatusServiceUnavailable, "driver stream disabled")
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, "upgrade failed")
		return
	}
	id := uuid.NewString()
	s.Stream.Add(id, conn)

	// drain until the client hangs up, then drop the session
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.Stream.Remove(id)
				_ = conn.Close()
				return
			}
		}
	}()
}
