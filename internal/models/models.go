package models

import "time"

// LatLng is a WGS84 position. Absence is expressed as a nil *LatLng;
// (0,0) is a valid coordinate.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Region is a map viewport: center plus the span on each axis.
type Region struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LatitudeDelta  float64 `json:"latitudeDelta"`
	LongitudeDelta float64 `json:"longitudeDelta"`
}

type Driver struct {
	ID        int     `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	CarSeats  int     `json:"car_seats"`
	Rating    float64 `json:"rating"` // 0..5
}

// MarkerData is a driver rendered on the map: position, display title and,
// once estimated, travel time in minutes and the fare as a string with two
// decimals.
type MarkerData struct {
	Driver
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Title     string  `json:"title"`
	Time      float64 `json:"time,omitempty"`
	Price     string  `json:"price,omitempty"`
}

// DriverPing is one location report from a driver device.
type DriverPing struct {
	Driver
	Location LatLng    `json:"location"`
	Online   bool      `json:"online"`
	Updated  time.Time `json:"updated"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ClerkID   string    `json:"clerk_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Ride is a completed or scheduled trip. CreatedAt is a YYYY-MM-DD date and
// RideTime an HH:MM or HH:MM:SS clock time; history sorting parses the pair.
type Ride struct {
	RideID               string  `json:"ride_id"`
	OriginAddress        string  `json:"origin_address"`
	DestinationAddress   string  `json:"destination_address"`
	OriginLatitude       float64 `json:"origin_latitude"`
	OriginLongitude      float64 `json:"origin_longitude"`
	DestinationLatitude  float64 `json:"destination_latitude"`
	DestinationLongitude float64 `json:"destination_longitude"`
	FarePrice            string  `json:"fare_price"`
	PaymentStatus        string  `json:"payment_status"`
	DriverID             int     `json:"driver_id"`
	UserEmail            string  `json:"user_email"`
	RideTime             string  `json:"ride_time"`
	CreatedAt            string  `json:"created_at"`
}
