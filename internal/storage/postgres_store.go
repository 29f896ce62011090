package storage

import (
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/example/ride-client/internal/models"
)

// PostgresStore implements UserStore and RideStore on Postgres.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	// quick ping
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (p *PostgresStore) DB() *sql.DB { return p.db }

func (p *PostgresStore) CreateUser(u *models.User) error {
	_, err := p.db.Exec(
		`INSERT INTO users(id, name, email, clerk_id, created_at) VALUES($1,$2,$3,$4,$5)`,
		u.ID, u.Name, u.Email, u.ClerkID, u.CreatedAt)
	return err
}

func (p *PostgresStore) UserByEmail(email string) (*models.User, error) {
	var u models.User
	err := p.db.QueryRow(
		`SELECT id, name, email, clerk_id, created_at FROM users WHERE email=$1`,
		email).Scan(&u.ID, &u.Name, &u.Email, &u.ClerkID, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (p *PostgresStore) SaveRide(r *models.Ride) error {
	_, err := p.db.Exec(
		`INSERT INTO rides(ride_id, origin_address, destination_address,
			origin_latitude, origin_longitude, destination_latitude, destination_longitude,
			fare_price, payment_status, driver_id, user_email, ride_time, created_at)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		r.RideID, r.OriginAddress, r.DestinationAddress,
		r.OriginLatitude, r.OriginLongitude, r.DestinationLatitude, r.DestinationLongitude,
		r.FarePrice, r.PaymentStatus, r.DriverID, r.UserEmail, r.RideTime, r.CreatedAt)
	return err
}

func (p *PostgresStore) RidesByUser(email string) ([]models.Ride, error) {
	rows, err := p.db.Query(
		`SELECT ride_id, origin_address, destination_address,
			origin_latitude, origin_longitude, destination_latitude, destination_longitude,
			fare_price, payment_status, driver_id, user_email, ride_time, created_at
		 FROM rides WHERE user_email=$1`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Ride
	for rows.Next() {
		var r models.Ride
		if err := rows.Scan(&r.RideID, &r.OriginAddress, &r.DestinationAddress,
			&r.OriginLatitude, &r.OriginLongitude, &r.DestinationLatitude, &r.DestinationLongitude,
			&r.FarePrice, &r.PaymentStatus, &r.DriverID, &r.UserEmail, &r.RideTime, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
