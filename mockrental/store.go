package mockrental

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"rentiva/models"
)

// Store is the stub's in-memory state. Everything resets on restart; that
// is the point of a development double.
type Store struct {
	mu            sync.Mutex
	vehicles      []models.Vehicle
	bookings      map[string]*models.Booking
	notifications map[string][]models.Notification
	users         map[string]seedUser
	idempotency   map[string]string // Idempotency-Key -> booking ID
}

type seedUser struct {
	ID       string
	Password string
}

// NewStore seeds a small catalogue and one demo account (demo/demo123).
func NewStore() *Store {
	s := &Store{
		bookings:      make(map[string]*models.Booking),
		notifications: make(map[string][]models.Notification),
		idempotency:   make(map[string]string),
		users: map[string]seedUser{
			"demo": {ID: "user-demo", Password: "demo123"},
		},
		vehicles: []models.Vehicle{
			{ID: "veh-001", Brand: "Renault", Model: "Clio", Year: 2022, PricePerDay: 80, Available: true, Image: "/img/clio.jpg"},
			{ID: "veh-002", Brand: "Renault", Model: "Captur", Year: 2023, PricePerDay: 120, Available: true, Image: "/img/captur.jpg"},
			{ID: "veh-003", Brand: "Peugeot", Model: "208", Year: 2021, PricePerDay: 90, Available: true, Image: "/img/208.jpg"},
			{ID: "veh-004", Brand: "Kia", Model: "Picanto", Year: 2020, PricePerDay: 60, Available: false, Image: "/img/picanto.jpg"},
		},
	}
	s.pushNotification("user-demo", "Bienvenue", "Votre compte est prêt.")
	return s
}

func (s *Store) pushNotification(userID, title, message string) {
	n := models.Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.notifications[userID] = append(s.notifications[userID], n)
}

// PushNotification appends an unread notification for a user. Exported so
// tests can stage unread items.
func (s *Store) PushNotification(userID, title, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushNotification(userID, title, message)
}

func (s *Store) vehicleByID(id string) *models.Vehicle {
	for i := range s.vehicles {
		if s.vehicles[i].ID == id {
			return &s.vehicles[i]
		}
	}
	return nil
}

func (s *Store) unread(userID string) []models.Notification {
	var out []models.Notification
	for _, n := range s.notifications[userID] {
		if !n.IsRead {
			out = append(out, n)
		}
	}
	return out
}
