// Package mockrental is an in-memory stand-in for the rental platform API.
// It exists so the client, the CLI and the integration tests can run
// without the real backend; it is a development double, not product
// server logic.
package mockrental

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"rentiva/api"
	"rentiva/models"
	"rentiva/ratelim"
	"rentiva/utils"
)

// Server wires the stub handlers around one Store.
type Server struct {
	store *Store
}

// NewServer builds a stub around a fresh seeded store.
func NewServer() *Server {
	return &Server{store: NewStore()}
}

// Store exposes the backing store so tests can seed extra state.
func (s *Server) Store() *Store {
	return s.store
}

// Handler builds the full route table with CORS and rate limiting, the
// same middleware stack the real platform fronts the web client with.
func (s *Server) Handler() http.Handler {
	rl := ratelim.NewRateLimiter(50, 20)
	router := httprouter.New()

	router.GET("/health", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		fmt.Fprint(w, "200")
	})

	router.POST("/api/auth/login", rl.Limit(s.login))
	router.GET("/api/vehicles", s.listVehicles)
	router.GET("/api/vehicles/by-brand/:brand", s.vehiclesByBrand)

	router.POST("/api/bookings/:vehicleId", authenticate(s.createBooking))
	router.GET("/api/bookings/bookUser", authenticate(s.userBookings))
	router.PUT("/api/bookings/:id", authenticate(s.updateBooking))

	router.POST("/api/payment/create-checkout-session/:bookingId", authenticate(s.createPaymentSession))
	router.PUT("/api/payment/:bookingId/payment-status", authenticate(s.updatePaymentStatus))

	router.POST("/api/review/:bookingId", authenticate(s.createReview))

	router.GET("/api/notification/unread/user", authenticate(s.unreadList))
	router.GET("/api/notification/unread/count/user", authenticate(s.unreadCount))
	router.POST("/api/notification/mark-all-read/user", authenticate(s.markAllRead))
	router.PATCH("/api/notification/:id/read", authenticate(s.markOneRead))

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Idempotency-Key"},
	})
	return c.Handler(router)
}

// ---------- Auth ----------

func (s *Server) login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	s.store.mu.Lock()
	user, ok := s.store.users[creds.Username]
	s.store.mu.Unlock()
	if !ok || user.Password != creds.Password {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := mintToken(user.ID, creds.Username)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"token": token})
}

// ---------- Vehicles ----------

func (s *Server) listVehicles(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.store.mu.Lock()
	vehicles := append([]models.Vehicle(nil), s.store.vehicles...)
	s.store.mu.Unlock()
	utils.RespondWithJSON(w, http.StatusOK, vehicles)
}

func (s *Server) vehiclesByBrand(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	brand := ps.ByName("brand")

	s.store.mu.Lock()
	var matches []models.Vehicle
	for _, v := range s.store.vehicles {
		if v.Brand == brand {
			matches = append(matches, v)
		}
	}
	s.store.mu.Unlock()

	if len(matches) == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "No vehicles found for this brand")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, matches)
}

// ---------- Bookings ----------

func (s *Server) createBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	vehicleID := ps.ByName("vehicleId")

	var req api.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.StartDate == "" || req.EndDate == "" || req.PickupLocation == "" || req.PaymentMethod == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required booking fields")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	// A retried submit with the same idempotency key returns the booking
	// the first attempt created.
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		if id, seen := s.store.idempotency[key]; seen {
			utils.RespondWithJSON(w, http.StatusOK, s.store.bookings[id])
			return
		}
	}

	vehicle := s.store.vehicleByID(vehicleID)
	if vehicle == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Vehicle not found")
		return
	}
	if !vehicle.Available {
		utils.RespondWithError(w, http.StatusConflict, "Vehicle is not available")
		return
	}

	booking := &models.Booking{
		ID:             uuid.NewString(),
		VehicleID:      vehicleID,
		Vehicle:        vehicle,
		UserID:         userID(r),
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		TotalPrice:     req.TotalPrice,
		PickupLocation: req.PickupLocation,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  models.PaymentUnpaid,
		Status:         models.BookingPending,
		CreatedAt:      time.Now().Unix(),
	}
	s.store.bookings[booking.ID] = booking
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		s.store.idempotency[key] = booking.ID
	}

	s.store.pushNotification(booking.UserID, "Réservation reçue",
		fmt.Sprintf("Votre réservation %s %s est en attente de confirmation.", vehicle.Brand, vehicle.Model))

	utils.RespondWithJSON(w, http.StatusCreated, booking)
}

func (s *Server) userBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	uid := userID(r)

	s.store.mu.Lock()
	var out []models.Booking
	for _, b := range s.store.bookings {
		if b.UserID == uid {
			out = append(out, *b)
		}
	}
	s.store.mu.Unlock()

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookings": out})
}

func (s *Server) updateBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	booking, ok := s.store.bookings[ps.ByName("id")]
	if !ok || booking.UserID != userID(r) {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if update.Status != "" {
		booking.Status = update.Status
	}
	utils.RespondWithJSON(w, http.StatusOK, booking)
}

// ---------- Payments ----------

func (s *Server) createPaymentSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	booking, ok := s.store.bookings[ps.ByName("bookingId")]
	if !ok || booking.UserID != userID(r) {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if booking.PaymentStatus == models.PaymentPaid {
		utils.RespondWithError(w, http.StatusConflict, "Booking is already paid")
		return
	}

	sessionID := uuid.NewString()
	booking.PaymentStatus = models.PaymentProcessing
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"sessionId": sessionID,
		"url":       "http://localhost:5173/checkout/" + sessionID,
	})
}

func (s *Server) updatePaymentStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var update struct {
		PaymentStatus string `json:"payment_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	booking, ok := s.store.bookings[ps.ByName("bookingId")]
	if !ok || booking.UserID != userID(r) {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	booking.PaymentStatus = update.PaymentStatus
	utils.RespondWithJSON(w, http.StatusOK, booking)
}

// ---------- Reviews ----------

func (s *Server) createReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if review.Rating < 0.5 || review.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 0.5 and 5")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	booking, ok := s.store.bookings[ps.ByName("bookingId")]
	if !ok || booking.UserID != userID(r) {
		utils.RespondWithError(w, http.StatusNotFound, "Booking not found")
		return
	}
	if booking.HasReview {
		utils.RespondWithError(w, http.StatusConflict, "Booking already has a review")
		return
	}
	booking.HasReview = true
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"status": "success"})
}

// ---------- Notifications ----------

func (s *Server) unreadList(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.store.mu.Lock()
	items := s.store.unread(userID(r))
	s.store.mu.Unlock()
	if items == nil {
		items = []models.Notification{}
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

func (s *Server) unreadCount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	s.store.mu.Lock()
	count := len(s.store.unread(userID(r)))
	s.store.mu.Unlock()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"count": count})
}

func (s *Server) markAllRead(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	uid := userID(r)
	s.store.mu.Lock()
	list := s.store.notifications[uid]
	for i := range list {
		list[i].IsRead = true
	}
	s.store.mu.Unlock()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success"})
}

func (s *Server) markOneRead(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	uid := userID(r)
	id := ps.ByName("id")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	list := s.store.notifications[uid]
	for i := range list {
		if list[i].ID == id {
			list[i].IsRead = true
			utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success"})
			return
		}
	}
	utils.RespondWithError(w, http.StatusNotFound, "Notification not found")
}
