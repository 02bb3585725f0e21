package checkout

import (
	"context"
	"errors"
	"sync"

	"rentiva/api"
	"rentiva/models"
)

// BookingCreator is the one collaborator call checkout makes.
type BookingCreator interface {
	CreateBooking(ctx context.Context, vehicleID string, req api.CreateBookingRequest) (*models.Booking, error)
}

var (
	ErrNotConfirmable = errors.New("checkout is not awaiting confirmation")
	ErrSubmitInFlight = errors.New("a submission is already in flight")
)

// Result is what moves to the success screen: the server booking record
// plus the vehicle summary from the draft.
type Result struct {
	Booking *models.Booking
	Vehicle models.VehicleSummary
}

// Machine owns the live checkout state for one draft and applies one
// transition per user event. Only one booking request per draft can be
// outstanding; the confirm action is inert while submitting.
type Machine struct {
	mu      sync.Mutex
	state   State
	creator BookingCreator
}

// NewMachine validates the draft immediately, as the checkout screen does
// on mount.
func NewMachine(creator BookingCreator, draft *models.ReservationDraft) *Machine {
	return &Machine{
		state:   NewState(draft),
		creator: creator,
	}
}

// State returns a snapshot of the current checkout state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// ChoosePayment records the user's payment method selection.
func (m *Machine) ChoosePayment(method models.PaymentMethod) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = m.state.ChoosePayment(method)
}

// Confirm asks for the confirmation checkpoint. Returns
// ErrPaymentMethodRequired when no method is selected yet.
func (m *Machine) Confirm() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = m.state.RequestConfirmation()
	if m.state.Phase == PhaseAwaitingPayment && m.state.Err != "" {
		return ErrPaymentMethodRequired
	}
	return nil
}

// Cancel backs out of the confirmation checkpoint, keeping the chosen
// payment method.
func (m *Machine) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = m.state.CancelConfirmation()
}

// Retry re-opens payment choice after a failed submission.
func (m *Machine) Retry() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = m.state.Retry()
}

// Submit issues the booking-creation request. Failures keep the draft and
// surface the server message through the Failed state; success releases
// the draft and hands back the booking plus vehicle summary.
func (m *Machine) Submit(ctx context.Context) (*Result, error) {
	m.mu.Lock()
	if m.state.Phase == PhaseSubmitting {
		m.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if m.state.Phase != PhaseAwaitingConfirmation {
		m.mu.Unlock()
		return nil, ErrNotConfirmable
	}

	m.state = m.state.BeginSubmit()
	draft := *m.state.Draft
	method := m.state.Payment
	m.mu.Unlock()

	booking, err := m.creator.CreateBooking(ctx, draft.VehicleID, api.CreateBookingRequest{
		StartDate:      draft.PickUpDate.Format(api.DateLayout),
		EndDate:        draft.DropOffDate.Format(api.DateLayout),
		TotalPrice:     draft.TotalPrice,
		PickupLocation: draft.PickupLocation,
		PaymentMethod:  string(method),
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		msg := ""
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			msg = apiErr.Message
		}
		m.state = m.state.Fail(msg)
		return nil, err
	}

	m.state = m.state.Succeed()
	return &Result{Booking: booking, Vehicle: draft.Summary()}, nil
}
