// Package checkout drives a reservation draft through payment choice,
// confirmation and submission. Every user event is a pure transition
// function from one immutable State value to the next; Machine owns the
// current value and the booking request.
package checkout

import (
	"errors"
	"fmt"
	"strings"

	"rentiva/models"
)

// Phase is the checkout position for one draft.
type Phase string

const (
	PhaseValidating           Phase = "validating"
	PhaseInvalid              Phase = "invalid"
	PhaseAwaitingPayment      Phase = "awaiting_payment_choice"
	PhaseAwaitingConfirmation Phase = "awaiting_confirmation"
	PhaseSubmitting           Phase = "submitting"
	PhaseSucceeded            Phase = "succeeded"
	PhaseFailed               Phase = "failed"
)

var ErrPaymentMethodRequired = errors.New("please select a payment method")

// GenericFailure is shown when the server gave no message of its own.
const GenericFailure = "Reservation failed. Please try again."

// State is one immutable snapshot of a checkout attempt. The draft is
// write-once: set when the state is created, cleared only on success.
type State struct {
	Draft   *models.ReservationDraft
	Payment models.PaymentMethod
	Phase   Phase
	Err     string
}

// missingFields lists the required draft fields that are absent, using the
// names the error message reports them under.
func missingFields(d models.ReservationDraft) []string {
	var missing []string
	checks := []struct {
		name string
		ok   bool
	}{
		{"brand", d.Brand != ""},
		{"model", d.Model != ""},
		{"pickUpDate", !d.PickUpDate.IsZero()},
		{"dropOffDate", !d.DropOffDate.IsZero()},
		{"totalPrice", d.TotalPrice != 0 || d.DurationDays == 0},
		{"pickupLocation", strings.TrimSpace(d.PickupLocation) != ""},
		{"vehicleId", d.VehicleID != ""},
	}
	for _, c := range checks {
		if !c.ok {
			missing = append(missing, c.name)
		}
	}
	return missing
}

// NewState validates the draft handed over from vehicle selection. A
// missing draft or missing required fields land in PhaseInvalid with the
// missing field names itemized; the user goes back to selection. Otherwise
// the attempt starts at payment choice.
func NewState(draft *models.ReservationDraft) State {
	if draft == nil {
		return State{Phase: PhaseInvalid, Err: "missing reservation data"}
	}

	d := *draft // private copy, callers cannot mutate it afterwards
	if missing := missingFields(d); len(missing) > 0 {
		return State{Phase: PhaseInvalid, Err: "missing required fields: " + strings.Join(missing, ", ")}
	}
	return State{Draft: &d, Phase: PhaseAwaitingPayment}
}

// ChoosePayment records the payment method. Only meaningful while the
// choice is open; anywhere else the event is ignored.
func (s State) ChoosePayment(m models.PaymentMethod) State {
	if s.Phase != PhaseAwaitingPayment {
		return s
	}
	if m != models.PaymentStripe && m != models.PaymentCash {
		s.Err = fmt.Sprintf("unknown payment method %q", m)
		return s
	}
	s.Payment = m
	s.Err = ""
	return s
}

// RequestConfirmation moves to the human checkpoint. Confirming without a
// payment method reports the error and stays put.
func (s State) RequestConfirmation() State {
	if s.Phase != PhaseAwaitingPayment {
		return s
	}
	if s.Payment == "" {
		s.Err = ErrPaymentMethodRequired.Error()
		return s
	}
	s.Phase = PhaseAwaitingConfirmation
	s.Err = ""
	return s
}

// CancelConfirmation backs out of the checkpoint. The chosen payment
// method is kept.
func (s State) CancelConfirmation() State {
	if s.Phase != PhaseAwaitingConfirmation {
		return s
	}
	s.Phase = PhaseAwaitingPayment
	return s
}

// BeginSubmit enters the single-flight submission window.
func (s State) BeginSubmit() State {
	if s.Phase != PhaseAwaitingConfirmation {
		return s
	}
	s.Phase = PhaseSubmitting
	s.Err = ""
	return s
}

// Succeed releases the draft; it is not reusable after a booking lands.
func (s State) Succeed() State {
	if s.Phase != PhaseSubmitting {
		return s
	}
	s.Phase = PhaseSucceeded
	s.Draft = nil
	return s
}

// Fail records the server message, or the generic fallback, and keeps the
// draft so the user can retry.
func (s State) Fail(msg string) State {
	if s.Phase != PhaseSubmitting {
		return s
	}
	if msg == "" {
		msg = GenericFailure
	}
	s.Phase = PhaseFailed
	s.Err = msg
	return s
}

// Retry re-opens payment choice after a failed submission, same draft.
func (s State) Retry() State {
	if s.Phase != PhaseFailed {
		return s
	}
	s.Phase = PhaseAwaitingPayment
	s.Err = ""
	return s
}

// ConfirmationText restates the vehicle, dates and price shown at the
// checkpoint before the irreversible submit.
func (s State) ConfirmationText() string {
	if s.Draft == nil {
		return ""
	}
	d := s.Draft
	return fmt.Sprintf("Confirm reservation for %s %s from %s to %s, total %.2f?",
		d.Brand, d.Model,
		d.PickUpDate.Format("2006-01-02"), d.DropOffDate.Format("2006-01-02"),
		d.TotalPrice)
}
