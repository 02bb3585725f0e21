package checkout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentiva/models"
)

func validDraft() *models.ReservationDraft {
	return &models.ReservationDraft{
		VehicleID:      "veh-123",
		Brand:          "Renault",
		Model:          "Clio",
		Year:           2022,
		PricePerDay:    100,
		PickUpDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		DropOffDate:    time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC),
		DurationDays:   3,
		TotalPrice:     300,
		PickupLocation: "Tunis Centre",
	}
}

func TestNewStateValidDraft(t *testing.T) {
	s := NewState(validDraft())
	assert.Equal(t, PhaseAwaitingPayment, s.Phase)
	require.NotNil(t, s.Draft)
	assert.Empty(t, s.Err)
}

func TestNewStateMissingDraft(t *testing.T) {
	s := NewState(nil)
	assert.Equal(t, PhaseInvalid, s.Phase)
	assert.Equal(t, "missing reservation data", s.Err)
}

func TestNewStateItemizesMissingFields(t *testing.T) {
	d := validDraft()
	d.Brand = ""
	d.TotalPrice = 0
	s := NewState(d)

	assert.Equal(t, PhaseInvalid, s.Phase)
	assert.Contains(t, s.Err, "missing required fields")
	assert.Contains(t, s.Err, "brand")
	assert.Contains(t, s.Err, "totalPrice")
	assert.NotContains(t, s.Err, "model")
}

func TestNewStateMissingTotalPrice(t *testing.T) {
	d := validDraft()
	d.TotalPrice = 0
	s := NewState(d)
	assert.Equal(t, PhaseInvalid, s.Phase)
	assert.Contains(t, s.Err, "totalPrice")
}

func TestNewStateZeroDayDraftIsValid(t *testing.T) {
	// A zero-day rental legitimately totals zero; that is not a missing
	// price.
	d := validDraft()
	d.DropOffDate = d.PickUpDate
	d.DurationDays = 0
	d.TotalPrice = 0
	s := NewState(d)
	assert.Equal(t, PhaseAwaitingPayment, s.Phase)
}

func TestNewStateMissingVehicleID(t *testing.T) {
	d := validDraft()
	d.VehicleID = ""
	s := NewState(d)
	assert.Equal(t, PhaseInvalid, s.Phase)
	assert.Contains(t, s.Err, "vehicleId")
}

func TestNewStateCopiesDraft(t *testing.T) {
	d := validDraft()
	s := NewState(d)
	d.Brand = "mutated"
	assert.Equal(t, "Renault", s.Draft.Brand)
}

func TestConfirmWithoutPaymentMethod(t *testing.T) {
	s := NewState(validDraft()).RequestConfirmation()
	assert.Equal(t, PhaseAwaitingPayment, s.Phase)
	assert.Equal(t, ErrPaymentMethodRequired.Error(), s.Err)
}

func TestChoosePaymentRejectsUnknownMethod(t *testing.T) {
	s := NewState(validDraft()).ChoosePayment("paypal")
	assert.Empty(t, s.Payment)
	assert.NotEmpty(t, s.Err)
}

func TestHappyPathTransitions(t *testing.T) {
	s := NewState(validDraft())

	s = s.ChoosePayment(models.PaymentCash)
	assert.Equal(t, models.PaymentCash, s.Payment)

	s = s.RequestConfirmation()
	assert.Equal(t, PhaseAwaitingConfirmation, s.Phase)

	s = s.BeginSubmit()
	assert.Equal(t, PhaseSubmitting, s.Phase)

	s = s.Succeed()
	assert.Equal(t, PhaseSucceeded, s.Phase)
	assert.Nil(t, s.Draft, "draft is released on success")
}

func TestCancelKeepsPaymentMethod(t *testing.T) {
	s := NewState(validDraft()).
		ChoosePayment(models.PaymentStripe).
		RequestConfirmation().
		CancelConfirmation()

	assert.Equal(t, PhaseAwaitingPayment, s.Phase)
	assert.Equal(t, models.PaymentStripe, s.Payment)
}

func TestFailKeepsDraftAndUsesServerMessage(t *testing.T) {
	s := NewState(validDraft()).
		ChoosePayment(models.PaymentCash).
		RequestConfirmation().
		BeginSubmit().
		Fail("Server error")

	assert.Equal(t, PhaseFailed, s.Phase)
	assert.Equal(t, "Server error", s.Err)
	assert.NotNil(t, s.Draft, "draft survives a failed submission")
}

func TestFailFallsBackToGenericMessage(t *testing.T) {
	s := NewState(validDraft()).
		ChoosePayment(models.PaymentCash).
		RequestConfirmation().
		BeginSubmit().
		Fail("")
	assert.Equal(t, GenericFailure, s.Err)
}

func TestRetryReopensPaymentChoice(t *testing.T) {
	s := NewState(validDraft()).
		ChoosePayment(models.PaymentCash).
		RequestConfirmation().
		BeginSubmit().
		Fail("Server error").
		Retry()

	assert.Equal(t, PhaseAwaitingPayment, s.Phase)
	assert.Empty(t, s.Err)
	assert.NotNil(t, s.Draft)
}

func TestTransitionsIgnoredOutsideTheirPhase(t *testing.T) {
	s := NewState(validDraft())
	assert.Equal(t, s, s.CancelConfirmation())
	assert.Equal(t, s, s.BeginSubmit())
	assert.Equal(t, s, s.Succeed())
	assert.Equal(t, s, s.Fail("boom"))
	assert.Equal(t, s, s.Retry())
}

func TestConfirmationTextRestatesTheDeal(t *testing.T) {
	s := NewState(validDraft()).ChoosePayment(models.PaymentCash).RequestConfirmation()
	text := s.ConfirmationText()
	assert.Contains(t, text, "Renault Clio")
	assert.Contains(t, text, "2024-01-01")
	assert.Contains(t, text, "2024-01-04")
	assert.Contains(t, text, "300.00")
}
