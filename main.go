// Command rentiva is the reference client for the rental platform: it logs
// in, searches vehicles by brand and date, builds a reservation draft,
// walks it through checkout and keeps the notification badge polled in the
// background, the same flow the web client runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"rentiva/api"
	"rentiva/checkout"
	"rentiva/config"
	"rentiva/models"
	"rentiva/notify"
	"rentiva/rental"
)

func main() {
	var (
		username = flag.String("user", "demo", "account username")
		password = flag.String("pass", "demo123", "account password")
		brand    = flag.String("brand", "", "vehicle brand to search")
		pickUp   = flag.String("pickup", "", "pick-up date (YYYY-MM-DD)")
		dropOff  = flag.String("dropoff", "", "drop-off date (YYYY-MM-DD)")
		location = flag.String("location", "", "pickup location")
		payment  = flag.String("pay", "cash", "payment method: stripe or cash")
		watch    = flag.Duration("watch", 0, "keep polling notifications for this long after checkout")
	)
	flag.Parse()

	cfg := config.Load()
	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, nil)
	ctx := context.Background()

	sess, err := client.Login(ctx, *username, *password)
	if err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	log.Printf("Logged in as %s", sess.Username)

	poller := notify.NewPoller(client, notify.Options{Interval: cfg.PollInterval})
	poller.Start(ctx)
	defer poller.Stop()

	if *brand == "" {
		vehicles, err := client.ListVehicles(ctx)
		if err != nil {
			log.Fatalf("Vehicle catalogue fetch failed: %v", err)
		}
		fmt.Println("Available brands:", api.Brands(vehicles))
		fmt.Println("Re-run with -brand, -pickup, -dropoff and -location to reserve.")
		return
	}

	dates, err := parseDates(*pickUp, *dropOff)
	if err != nil {
		log.Fatalf("Bad dates: %v", err)
	}
	if err := rental.ValidateDates(dates.PickUp, dates.DropOff); err != nil {
		log.Fatalf("Date validation failed: %v", err)
	}

	results, err := client.SearchByBrand(ctx, *brand, dates)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}

	var chosen *models.Vehicle
	for i := range results {
		if results[i].Available {
			chosen = &results[i]
			break
		}
	}
	if chosen == nil {
		log.Fatalf("No available %s for those dates", *brand)
	}

	pricing := rental.ComputePricing(dates.PickUp, dates.DropOff, chosen.PricePerDay)
	fmt.Printf("%s %s (%d): %.0f/day x %d days = %.0f total\n",
		chosen.Brand, chosen.Model, chosen.Year, chosen.PricePerDay,
		pricing.DurationDays, pricing.TotalPrice)

	draft, err := rental.BuildDraft(*chosen, dates, *location)
	if err != nil {
		log.Fatalf("Cannot build reservation: %v", err)
	}

	machine := checkout.NewMachine(client, &draft)
	if state := machine.State(); state.Phase == checkout.PhaseInvalid {
		log.Fatalf("Checkout rejected the draft: %s", state.Err)
	}

	machine.ChoosePayment(models.PaymentMethod(*payment))
	if err := machine.Confirm(); err != nil {
		log.Fatalf("Confirm failed: %v", err)
	}
	fmt.Println(machine.State().ConfirmationText())

	result, err := machine.Submit(ctx)
	if err != nil {
		log.Fatalf("Reservation failed: %s", machine.State().Err)
	}
	fmt.Printf("Booked! %s %s, booking %s, status %s\n",
		result.Vehicle.Brand, result.Vehicle.Model, result.Booking.ID, result.Booking.Status)

	bookings, err := client.UserBookings(ctx)
	if err != nil {
		log.Printf("History fetch failed: %v", err)
	} else {
		fmt.Printf("You now have %d booking(s)\n", len(bookings))
	}

	if *watch > 0 {
		log.Printf("Watching notifications for %s", *watch)
		time.Sleep(*watch)
	}
	fmt.Printf("Unread notifications: %d\n", poller.Snapshot().UnreadCount)
}

func parseDates(pickUp, dropOff string) (models.DateRange, error) {
	start, err := time.Parse(api.DateLayout, pickUp)
	if err != nil {
		return models.DateRange{}, fmt.Errorf("pick-up: %w", err)
	}
	end, err := time.Parse(api.DateLayout, dropOff)
	if err != nil {
		return models.DateRange{}, fmt.Errorf("drop-off: %w", err)
	}
	return models.DateRange{PickUp: start, DropOff: end}, nil
}
