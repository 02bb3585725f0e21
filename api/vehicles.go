package api

import (
	"context"
	"net/http"
	"net/url"

	"rentiva/models"
)

// ListVehicles fetches the full catalogue.
func (c *Client) ListVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := c.do(ctx, http.MethodGet, "/vehicles", nil, &vehicles, nil); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// SearchByBrand fetches the vehicles of one brand and stamps the requested
// rental window onto each result, so a selection carries its dates into
// draft building.
func (c *Client) SearchByBrand(ctx context.Context, brand string, dates models.DateRange) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	path := "/vehicles/by-brand/" + url.PathEscape(brand)
	if err := c.do(ctx, http.MethodGet, path, nil, &vehicles, nil); err != nil {
		return nil, err
	}

	pickUp := dates.PickUp.Format(DateLayout)
	dropOff := dates.DropOff.Format(DateLayout)
	for i := range vehicles {
		vehicles[i].PickUpDate = pickUp
		vehicles[i].DropOffDate = dropOff
	}
	return vehicles, nil
}

// Brands derives the distinct brand list from a catalogue fetch, in first
// seen order, for the search form.
func Brands(vehicles []models.Vehicle) []string {
	seen := make(map[string]bool)
	var brands []string
	for _, v := range vehicles {
		if v.Brand != "" && !seen[v.Brand] {
			seen[v.Brand] = true
			brands = append(brands, v.Brand)
		}
	}
	return brands
}
