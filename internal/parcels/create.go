// Package parcels holds the client-side parcel lifecycle rules: creation
// validation, the weight invariant, the transition policy, and the pure
// list transformations used by every parcel page.
package parcels

import (
	"errors"
	"fmt"
	"math"

	"github.com/kettno/courier-portal/pkg/models"
	"github.com/kettno/courier-portal/pkg/phone"
)

// ErrNoItems is returned when a parcel is submitted without line items.
var ErrNoItems = errors.New("a parcel needs at least one item")

// ComputeWeight sums quantity x weight-per-unit over the line items, rounded
// to one decimal like the original waybill forms.
func ComputeWeight(items []models.ParcelItem) float64 {
	var total float64
	for _, item := range items {
		total += float64(item.Quantity) * item.WeightPerUnit
	}
	return math.Round(total*10) / 10
}

// PrepareCreate validates a creation request and returns a copy with the
// weight recomputed from the items. Manual weight entry is never trusted.
// Validation failures block the request before any network call.
func PrepareCreate(req models.CreateParcelRequest) (models.CreateParcelRequest, error) {
	if req.SenderName == "" {
		return req, errors.New("sender name is required")
	}
	if req.RecipientName == "" {
		return req, errors.New("recipient name is required")
	}
	if !phone.Valid(req.SenderPhone) {
		return req, fmt.Errorf("invalid sender phone number %q", req.SenderPhone)
	}
	if !phone.Valid(req.RecipientPhone) {
		return req, fmt.Errorf("invalid recipient phone number %q", req.RecipientPhone)
	}
	if req.OriginTownID == 0 {
		return req, errors.New("origin town is required")
	}
	if req.DestinationTownID == 0 {
		return req, errors.New("destination town is required")
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return req, fmt.Errorf("invalid payment method %q", req.PaymentMethod)
	}
	if len(req.Items) == 0 {
		return req, ErrNoItems
	}
	for i, item := range req.Items {
		if item.Description == "" {
			return req, fmt.Errorf("item %d: description is required", i+1)
		}
		if item.Quantity <= 0 {
			return req, fmt.Errorf("item %d: quantity must be greater than zero", i+1)
		}
		if item.WeightPerUnit <= 0 {
			return req, fmt.Errorf("item %d: unit weight must be greater than zero", i+1)
		}
	}

	req.SenderPhone = phone.Normalize(req.SenderPhone)
	req.RecipientPhone = phone.Normalize(req.RecipientPhone)
	req.Weight = ComputeWeight(req.Items)
	return req, nil
}
