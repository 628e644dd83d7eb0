// Package waybill keeps the waybill ledger. Waybills are portal-local
// shipping documents; the remote API has no endpoint for them, so the
// registry lives in memory for the lifetime of the process.
package waybill

import (
	"fmt"
	"sync"

	"github.com/kettno/courier-portal/pkg/models"
)

// Delivery types offered on the waybill form.
const (
	DeliveryNormal    = "normal"
	DeliveryExpress   = "express"
	DeliveryOvernight = "overnight"
)

func validDeliveryType(t string) bool {
	return t == DeliveryNormal || t == DeliveryExpress || t == DeliveryOvernight
}

// Registry is the in-memory waybill list with sequential WBnnn ids.
type Registry struct {
	mu       sync.RWMutex
	waybills []models.Waybill
	nextID   int
}

// NewRegistry returns a registry seeded with a couple of sample documents so
// the page is never empty on first visit.
func NewRegistry() *Registry {
	r := &Registry{nextID: 1}
	r.waybills = []models.Waybill{
		{ID: r.takeID(), SenderName: "John Doe", ReceiverName: "Jane Doe", FromAddress: "Nairobi CBD", ToAddress: "Kisumu Town", Description: "Documents", Weight: 2.5, DeliveryType: DeliveryExpress, Status: "in transit"},
		{ID: r.takeID(), SenderName: "Alice Wanjiru", ReceiverName: "Bob Kamau", FromAddress: "Eldoret", ToAddress: "Mombasa", Description: "Electronics", Weight: 4.2, DeliveryType: DeliveryNormal, Status: "delivered"},
	}
	return r
}

func (r *Registry) takeID() string {
	id := fmt.Sprintf("WB%03d", r.nextID)
	r.nextID++
	return id
}

// Create validates and records a new waybill, assigning the next id.
func (r *Registry) Create(wb models.Waybill) (models.Waybill, error) {
	if wb.SenderName == "" || wb.ReceiverName == "" {
		return models.Waybill{}, fmt.Errorf("sender and receiver names are required")
	}
	if wb.FromAddress == "" || wb.ToAddress == "" {
		return models.Waybill{}, fmt.Errorf("sender and receiver addresses are required")
	}
	if wb.Weight <= 0 {
		return models.Waybill{}, fmt.Errorf("weight must be greater than zero")
	}
	if !validDeliveryType(wb.DeliveryType) {
		return models.Waybill{}, fmt.Errorf("invalid delivery type %q", wb.DeliveryType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	wb.ID = r.takeID()
	wb.Status = "created"
	r.waybills = append(r.waybills, wb)
	return wb, nil
}

// List returns a copy of the registry, newest last.
func (r *Registry) List() []models.Waybill {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Waybill, len(r.waybills))
	copy(out, r.waybills)
	return out
}
