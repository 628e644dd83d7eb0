// Package towns caches the branch office directory. The list is fetched once
// per process (and on demand) and shared by every page that needs to resolve
// a town ID to a display name.
package towns

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kettno/courier-portal/internal/api"
	"github.com/kettno/courier-portal/pkg/models"
)

// Directory is the cached town list, keyed by id. A map enforces the
// one-entry-per-id invariant.
type Directory struct {
	mu   sync.RWMutex
	byID map[int]models.Town

	client api.Client
}

// NewDirectory creates an empty directory backed by the API client.
func NewDirectory(client api.Client) *Directory {
	return &Directory{
		byID:   make(map[int]models.Town),
		client: client,
	}
}

// Refresh replaces the cached list with the API's. On failure the previous
// cache (possibly empty) stays in place and the error is returned for the
// caller to log; no retry, no partial merge.
func (d *Directory) Refresh(token string) error {
	list, err := d.client.ListTowns(token)
	if err != nil {
		return fmt.Errorf("fetch towns: %w", err)
	}

	byID := make(map[int]models.Town, len(list))
	for _, town := range list {
		byID[town.ID] = town
	}

	d.mu.Lock()
	d.byID = byID
	d.mu.Unlock()
	return nil
}

// Create posts a new town and appends the server-assigned record to the
// cache. The cache is untouched on failure.
func (d *Directory) Create(token string, town models.Town) (models.Town, error) {
	created, err := d.client.CreateTown(token, town)
	if err != nil {
		return models.Town{}, err
	}

	d.mu.Lock()
	d.byID[created.ID] = created
	d.mu.Unlock()
	return created, nil
}

// Update puts a town by id and replaces the matching cached entry. The cache
// is untouched on failure.
func (d *Directory) Update(token string, town models.Town) (models.Town, error) {
	updated, err := d.client.UpdateTown(token, town)
	if err != nil {
		return models.Town{}, err
	}

	d.mu.Lock()
	d.byID[updated.ID] = updated
	d.mu.Unlock()
	return updated, nil
}

// SetPrice posts route pricing for an origin/destination pair. Write-only:
// the API exposes no pricing read-back.
func (d *Directory) SetPrice(token string, pricing models.RoutePricing) error {
	if pricing.OriginTownID == 0 || pricing.DestinationTownID == 0 {
		return fmt.Errorf("origin and destination towns are required")
	}
	if pricing.Price <= 0 {
		return fmt.Errorf("price must be greater than zero")
	}
	return d.client.SetRoutePrice(token, pricing)
}

// Lookup returns the town for id.
func (d *Directory) Lookup(id int) (models.Town, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	town, ok := d.byID[id]
	return town, ok
}

// DisplayName resolves a town id to its name, falling back to a deterministic
// placeholder for ids not in the directory. Display paths resolve towns
// opportunistically and must never fail.
func (d *Directory) DisplayName(id int) string {
	if town, ok := d.Lookup(id); ok {
		return town.Name
	}
	return fmt.Sprintf("Town %d", id)
}

// List returns the cached towns ordered by id.
func (d *Directory) List() []models.Town {
	d.mu.RLock()
	defer d.mu.RUnlock()

	list := make([]models.Town, 0, len(d.byID))
	for _, town := range d.byID {
		list = append(list, town)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
