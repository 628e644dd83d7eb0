// Package apitest provides a configurable fake of the courier API client for
// tests. Unset methods fail loudly so a test only has to stub what it uses.
package apitest

import (
	"fmt"

	"github.com/kettno/courier-portal/pkg/models"
)

// Mock implements api.Client with per-method hooks.
type Mock struct {
	LoginFunc                func(username, password string) (string, error)
	ListTownsFunc            func(token string) ([]models.Town, error)
	CreateTownFunc           func(token string, town models.Town) (models.Town, error)
	UpdateTownFunc           func(token string, town models.Town) (models.Town, error)
	SetRoutePriceFunc        func(token string, pricing models.RoutePricing) error
	ListParcelsFunc          func(token string) ([]models.Parcel, error)
	ListParcelsByStatusFunc  func(token string, status models.Status) ([]models.Parcel, error)
	ManifestFunc             func(token, fromDate, toDate string, townID int) ([]models.Parcel, error)
	CreateParcelFunc         func(token string, req models.CreateParcelRequest) (models.Parcel, error)
	UpdateParcelStatusFunc   func(token, trackingNumber string, status models.Status) error
	NotifyRecipientFunc      func(token, trackingNumber string) error
	ListOfficialsFunc        func(token string) ([]models.Official, error)
	CreateOfficialFunc       func(token string, official models.Official) (models.Official, error)
	UpdateOfficialFunc       func(token string, official models.Official) (models.Official, error)
	ToggleOfficialStatusFunc func(token string, id int) (models.Official, error)
}

func (m *Mock) Login(username, password string) (string, error) {
	if m.LoginFunc == nil {
		return "", fmt.Errorf("apitest: Login not stubbed")
	}
	return m.LoginFunc(username, password)
}

func (m *Mock) ListTowns(token string) ([]models.Town, error) {
	if m.ListTownsFunc == nil {
		return nil, fmt.Errorf("apitest: ListTowns not stubbed")
	}
	return m.ListTownsFunc(token)
}

func (m *Mock) CreateTown(token string, town models.Town) (models.Town, error) {
	if m.CreateTownFunc == nil {
		return models.Town{}, fmt.Errorf("apitest: CreateTown not stubbed")
	}
	return m.CreateTownFunc(token, town)
}

func (m *Mock) UpdateTown(token string, town models.Town) (models.Town, error) {
	if m.UpdateTownFunc == nil {
		return models.Town{}, fmt.Errorf("apitest: UpdateTown not stubbed")
	}
	return m.UpdateTownFunc(token, town)
}

func (m *Mock) SetRoutePrice(token string, pricing models.RoutePricing) error {
	if m.SetRoutePriceFunc == nil {
		return fmt.Errorf("apitest: SetRoutePrice not stubbed")
	}
	return m.SetRoutePriceFunc(token, pricing)
}

func (m *Mock) ListParcels(token string) ([]models.Parcel, error) {
	if m.ListParcelsFunc == nil {
		return nil, fmt.Errorf("apitest: ListParcels not stubbed")
	}
	return m.ListParcelsFunc(token)
}

func (m *Mock) ListParcelsByStatus(token string, status models.Status) ([]models.Parcel, error) {
	if m.ListParcelsByStatusFunc == nil {
		return nil, fmt.Errorf("apitest: ListParcelsByStatus not stubbed")
	}
	return m.ListParcelsByStatusFunc(token, status)
}

func (m *Mock) Manifest(token, fromDate, toDate string, townID int) ([]models.Parcel, error) {
	if m.ManifestFunc == nil {
		return nil, fmt.Errorf("apitest: Manifest not stubbed")
	}
	return m.ManifestFunc(token, fromDate, toDate, townID)
}

func (m *Mock) CreateParcel(token string, req models.CreateParcelRequest) (models.Parcel, error) {
	if m.CreateParcelFunc == nil {
		return models.Parcel{}, fmt.Errorf("apitest: CreateParcel not stubbed")
	}
	return m.CreateParcelFunc(token, req)
}

func (m *Mock) UpdateParcelStatus(token, trackingNumber string, status models.Status) error {
	if m.UpdateParcelStatusFunc == nil {
		return fmt.Errorf("apitest: UpdateParcelStatus not stubbed")
	}
	return m.UpdateParcelStatusFunc(token, trackingNumber, status)
}

func (m *Mock) NotifyRecipient(token, trackingNumber string) error {
	if m.NotifyRecipientFunc == nil {
		return fmt.Errorf("apitest: NotifyRecipient not stubbed")
	}
	return m.NotifyRecipientFunc(token, trackingNumber)
}

func (m *Mock) ListOfficials(token string) ([]models.Official, error) {
	if m.ListOfficialsFunc == nil {
		return nil, fmt.Errorf("apitest: ListOfficials not stubbed")
	}
	return m.ListOfficialsFunc(token)
}

func (m *Mock) CreateOfficial(token string, official models.Official) (models.Official, error) {
	if m.CreateOfficialFunc == nil {
		return models.Official{}, fmt.Errorf("apitest: CreateOfficial not stubbed")
	}
	return m.CreateOfficialFunc(token, official)
}

func (m *Mock) UpdateOfficial(token string, official models.Official) (models.Official, error) {
	if m.UpdateOfficialFunc == nil {
		return models.Official{}, fmt.Errorf("apitest: UpdateOfficial not stubbed")
	}
	return m.UpdateOfficialFunc(token, official)
}

func (m *Mock) ToggleOfficialStatus(token string, id int) (models.Official, error) {
	if m.ToggleOfficialStatusFunc == nil {
		return models.Official{}, fmt.Errorf("apitest: ToggleOfficialStatus not stubbed")
	}
	return m.ToggleOfficialStatusFunc(token, id)
}
