package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kettno/courier-portal/pkg/models"
	"github.com/kettno/courier-portal/pkg/phone"
)

// TownsPage lists the branch directory with the create and pricing forms.
func (h *Handler) TownsPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	if err := h.towns.Refresh(sess.Token); err != nil {
		log.Printf("Error refreshing towns: %v", err)
	}

	data := h.pageData(r, "Town Branches")
	data["Towns"] = h.towns.List()
	h.renderTemplate(w, "towns.html", data)
}

// CreateTown adds a branch office.
func (h *Handler) CreateTown(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.townsRedirect(w, r, "error", "Invalid form data.")
		return
	}
	town := models.Town{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Address: strings.TrimSpace(r.FormValue("address")),
	}
	if town.Name == "" || town.Address == "" {
		h.townsRedirect(w, r, "error", "Name and address are required.")
		return
	}
	if !phone.Valid(town.Phone) {
		h.townsRedirect(w, r, "error", "Please enter a valid Kenyan phone number.")
		return
	}
	town.Phone = phone.Normalize(town.Phone)

	created, err := h.towns.Create(sess.Token, town)
	if err != nil {
		log.Printf("Error creating town: %v", err)
		h.townsRedirect(w, r, "error", errorMessage(err, "Could not create the branch."))
		return
	}
	h.townsRedirect(w, r, "msg", "Branch "+created.Name+" created.")
}

// UpdateTown edits a branch in place.
func (h *Handler) UpdateTown(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "townID"))
	if err != nil {
		h.townsRedirect(w, r, "error", "Invalid town id.")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.townsRedirect(w, r, "error", "Invalid form data.")
		return
	}
	town := models.Town{
		ID:      id,
		Name:    strings.TrimSpace(r.FormValue("name")),
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Address: strings.TrimSpace(r.FormValue("address")),
	}
	if town.Name == "" || town.Address == "" {
		h.townsRedirect(w, r, "error", "Name and address are required.")
		return
	}
	if !phone.Valid(town.Phone) {
		h.townsRedirect(w, r, "error", "Please enter a valid Kenyan phone number.")
		return
	}
	town.Phone = phone.Normalize(town.Phone)

	if _, err := h.towns.Update(sess.Token, town); err != nil {
		log.Printf("Error updating town %d: %v", id, err)
		h.townsRedirect(w, r, "error", errorMessage(err, "Could not update the branch."))
		return
	}
	h.townsRedirect(w, r, "msg", "Branch updated.")
}

// SetPricing records the delivery price for an origin/destination pair.
func (h *Handler) SetPricing(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.townsRedirect(w, r, "error", "Invalid form data.")
		return
	}
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	pricing := models.RoutePricing{
		OriginTownID:      atoiDefault(r.FormValue("origin_town_id"), 0),
		DestinationTownID: atoiDefault(r.FormValue("destination_town_id"), 0),
		Price:             price,
	}

	if err := h.towns.SetPrice(sess.Token, pricing); err != nil {
		log.Printf("Error setting route price: %v", err)
		h.townsRedirect(w, r, "error", errorMessage(err, err.Error()))
		return
	}
	h.townsRedirect(w, r, "msg", "Route pricing saved.")
}

func (h *Handler) townsRedirect(w http.ResponseWriter, r *http.Request, key, message string) {
	http.Redirect(w, r, "/towns?"+key+"="+url.QueryEscape(message), http.StatusSeeOther)
}
