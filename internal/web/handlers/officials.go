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

// officialRow is an employee account with its branch name resolved.
type officialRow struct {
	models.Official
	TownName string
}

// Employees lists the staff accounts with the create form.
func (h *Handler) Employees(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	h.ensureTowns(sess.Token)

	data := h.pageData(r, "Employees")
	data["Towns"] = h.towns.List()

	officials, err := h.api.ListOfficials(sess.Token)
	if err != nil {
		log.Printf("Error fetching officials: %v", err)
		data["Error"] = errorMessage(err, "Could not load employee accounts.")
	}

	rows := make([]officialRow, 0, len(officials))
	for _, o := range officials {
		rows = append(rows, officialRow{Official: o, TownName: h.towns.DisplayName(o.TownID)})
	}
	data["Officials"] = rows
	h.renderTemplate(w, "employees.html", data)
}

// CreateEmployee registers a new staff account.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.employeesRedirect(w, r, "error", "Invalid form data.")
		return
	}
	official, errMsg := officialFromForm(r, 0)
	if errMsg != "" {
		h.employeesRedirect(w, r, "error", errMsg)
		return
	}

	created, err := h.api.CreateOfficial(sess.Token, official)
	if err != nil {
		log.Printf("Error creating official: %v", err)
		h.employeesRedirect(w, r, "error", errorMessage(err, "Could not create the account."))
		return
	}
	h.employeesRedirect(w, r, "msg", "Account "+created.Username+" created.")
}

// UpdateEmployee edits an account in place.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "officialID"))
	if err != nil {
		h.employeesRedirect(w, r, "error", "Invalid employee id.")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.employeesRedirect(w, r, "error", "Invalid form data.")
		return
	}
	official, errMsg := officialFromForm(r, id)
	if errMsg != "" {
		h.employeesRedirect(w, r, "error", errMsg)
		return
	}

	if _, err := h.api.UpdateOfficial(sess.Token, official); err != nil {
		log.Printf("Error updating official %d: %v", id, err)
		h.employeesRedirect(w, r, "error", errorMessage(err, "Could not update the account."))
		return
	}
	h.employeesRedirect(w, r, "msg", "Account updated.")
}

// ToggleEmployee flips an account between active and inactive in one round
// trip.
func (h *Handler) ToggleEmployee(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	id, err := strconv.Atoi(chi.URLParam(r, "officialID"))
	if err != nil {
		h.employeesRedirect(w, r, "error", "Invalid employee id.")
		return
	}

	updated, err := h.api.ToggleOfficialStatus(sess.Token, id)
	if err != nil {
		log.Printf("Error toggling official %d: %v", id, err)
		h.employeesRedirect(w, r, "error", errorMessage(err, "Could not change the account status."))
		return
	}

	verb := "deactivated"
	if updated.Status == models.OfficialActive {
		verb = "activated"
	}
	h.employeesRedirect(w, r, "msg", "Account "+updated.Username+" "+verb+".")
}

func officialFromForm(r *http.Request, id int) (models.Official, string) {
	official := models.Official{
		ID:       id,
		Username: strings.TrimSpace(r.FormValue("username")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Phone:    strings.TrimSpace(r.FormValue("phone")),
		Role:     r.FormValue("role"),
		TownID:   atoiDefault(r.FormValue("town_id"), 0),
	}
	if official.Username == "" || official.Email == "" {
		return official, "Username and email are required."
	}
	if !phone.Valid(official.Phone) {
		return official, "Please enter a valid Kenyan phone number."
	}
	if official.Role != models.RoleAdmin && official.Role != models.RoleClerk {
		return official, "Invalid role."
	}
	official.Phone = phone.Normalize(official.Phone)
	return official, ""
}

func (h *Handler) employeesRedirect(w http.ResponseWriter, r *http.Request, key, message string) {
	http.Redirect(w, r, "/employees?"+key+"="+url.QueryEscape(message), http.StatusSeeOther)
}
