package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/kettno/courier-portal/pkg/models"
)

// Waybills renders the local waybill ledger with the create form. No network
// calls here; waybills live in the portal only.
func (h *Handler) Waybills(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r, "Waybills")
	data["Waybills"] = h.waybills.List()
	h.renderTemplate(w, "waybills.html", data)
}

// CreateWaybill validates and records a new waybill document.
func (h *Handler) CreateWaybill(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.waybillsRedirect(w, r, "error", "Invalid form data.")
		return
	}

	weight, _ := strconv.ParseFloat(r.FormValue("weight"), 64)
	wb := models.Waybill{
		SenderName:   strings.TrimSpace(r.FormValue("sender_name")),
		ReceiverName: strings.TrimSpace(r.FormValue("receiver_name")),
		FromAddress:  strings.TrimSpace(r.FormValue("from_address")),
		ToAddress:    strings.TrimSpace(r.FormValue("to_address")),
		Description:  strings.TrimSpace(r.FormValue("description")),
		Weight:       weight,
		DeliveryType: r.FormValue("delivery_type"),
	}

	created, err := h.waybills.Create(wb)
	if err != nil {
		log.Printf("Error creating waybill: %v", err)
		h.waybillsRedirect(w, r, "error", err.Error())
		return
	}
	h.waybillsRedirect(w, r, "msg", "Waybill "+created.ID+" generated.")
}

func (h *Handler) waybillsRedirect(w http.ResponseWriter, r *http.Request, key, message string) {
	http.Redirect(w, r, "/waybills?"+key+"="+url.QueryEscape(message), http.StatusSeeOther)
}
