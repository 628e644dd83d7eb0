package handlers

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kettno/courier-portal/internal/parcels"
	"github.com/kettno/courier-portal/pkg/models"
)

const parcelsPerPage = 10

// parcelRow is a parcel decorated with the display fields the list pages
// need: resolved town names, the allowed next statuses, and a short date.
type parcelRow struct {
	models.Parcel
	OriginName      string
	DestinationName string
	NextStatuses    []models.Status
	CreatedDate     string
}

type statusOption struct {
	Value   string
	Checked bool
}

type sortOption struct {
	Value string
	Label string
}

func sortColumns() []sortOption {
	return []sortOption{
		{Value: string(parcels.SortCreatedAt), Label: "Date"},
		{Value: string(parcels.SortTracking), Label: "Tracking #"},
		{Value: string(parcels.SortSender), Label: "Sender"},
		{Value: string(parcels.SortRecipient), Label: "Recipient"},
		{Value: string(parcels.SortWeight), Label: "Weight"},
		{Value: string(parcels.SortStatus), Label: "Status"},
	}
}

func (h *Handler) buildRows(list []models.Parcel) []parcelRow {
	rows := make([]parcelRow, 0, len(list))
	for _, p := range list {
		var next []models.Status
		for _, s := range models.Statuses() {
			if models.CanTransition(p.Status, s) {
				next = append(next, s)
			}
		}
		created := p.CreatedAt
		if len(created) > 10 {
			created = created[:10]
		}
		rows = append(rows, parcelRow{
			Parcel:          p,
			OriginName:      h.towns.DisplayName(p.OriginTownID),
			DestinationName: h.towns.DisplayName(p.DestinationTownID),
			NextStatuses:    next,
			CreatedDate:     created,
		})
	}
	return rows
}

// Parcels renders the full parcel list with search, date range, status
// filters, sorting, and pagination. Everything past the initial fetch is a
// local transformation; changing a filter never refetches.
func (h *Handler) Parcels(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	h.ensureTowns(sess.Token)

	q := r.URL.Query()
	query := q.Get("q")
	fromDate := q.Get("from")
	toDate := q.Get("to")
	sortBy := q.Get("sort")
	if sortBy == "" {
		sortBy = string(parcels.SortCreatedAt)
	}
	dir := q.Get("dir")
	pageNum := atoiDefault(q.Get("page"), 1)

	var statuses []models.Status
	checked := make(map[string]bool)
	for _, raw := range q["status"] {
		status, err := models.ParseStatus(raw)
		if err != nil {
			continue
		}
		statuses = append(statuses, status)
		checked[raw] = true
	}

	data := h.pageData(r, "Parcels")

	var list []models.Parcel
	fetched, err := h.api.ListParcels(sess.Token)
	if err != nil {
		log.Printf("Error fetching parcels: %v", err)
		data["Error"] = errorMessage(err, "Could not load parcels. Please try again.")
	} else {
		list = fetched
	}

	list = parcels.Apply(list, parcels.Filter{
		Search:   query,
		Statuses: statuses,
		FromDate: fromDate,
		ToDate:   toDate,
	})
	list = parcels.Sort(list, parcels.SortColumn(sortBy), dir != "desc")
	page := parcels.Paginate(list, pageNum, parcelsPerPage)

	options := make([]statusOption, 0, 4)
	for _, s := range models.Statuses() {
		options = append(options, statusOption{Value: string(s), Checked: checked[string(s)]})
	}

	data["Rows"] = h.buildRows(page.Items)
	data["Page"] = page
	data["Query"] = query
	data["FromDate"] = fromDate
	data["ToDate"] = toDate
	data["Sort"] = sortBy
	data["Dir"] = dir
	data["SortColumns"] = sortColumns()
	data["StatusOptions"] = options
	data["BackURL"] = r.URL.RequestURI()
	data["PageURL"] = pageURL(q)
	data["PrevPage"] = page.Number - 1
	data["NextPage"] = page.Number + 1
	h.renderTemplate(w, "parcels.html", data)
}

// pageURL rebuilds the current filter query with the page number stripped,
// ready to have one appended.
func pageURL(q url.Values) string {
	params := url.Values{}
	for key, vals := range q {
		if key == "page" || key == "error" || key == "msg" {
			continue
		}
		params[key] = vals
	}
	encoded := params.Encode()
	if encoded == "" {
		return "/parcels?page="
	}
	return "/parcels?" + encoded + "&page="
}

// StatusPage returns a handler rendering the fixed-status parcel queue
// (awaiting transit, awaiting collection, collected).
func (h *Handler) StatusPage(title string, status models.Status, backURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())
		h.ensureTowns(sess.Token)

		data := h.pageData(r, title)
		data["PageTitle"] = title
		data["StatusFilter"] = string(status)
		data["BackURL"] = backURL

		list, err := h.api.ListParcelsByStatus(sess.Token, status)
		if err != nil {
			log.Printf("Error fetching %s parcels: %v", status, err)
			data["Error"] = errorMessage(err, "Could not load parcels. Please try again.")
		}
		data["Rows"] = h.buildRows(list)
		h.renderTemplate(w, "parcel_status.html", data)
	}
}

// UpdateParcelStatus moves a parcel along its lifecycle. Backward moves and
// unknown statuses are rejected before any request goes out.
func (h *Handler) UpdateParcelStatus(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	trackingNumber := chi.URLParam(r, "trackingNumber")

	if err := r.ParseForm(); err != nil {
		redirectBack(w, r, "error", "Invalid form data.")
		return
	}

	next, err := models.ParseStatus(r.FormValue("status"))
	if err != nil {
		redirectBack(w, r, "error", err.Error())
		return
	}
	current, err := models.ParseStatus(r.FormValue("current"))
	if err != nil {
		redirectBack(w, r, "error", err.Error())
		return
	}
	if !models.CanTransition(current, next) {
		redirectBack(w, r, "error", fmt.Sprintf("Cannot move a parcel from %s to %s.", current, next))
		return
	}

	if err := h.api.UpdateParcelStatus(sess.Token, trackingNumber, next); err != nil {
		log.Printf("Error updating parcel %s: %v", trackingNumber, err)
		redirectBack(w, r, "error", errorMessage(err, "Status update failed. Please try again."))
		return
	}
	redirectBack(w, r, "msg", fmt.Sprintf("Parcel %s updated to %s.", trackingNumber, next))
}

// NotifyRecipient asks the API to text the recipient that their parcel is
// ready for collection.
func (h *Handler) NotifyRecipient(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	trackingNumber := chi.URLParam(r, "trackingNumber")

	if err := h.api.NotifyRecipient(sess.Token, trackingNumber); err != nil {
		log.Printf("Error notifying recipient for %s: %v", trackingNumber, err)
		redirectBack(w, r, "error", errorMessage(err, "Could not send the notification."))
		return
	}
	redirectBack(w, r, "msg", fmt.Sprintf("Recipient notified for parcel %s.", trackingNumber))
}

const sendItemRows = 3

// SendPage renders a blank send-parcel form.
func (h *Handler) SendPage(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	h.ensureTowns(sess.Token)

	data := h.pageData(r, "Send Parcel")
	data["Towns"] = h.towns.List()
	data["Form"] = models.CreateParcelRequest{}
	data["ItemRows"] = make([]models.ParcelItem, sendItemRows)
	h.renderTemplate(w, "send.html", data)
}

// SendParcel validates and submits a new parcel. Rows left fully empty are
// dropped; any other validation failure re-renders the form with the values
// kept.
func (h *Handler) SendParcel(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	h.ensureTowns(sess.Token)

	data := h.pageData(r, "Send Parcel")
	data["Towns"] = h.towns.List()

	if err := r.ParseForm(); err != nil {
		data["Error"] = "Invalid form data."
		data["Form"] = models.CreateParcelRequest{}
		data["ItemRows"] = make([]models.ParcelItem, sendItemRows)
		h.renderTemplate(w, "send.html", data)
		return
	}

	items := parseItemRows(r.Form["item_description"], r.Form["item_quantity"], r.Form["item_weight"])
	form := models.CreateParcelRequest{
		SenderName:        strings.TrimSpace(r.FormValue("sender_name")),
		SenderPhone:       strings.TrimSpace(r.FormValue("sender_phone")),
		RecipientName:     strings.TrimSpace(r.FormValue("recipient_name")),
		RecipientPhone:    strings.TrimSpace(r.FormValue("recipient_phone")),
		OriginTownID:      atoiDefault(r.FormValue("origin_town_id"), 0),
		DestinationTownID: atoiDefault(r.FormValue("destination_town_id"), 0),
		PaymentMethod:     r.FormValue("payment_method"),
		Items:             items,
	}

	rerender := func() {
		data["Form"] = form
		data["ItemRows"] = padItemRows(items)
		h.renderTemplate(w, "send.html", data)
	}

	req, err := parcels.PrepareCreate(form)
	if err != nil {
		data["Error"] = err.Error()
		rerender()
		return
	}

	created, err := h.api.CreateParcel(sess.Token, req)
	if err != nil {
		log.Printf("Error creating parcel: %v", err)
		data["Error"] = errorMessage(err, "Could not create the parcel. Please try again.")
		rerender()
		return
	}

	data["Message"] = fmt.Sprintf("Parcel created! Tracking number: %s", created.TrackingNumber)
	data["Form"] = models.CreateParcelRequest{}
	data["ItemRows"] = make([]models.ParcelItem, sendItemRows)
	h.renderTemplate(w, "send.html", data)
}

// parseItemRows zips the parallel item columns into line items, skipping rows
// where every column is blank.
func parseItemRows(descriptions, quantities, weights []string) []models.ParcelItem {
	var items []models.ParcelItem
	for i := range descriptions {
		desc := strings.TrimSpace(descriptions[i])
		qty := ""
		if i < len(quantities) {
			qty = strings.TrimSpace(quantities[i])
		}
		weight := ""
		if i < len(weights) {
			weight = strings.TrimSpace(weights[i])
		}
		if desc == "" && qty == "" && weight == "" {
			continue
		}

		quantity, _ := strconv.Atoi(qty)
		perUnit, _ := strconv.ParseFloat(weight, 64)
		items = append(items, models.ParcelItem{
			Description:   desc,
			Quantity:      quantity,
			WeightPerUnit: perUnit,
		})
	}
	return items
}

func padItemRows(items []models.ParcelItem) []models.ParcelItem {
	rows := make([]models.ParcelItem, 0, sendItemRows)
	rows = append(rows, items...)
	for len(rows) < sendItemRows {
		rows = append(rows, models.ParcelItem{})
	}
	return rows
}
