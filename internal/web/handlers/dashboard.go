package handlers

import (
	"log"
	"net/http"

	"github.com/kettno/courier-portal/internal/manifest"
)

// Dashboard renders the return-manifest report: parcel counts by origin town
// for a date range, optionally narrowed to one office. Nothing is fetched
// until the form is submitted with both dates set.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess, _ := SessionFromContext(r.Context())
	h.ensureTowns(sess.Token)

	q := r.URL.Query()
	fromDate := q.Get("from_date")
	toDate := q.Get("to_date")
	townID := atoiDefault(q.Get("town_id"), 0)

	data := h.pageData(r, "Dashboard")
	data["Towns"] = h.towns.List()
	data["FromDate"] = fromDate
	data["ToDate"] = toDate
	data["SelectedTown"] = townID
	data["Generated"] = false

	if q.Get("generate") == "" {
		h.renderTemplate(w, "dashboard.html", data)
		return
	}

	if err := manifest.ValidateRange(fromDate, toDate); err != nil {
		data["Error"] = "Please select both a from date and a to date."
		h.renderTemplate(w, "dashboard.html", data)
		return
	}

	list, err := h.api.Manifest(sess.Token, fromDate, toDate, townID)
	if err != nil {
		log.Printf("Error fetching manifest: %v", err)
		data["Error"] = errorMessage(err, "Could not generate the report. Please try again.")
		h.renderTemplate(w, "dashboard.html", data)
		return
	}

	report := manifest.Aggregate(list, func(id int) (string, bool) {
		town, ok := h.towns.Lookup(id)
		return town.Name, ok
	})
	if len(report) > 0 {
		data["Report"] = report
	}
	data["Generated"] = true
	h.renderTemplate(w, "dashboard.html", data)
}
