package parcels

import (
	"sort"
	"strconv"
	"strings"

	"github.com/kettno/courier-portal/pkg/models"
)

// Filter narrows a fetched parcel list. All fields are optional; the zero
// value matches everything.
type Filter struct {
	// Search matches case-insensitively against tracking number, sender and
	// recipient names, town ids, and status.
	Search string
	// Statuses keeps only the listed statuses when non-empty.
	Statuses []models.Status
	// FromDate and ToDate bound created_at by its YYYY-MM-DD prefix,
	// inclusive on both ends.
	FromDate string
	ToDate   string
}

// Apply returns the parcels matching the filter. The source list is never
// mutated, and the same filter over the same list always yields the same
// result.
func Apply(list []models.Parcel, f Filter) []models.Parcel {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	statusSet := make(map[models.Status]bool, len(f.Statuses))
	for _, s := range f.Statuses {
		statusSet[s] = true
	}

	out := make([]models.Parcel, 0, len(list))
	for _, p := range list {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if len(statusSet) > 0 && !statusSet[p.Status] {
			continue
		}
		date := dateOnly(p.CreatedAt)
		if f.FromDate != "" && date < f.FromDate {
			continue
		}
		if f.ToDate != "" && date > f.ToDate {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p models.Parcel, search string) bool {
	haystack := strings.ToLower(strings.Join([]string{
		p.TrackingNumber,
		p.SenderName,
		p.RecipientName,
		strconv.Itoa(p.OriginTownID),
		strconv.Itoa(p.DestinationTownID),
		string(p.Status),
	}, " "))
	return strings.Contains(haystack, search)
}

// dateOnly truncates an RFC 3339 timestamp to its date prefix; dates filter
// lexicographically, as the original pages did.
func dateOnly(createdAt string) string {
	if len(createdAt) > 10 {
		return createdAt[:10]
	}
	return createdAt
}

// SortColumn names a sortable parcel column.
type SortColumn string

const (
	SortTracking  SortColumn = "tracking_number"
	SortSender    SortColumn = "sender"
	SortRecipient SortColumn = "recipient"
	SortWeight    SortColumn = "weight"
	SortStatus    SortColumn = "status"
	SortCreatedAt SortColumn = "created_at"
)

// Sort returns a sorted copy of the list. Unknown columns sort by creation
// time. The source list is left untouched.
func Sort(list []models.Parcel, col SortColumn, ascending bool) []models.Parcel {
	out := make([]models.Parcel, len(list))
	copy(out, list)

	less := func(a, b models.Parcel) bool {
		switch col {
		case SortTracking:
			return a.TrackingNumber < b.TrackingNumber
		case SortSender:
			return a.SenderName < b.SenderName
		case SortRecipient:
			return a.RecipientName < b.RecipientName
		case SortWeight:
			return a.Weight < b.Weight
		case SortStatus:
			return string(a.Status) < string(b.Status)
		default:
			return a.CreatedAt < b.CreatedAt
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out
}

// Page is one page of a filtered list.
type Page struct {
	Items      []models.Parcel
	Number     int // 1-based
	PerPage    int
	Total      int
	TotalPages int
}

// Paginate slices the list into the requested page. Out-of-range page
// numbers clamp to the nearest valid page; perPage below 1 falls back to 10.
func Paginate(list []models.Parcel, page, perPage int) Page {
	if perPage < 1 {
		perPage = 10
	}
	total := len(list)
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]models.Parcel, end-start)
	copy(items, list[start:end])

	return Page{
		Items:      items,
		Number:     page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ApplyStatusUpdate sets the status of the matching record in place, leaving
// every other field and record untouched. Server-side side effects of the
// transition (timestamps and the like) only show up on the next full fetch.
// Returns false if no record matches.
func ApplyStatusUpdate(list []models.Parcel, trackingNumber string, status models.Status) bool {
	for i := range list {
		if list[i].TrackingNumber == trackingNumber {
			list[i].Status = status
			return true
		}
	}
	return false
}
