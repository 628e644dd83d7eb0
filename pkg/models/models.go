// Package models defines the entities exchanged with the remote courier API.
// The API owns and persists all of them; the portal only holds transient
// in-memory copies.
package models

import "fmt"

// Status is the parcel lifecycle state. The four values form an ordered
// progression from registration at the origin branch to collection by the
// recipient.
type Status string

const (
	StatusRegistered Status = "registered"
	StatusInTransit  Status = "in_transit"
	StatusDelivered  Status = "delivered"
	StatusCollected  Status = "collected"
)

// statusRank orders the lifecycle for transition checks.
var statusRank = map[Status]int{
	StatusRegistered: 0,
	StatusInTransit:  1,
	StatusDelivered:  2,
	StatusCollected:  3,
}

// Statuses returns the lifecycle values in progression order.
func Statuses() []Status {
	return []Status{StatusRegistered, StatusInTransit, StatusDelivered, StatusCollected}
}

// ParseStatus validates a raw status value. Anything outside the four
// lifecycle values is an error; callers must not send such a value to the API.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if _, ok := statusRank[s]; !ok {
		return "", fmt.Errorf("invalid parcel status %q", raw)
	}
	return s, nil
}

// CanTransition reports whether a parcel may move from one status to another.
// Transitions are forward-only: a delivered parcel cannot go back to
// in_transit. The API may enforce the same rule; the portal checks before
// issuing the request either way.
func CanTransition(from, to Status) bool {
	fromRank, okFrom := statusRank[from]
	toRank, okTo := statusRank[to]
	return okFrom && okTo && toRank > fromRank
}

// PaymentMethods accepted on parcel creation.
const (
	PaymentCash       = "cash"
	PaymentMpesa      = "mpesa"
	PaymentOnDelivery = "payment_on_delivery"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentMpesa || m == PaymentOnDelivery
}

// Town is a branch office where parcels are sent and received.
type Town struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// RoutePricing sets the price for an origin/destination pair.
type RoutePricing struct {
	OriginTownID      int     `json:"origin_town_id"`
	DestinationTownID int     `json:"destination_town_id"`
	Price             float64 `json:"price"`
}

// ParcelItem is one line item of a parcel.
type ParcelItem struct {
	Description   string  `json:"description"`
	Quantity      int     `json:"quantity"`
	WeightPerUnit float64 `json:"weight_per_unit"`
}

// Parcel is a registered shipment. TrackingNumber and CreatedAt are
// server-assigned and immutable.
type Parcel struct {
	TrackingNumber    string       `json:"tracking_number"`
	SenderName        string       `json:"sender_name"`
	SenderPhone       string       `json:"sender_phone"`
	RecipientName     string       `json:"recipient_name"`
	RecipientPhone    string       `json:"recipient_phone"`
	OriginTownID      int          `json:"origin_town_id"`
	DestinationTownID int          `json:"destination_town_id"`
	Weight            float64      `json:"weight"`
	PaymentMethod     string       `json:"payment_method"`
	Status            Status       `json:"status"`
	CreatedAt         string       `json:"created_at"`
	Items             []ParcelItem `json:"items,omitempty"`
}

// CreateParcelRequest is the POST /parcels payload. Weight is always
// recomputed from Items before submission, never taken from user input.
type CreateParcelRequest struct {
	SenderName        string       `json:"sender_name"`
	SenderPhone       string       `json:"sender_phone"`
	RecipientName     string       `json:"recipient_name"`
	RecipientPhone    string       `json:"recipient_phone"`
	OriginTownID      int          `json:"origin_town_id"`
	DestinationTownID int          `json:"destination_town_id"`
	Weight            float64      `json:"weight"`
	PaymentMethod     string       `json:"payment_method"`
	Items             []ParcelItem `json:"items"`
}

// Official statuses. Toggling is a single round trip with no intermediate
// state.
const (
	OfficialActive   = "active"
	OfficialInactive = "inactive"
)

// Official roles.
const (
	RoleAdmin = "admin"
	RoleClerk = "clerk"
)

// Official is an employee account. The UI calls them employees; the API calls
// them officials.
type Official struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	TownID    int    `json:"town_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// Waybill is a shipping document kept locally by the portal; it is not backed
// by the remote API.
type Waybill struct {
	ID           string  `json:"id"`
	SenderName   string  `json:"sender_name"`
	ReceiverName string  `json:"receiver_name"`
	FromAddress  string  `json:"from_address"`
	ToAddress    string  `json:"to_address"`
	Description  string  `json:"description"`
	Weight       float64 `json:"weight"`
	DeliveryType string  `json:"delivery_type"`
	Status       string  `json:"status"`
}
