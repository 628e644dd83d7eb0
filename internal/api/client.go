// Package api implements the typed HTTP client for the remote courier API.
// Every business operation (parcels, towns, pricing, officials) lives behind
// that API; the portal never persists any of it locally.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kettno/courier-portal/pkg/models"
)

// Client is the interface for the remote courier API.
// Handlers and the terminal client depend on this; tests inject a mock.
type Client interface {
	Login(username, password string) (string, error)

	ListTowns(token string) ([]models.Town, error)
	CreateTown(token string, town models.Town) (models.Town, error)
	UpdateTown(token string, town models.Town) (models.Town, error)
	SetRoutePrice(token string, pricing models.RoutePricing) error

	ListParcels(token string) ([]models.Parcel, error)
	ListParcelsByStatus(token string, status models.Status) ([]models.Parcel, error)
	Manifest(token, fromDate, toDate string, townID int) ([]models.Parcel, error)
	CreateParcel(token string, req models.CreateParcelRequest) (models.Parcel, error)
	UpdateParcelStatus(token, trackingNumber string, status models.Status) error
	NotifyRecipient(token, trackingNumber string) error

	ListOfficials(token string) ([]models.Official, error)
	CreateOfficial(token string, official models.Official) (models.Official, error)
	UpdateOfficial(token string, official models.Official) (models.Official, error)
	ToggleOfficialStatus(token string, id int) (models.Official, error)
}

// Error is a non-2xx response from the API with its server-provided message.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// --- HTTP implementation ---

type httpClient struct {
	baseURL string
	client  *http.Client
}

// NewClient returns a Client talking to the API at baseURL.
func NewClient(baseURL string) Client {
	return &httpClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// do issues a request with the bearer token and decodes the JSON response
// into out (if non-nil). Non-2xx responses are returned as *Error with the
// body's message field, falling back to a generic message when the body is
// not parseable.
func (c *httpClient) do(token, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s %s decode: %w", method, path, err)
		}
	}
	return nil
}

// decodeError extracts the server's message field from an error response.
func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode, Message: "request failed"}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	}
	return apiErr
}

// Login exchanges credentials for a bearer token. The only unauthenticated
// call in the API.
func (c *httpClient) Login(username, password string) (string, error) {
	creds := map[string]string{"username": username, "password": password}
	var result struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do("", http.MethodPost, "/login", creds, &result); err != nil {
		return "", err
	}
	if result.AccessToken == "" {
		return "", fmt.Errorf("login: empty token in response")
	}
	return result.AccessToken, nil
}

func (c *httpClient) ListTowns(token string) ([]models.Town, error) {
	var towns []models.Town
	if err := c.do(token, http.MethodGet, "/towns", nil, &towns); err != nil {
		return nil, err
	}
	return towns, nil
}

func (c *httpClient) CreateTown(token string, town models.Town) (models.Town, error) {
	var created models.Town
	if err := c.do(token, http.MethodPost, "/towns", town, &created); err != nil {
		return models.Town{}, err
	}
	return created, nil
}

func (c *httpClient) UpdateTown(token string, town models.Town) (models.Town, error) {
	var updated models.Town
	path := "/towns/" + strconv.Itoa(town.ID)
	if err := c.do(token, http.MethodPut, path, town, &updated); err != nil {
		return models.Town{}, err
	}
	return updated, nil
}

func (c *httpClient) SetRoutePrice(token string, pricing models.RoutePricing) error {
	return c.do(token, http.MethodPost, "/pricing", pricing, nil)
}

func (c *httpClient) ListParcels(token string) ([]models.Parcel, error) {
	var parcels []models.Parcel
	if err := c.do(token, http.MethodGet, "/parcels", nil, &parcels); err != nil {
		return nil, err
	}
	return parcels, nil
}

func (c *httpClient) ListParcelsByStatus(token string, status models.Status) ([]models.Parcel, error) {
	if _, err := models.ParseStatus(string(status)); err != nil {
		return nil, err
	}
	var parcels []models.Parcel
	path := "/parcels/by-status?status=" + url.QueryEscape(string(status))
	if err := c.do(token, http.MethodGet, path, nil, &parcels); err != nil {
		return nil, err
	}
	return parcels, nil
}

func (c *httpClient) Manifest(token, fromDate, toDate string, townID int) ([]models.Parcel, error) {
	q := url.Values{}
	q.Set("from_date", fromDate)
	q.Set("to_date", toDate)
	if townID != 0 {
		q.Set("town_id", strconv.Itoa(townID))
	}
	var parcels []models.Parcel
	if err := c.do(token, http.MethodGet, "/parcels/manifest?"+q.Encode(), nil, &parcels); err != nil {
		return nil, err
	}
	return parcels, nil
}

func (c *httpClient) CreateParcel(token string, req models.CreateParcelRequest) (models.Parcel, error) {
	var created models.Parcel
	if err := c.do(token, http.MethodPost, "/parcels", req, &created); err != nil {
		return models.Parcel{}, err
	}
	return created, nil
}

// UpdateParcelStatus patches a parcel's status. A value outside the lifecycle
// set is rejected locally; it never reaches the wire.
func (c *httpClient) UpdateParcelStatus(token, trackingNumber string, status models.Status) error {
	if _, err := models.ParseStatus(string(status)); err != nil {
		return err
	}
	path := "/parcels/" + url.PathEscape(trackingNumber) + "/status"
	payload := map[string]string{"status": string(status)}
	return c.do(token, http.MethodPatch, path, payload, nil)
}

func (c *httpClient) NotifyRecipient(token, trackingNumber string) error {
	path := "/parcels/" + url.PathEscape(trackingNumber) + "/send-message"
	return c.do(token, http.MethodPost, path, struct{}{}, nil)
}

func (c *httpClient) ListOfficials(token string) ([]models.Official, error) {
	var officials []models.Official
	if err := c.do(token, http.MethodGet, "/officials", nil, &officials); err != nil {
		return nil, err
	}
	return officials, nil
}

func (c *httpClient) CreateOfficial(token string, official models.Official) (models.Official, error) {
	var created models.Official
	if err := c.do(token, http.MethodPost, "/officials", official, &created); err != nil {
		return models.Official{}, err
	}
	return created, nil
}

func (c *httpClient) UpdateOfficial(token string, official models.Official) (models.Official, error) {
	var updated models.Official
	path := "/officials/" + strconv.Itoa(official.ID)
	if err := c.do(token, http.MethodPut, path, official, &updated); err != nil {
		return models.Official{}, err
	}
	return updated, nil
}

func (c *httpClient) ToggleOfficialStatus(token string, id int) (models.Official, error) {
	var updated models.Official
	path := "/officials/" + strconv.Itoa(id) + "/status"
	if err := c.do(token, http.MethodPatch, path, struct{}{}, &updated); err != nil {
		return models.Official{}, err
	}
	return updated, nil
}
