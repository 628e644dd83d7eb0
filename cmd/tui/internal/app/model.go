// Package app is the bubbletea model for the courier terminal client: a
// login form, then a live parcel board over the same remote API the web
// portal uses.
package app

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/kettno/courier-portal/internal/api"
	"github.com/kettno/courier-portal/pkg/models"
)

type appState int

const (
	stateLogin appState = iota
	stateConnecting
	stateParcels
	stateError
)

// statusFilters is the filter cycle on the parcel board: everything first,
// then each lifecycle stage.
var statusFilters = []string{"all", "registered", "in_transit", "delivered", "collected"}

// Model is the root bubbletea model.
// Exported so tests can construct and drive it directly.
type Model struct {
	state appState
	addr  string

	width  int
	height int

	client api.Client
	token  string

	err error

	// Login form
	username textinput.Model
	password textinput.Model
	focusIdx int
	loginErr string

	// Parcel board
	parcels   []models.Parcel
	filterIdx int
	table     table.Model
	statusMsg string
}

// New creates a fresh Model. The client may be a test double.
func New(client api.Client, addr string) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 64
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	columns := []table.Column{
		{Title: "Tracking", Width: 12},
		{Title: "Sender", Width: 18},
		{Title: "Recipient", Width: 18},
		{Title: "Kg", Width: 6},
		{Title: "Status", Width: 12},
		{Title: "Created", Width: 10},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return Model{
		state:    stateLogin,
		addr:     addr,
		client:   client,
		username: username,
		password: password,
		table:    t,
	}
}

// Token exposes the bearer token for tests.
func (m Model) Token() string {
	return m.token
}
