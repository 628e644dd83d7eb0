package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kettno/courier-portal/internal/parcels"
	"github.com/kettno/courier-portal/pkg/models"
)

// Init satisfies tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update is the bubbletea update function.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if h := msg.Height - 10; h > 4 {
			m.table.SetHeight(h)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case parcelsMsg:
		return m.handleParcels(msg)

	case statusUpdatedMsg:
		return m.handleStatusUpdated(msg)

	case notifiedMsg:
		return m.handleNotified(msg)
	}

	return m, nil
}

// --- Key Handling ---

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.state {
	case stateLogin:
		return m.handleLoginKey(msg)
	case stateParcels:
		return m.handleBoardKey(msg)
	case stateError:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "r":
			m.state = stateLogin
			m.err = nil
			return m, nil
		}
	}

	return m, nil
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "tab", "shift+tab", "up", "down":
		m.focusIdx = (m.focusIdx + 1) % 2
		if m.focusIdx == 0 {
			m.password.Blur()
			return m, m.username.Focus()
		}
		m.username.Blur()
		return m, m.password.Focus()

	case "enter":
		if strings.TrimSpace(m.username.Value()) == "" {
			m.loginErr = "username is required"
			return m, nil
		}
		m.loginErr = ""
		m.state = stateConnecting
		return m, m.doLogin()
	}

	var cmd tea.Cmd
	if m.focusIdx == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "r":
		m.statusMsg = "refreshing..."
		return m, m.doFetchParcels()

	case "f", "tab":
		m.filterIdx = (m.filterIdx + 1) % len(statusFilters)
		m.rebuildRows()
		return m, nil

	case "s":
		return m.advanceSelected()

	case "n":
		return m.notifySelected()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) selectedParcel() (models.Parcel, bool) {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return models.Parcel{}, false
	}
	for _, p := range m.parcels {
		if p.TrackingNumber == row[0] {
			return p, true
		}
	}
	return models.Parcel{}, false
}

// advanceSelected moves the highlighted parcel one step forward in its
// lifecycle. Collected parcels have nowhere to go.
func (m Model) advanceSelected() (tea.Model, tea.Cmd) {
	p, ok := m.selectedParcel()
	if !ok {
		return m, nil
	}

	var next models.Status
	for _, s := range models.Statuses() {
		if models.CanTransition(p.Status, s) {
			next = s
			break
		}
	}
	if next == "" {
		m.statusMsg = fmt.Sprintf("%s is already %s", p.TrackingNumber, p.Status)
		return m, nil
	}

	m.statusMsg = fmt.Sprintf("updating %s...", p.TrackingNumber)
	return m, m.doUpdateStatus(p.TrackingNumber, next)
}

func (m Model) notifySelected() (tea.Model, tea.Cmd) {
	p, ok := m.selectedParcel()
	if !ok {
		return m, nil
	}
	if p.Status != models.StatusDelivered {
		m.statusMsg = "only delivered parcels can be announced"
		return m, nil
	}
	return m, m.doNotify(p.TrackingNumber)
}

// --- Async Commands ---

func (m Model) doLogin() tea.Cmd {
	username := m.username.Value()
	password := m.password.Value()
	return func() tea.Msg {
		token, err := m.client.Login(username, password)
		return loginResultMsg{token: token, err: err}
	}
}

func (m Model) doFetchParcels() tea.Cmd {
	token := m.token
	return func() tea.Msg {
		list, err := m.client.ListParcels(token)
		return parcelsMsg{list: list, err: err}
	}
}

func (m Model) doUpdateStatus(trackingNumber string, status models.Status) tea.Cmd {
	token := m.token
	return func() tea.Msg {
		err := m.client.UpdateParcelStatus(token, trackingNumber, status)
		return statusUpdatedMsg{trackingNumber: trackingNumber, status: status, err: err}
	}
}

func (m Model) doNotify(trackingNumber string) tea.Cmd {
	token := m.token
	return func() tea.Msg {
		err := m.client.NotifyRecipient(token, trackingNumber)
		return notifiedMsg{trackingNumber: trackingNumber, err: err}
	}
}

// --- Message Handlers ---

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.state = stateLogin
		m.loginErr = msg.err.Error()
		return m, nil
	}
	m.token = msg.token
	return m, m.doFetchParcels()
}

func (m Model) handleParcels(msg parcelsMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if m.state == stateParcels {
			m.statusMsg = msg.err.Error()
			return m, nil
		}
		m.state = stateError
		m.err = msg.err
		return m, nil
	}
	m.parcels = msg.list
	m.state = stateParcels
	m.statusMsg = fmt.Sprintf("%d parcels loaded", len(msg.list))
	m.rebuildRows()
	return m, nil
}

func (m Model) handleStatusUpdated(msg statusUpdatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.statusMsg = msg.err.Error()
		return m, nil
	}
	parcels.ApplyStatusUpdate(m.parcels, msg.trackingNumber, msg.status)
	m.statusMsg = fmt.Sprintf("%s → %s", msg.trackingNumber, msg.status)
	m.rebuildRows()
	return m, nil
}

func (m Model) handleNotified(msg notifiedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.statusMsg = msg.err.Error()
		return m, nil
	}
	m.statusMsg = fmt.Sprintf("recipient notified for %s", msg.trackingNumber)
	return m, nil
}

// rebuildRows refilters and resorts the board from the in-memory list.
func (m *Model) rebuildRows() {
	filter := parcels.Filter{}
	if f := statusFilters[m.filterIdx]; f != "all" {
		filter.Statuses = []models.Status{models.Status(f)}
	}
	visible := parcels.Sort(parcels.Apply(m.parcels, filter), parcels.SortCreatedAt, false)

	rows := make([]table.Row, 0, len(visible))
	for _, p := range visible {
		created := p.CreatedAt
		if len(created) > 10 {
			created = created[:10]
		}
		rows = append(rows, table.Row{
			p.TrackingNumber,
			p.SenderName,
			p.RecipientName,
			fmt.Sprintf("%.1f", p.Weight),
			string(p.Status),
			created,
		})
	}
	m.table.SetRows(rows)
}
