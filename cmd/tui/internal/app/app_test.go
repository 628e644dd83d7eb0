package app_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kettno/courier-portal/cmd/tui/internal/app"
	"github.com/kettno/courier-portal/internal/api/apitest"
	"github.com/kettno/courier-portal/pkg/models"
)

// --- Test helpers ---

func mustModel(iface tea.Model) app.Model {
	return iface.(app.Model)
}

func typeText(m app.Model, text string) app.Model {
	for _, c := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{c}})
		m = mustModel(next)
	}
	return m
}

func press(m app.Model, key tea.KeyType) (app.Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: key})
	return mustModel(next), cmd
}

func pressRune(m app.Model, r rune) (app.Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return mustModel(next), cmd
}

// runCmd executes a tea.Cmd and dispatches the resulting message into the model.
func runCmd(m app.Model, cmd tea.Cmd) (app.Model, tea.Cmd) {
	if cmd == nil {
		return m, nil
	}
	next, nextCmd := m.Update(cmd())
	return mustModel(next), nextCmd
}

func sampleParcels() []models.Parcel {
	return []models.Parcel{
		{TrackingNumber: "PK100", SenderName: "John", RecipientName: "Mary",
			Weight: 2.5, Status: models.StatusRegistered, CreatedAt: "2026-08-01T08:00:00Z"},
		{TrackingNumber: "PK101", SenderName: "Grace", RecipientName: "Peter",
			Weight: 1.0, Status: models.StatusDelivered, CreatedAt: "2026-08-02T08:00:00Z"},
	}
}

// login drives the model through login and the first parcel fetch.
func login(t *testing.T, mock *apitest.Mock) app.Model {
	t.Helper()
	if mock.LoginFunc == nil {
		mock.LoginFunc = func(username, password string) (string, error) {
			return "token-abc", nil
		}
	}
	if mock.ListParcelsFunc == nil {
		mock.ListParcelsFunc = func(token string) ([]models.Parcel, error) {
			return sampleParcels(), nil
		}
	}

	m := app.New(mock, "localhost:9000")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = mustModel(next)

	m = typeText(m, "amina")
	m, cmd := press(m, tea.KeyEnter) // submit, fires doLogin
	m, cmd = runCmd(m, cmd)          // loginResultMsg, fires fetch
	m, _ = runCmd(m, cmd)            // parcelsMsg
	return m
}

// --- Tests ---

func TestLoginRequiresUsername(t *testing.T) {
	m := app.New(&apitest.Mock{}, "localhost:9000")
	m, cmd := press(m, tea.KeyEnter)
	if cmd != nil {
		t.Error("empty username should not fire a login command")
	}
	if !strings.Contains(m.View(), "username is required") {
		t.Error("view should show the validation error")
	}
}

func TestLoginSuccessLoadsBoard(t *testing.T) {
	var gotUser, gotPass string
	mock := &apitest.Mock{
		LoginFunc: func(username, password string) (string, error) {
			gotUser, gotPass = username, password
			return "token-abc", nil
		},
	}

	m := app.New(mock, "localhost:9000")
	m = typeText(m, "amina")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "correct-horse")
	m, cmd := press(m, tea.KeyEnter)
	mock.ListParcelsFunc = func(token string) ([]models.Parcel, error) {
		if token != "token-abc" {
			t.Errorf("fetch used token %q, want token-abc", token)
		}
		return sampleParcels(), nil
	}
	m, cmd = runCmd(m, cmd)
	m, _ = runCmd(m, cmd)

	if gotUser != "amina" || gotPass != "correct-horse" {
		t.Errorf("login sent (%q, %q)", gotUser, gotPass)
	}
	if m.Token() != "token-abc" {
		t.Errorf("token = %q, want token-abc", m.Token())
	}
	view := m.View()
	for _, want := range []string{"PK100", "PK101", "Parcel Board"} {
		if !strings.Contains(view, want) {
			t.Errorf("board view missing %q", want)
		}
	}
}

func TestLoginFailureStaysOnForm(t *testing.T) {
	mock := &apitest.Mock{
		LoginFunc: func(username, password string) (string, error) {
			return "", &loginError{}
		},
	}
	m := app.New(mock, "localhost:9000")
	m = typeText(m, "amina")
	m, cmd := press(m, tea.KeyEnter)
	m, _ = runCmd(m, cmd)

	if !strings.Contains(m.View(), "Username:") {
		t.Error("failed login should return to the form")
	}
	if !strings.Contains(m.View(), "bad credentials") {
		t.Error("form should show the login error")
	}
}

type loginError struct{}

func (*loginError) Error() string { return "bad credentials" }

func TestFilterCycleHidesOtherStatuses(t *testing.T) {
	m := login(t, &apitest.Mock{})

	// "all" → "registered": the delivered parcel disappears.
	m, _ = pressRune(m, 'f')
	view := m.View()
	if !strings.Contains(view, "PK100") {
		t.Error("registered parcel missing under registered filter")
	}
	if strings.Contains(view, "PK101") {
		t.Error("delivered parcel should be hidden under registered filter")
	}
}

func TestAdvanceStatusUpdatesBoardLocally(t *testing.T) {
	var sent models.Status
	mock := &apitest.Mock{
		UpdateParcelStatusFunc: func(token, trackingNumber string, status models.Status) error {
			sent = status
			return nil
		},
	}
	m := login(t, mock)

	// Board sorts newest first: row 0 is PK101 (delivered), row 1 PK100.
	m, _ = press(m, tea.KeyDown)
	m, cmd := pressRune(m, 's')
	m, _ = runCmd(m, cmd)

	if sent != models.StatusInTransit {
		t.Errorf("advance sent %q, want in_transit", sent)
	}
	if !strings.Contains(m.View(), "PK100 → in_transit") {
		t.Error("status line should report the applied update")
	}
}

func TestAdvanceCollectedParcelGoesNowhere(t *testing.T) {
	called := false
	mock := &apitest.Mock{
		UpdateParcelStatusFunc: func(token, trackingNumber string, status models.Status) error {
			called = true
			return nil
		},
		ListParcelsFunc: func(token string) ([]models.Parcel, error) {
			return []models.Parcel{
				{TrackingNumber: "PK900", Status: models.StatusCollected, CreatedAt: "2026-08-01T08:00:00Z"},
			}, nil
		},
	}
	m := login(t, mock)

	m, cmd := pressRune(m, 's')
	runCmd(m, cmd)

	if called {
		t.Error("a collected parcel must not produce an update request")
	}
}

func TestNotifyOnlyForDelivered(t *testing.T) {
	notified := ""
	mock := &apitest.Mock{
		NotifyRecipientFunc: func(token, trackingNumber string) error {
			notified = trackingNumber
			return nil
		},
	}
	m := login(t, mock)

	// Row 0 is PK101 (delivered).
	m, cmd := pressRune(m, 'n')
	m, _ = runCmd(m, cmd)
	if notified != "PK101" {
		t.Errorf("notified %q, want PK101", notified)
	}

	// Row 1 is PK100 (registered): no request.
	notified = ""
	m, _ = press(m, tea.KeyDown)
	m, cmd = pressRune(m, 'n')
	runCmd(m, cmd)
	if notified != "" {
		t.Error("a registered parcel must not be announced")
	}
}

func TestRefreshRefetches(t *testing.T) {
	fetches := 0
	mock := &apitest.Mock{
		ListParcelsFunc: func(token string) ([]models.Parcel, error) {
			fetches++
			return sampleParcels(), nil
		},
	}
	m := login(t, mock)
	if fetches != 1 {
		t.Fatalf("fetches after login = %d, want 1", fetches)
	}

	m, cmd := pressRune(m, 'r')
	runCmd(m, cmd)
	if fetches != 2 {
		t.Errorf("fetches after refresh = %d, want 2", fetches)
	}
}
