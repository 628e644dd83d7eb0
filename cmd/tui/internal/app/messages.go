package app

import "github.com/kettno/courier-portal/pkg/models"

// --- Tea messages ---

type loginResultMsg struct {
	token string
	err   error
}

type parcelsMsg struct {
	list []models.Parcel
	err  error
}

type statusUpdatedMsg struct {
	trackingNumber string
	status         models.Status
	err            error
}

type notifiedMsg struct {
	trackingNumber string
	err            error
}
