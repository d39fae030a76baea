package models

import (
	"strings"
	"time"

	"github.com/zhenyakul/ghub-international/internal/catalog"
)

// Action is one selectable button attached to an outbound message. A
// non-empty URL makes it an outbound link instead of a callback button.
type Action struct {
	Label string
	Token string
	URL   string
}

// IntakeRecord is the completed intake handed to a human operator and
// appended to the archive store.
type IntakeRecord struct {
	UserID         string              `json:"user_id"`
	Language       catalog.Language    `json:"language"`
	Operator       string              `json:"operator"`
	ProductRequest string              `json:"product_request"`
	Services       []catalog.ServiceID `json:"services"`
	Payment        catalog.PaymentID   `json:"payment"`
	CompletedAt    time.Time           `json:"completed_at"`
}

// ServiceNames renders the record's services as a localized,
// comma-separated list.
func (r IntakeRecord) ServiceNames() string {
	names := make([]string, 0, len(r.Services))
	for _, id := range r.Services {
		names = append(names, catalog.ServiceName(r.Language, id))
	}
	return strings.Join(names, ", ")
}
