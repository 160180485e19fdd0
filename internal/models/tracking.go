package models

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrDuplicateTrackingID is returned by a store when a new record's code is already taken.
var ErrDuplicateTrackingID = errors.New("tracking_id already exists")

type Status string

// Canonical status values. The database only accepts these spellings.
const (
	StatusBooking        Status = "Booking"
	StatusInProcess      Status = "In process"
	StatusOutForDelivery Status = "Out for delivery"
	StatusDelivered      Status = "Delivered"
	StatusCancelled      Status = "Cancelled"
)

var AllStatuses = []Status{
	StatusBooking,
	StatusInProcess,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

// ParseStatus maps any case/spacing variant ("In Process", "out for  delivery")
// to the canonical value. Unknown values return false.
func ParseStatus(s string) (Status, bool) {
	key := statusKey(s)
	if key == "" {
		return "", false
	}
	for _, st := range AllStatuses {
		if statusKey(string(st)) == key {
			return st, true
		}
	}
	return "", false
}

func statusKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// InTransit reports whether the shipment is moving but not yet delivered.
func (s Status) InTransit() bool {
	return s == StatusInProcess || s == StatusOutForDelivery
}

type TrackingRecord struct {
	ID            uint64    `json:"id"`
	TrackingID    string    `json:"tracking_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Status        Status    `json:"status"`
	Location      string    `json:"location"`
	EstimatedDate string    `json:"estimated_date"`
	EstimatedTime string    `json:"estimated_time"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TrackingSnapshot is the public view of a record. It deliberately has no
// e-mail or phone.
type TrackingSnapshot struct {
	TrackingID    string `json:"tracking_id"`
	CurrentStatus Status `json:"current_status"`
	Location      string `json:"location"`
	EstimatedDate string `json:"estimated_date"`
	EstimatedTime string `json:"estimated_time"`
	Name          string `json:"name"`
}

func (t *TrackingRecord) Snapshot() TrackingSnapshot {
	return TrackingSnapshot{
		TrackingID:    t.TrackingID,
		CurrentStatus: t.Status,
		Location:      t.Location,
		EstimatedDate: t.EstimatedDate,
		EstimatedTime: t.EstimatedTime,
		Name:          t.Name,
	}
}

type TrackingCreateInput struct {
	Name  string
	Email string
	Phone string
}

type RecipientUpdate struct {
	ID    uint64
	Name  string
	Email string
	Phone string
}

type StatusUpdate struct {
	TrackingRecordID uint64
	Location         string
	EstimatedDate    string // YYYY-MM-DD
	EstimatedTime    string // HH:MM
	Status           Status
}

type StatusCounts struct {
	Total     int64 `json:"total"`
	Delivered int64 `json:"delivered"`
	InTransit int64 `json:"in_transit"`
	Booking   int64 `json:"booking"`
	Cancelled int64 `json:"cancelled"`
}

// Add accumulates n records with status s.
func (c *StatusCounts) Add(s Status, n int64) {
	c.Total += n
	switch {
	case s == StatusDelivered:
		c.Delivered += n
	case s == StatusBooking:
		c.Booking += n
	case s == StatusCancelled:
		c.Cancelled += n
	case s.InTransit():
		c.InTransit += n
	}
}
