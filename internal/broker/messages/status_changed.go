package messages

import (
	"time"

	"github.com/BearBump/ParcelDesk/internal/models"
)

// TrackingStatusChanged is published after every successful status update.
// Key: tracking code.
type TrackingStatusChanged struct {
	TrackingRecordID uint64    `json:"tracking_record_id"`
	TrackingID       string    `json:"tracking_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Status           string    `json:"status"`
	Location         string    `json:"location,omitempty"`
	EstimatedDate    string    `json:"estimated_date,omitempty"`
	EstimatedTime    string    `json:"estimated_time,omitempty"`
	ChangedAt        time.Time `json:"changed_at"`
}

func NewTrackingStatusChanged(t *models.TrackingRecord) TrackingStatusChanged {
	return TrackingStatusChanged{
		TrackingRecordID: t.ID,
		TrackingID:       t.TrackingID,
		Name:             t.Name,
		Email:            t.Email,
		Status:           string(t.Status),
		Location:         t.Location,
		EstimatedDate:    t.EstimatedDate,
		EstimatedTime:    t.EstimatedTime,
		ChangedAt:        t.UpdatedAt,
	}
}
