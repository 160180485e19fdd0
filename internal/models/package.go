package models

import (
	"strconv"
	"time"
)

// Package is a subscription tier managed by the super admin.
type Package struct {
	ID                uint64    `json:"id"`
	PackageName       string    `json:"package_name"`
	Price             float64   `json:"price"`
	JumpstartAdmin    float64   `json:"jumpstart_admin"`
	JumpstartSalesman float64   `json:"jumpstart_salesman"`
	DurationDays      int       `json:"duration_days"`
	DurationLabel     string    `json:"duration_label"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func DurationLabel(days int) string {
	switch days {
	case 30:
		return "Monthly"
	case 90:
		return "Quarterly"
	case 180:
		return "Half Yearly"
	case 365:
		return "Yearly"
	default:
		return strconv.Itoa(days) + " days"
	}
}

type PackageInput struct {
	PackageName       string  `json:"package_name" validate:"required,max=255"`
	Price             float64 `json:"price" validate:"gte=0"`
	JumpstartAdmin    float64 `json:"jumpstart_admin" validate:"gte=0"`
	JumpstartSalesman float64 `json:"jumpstart_salesman" validate:"gte=0"`
	DurationDays      int     `json:"duration_days" validate:"min=1"`
}
