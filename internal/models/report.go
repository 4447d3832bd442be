package models

import (
	"time"
)

type ReportStatus string

const (
	StatusPending    ReportStatus = "Pending"
	StatusInProgress ReportStatus = "In Progress"
	StatusResolved   ReportStatus = "Resolved"
)

type Report struct {
	ID          string       `json:"id" gorm:"type:uuid;primaryKey"`
	Description string       `json:"description" gorm:"not null"`
	PhotoURL    string       `json:"photo_url,omitempty"`
	Lat         float64      `json:"lat" gorm:"not null"`
	Lng         float64      `json:"lng" gorm:"not null"`
	Status      ReportStatus `json:"status" gorm:"not null;default:'Pending'"`
	CreatedAt   time.Time    `json:"created_at"`
}

type ReportCreate struct {
	Description string  `json:"description" validate:"required,notblank"`
	PhotoURL    string  `json:"photo_url"`
	Lat         float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng         float64 `json:"lng" validate:"gte=-180,lte=180"`
}

type ReportStatusUpdate struct {
	Status ReportStatus `json:"status" validate:"required,oneof=Pending 'In Progress' Resolved"`
}

type DailySummary struct {
	Date              string `json:"date"`
	TotalReports      int64  `json:"total_reports"`
	PendingReports    int64  `json:"pending_reports"`
	InProgressReports int64  `json:"in_progress_reports"`
	ResolvedReports   int64  `json:"resolved_reports"`
	SummaryText       string `json:"summary_text"`
}
