package model

import "time"

type Appointment struct {
	ID           string
	CompanyID    string
	LocationID   string
	ServiceID    string
	SpecialistID string
	FullName     string
	Email        string
	Phone        string
	Comment      string
	StartTime    time.Time
	EndTime      time.Time
	CreatedAt    time.Time
}
