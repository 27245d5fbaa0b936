package model

import "time"

// AppointmentRow is the admin-panel projection of an appointment, joined
// against users and doctors for display names.
type AppointmentRow struct {
	ID            uint64    `json:"id"`
	PatientName   string    `json:"patientName"`
	DoctorName    string    `json:"doctorName"`
	SpecialtyName string    `json:"specialtyName"`
	ScheduledAt   time.Time `json:"scheduledAt"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// DashboardStats aggregates the numbers shown on the admin dashboard.
type DashboardStats struct {
	TotalPatients        int `json:"totalPatients"`
	TodayPatients        int `json:"todayPatients"`
	MonthPatients        int `json:"monthPatients"`
	TodayAppointments    int `json:"todayAppointments"`
	UpcomingAppointments int `json:"upcomingAppointments"`
	TotalDoctors         int `json:"totalDoctors"`
}

// GrowthPoint is one bucket of the users-growth chart.  Date carries the
// day (week/month periods); Month carries the month number (year period).
type GrowthPoint struct {
	Date  string `json:"date,omitempty"`
	Month int    `json:"month,omitempty"`
	Count int    `json:"count"`
}
