package repository

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/TienDung030704/datlichkhambenh/internal/model"
)

// StatsRepo aggregates the numbers behind the admin dashboard.  Every query
// returns a real error; the handler decides whether to surface it or fall
// back to zeroed defaults for the frontend.
type StatsRepo struct{ DB *sql.DB }

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{DB: db} }

// DashboardStats collects all dashboard counters in one call.
func (r *StatsRepo) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	var s model.DashboardStats

	counts := []struct {
		dst *int
		sql string
	}{
		{&s.TotalPatients, "SELECT COUNT(*) FROM users WHERE role='PATIENT' AND is_active=1"},
		{&s.TodayPatients, "SELECT COUNT(*) FROM users WHERE role='PATIENT' AND is_active=1 AND DATE(created_at)=CURDATE()"},
		{&s.MonthPatients, `SELECT COUNT(*) FROM users WHERE role='PATIENT' AND is_active=1
			AND YEAR(created_at)=YEAR(CURDATE()) AND MONTH(created_at)=MONTH(CURDATE())`},
		{&s.TodayAppointments, "SELECT COUNT(*) FROM appointments WHERE DATE(scheduled_at)=CURDATE() AND status <> 'CANCELLED'"},
		{&s.UpcomingAppointments, "SELECT COUNT(*) FROM appointments WHERE scheduled_at > NOW() AND status <> 'CANCELLED'"},
		{&s.TotalDoctors, "SELECT COUNT(*) FROM doctors WHERE is_active=1"},
	}
	for _, c := range counts {
		if err := r.DB.QueryRowContext(ctx, c.sql).Scan(c.dst); err != nil {
			return model.DashboardStats{}, err
		}
	}
	return s, nil
}

// UsersGrowth returns per-day (week/month) or per-month (year) counts of new
// PATIENT registrations for the dashboard chart.  Unknown periods fall back
// to the weekly series.
func (r *StatsRepo) UsersGrowth(ctx context.Context, period string) ([]model.GrowthPoint, error) {
	byMonth := false
	var query string
	switch strings.ToLower(period) {
	case "year":
		byMonth = true
		query = `SELECT MONTH(created_at) AS month, COUNT(*) AS count
			FROM users WHERE role='PATIENT' AND YEAR(created_at)=YEAR(CURDATE())
			GROUP BY MONTH(created_at) ORDER BY month`
	case "month":
		query = growthByDaySQL(30)
	default: // "week"
		query = growthByDaySQL(7)
	}

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.GrowthPoint{}
	for rows.Next() {
		var p model.GrowthPoint
		if byMonth {
			if err := rows.Scan(&p.Month, &p.Count); err != nil {
				return nil, err
			}
		} else {
			var day sql.NullTime
			if err := rows.Scan(&day, &p.Count); err != nil {
				return nil, err
			}
			if day.Valid {
				p.Date = day.Time.Format("2006-01-02")
			}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func growthByDaySQL(days int) string {
	// days comes from the switch above, never from request input
	return `SELECT DATE(created_at) AS date, COUNT(*) AS count
		FROM users WHERE role='PATIENT'
		AND created_at >= DATE_SUB(CURDATE(), INTERVAL ` + strconv.Itoa(days) + ` DAY)
		GROUP BY DATE(created_at) ORDER BY date`
}
