package repository

import (
	"context"
	"database/sql"
	"time"
)

type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

type SalaryStats struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Overall float64 `json:"overall"`
}

type HiringCompany struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	JobPostsCount     int    `json:"jobPostsCount"`
	TotalApplications int    `json:"totalApplications"`
}

type FacultySuccessRate struct {
	Faculty              string  `json:"faculty"`
	TotalStudents        int     `json:"totalStudents"`
	AcceptedApplications int     `json:"acceptedApplications"`
	SuccessRate          float64 `json:"successRate"`
}

type SkillCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ReportSummary struct {
	ID            int       `json:"id"`
	Type          string    `json:"type"`
	CreatedAt     time.Time `json:"createdAt"`
	ReporterEmail string    `json:"reporterEmail"`
}

// DashboardStats is the admin dashboard aggregate: a set of counts and
// rankings with light post-processing.
type DashboardStats struct {
	PendingCompanies        int                  `json:"pendingCompanies"`
	TotalJobPosts           int                  `json:"totalJobPosts"`
	TotalStudents           int                  `json:"totalStudents"`
	TotalCompanies          int                  `json:"totalCompanies"`
	ReportedPosts           int                  `json:"reportedPosts"`
	AverageSalary           SalaryStats          `json:"averageSalary"`
	TopHiringCompanies      []HiringCompany      `json:"topHiringCompanies"`
	SuccessRateByDepartment []FacultySuccessRate `json:"successRateByDepartment"`
	TopSkills               []SkillCount         `json:"topSkills"`
	RecentReports           []ReportSummary      `json:"recentReports"`
}

func (r *StatsRepository) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats

	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT COUNT(*) FROM companies WHERE registration_status = 'pending'`, &stats.PendingCompanies},
		{`SELECT COUNT(*) FROM job_posts`, &stats.TotalJobPosts},
		{`SELECT COUNT(*) FROM students`, &stats.TotalStudents},
		{`SELECT COUNT(*) FROM companies WHERE registration_status = 'approved'`, &stats.TotalCompanies},
		{`SELECT COUNT(*) FROM reports`, &stats.ReportedPosts},
	}
	for _, c := range counts {
		if err := r.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return nil, mapError(err)
		}
	}

	if err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(AVG(min_salary), 0), COALESCE(AVG(max_salary), 0)
		FROM job_posts
	`).Scan(&stats.AverageSalary.Min, &stats.AverageSalary.Max); err != nil {
		return nil, mapError(err)
	}
	stats.AverageSalary.Overall = (stats.AverageSalary.Min + stats.AverageSalary.Max) / 2

	var err error
	if stats.TopHiringCompanies, err = r.topHiringCompanies(ctx); err != nil {
		return nil, err
	}
	if stats.SuccessRateByDepartment, err = r.successRateByFaculty(ctx); err != nil {
		return nil, err
	}
	if stats.TopSkills, err = r.topSkills(ctx); err != nil {
		return nil, err
	}
	if stats.RecentReports, err = r.recentReports(ctx); err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *StatsRepository) topHiringCompanies(ctx context.Context) ([]HiringCompany, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name,
			COUNT(DISTINCT j.id),
			COUNT(ap.id)
		FROM companies c
		LEFT JOIN job_posts j ON j.company_id = c.id
		LEFT JOIN applications ap ON ap.post_id = j.id
		WHERE c.registration_status = 'approved'
		GROUP BY c.id, c.name
		ORDER BY COUNT(DISTINCT j.id) DESC
		LIMIT 10
	`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []HiringCompany
	for rows.Next() {
		var h HiringCompany
		if err := rows.Scan(&h.ID, &h.Name, &h.JobPostsCount, &h.TotalApplications); err != nil {
			return nil, mapError(err)
		}
		out = append(out, h)
	}
	return out, mapError(rows.Err())
}

func (r *StatsRepository) successRateByFaculty(ctx context.Context) ([]FacultySuccessRate, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.faculty,
			COUNT(DISTINCT s.id),
			COUNT(ap.id) FILTER (WHERE ap.status = 3)
		FROM students s
		LEFT JOIN applications ap ON ap.student_id = s.id
		GROUP BY s.faculty
		ORDER BY s.faculty
	`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []FacultySuccessRate
	for rows.Next() {
		var f FacultySuccessRate
		if err := rows.Scan(&f.Faculty, &f.TotalStudents, &f.AcceptedApplications); err != nil {
			return nil, mapError(err)
		}
		if f.TotalStudents > 0 {
			f.SuccessRate = float64(f.AcceptedApplications) / float64(f.TotalStudents) * 100
		}
		out = append(out, f)
	}
	return out, mapError(rows.Err())
}

func (r *StatsRepository) topSkills(ctx context.Context) ([]SkillCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.name, COUNT(pt.post_id)
		FROM job_tags t
		LEFT JOIN job_post_tags pt ON pt.tag_id = t.id
		GROUP BY t.name
		ORDER BY COUNT(pt.post_id) DESC
		LIMIT 10
	`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []SkillCount
	for rows.Next() {
		var s SkillCount
		if err := rows.Scan(&s.Name, &s.Count); err != nil {
			return nil, mapError(err)
		}
		out = append(out, s)
	}
	return out, mapError(rows.Err())
}

func (r *StatsRepository) recentReports(ctx context.Context) ([]ReportSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rp.id, rp.type, rp.created_at, a.email
		FROM reports rp
		JOIN accounts a ON a.id = rp.account_id
		ORDER BY rp.created_at DESC
		LIMIT 10
	`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var out []ReportSummary
	for rows.Next() {
		var s ReportSummary
		if err := rows.Scan(&s.ID, &s.Type, &s.CreatedAt, &s.ReporterEmail); err != nil {
			return nil, mapError(err)
		}
		out = append(out, s)
	}
	return out, mapError(rows.Err())
}
