package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"placement/internal/entity"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

// JobView is the listing/detail projection joined with company, type and
// arrangement names, as served by the public jobs API.
type JobView struct {
	ID             int       `json:"id"`
	Title          string    `json:"title"`
	CompanyName    string    `json:"companyName"`
	CompanyLogo    string    `json:"companyLogo"`
	CompanyBg      string    `json:"companyBg"`
	Location       string    `json:"location"`
	Posted         time.Time `json:"posted"`
	Applied        int       `json:"applied"`
	MinSalary      float64   `json:"minSalary"`
	MaxSalary      float64   `json:"maxSalary"`
	Type           string    `json:"type"`
	Arrangement    string    `json:"arrangement"`
	Overview       string    `json:"overview"`
	Requirements   []string  `json:"requirements"`
	Qualifications []string  `json:"qualifications"`
	Skills         []string  `json:"skills"`
	Deadline       time.Time `json:"deadline"`
	Status         string    `json:"status"`
}

// DeriveStatus classifies a post as draft, expire or active.
func DeriveStatus(isPublished bool, deadline time.Time, now time.Time) string {
	if !isPublished {
		return "draft"
	}
	if deadline.Before(now) {
		return "expire"
	}
	return "active"
}

const jobViewSelect = `
	SELECT j.id, j.job_name, c.name,
		COALESCE(a.logo_url, ''), COALESCE(a.background_url, ''),
		j.location, j.created_at,
		(SELECT COUNT(*) FROM applications ap WHERE ap.post_id = j.id),
		j.min_salary, j.max_salary, t.name, ar.name,
		j.about_role, j.requirements, j.qualifications,
		j.deadline, j.is_published
	FROM job_posts j
	JOIN companies c ON c.id = j.company_id
	JOIN accounts a ON a.id = c.account_id
	JOIN job_types t ON t.id = j.job_type_id
	JOIN job_arrangements ar ON ar.id = j.job_arrangement_id`

func (r *JobRepository) scanView(scan func(dest ...interface{}) error) (*JobView, error) {
	var v JobView
	var isPublished bool
	err := scan(
		&v.ID, &v.Title, &v.CompanyName, &v.CompanyLogo, &v.CompanyBg,
		&v.Location, &v.Posted, &v.Applied,
		&v.MinSalary, &v.MaxSalary, &v.Type, &v.Arrangement,
		&v.Overview, pq.Array(&v.Requirements), pq.Array(&v.Qualifications),
		&v.Deadline, &isPublished,
	)
	if err != nil {
		return nil, mapError(err)
	}
	v.Status = DeriveStatus(isPublished, v.Deadline, time.Now())
	return &v, nil
}

// GetView returns the mapped detail for one post, including its tag names.
func (r *JobRepository) GetView(ctx context.Context, id int) (*JobView, error) {
	row := r.db.QueryRowContext(ctx, jobViewSelect+` WHERE j.id = $1`, id)
	v, err := r.scanView(row.Scan)
	if err != nil {
		return nil, err
	}
	tags, err := r.tags(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Skills = tags
	return v, nil
}

// PublicListFilter narrows the public jobs listing to published posts.
type PublicListFilter struct {
	Search string
	Type   string
	Page   int
	Limit  int
}

// ListPublished returns a page of published posts and the total match count.
func (r *JobRepository) ListPublished(ctx context.Context, f PublicListFilter) ([]JobView, int, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	where := []string{"j.is_published = true", "c.registration_status = 'approved'"}
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		where = append(where, fmt.Sprintf(
			"(j.job_name ILIKE %s OR c.name ILIKE %s OR j.location ILIKE %s)", p, p, p))
	}
	if f.Type != "" {
		where = append(where, fmt.Sprintf("LOWER(t.name) = LOWER(%s)", arg(f.Type)))
	}
	clause := " WHERE " + strings.Join(where, " AND ")

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM job_posts j
		JOIN companies c ON c.id = j.company_id
		JOIN job_types t ON t.id = j.job_type_id` + clause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	query := jobViewSelect + clause + `
		ORDER BY j.created_at DESC
		LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg((f.Page-1)*f.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var out []JobView
	for rows.Next() {
		v, err := r.scanView(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *v)
	}
	return out, total, mapError(rows.Err())
}

// AdminListFilter narrows the admin job-post listing.
type AdminListFilter struct {
	Search   string
	Status   string // "published", "draft" or empty
	Reported bool
	Page     int
	Limit    int
}

func (r *JobRepository) ListAdmin(ctx context.Context, f AdminListFilter) ([]JobView, int, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	var where []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		where = append(where, fmt.Sprintf(
			"(j.job_name ILIKE %s OR c.name ILIKE %s OR j.location ILIKE %s)", p, p, p))
	}
	switch f.Status {
	case "published":
		where = append(where, "j.is_published = true")
	case "draft":
		where = append(where, "j.is_published = false")
	}
	if f.Reported {
		where = append(where, "EXISTS (SELECT 1 FROM reports rp WHERE rp.post_id = j.id)")
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM job_posts j
		JOIN companies c ON c.id = j.company_id` + clause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	query := jobViewSelect + clause + `
		ORDER BY j.created_at DESC
		LIMIT ` + arg(f.Limit) + ` OFFSET ` + arg((f.Page-1)*f.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var out []JobView
	for rows.Next() {
		v, err := r.scanView(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *v)
	}
	return out, total, mapError(rows.Err())
}

func (r *JobRepository) Create(ctx context.Context, p *entity.JobPost) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO job_posts
			(company_id, job_name, location, min_salary, max_salary,
			 job_type_id, job_arrangement_id, about_role,
			 requirements, qualifications, deadline, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`,
		p.CompanyID, p.JobName, p.Location, p.MinSalary, p.MaxSalary,
		p.JobTypeID, p.JobArrangementID, p.AboutRole,
		pq.Array(p.Requirements), pq.Array(p.Qualifications),
		p.Deadline, p.IsPublished,
	).Scan(&p.ID, &p.CreatedAt)
	return mapError(err)
}

func (r *JobRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM job_posts WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *JobRepository) SetPublished(ctx context.Context, id int, published bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE job_posts SET is_published = $2 WHERE id = $1
	`, id, published)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *JobRepository) tags(ctx context.Context, postID int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.name
		FROM job_tags t
		JOIN job_post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.name
	`, postID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, mapError(err)
		}
		names = append(names, name)
	}
	return names, mapError(rows.Err())
}
