package entity

import "time"

// Application statuses.
const (
	ApplicationPending  = 1
	ApplicationRejected = 2
	ApplicationAccepted = 3
)

type JobPost struct {
	ID               int       `json:"id"`
	CompanyID        int       `json:"company_id"`
	JobName          string    `json:"job_name"`
	Location         string    `json:"location"`
	MinSalary        float64   `json:"min_salary"`
	MaxSalary        float64   `json:"max_salary"`
	JobTypeID        int       `json:"job_type_id"`
	JobArrangementID int       `json:"job_arrangement_id"`
	AboutRole        string    `json:"about_role"`
	Requirements     []string  `json:"requirements"`
	Qualifications   []string  `json:"qualifications"`
	Deadline         time.Time `json:"deadline"`
	IsPublished      bool      `json:"is_published"`
	CreatedAt        time.Time `json:"created_at"`
}

type JobType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type JobArrangement struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type JobTag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Application struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	PostID    int       `json:"post_id"`
	Status    int       `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type Report struct {
	ID        int       `json:"id"`
	AccountID int       `json:"account_id"`
	PostID    int       `json:"post_id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}
