package dto

import (
	"time"

	"career-match/internal/domain/job"
)

type SalaryRangeResponse struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

type JobResponse struct {
	ID              string              `json:"id"`
	Title           string              `json:"title"`
	Company         string              `json:"company"`
	Location        string              `json:"location"`
	Remote          bool                `json:"remote"`
	Experience      string              `json:"experience"`
	Salary          SalaryRangeResponse `json:"salary"`
	RequiredSkills  []string            `json:"required_skills"`
	PreferredSkills []string            `json:"preferred_skills"`
	PostedAt        time.Time           `json:"posted_at"`
	Active          bool                `json:"active"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:         j.ID.String(),
		Title:      j.Title,
		Company:    j.Company,
		Location:   j.Location,
		Remote:     j.Remote,
		Experience: string(j.Experience),
		Salary: SalaryRangeResponse{
			Min:      j.Salary.Min,
			Max:      j.Salary.Max,
			Currency: j.Salary.Currency,
		},
		RequiredSkills:  j.Required.Names(),
		PreferredSkills: j.Preferred.Names(),
		PostedAt:        j.PostedAt,
		Active:          j.Active,
	}
}

type JobImportItem struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	Remote          bool     `json:"remote"`
	Experience      string   `json:"experience"`
	SalaryMin       int      `json:"salary_min"`
	SalaryMax       int      `json:"salary_max"`
	Currency        string   `json:"currency"`
	RequiredSkills  []string `json:"required_skills"`
	PreferredSkills []string `json:"preferred_skills"`
	PostedAt        string   `json:"posted_at"`
	Active          *bool    `json:"active"`
}

type JobImportRequest struct {
	Jobs []JobImportItem `json:"jobs"`
}
