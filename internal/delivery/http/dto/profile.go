package dto

import (
	"time"

	"career-match/internal/domain/profile"
)

type UpdateSkillsRequest struct {
	Skills []string `json:"skills"`
}

type InteractionResponse struct {
	JobID string `json:"job_id"`
	Kind  string `json:"kind"`
	At    string `json:"at"`
}

type ProfileResponse struct {
	ID          string                `json:"id"`
	Skills      []string              `json:"skills"`
	Experience  string                `json:"experience"`
	DesiredRole string                `json:"desired_role"`
	Location    string                `json:"location"`
	RemoteOnly  bool                  `json:"remote_only"`
	SalaryFloor int                   `json:"salary_floor"`
	History     []InteractionResponse `json:"history"`
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	history := make([]InteractionResponse, 0, len(p.History))
	for _, it := range p.History {
		history = append(history, InteractionResponse{
			JobID: it.JobID.String(),
			Kind:  string(it.Kind),
			At:    it.At.UTC().Format(time.RFC3339),
		})
	}
	return ProfileResponse{
		ID:          p.ID.String(),
		Skills:      p.Skills.Names(),
		Experience:  string(p.Experience),
		DesiredRole: p.DesiredRole,
		Location:    p.Location,
		RemoteOnly:  p.RemoteOnly,
		SalaryFloor: p.SalaryFloor,
		History:     history,
	}
}
