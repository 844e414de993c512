package dto

import (
	"career-match/internal/domain/gap"
	"career-match/internal/usecase"
)

type RecommendationItemResponse struct {
	Job           JobResponse `json:"job"`
	MatchScore    float64     `json:"match_score"`
	FinalScore    float64     `json:"final_score"`
	Rank          int         `json:"rank"`
	MatchedSkills []string    `json:"matched_skills"`
	MissingSkills []string    `json:"missing_skills"`
	GapPercent    float64     `json:"gap_percent"`
	GapSeverity   string      `json:"gap_severity"`
	Explanation   string      `json:"explanation"`
}

type RecommendationListResponse struct {
	Items []RecommendationItemResponse `json:"items"`
	Stale bool                         `json:"stale"`
}

func NewRecommendationListResponse(res usecase.RecommendationResult) RecommendationListResponse {
	items := make([]RecommendationItemResponse, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, RecommendationItemResponse{
			Job:           NewJobResponse(it.Job),
			MatchScore:    it.MatchScore,
			FinalScore:    it.FinalScore,
			Rank:          it.Rank,
			MatchedSkills: it.MatchedSkills,
			MissingSkills: it.MissingSkills,
			GapPercent:    it.GapPercent,
			GapSeverity:   string(it.GapSeverity),
			Explanation:   it.Explanation,
		})
	}
	return RecommendationListResponse{Items: items, Stale: res.Stale}
}

type GapReportResponse struct {
	JobID         string   `json:"job_id"`
	Percentage    float64  `json:"percentage"`
	MissingSkills []string `json:"missing_skills"`
	Severity      string   `json:"severity"`
}

func NewGapReportResponse(r gap.Report) GapReportResponse {
	return GapReportResponse{
		JobID:         r.JobID.String(),
		Percentage:    r.Percentage,
		MissingSkills: r.MissingSkills,
		Severity:      string(r.Severity),
	}
}
