package dto

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type LearningPathRequest struct {
	TargetSkill string `json:"target_skill"`
}

type ChatResponse struct {
	SessionID string `json:"session_id,omitempty"`
	Reply     string `json:"reply"`
	Provider  string `json:"provider,omitempty"`
	Degraded  bool   `json:"degraded"`
}
