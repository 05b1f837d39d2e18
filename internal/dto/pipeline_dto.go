package dto

import "time"

// StageCount is the number of applications sitting in one pipeline stage.
type StageCount struct {
	Stage     int    `json:"stage"`
	StageName string `json:"stage_name"`
	Count     int64  `json:"count"`
}

// PipelineStatsResponse is the dashboard's pipeline board summary.
type PipelineStatsResponse struct {
	Total       int64            `json:"total"`
	Stages      []StageCount     `json:"stages"`
	ByStatus    map[string]int64 `json:"by_status"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// StageEvent is broadcast whenever an application changes status.
type StageEvent struct {
	ApplicationID     uint      `json:"application_id"`
	ApplicationNumber string    `json:"application_number"`
	From              string    `json:"from"`
	To                string    `json:"to"`
	Actor             string    `json:"actor"`
	OccurredAt        time.Time `json:"occurred_at"`
}
