package domain

import "time"

// BuildInfo is the state recorded after a task ran successfully.
type BuildInfo struct {
	TaskName   string    `json:"task_name"`
	InputHash  string    `json:"input_hash"`
	OutputHash string    `json:"output_hash"`
	Timestamp  time.Time `json:"timestamp"`
}
