package store

import (
	"encoding/json"
	"os"
)

// Summary records what a run produced. It is written once, after encoding.
type Summary struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	StepDays    int    `json:"step_days"`
	TotalFrames int    `json:"total_frames"`
	Name        string `json:"name"`
	BirthDate   string `json:"birth_date"`
	Output      string `json:"output,omitempty"`
}

func WriteSummary(path string, s Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
