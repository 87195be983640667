package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"worklog/internal/store"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID            int64       `json:"id"`
	ClockIn       string      `json:"clock_in"`
	ClockOut      string      `json:"clock_out,omitempty"`
	TotalMinutes  int         `json:"total_minutes"`
	BreakMinutes  int         `json:"break_minutes"`
	BillableHours float64     `json:"billable_hours"`
	Status        string      `json:"status"`
	Breaks        []jsonBreak `json:"breaks,omitempty"`
	Notes         string      `json:"notes,omitempty"`
}

type jsonBreak struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time,omitempty"`
	Minutes   int    `json:"minutes"`
}

func ToJSON(entries []store.TimeEntry, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(entries),
	}

	for _, e := range entries {
		outStr := ""
		if e.ClockOut != nil {
			outStr = e.ClockOut.Local().Format(time.RFC3339)
		}

		var breaks []jsonBreak
		for _, b := range e.Breaks {
			endStr := ""
			if b.EndTime != nil {
				endStr = b.EndTime.Local().Format(time.RFC3339)
			}
			breaks = append(breaks, jsonBreak{
				StartTime: b.StartTime.Local().Format(time.RFC3339),
				EndTime:   endStr,
				Minutes:   b.Duration,
			})
		}

		export.Entries = append(export.Entries, jsonEntry{
			ID:            e.ID,
			ClockIn:       e.ClockIn.Local().Format(time.RFC3339),
			ClockOut:      outStr,
			TotalMinutes:  e.TotalDuration,
			BreakMinutes:  e.BreakDuration,
			BillableHours: e.BillableHours,
			Status:        e.Status,
			Breaks:        breaks,
			Notes:         e.Notes,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
