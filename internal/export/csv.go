package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"worklog/internal/store"
)

func ToCSV(entries []store.TimeEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Clock In", "Clock Out", "Total (min)", "Break (min)", "Billable Hours", "Status", "Notes"}); err != nil {
		return err
	}

	for _, e := range entries {
		outStr := ""
		if e.ClockOut != nil {
			outStr = e.ClockOut.Local().Format(time.RFC3339)
		}

		row := []string{
			fmt.Sprintf("%d", e.ID),
			e.ClockIn.Local().Format(time.RFC3339),
			outStr,
			fmt.Sprintf("%d", e.TotalDuration),
			fmt.Sprintf("%d", e.BreakDuration),
			fmt.Sprintf("%.2f", e.BillableHours),
			e.Status,
			e.Notes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
