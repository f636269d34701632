package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/progress/internal/store"
)

func dateStr(t *store.Task, end bool) string {
	d := t.StartDate
	if end {
		d = t.EndDate
	}
	if d == nil {
		return ""
	}
	return d.Format(store.DateLayout)
}

// ToCSV writes the flattened schedule to path.
func ToCSV(rows []store.DueTask, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Project", "Issue", "Task", "Start", "End", "Status", "Importance"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range rows {
		record := []string{
			r.ProjectName,
			r.IssueTitle,
			r.Task.Name,
			dateStr(&r.Task, false),
			dateStr(&r.Task, true),
			r.Task.Status,
			r.Task.Importance,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
