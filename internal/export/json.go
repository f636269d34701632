package export

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/sadopc/progress/internal/store"
)

type jsonExport struct {
	ExportedAt string     `json:"exported_at"`
	Count      int        `json:"count"`
	Tasks      []jsonTask `json:"tasks"`
}

type jsonTask struct {
	ID         int64  `json:"id"`
	Project    string `json:"project"`
	Issue      string `json:"issue"`
	Name       string `json:"name"`
	Start      string `json:"start,omitempty"`
	End        string `json:"end,omitempty"`
	Status     string `json:"status"`
	Importance string `json:"importance"`
}

// ToJSON writes the flattened schedule to path.
func ToJSON(rows []store.DueTask, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(rows),
	}

	for _, r := range rows {
		out.Tasks = append(out.Tasks, jsonTask{
			ID:         r.Task.ID,
			Project:    r.ProjectName,
			Issue:      r.IssueTitle,
			Name:       r.Task.Name,
			Start:      dateStr(&r.Task, false),
			End:        dateStr(&r.Task, true),
			Status:     r.Task.Status,
			Importance: r.Task.Importance,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
