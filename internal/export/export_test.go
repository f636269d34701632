package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/sadopc/progress/internal/store"
)

func sampleRows() []store.DueTask {
	start := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC)
	return []store.DueTask{
		{
			Task: store.Task{
				ID: 1, Name: "Wireframes",
				StartDate: &start, EndDate: &end,
				Status: store.StatusInProgress, Importance: store.ImportanceHigh,
			},
			IssueTitle:  "Redesign",
			ProjectName: "Website",
		},
		{
			Task:        store.Task{ID: 2, Name: "Undated", Status: store.StatusNotStarted, Importance: store.ImportanceMedium},
			IssueTitle:  "Redesign",
			ProjectName: "Website",
		},
	}
}

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ToCSV(sampleRows(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want header + 2 rows", len(records))
	}
	if records[0][0] != "Project" {
		t.Fatalf("header = %v", records[0])
	}
	if records[1][2] != "Wireframes" || records[1][3] != "2024-06-10" || records[1][4] != "2024-06-14" {
		t.Fatalf("row = %v", records[1])
	}
	// Missing dates export as empty cells.
	if records[2][3] != "" || records[2][4] != "" {
		t.Fatalf("undated row = %v", records[2])
	}
}

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ToJSON(sampleRows(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out jsonExport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 || len(out.Tasks) != 2 {
		t.Fatalf("count = %d tasks = %d", out.Count, len(out.Tasks))
	}
	if out.Tasks[0].Project != "Website" || out.Tasks[0].Start != "2024-06-10" {
		t.Fatalf("task = %+v", out.Tasks[0])
	}
	if out.Tasks[1].Start != "" || out.Tasks[1].End != "" {
		t.Fatalf("undated task = %+v", out.Tasks[1])
	}
	if _, err := time.Parse(time.RFC3339, out.ExportedAt); err != nil {
		t.Fatalf("exported_at = %q: %v", out.ExportedAt, err)
	}
}
