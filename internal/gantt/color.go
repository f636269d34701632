package gantt

import (
	"fmt"
	"hash/fnv"

	"github.com/sadopc/progress/internal/store"
)

// Palette holds the theme colors assigned to bars when nothing explicit is
// configured.
var Palette = []string{"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6", "#3498DB"}

// FallbackColor derives a stable palette color from an issue's identity, so
// the same issue always renders the same hue across sessions.
func FallbackColor(projectID, issueID int64, title string) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d/%d/%s", projectID, issueID, title)
	return Palette[h.Sum32()%uint32(len(Palette))]
}

// TaskColor resolves a task's theme: its own color, else the owning issue's,
// else a hash-derived fallback keyed by the issue's identity.
func TaskColor(t store.Task, g TaskGroup) string {
	if t.Color != "" {
		return t.Color
	}
	if g.Issue.Color != "" {
		return g.Issue.Color
	}
	return FallbackColor(g.Project.ID, g.Issue.ID, g.Issue.Title)
}
