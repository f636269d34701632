package gantt

import "github.com/goccy/go-json"

// StateKey is the settings key holding the persisted timeline view state.
const StateKey = "progressGanttState"

// ViewState is the slice of viewport state that survives restarts: the
// active project filter and the horizontal scroll offset. It is best-effort
// only and never authoritative.
type ViewState struct {
	SelectedProjectID *int64 `json:"selectedProjectId"`
	ScrollLeft        int    `json:"scrollLeft"`
}

// SettingsStore is the key-value persistence the timeline needs. A missing
// key is reported via ok=false, not an error.
type SettingsStore interface {
	GetSetting(key string) (value string, ok bool, err error)
	SetSetting(key, value string) error
}

// LoadViewState reads the persisted view state. Any failure — read error,
// missing key, unparseable payload — degrades to "no persisted state".
func LoadViewState(s SettingsStore) (ViewState, bool) {
	raw, ok, err := s.GetSetting(StateKey)
	if err != nil || !ok {
		return ViewState{}, false
	}
	var st ViewState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return ViewState{}, false
	}
	return st, true
}

// SaveViewState persists the view state. Failures are returned for the
// caller to log; they must never block the UI.
func SaveViewState(s SettingsStore, st ViewState) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.SetSetting(StateKey, string(data))
}
