package gantt

import (
	"errors"
	"testing"
)

// fakeSettings is an in-memory SettingsStore for tests.
type fakeSettings struct {
	values  map[string]string
	readErr error
	saveErr error
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: map[string]string{}}
}

func (f *fakeSettings) GetSetting(key string) (string, bool, error) {
	if f.readErr != nil {
		return "", false, f.readErr
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeSettings) SetSetting(key, value string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.values[key] = value
	return nil
}

func TestViewStateRoundTrip(t *testing.T) {
	kv := newFakeSettings()
	id := int64(4)

	if err := SaveViewState(kv, ViewState{SelectedProjectID: &id, ScrollLeft: 840}); err != nil {
		t.Fatal(err)
	}

	st, ok := LoadViewState(kv)
	if !ok {
		t.Fatal("expected persisted state")
	}
	if st.ScrollLeft != 840 {
		t.Fatalf("ScrollLeft = %d, want 840", st.ScrollLeft)
	}
	if st.SelectedProjectID == nil || *st.SelectedProjectID != 4 {
		t.Fatalf("SelectedProjectID = %v, want 4", st.SelectedProjectID)
	}
}

func TestViewStateNilFilter(t *testing.T) {
	kv := newFakeSettings()
	if err := SaveViewState(kv, ViewState{ScrollLeft: 10}); err != nil {
		t.Fatal(err)
	}
	st, ok := LoadViewState(kv)
	if !ok || st.SelectedProjectID != nil {
		t.Fatalf("expected nil project filter, got %v", st.SelectedProjectID)
	}
}

func TestLoadViewStateMissingKey(t *testing.T) {
	if _, ok := LoadViewState(newFakeSettings()); ok {
		t.Fatal("missing key should load as no state")
	}
}

func TestLoadViewStateBadPayload(t *testing.T) {
	kv := newFakeSettings()
	kv.values[StateKey] = "{not json"
	if _, ok := LoadViewState(kv); ok {
		t.Fatal("unparseable payload should load as no state")
	}
}

func TestLoadViewStateReadError(t *testing.T) {
	kv := newFakeSettings()
	kv.readErr = errors.New("disk on fire")
	if _, ok := LoadViewState(kv); ok {
		t.Fatal("read error should degrade to no state")
	}
}
