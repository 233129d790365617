package http

import (
	stdctx "context"
	"net/http"
	"testing"
	"time"

	setdom "lifering/internal/services/settings/domain"
)

type fakeSettings struct {
	snap setdom.Snapshot
}

func (f *fakeSettings) Snapshot(stdctx.Context) (setdom.Snapshot, error) {
	return f.snap, nil
}

func TestEngine_ReportsSnapshot(t *testing.T) {
	touched := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	h := &handlers{deps: Deps{Settings: &fakeSettings{snap: setdom.Snapshot{
		Version:   4,
		Enabled:   true,
		ModelID:   "gpt-4o-mini",
		UpdatedAt: touched,
	}}}}

	req, _ := http.NewRequest(http.MethodGet, "http://x.test/meta/engine", nil)
	got, err := h.engine(req)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	out, ok := got.(EngineResponse)
	if !ok {
		t.Fatalf("engine returned %T", got)
	}
	if !out.Enabled || out.SettingsVersion != 4 || out.ModelID != "gpt-4o-mini" {
		t.Fatalf("engine response = %+v", out)
	}
	if out.UpdatedAt == nil || !out.UpdatedAt.Equal(touched) {
		t.Fatalf("settings_updated_at = %v, want %v", out.UpdatedAt, touched)
	}
}

func TestEngine_OmitsUpdatedAtWhenNeverTouched(t *testing.T) {
	h := &handlers{deps: Deps{Settings: &fakeSettings{snap: setdom.Snapshot{Version: 1}}}}

	req, _ := http.NewRequest(http.MethodGet, "http://x.test/meta/engine", nil)
	got, err := h.engine(req)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	out := got.(EngineResponse)
	if out.UpdatedAt != nil {
		t.Fatalf("settings_updated_at = %v, want nil for untouched settings", out.UpdatedAt)
	}
}
