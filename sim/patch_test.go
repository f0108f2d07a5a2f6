package sim

import "testing"

func TestPatchStatusString(t *testing.T) {
	tests := []struct {
		status PatchStatus
		want   string
	}{
		{StatusNone, "none"},
		{StatusCultivating, "cult"},
		{StatusGrowing, "growing"},
		{StatusIdling, "idling"},
		{StatusConsumed, "consumed"},
		{PatchStatus(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("PatchStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestChangeStatusResetsClock(t *testing.T) {
	p := Patch{Group: 1, Status: StatusCultivating, Clock: 7}
	p.ChangeStatus(StatusGrowing)
	if p.Status != StatusGrowing {
		t.Errorf("status = %v, want %v", p.Status, StatusGrowing)
	}
	if p.Clock != 0 {
		t.Errorf("clock = %d, want 0", p.Clock)
	}
}

func TestNewPatchArena(t *testing.T) {
	nm := 3
	patches := newPatchArena(nm)

	if len(patches) != 2*nm {
		t.Fatalf("arena size = %d, want %d", len(patches), 2*nm)
	}
	for i, p := range patches {
		wantGroup := i / nm
		if p.Group != wantGroup {
			t.Errorf("patch %d group = %d, want %d", i, p.Group, wantGroup)
		}
		wantStatus := StatusNone
		if i == 0 || i == nm {
			// The first patch of each group starts cultivating at once.
			wantStatus = StatusCultivating
		}
		if p.Status != wantStatus {
			t.Errorf("patch %d status = %v, want %v", i, p.Status, wantStatus)
		}
		if p.Clock != 0 {
			t.Errorf("patch %d clock = %d, want 0", i, p.Clock)
		}
	}
}
