package planner

import (
	"errors"
	"testing"

	"github.com/danieljhkim/sbplan/internal/catalog"
)

func entry(name string, action Action, included bool) Entry {
	return Entry{Package: catalog.Package{Name: name}, Action: action, Included: included}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in      string
		want    Action
		wantErr bool
	}{
		{"Install", ActionInstall, false},
		{"install", ActionInstall, false},
		{"UPGRADE", ActionUpgrade, false},
		{"reinstall", ActionReinstall, false},
		{"remove", ActionRemove, false},
		{"purge", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAction) {
					t.Errorf("ParseAction(%q) error = %v, want ErrInvalidAction", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseAction(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestPlan_Toggle(t *testing.T) {
	plan := &Plan{
		Action: ActionInstall,
		Entries: []Entry{
			entry("C", ActionReinstall, false),
			entry("B", ActionInstall, true),
			entry("A", ActionInstall, true),
		},
	}

	if err := plan.Toggle(0); err != nil {
		t.Fatalf("Toggle(0) error = %v", err)
	}
	if !plan.Entries[0].Included {
		t.Error("expected entry 0 to be included after toggle")
	}

	if err := plan.Toggle(1); err != nil {
		t.Fatalf("Toggle(1) error = %v", err)
	}
	if plan.Entries[1].Included {
		t.Error("expected entry 1 to be excluded after toggle")
	}

	if err := plan.Toggle(2); !errors.Is(err, ErrTargetLocked) {
		t.Errorf("Toggle(target) error = %v, want ErrTargetLocked", err)
	}
	if !plan.Target().Included {
		t.Error("target must stay included")
	}

	for _, i := range []int{-1, 3} {
		if err := plan.Toggle(i); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Toggle(%d) error = %v, want ErrIndexOutOfRange", i, err)
		}
	}
}

func TestPlan_AllDependenciesSelected(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    bool
	}{
		{
			name:    "target only",
			entries: []Entry{entry("A", ActionInstall, true)},
			want:    true,
		},
		{
			name: "all included",
			entries: []Entry{
				entry("C", ActionInstall, true),
				entry("B", ActionUpgrade, true),
				entry("A", ActionInstall, true),
			},
			want: true,
		},
		{
			name: "deselected reinstall counts as satisfied",
			entries: []Entry{
				entry("C", ActionReinstall, false),
				entry("B", ActionInstall, true),
				entry("A", ActionInstall, true),
			},
			want: true,
		},
		{
			name: "deselected install",
			entries: []Entry{
				entry("C", ActionInstall, false),
				entry("A", ActionInstall, true),
			},
			want: false,
		},
		{
			name: "deselected upgrade",
			entries: []Entry{
				entry("C", ActionUpgrade, false),
				entry("A", ActionInstall, true),
			},
			want: false,
		},
		{
			name: "deselected removal",
			entries: []Entry{
				entry("C", ActionRemove, false),
				entry("A", ActionRemove, true),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &Plan{Action: tt.entries[len(tt.entries)-1].Action, Entries: tt.entries}
			if got := plan.AllDependenciesSelected(); got != tt.want {
				t.Errorf("AllDependenciesSelected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlan_SelectAllAndIncluded(t *testing.T) {
	plan := &Plan{
		Action: ActionRemove,
		Entries: []Entry{
			entry("C", ActionRemove, false),
			entry("B", ActionRemove, true),
			entry("D", ActionRemove, false),
			entry("A", ActionRemove, true),
		},
	}

	if got := len(plan.Included()); got != 2 {
		t.Errorf("Included() returned %d entries, want 2", got)
	}

	if changed := plan.SelectAll(); changed != 2 {
		t.Errorf("SelectAll() = %d, want 2", changed)
	}

	included := plan.Included()
	if len(included) != 4 {
		t.Fatalf("Included() returned %d entries, want 4", len(included))
	}
	for i, want := range []string{"C", "B", "D", "A"} {
		if included[i].Name() != want {
			t.Errorf("Included()[%d] = %s, want %s", i, included[i].Name(), want)
		}
	}

	if changed := plan.SelectAll(); changed != 0 {
		t.Errorf("second SelectAll() = %d, want 0", changed)
	}
}

func TestPlan_Title(t *testing.T) {
	tests := []struct {
		name    string
		action  Action
		entries []Entry
		want    string
	}{
		{
			name:    "no deps",
			action:  ActionInstall,
			entries: []Entry{entry("A", ActionInstall, true)},
			want:    "A (0 deps)",
		},
		{
			name:    "one dep",
			action:  ActionUpgrade,
			entries: []Entry{entry("B", ActionInstall, true), entry("A", ActionUpgrade, true)},
			want:    "A (1 dep)",
		},
		{
			name:   "several deps",
			action: ActionInstall,
			entries: []Entry{
				entry("C", ActionInstall, true),
				entry("B", ActionInstall, true),
				entry("A", ActionInstall, true),
			},
			want: "A (2 deps)",
		},
		{
			name:    "one installed dep",
			action:  ActionRemove,
			entries: []Entry{entry("B", ActionRemove, false), entry("A", ActionRemove, true)},
			want:    "A (1 installed dep)",
		},
		{
			name:    "no installed deps",
			action:  ActionRemove,
			entries: []Entry{entry("A", ActionRemove, true)},
			want:    "A (0 installed deps)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := &Plan{Action: tt.action, Entries: tt.entries}
			if got := plan.Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlan_AddConflict(t *testing.T) {
	plan := &Plan{Action: ActionRemove, Entries: []Entry{entry("A", ActionRemove, true)}}
	if plan.HasConflicts() {
		t.Error("new plan should have no conflicts")
	}

	plan.AddConflict(Conflict{Package: "A", Reason: "still required by B", RequiredBy: []string{"B"}})
	if !plan.HasConflicts() {
		t.Error("expected HasConflicts() after AddConflict")
	}
}
