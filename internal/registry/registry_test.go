package registry

import (
	"reflect"
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		path     []string
		wantType FieldType
		wantOK   bool
	}{
		{name: "agent id", path: []string{"agent", "id"}, wantType: TypeOptionalString, wantOK: true},
		{name: "ci is_pr", path: []string{"ci", "is_pr"}, wantType: TypeBool, wantOK: true},
		{name: "color level", path: []string{"terminal", "color_level"}, wantType: TypeColorLevel, wantOK: true},
		{name: "stream object", path: []string{"terminal", "stdin"}, wantType: TypeStreamInfo, wantOK: true},
		{name: "stream leaf", path: []string{"terminal", "stdin", "tty"}, wantType: TypeBool, wantOK: true},
		{name: "unknown", path: []string{"agent", "branch"}, wantOK: false},
		{name: "unknown context", path: []string{"shell", "id"}, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := Resolve(tt.path)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%v) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if ok && info.Type != tt.wantType {
				t.Errorf("type = %q, want %q", info.Type, tt.wantType)
			}
		})
	}
}

func TestHasField(t *testing.T) {
	if !HasField("terminal.supports_hyperlinks") {
		t.Error("terminal.supports_hyperlinks should be registered")
	}
	if HasField("terminal.width") {
		t.Error("terminal.width should not be registered")
	}
}

func TestContexts(t *testing.T) {
	want := []string{"agent", "ci", "ide", "terminal"}
	if got := Contexts(); !reflect.DeepEqual(got, want) {
		t.Errorf("Contexts = %v, want %v", got, want)
	}
	if !IsContext("ci") || IsContext("shell") {
		t.Error("IsContext misclassifies")
	}
}

func TestFieldsOf(t *testing.T) {
	ci := FieldsOf("ci")
	if len(ci) != 5 {
		t.Fatalf("ci field count = %d, want 5", len(ci))
	}
	for i := 1; i < len(ci); i++ {
		if ci[i-1].Dotted() >= ci[i].Dotted() {
			t.Errorf("fields not sorted: %q before %q", ci[i-1].Dotted(), ci[i].Dotted())
		}
	}
	for _, f := range ci {
		if f.Context != "ci" {
			t.Errorf("field %q claims context %q", f.Dotted(), f.Context)
		}
		if f.Description == "" {
			t.Errorf("field %q has no description", f.Dotted())
		}
	}

	if got := FieldsOf("nope"); got != nil {
		t.Errorf("FieldsOf(nope) = %v, want nil", got)
	}
}
