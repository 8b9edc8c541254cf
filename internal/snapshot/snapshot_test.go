package snapshot

import "testing"

func TestWithMockLookup(t *testing.T) {
	snap := WithMock(map[string]string{"TERM": "xterm-256color", "EMPTY": ""}, true, false, true)

	tests := []struct {
		name      string
		key       string
		wantValue string
		wantOK    bool
	}{
		{name: "set variable", key: "TERM", wantValue: "xterm-256color", wantOK: true},
		{name: "empty but set", key: "EMPTY", wantValue: "", wantOK: true},
		{name: "missing", key: "MISSING", wantValue: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := snap.Get(tt.key)
			if got != tt.wantValue || ok != tt.wantOK {
				t.Errorf("Get(%q) = (%q, %v), want (%q, %v)", tt.key, got, ok, tt.wantValue, tt.wantOK)
			}
			if snap.Has(tt.key) != tt.wantOK {
				t.Errorf("Has(%q) = %v, want %v", tt.key, snap.Has(tt.key), tt.wantOK)
			}
		})
	}
}

func TestWithMockTTYBits(t *testing.T) {
	snap := WithMock(nil, true, false, true)
	if !snap.IsTTYStdin() || snap.IsTTYStdout() || !snap.IsTTYStderr() {
		t.Errorf("tty bits = (%v, %v, %v), want (true, false, true)",
			snap.IsTTYStdin(), snap.IsTTYStdout(), snap.IsTTYStderr())
	}
}

func TestWithMockCopiesEnv(t *testing.T) {
	env := map[string]string{"KEY": "before"}
	snap := WithMock(env, false, false, false)
	env["KEY"] = "after"

	if got, _ := snap.Get("KEY"); got != "before" {
		t.Errorf("snapshot saw caller mutation: got %q", got)
	}
}

func TestCurrentUsesInjectedTTY(t *testing.T) {
	snap := Current(MockTTY{Stdin: false, Stdout: true, Stderr: false})
	if snap.IsTTYStdin() || !snap.IsTTYStdout() || snap.IsTTYStderr() {
		t.Errorf("tty bits = (%v, %v, %v), want (false, true, false)",
			snap.IsTTYStdin(), snap.IsTTYStdout(), snap.IsTTYStderr())
	}
	if snap.Len() == 0 {
		t.Error("expected the process env to be captured")
	}
}
