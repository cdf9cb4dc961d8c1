package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/myschema/myschema/internal/version"
)

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetErr(&buf)
	RootCmd.SetArgs([]string{"version"})

	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	output := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(output, "myschema v"+version.App()+"@") {
		t.Errorf("expected output to start with 'myschema v%s@', got: %s", version.App(), output)
	}
	if !strings.Contains(output, version.Platform()) {
		t.Errorf("expected output to contain platform %s, got: %s", version.Platform(), output)
	}
}
