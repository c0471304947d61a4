package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

// isolate points HOME at a temp dir and clears SHUTTLE_* variables.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"SHUTTLE_CONFIG", "SHUTTLE_API_URL", "SHUTTLE_API_KEY", "SHUTTLE_GIT", "SHUTTLE_FETCH_TIMEOUT"} {
		t.Setenv(key, "")
	}
	return home
}

// execute runs the root command with args and stdin, returning everything
// written to stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}
