package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateProjectName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"simple", "my-project", ""},
		{"underscores", "my_project", ""},
		{"digits after first", "app2", ""},
		{"empty", "", "cannot be empty"},
		{"whitespace only", "   ", "cannot be empty"},
		{"leading digit", "1app", "must start with a lowercase letter"},
		{"leading hyphen", "-app", "must start with a lowercase letter"},
		{"uppercase", "MyProject", "invalid character"},
		{"space", "my project", "invalid character"},
		{"dot", "my.project", "invalid character"},
		{"reserved", "self", "reserved word"},
		{"reserved after crate conversion", "proc-macro", "reserved word"},
		{"too long", "a" + strings.Repeat("b", 64), "longer than"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProjectName(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCrateName(t *testing.T) {
	assert.Equal(t, "my_project", CrateName("my-project"))
	assert.Equal(t, "already_ok", CrateName("already_ok"))
}
