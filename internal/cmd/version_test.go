package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()

	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
}

func TestVersionCmd_Execute(t *testing.T) {
	isolate(t)

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "shuttle version")
	assert.Contains(t, out, "Platform:")
}

func TestRootCmd_Flags(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"api-url", "config", "verbose", "timestamps"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), name)
	}

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"init", "config", "version"})
}

func TestRootCmd_APIURLPrecedence(t *testing.T) {
	isolate(t)
	t.Setenv("SHUTTLE_API_URL", "https://env.example.com")

	_, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", GetResolvedConfig().APIURL.Value)

	_, err = execute(t, "", "--api-url", "https://flag.example.com", "version")
	require.NoError(t, err)
	assert.Equal(t, "https://flag.example.com", GetResolvedConfig().APIURL.Value)
}
