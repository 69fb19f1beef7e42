package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/functree"
	"github.com/aretw0/functree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command once. Flags keep their values between runs,
// so every call passes the flags it depends on.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "functree v"+functree.Version+"\n", out)

	first, err := execute(t, "--seed", "7", "--preset", "general", "--format", "construct")
	require.NoError(t, err)
	second, err := execute(t, "--seed", "7", "--preset", "general", "--format", "construct")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(first, domain.DefaultNamespace+"."))
	assert.True(t, strings.HasSuffix(first, ";\n"))

	out, err = execute(t, "--seed", "7", "--preset", "general", "--format", "infix")
	require.NoError(t, err)
	assert.NotContains(t, out, "FunctionTree")

	_, err = execute(t, "--seed", "7", "--preset", "nope", "--format", "construct")
	assert.ErrorIs(t, err, domain.ErrUnknownPreset)

	out, err = execute(t, "presets", "--preset", "general")
	require.NoError(t, err)
	assert.Contains(t, out, "binaryOnly")

	out, err = execute(t, "corpus", "--preset", "binaryOnly", "--count", "3", "--seed", "1")
	require.NoError(t, err)
	assert.LessOrEqual(t, strings.Count(out, "\n"), 3)
	assert.Contains(t, out, "new FunctionTree.")
}
