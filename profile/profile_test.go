package profile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tailwrite/tailwrite"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const storyYAML = `
model: bigscience/bloom
description: long-form story continuation
parameters:
  temperature: 0.9
  max_new_tokens: 400
  top_k: 50
`

func TestParseBytes(t *testing.T) {
	t.Parallel()
	p, err := ParseBytes([]byte(storyYAML))
	require.NoError(t, err)
	assert.Equal(t, "bigscience/bloom", p.Model)
	assert.Equal(t, "long-form story continuation", p.Description)
	assert.Equal(t, 0.9, p.Parameters["temperature"])
	assert.Equal(t, 400, p.Parameters["max_new_tokens"])
}

func TestParseBytes_InvalidYAML(t *testing.T) {
	t.Parallel()
	p, err := ParseBytes([]byte("model: [unclosed"))
	require.ErrorIs(t, err, tailwrite.ErrInvalidProfile)
	assert.Nil(t, p)
}

func TestParseBytes_ReservedParameterName(t *testing.T) {
	t.Parallel()
	p, err := ParseBytes([]byte("parameters:\n  _seed: 7\n"))
	require.ErrorIs(t, err, tailwrite.ErrInvalidProfile)
	assert.Contains(t, err.Error(), "_seed")
	assert.Nil(t, p)
}

func TestParseFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "story.yaml")
	require.NoError(t, os.WriteFile(path, []byte(storyYAML), 0o600))

	p, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bigscience/bloom", p.Model)
}

func TestParseFile_Missing(t *testing.T) {
	t.Parallel()
	p, err := ParseFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Nil(t, p)
}

func TestParseFS(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{
		"profiles/story.yaml": &fstest.MapFile{Data: []byte(storyYAML)},
	}
	p, err := ParseFS(fsys, "profiles/story.yaml")
	require.NoError(t, err)
	assert.Equal(t, "bigscience/bloom", p.Model)
}

func TestOptions_ApplyToSession(t *testing.T) {
	t.Parallel()
	p, err := ParseBytes([]byte(storyYAML))
	require.NoError(t, err)

	stub := tailwrite.TransportFunc(func(_ context.Context, _ string, _ map[string]any) (any, error) {
		return nil, nil
	})
	session, err := tailwrite.New(stub, "A prompt.", p.Options()...)
	require.NoError(t, err)

	built := session.BuildParams()
	assert.Equal(t, 0.9, built["temperature"])
	assert.Equal(t, 400, built["max_new_tokens"])
	assert.Equal(t, 50, built["top_k"])
	assert.Contains(t, built, "seed", "profile leaves the default seed in place")
}

func TestOptions_EmptyParameters(t *testing.T) {
	t.Parallel()
	p, err := ParseBytes([]byte("model: bigscience/bloom\n"))
	require.NoError(t, err)
	assert.Empty(t, p.Options())
}
