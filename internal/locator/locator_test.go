package locator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anders/scenarist/internal/corpus"
	"github.com/anders/scenarist/internal/models"
)

const fixture = `Feature: Login

@NTC-100
Scenario: Successful login
  Given the user is logged in
  When the user taps "Login"
  Then the user should see "Welcome"

@NTC-101
Scenario: Failed login
  Given the user is logged in
  Then the user should see "Invalid credentials"
`

func providerWith(t *testing.T, files map[string]string) *corpus.Provider {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	p, err := corpus.NewProvider(root, corpus.DefaultOptions())
	require.NoError(t, err)
	return p
}

func TestLocate(t *testing.T) {
	p := providerWith(t, map[string]string{"login.feature": fixture})

	sc, err := Locate(p, "ntc-100")
	require.NoError(t, err)
	assert.Equal(t, "@NTC-100", sc.Tag)
	assert.Equal(t, "Login", sc.FeatureName)
	assert.Len(t, sc.Steps, 3)
	assert.Equal(t, filepath.Join(p.Root(), "login.feature"), sc.FilePath)
}

func TestLocateFirstFileWins(t *testing.T) {
	p := providerWith(t, map[string]string{
		"a.feature": "Feature: A\n\n@NTC-1\nScenario: From A\n  Given a step\n",
		"z.feature": "Feature: Z\n\n@NTC-1\nScenario: From Z\n  Given another step\n",
	})

	sc, err := Locate(p, "@NTC-1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(p.Root(), "a.feature"), sc.FilePath)
	assert.Contains(t, sc.BlockContent(), "From A")
}

func TestLocateNotFound(t *testing.T) {
	p := providerWith(t, map[string]string{"login.feature": fixture})

	_, err := Locate(p, "@NTC-999")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestLocateInvalidTag(t *testing.T) {
	p := providerWith(t, map[string]string{"login.feature": fixture})

	_, err := Locate(p, "not-a-tag")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRelatedTags(t *testing.T) {
	p := providerWith(t, map[string]string{"login.feature": fixture})

	sc, err := Locate(p, "@NTC-100")
	require.NoError(t, err)

	related, err := RelatedTags(p, sc)
	require.NoError(t, err)
	assert.Equal(t, []string{"@NTC-101"}, related)
}
