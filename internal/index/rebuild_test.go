package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginPageSource = `class LoginPage {
  constructor() {
    this.url = '/login';
  }

  async tapLogin() {
    await $('~login-button').click();
  }

  verifyWelcomeIsDisplayed() {
    return $('~welcome').isDisplayed();
  }
}
`

const loginStepsSource = `Given('^the user is logged in$', async () => {
  await LoginPage.login();
});

When("^the user taps \"Login\"$", async () => {
  await LoginPage.tapLogin();
});
`

func writeAutomation(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRebuild(t *testing.T) {
	root := t.TempDir()
	writeAutomation(t, root, "pages/login.page.js", loginPageSource)
	writeAutomation(t, root, "steps/login.steps.js", loginStepsSource)
	writeAutomation(t, root, "helpers/util.js", "function notIndexed() {}")
	writeAutomation(t, root, "node_modules/dep.page.js", "async ignored() {}")

	s := newTestStore(t)
	ctx := context.Background()

	count, err := s.Rebuild(ctx, root)
	require.NoError(t, err)
	// 1 page file + 2 methods + 1 steps file + 2 patterns.
	assert.Equal(t, 6, count)

	has, err := s.Has(ctx, KindPageObjectFile, "login.page.js")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = s.Has(ctx, KindPageObjectMethod, "tapLogin()")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = s.Has(ctx, KindPageObjectMethod, "verifyWelcomeIsDisplayed()")
	require.NoError(t, err)
	assert.True(t, has)

	// constructor is not an indexable method.
	has, err = s.Has(ctx, KindPageObjectMethod, "constructor()")
	require.NoError(t, err)
	assert.False(t, has)

	has, err = s.Has(ctx, KindStepPattern, "^the user is logged in$")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = s.Has(ctx, KindPageObjectFile, "dep.page.js")
	require.NoError(t, err)
	assert.False(t, has, "node_modules must be skipped")
}

func TestRebuildReplacesOldContents(t *testing.T) {
	root := t.TempDir()
	writeAutomation(t, root, "login.page.js", loginPageSource)

	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Rebuild(ctx, root)
	require.NoError(t, err)

	// Second rebuild against an emptier tree drops the stale rows.
	emptyRoot := t.TempDir()
	count, err := s.Rebuild(ctx, emptyRoot)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	has, err := s.Has(ctx, KindPageObjectFile, "login.page.js")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestRebuildMissingRoot(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Rebuild(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestScanAutomationFileStepPatterns(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "x.steps.js")
	require.NoError(t, os.WriteFile(path, []byte(loginStepsSource), 0644))

	artifacts, err := scanAutomationFile(path)
	require.NoError(t, err)

	require.Len(t, artifacts, 3)
	assert.Equal(t, KindStepDefinitionFile, artifacts[0].Kind)
	assert.Equal(t, "x.steps.js", artifacts[0].Name)
	assert.Equal(t, "^the user is logged in$", artifacts[1].Name)
}
