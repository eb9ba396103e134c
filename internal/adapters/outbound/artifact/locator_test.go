package artifact_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/camelgen/camelgen/internal/adapters/outbound/artifact"
	"github.com/camelgen/camelgen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("PK"), 0644))
}

func TestLocator_FindsFatJarInTestdata(t *testing.T) {
	jar, err := artifact.New().Find("../../../../testdata/wsdl2rest/target")
	require.NoError(t, err)
	assert.True(t, strings.Contains(jar, "wsdl2rest-impl-fatjar-"))
	assert.True(t, strings.HasSuffix(jar, ".jar"))
	assert.False(t, strings.HasSuffix(jar, ".original"))
}

func TestLocator_IgnoresDecoy(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "wsdl2rest-impl-fatjar-0.8.0.jar.original"))
	touch(t, filepath.Join(dir, "wsdl2rest-impl-fatjar-0.8.0.jar"))

	jar, err := artifact.New().Find(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "wsdl2rest-impl-fatjar-0.8.0.jar"), jar)
}

func TestLocator_OnlyDecoyIsNotFound(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "wsdl2rest-impl-fatjar-0.8.0.jar.original"))

	_, err := artifact.New().Find(dir)
	assert.True(t, errors.Is(err, domain.ErrArtifactNotFound))
}

func TestLocator_EmptyDirectory(t *testing.T) {
	_, err := artifact.New().Find(t.TempDir())
	assert.True(t, errors.Is(err, domain.ErrArtifactNotFound))
}

func TestLocator_MissingDirectory(t *testing.T) {
	_, err := artifact.New().Find(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.Is(err, domain.ErrArtifactNotFound))
}

func TestLocator_SearchesRecursively(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "impl", "target", "wsdl2rest-impl-fatjar-0.9.1.jar"))
	touch(t, filepath.Join(dir, "old", "target", "wsdl2rest-impl-fatjar-0.8.0.jar"))
	touch(t, filepath.Join(dir, "impl", "target", "wsdl2rest-impl-0.9.1.jar"))

	jar, err := artifact.New().Find(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "impl", "target", "wsdl2rest-impl-fatjar-0.9.1.jar"), jar)
}

func TestLocator_SearchesSrcDirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "src", "tools", "wsdl2rest-impl-fatjar-0.8.0.jar"))

	jar, err := artifact.New().Find(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "src", "tools", "wsdl2rest-impl-fatjar-0.8.0.jar"), jar)
}

func TestLocator_SkipsVCSAndNodeModules(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, ".git", "wsdl2rest-impl-fatjar-0.9.0.jar"))
	touch(t, filepath.Join(dir, "node_modules", "wsdl2rest-impl-fatjar-0.9.0.jar"))
	touch(t, filepath.Join(dir, "target", "wsdl2rest-impl-fatjar-0.8.0.jar"))

	jar, err := artifact.New().Find(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "target", "wsdl2rest-impl-fatjar-0.8.0.jar"), jar)
}

func TestLocator_SameVersionTwiceIsAmbiguous(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a", "wsdl2rest-impl-fatjar-0.8.0.jar"))
	touch(t, filepath.Join(dir, "b", "wsdl2rest-impl-fatjar-0.8.0.jar"))

	_, err := artifact.New().Find(dir)
	assert.True(t, errors.Is(err, domain.ErrAmbiguousArtifact))
}

func TestDefaultSearchRoot(t *testing.T) {
	assert.Equal(t, "/opt/w2r", artifact.DefaultSearchRoot("/opt/w2r"))

	t.Setenv(artifact.EnvSearchDir, "/env/w2r")
	assert.Equal(t, "/env/w2r", artifact.DefaultSearchRoot(""))

	t.Setenv(artifact.EnvSearchDir, "")
	assert.True(t, strings.HasSuffix(artifact.DefaultSearchRoot(""), filepath.Join("wsdl2rest", "target")))
}
