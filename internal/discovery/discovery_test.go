package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindManifestInParent(t *testing.T) {
	root := t.TempDir()
	manifest := filepath.Join(root, ManifestName)
	require.NoError(t, os.WriteFile(manifest, []byte("[package]\nname = \"demo\"\n"), 0o644))

	nested := filepath.Join(root, "src", "bin")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := FindManifest(nested)
	require.NoError(t, err)
	assert.Equal(t, manifest, got)
}

func TestFindManifestPrefersClosest(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ManifestName), nil, 0o644))
	member := filepath.Join(root, "crates", "member")
	require.NoError(t, os.MkdirAll(member, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(member, ManifestName), nil, 0o644))

	got, err := FindManifest(member)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(member, ManifestName), got)
}

func TestFindManifestSkipsDirectoryNamedLikeManifest(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ManifestName), nil, 0o644))
	child := filepath.Join(root, "child")
	require.NoError(t, os.MkdirAll(filepath.Join(child, ManifestName), 0o755))

	got, err := FindManifest(child)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ManifestName), got)
}

func TestResolveManifestExplicit(t *testing.T) {
	root := t.TempDir()
	manifest := filepath.Join(root, ManifestName)
	require.NoError(t, os.WriteFile(manifest, nil, 0o644))

	got, err := ResolveManifest(manifest)
	require.NoError(t, err)
	assert.Equal(t, manifest, got)

	got, err = ResolveManifest(root)
	require.NoError(t, err)
	assert.Equal(t, manifest, got)

	_, err = ResolveManifest(filepath.Join(root, "missing.toml"))
	assert.ErrorIs(t, err, ErrNotFound)
}
