//go:build unit

package manifest_test

import (
	"sync"
	"testing"

	"github.com/siujs/cli/pkg/manifest"
	"github.com/siujs/cli/pkg/manifest/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestCache_LoadReadsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := mocks.NewMockReader(ctrl)
	reader.EXPECT().Read("@scope/foo", "packages").
		Return(manifest.NewPackage("/repo", "packages", "@scope/foo", map[string]any{"name": "@scope/foo"}), nil).
		Times(1)

	cache := manifest.NewCache(reader)

	first, err := cache.Load("@scope/foo", "packages")
	require.NoError(t, err)
	second, err := cache.Load("foo", "packages")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCache_PatchPersists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := manifest.NewCache(mocks.NewMockReader(ctrl))
	cache.Put(manifest.NewPackage("/repo", "packages", "foo", map[string]any{"name": "foo", "version": "1.0.0"}))

	patched, err := cache.Patch("foo", map[string]any{"description": "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", patched.Meta["description"])

	pkg, ok := cache.Get("foo")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"name": "foo", "version": "1.0.0", "description": "x"}, pkg.Meta)
}

func TestCache_PatchUnknownPackage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := manifest.NewCache(mocks.NewMockReader(ctrl))

	_, err := cache.Patch("missing", map[string]any{"a": 1})
	assert.ErrorIs(t, err, manifest.ErrPackageNotCached)
}

func TestCache_ConcurrentPatches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := manifest.NewCache(mocks.NewMockReader(ctrl))
	cache.Put(manifest.NewPackage("/repo", "packages", "foo", nil))

	var wg sync.WaitGroup
	for _, key := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			_, err := cache.Patch("foo", map[string]any{key: true})
			assert.NoError(t, err)
		}(key)
	}
	wg.Wait()

	pkg, _ := cache.Get("foo")
	assert.Len(t, pkg.Meta, 5)
}
