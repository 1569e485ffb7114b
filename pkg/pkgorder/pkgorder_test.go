//go:build unit

package pkgorder

import (
	"path/filepath"
	"testing"

	fsmocks "github.com/siujs/cli/pkg/fs/mocks"
	"github.com/siujs/cli/pkg/manifest"
	manifestmocks "github.com/siujs/cli/pkg/manifest/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPriorityOrder_FanIn(t *testing.T) {
	nodes := []Node{
		{Dir: "z", Name: "Z", Dependencies: []string{"X", "Y"}},
		{Dir: "x", Name: "X"},
		{Dir: "y", Name: "Y", Dependencies: []string{"X"}},
	}

	assert.Equal(t, []string{"x", "y", "z"}, PriorityOrder(nodes))
}

func TestPriorityOrder_TiesAlphabetical(t *testing.T) {
	nodes := []Node{
		{Dir: "c", Name: "@s/c", Dependencies: []string{"@s/a", "lodash"}},
		{Dir: "b", Name: "@s/b"},
		{Dir: "a", Name: "@s/a", Dependencies: []string{"@s/a"}},
	}

	assert.Equal(t, []string{"a", "b", "c"}, PriorityOrder(nodes))
}

func TestFilter(t *testing.T) {
	dirs := []string{"a", "b", "c"}

	assert.Equal(t, dirs, Filter(dirs, ""))
	assert.Equal(t, []string{"a", "c"}, Filter(dirs, "c, @scope/a"))
	assert.Empty(t, Filter(dirs, "missing"))
}

func TestResolver_Sort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFS := fsmocks.NewMockFS(ctrl)
	reader := manifestmocks.NewMockReader(ctrl)
	pkgsRoot := filepath.Join("/repo", "packages")

	mockFS.EXPECT().Exists(pkgsRoot).Return(true, nil).AnyTimes()
	mockFS.EXPECT().ListDirs(pkgsRoot).Return([]string{"x", "y", "z"}, nil).AnyTimes()
	mockFS.EXPECT().Exists(gomock.Any()).Return(true, nil).AnyTimes()
	reader.EXPECT().Read("x", "packages").Return(manifest.NewPackage("/repo", "packages", "x", map[string]any{"name": "x"}), nil).AnyTimes()
	reader.EXPECT().Read("y", "packages").Return(manifest.NewPackage("/repo", "packages", "y", map[string]any{
		"name": "y", "dependencies": map[string]any{"z": "*"},
	}), nil).AnyTimes()
	reader.EXPECT().Read("z", "packages").Return(manifest.NewPackage("/repo", "packages", "z", map[string]any{"name": "z"}), nil).AnyTimes()

	resolver := NewResolver(NewResolverParams{FS: mockFS, Reader: reader, Root: "/repo", Workspace: "packages"})

	tests := []struct {
		name   string
		order  Order
		filter string
		want   []string
	}{
		{name: "auto", order: Order{Mode: ModeAuto}, want: []string{"x", "y", "z"}},
		{name: "priority", order: Order{Mode: ModePriority}, want: []string{"z", "x", "y"}},
		{name: "default is priority", order: Order{}, filter: "x,z", want: []string{"z", "x"}},
		{name: "explicit", order: Order{List: []string{"y", "x"}}, want: []string{"y", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dirs, err := resolver.Sort(tt.order, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, dirs)
		})
	}

	_, err := resolver.Sort(Order{Mode: "random"}, "")
	assert.ErrorIs(t, err, ErrUnknownMode)
}
