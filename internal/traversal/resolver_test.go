package traversal

import (
	"context"
	"errors"
	"testing"

	"github.com/getlawrence/brkset/internal/domain"
	dt "github.com/getlawrence/brkset/internal/domain/domaintest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(projects []domain.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Name())
	}
	return out
}

func TestFindProject_CaseInsensitiveExactMatch(t *testing.T) {
	root := dt.NewRoot(dt.Proj("Alpha"), dt.Proj("beta"))
	r := NewResolver(nil)

	cases := []struct {
		query string
		want  string
		found bool
	}{
		{query: "BETA", want: "beta", found: true},
		{query: "alpha", want: "Alpha", found: true},
		{query: "gamma", found: false},
		{query: "bet", found: false},
		{query: "", found: false},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			p, found := r.FindProject(context.Background(), root, tc.query)
			require.Equal(t, tc.found, found)
			if tc.found {
				assert.Equal(t, tc.want, p.Name())
			} else {
				assert.Nil(t, p)
			}
		})
	}
}

func TestFindProject_NestedSubProject(t *testing.T) {
	inner := dt.Proj("Inner", dt.File("Inner.cs"))
	deepest := dt.Proj("Deepest")
	folder := dt.Proj("Services",
		dt.Folder("docs"),
		dt.SubProjectItem(inner),
		dt.SubProjectItem(dt.Proj("Tools", dt.SubProjectItem(deepest))),
	)
	root := dt.NewRoot(dt.Proj("App"), folder)
	r := NewResolver(nil)

	p, found := r.FindProject(context.Background(), root, "Inner")
	require.True(t, found)
	assert.Same(t, inner, p)

	p, found = r.FindProject(context.Background(), root, "deepest")
	require.True(t, found)
	assert.Same(t, deepest, p)
}

func TestFindProject_FirstMatchWins(t *testing.T) {
	first := dt.Proj("Shared")
	second := dt.Proj("shared")
	root := dt.NewRoot(dt.Proj("A", dt.SubProjectItem(first)), second)

	p, found := NewResolver(nil).FindProject(context.Background(), root, "SHARED")
	require.True(t, found)
	assert.Same(t, first, p)
}

func TestFindProject_ErrorsDegradeToNotFound(t *testing.T) {
	log := &dt.Logger{}
	r := NewResolver(log)

	failing := dt.NewRoot()
	failing.Err = errors.New("solution unavailable")
	_, found := r.FindProject(context.Background(), failing, "Any")
	assert.False(t, found)

	broken := dt.Proj("Broken")
	broken.ItemsErr = errors.New("items unavailable")
	badItem := dt.Folder("bad")
	badItem.SubErr = errors.New("sub-project unavailable")
	target := dt.Proj("Target")
	root := dt.NewRoot(broken, dt.Proj("Folder", badItem, dt.SubProjectItem(target)))

	p, found := r.FindProject(context.Background(), root, "target")
	require.True(t, found)
	assert.Same(t, target, p)
	assert.Len(t, log.Lines, 3)
}

func TestAllProjects(t *testing.T) {
	inner := dt.Proj("Inner", dt.SubProjectItem(dt.Proj("Innermost")))
	root := dt.NewRoot(dt.Proj("A"), dt.Proj("Folder", dt.SubProjectItem(inner)), dt.Proj("B"))
	r := NewResolver(nil)

	top, err := r.AllProjects(context.Background(), root, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "Folder", "B"}, names(top))

	all, err := r.AllProjects(context.Background(), root, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "Folder", "Inner", "Innermost", "B"}, names(all))
}

func TestListTree(t *testing.T) {
	root := dt.NewRoot(
		dt.Proj("App", dt.File("Program.cs")),
		dt.Proj("src", dt.SubProjectItem(dt.Proj("Core")), dt.SubProjectItem(dt.Proj("Web"))),
	)
	tree, err := NewResolver(nil).ListTree(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []TreeNode{
		{Name: "App"},
		{Name: "src", Children: []TreeNode{{Name: "Core"}, {Name: "Web"}}},
	}, tree)
}
