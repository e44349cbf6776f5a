package workspace_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/getlawrence/brkset/internal/domain"
	dt "github.com/getlawrence/brkset/internal/domain/domaintest"
	"github.com/getlawrence/brkset/internal/traversal"
	"github.com/getlawrence/brkset/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const programCS = `namespace App
{
    public class Program
    {
        public static void Main()
        {
            System.Console.WriteLine("hi");
        }
    }
}
`

const serviceCS = `namespace Core
{
    public class Service
    {
        public int Get()
        {
            return 1;
        }
    }
}
`

const appJava = `package demo;

public class App {
    public void run() {
        System.out.println("run");
    }
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// sampleWorkspace lays out:
//
//	App/App.csproj, App/Program.cs, App/bin/Generated.cs
//	docs/readme.md
//	java/pom.xml, java/src/App.java
//	src/Core/Core.csproj, src/Core/Service.cs
//	src/tools/Cli/Cli.csproj
func sampleWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "App", "App.csproj"), "<Project />")
	writeFile(t, filepath.Join(root, "App", "Program.cs"), programCS)
	writeFile(t, filepath.Join(root, "App", "bin", "Generated.cs"), serviceCS)
	writeFile(t, filepath.Join(root, "docs", "readme.md"), "# docs")
	writeFile(t, filepath.Join(root, "java", "pom.xml"), "<project/>")
	writeFile(t, filepath.Join(root, "java", "src", "App.java"), appJava)
	writeFile(t, filepath.Join(root, "src", "Core", "Core.csproj"), "<Project />")
	writeFile(t, filepath.Join(root, "src", "Core", "Service.cs"), serviceCS)
	writeFile(t, filepath.Join(root, "src", "tools", "Cli", "Cli.csproj"), "<Project />")
	return root
}

func projectNames(t *testing.T, s *workspace.Solution) []string {
	t.Helper()
	projects, err := s.Projects(context.Background())
	require.NoError(t, err)
	var out []string
	for _, p := range projects {
		out = append(out, p.Name())
	}
	return out
}

func TestOpen_Errors(t *testing.T) {
	_, err := workspace.Open(filepath.Join(t.TempDir(), "missing"), nil, workspace.DefaultOptions())
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.txt")
	writeFile(t, file, "x")
	_, err = workspace.Open(file, nil, workspace.DefaultOptions())
	assert.Error(t, err)
}

func TestProjects_TopLevel(t *testing.T) {
	s, err := workspace.Open(sampleWorkspace(t), nil, workspace.DefaultOptions())
	require.NoError(t, err)

	// docs holds no project and is not part of the solution
	assert.Equal(t, []string{"App", "java", "src"}, projectNames(t, s))
}

func TestProjects_RootIsProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Single.csproj"), "<Project />")
	s, err := workspace.Open(root, nil, workspace.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"Single"}, projectNames(t, s))
}

func TestFindProject_ThroughSolutionFolders(t *testing.T) {
	s, err := workspace.Open(sampleWorkspace(t), nil, workspace.DefaultOptions())
	require.NoError(t, err)
	r := traversal.NewResolver(nil)

	p, found := r.FindProject(context.Background(), s, "core")
	require.True(t, found)
	assert.Equal(t, "Core", p.Name())

	p, found = r.FindProject(context.Background(), s, "CLI")
	require.True(t, found)
	assert.Equal(t, "Cli", p.Name())

	_, found = r.FindProject(context.Background(), s, "docs")
	assert.False(t, found)
}

func TestItems_ExcludesBuildOutput(t *testing.T) {
	root := sampleWorkspace(t)
	s, err := workspace.Open(root, nil, workspace.DefaultOptions())
	require.NoError(t, err)

	projects, err := s.Projects(context.Background())
	require.NoError(t, err)
	items, err := projects[0].Items(context.Background())
	require.NoError(t, err)

	var names []string
	for _, it := range items {
		names = append(names, it.Name())
	}
	assert.Equal(t, []string{"App.csproj", "Program.cs"}, names)

	model, err := items[0].CodeModel(context.Background())
	require.NoError(t, err)
	assert.Empty(t, model)

	model, err = items[1].CodeModel(context.Background())
	require.NoError(t, err)
	require.Len(t, model, 1)
	assert.Equal(t, domain.KindNamespace, model[0].Kind())
}

func TestEngineOverWorkspace(t *testing.T) {
	root := sampleWorkspace(t)
	dbg := dt.NewDebugger()
	s, err := workspace.Open(root, dbg, workspace.DefaultOptions())
	require.NoError(t, err)

	report := traversal.New(s, traversal.WithNestedProjects(true)).RunAll(context.Background())
	assert.False(t, report.Failed())
	assert.Equal(t, []string{"App", "java", "src", "Core", "tools", "Cli"}, report.Projects)

	var got []domain.Position
	for _, bp := range dbg.Breakpoints {
		got = append(got, domain.Position{File: bp.File, Line: bp.Line})
	}
	assert.Equal(t, []domain.Position{
		{File: filepath.Join(root, "App", "Program.cs"), Line: 7},
		{File: filepath.Join(root, "java", "src", "App.java"), Line: 5},
		{File: filepath.Join(root, "src", "Core", "Service.cs"), Line: 7},
	}, got)
}

func TestEngineRun_SingleProject(t *testing.T) {
	root := sampleWorkspace(t)
	dbg := dt.NewDebugger()
	s, err := workspace.Open(root, dbg, workspace.DefaultOptions())
	require.NoError(t, err)

	report := traversal.New(s).Run(context.Background(), []string{"JAVA"})
	assert.Equal(t, []string{"java"}, report.Projects)
	require.Len(t, dbg.Breakpoints, 1)
	assert.Equal(t, 5, dbg.Breakpoints[0].Line)
}
