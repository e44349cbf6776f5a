// Package workspace exposes a source tree on disk as a host solution: project
// directories become projects, directories that only group projects become
// solution folders, and C#/Java files carry a parsed code model.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/getlawrence/brkset/internal/codemodel"
	"github.com/getlawrence/brkset/internal/domain"
)

// Options controls which directories take part in the solution
type Options struct {
	// Names of files and directories that are never treated as items
	ExcludePaths []string
	// Maximum depth searched below a directory for projects when deciding
	// whether it is a solution folder
	MaxDepth int
	// File name patterns that mark a directory as a project
	ProjectMarkers []string
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		ExcludePaths: []string{
			".git", ".vs", ".idea", "bin", "obj", "node_modules", "packages", "target", "build", "out",
		},
		MaxDepth:       10,
		ProjectMarkers: []string{"*.csproj", "*.vbproj", "*.fsproj", "pom.xml", "build.gradle", "build.gradle.kts"},
	}
}

// Solution is a workspace directory acting as the host root
type Solution struct {
	root     string
	opts     Options
	parser   *codemodel.Parser
	debugger domain.Debugger
	exclude  map[string]struct{}

	// file system reads, replaced in tests to simulate contention
	readDirFunc func(string) ([]fs.DirEntry, error)
	statFunc    func(string) (fs.FileInfo, error)
}

// Open checks that root is a directory and returns the solution rooted there
func Open(root string, debugger domain.Debugger, opts Options) (*Solution, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve workspace path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to open workspace: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("workspace %s is not a directory", abs)
	}
	if len(opts.ProjectMarkers) == 0 {
		opts.ProjectMarkers = DefaultOptions().ProjectMarkers
	}
	s := &Solution{
		root:     abs,
		opts:     opts,
		parser:   codemodel.NewParser(),
		debugger: debugger,
		exclude:  make(map[string]struct{}, len(opts.ExcludePaths)),

		readDirFunc: os.ReadDir,
		statFunc:    os.Stat,
	}
	for _, p := range opts.ExcludePaths {
		s.exclude[p] = struct{}{}
	}
	return s, nil
}

// Dir returns the absolute workspace directory
func (s *Solution) Dir() string { return s.root }

func (s *Solution) Debugger() domain.Debugger { return s.debugger }

// Projects returns the workspace root itself when it is a project, otherwise
// its project and solution-folder subdirectories in directory order.
func (s *Solution) Projects(ctx context.Context) ([]domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name, ok, err := s.projectName(s.root); err != nil {
		return nil, err
	} else if ok {
		return []domain.Project{&projectDir{s: s, dir: s.root, name: name}}, nil
	}
	return s.groupedProjects(s.root)
}

// groupedProjects lists the projects and solution folders directly below dir
func (s *Solution) groupedProjects(dir string) ([]domain.Project, error) {
	entries, err := s.readDir(dir)
	if err != nil {
		return nil, err
	}
	projects := []domain.Project{}
	for _, e := range entries {
		if !e.IsDir() || s.excluded(e.Name()) {
			continue
		}
		child := filepath.Join(dir, e.Name())
		if p := s.projectAt(child); p != nil {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

// projectAt returns the project or solution folder rooted at dir, nil for
// neither. A directory that cannot be read is kept as a solution folder so the
// read error surfaces when its items are listed.
func (s *Solution) projectAt(dir string) domain.Project {
	name, ok, err := s.projectName(dir)
	if err != nil {
		return &solutionFolder{s: s, dir: dir}
	}
	if ok {
		return &projectDir{s: s, dir: dir, name: name}
	}
	if found, err := s.containsProject(dir, s.opts.MaxDepth); found || err != nil {
		return &solutionFolder{s: s, dir: dir}
	}
	return nil
}

// projectName reports whether dir holds a project marker and the project's name
func (s *Solution) projectName(dir string) (string, bool, error) {
	entries, err := s.readDir(dir)
	if err != nil {
		return "", false, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, pattern := range s.opts.ProjectMarkers {
			if ok, _ := filepath.Match(pattern, e.Name()); !ok {
				continue
			}
			if strings.HasSuffix(pattern, "proj") {
				return strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())), true, nil
			}
			return filepath.Base(dir), true, nil
		}
	}
	return "", false, nil
}

// containsProject searches below dir for a project marker. The first read
// error stops the search.
func (s *Solution) containsProject(dir string, depth int) (bool, error) {
	if depth <= 0 {
		return false, nil
	}
	entries, err := s.readDir(dir)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if !e.IsDir() || s.excluded(e.Name()) {
			continue
		}
		child := filepath.Join(dir, e.Name())
		_, ok, err := s.projectName(child)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		if found, err := s.containsProject(child, depth-1); found || err != nil {
			return found, err
		}
	}
	return false, nil
}

func (s *Solution) excluded(name string) bool {
	_, ok := s.exclude[name]
	return ok
}

func (s *Solution) readDir(dir string) ([]fs.DirEntry, error) {
	entries, err := s.readDirFunc(dir)
	if err != nil {
		return nil, wrapBusy(err)
	}
	return entries, nil
}

func (s *Solution) stat(path string) (fs.FileInfo, error) {
	info, err := s.statFunc(path)
	if err != nil {
		return nil, wrapBusy(err)
	}
	return info, nil
}

// wrapBusy marks transient file system contention as a busy host
func wrapBusy(err error) error {
	if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EBUSY) {
		return fmt.Errorf("%w: %v", domain.ErrHostBusy, err)
	}
	return err
}
