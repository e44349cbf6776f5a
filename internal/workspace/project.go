package workspace

import (
	"context"
	"os"
	"path/filepath"

	"github.com/getlawrence/brkset/internal/codemodel"
	"github.com/getlawrence/brkset/internal/domain"
)

// projectDir is a directory holding a project marker
type projectDir struct {
	s    *Solution
	dir  string
	name string
}

func (p *projectDir) Name() string { return p.name }

func (p *projectDir) Items(ctx context.Context) ([]domain.ProjectItem, error) {
	return p.s.items(ctx, p.dir)
}

// solutionFolder groups projects without being one
type solutionFolder struct {
	s   *Solution
	dir string
}

func (f *solutionFolder) Name() string { return filepath.Base(f.dir) }

// Items wraps each nested project or solution folder in an item
func (f *solutionFolder) Items(ctx context.Context) ([]domain.ProjectItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	projects, err := f.s.groupedProjects(f.dir)
	if err != nil {
		return nil, err
	}
	items := make([]domain.ProjectItem, 0, len(projects))
	for _, p := range projects {
		items = append(items, &subProjectItem{project: p})
	}
	return items, nil
}

// items lists the files and directories of a project directory
func (s *Solution) items(ctx context.Context, dir string) ([]domain.ProjectItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := s.readDir(dir)
	if err != nil {
		return nil, err
	}
	items := make([]domain.ProjectItem, 0, len(entries))
	for _, e := range entries {
		if s.excluded(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		switch {
		case e.IsDir():
			if name, ok, _ := s.projectName(path); ok {
				items = append(items, &subProjectItem{project: &projectDir{s: s, dir: path, name: name}})
			} else {
				items = append(items, &dirItem{s: s, path: path})
			}
		case e.Type().IsRegular():
			items = append(items, &fileItem{s: s, path: path})
		}
	}
	return items, nil
}

type dirItem struct {
	s    *Solution
	path string
}

func (d *dirItem) Name() string { return filepath.Base(d.path) }

func (d *dirItem) CodeModel(ctx context.Context) ([]domain.CodeElement, error) { return nil, nil }

func (d *dirItem) Items(ctx context.Context) ([]domain.ProjectItem, error) {
	return d.s.items(ctx, d.path)
}

func (d *dirItem) SubProject(ctx context.Context) (domain.Project, error) { return nil, nil }

type fileItem struct {
	s    *Solution
	path string
}

func (f *fileItem) Name() string { return filepath.Base(f.path) }

// CodeModel parses the file when its language has a code model
func (f *fileItem) CodeModel(ctx context.Context) ([]domain.CodeElement, error) {
	lang, ok := codemodel.LanguageForPath(f.path)
	if !ok {
		return nil, nil
	}
	content, err := os.ReadFile(f.path)
	if err != nil {
		return nil, wrapBusy(err)
	}
	elems, err := f.s.parser.ParseLanguage(ctx, content, f.path, lang)
	if err != nil {
		return nil, err
	}
	for i, el := range elems {
		if el.Kind() == domain.KindNamespace {
			elems[i] = &namespace{CodeElement: el, s: f.s, path: f.path}
		}
	}
	return elems, nil
}

func (f *fileItem) Items(ctx context.Context) ([]domain.ProjectItem, error) { return nil, nil }

func (f *fileItem) SubProject(ctx context.Context) (domain.Project, error) { return nil, nil }

// namespace checks its source file with the host before every member read,
// so contention on the file reaches the caller as ErrHostBusy
type namespace struct {
	domain.CodeElement
	s    *Solution
	path string
}

func (n *namespace) Members(ctx context.Context) ([]domain.CodeElement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := n.s.stat(n.path); err != nil {
		return nil, err
	}
	return n.CodeElement.Members(ctx)
}

// subProjectItem is the item through which a nested project is reached
type subProjectItem struct {
	project domain.Project
}

func (i *subProjectItem) Name() string { return i.project.Name() }

func (i *subProjectItem) CodeModel(ctx context.Context) ([]domain.CodeElement, error) {
	return nil, nil
}

func (i *subProjectItem) Items(ctx context.Context) ([]domain.ProjectItem, error) { return nil, nil }

func (i *subProjectItem) SubProject(ctx context.Context) (domain.Project, error) {
	return i.project, nil
}
