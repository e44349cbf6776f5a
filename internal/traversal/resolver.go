package traversal

import (
	"context"

	"github.com/getlawrence/brkset/internal/domain"
	"github.com/getlawrence/brkset/internal/logger"
)

// Resolver locates projects in the host solution.
// Host read errors never escape: they are logged and the affected subtree counts as not found.
type Resolver struct {
	log logger.Logger
}

func NewResolver(log logger.Logger) *Resolver {
	if log == nil {
		log = logger.Discard{}
	}
	return &Resolver{log: log}
}

// FindProject searches depth-first, in host order, for the first project or
// nested sub-project whose name equals name ignoring case.
func (r *Resolver) FindProject(ctx context.Context, root domain.Root, name string) (domain.Project, bool) {
	projects, err := root.Projects(ctx)
	if err != nil {
		r.log.Logf("Error: %v", err)
		return nil, false
	}
	for _, project := range projects {
		if domain.SameName(project.Name(), name) {
			return project, true
		}
		items, err := project.Items(ctx)
		if err != nil {
			r.log.Logf("Error: %s: %v", project.Name(), err)
			continue
		}
		if found, ok := r.findInItems(ctx, items, name); ok {
			return found, true
		}
	}
	return nil, false
}

func (r *Resolver) findInItems(ctx context.Context, items []domain.ProjectItem, name string) (domain.Project, bool) {
	for _, item := range items {
		sub, err := item.SubProject(ctx)
		if err != nil {
			r.log.Logf("Error: %s: %v", item.Name(), err)
			continue
		}
		if sub == nil {
			continue
		}
		if domain.SameName(sub.Name(), name) {
			return sub, true
		}
		subItems, err := sub.Items(ctx)
		if err != nil {
			r.log.Logf("Error: %s: %v", sub.Name(), err)
			continue
		}
		if found, ok := r.findInItems(ctx, subItems, name); ok {
			return found, true
		}
	}
	return nil, false
}

// AllProjects returns the top-level projects in host order. With nested set,
// every sub-project reachable through project items follows its parent.
func (r *Resolver) AllProjects(ctx context.Context, root domain.Root, nested bool) ([]domain.Project, error) {
	projects, err := root.Projects(ctx)
	if err != nil {
		return nil, err
	}
	if !nested {
		return projects, nil
	}
	var out []domain.Project
	for _, project := range projects {
		out = append(out, project)
		out = r.appendSubProjects(ctx, project, out)
	}
	return out, nil
}

func (r *Resolver) appendSubProjects(ctx context.Context, project domain.Project, out []domain.Project) []domain.Project {
	items, err := project.Items(ctx)
	if err != nil {
		r.log.Logf("Error: %s: %v", project.Name(), err)
		return out
	}
	for _, item := range items {
		sub, err := item.SubProject(ctx)
		if err != nil {
			r.log.Logf("Error: %s: %v", item.Name(), err)
			continue
		}
		if sub == nil {
			continue
		}
		out = append(out, sub)
		out = r.appendSubProjects(ctx, sub, out)
	}
	return out
}

// TreeNode is one project of the solution hierarchy
type TreeNode struct {
	Name     string     `json:"name" yaml:"name"`
	Children []TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// ListTree returns the project / sub-project hierarchy of the solution
func (r *Resolver) ListTree(ctx context.Context, root domain.Root) ([]TreeNode, error) {
	projects, err := root.Projects(ctx)
	if err != nil {
		return nil, err
	}
	nodes := make([]TreeNode, 0, len(projects))
	for _, project := range projects {
		nodes = append(nodes, r.treeNode(ctx, project))
	}
	return nodes, nil
}

func (r *Resolver) treeNode(ctx context.Context, project domain.Project) TreeNode {
	node := TreeNode{Name: project.Name()}
	items, err := project.Items(ctx)
	if err != nil {
		r.log.Logf("Error: %s: %v", project.Name(), err)
		return node
	}
	for _, item := range items {
		sub, err := item.SubProject(ctx)
		if err != nil {
			r.log.Logf("Error: %s: %v", item.Name(), err)
			continue
		}
		if sub != nil {
			node.Children = append(node.Children, r.treeNode(ctx, sub))
		}
	}
	return node
}
