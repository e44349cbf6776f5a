package traversal

import (
	"context"

	"github.com/getlawrence/brkset/internal/domain"
	"github.com/getlawrence/brkset/internal/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Engine runs one resolve-and-walk pass against a host session.
type Engine struct {
	root     domain.Root
	log      logger.Logger
	retry    RetryPolicy
	nested   bool
	resolver *Resolver
}

// Option configures an Engine
type Option func(*Engine)

func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(e *Engine) { e.retry = p }
}

// WithNestedProjects makes RunAll also walk sub-projects found below top-level projects
func WithNestedProjects(nested bool) Option {
	return func(e *Engine) { e.nested = nested }
}

func New(root domain.Root, opts ...Option) *Engine {
	e := &Engine{
		root:  root,
		log:   logger.Discard{},
		retry: DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.resolver = NewResolver(e.log)
	return e
}

// Run resolves each name and walks the matching project. Missing names are
// reported and the run moves on to the next name.
func (e *Engine) Run(ctx context.Context, names []string) *Report {
	report := NewReport()
	for _, name := range names {
		project, found := e.resolver.FindProject(ctx, e.root, name)
		if !found {
			e.log.Logf("Project '%s' was not found.", name)
			report.NotFound = append(report.NotFound, name)
			continue
		}
		e.log.Logf("Project found: %s", project.Name())
		e.walkProject(ctx, project, report)
	}
	report.finish()
	return report
}

// RunAll walks every project of the solution
func (e *Engine) RunAll(ctx context.Context) *Report {
	report := NewReport()
	projects, err := e.resolver.AllProjects(ctx, e.root, e.nested)
	if err != nil {
		e.log.Logf("Error: %v", err)
		report.Record(skipped(ScopeSolution, "", err))
	}
	for _, project := range projects {
		e.walkProject(ctx, project, report)
	}
	report.finish()
	return report
}

func (e *Engine) walkProject(ctx context.Context, project domain.Project, report *Report) {
	ctx, span := tracer.Start(ctx, "traversal.project", trace.WithAttributes(attribute.String("project", project.Name())))
	defer span.End()

	report.Projects = append(report.Projects, project.Name())
	items, err := project.Items(ctx)
	if err != nil {
		e.log.Logf("Error: %s: %v", project.Name(), err)
		span.RecordError(err)
		o := skipped(ScopeProject, project.Name(), err)
		report.Record(o)
		recordOutcome(ctx, o)
		return
	}

	w := NewWalker(e.root.Debugger(), report, e.retry, e.log)
	for _, item := range items {
		w.walk(ctx, item, project.Name()+"/"+item.Name())
	}
	span.SetAttributes(attribute.Int("breakpoints", report.Inserted))
}
