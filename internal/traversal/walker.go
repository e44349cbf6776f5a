package traversal

import (
	"context"
	"errors"
	"fmt"

	"github.com/getlawrence/brkset/internal/domain"
	"github.com/getlawrence/brkset/internal/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Walker visits project items and inserts a breakpoint at every function body
// reachable through namespace -> class -> function.
//
// Containment in the host graph must be acyclic; no visited set is kept.
type Walker struct {
	debugger domain.Debugger
	retry    RetryPolicy
	log      logger.Logger
	report   *Report
}

// NewWalker creates a walker that records into report
func NewWalker(debugger domain.Debugger, report *Report, retry RetryPolicy, log logger.Logger) *Walker {
	if log == nil {
		log = logger.Discard{}
	}
	if report == nil {
		report = NewReport()
	}
	return &Walker{
		debugger: debugger,
		retry:    retry,
		log:      log,
		report:   report,
	}
}

// Report returns the report the walker records into
func (w *Walker) Report() *Report { return w.report }

// Walk visits item and all of its descendants
func (w *Walker) Walk(ctx context.Context, item domain.ProjectItem) {
	w.walk(ctx, item, item.Name())
}

func (w *Walker) walk(ctx context.Context, item domain.ProjectItem, path string) {
	if err := ctx.Err(); err != nil {
		w.record(ctx, skipped(ScopeItem, path, err))
		return
	}

	// The code model and the child items are independent; an item may have both.
	elements, err := item.CodeModel(ctx)
	if err != nil {
		w.log.Logf("Error: %s: %v", path, err)
		w.record(ctx, skipped(ScopeItem, path, err))
	}
	for _, el := range elements {
		if el.Kind() == domain.KindNamespace {
			w.record(ctx, w.processNamespace(ctx, el, path+"::"+el.Name()))
		}
	}

	children, err := item.Items(ctx)
	if err != nil {
		w.log.Logf("Error: %s: %v", path, err)
		w.record(ctx, skipped(ScopeItem, path, err))
		return
	}
	for _, child := range children {
		w.walk(ctx, child, path+"/"+child.Name())
	}
}

// processNamespace reads the namespace members, retrying while the host reports busy.
func (w *Walker) processNamespace(ctx context.Context, ns domain.CodeElement, path string) Outcome {
	ctx, span := tracer.Start(ctx, "traversal.namespace", trace.WithAttributes(attribute.String("path", path)))
	defer span.End()

	remaining := w.retry.attempts()
	for remaining > 0 {
		members, err := ns.Members(ctx)
		if err == nil {
			for _, m := range members {
				if m.Kind() == domain.KindClass {
					w.record(ctx, w.processClass(ctx, m, path+"."+m.Name()))
				}
			}
			return ok(ScopeNamespace, path)
		}
		if !errors.Is(err, domain.ErrHostBusy) {
			w.log.Logf("Error: %s: %v", path, err)
			span.RecordError(err)
			return skipped(ScopeNamespace, path, err)
		}

		w.log.Logf("Host is busy. Retrying in %s...", w.retry.Backoff)
		w.report.Retries++
		recordRetry(ctx)
		if err := w.retry.wait(ctx); err != nil {
			return skipped(ScopeNamespace, path, err)
		}
		remaining--
	}

	w.log.Log("Retries exhausted. The host is still busy.")
	return Outcome{
		Scope:  ScopeNamespace,
		Path:   path,
		Status: StatusRetryExhausted,
		Reason: fmt.Sprintf("host busy after %d attempts", w.retry.attempts()),
	}
}

func (w *Walker) processClass(ctx context.Context, class domain.CodeElement, path string) Outcome {
	members, err := class.Members(ctx)
	if err != nil {
		w.log.Logf("Error: %s: %v", path, err)
		return skipped(ScopeClass, path, err)
	}
	for _, m := range members {
		if m.Kind() == domain.KindFunction {
			w.record(ctx, w.addBreakpoint(ctx, m, path+"."+m.Name()))
		}
	}
	return ok(ScopeClass, path)
}

func (w *Walker) addBreakpoint(ctx context.Context, fn domain.CodeElement, path string) Outcome {
	w.report.Functions++
	pos, err := fn.BodyStart(ctx)
	if err != nil {
		w.log.Logf("Error: %s: %v", path, err)
		return skipped(ScopeFunction, path, err)
	}
	bp := domain.NewBreakpoint(pos)
	if err := w.debugger.InsertBreakpoint(ctx, bp); err != nil {
		w.log.Logf("Error: %s: %v", path, err)
		return skipped(ScopeFunction, path, err)
	}
	w.report.Inserted++
	w.report.Breakpoints = append(w.report.Breakpoints, bp)
	return ok(ScopeFunction, path)
}

func (w *Walker) record(ctx context.Context, o Outcome) {
	w.report.Record(o)
	recordOutcome(ctx, o)
}
