// Package orchestrator drives the fixed, single-threaded pipeline of
// spec §5/§6: load -> extract components -> extract modules -> extract
// routes -> analyze events -> discover services -> assemble graph ->
// validate -> serialize. Every step runs to completion before the next
// begins; cancellation is checked only between steps (spec §5,
// "cooperative cancellation").
package orchestrator

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/softscanner-sw/spa-multigraph/internal/astaccess"
	"github.com/softscanner-sw/spa-multigraph/internal/components"
	"github.com/softscanner-sw/spa-multigraph/internal/config"
	"github.com/softscanner-sw/spa-multigraph/internal/events"
	"github.com/softscanner-sw/spa-multigraph/internal/graphbuild"
	"github.com/softscanner-sw/spa-multigraph/internal/guards"
	"github.com/softscanner-sw/spa-multigraph/internal/model"
	"github.com/softscanner-sw/spa-multigraph/internal/modules"
	"github.com/softscanner-sw/spa-multigraph/internal/progress"
	"github.com/softscanner-sw/spa-multigraph/internal/registry"
	"github.com/softscanner-sw/spa-multigraph/internal/routes"
	"github.com/softscanner-sw/spa-multigraph/internal/serialize"
	"github.com/softscanner-sw/spa-multigraph/internal/services"
	"github.com/softscanner-sw/spa-multigraph/internal/validate"
)

// Run executes the full pipeline against projectRoot and writes its
// output to outputDir (spec §6). tsConfigPath is accepted for CLI
// surface parity with the original tool but is not itself consulted:
// this pipeline's AST oracle (astaccess) parses every .ts/.tsx file
// directly rather than resolving tsconfig path-mapping, since the spec's
// Non-goals exclude type-checking and module-resolution fidelity beyond
// relative-specifier resolution.
func Run(ctx context.Context, projectRoot, tsConfigPath, outputDir string, cfg config.AnalyzerConfig) (model.Bundle, error) {
	_ = tsConfigPath
	reporter := progress.NewReporter()
	tracer := otel.Tracer("spatrace/orchestrator")

	ctx, rootSpan := tracer.Start(ctx, "pipeline.run", trace.WithAttributes(attribute.String("project_root", projectRoot)))
	defer rootSpan.End()

	reporter.Start(progress.PhaseLoadProject)
	ctx, span := tracer.Start(ctx, "project.load")
	project, err := astaccess.LoadProject(ctx, projectRoot)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return model.Bundle{}, fmt.Errorf("%w: loading project: %w", ErrConfiguration, err)
	}
	span.SetAttributes(attribute.Int("file_count", len(project.Files)))
	span.SetStatus(codes.Ok, "")
	span.End()
	reporter.Done(progress.PhaseLoadProject, len(project.Files))
	if ctx.Err() != nil {
		return model.Bundle{}, ctx.Err()
	}

	reporter.Start(progress.PhaseExtractComponents)
	_, span = tracer.Start(ctx, "components.extract")
	compResults := components.Extract(project, components.ExtractOptions{NestedSelectorPrefix: cfg.NestedSelectorPrefix})
	span.SetAttributes(attribute.Int("component_count", len(compResults)))
	span.SetStatus(codes.Ok, "")
	span.End()
	reporter.Done(progress.PhaseExtractComponents, len(compResults))
	if ctx.Err() != nil {
		return model.Bundle{}, ctx.Err()
	}

	componentReg := registry.New[string]()
	componentByID := map[string]*model.Component{}
	componentFile := map[string]string{}
	var allWidgets []*model.Widget
	for _, r := range compResults {
		componentReg.Put(r.Component.Name, r.Component.ID)
		componentByID[r.Component.ID] = r.Component
		componentFile[r.Component.ID] = r.Component.File
		allWidgets = append(allWidgets, r.Widgets...)
	}

	reporter.Start(progress.PhaseExtractModules)
	_, span = tracer.Start(ctx, "modules.extract")
	mods := modules.Extract(project)
	span.SetAttributes(attribute.Int("module_count", len(mods)))
	span.SetStatus(codes.Ok, "")
	span.End()
	reporter.Done(progress.PhaseExtractModules, len(mods))
	if ctx.Err() != nil {
		return model.Bundle{}, ctx.Err()
	}

	reporter.Start(progress.PhaseExtractRoutes)
	_, span = tracer.Start(ctx, "routes.extract")
	resolveComponent := func(sourceFile, className string) string {
		if id, ok := componentReg.Get(className); ok {
			return id
		}
		return "__unresolved__#" + className
	}
	routeExtractor := routes.NewExtractor(project, resolveComponent)
	routeMap, compRoutes := routeExtractor.Extract()
	attachOwnedRoutes(mods, routeMap)
	span.SetAttributes(attribute.Int("route_count", len(routeMap.Routes)))
	span.SetStatus(codes.Ok, "")
	span.End()
	reporter.Done(progress.PhaseExtractRoutes, len(routeMap.Routes))
	if ctx.Err() != nil {
		return model.Bundle{}, ctx.Err()
	}

	reporter.Start(progress.PhaseAnalyzeEvents)
	_, span = tracer.Start(ctx, "events.analyze")
	widgetEvents := events.Analyze(project, allWidgets, componentFile)
	span.SetAttributes(attribute.Int("event_count", len(widgetEvents)))
	span.SetStatus(codes.Ok, "")
	span.End()
	reporter.Done(progress.PhaseAnalyzeEvents, len(widgetEvents))
	if ctx.Err() != nil {
		return model.Bundle{}, ctx.Err()
	}

	reporter.Start(progress.PhaseDiscoverServices)
	_, span = tracer.Start(ctx, "services.discover")
	serviceList := services.Discover(project)
	span.SetAttributes(attribute.Int("service_count", len(serviceList)))
	span.SetStatus(codes.Ok, "")
	span.End()
	reporter.Done(progress.PhaseDiscoverServices, len(serviceList))
	if ctx.Err() != nil {
		return model.Bundle{}, ctx.Err()
	}

	reporter.Start(progress.PhaseAssembleGraph)
	_, span = tracer.Start(ctx, "graph.assemble")
	guardResolver := func(guardName string) model.ConstraintSurface {
		return guards.Summarize(project, guardName).ToConstraintSurface(guardName)
	}
	builder := graphbuild.NewBuilder(mods, routeMap, compRoutes, compResults, widgetEvents, serviceList,
		graphbuild.WithGuardResolver(guardResolver))
	graph := builder.Build()
	span.SetAttributes(attribute.Int("node_count", len(graph.Nodes)), attribute.Int("edge_count", len(graph.Edges)))
	span.SetStatus(codes.Ok, "")
	span.End()
	reporter.Done(progress.PhaseAssembleGraph, len(graph.Nodes)+len(graph.Edges))
	if ctx.Err() != nil {
		return model.Bundle{}, ctx.Err()
	}

	reporter.Start(progress.PhaseValidate)
	_, span = tracer.Start(ctx, "graph.validate")
	if err := validate.Validate(graph); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return model.Bundle{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	span.SetStatus(codes.Ok, "")
	span.End()
	reporter.Done(progress.PhaseValidate, 0)

	bundle := model.Bundle{Multigraph: graph, Stats: model.ComputeStats(graph)}

	reporter.Start(progress.PhaseSerialize)
	_, span = tracer.Start(ctx, "bundle.serialize")
	if err := serialize.WriteBundle(outputDir, bundle); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return model.Bundle{}, fmt.Errorf("%w: writing bundle: %w", ErrIO, err)
	}
	if cfg.Debug {
		compIDs := make([]string, 0, len(componentByID))
		for id := range componentByID {
			compIDs = append(compIDs, id)
		}
		if err := serialize.WriteDebugSplit(outputDir, mods, routeMap, compIDs, componentByID, widgetEvents, graph, cfg); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			return model.Bundle{}, fmt.Errorf("%w: writing debug split: %w", ErrIO, err)
		}
	}
	span.SetStatus(codes.Ok, "")
	span.End()
	reporter.Done(progress.PhaseSerialize, 1)

	rootSpan.SetStatus(codes.Ok, "")
	return bundle, nil
}

// attachOwnedRoutes back-fills each Module's OwnedRoutes with the ids of
// top-level routes declared in that module's source file, closing the
// loop the route extractor leaves open since it identifies a route
// array's owner only by file path (spec §4.3/§4.4 boundary).
func attachOwnedRoutes(mods []*model.Module, rm *model.RouteMap) {
	byFile := map[string][]string{}
	for _, r := range rm.Routes {
		if r.IsTopLevel {
			byFile[r.ModuleFile] = append(byFile[r.ModuleFile], r.ID)
		}
	}
	for _, m := range mods {
		m.OwnedRoutes = byFile[m.File]
	}
}
