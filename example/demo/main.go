// Demo wires the full stack against a local Postgres (and optionally Kafka):
// it executes a small organizational lifecycle, retries on concurrency
// conflicts, and rebuilds the read models from the log.
//
// Configuration comes from the environment, see the config package for the
// ORGUNIT_* variables and their defaults.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"

	"github.com/orgstack/orgunit-engine-go/config"
	"github.com/orgstack/orgunit-engine-go/egress"
	"github.com/orgstack/orgunit-engine-go/eventlog/oteladapters"
	"github.com/orgstack/orgunit-engine-go/eventlog/postgresengine"
	"github.com/orgstack/orgunit-engine-go/eventlog/promadapters"
	"github.com/orgstack/orgunit-engine-go/orgunit/core"
	"github.com/orgstack/orgunit-engine-go/orgunit/projection"
	"github.com/orgstack/orgunit-engine-go/orgunit/shell"
)

// slogLogger adapts *slog.Logger to the event log's Logger interface.
type slogLogger struct {
	inner *slog.Logger
}

func (l slogLogger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l slogLogger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l slogLogger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l slogLogger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "demo failed:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slogLogger{inner: slog.New(handler)}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pool, err := cfg.PGXPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	registry := prometheus.NewRegistry()
	metrics := promadapters.NewMetricsCollector(registry)
	tracing := oteladapters.NewTracingCollector(otel.Tracer("orgunit-demo"))

	log, err := postgresengine.NewEventLogFromPGXPool(pool,
		postgresengine.WithTableName(cfg.EventsTableName),
		postgresengine.WithLogger(logger),
		postgresengine.WithMetrics(metrics),
		postgresengine.WithTracing(tracing))
	if err != nil {
		return err
	}

	repositoryOptions := []shell.RepositoryOption{
		shell.WithContextualLogger(oteladapters.NewSlogBridgeLoggerWithHandler(handler)),
		shell.WithMetrics(metrics),
		shell.WithTracing(tracing),
	}

	if cfg.KafkaEnabled {
		publisher, publisherErr := egress.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic,
			egress.WithLogger(logger))
		if publisherErr != nil {
			return publisherErr
		}
		defer publisher.Close()

		repositoryOptions = append(repositoryOptions, shell.WithPublisher(publisher))
	}

	repository, err := shell.NewRepository(log, repositoryOptions...)
	if err != nil {
		return err
	}

	companyID := uuid.New()
	labsID := uuid.New()
	now := time.Now()

	execute := func(organizationID uuid.UUID, command core.Command) error {
		return shell.RetryWithExponentialBackoff(ctx, func(ctx context.Context) error {
			_, execErr := repository.Execute(ctx, organizationID, command)
			return execErr
		})
	}

	manager := core.Role{Title: "Engineering Manager", Level: core.LevelManager, Permissions: []string{"approve_leave"}}
	engineer := core.Role{Title: "Engineer", Level: core.LevelMid}

	steps := []struct {
		organizationID uuid.UUID
		command        core.Command
	}{
		{companyID, core.BuildCreateOrganization(companyID, "Acme Robotics", core.TypeCompany, uuid.Nil, now)},
		{companyID, core.BuildChangeOrganizationStatus(companyID, core.StatusActive, "launch", now)},
		{companyID, core.BuildAddMember(companyID, "person-m1", manager, "", now)},
		{companyID, core.BuildAddMember(companyID, "person-e1", engineer, "person-m1", now)},
		{companyID, core.BuildAddLocation(companyID, uuid.New(), "HQ", "1 Main St", now)},
		{companyID, core.BuildAddChildOrganization(companyID, labsID, "Acme Labs", core.TypeDivision, core.StatusCreating, now)},
		{labsID, core.BuildCreateOrganization(labsID, "Acme Labs", core.TypeDivision, companyID, now)},
		{labsID, core.BuildChangeOrganizationStatus(labsID, core.StatusActive, "", now)},
		{companyID, core.BuildRemoveMemberWithReassignment(companyID, "person-m1", "", now)},
	}

	for _, step := range steps {
		if err := execute(step.organizationID, step.command); err != nil {
			return fmt.Errorf("%s: %w", step.command.CommandType(), err)
		}
	}

	// Dissolving the company is blocked while Acme Labs is still active.
	if err := execute(companyID, core.BuildDissolveOrganization(companyID, "wind down", now)); err != nil {
		logger.Info("dissolution blocked as expected", "error", err.Error())
	}

	hierarchy := projection.NewHierarchyView()
	statistics := projection.NewStatisticsView()
	builder := projection.NewBuilder(hierarchy, statistics).WithLogger(logger)

	if err := builder.Rebuild(ctx, log); err != nil {
		return err
	}

	if tree, ok := hierarchy.Tree(companyID.String()); ok {
		printTree(tree, 0)
	}

	if stats, ok := statistics.Snapshot(companyID.String()); ok {
		logger.Info("company statistics",
			"members", stats.MemberCount,
			"size_category", string(stats.SizeCategory),
			"locations", stats.LocationCount,
			"management_span", stats.ManagementSpan)
	}

	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, family := range families {
		logger.Info("collected metric", "name", family.GetName(), "series", len(family.GetMetric()))
	}

	return nil
}

func printTree(node projection.HierarchyNode, depth int) {
	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	fmt.Printf("%s%s (%s, %s)\n", indent, node.Name, node.Type, node.Status)

	for _, child := range node.Children {
		printTree(child, depth+1)
	}
}
