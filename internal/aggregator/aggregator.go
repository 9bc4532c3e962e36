// Package aggregator implements the subdomain aggregation pipeline: list the
// team's projects on the deployment platform, fan out one domain lookup per
// project, keep the subdomains of the parent domain and return them sorted.
package aggregator

import (
	"builtat/internal/config"
	"builtat/pkg/domain"
	"builtat/pkg/logger"
	"builtat/pkg/platform"
	"builtat/pkg/serrors"
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const instrumentationName = "builtat/internal/aggregator"

// Options configure which team is queried and how its domains are filtered
// and ordered. These settings are typically derived from application
// configuration.
type Options struct {
	// TeamID is the platform team whose projects are listed.
	TeamID string
	// Parent is the bare parent domain, e.g. "built.at".
	Parent string
	// Locale selects the collation used to sort records by name.
	Locale language.Tag
	// LookupTimeout bounds each per-project domain lookup. Zero means no
	// timeout beyond the platform client's own.
	LookupTimeout time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) (Options, error) {
	tag, err := language.Parse(cfg.Domain.Locale)
	if err != nil {
		return Options{}, fmt.Errorf("could not parse locale %q: %w", cfg.Domain.Locale, err)
	}

	return Options{
		TeamID:        cfg.Upstream.TeamID,
		Parent:        cfg.Domain.Parent,
		Locale:        tag,
		LookupTimeout: cfg.Upstream.LookupTimeout,
	}, nil
}

// aggregator is the concrete implementation of the Aggregator interface.
type aggregator struct {
	// options holds the team, parent domain and ordering settings.
	options Options
	// platform is the upstream API the projects and domains are read from.
	platform platform.Client

	tracer  trace.Tracer
	lookups metric.Int64Counter
	records metric.Int64Histogram
}

// Subdomains implements Aggregator.
func (a *aggregator) Subdomains(ctx context.Context) (domain.ResultSet, error) {
	ctx, span := a.tracer.Start(ctx, "aggregator.Subdomains")
	defer span.End()

	projects, err := a.platform.ListProjects(ctx, a.options.TeamID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list projects")
		if errors.Is(err, serrors.ErrConfiguration) {
			return nil, err
		}

		return nil, serrors.Wrap(serrors.ErrUpstream, err, "failed to fetch projects")
	}
	span.SetAttributes(attribute.Int("projects", len(projects)))

	// every task owns one slot, so the fan-out needs no locking.
	perProject := make([][]domain.SubdomainRecord, len(projects))
	var g errgroup.Group
	for i, project := range projects {
		g.Go(func() error {
			perProject[i] = a.projectSubdomains(ctx, project)

			return nil
		})
	}
	_ = g.Wait()

	rs := a.merge(perProject)
	a.records.Record(ctx, int64(len(rs)))

	return rs, nil
}

// projectSubdomains looks up the domains of one project and converts the
// matching ones into records. Any failure, including a panic, is logged and
// yields no records for this project only.
func (a *aggregator) projectSubdomains(ctx context.Context, project domain.Project) (records []domain.SubdomainRecord) {
	ctx, span := a.tracer.Start(ctx, "aggregator.projectSubdomains",
		trace.WithAttributes(attribute.String("project", project.Name)))
	defer span.End()

	ctx = logger.WithFields(ctx, zap.String("project", project.Name))
	fail := func(err error) {
		outcome := lookupOutcome(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		a.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
		logger.Warn(ctx, "could not fetch project domains, skipping project",
			zap.String("outcome", outcome), zap.Error(err))
		records = nil
	}
	defer func() {
		if p := recover(); p != nil {
			fail(serrors.With(serrors.ErrInternal, "panic during lookup: %v", p))
		}
	}()

	if a.options.LookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.options.LookupTimeout)
		defer cancel()
	}

	domains, err := a.platform.ListDomains(ctx, a.options.TeamID, project.Name)
	if err != nil {
		fail(err)

		return nil
	}
	for _, d := range domains {
		if r, ok := ToRecord(d.Name, a.options.Parent); ok {
			records = append(records, r)
		}
	}
	a.lookups.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcomeOK)))

	return records
}

const (
	outcomeOK      = "ok"
	outcomeTimeout = "timeout"
	outcomeFailed  = "failed"
)

// lookupOutcome labels a failed lookup with its error kind, e.g. "not_found"
// or "unavailable". Errors without a kind are "timeout" when a deadline
// expired and "failed" otherwise.
func lookupOutcome(err error) string {
	if k := serrors.KindOf(err); k != nil {
		return strings.ToLower(k.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return outcomeTimeout
	}

	return outcomeFailed
}

// merge flattens the per-project records, drops duplicate URLs and sorts by
// name under the configured collation. URL breaks ties so the order never
// depends on upstream order.
func (a *aggregator) merge(perProject [][]domain.SubdomainRecord) domain.ResultSet {
	seen := make(map[string]struct{})
	rs := domain.ResultSet{}
	for _, records := range perProject {
		for _, r := range records {
			if _, dup := seen[r.URL]; dup {
				continue
			}
			seen[r.URL] = struct{}{}
			rs = append(rs, r)
		}
	}

	// a Collator is not safe for concurrent use; build one per call.
	col := collate.New(a.options.Locale)
	slices.SortFunc(rs, func(x, y domain.SubdomainRecord) int {
		if c := col.CompareString(x.Name, y.Name); c != 0 {
			return c
		}

		return cmp.Compare(x.URL, y.URL)
	})

	return rs
}

// New creates a new Aggregator reading from the provided platform client.
// Instruments are created from mp; a nil mp uses the global provider.
func New(client platform.Client, options Options, mp metric.MeterProvider) Aggregator {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName)

	lookups, err := meter.Int64Counter("aggregator.lookups",
		metric.WithDescription("Per-project domain lookups by outcome."))
	if err != nil {
		lookups = noop.Int64Counter{}
	}
	records, err := meter.Int64Histogram("aggregator.records",
		metric.WithDescription("Records returned per aggregation."))
	if err != nil {
		records = noop.Int64Histogram{}
	}

	return &aggregator{
		options:  options,
		platform: client,
		tracer:   otel.Tracer(instrumentationName),
		lookups:  lookups,
		records:  records,
	}
}
