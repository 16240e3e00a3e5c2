package conference

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cfb-realignment/realign-cli/internal/geo"
)

const defaultConcurrency = 8

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithConcurrency caps how many conference-years AnalyzeAll computes at once.
func WithConcurrency(n int) AnalyzerOption {
	return func(a *Analyzer) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// Analyzer computes conference statistics against a reference list of major
// cities used to pick each conference's capital.
type Analyzer struct {
	cities      []geo.City
	concurrency int
}

// NewAnalyzer creates a new Analyzer. cities may be empty, in which case no
// capitals are assigned.
func NewAnalyzer(cities []geo.City, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{cities: cities, concurrency: defaultConcurrency}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze computes the statistics for one conference-year. Conferences with
// fewer than two schools get zero distances and no center or capital.
func (a *Analyzer) Analyze(conf Conference) (*Stats, error) {
	points := conf.Points()
	stats := &Stats{
		Conference:  conf.Name,
		Year:        conf.Year,
		Custom:      conf.Custom,
		SchoolCount: len(points),
		Territory:   geo.ConvexHull(points),
	}
	if len(points) < 2 {
		return stats, nil
	}

	between, err := geo.AveragePairwiseDistance(points, geo.Degrees)
	switch {
	case errors.Is(err, geo.ErrDegenerateInput):
		// Every school shares one location.
		between = 0
	case err != nil:
		return nil, eris.Wrap(err, "conference: average distance between schools")
	}
	stats.AvgDistanceBetweenSchools = between

	center, err := geo.GeographicCenter(points)
	if err != nil {
		return nil, eris.Wrap(err, "conference: geographic center")
	}
	stats.CenterLat, stats.CenterLon = &center.Lat, &center.Lon

	// geo.AverageDistanceFromCenter, inlined so the center is solved once.
	fromCenter, err := geo.AverageDistance(center, points, geo.Degrees)
	if err != nil {
		return nil, eris.Wrap(err, "conference: average distance from center")
	}
	stats.AvgDistanceFromCenter = fromCenter
	stats.Footprint = geo.ClassifyFootprint(fromCenter)

	if len(a.cities) > 0 {
		city, err := geo.FindNearestCity(center, a.cities)
		if err != nil {
			return nil, eris.Wrap(err, "conference: find capital")
		}
		stats.Capital = capitalFromCity(city)
	}

	return stats, nil
}

// AnalyzeAll computes statistics for every conference-year concurrently.
// Results keep the input order. The first failure cancels the remaining work.
func (a *Analyzer) AnalyzeAll(ctx context.Context, confs []Conference) ([]Stats, error) {
	log := zap.L().With(zap.String("component", "conference.analyzer"))
	results := make([]Stats, len(confs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, conf := range confs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return eris.Wrap(err, "conference: analyze cancelled")
			}
			stats, err := a.Analyze(conf)
			if err != nil {
				return eris.Wrapf(err, "conference: analyze %s %d", conf.Name, conf.Year)
			}
			results[i] = *stats
			log.Debug("analyzed conference",
				zap.String("conference", conf.Name),
				zap.Int("year", conf.Year),
				zap.Int("schools", stats.SchoolCount),
				zap.Float64("avg_between", stats.AvgDistanceBetweenSchools),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info("analysis complete", zap.Int("conferences", len(results)))
	return results, nil
}

// SchoolDetails returns per-school distances for a conference-year. Other
// schools are matched by name, so two schools sharing a campus location still
// count against each other here.
func SchoolDetails(conf Conference, stats Stats) []SchoolDetail {
	details := make([]SchoolDetail, 0, len(conf.Schools))
	for _, school := range conf.Schools {
		others := make([]geo.Point, 0, len(conf.Schools))
		for _, other := range conf.Schools {
			if other.Name != school.Name {
				others = append(others, other.Point())
			}
		}

		d := SchoolDetail{Conference: conf.Name, Year: conf.Year, School: school.Name}
		if avg, err := geo.AverageDistance(school.Point(), others, geo.Degrees); err == nil {
			d.AvgDistanceToOthers = avg
		}
		if stats.Capital != nil {
			d.DistanceToCapital = geo.Distance(school.Point(), stats.Capital.Point(), geo.Degrees)
		}
		details = append(details, d)
	}
	return details
}
