package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cfb-realignment/realign-cli/internal/conference"
	"github.com/cfb-realignment/realign-cli/internal/dataset"
	"github.com/cfb-realignment/realign-cli/internal/export"
	"github.com/cfb-realignment/realign-cli/internal/geo"
	"github.com/cfb-realignment/realign-cli/internal/store"
)

// Output formats for analyze.
const (
	formatJSON    = "json"
	formatGeoJSON = "geojson"
	formatXLSX    = "xlsx"
	formatShp     = "shp"
)

type analyzeOptions struct {
	ConferencesPath string
	CitiesPath      string
	CustomPath      string
	RosterPath      string
	Sport           string
	Year            int
	Concurrency     int
	Format          string
	Output          string
	Details         bool
}

// analysisResult is everything one analyze invocation computes.
type analysisResult struct {
	Stats     []conference.Stats        `json:"stats"`
	Summaries []conference.YearSummary  `json:"summaries"`
	Details   []conference.SchoolDetail `json:"details,omitempty"`
}

var (
	analyzeFlags analyzeOptions
	analyzeSave  bool
	analyzeLabel string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute distances, centers, capitals and territories for conference-years",
	Long: `Loads conference memberships and major cities, computes the geography of every
conference-year and writes the results as JSON, GeoJSON, an Excel workbook or a shapefile.
Custom conferences from a YAML file are analyzed alongside the real ones.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		opts := analyzeFlags.withDefaults()

		cfg.Data.ConferencesPath = opts.ConferencesPath
		cfg.Analysis.Concurrency = opts.Concurrency
		cfg.Analysis.Sport = opts.Sport
		if err := cfg.Validate("analyze"); err != nil {
			return err
		}

		res, err := runAnalyze(ctx, opts)
		if err != nil {
			return err
		}

		if err := writeAnalysis(cmd.OutOrStdout(), opts, res); err != nil {
			return err
		}

		if analyzeSave {
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			run := &store.Run{
				Label:   analyzeLabel,
				Sport:   opts.Sport,
				Stats:   res.Stats,
				Details: res.Details,
			}
			if err := st.SaveRun(ctx, run); err != nil {
				return eris.Wrap(err, "analyze: save run")
			}
			zap.L().Info("run saved", zap.String("run_id", run.ID), zap.Int("conferences", run.Conferences))
		}
		return nil
	},
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.ConferencesPath, "conferences", "", "conference membership JSON (default from config data.conferences_path)")
	f.StringVar(&analyzeFlags.CitiesPath, "cities", "", "major city CSV (default from config data.cities_path)")
	f.StringVar(&analyzeFlags.CustomPath, "custom", "", "custom conference YAML (default from config data.custom_path)")
	f.StringVar(&analyzeFlags.RosterPath, "roster", "", "extra school locations from an Excel workbook")
	f.StringVar(&analyzeFlags.Sport, "sport", "", "football or basketball (default from config analysis.sport)")
	f.IntVar(&analyzeFlags.Year, "year", 0, "only analyze this season")
	f.IntVar(&analyzeFlags.Concurrency, "concurrency", 0, "parallel conference analyses (default from config analysis.concurrency)")
	f.StringVar(&analyzeFlags.Format, "format", formatJSON, "output format: json, geojson, xlsx or shp")
	f.StringVarP(&analyzeFlags.Output, "output", "o", "", "output file (default stdout; required for shp)")
	f.BoolVar(&analyzeFlags.Details, "details", false, "include per-school distances")
	f.BoolVar(&analyzeSave, "save", false, "save the run to the configured store")
	f.StringVar(&analyzeLabel, "label", "", "label for the saved run")
	rootCmd.AddCommand(analyzeCmd)
}

// withDefaults fills unset options from the loaded config.
func (o analyzeOptions) withDefaults() analyzeOptions {
	if cfg == nil {
		return o
	}
	if o.ConferencesPath == "" {
		o.ConferencesPath = cfg.Data.ConferencesPath
	}
	if o.CitiesPath == "" {
		o.CitiesPath = cfg.Data.CitiesPath
	}
	if o.CustomPath == "" {
		o.CustomPath = cfg.Data.CustomPath
	}
	if o.Sport == "" {
		o.Sport = cfg.Analysis.Sport
	}
	if o.Concurrency == 0 {
		o.Concurrency = cfg.Analysis.Concurrency
	}
	return o
}

// runAnalyze loads the datasets named in opts and analyzes every matching
// conference-year, custom conferences included.
func runAnalyze(ctx context.Context, opts analyzeOptions) (*analysisResult, error) {
	log := zap.L().With(zap.String("component", "analyze"))

	switch opts.Format {
	case "", formatJSON, formatGeoJSON, formatXLSX:
	case formatShp:
		if opts.Output == "" {
			return nil, eris.New("analyze: shp format requires --output")
		}
	default:
		return nil, eris.Errorf("analyze: unknown format %q", opts.Format)
	}

	all, err := dataset.LoadConferences(opts.ConferencesPath)
	if err != nil {
		return nil, err
	}

	var cities []geo.City
	if opts.CitiesPath != "" {
		cities, err = dataset.LoadCities(opts.CitiesPath)
		if err != nil {
			return nil, err
		}
	}

	confs := conference.FilterByYear(conference.FilterBySport(all, opts.Sport), opts.Year)

	if opts.CustomPath != "" {
		custom, err := loadCustom(opts, all)
		if err != nil {
			return nil, err
		}
		confs = append(confs, custom...)
	}

	log.Info("analyzing conferences",
		zap.Int("conferences", len(confs)),
		zap.Int("cities", len(cities)),
		zap.String("sport", opts.Sport),
		zap.Int("year", opts.Year),
	)

	analyzer := conference.NewAnalyzer(cities, conference.WithConcurrency(opts.Concurrency))
	stats, err := analyzer.AnalyzeAll(ctx, confs)
	if err != nil {
		return nil, err
	}

	res := &analysisResult{
		Stats:     stats,
		Summaries: conference.SummarizeByYear(stats),
	}
	if opts.Details {
		for i, c := range confs {
			res.Details = append(res.Details, conference.SchoolDetails(c, stats[i])...)
		}
	}
	return res, nil
}

// loadCustom builds custom conferences against every school in the
// membership data plus the optional Excel roster, which takes precedence.
func loadCustom(opts analyzeOptions, all []conference.Conference) ([]conference.Conference, error) {
	defs, err := dataset.LoadCustomConferences(opts.CustomPath)
	if err != nil {
		return nil, err
	}

	var schools []conference.School
	if opts.RosterPath != "" {
		schools, err = dataset.ReadSchoolsXLSX(opts.RosterPath, dataset.XLSXOptions{})
		if err != nil {
			return nil, err
		}
	}
	for _, c := range all {
		schools = append(schools, c.Schools...)
	}

	for i := range defs {
		if defs[i].Year == 0 {
			defs[i].Year = opts.Year
		}
	}
	return conference.BuildCustom(defs, conference.NewRoster(schools))
}

// writeAnalysis renders res in the requested format to opts.Output, or to
// stdout when no output file is set.
func writeAnalysis(stdout io.Writer, opts analyzeOptions, res *analysisResult) error {
	if opts.Format == formatShp {
		return export.WriteShapefile(opts.Output, res.Stats)
	}

	out := stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return eris.Wrapf(err, "analyze: create %s", opts.Output)
		}
		defer f.Close() //nolint:errcheck
		out = f
	}

	switch opts.Format {
	case formatGeoJSON:
		return export.WriteGeoJSON(out, res.Stats)
	case formatXLSX:
		return export.WriteXLSX(out, res.Stats, res.Summaries, res.Details)
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return eris.Wrap(err, "analyze: encode json")
		}
		return nil
	}
}
