package conference

import (
	"math"
	"sort"
)

// SummarizeByYear averages the per-conference statistics of each season.
// Custom conferences are left out. Averages are rounded to two decimals and
// the result is ordered by year.
func SummarizeByYear(stats []Stats) []YearSummary {
	type acc struct {
		n          int
		between    float64
		fromCenter float64
	}
	byYear := make(map[int]*acc)
	for _, s := range stats {
		if s.Custom {
			continue
		}
		a, ok := byYear[s.Year]
		if !ok {
			a = &acc{}
			byYear[s.Year] = a
		}
		a.n++
		a.between += s.AvgDistanceBetweenSchools
		a.fromCenter += s.AvgDistanceFromCenter
	}

	out := make([]YearSummary, 0, len(byYear))
	for year, a := range byYear {
		out = append(out, YearSummary{
			Year:                  year,
			Conferences:           a.n,
			AvgDistance:           round2(a.between / float64(a.n)),
			AvgDistanceFromCenter: round2(a.fromCenter / float64(a.n)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// FilterBySport keeps conference-years tagged for sport. An empty sport keeps all.
func FilterBySport(confs []Conference, sport string) []Conference {
	if sport == "" {
		return confs
	}
	out := make([]Conference, 0, len(confs))
	for _, c := range confs {
		if c.Plays(sport) {
			out = append(out, c)
		}
	}
	return out
}

// FilterByYear keeps conference-years from year. Zero keeps all.
func FilterByYear(confs []Conference, year int) []Conference {
	if year == 0 {
		return confs
	}
	out := make([]Conference, 0, len(confs))
	for _, c := range confs {
		if c.Year == year {
			out = append(out, c)
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
