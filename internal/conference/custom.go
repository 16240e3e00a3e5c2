package conference

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
)

// CustomDefinition describes a hypothetical conference assembled from
// existing schools.
type CustomDefinition struct {
	Name    string   `yaml:"name" json:"name"`
	Year    int      `yaml:"year" json:"year"`
	Schools []string `yaml:"schools" json:"schools"`
}

// Roster indexes schools by case-folded name.
type Roster struct {
	byName map[string]School
}

// NewRoster builds a roster. When a name repeats, the first school wins.
func NewRoster(schools []School) *Roster {
	r := &Roster{byName: make(map[string]School, len(schools))}
	for _, s := range schools {
		key := foldName(s.Name)
		if _, ok := r.byName[key]; !ok {
			r.byName[key] = s
		}
	}
	return r
}

// RosterFromConferences builds a roster from every school appearing in confs.
func RosterFromConferences(confs []Conference) *Roster {
	var schools []School
	for _, c := range confs {
		schools = append(schools, c.Schools...)
	}
	return NewRoster(schools)
}

// Lookup finds a school by name, ignoring case and surrounding space.
func (r *Roster) Lookup(name string) (School, bool) {
	s, ok := r.byName[foldName(name)]
	return s, ok
}

// Len returns the number of distinct schools.
func (r *Roster) Len() int { return len(r.byName) }

// Build resolves the definition's school names against the roster.
// index numbers unnamed conferences ("Custom Conference 1", ...).
func (d CustomDefinition) Build(r *Roster, index int) (Conference, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		name = fmt.Sprintf("Custom Conference %d", index)
	}

	conf := Conference{
		Year:       d.Year,
		Name:       name,
		Football:   true,
		Basketball: true,
		Custom:     true,
		Schools:    make([]School, 0, len(d.Schools)),
	}

	var missing []string
	for _, schoolName := range d.Schools {
		s, ok := r.Lookup(schoolName)
		if !ok {
			missing = append(missing, schoolName)
			continue
		}
		conf.Schools = append(conf.Schools, s)
	}
	if len(missing) > 0 {
		return Conference{}, eris.Errorf("conference: %s: unknown schools %s", name, strings.Join(missing, ", "))
	}
	return conf, nil
}

// BuildCustom resolves every definition against the roster.
func BuildCustom(defs []CustomDefinition, r *Roster) ([]Conference, error) {
	out := make([]Conference, 0, len(defs))
	for i, d := range defs {
		conf, err := d.Build(r, i+1)
		if err != nil {
			return nil, err
		}
		out = append(out, conf)
	}
	return out, nil
}

func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
