// Package dataset loads the reference data the analyzer runs on: the major
// city list, conference-by-year membership, custom conference definitions and
// school rosters kept in spreadsheets.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"

	"github.com/cfb-realignment/realign-cli/internal/geo"
)

// cityRow is one line of the major city CSV. Coordinates stay strings so a
// partially filled row can be skipped instead of failing the decode.
type cityRow struct {
	City      string `csv:"City"`
	State     string `csv:"State"`
	Latitude  string `csv:"Latitude"`
	Longitude string `csv:"Longitude"`
}

// LoadCities reads the major city CSV at path.
func LoadCities(path string) ([]geo.City, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open cities %s", path)
	}
	defer f.Close() //nolint:errcheck

	cities, err := ParseCities(f)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: load cities %s", path)
	}
	return cities, nil
}

// ParseCities decodes a CSV with the header City,State,Latitude,Longitude.
// Rows with a blank city are skipped.
func ParseCities(r io.Reader) ([]geo.City, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	dec, err := csvutil.NewDecoder(reader)
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, eris.Wrap(err, "dataset: read cities header")
	}

	var cities []geo.City
	for line := 2; ; line++ {
		var row cityRow
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, eris.Wrapf(err, "dataset: decode cities line %d", line)
		}

		name := strings.TrimSpace(row.City)
		if name == "" {
			continue
		}
		lat, err := parseDegrees(row.Latitude)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: cities line %d latitude", line)
		}
		lon, err := parseDegrees(row.Longitude)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: cities line %d longitude", line)
		}
		cities = append(cities, geo.City{
			Name:  name,
			State: strings.TrimSpace(row.State),
			Point: geo.Point{Lat: lat, Lon: lon},
		})
	}
	return cities, nil
}

func parseDegrees(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, eris.Wrapf(err, "parse %q", s)
	}
	return v, nil
}
