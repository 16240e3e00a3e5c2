package dataset

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/cfb-realignment/realign-cli/internal/conference"
)

// LoadConferences reads a JSON array of conference-by-year records from path.
func LoadConferences(path string) ([]conference.Conference, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open conferences %s", path)
	}
	defer f.Close() //nolint:errcheck

	confs, err := ParseConferences(f)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: load conferences %s", path)
	}
	return confs, nil
}

// ParseConferences decodes a JSON array of conference-by-year records.
func ParseConferences(r io.Reader) ([]conference.Conference, error) {
	var confs []conference.Conference
	if err := json.NewDecoder(r).Decode(&confs); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, eris.Wrap(err, "dataset: decode conferences")
	}
	return confs, nil
}
