package geo

import "github.com/rotisserie/eris"

var (
	// ErrDegenerateInput is returned when a point set is too small for the
	// requested statistic (empty, or a singleton where two points are needed).
	ErrDegenerateInput = eris.New("geo: degenerate input")

	// ErrEmptyReferenceCorpus is returned by FindNearestCity when no cities are given.
	ErrEmptyReferenceCorpus = eris.New("geo: empty reference city corpus")
)
