package generate

import "errors"

// Stager is implemented by pipeline errors that know which stage produced
// them (classification, parsing, encoding, serialization, packaging).
type Stager interface {
	Stage() string
}

// StageOf reports the stage of err, or "generation" when the error carries
// no stage of its own.
func StageOf(err error) string {
	var s Stager
	if errors.As(err, &s) {
		return s.Stage()
	}
	return "generation"
}
