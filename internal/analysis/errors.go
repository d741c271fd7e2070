package analysis

import "errors"

// ErrExtraction marks a fatal first-phase failure: the service returned
// nothing parseable, so no insight phase is attempted. Insight-phase
// failures are never surfaced as errors; they end the stream after the
// extraction snapshot instead.
var ErrExtraction = errors.New("analysis: extraction failed")
