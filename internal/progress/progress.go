// Package progress defines the optional progress sink solvers report
// through: the caller may supply a sink, and if absent the core writes
// periodic progress lines to a standard diagnostic stream on its own.
// It ships two concrete sinks: a zerolog sink (the ambient default) and
// a progressbar sink for interactive CLI use.
package progress

import (
	"os"

	"github.com/rs/zerolog"
	progressbar "github.com/schollz/progressbar/v3"
)

// Update is one progress signal: the generation/iteration index and the
// current best penalty (lower is better).
type Update struct {
	Generation  int
	TotalSteps  int
	BestPenalty int
	Evaluations int
}

// Sink receives progress updates. Implementations must not block the
// caller meaningfully; a failure to emit progress must never fail the run.
type Sink interface {
	Report(u Update)
}

// SinkFunc adapts a plain function to a Sink.
type SinkFunc func(Update)

// Report implements Sink.
func (f SinkFunc) Report(u Update) { f(u) }

// Noop discards every update; passed explicitly where progress diagnostics
// aren't needed (e.g. bench runs). A nil sink is not Noop: ga.New replaces
// it with the zerolog sink.
var Noop Sink = SinkFunc(func(Update) {})

// zerologSink is the default diagnostic sink: one structured log line per
// update, to stderr.
type zerologSink struct {
	log zerolog.Logger
	tag string
}

// NewZerologSink returns the default progress sink, logging through a
// zerolog.Logger tagged with the solver name (e.g. "ga", "sa").
func NewZerologSink(tag string) Sink {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Str("solver", tag).Logger()
	return &zerologSink{log: log, tag: tag}
}

func (s *zerologSink) Report(u Update) {
	s.log.Info().
		Int("generation", u.Generation).
		Int("total", u.TotalSteps).
		Int("best_penalty", u.BestPenalty).
		Int("evaluations", u.Evaluations).
		Msg("progress")
}

// barSink drives an interactive terminal progress bar, for CLI use only.
type barSink struct {
	bar *progressbar.ProgressBar
}

// NewBarSink returns a Sink backed by a schollz/progressbar bar with
// totalSteps steps, describing itself with label.
func NewBarSink(totalSteps int, label string) Sink {
	bar := progressbar.NewOptions(totalSteps,
		progressbar.OptionSetDescription(label),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)
	return &barSink{bar: bar}
}

func (s *barSink) Report(u Update) {
	_ = s.bar.Set(u.Generation)
}
