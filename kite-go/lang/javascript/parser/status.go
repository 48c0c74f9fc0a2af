package parser

import "github.com/kiteco/jsparse/kite-golib/status"

var (
	section = status.NewSection("lang/javascript (parser)")

	parseDuration   = section.SampleDuration("Parse duration")
	parseErrorRatio = section.Ratio("Parse errors")
	parseErrorKinds = section.Breakdown("Parse error kinds")
	cacheHitRatio   = section.Ratio("Parse cache hits")
	bytesParsed     = section.Counter("Bytes parsed")
)

// SetDurationSampleRate sets the fraction of parses whose duration is recorded.
func SetDurationSampleRate(rate float64) {
	parseDuration.SetSampleRate(rate)
}
