package scoring

import (
	"strings"

	"github.com/eslsoft/aussieprogress/internal/entity"
)

// Collector accumulates recognizer events into one transcript. Final and
// interim segments are concatenated separately; interim text is only reported
// while nothing is final.
type Collector struct {
	final      strings.Builder
	interim    strings.Builder
	confidence float64
	finals     int
}

// Add consumes one recognition event.
func (c *Collector) Add(r entity.RecognitionResult) {
	if !r.IsFinal {
		c.interim.WriteString(r.Transcript)
		return
	}
	c.final.WriteString(r.Transcript)
	c.finals++
	if conf := clampConfidence(r.Confidence); conf > c.confidence {
		c.confidence = conf
	}
}

// Transcript returns the trimmed final transcript, or the interim transcript
// when nothing is final yet.
func (c *Collector) Transcript() string {
	if c.finals == 0 {
		return strings.TrimSpace(c.interim.String())
	}
	return strings.TrimSpace(c.final.String())
}

// Confidence returns the best confidence among final results.
func (c *Collector) Confidence() float64 { return c.confidence }

// Final reports whether at least one final result was seen.
func (c *Collector) Final() bool { return c.finals > 0 }

// Reset clears the collector for the next utterance.
func (c *Collector) Reset() {
	c.final.Reset()
	c.interim.Reset()
	c.confidence = 0
	c.finals = 0
}
