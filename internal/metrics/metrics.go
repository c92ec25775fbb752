// Package metrics provides the Prometheus collectors that track how the event handler
// is classifying lines and how well the Sponge is correlating them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups every collector we export
type Metrics struct {
	// Counters
	SpongePuts       prometheus.Counter
	SpongeHits       prometheus.Counter
	SpongeMisses     prometheus.Counter
	SpongeSuperseded prometheus.Counter
	BadgeResolutions prometheus.Counter
	TabRecolors      prometheus.Counter

	// Lines classified by the raw-line hook, labeled by command and eat mode
	Classified *prometheus.CounterVec
	// Lines emitted into the host, labeled by event category
	Emitted *prometheus.CounterVec
}

// New creates every collector and registers it with reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		SpongePuts:       f.NewCounter(prometheus.CounterOpts{Name: "tagchat_sponge_puts_total", Help: "Number of chat lines stored in the sponge"}),
		SpongeHits:       f.NewCounter(prometheus.CounterOpts{Name: "tagchat_sponge_hits_total", Help: "Number of printed lines matched to a stored chat line"}),
		SpongeMisses:     f.NewCounter(prometheus.CounterOpts{Name: "tagchat_sponge_misses_total", Help: "Number of printed lines with no matching stored chat line"}),
		SpongeSuperseded: f.NewCounter(prometheus.CounterOpts{Name: "tagchat_sponge_superseded_total", Help: "Number of stored chat lines discarded before being claimed"}),
		BadgeResolutions: f.NewCounter(prometheus.CounterOpts{Name: "tagchat_badge_resolutions_total", Help: "Number of times a badges value had to be resolved to glyphs"}),
		TabRecolors:      f.NewCounter(prometheus.CounterOpts{Name: "tagchat_tab_recolors_total", Help: "Number of tab recolor commands issued"}),
		Classified: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tagchat_lines_classified_total",
			Help: "Number of raw lines classified, by command and eat mode",
		}, []string{"command", "eat"}),
		Emitted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tagchat_lines_emitted_total",
			Help: "Number of formatted lines emitted into the host, by event category",
		}, []string{"event"}),
	}
}
