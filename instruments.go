package framepipe

import "github.com/framepipe/framepipe/metrics"

// instruments groups the pipeline's measurement points. One set is created
// per Run from the configured provider.
type instruments struct {
	ingested         metrics.Counter
	transformed      metrics.Counter
	failures         metrics.Counter
	delivered        metrics.Counter
	queueDepth       metrics.UpDownCounter
	workersActive    metrics.UpDownCounter
	transformSeconds metrics.Histogram
}

func newInstruments(p metrics.Provider) *instruments {
	return &instruments{
		ingested: p.Counter("framepipe.frames.ingested",
			metrics.WithDescription("frames accepted from the source"), metrics.WithUnit("1")),
		transformed: p.Counter("framepipe.frames.transformed",
			metrics.WithDescription("frames transformed successfully"), metrics.WithUnit("1")),
		failures: p.Counter("framepipe.transform.failures",
			metrics.WithDescription("per-frame transform failures"), metrics.WithUnit("1")),
		delivered: p.Counter("framepipe.frames.delivered",
			metrics.WithDescription("frames delivered to the sink"), metrics.WithUnit("1")),
		queueDepth: p.UpDownCounter("framepipe.input_queue.depth",
			metrics.WithDescription("frames waiting in the input queue"), metrics.WithUnit("1")),
		workersActive: p.UpDownCounter("framepipe.workers.active",
			metrics.WithDescription("workers not yet drained by an end marker"), metrics.WithUnit("1")),
		transformSeconds: p.Histogram("framepipe.transform.duration",
			metrics.WithDescription("transform duration"), metrics.WithUnit("s")),
	}
}
