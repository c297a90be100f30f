package metrics

// Noop is a Provider whose instruments discard every measurement.
// It is the default when no provider is configured.
type Noop struct{}

type noopInstrument struct{}

func (noopInstrument) Add(int64)      {}
func (noopInstrument) Record(float64) {}

func (Noop) Counter(string, ...InstrumentOption) Counter             { return noopInstrument{} }
func (Noop) UpDownCounter(string, ...InstrumentOption) UpDownCounter { return noopInstrument{} }
func (Noop) Histogram(string, ...InstrumentOption) Histogram         { return noopInstrument{} }
