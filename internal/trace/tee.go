package trace

import "errors"

// Tee sends every event to each of tracers; `--trace-mode both` uses it to
// stream and keep a ring at once.
func Tee(level Level, tracers ...Tracer) Tracer {
	return &teeTracer{tracers: tracers, level: level}
}

type teeTracer struct {
	tracers []Tracer
	level   Level
}

func (t *teeTracer) Emit(ev *Event) {
	for _, tr := range t.tracers {
		// каждый трейсер проставляет свой Seq
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *teeTracer) Flush() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *teeTracer) Close() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

func (t *teeTracer) Level() Level  { return t.level }
func (t *teeTracer) Enabled() bool { return t.level > LevelOff }
