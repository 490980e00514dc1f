package query

import (
	"context"

	"github.com/outofforest/logger"
	"go.uber.org/zap"

	"github.com/JosLopes/LI3-sub000/database"
	"github.com/JosLopes/LI3-sub000/output"
)

// WriterFactory produces the writer answering one instance. Writers are
// keyed by the instance's source line; composing the keyed outputs into the
// final line-ordered sequence is the caller's concern.
type WriterFactory func(line uint32, formatted bool) (output.Writer, error)

// DispatcherConfig stores dispatcher configuration.
type DispatcherConfig struct {
	// DB is borrowed read-only for the whole dispatch.
	DB *database.Database

	// NewWriter produces one writer per executed instance.
	NewWriter WriterFactory
}

// NewDispatcher creates new query dispatcher.
func NewDispatcher(config DispatcherConfig) *Dispatcher {
	return &Dispatcher{
		config: config,
	}
}

// Dispatcher groups an instance list by type, runs each type's optional
// batched statistics preparation once, then drives per-instance execution
// in source-line order.
type Dispatcher struct {
	config DispatcherConfig
}

// Dispatch runs the whole instance list. A failing statistics preparation
// skips its run; a failing execution skips its instance; both are logged.
// Only writer plumbing failures abort the dispatch.
func (d *Dispatcher) Dispatch(ctx context.Context, list *List) error {
	log := logger.Get(ctx)

	list.Sort()
	for run := range list.Runs() {
		def := run[0].def

		var stats Statistics
		if def.GenerateStatistics != nil {
			var err error
			stats, err = def.GenerateStatistics(d.config.DB, run)
			if err != nil {
				log.Error("statistics preparation failed",
					zap.Int("queryType", def.Code), zap.Error(err))
				continue
			}
		}

		for _, instance := range run {
			w, err := d.config.NewWriter(instance.Line, instance.Formatted)
			if err != nil {
				return err
			}
			if err := def.Execute(d.config.DB, stats, instance, w); err != nil {
				log.Error("query execution failed",
					zap.Int("queryType", def.Code),
					zap.Uint32("line", instance.Line),
					zap.Error(err))
			}
			if err := w.Close(); err != nil {
				return err
			}
		}
	}

	return nil
}
