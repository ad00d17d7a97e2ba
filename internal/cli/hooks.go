package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ratiomerge/pkg/observability"
)

// logHooks traces a merge run at debug level.
type logHooks struct {
	observability.NoopMergeHooks
	logger *log.Logger
}

func (h *logHooks) OnEmit(_ context.Context, stream int, x, dy, center float64) {
	h.logger.Debug("emit", "stream", stream, "x", x, "dy", dy, "center", center)
}

func (h *logHooks) OnMergeComplete(_ context.Context, records int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("merge stopped", "records", records, "elapsed", d, "err", err)
	}
}
