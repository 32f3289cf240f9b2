package reconcile

import (
	"net/http"

	"go.uber.org/zap"

	"bizledger/internal/commons"
)

type Controller struct {
	runner Runner
	logger *zap.Logger
}

func NewController(runner Runner, logger *zap.Logger) *Controller {
	return &Controller{runner: runner, logger: logger}
}

func (c *Controller) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	traceID := commons.TraceID(r)

	report, err := c.runner.Run(r.Context())
	if err != nil {
		commons.WriteError(w, traceID, err, c.logger)
		return
	}

	message := "Ledger is consistent"
	if !report.Clean() {
		message = "Ledger drift detected"
	}

	commons.WriteSuccess(w, http.StatusOK, traceID, message, report, c.logger)
}
