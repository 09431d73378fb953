package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/nuclea/internal/analysis"
	"github.com/alexanderramin/nuclea/internal/contract"
	"github.com/alexanderramin/nuclea/internal/logger"
	"github.com/alexanderramin/nuclea/internal/metrics"
	"github.com/alexanderramin/nuclea/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	msgAnalysisFailed   = "Analysis failed. Please try again."
	msgAnalysisTimedOut = "Analysis timed out. Please try again."
)

// AnalyzeHandler streams one analysis run as server-sent events.
type AnalyzeHandler struct {
	svc     service.AnalysisService
	timeout time.Duration
	metrics *metrics.Manager
	log     *logger.Logger
}

func NewAnalyzeHandler(svc service.AnalysisService, timeout time.Duration, m *metrics.Manager, log *logger.Logger) *AnalyzeHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &AnalyzeHandler{svc: svc, timeout: timeout, metrics: m, log: log.With("component", "analyze_handler")}
}

// sseWriter writes "data: <json>\n\n" frames and flushes each one.
type sseWriter struct {
	w   gin.ResponseWriter
	log *logger.Logger
}

func (s sseWriter) send(ev contract.StreamEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		s.log.Warn("failed to marshal stream event", "type", ev.Type, "error", err)
		return
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		s.log.Debug("stream write failed", "error", err)
		return
	}
	s.w.Flush()
}

func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req contract.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}
	if err := h.svc.Validate(req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_input", err)
		return
	}

	if h.metrics != nil {
		done := h.metrics.StreamStarted()
		defer done()
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	header := c.Writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	out := sseWriter{w: c.Writer, log: h.log}
	resp, err := h.svc.Analyze(ctx, req, func(percent int, message string) {
		out.send(contract.ProgressEvent(percent, message))
	})
	if err != nil {
		h.streamFailure(c, out, err)
		return
	}

	out.send(contract.CompleteEvent(resp.Result, resp.AnalysisID))

	// The client already has its result; the write must not depend on it staying.
	if _, err := h.svc.Record(context.WithoutCancel(c.Request.Context()), resp); err != nil {
		_ = c.Error(err)
	}
}

func (h *AnalyzeHandler) streamFailure(c *gin.Context, out sseWriter, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, analysis.ErrCanceled) && c.Request.Context().Err() != nil:
		h.log.Info("client went away during analysis", "error", err)
	case errors.Is(err, context.DeadlineExceeded):
		out.send(contract.ErrorEvent(msgAnalysisTimedOut))
	default:
		h.log.Warn("analysis failed", "error", err)
		out.send(contract.ErrorEvent(msgAnalysisFailed))
	}
}
