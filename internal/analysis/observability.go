package analysis

import (
	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/alexanderramin/nuclea/internal/llm"
	"github.com/alexanderramin/nuclea/internal/logger"
)

// StageEvent describes how one stage's output was decoded.
type StageEvent struct {
	Stage   llm.TaskType
	Mode    domain.AnalysisMode
	Decoded bool
	// DefaultedScores counts rubric dimensions that fell back to neutral.
	DefaultedScores int
}

// StageObserver receives stage events. Decode fallbacks are only ever
// visible here.
type StageObserver interface {
	OnStageComplete(StageEvent)
}

type NoopStageObserver struct{}

func (NoopStageObserver) OnStageComplete(StageEvent) {}

// LogStageObserver logs fallbacks at warn level.
type LogStageObserver struct {
	log *logger.Logger
}

func NewLogStageObserver(log *logger.Logger) *LogStageObserver {
	return &LogStageObserver{log: log.With("component", "pipeline")}
}

func (o *LogStageObserver) OnStageComplete(e StageEvent) {
	if e.Decoded {
		o.log.Debug("stage decoded", "stage", e.Stage, "mode", e.Mode)
		return
	}
	o.log.Warn("stage output fell back to defaults",
		"stage", e.Stage,
		"mode", e.Mode,
		"defaulted_scores", e.DefaultedScores,
	)
}

// StageObservers fans out to several observers.
type StageObservers []StageObserver

func (s StageObservers) OnStageComplete(e StageEvent) {
	for _, o := range s {
		if o != nil {
			o.OnStageComplete(e)
		}
	}
}
