package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/nuclea/internal/analysis"
	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/alexanderramin/nuclea/internal/llm"
	"github.com/alexanderramin/nuclea/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManager(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		m := NewManager(WithRegistry(prometheus.NewRegistry()))

		Convey("When LLM calls complete", func() {
			m.OnCallComplete(llm.LLMCallEvent{Task: llm.TaskRubric, Model: "m", LatencyMs: 1200, Success: true})
			m.OnCallComplete(llm.LLMCallEvent{Task: llm.TaskRubric, Model: "m", Success: false, ErrorCode: "timeout"})
			m.OnCallComplete(llm.LLMCallEvent{Task: llm.TaskTalent, Model: "m", Success: false})

			Convey("Then they are counted by outcome", func() {
				So(testutil.ToFloat64(m.llmCalls.WithLabelValues("rubric", "m", "success")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.llmCalls.WithLabelValues("rubric", "m", "timeout")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.llmCalls.WithLabelValues("talent", "m", "error")), ShouldEqual, 1)
			})
		})

		Convey("When stages decode or fall back", func() {
			m.OnStageComplete(analysis.StageEvent{Stage: llm.TaskRubric, Mode: domain.ModeElementary, Decoded: false, DefaultedScores: 3})
			m.OnStageComplete(analysis.StageEvent{Stage: llm.TaskProfile, Mode: domain.ModeElementary, Decoded: true})

			Convey("Then fallbacks and defaulted scores are visible", func() {
				So(testutil.ToFloat64(m.stages.WithLabelValues("rubric", "elementary", "false")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.stages.WithLabelValues("profile", "elementary", "true")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.defaultedScores), ShouldEqual, 3)
			})
		})

		Convey("When use cases are observed", func() {
			m.ObserveUseCase(context.Background(), service.UseCaseEvent{Name: "analyze", Success: true, Duration: time.Second})
			m.ObserveUseCase(context.Background(), service.UseCaseEvent{Name: "analyze", Success: false})

			Convey("Then success and failure are split", func() {
				So(testutil.ToFloat64(m.useCases.WithLabelValues("analyze", "true")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.useCases.WithLabelValues("analyze", "false")), ShouldEqual, 1)
			})
		})

		Convey("When streams open and close", func() {
			done := m.StreamStarted()
			So(testutil.ToFloat64(m.streamsInFlight), ShouldEqual, 1)
			done()
			So(testutil.ToFloat64(m.streamsInFlight), ShouldEqual, 0)
		})

		Convey("When the handler is scraped", func() {
			m.ObserveHTTP("/api/analyze", http.MethodPost, http.StatusOK, 20*time.Millisecond)

			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Convey("Then the exposition contains the namespaced series", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `nuclea_http_requests_total{method="POST",route="/api/analyze",status="200"} 1`)
			})
		})
	})
}

func TestMetricsOptions(t *testing.T) {
	Convey("Given custom options", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("school"),
			WithSubsystem("api"),
			WithHistogramBuckets([]float64{1, 2}),
			WithRegistry(reg),
		)

		Convey("Then metric names carry the namespace and subsystem", func() {
			m.ObserveHTTP("/healthz", http.MethodGet, http.StatusOK, time.Millisecond)
			families, err := reg.Gather()
			So(err, ShouldBeNil)

			var names []string
			for _, f := range families {
				names = append(names, f.GetName())
			}
			So(names, ShouldContain, "school_api_http_requests_total")
			So(m.Registry(), ShouldEqual, reg)
		})
	})

	Convey("Given no registry option", t, func() {
		m := NewManager()

		Convey("Then the runtime collectors are registered", func() {
			families, err := m.Registry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
