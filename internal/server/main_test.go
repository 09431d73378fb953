package server

import (
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m,
		// database/sql keeps its opener goroutine until the pool is closed by t.Cleanup.
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
		// The genai transport imports opencensus, whose view worker starts in init and never exits.
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}
