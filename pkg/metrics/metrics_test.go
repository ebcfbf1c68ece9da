package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithPrometheusRegistry(registry),
			WithNamespace("test"),
			WithSubsystem("board"),
			WithHistogramBuckets([]float64{1, 10, 100}),
			WithCustomLabels(map[string]string{"env": "test"}),
		)

		Convey("When recording queries", func() {
			m.RecordQuery(KindYear, StatusOK)
			m.RecordQuery(KindYear, StatusOK)
			m.RecordQuery(KindCareer, StatusError)
			m.RecordQueryLatency(KindYear, 5)

			Convey("Then counters should reflect each outcome", func() {
				So(testutil.ToFloat64(m.queriesTotal.WithLabelValues(KindYear, StatusOK)), ShouldEqual, 2)
				So(testutil.ToFloat64(m.queriesTotal.WithLabelValues(KindCareer, StatusError)), ShouldEqual, 1)
				So(testutil.CollectAndCount(m.queryDuration), ShouldEqual, 1)
			})
		})

		Convey("When recording table loads", func() {
			m.RecordRowsLoaded("batting", 100)
			m.RecordRowsLoaded("batting", 50)
			m.RecordTableLoadLatency("batting", 3)
			m.UpdatePlayersAggregated(42)
			m.UpdateRankedEntries(KindCareer, 20)

			Convey("Then the values should accumulate or be set", func() {
				So(testutil.ToFloat64(m.rowsLoaded.WithLabelValues("batting")), ShouldEqual, 150)
				So(testutil.ToFloat64(m.playersAggregated), ShouldEqual, 42)
				So(testutil.ToFloat64(m.rankedEntries.WithLabelValues(KindCareer)), ShouldEqual, 20)
			})
		})

		Convey("When recording errors", func() {
			m.RecordErrorByKind("names", "unknown_player")

			Convey("Then the error counter should include the constant labels", func() {
				expected := `
# HELP test_board_errors_total Total number of errors by component and kind
# TYPE test_board_errors_total counter
test_board_errors_total{component="names",env="test",kind="unknown_player"} 1
`
				err := testutil.CollectAndCompare(m.errorsByKind, strings.NewReader(expected))
				So(err, ShouldBeNil)
			})
		})
	})

	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithMetricsEnabled(false))

		Convey("Then recording should be a no-op", func() {
			m.RecordQuery(KindYear, StatusOK)
			m.RecordRowsLoaded("master", 10)
			So(testutil.ToFloat64(m.queriesTotal.WithLabelValues(KindYear, StatusOK)), ShouldEqual, 0)
			So(testutil.ToFloat64(m.rowsLoaded.WithLabelValues("master")), ShouldEqual, 0)
		})
	})
}

func TestGlobalMetrics(t *testing.T) {
	Convey("Given the global metrics helpers", t, func() {
		Convey("Then recording should not panic", func() {
			So(func() {
				RecordQuery(KindYear, StatusOK)
				RecordQueryLatency(KindYear, 1.5)
				UpdateRankedEntries(KindYear, 5)
				RecordRowsLoaded("batting", 10)
				RecordTableLoadLatency("batting", 2)
				UpdatePlayersAggregated(3)
				RecordErrorByKind("table", "open")
			}, ShouldNotPanic)
		})

		Convey("When writing the textfile", func() {
			RecordQuery(KindCareer, StatusOK)
			path := filepath.Join(t.TempDir(), "batting.prom")
			err := WriteTextfile(path)

			Convey("Then it should contain the exposition text", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "batting_leaderboard_queries_total")
			})
		})

		Convey("When writing to a missing directory", func() {
			err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "batting.prom"))

			Convey("Then it should wrap ErrWriteTextfile", func() {
				So(errors.Is(err, ErrWriteTextfile), ShouldBeTrue)
			})
		})

		Convey("Then the registry should be exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
