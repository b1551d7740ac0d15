package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		registry := prometheus.NewRegistry()

		Convey("When creating a manager with custom options", func() {
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 2}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then its collectors are registered under the namespace", func() {
				So(m, ShouldNotBeNil)
				m.datasetRows.Set(3)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_unit_dataset_rows")
			})
		})

		Convey("When the same registry is reused", func() {
			NewManager(WithPrometheusRegistry(registry))

			Convey("Then registering again panics", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording render outcomes", func() {
			before := testutil.ToFloat64(globalManager.joinMisses)
			RecordJoinMisses(3)
			RecordRender(true, 1.5)
			RecordDuplicateStates(1)
			RecordEmptySubset()
			RecordRenderError()

			Convey("Then counters move", func() {
				So(testutil.ToFloat64(globalManager.joinMisses)-before, ShouldEqual, 3.0)
				So(testutil.ToFloat64(globalManager.renders.WithLabelValues("true")), ShouldBeGreaterThanOrEqualTo, 1)
			})
		})

		Convey("When updating dataset gauges", func() {
			UpdateDataset(10, 3, 5, 52)
			UpdatePredictionYear(2024)
			RecordDatasetLoad(12)

			Convey("Then gauges hold the values", func() {
				So(testutil.ToFloat64(globalManager.datasetRows), ShouldEqual, 10.0)
				So(testutil.ToFloat64(globalManager.boundaryFeatures), ShouldEqual, 52.0)
				So(testutil.ToFloat64(globalManager.predictionYear), ShouldEqual, 2024.0)
			})
		})

		Convey("When recording HTTP and system metrics", func() {
			RecordHTTPRequest("view", "GET", "200")
			RecordHTTPRequestDuration("view", "GET", "200", 2)
			RecordErrorByType("client_error", "medium")
			RecordErrorByEndpoint("view", "GET", "client_error")
			UpdateSystemMemoryUsage(1024)
			UpdateSystemGoroutineCount(7)
			RecordSystemGCPauseTime(0.3)

			Convey("Then the registry gathers without error", func() {
				_, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(testutil.ToFloat64(globalManager.systemGoroutineCount), ShouldEqual, 7.0)
			})
		})
	})
}
