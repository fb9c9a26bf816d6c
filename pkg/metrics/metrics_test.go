package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording ledger metrics", func() {
			Convey("Then it should record accepted votes", func() {
				So(func() {
					RecordVoteAccepted()
					RecordVoteAccepted()
				}, ShouldNotPanic)
			})

			Convey("And it should record duplicate votes", func() {
				So(func() {
					RecordVoteDuplicate()
					RecordVoteDuplicate()
				}, ShouldNotPanic)
			})

			Convey("And it should update ledger size", func() {
				So(func() {
					UpdateLedgerSize(0)
					UpdateLedgerSize(100)
					UpdateLedgerSize(50)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording ingestion metrics", func() {
			Convey("Then it should record run outcomes", func() {
				So(func() {
					RecordIngestionRun("completed")
					RecordIngestionRun("aborted")
					RecordIngestionRun("rejected")
				}, ShouldNotPanic)
			})

			Convey("And it should record run durations", func() {
				So(func() {
					RecordIngestionDuration(0.3)
					RecordIngestionDuration(12.5)
				}, ShouldNotPanic)
			})

			Convey("And it should record processed posts and fetched pages", func() {
				So(func() {
					RecordPostProcessed()
					RecordPageFetched()
					RecordPageFetchError()
					RecordPageFetchDuration(42.0)
					UpdateTotalPages(7)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then it should record HTTP requests", func() {
				So(func() {
					RecordHTTPRequest("/api/nominations", "GET", "200")
					RecordHTTPRequest("/api/refresh", "POST", "200")
					RecordHTTPRequest("/api/health", "GET", "200")
				}, ShouldNotPanic)
			})

			Convey("And it should record HTTP request duration", func() {
				So(func() {
					RecordHTTPRequestDuration("/api/nominations", "GET", "200", 5.0)
					RecordHTTPRequestDuration("/api/refresh", "POST", "200", 1500.0)
				}, ShouldNotPanic)
			})

			Convey("And it should record HTTP errors", func() {
				So(func() {
					RecordHTTPError("/api/nominations", "GET", "client_error")
					RecordHTTPError("/api/refresh", "POST", "server_error")
				}, ShouldNotPanic)
			})
		})

		Convey("When using the global registry", func() {
			Convey("Then it should be gatherable", func() {
				registry := GetRegistry()
				So(registry, ShouldNotBeNil)

				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestMetricsEdgeCases(t *testing.T) {
	Convey("Given metrics edge cases", t, func() {
		Convey("When recording metrics with edge values", func() {
			Convey("And using zero values", func() {
				So(func() {
					UpdateLedgerSize(0)
					UpdateTotalPages(0)
					RecordIngestionDuration(0.0)
					RecordHTTPRequestDuration("/test", "GET", "200", 0.0)
				}, ShouldNotPanic)
			})

			Convey("And using very large values", func() {
				So(func() {
					UpdateLedgerSize(1_000_000)
					UpdateTotalPages(100_000)
					RecordPageFetchDuration(60_000.0)
				}, ShouldNotPanic)
			})

			Convey("And using empty label values", func() {
				So(func() {
					RecordHTTPRequest("", "", "200")
					RecordHTTPError("", "", "")
					RecordIngestionRun("")
				}, ShouldNotPanic)
			})
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given metrics concurrency", t, func() {
		Convey("When recording metrics concurrently", func() {
			done := make(chan bool, 10)

			for i := 0; i < 10; i++ {
				go func() {
					for j := 0; j < 100; j++ {
						RecordVoteAccepted()
						UpdateLedgerSize(j)
						RecordPageFetchDuration(float64(j))
						RecordHTTPRequest("/test", "GET", "200")
					}
					done <- true
				}()
			}

			for i := 0; i < 10; i++ {
				<-done
			}

			Convey("Then it should handle concurrent access without panics", func() {
				So(true, ShouldBeTrue)
			})
		})
	})
}

func TestMetricsOptionsValidation(t *testing.T) {
	Convey("Given metrics options validation", t, func() {
		Convey("When creating with empty namespace", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithNamespace(""), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with empty subsystem", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithSubsystem(""), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with nil histogram buckets", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}
