package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	app "github.com/okian/examprep/internal/app"
	"github.com/okian/examprep/internal/config"
	"github.com/okian/examprep/pkg/logger"
	"github.com/okian/examprep/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func startedService(opts ...app.Option) *app.Service {
	svc := app.New(opts...)
	convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
	return svc
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("EXAMPREP_ADDR", ":8080")
			_ = os.Setenv("EXAMPREP_FILL_FROM_SAMPLE", "true")
			_ = os.Setenv("EXAMPREP_MAX_BODY_BYTES", "4096")
			defer func() {
				_ = os.Unsetenv("EXAMPREP_ADDR")
				_ = os.Unsetenv("EXAMPREP_FILL_FROM_SAMPLE")
				_ = os.Unsetenv("EXAMPREP_MAX_BODY_BYTES")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.FillFromSample, convey.ShouldBeTrue)
				convey.So(cfg.MaxBodyBytes, convey.ShouldEqual, 4096)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should start with the built-in catalog", func() {
				svc := startedService()
				defer svc.Stop()
				convey.So(svc.Stats()["topics"], convey.ShouldEqual, 4)
			})

			convey.Convey("And service should fail to start with a missing catalog file", func() {
				svc := app.New(app.WithCatalogFile("/non/existent/catalog.yaml"))
				convey.So(svc.Start(context.Background()), convey.ShouldNotBeNil)
			})
		})
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given the routed handler", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)
		cfg.MaxBodyBytes = 256
		svc := startedService(app.WithSampleFill(true))
		defer svc.Stop()
		h := newHandler(ctx, cfg, svc)

		serve := func(method, path, body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(method, path, strings.NewReader(body))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			return w
		}

		convey.Convey("When requesting the business routes", func() {
			convey.Convey("Then each should answer", func() {
				for _, path := range []string{"/", "/health", "/topics", "/samples/matrices", "/metrics", "/openapi.yaml", "/api-docs"} {
					w := serve("GET", path, "")
					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
					convey.So(w.Header().Get("X-Request-ID"), convey.ShouldNotBeEmpty)
				}
			})
		})

		convey.Convey("When solving by sample id", func() {
			w := serve("POST", "/solve", `{"topic":"matrices","sample_id":"mat-1"}`)

			convey.Convey("Then the catalog sample should be solved", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				var body struct {
					Result [][]float64 `json:"result"`
				}
				convey.So(json.Unmarshal(w.Body.Bytes(), &body), convey.ShouldBeNil)
				convey.So(body.Result, convey.ShouldResemble, [][]float64{{4, 4}, {10, 8}})
			})
		})

		convey.Convey("When the body exceeds the configured limit", func() {
			w := serve("POST", "/solve", `{"topic":"calculus","data":{"pad":"`+strings.Repeat("x", 512)+`"}}`)

			convey.Convey("Then it should be rejected", func() {
				convey.So(w.Code, convey.ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When testing system metrics updater", func() {
			convey.Convey("Then it should stop with its context", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
				defer cancel()
				done := make(chan struct{})
				go func() {
					startSystemMetricsUpdater(ctx)
					close(done)
				}()
				convey.So(func() { <-done }, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing service metrics updater", func() {
			svc := startedService()
			defer svc.Stop()

			convey.Convey("Then it should stop with its context", func() {
				ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
				defer cancel()
				done := make(chan struct{})
				go func() {
					startServiceMetricsUpdater(ctx, svc)
					close(done)
				}()
				convey.So(func() { <-done }, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing system metrics update", func() {
			convey.Convey("Then it should update metrics without panicking", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing service metrics update", func() {
			svc := startedService()
			defer svc.Stop()

			convey.Convey("Then the catalog gauges should reflect the service", func() {
				metrics.UpdateCatalogSize(0, 0)
				updateServiceMetrics(svc)
				n, err := testutil.GatherAndCount(metrics.GetRegistry(), "examprep_api_catalog_samples")
				convey.So(err, convey.ShouldBeNil)
				convey.So(n, convey.ShouldEqual, 1)
				convey.So(svc.Stats()["samples"], convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When the service is stopped", func() {
			svc := startedService()
			svc.Stop()

			convey.Convey("Then the metrics update should be a no-op", func() {
				convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
			})
		})
	})
}
