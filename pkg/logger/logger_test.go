package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initializing with defaults", func() {
			err := Init()

			Convey("Then a logger should be available", func() {
				So(err, ShouldBeNil)
				So(Get(), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When initializing with an unknown format", func() {
			err := Init(WithFormat("xml"))

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(Init(WithFormat(FormatJSON), WithWriter(&buf)), ShouldBeNil)
		ctx := context.Background()

		Convey("When logging with fields", func() {
			Get().Info(ctx, "solved", String("topic", "calculus"), Int("steps", 4), Error(errors.New("boom")))

			Convey("Then the record should carry the message, fields and source", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "solved")
				So(rec["level"], ShouldEqual, "INFO")
				So(rec["topic"], ShouldEqual, "calculus")
				So(rec["steps"], ShouldEqual, 4.0)
				So(rec["error"], ShouldEqual, "boom")
				So(rec["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the context carries a request id", func() {
			Get().Warn(WithRequestID(ctx, "req-1"), "slow")

			Convey("Then the id should be attached", func() {
				So(buf.String(), ShouldContainSubstring, `"request_id":"req-1"`)
			})
		})

		Convey("When using With and Named", func() {
			Named("api").With(String("component", "solve")).Info(ctx, "hello", String("k", "v"))

			Convey("Then bound fields should be present", func() {
				So(buf.String(), ShouldContainSubstring, `"component":"solve"`)
				So(buf.String(), ShouldContainSubstring, `"api":{`)
			})
		})

		Convey("When logging below the configured level", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			Get().Info(ctx, "hidden")
			Get().Error(ctx, "shown")

			Convey("Then only the enabled record should be written", func() {
				out := buf.String()
				So(out, ShouldNotContainSubstring, "hidden")
				So(out, ShouldContainSubstring, "shown")
				So(strings.Count(out, "\n"), ShouldEqual, 1)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		So(Init(WithWriter(&bytes.Buffer{})), ShouldBeNil)

		Convey("When setting known levels", func() {
			Convey("Then they should be applied", func() {
				So(SetLevelString("DEBUG"), ShouldBeNil)
				So(levelVar.Level(), ShouldEqual, slog.LevelDebug)
				So(SetLevelString(" warning "), ShouldBeNil)
				So(levelVar.Level(), ShouldEqual, slog.LevelWarn)
				So(SetLevelString(""), ShouldBeNil)
				So(levelVar.Level(), ShouldEqual, slog.LevelInfo)
			})
		})

		Convey("When setting an unknown level", func() {
			Convey("Then it should fail", func() {
				So(SetLevelString("verbose"), ShouldNotBeNil)
			})
		})
	})
}
