// Package diagnostics turns runtime conditions into structured records and
// writes them through zerolog.
package diagnostics

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/coreman2200/proxiglow/internal/sensor"
)

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// Emit logs d at the level matching its severity.
func Emit(log zerolog.Logger, d Diagnostic) {
	var e *zerolog.Event
	switch d.Severity {
	case Err:
		e = log.Error()
	case Warn:
		e = log.Warn()
	default:
		e = log.Info()
	}
	e = e.Str("code", d.Code)
	if d.Detail != "" {
		e = e.Str("detail", d.Detail)
	}
	if len(d.LikelyCauses) > 0 {
		e = e.Strs("likely_causes", d.LikelyCauses)
	}
	if len(d.SuggestedFixes) > 0 {
		e = e.Strs("suggested_fixes", d.SuggestedFixes)
	}
	if len(d.Evidence) > 0 {
		e = e.Fields(d.Evidence)
	}
	e.Msg(d.Summary)
}

type stacker interface{ Stack() []byte }

// FromError classifies a fatal error for the crash report.
func FromError(err error) Diagnostic {
	var sf *sensor.SensorFaultError
	var st stacker
	switch {
	case err == nil:
		return Diagnostic{Severity: Info, Code: "ok", Summary: "no error"}
	case errors.Is(err, context.Canceled):
		return Diagnostic{Severity: Info, Code: "stopped", Summary: "stopped on request"}
	case errors.As(err, &sf):
		return Diagnostic{
			Severity: Err,
			Code:     "sensor_fault",
			Summary:  "proximity sensor " + sf.Channel.String() + " failed",
			Detail:   err.Error(),
			LikelyCauses: []string{
				"loose SDA/SCL wiring or missing pull-ups",
				"both sensors answering on the same I2C address",
			},
			SuggestedFixes: []string{
				"check the sensor with i2cdetect",
				"set sensors.x_addr and sensors.y_addr to the addresses on the bus",
			},
			Evidence: map[string]any{"channel": sf.Channel.String(), "value": sf.Value},
		}
	case errors.As(err, &st):
		return Diagnostic{
			Severity: Err,
			Code:     "panic",
			Summary:  "unexpected panic in the render loop",
			Detail:   err.Error(),
			Evidence: map[string]any{"stack": string(st.Stack())},
		}
	default:
		return Diagnostic{Severity: Err, Code: "fatal", Summary: "unhandled error", Detail: err.Error()}
	}
}
