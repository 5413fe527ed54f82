package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"scanvator/src/dispatcher"
	"scanvator/src/types"
)

// InitLogger installs the default slog logger. With a logFile, output goes to both stdout and the file.
// The returned close function releases the file.
func InitLogger(level string, logFile string) (func() error, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	var w io.Writer = os.Stdout
	closeFn := func() error { return nil }
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, file)
		closeFn = file.Close
	}

	slog.SetDefault(slog.New(NewHandler(w, lvl)))
	return closeFn, nil
}

// NewHandler returns a text handler with short timestamps and file:line sources.
func NewHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format("15:04:05"))
				}
			}
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok {
					file := source.File
					if lastSlash := strings.LastIndexByte(file, '/'); lastSlash >= 0 {
						file = file[lastSlash+1:]
					}
					a.Value = slog.StringValue(fmt.Sprintf("%s:%d", file, source.Line))
				}
			}
			return a
		},
	})
}

// FormatStops renders stops as their target floors, pickups marked with a P.
func FormatStops(stops []types.Request) string {
	parts := make([]string, len(stops))
	for i, stop := range stops {
		if stop.IsPickup() {
			parts[i] = fmt.Sprintf("P%d", stop.Target())
		} else {
			parts[i] = fmt.Sprint(stop.Target())
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// FormatStatus is the one-line status shown on the console.
func FormatStatus(status dispatcher.Status) string {
	car := status.Car
	line := fmt.Sprintf("Car %s | Floor: %d | State: %s | Doors: %s | Up: %s | Down: %s",
		status.ID, car.Floor, car.State, car.Door, FormatStops(status.Plan.Up), FormatStops(status.Plan.Down))
	if status.DroppedEvents > 0 {
		line += fmt.Sprintf(" | Dropped events: %d", status.DroppedEvents)
	}
	return line
}
