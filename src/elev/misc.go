package elev

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"monovator/src/types"
)

// InitLogger installs the default slog logger. Output goes to stdout and, if
// logFile is set, to that file as well. The returned func closes the file.
func InitLogger(level slog.Level, logFile string) (func() error, error) {
	var out io.Writer = os.Stdout
	closeFn := func() error { return nil }
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return closeFn, fmt.Errorf("open log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, file)
		closeFn = file.Close
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
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

	slog.SetDefault(slog.New(handler))
	return closeFn, nil
}

// ParseLevel accepts debug, info, warn and error. Anything else is info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// FormatState renders the state on one line.
func FormatState(s types.CarState) string {
	target := "none"
	if s.TargetFloor != nil {
		target = fmt.Sprint(*s.TargetFloor)
	}
	return fmt.Sprintf("floor=%d pos=%.2f dir=%v %v target=%s up=%v down=%v door=%t canMove=%t",
		s.Floor, s.Position, s.Dir, s.Behaviour, target, s.UpQueue, s.DownQueue, s.DoorOpen, s.CanMove)
}
