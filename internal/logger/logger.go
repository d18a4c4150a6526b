package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeCommand LogType = "CMD"
	TypeDB      LogType = "DB"
	TypeSystem  LogType = "SYS"
	TypeEngine  LogType = "ENG"
	TypeError   LogType = "ERR"
)

type Options struct {
	Level  slog.Level
	Format string
	Color  bool
	Writer io.Writer
}

// New returns the handler for the configured format: "json" or the colored text handler.
func New(opts Options) slog.Handler {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}
	if strings.EqualFold(opts.Format, "json") {
		return slog.NewJSONHandler(opts.Writer, &slog.HandlerOptions{Level: opts.Level})
	}
	return NewHandler(opts)
}

type CustomHandler struct {
	opts      *slog.HandlerOptions
	out       io.Writer
	mu        *sync.Mutex
	color     bool
	startTime time.Time
	attrs     []slog.Attr
	groups    []string
}

func NewHandler(opts Options) *CustomHandler {
	if opts.Writer == nil {
		opts.Writer = os.Stderr
	}
	return &CustomHandler{
		opts:      &slog.HandlerOptions{Level: opts.Level},
		out:       opts.Writer,
		mu:        &sync.Mutex{},
		color:     opts.Color,
		startTime: time.Now(),
	}
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	levelColor, levelText := levelStyle(r.Level)

	message := r.Message
	if r.Level >= slog.LevelError {
		if loc := errorLocation(&r); loc != "" {
			message = fmt.Sprintf("%s (%s)", message, loc)
		}
	}
	if status := attrString(&r, "status"); status != "" {
		message = fmt.Sprintf("%s [Status: %s]", message, status)
	}

	var b strings.Builder
	prefix := strings.Join(h.groups, ".")
	if prefix != "" {
		prefix += "."
	}
	for _, a := range h.attrs {
		writeAttr(&b, prefix, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, prefix, a)
		return true
	})

	timestamp := r.Time
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var line string
	if h.color {
		line = fmt.Sprintf("%s[packs] [%s] [%s%s%s] [%s] %s%s%s\n",
			colorWhite, timestamp.Format("15:04:05"),
			levelColor, levelText, colorWhite,
			h.logType(&r), message, b.String(), colorReset)
	} else {
		line = fmt.Sprintf("[packs] [%s] [%s] [%s] %s%s\n",
			timestamp.Format("15:04:05"), levelText, h.logType(&r), message, b.String())
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, line)
	return err
}

func levelStyle(level slog.Level) (string, string) {
	switch {
	case level >= slog.LevelError:
		return colorRed, "ERROR"
	case level >= slog.LevelWarn:
		return colorYellow, "WARN"
	case level >= slog.LevelInfo:
		return colorGreen, "INFO"
	default:
		return colorPurple, "DEBUG"
	}
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	if isInternalAttr(a.Key) || a.Equal(slog.Attr{}) {
		return
	}
	fmt.Fprintf(b, " %s%s=%v", prefix, a.Key, a.Value.Resolve())
}

func (h *CustomHandler) logType(r *slog.Record) LogType {
	t := attrString(r, "type")
	if t == "" {
		for _, a := range h.attrs {
			if a.Key == "type" {
				t = a.Value.String()
			}
		}
	}
	switch t {
	case "cmd":
		return TypeCommand
	case "db":
		return TypeDB
	case "engine":
		return TypeEngine
	case "error":
		return TypeError
	default:
		return TypeSystem
	}
}

func isInternalAttr(key string) bool {
	switch key {
	case "type", "status", "error_location":
		return true
	}
	return false
}

func attrString(r *slog.Record, key string) string {
	var v string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			v = a.Value.String()
			return false
		}
		return true
	})
	return v
}

func errorLocation(r *slog.Record) string {
	if loc := attrString(r, "error_location"); loc != "" {
		return loc
	}
	if r.PC == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	f, _ := frames.Next()
	if f.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
}
