// Package logger builds the catalog's slog logger: a compact console format
// for terminals and JSON for production.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/errors"
)

// Output formats.
const (
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// Attribute keys shared by every catalog component.
const (
	KeyComponent = "component"
	KeyOperation = "operation"
	KeyCode      = "code"
	KeyError     = "error"
)

// Logger wraps slog.Logger with catalog helpers.
type Logger struct {
	*slog.Logger
}

// Config holds logger configuration.
type Config struct {
	Writer      io.Writer // Defaults to stderr; stdout is reserved for command output
	Format      string    // FormatJSON or FormatPretty; empty picks by Environment
	Environment string
	Level       slog.Level
	NoColor     bool
}

// New creates a logger for cfg.
func New(cfg Config) *Logger {
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	format := cfg.Format
	if format == "" {
		format = FormatPretty
		if cfg.Environment == "production" {
			format = FormatJSON
		}
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.Level})
	} else {
		handler = NewConsoleHandler(w, cfg.Level, !cfg.NoColor)
	}

	return &Logger{Logger: slog.New(handler)}
}

// ParseLevel converts a level name to slog.Level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	if strings.EqualFold(level, "warning") {
		return slog.LevelWarn
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// ErrorArgs returns the log arguments describing err: its message and its
// catalog error code.
func ErrorArgs(err error) []any {
	return []any{KeyCode, string(errors.CodeOf(err)), KeyError, err.Error()}
}

// WithError tags every record with err and its error code.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.With(ErrorArgs(err)...)}
}

// WithComponent tags every record with the emitting component.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{Logger: l.With(KeyComponent, name)}
}

const (
	ansiReset  = "\033[0m"
	ansiDim    = "\033[2m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// ConsoleHandler writes one line per record:
//
//	15:04:05 WRN [catalog] catalog write rejected operation=add_rating code=DUPLICATE_RATING
//
// The component attribute becomes the bracketed tag; everything else
// follows as key=value pairs.
type ConsoleHandler struct {
	level     slog.Leveler
	color     bool
	component string
	attrs     []slog.Attr
	prefix    string // group path, "a.b."

	mu *sync.Mutex
	w  io.Writer
}

// NewConsoleHandler creates a console handler writing to w.
func NewConsoleHandler(w io.Writer, level slog.Leveler, color bool) *ConsoleHandler {
	return &ConsoleHandler{level: level, color: color, mu: &sync.Mutex{}, w: w}
}

// Enabled implements slog.Handler.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	h.paint(&sb, ansiDim, r.Time.Format(time.TimeOnly))
	sb.WriteByte(' ')
	h.paint(&sb, levelColor(r.Level), levelTag(r.Level))

	component := h.component
	rest := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == KeyComponent && h.prefix == "" {
			component = a.Value.String()
		} else {
			rest = append(rest, a)
		}
		return true
	})

	if component != "" {
		sb.WriteString(" [")
		sb.WriteString(component)
		sb.WriteByte(']')
	}
	sb.WriteByte(' ')
	sb.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(&sb, "", a)
	}
	for _, a := range rest {
		h.writeAttr(&sb, h.prefix, a)
	}
	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

func (h *ConsoleHandler) writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	sb.WriteByte(' ')
	key := prefix + a.Key
	if a.Key == KeyCode || a.Key == KeyError {
		h.paint(sb, ansiRed, key+"="+formatValue(a.Value))
		return
	}
	h.paint(sb, ansiCyan, key+"=")
	sb.WriteString(formatValue(a.Value))
}

func (h *ConsoleHandler) paint(sb *strings.Builder, color, s string) {
	if h.color {
		sb.WriteString(color)
		sb.WriteString(s)
		sb.WriteString(ansiReset)
		return
	}
	sb.WriteString(s)
}

// WithAttrs implements slog.Handler. Attributes are resolved against the
// current group path so later groups do not rename them.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append([]slog.Attr(nil), h.attrs...)
	for _, a := range attrs {
		if a.Key == KeyComponent && h.prefix == "" {
			next.component = a.Value.String()
			continue
		}
		a.Key = h.prefix + a.Key
		next.attrs = append(next.attrs, a)
	}
	return &next
}

// WithGroup implements slog.Handler.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func levelTag(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERR"
	case level >= slog.LevelWarn:
		return "WRN"
	case level >= slog.LevelInfo:
		return "INF"
	default:
		return "DBG"
	}
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansiRed
	case level >= slog.LevelWarn:
		return ansiYellow
	default:
		return ansiDim
	}
}

// formatValue quotes strings containing spaces so product names and
// comments stay readable as one value.
func formatValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	case slog.KindString:
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"=") {
			return strconv.Quote(s)
		}
		return s
	default:
		return v.String()
	}
}
