package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// consoleHandler writes one header line per record followed by an indented
// field list:
//
//	2026-01-02 15:04:05 INFO [batch] 3/9 tablet-new.webp – converted
//	    - Output Size: 800x600
type consoleHandler struct {
	mu        *sync.Mutex
	out       io.Writer
	level     *slog.LevelVar
	addSource bool
	prefix    string
	bound     []field
}

type field struct {
	key   string
	value slog.Value
}

// consoleLine collects the pieces of a record before rendering.
type consoleLine struct {
	component string
	position  string
	entry     string
	fields    []field
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, out: w, level: lvl, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.bound = appendFields(append([]field(nil), h.bound...), h.prefix, attrs)
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if !h.Enabled(context.Background(), record.Level) {
		return nil
	}

	all := make([]field, len(h.bound), len(h.bound)+record.NumAttrs())
	copy(all, h.bound)
	record.Attrs(func(attr slog.Attr) bool {
		all = appendFields(all, h.prefix, []slog.Attr{attr})
		return true
	})
	line := splitHeader(lastWins(all), record.Level)

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	msg := strings.TrimSpace(record.Message)
	if msg == "" {
		msg = "(no message)"
	}

	var b strings.Builder
	b.WriteString(formatTimestamp(ts))
	b.WriteString(" " + levelLabel(record.Level))
	for _, part := range []string{bracket(line.component), line.position, line.entry} {
		if part != "" {
			b.WriteString(" " + part)
		}
	}
	b.WriteString(" – " + msg)
	if h.addSource {
		if src := record.Source(); src != nil {
			fmt.Fprintf(&b, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	b.WriteByte('\n')
	for _, f := range line.fields {
		fmt.Fprintf(&b, "    - %s: %s\n", displayLabel(f.key), formatValueForKey(f.key, f.value))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

// splitHeader pulls the header fields out of fs. The run id only appears in
// debug output.
func splitHeader(fs []field, level slog.Level) consoleLine {
	var line consoleLine
	for _, f := range fs {
		switch f.key {
		case FieldComponent:
			line.component = attrString(f.value)
		case FieldPosition:
			line.position = attrString(f.value)
		case FieldEntry:
			line.entry = attrString(f.value)
		case FieldRunID:
			if level < slog.LevelInfo {
				line.fields = append(line.fields, f)
			}
		default:
			line.fields = append(line.fields, f)
		}
	}
	return line
}

func bracket(s string) string {
	if s == "" {
		return ""
	}
	return "[" + s + "]"
}

// appendFields flattens groups into dotted keys.
func appendFields(dst []field, prefix string, attrs []slog.Attr) []field {
	for _, attr := range attrs {
		if attr.Equal(slog.Attr{}) {
			continue
		}
		v := attr.Value.Resolve()
		if v.Kind() == slog.KindGroup {
			p := prefix
			if attr.Key != "" {
				p += attr.Key + "."
			}
			dst = appendFields(dst, p, v.Group())
			continue
		}
		if attr.Key == "" {
			continue
		}
		dst = append(dst, field{key: prefix + attr.Key, value: v})
	}
	return dst
}

// lastWins drops earlier duplicates of a key, keeping the first position
// and the latest value.
func lastWins(fs []field) []field {
	if len(fs) < 2 {
		return fs
	}
	index := make(map[string]int, len(fs))
	out := fs[:0:0]
	for _, f := range fs {
		if i, ok := index[f.key]; ok {
			out[i].value = f.value
			continue
		}
		index[f.key] = len(out)
		out = append(out, f)
	}
	return out
}

func formatValueForKey(key string, v slog.Value) string {
	switch {
	case strings.HasSuffix(key, "_bytes") && v.Kind() == slog.KindInt64 && v.Int64() >= 0:
		return humanize.IBytes(uint64(v.Int64()))
	case strings.HasSuffix(key, "_bytes") && v.Kind() == slog.KindUint64:
		return humanize.IBytes(v.Uint64())
	case v.Kind() == slog.KindBool:
		if v.Bool() {
			return "yes"
		}
		return "no"
	}
	return formatValue(v)
}

func displayLabel(key string) string {
	switch key {
	case FieldRunID:
		return "Run"
	case "output_bytes":
		return "Output"
	case "input_bytes":
		return "Input"
	}
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' || r == '.' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	}
	return "DEBUG"
}
