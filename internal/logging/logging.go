package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Logger provides topic-gated debug logging with minimal overhead when disabled.
type Logger struct {
	topic   string
	enabled bool
}

var enabledTopics = make(map[string]bool)

func init() {
	Configure(os.Getenv("DEBUG_TOPICS"))
}

// Configure parses a topic list such as "engine,sequence" or "all".
// Enabling any topic switches the default slog handler to DEBUG level.
func Configure(topics string) {
	enabledTopics = make(map[string]bool)
	topics = strings.TrimSpace(topics)
	if topics == "" {
		return
	}

	if topics == "all" {
		enabledTopics["*"] = true
		configureSlog()
		return
	}

	for _, topic := range strings.Split(topics, ",") {
		topic = strings.TrimSpace(topic)
		if topic != "" {
			enabledTopics[topic] = true
		}
	}

	if len(enabledTopics) > 0 {
		configureSlog()
	}
}

func configureSlog() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(handler))
}

// New creates a topic logger.
// Usage: var log = logging.New("engine")
//
// The enabled flag is captured here, so package-level loggers reflect
// DEBUG_TOPICS as read at process start.
func New(topic string) *Logger {
	return &Logger{
		topic:   topic,
		enabled: enabledTopics["*"] || enabledTopics[topic],
	}
}

func (l *Logger) Debug(msg string, args ...any) {
	if !l.enabled {
		return
	}
	slog.Debug(msg, l.with(args)...)
}

func (l *Logger) Info(msg string, args ...any) {
	if !l.enabled {
		return
	}
	slog.Info(msg, l.with(args)...)
}

// Warn is never gated by topic.
func (l *Logger) Warn(msg string, args ...any) {
	slog.Warn(msg, l.with(args)...)
}

// Enabled is useful around expensive argument construction.
func (l *Logger) Enabled() bool {
	return l.enabled
}

func (l *Logger) with(args []any) []any {
	return append([]any{"topic", l.topic}, args...)
}
