package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/bankledger/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var levelColors = map[log.Level]lipgloss.AdaptiveColor{
	log.DebugLevel: {Light: "#7E57C2", Dark: "#B39DDB"},
	log.InfoLevel:  {Light: "#04B575", Dark: "#04B575"},
	log.WarnLevel:  {Light: "#C77700", Dark: "#FFB74D"},
	log.ErrorLevel: {Light: "#D32F2F", Dark: "#FF6B6B"},
}

var levelLabels = map[log.Level]string{
	log.DebugLevel: "DBG",
	log.InfoLevel:  "INF",
	log.WarnLevel:  "WRN",
	log.ErrorLevel: "ERR",
}

func loggerStyles() *log.Styles {
	styles := log.DefaultStyles()
	for lvl, color := range levelColors {
		styles.Levels[lvl] = lipgloss.NewStyle().
			SetString(levelLabels[lvl]).
			Bold(true).
			Padding(0, 1).
			Foreground(color)
	}
	keyColor := levelColors[log.DebugLevel]
	for _, key := range []string{"account_id", "customer_id", "from", "to", "reference"} {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(keyColor)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	styles.Keys["amount"] = lipgloss.NewStyle().Foreground(levelColors[log.InfoLevel])
	styles.Values["amount"] = lipgloss.NewStyle().Bold(true)
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(levelColors[log.ErrorLevel])
	styles.Values["error"] = lipgloss.NewStyle().Bold(true)
	return styles
}

// newLogger builds an slog.Logger backed by a charmbracelet/log handler writing to w.
func newLogger(w io.Writer, cfg *config.Log) *slog.Logger {
	formatter := log.TextFormatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	handler := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	handler.SetStyles(loggerStyles())
	return slog.New(handler)
}

// SetupLogger creates the process logger and installs it as the slog default.
func SetupLogger(cfg *config.Log) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}
