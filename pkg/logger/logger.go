package logx

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Debug        bool   `split_words:"true" default:"false"`
	PrettyFormat bool   `split_words:"true" default:"false"`
	File         string `split_words:"true"`
	FileMaxSize  int    `split_words:"true" default:"10"`
}

var DefaultConfig = &Config{
	Debug:        false,
	PrettyFormat: false,
}

func safe(opts ...Config) *Config {
	if len(opts) == 0 {
		return DefaultConfig
	}
	return &opts[0]
}

// Init replaces the global logger. Output goes to stderr, and additionally to
// a rotated file when File is set; stdout is left to command output.
func Init(opts ...Config) {
	conf := safe(opts...)
	log.Logger = New(os.Stderr, *conf)
}

func New(w io.Writer, conf Config) zerolog.Logger {
	out := w
	if conf.PrettyFormat {
		out = zerolog.ConsoleWriter{Out: w}
	}
	if path := strings.TrimSpace(conf.File); path != "" {
		maxSize := conf.FileMaxSize
		if maxSize <= 0 {
			maxSize = 10
		}
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSize,
			MaxBackups: 3,
			Compress:   true,
		})
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	if conf.Debug {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	return logger.With().Caller().Stack().Logger()
}
