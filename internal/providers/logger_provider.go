package providers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"nightlock/internal/structures"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
)

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

type LogProvider struct {
	loggers map[TypeEnum]*zerolog.Logger
	files   []*os.File
}

var logFileNames = map[TypeEnum]string{
	TypeApp:  "app.log",
	TypeGet:  "access_get.log",
	TypePost: "access_post.log",
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", conf.Logger.Level, err)
	}

	lp := &LogProvider{loggers: make(map[TypeEnum]*zerolog.Logger)}
	for t, name := range logFileNames {
		path := filepath.Join(conf.Logger.Dir, name)
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, os.FileMode(conf.Logger.Mode))
		if err != nil {
			lp.Close()
			return nil, fmt.Errorf("cannot open log file %s: %w", path, err)
		}
		lp.files = append(lp.files, file)

		var out io.Writer = file
		if conf.Debug {
			out = zerolog.MultiLevelWriter(file, zerolog.ConsoleWriter{Out: os.Stderr})
		}
		l := zerolog.New(out).Level(level).With().Timestamp().Logger()
		lp.loggers[t] = &l
	}

	return lp, nil
}

func GetLogTypeByRequestType(method string) TypeEnum {
	if method == http.MethodPost {
		return TypePost
	}
	return TypeGet
}

func (lp *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	lp.loggers[t].Error().Msgf(format, args...)
}

func (lp *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	lp.loggers[t].Warn().Msgf(format, args...)
}

func (lp *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	lp.loggers[t].Debug().Msgf(format, args...)
}

func (lp *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	lp.loggers[t].Info().Msgf(format, args...)
}

func (lp *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	lp.loggers[t].Fatal().Msgf(format, args...)
}

func (lp *LogProvider) Close() {
	for _, f := range lp.files {
		_ = f.Close()
	}
}
