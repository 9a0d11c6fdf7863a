package stencil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Gouterman/stencil/data"
	"github.com/Gouterman/stencil/log"
	"github.com/joho/godotenv"
)

const (
	EnvRootDir       = "STENCIL_ROOT_DIR"
	EnvLogLevel      = "STENCIL_LOG_LEVEL"
	EnvLogFile       = "STENCIL_LOG_FILE"
	EnvOutputTargets = "STENCIL_OUTPUT_TARGETS"
)

// LoadEnv reads the STENCIL_* variables and turns them into options. Values
// of the process environment win over values of the .env files. Missing
// files are skipped; without files ".env" is tried.
func LoadEnv(files ...string) ([]CompilerOption, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	values := make(map[string]string)
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		read, err := godotenv.Read(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file '%s': %w", file, err)
		}
		for key, value := range read {
			if _, exists := values[key]; !exists {
				values[key] = value
			}
		}
	}

	lookup := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(value)
		}
		return strings.TrimSpace(values[key])
	}

	var opts []CompilerOption
	if rootDir := lookup(EnvRootDir); rootDir != "" {
		opts = append(opts, WithRootDir(rootDir))
	}
	if raw := lookup(EnvLogLevel); raw != "" {
		level, err := log.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", data.ErrInvalid, EnvLogLevel, err)
		}
		opts = append(opts, WithLogLevel(level))
	}
	if logFile := lookup(EnvLogFile); logFile != "" {
		opts = append(opts, WithLogFile(logFile))
	}
	if raw := lookup(EnvOutputTargets); raw != "" {
		targets, err := parseOutputTargets(raw)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithOutputTargets(targets...))
	}

	return opts, nil
}

func parseOutputTargets(raw string) ([]data.OutputTarget, error) {
	var targets []data.OutputTarget
	for _, part := range strings.Split(raw, ",") {
		targetType := data.OutputTargetType(strings.ToLower(strings.TrimSpace(part)))
		switch targetType {
		case "":
			continue
		case data.OutputTargetWWW, data.OutputTargetDist, data.OutputTargetDocs, data.OutputTargetDocsJSON, data.OutputTargetDocsAPI:
			targets = append(targets, data.OutputTarget{Type: targetType})
		default:
			return nil, fmt.Errorf("%w: %s: unknown output target '%s'", data.ErrInvalid, EnvOutputTargets, targetType)
		}
	}

	return targets, nil
}
