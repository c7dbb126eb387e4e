package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"navtrail/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envServer         = "NAVTRAIL_SERVER"
	envConfigFile     = "NAVTRAIL_CONFIG"
	envWidth          = "NAVTRAIL_WIDTH"
	envHeight         = "NAVTRAIL_HEIGHT"
	envShowFooter     = "NAVTRAIL_FOOTER"
	envTrace          = "NAVTRAIL_TRACE"
	envLogFile        = "NAVTRAIL_LOG_FILE"
	envMaxDepth       = "NAVTRAIL_MAX_DEPTH"
	envDebounceMs     = "NAVTRAIL_DEBOUNCE_MS"
	envFastDebounceMs = "NAVTRAIL_FAST_DEBOUNCE_MS"
	envPathMode       = "NAVTRAIL_PATH_MODE"
	envShowArity      = "NAVTRAIL_SHOW_ARITY"
	envShowModulePath = "NAVTRAIL_SHOW_MODULE_PATH"
	envPollMs         = "NAVTRAIL_POLL_MS"
)

const (
	defaultMaxDepth       = 20
	defaultDebounceMs     = 300
	defaultFastDebounceMs = 80
	defaultPollMs         = 200
	defaultPathMode       = "filename"
)

// fileConfig mirrors the optional TOML config file. File values sit between
// built-in defaults and environment/flag overrides.
type fileConfig struct {
	Server         *string `toml:"server"`
	MaxDepth       *int    `toml:"max_depth"`
	DebounceMs     *int    `toml:"debounce_ms"`
	FastDebounceMs *int    `toml:"fast_debounce_ms"`
	PathMode       *string `toml:"path_mode"`
	ShowArity      *bool   `toml:"show_arity"`
	ShowModulePath *bool   `toml:"show_module_path"`
	PollMs         *int    `toml:"poll_ms"`

	Panel struct {
		Width  *int  `toml:"width"`
		Height *int  `toml:"height"`
		Footer *bool `toml:"footer"`
	} `toml:"panel"`

	Logging struct {
		File  *string `toml:"file"`
		Trace *bool   `toml:"trace"`
	} `toml:"logging"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	file, err := loadFileConfig(configFilePath(args, env))
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("navtrail", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configFile := fs.String("config", envOrDefault(env, envConfigFile, ""), "path to a TOML config file")
	server := fs.String("server", envOrDefault(env, envServer, fileStr(file.Server, "")), "Neovim server address (defaults to $NVIM)")
	width := fs.Int("width", envOrInt(env, envWidth, fileInt(file.Panel.Width, 0)), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, fileInt(file.Panel.Height, 0)), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, fileBool(file.Panel.Footer, false)), "enable footer hint row (disabled by default)")
	maxDepth := fs.Int("max-depth", envOrInt(env, envMaxDepth, fileInt(file.MaxDepth, defaultMaxDepth)), "maximum rendered history depth per stack")
	debounceMs := fs.Int("debounce-ms", envOrInt(env, envDebounceMs, fileInt(file.DebounceMs, defaultDebounceMs)), "quiet period before processing ambient editor events")
	fastDebounceMs := fs.Int("fast-debounce-ms", envOrInt(env, envFastDebounceMs, fileInt(file.FastDebounceMs, defaultFastDebounceMs)), "quiet period after an explicit refresh")
	pathMode := fs.String("path-mode", envOrDefault(env, envPathMode, fileStr(file.PathMode, defaultPathMode)), "root path display: relative, absolute, or filename")
	showArity := fs.Bool("show-arity", envOrBool(env, envShowArity, fileBool(file.ShowArity, true)), "keep /arity suffixes on symbol names")
	showModulePath := fs.Bool("show-module-path", envOrBool(env, envShowModulePath, fileBool(file.ShowModulePath, true)), "qualify symbols with inferred module names")
	pollMs := fs.Int("poll-ms", envOrInt(env, envPollMs, fileInt(file.PollMs, defaultPollMs)), "editor context poll interval")
	trace := fs.Bool("trace", envOrBool(env, envTrace, fileBool(file.Logging.Trace, false)), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, fileStr(file.Logging.File, "")), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}
	if *maxDepth < 1 {
		return Config{}, fmt.Errorf("max-depth must be >= 1 (got %d)", *maxDepth)
	}
	if *debounceMs < 1 || *fastDebounceMs < 1 {
		return Config{}, fmt.Errorf("debounce windows must be >= 1ms (got %d/%d)", *debounceMs, *fastDebounceMs)
	}
	if *pollMs < 1 {
		return Config{}, fmt.Errorf("poll-ms must be >= 1 (got %d)", *pollMs)
	}

	cfg := Config{
		App: app.Config{
			Server:         *server,
			Width:          *width,
			Height:         *height,
			ShowFooter:     *footer,
			MaxDepth:       *maxDepth,
			DebounceMs:     *debounceMs,
			FastDebounceMs: *fastDebounceMs,
			PathMode:       *pathMode,
			ShowArity:      *showArity,
			ShowModulePath: *showModulePath,
			PollMs:         *pollMs,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"config":         *configFile,
			"server":         *server,
			"width":          strconv.Itoa(*width),
			"height":         strconv.Itoa(*height),
			"footer":         strconv.FormatBool(*footer),
			"maxDepth":       strconv.Itoa(*maxDepth),
			"debounceMs":     strconv.Itoa(*debounceMs),
			"fastDebounceMs": strconv.Itoa(*fastDebounceMs),
			"pathMode":       *pathMode,
			"showArity":      strconv.FormatBool(*showArity),
			"showModulePath": strconv.FormatBool(*showModulePath),
			"pollMs":         strconv.Itoa(*pollMs),
			"logFile":        *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// configFilePath pre-scans the raw arguments for --config so the file layer
// can load before the flag set parses.
func configFilePath(args []string, env map[string]string) string {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		for _, prefix := range []string{"--config=", "-config="} {
			if strings.HasPrefix(arg, prefix) {
				return arg[len(prefix):]
			}
		}
		if arg == "--config" || arg == "-config" {
			if i+1 < len(args) {
				return args[i+1]
			}
			return ""
		}
	}
	return envOrDefault(env, envConfigFile, "")
}

func loadFileConfig(path string) (fileConfig, error) {
	var file fileConfig
	if strings.TrimSpace(path) == "" {
		return file, nil
	}
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return fileConfig{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return file, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func fileStr(v *string, fallback string) string {
	if v != nil {
		return *v
	}
	return fallback
}

func fileInt(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}

func fileBool(v *bool, fallback bool) bool {
	if v != nil {
		return *v
	}
	return fallback
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	switch cfg.App.PathMode {
	case "relative", "absolute", "filename":
		return nil
	default:
		return fmt.Errorf("path-mode must be relative, absolute, or filename (got %q)", cfg.App.PathMode)
	}
}
