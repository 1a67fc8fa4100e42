package cmd

import (
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "refine"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."
	envPrefix        = "REFINE"
)

// Flag names. Root flags double as their config key unless bound otherwise.
const (
	outputFlagName      = "output"
	noCacheFlagName     = "no-cache"
	excludeFlagName     = "exclude"
	verboseFlagName     = "verbose"
	logFileFlagName     = "log-file"
	runParallelFlagName = "parallel"
	runFailFastFlagName = "fail-fast"
)

// Config keys as they appear in refine.yaml.
const (
	excludeConfigKey     = "paths.exclude"
	runParallelConfigKey = "run.parallel"
	runFailFastConfigKey = "run.fail_fast"
	runSpillDirConfigKey = "run.spill_dir"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"
)

const (
	defaultReportsDir   = ".refine-reports"
	defaultNoCache      = false
	defaultRunParallel  = 1
	defaultScenarioPath = "./..."
	defaultLogFilename  = ".refine.log"
)

// configDefaults seeds viper before refine.yaml and REFINE_* variables are read.
var configDefaults = map[string]any{
	configVersionKey: currentConfigVersion,
	outputFlagName:   defaultReportsDir,
	noCacheFlagName:  defaultNoCache,
	excludeConfigKey: []string{},

	runParallelConfigKey: defaultRunParallel,
	runFailFastConfigKey: false,
	runSpillDirConfigKey: "",

	logFilenameKey:   defaultLogFilename,
	logLevelKey:      slog.LevelInfo.String(),
	logVerboseKey:    false,
	logMaxSizeKey:    10,
	logMaxBackupsKey: 3,
	logMaxAgeKey:     28,
	logCompressKey:   true,
}

var globalLogger *slog.Logger

func init() {
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	for key, value := range configDefaults {
		viper.SetDefault(key, value)
	}

	// A missing or unreadable refine.yaml leaves the defaults in place.
	_ = viper.ReadInConfig()
}

// runSettings is the effective configuration of one run invocation.
type runSettings struct {
	Parallel int
	FailFast bool
	NoCache  bool
	SpillDir string
	Reports  string
	Exclude  []string
}

func loadRunSettings() runSettings {
	return runSettings{
		Parallel: viper.GetInt(runParallelConfigKey),
		FailFast: viper.GetBool(runFailFastConfigKey),
		NoCache:  viper.GetBool(noCacheFlagName),
		SpillDir: viper.GetString(runSpillDirConfigKey),
		Reports:  viper.GetString(outputFlagName),
		Exclude:  viper.GetStringSlice(excludeConfigKey),
	}
}

// parseSlogLevel accepts slog's own level names ("debug", "INFO+2"), the
// "warning" alias and bare numbers. Anything else yields fallback.
func parseSlogLevel(value string, fallback slog.Level) slog.Level {
	value = strings.TrimSpace(value)

	switch strings.ToLower(value) {
	case "":
		return fallback
	case "warning":
		return slog.LevelWarn
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err == nil {
		return level
	}

	if n, err := strconv.Atoi(value); err == nil {
		return slog.Level(n)
	}

	return fallback
}

// configureLogger sends slog output to a rotating file under log.*.
// verbose overrides log.level with Debug.
func configureLogger(logPath string, verbose bool) {
	level := slog.LevelDebug
	if !verbose {
		level = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	rotating := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	globalLogger = slog.New(slog.NewTextHandler(rotating, &slog.HandlerOptions{AddSource: true, Level: level}))
	slog.SetDefault(globalLogger)
}
