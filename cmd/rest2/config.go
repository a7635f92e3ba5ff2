package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	rest2 "github.com/myxu95/TakeA-REST2"
	"github.com/myxu95/TakeA-REST2/ladder"
)

const (
	configFileName = "rest2.yaml"

	tMinKey     = "t_min"
	tMaxKey     = "t_max"
	replicasKey = "n_replicas"
	replexKey   = "replex"
	methodKey   = "scaling_method"

	targetKey    = "selection.target"
	cutoffKey    = "selection.cutoff"
	occupancyKey = "selection.occupancy"
	moleculeKey  = "selection.molecule"

	structureKey  = "files.structure"
	trajectoryKey = "files.trajectory"
	topologyKey   = "files.topology"
	tprKey        = "files.tpr"
	plumedKey     = "files.plumed"
	mdpKey        = "files.mdp"

	outputDirKey = "output.dir"

	gmxCommandKey = "gromacs.command"
	mpiCommandKey = "gromacs.mpi_command"
	nstepsKey     = "gromacs.nsteps"

	envPrefix = "REST2"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename = ".rest2.log"
)

// Ladder defaults shared by the viper config and the ladder command's
// flags. Flag registration happens during package variable init, before
// the viper defaults below are set, so the flags cannot read them back
// from viper.
const (
	defaultTMin      = 300.0
	defaultTMax      = 340.0
	defaultReplicas  = 8
	defaultReplex    = 200
	defaultOutputDir = "rest2_output"
)

// Config is the complete, validated run configuration. Every recognized
// option appears here with its default set in init below, nothing is
// merged from a hidden template at lookup time.
type Config struct {
	TMin     float64
	TMax     float64
	Replicas int
	Replex   int
	Method   string

	Target    string  //selection query for the tempered molecule
	Cutoff    float64 //Angstrom
	Occupancy float64
	Molecule  string  //moleculetype to annotate, first one if empty

	Structure  string
	Trajectory string
	Topology   string
	TPR        string
	Plumed     string
	MDP        string

	OutputDir  string
	GmxCommand string
	MpiCommand string
	Nsteps     int
}

// LoadOutcome says what LoadConfig actually did. A written template is not
// an error, but it is not a loaded config either.
type LoadOutcome int

const (
	// Loaded means the config file existed and validated.
	Loaded LoadOutcome = iota
	// TemplateWritten means no config file existed, so a template with the
	// defaults was written for the user to edit. Nothing was loaded.
	TemplateWritten
)

func init() {
	viper.SetConfigName("rest2")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(tMinKey, defaultTMin)
	viper.SetDefault(tMaxKey, defaultTMax)
	viper.SetDefault(replicasKey, defaultReplicas)
	viper.SetDefault(replexKey, defaultReplex)
	viper.SetDefault(methodKey, ladder.Linear)

	viper.SetDefault(targetKey, "chain A")
	viper.SetDefault(cutoffKey, 6.0)
	viper.SetDefault(occupancyKey, 0.5)
	viper.SetDefault(moleculeKey, "")

	viper.SetDefault(structureKey, "md.gro")
	viper.SetDefault(trajectoryKey, "")
	viper.SetDefault(topologyKey, "topol.top")
	viper.SetDefault(tprKey, "")
	viper.SetDefault(plumedKey, "")
	viper.SetDefault(mdpKey, "")

	viper.SetDefault(outputDirKey, defaultOutputDir)
	viper.SetDefault(gmxCommandKey, "gmx")
	viper.SetDefault(mpiCommandKey, "gmx_mpi")
	viper.SetDefault(nstepsKey, 50000000)

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, int(slog.LevelInfo))
	viper.SetDefault(logMaxSizeKey, 10)
	viper.SetDefault(logMaxBackupsKey, 3)
	viper.SetDefault(logMaxAgeKey, 28)
	viper.SetDefault(logCompressKey, true)
}

// LoadConfig reads rest2.yaml. When the file does not exist it writes a
// template holding the defaults and reports TemplateWritten, so the caller
// can tell the user to edit it instead of failing with a read error.
func LoadConfig() (Config, LoadOutcome, error) {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			if werr := viper.SafeWriteConfigAs(configFileName); werr != nil {
				return Config{}, TemplateWritten, fmt.Errorf("writing config template: %w", werr)
			}
			return Config{}, TemplateWritten, nil
		}
		return Config{}, Loaded, fmt.Errorf("reading %s: %w", configFileName, err)
	}
	c := Config{
		TMin:     viper.GetFloat64(tMinKey),
		TMax:     viper.GetFloat64(tMaxKey),
		Replicas: viper.GetInt(replicasKey),
		Replex:   viper.GetInt(replexKey),
		Method:   viper.GetString(methodKey),

		Target:    viper.GetString(targetKey),
		Cutoff:    viper.GetFloat64(cutoffKey),
		Occupancy: viper.GetFloat64(occupancyKey),
		Molecule:  viper.GetString(moleculeKey),

		Structure:  viper.GetString(structureKey),
		Trajectory: viper.GetString(trajectoryKey),
		Topology:   viper.GetString(topologyKey),
		TPR:        viper.GetString(tprKey),
		Plumed:     viper.GetString(plumedKey),
		MDP:        viper.GetString(mdpKey),

		OutputDir:  viper.GetString(outputDirKey),
		GmxCommand: viper.GetString(gmxCommandKey),
		MpiCommand: viper.GetString(mpiCommandKey),
		Nsteps:     viper.GetInt(nstepsKey),
	}
	if err := c.validate(); err != nil {
		return Config{}, Loaded, err
	}
	return c, Loaded, nil
}

func (c Config) validate() error {
	switch {
	case c.TMin <= 0:
		return fmt.Errorf("t_min %.2f must be positive: %w", c.TMin, rest2.ErrInvalidParameter)
	case c.TMax <= c.TMin:
		return fmt.Errorf("t_max %.2f not above t_min %.2f: %w", c.TMax, c.TMin, rest2.ErrInvalidParameter)
	case c.Replicas < 1:
		return fmt.Errorf("n_replicas %d: %w", c.Replicas, rest2.ErrInvalidParameter)
	case c.Replex < 1:
		return fmt.Errorf("replex %d: %w", c.Replex, rest2.ErrInvalidParameter)
	case c.Method != ladder.Linear && c.Method != ladder.Exponential:
		return fmt.Errorf("scaling_method %q: %w", c.Method, rest2.ErrInvalidParameter)
	case c.Cutoff <= 0:
		return fmt.Errorf("selection.cutoff %.2f: %w", c.Cutoff, rest2.ErrInvalidParameter)
	case c.Occupancy <= 0 || c.Occupancy > 1:
		return fmt.Errorf("selection.occupancy %.2f: %w", c.Occupancy, rest2.ErrInvalidParameter)
	case c.Target == "":
		return fmt.Errorf("selection.target is empty: %w", rest2.ErrInvalidParameter)
	}
	return nil
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}
	return defaultLevel
}

// configureLogger points the default slog logger at a rotating file.
func configureLogger(verbose bool) {
	logLevel := parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	if verbose {
		logLevel = slog.LevelDebug
	}
	logWriter := &lumberjack.Logger{
		Filename:   viper.GetString(logFilenameKey),
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}
	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
