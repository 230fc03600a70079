package app

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/langgarden/pkg/constants"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files. Command-line flags are applied on
// top by the root command.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Pipeline settings
	DataDir     string
	ImagesDir   string
	Pacing      time.Duration
	ImagePacing time.Duration
	HTTPTimeout time.Duration
	ReportDB    string

	// Credentials
	ElevenLabsAPIKey string
	CSEAPIKey        string
	CSEEngineID      string

	// Logging configuration. LogLevel is the explicit --log-level flag;
	// EnvLogLevel comes from LOG_LEVEL and ranks below -v and -q.
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// Defaults applied when nothing else sets a value.
const (
	DefaultDataDir  = "data"
	reportDBName    = ".langgarden-runs.db"
	disabledReports = "none"
)

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (LANGGARDEN_*, plus the API key variables)
// 3. .env and .env.local files
// 4. Config file (~/.langgarden.yaml or ./.langgarden.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New())
}

func loadConfig(v *viper.Viper) (*Config, error) {
	loadEnvFiles()

	v.SetEnvPrefix("langgarden")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindAPIKeys(v)

	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("pacing", constants.ScrapePacing)
	v.SetDefault("image_pacing", constants.ImagePacing)
	v.SetDefault("http_timeout", constants.DefaultHTTPTimeout)

	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".langgarden")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	return &Config{
		Verbose:    v.GetBool("verbose"),
		Quiet:      v.GetBool("quiet"),
		NoColor:    v.GetBool("no_color"),
		Format:     v.GetString("format"),
		ConfigFile: v.ConfigFileUsed(),

		DataDir:     v.GetString("data_dir"),
		ImagesDir:   v.GetString("images_dir"),
		Pacing:      v.GetDuration("pacing"),
		ImagePacing: v.GetDuration("image_pacing"),
		HTTPTimeout: v.GetDuration("http_timeout"),
		ReportDB:    v.GetString("report_db"),

		ElevenLabsAPIKey: v.GetString(strings.ToLower(constants.EnvElevenLabsKey)),
		CSEAPIKey:        v.GetString(strings.ToLower(constants.EnvCSEKey)),
		CSEEngineID:      v.GetString(strings.ToLower(constants.EnvCSEID)),

		EnvLogLevel: getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}, nil
}

// MergeFile reads an explicit config file given with --config. Keys in the
// file override the loaded values except where skip reports that the
// matching flag was set on the command line.
func (c *Config) MergeFile(path string, skip func(flag string) bool) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	c.ConfigFile = v.ConfigFileUsed()

	strs := map[string]*string{
		"data_dir":   &c.DataDir,
		"images_dir": &c.ImagesDir,
		"report_db":  &c.ReportDB,
		"format":     &c.Format,
	}
	for key, field := range strs {
		if v.IsSet(key) && !skip(flagName(key)) {
			*field = v.GetString(key)
		}
	}

	durations := map[string]*time.Duration{
		"pacing":       &c.Pacing,
		"image_pacing": &c.ImagePacing,
		"http_timeout": &c.HTTPTimeout,
	}
	for key, field := range durations {
		if v.IsSet(key) && !skip(flagName(key)) {
			*field = v.GetDuration(key)
		}
	}
	return nil
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// ImagesPath returns the image directory, defaulting to <data_dir>/images.
func (c *Config) ImagesPath() string {
	if c.ImagesDir != "" {
		return c.ImagesDir
	}
	return filepath.Join(c.DataDir, "images")
}

// ReportPath returns the run history database path, or "" when recording
// is disabled with report_db: none.
func (c *Config) ReportPath() string {
	switch c.ReportDB {
	case disabledReports:
		return ""
	case "":
		return filepath.Join(c.DataDir, reportDBName)
	default:
		return c.ReportDB
	}
}

// DataPath joins name onto the data directory.
func (c *Config) DataPath(name string) string {
	return filepath.Join(c.DataDir, name)
}

// loadEnvFiles loads .env and then .env.local. godotenv never overrides
// variables that are already set, so real environment values win.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// bindAPIKeys binds the credential variables, which carry no prefix.
func bindAPIKeys(v *viper.Viper) {
	for _, key := range []string{constants.EnvElevenLabsKey, constants.EnvCSEKey, constants.EnvCSEID} {
		_ = v.BindEnv(strings.ToLower(key), key)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
