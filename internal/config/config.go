package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "arbitrations.cfg.json"

// EnvPrefix prefixes environment overrides, e.g. ARBY_SCHEDULE_PATH.
const EnvPrefix = "ARBY"

// ScheduleConfig locates the raw schedule CSV.
type ScheduleConfig struct {
	Path       string `json:"path" mapstructure:"path"`
	SkipHeader bool   `json:"skipHeader" mapstructure:"skipHeader"`
}

// RefsConfig selects where regions and dictionary come from.
type RefsConfig struct {
	Source         string `json:"source" mapstructure:"source"`
	RegionsPath    string `json:"regionsPath" mapstructure:"regionsPath"`
	DictionaryPath string `json:"dictionaryPath" mapstructure:"dictionaryPath"`
}

// DBConfig holds reference database connection settings.
type DBConfig struct {
	Path     string `json:"path" mapstructure:"path"`
	Host     string `json:"host" mapstructure:"host"`
	Port     string `json:"port" mapstructure:"port"`
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Database string `json:"database" mapstructure:"database"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName  string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	Endpoint     string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure     bool          `json:"insecure" mapstructure:"insecure"`
}

// Reference data sources accepted by refs.source.
const (
	SourceFile     = "file"
	SourceSqlite   = "sqlite"
	SourcePostgres = "postgres"
)

// Load reads configuration from JSON file and sets default values.
// A .env file in the working directory is loaded first and ARBY_* variables
// override file values. A missing config file is not an error.
func Load(configDir string) error {
	_ = godotenv.Load()

	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./arbylogs")
	viper.SetDefault("lang", "en")

	viper.SetDefault("schedule.path", "./arbys.csv")
	viper.SetDefault("schedule.skipHeader", false)

	viper.SetDefault("refs.source", SourceFile)
	viper.SetDefault("refs.regionsPath", "./ExportRegions.json")
	viper.SetDefault("refs.dictionaryPath", "./dict.en.json")

	viper.SetDefault("db.path", "./arbitrations.db")
	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "arbitrations")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "arbitrations")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetScheduleConfig returns the schedule section.
func GetScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		Path:       viper.GetString("schedule.path"),
		SkipHeader: viper.GetBool("schedule.skipHeader"),
	}
}

// GetRefsConfig returns the reference data section. Source is lower-cased.
func GetRefsConfig() RefsConfig {
	return RefsConfig{
		Source:         strings.ToLower(strings.TrimSpace(viper.GetString("refs.source"))),
		RegionsPath:    viper.GetString("refs.regionsPath"),
		DictionaryPath: viper.GetString("refs.dictionaryPath"),
	}
}

// GetDBConfig returns the database section.
func GetDBConfig() DBConfig {
	return DBConfig{
		Path:     viper.GetString("db.path"),
		Host:     viper.GetString("db.host"),
		Port:     viper.GetString("db.port"),
		Username: viper.GetString("db.username"),
		Password: viper.GetString("db.password"),
		Database: viper.GetString("db.database"),
	}
}

// GetOTelConfig returns the OpenTelemetry section.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetTiers returns the tier letter -> node names overrides, nil when unset.
// Letters come back lower-cased since viper folds keys; node names are values
// and keep their case.
func GetTiers() map[string][]string {
	if !viper.IsSet("tiers") {
		return nil
	}
	return viper.GetStringMapStringSlice("tiers")
}
