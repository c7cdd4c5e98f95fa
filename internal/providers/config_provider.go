package providers

import (
	"corpusdash/internal/structures"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("backend.baseUrl", "CRD_BACKEND_URL")
	viper.BindEnv("backend.timeout", "CRD_BACKEND_TIMEOUT")
	viper.BindEnv("backend.pageSize", "CRD_PAGE_SIZE")
	viper.BindEnv("backend.maxRecords", "CRD_MAX_RECORDS")
	viper.BindEnv("logger.level", "CRD_LOG_LEVEL")
	viper.BindEnv("snapshot.saveInterval", "CRD_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "CRD_CACHE_ENABLED")
	viper.BindEnv("cache.size", "CRD_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	applyDefaults(&conf)

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "CorpusRecordsDashboard"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

func applyDefaults(conf *structures.Config) {
	if conf.Backend.RetryAttempts <= 0 {
		conf.Backend.RetryAttempts = 3
	}
	if conf.Backend.RetryBaseDelay <= 0 {
		conf.Backend.RetryBaseDelay = 500 * time.Millisecond
	}
	if conf.Directory.Size <= 0 {
		conf.Directory.Size = 4096
	}
	if conf.Directory.TTL <= 0 {
		conf.Directory.TTL = time.Hour
	}
	if conf.Insights.GrowthThreshold <= 0 {
		conf.Insights.GrowthThreshold = 10
	}
	if conf.Cache.TTL <= 0 {
		conf.Cache.TTL = 5 * time.Minute
	}
}
