package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"nightlock/internal/structures"
	"path/filepath"
	"strings"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.BindEnv("logger.level", "NIGHTLOCK_LOG_LEVEL")
	viper.BindEnv("schedule.bedtime", "NIGHTLOCK_BEDTIME")
	viper.BindEnv("schedule.wakeTime", "NIGHTLOCK_WAKE_TIME")
	viper.BindEnv("schedule.autoLock", "NIGHTLOCK_AUTO_LOCK")
	viper.BindEnv("persistence.driver", "NIGHTLOCK_STORE_DRIVER")
	viper.BindEnv("persistence.filePath", "NIGHTLOCK_STORE_PATH")
	viper.BindEnv("persistence.saveInterval", "NIGHTLOCK_SAVE_INTERVAL")
	viper.BindEnv("cache.enabled", "NIGHTLOCK_CACHE_ENABLED")
	viper.BindEnv("cache.size", "NIGHTLOCK_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "Nightlock"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
