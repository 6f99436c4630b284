// Package config loads the optional config.yaml that overrides the built-in
// reward and level tables. Tables are validated before being installed so a
// bad deployment fails at startup, not at lookup time.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/HannahChen955/referralx-platform/reward"
)

// Load reads config.yaml from the working directory (or ./config) and
// applies any reward.stages / reward.levels overrides. A missing file is
// fine; the defaults are installed and validated either way.
func Load() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config file: %w", err)
		}
		return applyDefaults()
	}

	stages := reward.DefaultStageRewards()
	if viper.IsSet("reward.stages") {
		stages = nil
		if err := viper.UnmarshalKey("reward.stages", &stages); err != nil {
			return fmt.Errorf("parse reward.stages: %w", err)
		}
	}
	if err := reward.ConfigureStages(stages); err != nil {
		return err
	}

	levels := reward.DefaultLevels()
	if viper.IsSet("reward.levels") {
		levels = nil
		if err := viper.UnmarshalKey("reward.levels", &levels); err != nil {
			return fmt.Errorf("parse reward.levels: %w", err)
		}
	}
	return reward.ConfigureLevels(levels)
}

func applyDefaults() error {
	if err := reward.ConfigureStages(reward.DefaultStageRewards()); err != nil {
		return err
	}
	return reward.ConfigureLevels(reward.DefaultLevels())
}
