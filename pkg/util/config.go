package util

import (
	"fmt"

	"github.com/spf13/viper"
)

// ReadConfig loads the planner tunables from planner.yaml, looked up under
// ./data/ first and the working directory second. Every key has a viper
// default, so a missing file is recoverable by the caller.
func ReadConfig() error {
	viper.SetConfigName("planner")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./data/")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("read planner config: %w", err)
	}
	return nil
}
