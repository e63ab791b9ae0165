package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/samuelfneumann/antjump/environment/mujoco/antjump"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes the environment variables which override the
// environment config, e.g. ANTJUMP_FRAME_SKIP
const EnvPrefix = "ANTJUMP"

// loadConfig returns the AntJump config built from, in increasing
// order of precedence, the defaults, the YAML file (if not empty),
// environment variables, and the flags bound to v.
func loadConfig(v *viper.Viper, file string) (antjump.Config, error) {
	defaults, err := yaml.Marshal(antjump.DefaultConfig())
	if err != nil {
		return antjump.Config{}, fmt.Errorf("loadConfig: %v", err)
	}

	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return antjump.Config{}, fmt.Errorf("loadConfig: could not read "+
			"defaults: %v", err)
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.MergeInConfig(); err != nil {
			return antjump.Config{}, fmt.Errorf("loadConfig: %v", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var c antjump.Config
	if err := v.Unmarshal(&c); err != nil {
		return antjump.Config{}, fmt.Errorf("loadConfig: %v", err)
	}

	if err := c.Validate(); err != nil {
		return antjump.Config{}, fmt.Errorf("loadConfig: %v", err)
	}
	return c, nil
}

func newConfigCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective environment config as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConfig(v, cfgFile)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(os.Stdout)
			defer enc.Close()
			return enc.Encode(c)
		},
	}
}
