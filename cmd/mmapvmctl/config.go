package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// bindConfig wires a command's flags into viper with three-source
// precedence: explicit flag > MMAPVMCTL_* environment variable > config
// file (mmapvmctl.yaml, or another extension viper reads, in the working
// directory or in $HOME) > flag default.
func bindConfig(cmd *cobra.Command) error {
	v := viper.New()
	v.SetConfigName("mmapvmctl")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")
	v.SetEnvPrefix("mmapvmctl")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && v.IsSet(f.Name) {
			_ = cmd.Flags().Set(f.Name, v.GetString(f.Name))
		}
	})

	return nil
}
