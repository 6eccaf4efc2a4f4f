package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/peixotorms/component-index/internal/catalog"
	"github.com/peixotorms/component-index/internal/config"
	"github.com/peixotorms/component-index/internal/tui"
)

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the component index interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !tui.IsTerminal(os.Stdout) {
				return fmt.Errorf("browse needs a terminal")
			}
			env, err := load()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), env.cat, env.registry)
		},
	}
}

// configView is the YAML document printed by the config command.
type configView struct {
	*config.Config `yaml:",inline"`
	Version        string   `yaml:"version"`
	Frameworks     []string `yaml:"frameworks"`
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(configView{
				Config:     cfg,
				Version:    version,
				Frameworks: catalog.FrameworkIDs(catalog.DefaultFrameworks()),
			})
		},
	}
}
