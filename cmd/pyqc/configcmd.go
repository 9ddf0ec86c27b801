package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/pyqc-dev/pyqc/internal/config"
	"github.com/spf13/cobra"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pyqc configuration",
	}

	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configInitCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfigWithTarget("", ".")
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			fmt.Println("pyqc configuration")
			fmt.Println(strings.Repeat("-", 30))
			fmt.Printf("Line length:            %d\n", cfg.LineLength)
			fmt.Printf("Type checker:           %s\n", cfg.TypeChecker)
			fmt.Printf("Parallel execution:     %t\n", cfg.Parallel)
			fmt.Printf("Exclude patterns:       %s\n", strings.Join(cfg.Exclude, ", "))
			fmt.Printf("Ruff extend-select:     %s\n", strings.Join(cfg.Ruff.ExtendSelect, ", "))
			fmt.Printf("Ruff ignore:            %s\n", strings.Join(cfg.Ruff.Ignore, ", "))
			fmt.Printf("Mypy strict:            %t\n", cfg.Mypy.Strict)
			fmt.Printf("Mypy ignore missing:    %t\n", cfg.Mypy.IgnoreMissingImports)

			fmt.Println("\nConfig file candidates:")
			for _, candidate := range config.ConfigFileCandidates {
				marker := " "
				if _, err := os.Stat(candidate); err == nil {
					marker = "*"
				}
				fmt.Printf("  %s %s\n", marker, candidate)
			}
			return nil
		},
	}
}

func configInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a .pyqc.yaml configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := ".pyqc.yaml"

			if _, err := os.Stat(configPath); err == nil {
				confirm := promptui.Prompt{
					Label:     fmt.Sprintf("%s already exists. Overwrite", configPath),
					IsConfirm: true,
				}
				if _, err := confirm.Run(); err != nil {
					fmt.Println("Configuration initialization cancelled")
					return nil
				}
			}

			if err := config.WriteDefaultConfig(configPath); err != nil {
				return err
			}

			displayPath := configPath
			if absPath, err := filepath.Abs(configPath); err == nil {
				displayPath = absPath
			}
			fmt.Printf("Created %s\n", displayPath)
			fmt.Println("\nRun 'pyqc check .' to check your project.")
			return nil
		},
	}
}
