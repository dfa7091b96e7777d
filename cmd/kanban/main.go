package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"kanban/internal/app"
	"kanban/internal/config"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if err != errReported {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// newApp reads the config and creates a wired App. The caller must
// defer a.Close(). operation identifies the CLI command being run.
func newApp(operation string) (*app.App, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	a, err := app.New(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

func configPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("resolving config path: %w", err)
	}
	return path, nil
}

var flagConfig string

var rootCmd = &cobra.Command{
	Use:           "kanban",
	Short:         "Local-first kanban board",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		dir, err := config.DefaultDir()
		if err != nil {
			return err
		}
		cfg := config.NewConfig(dir)
		if err := config.Init(path, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		fmt.Printf("Configuration initialized at %s\n", path)
		fmt.Printf("Data file: %s\n", cfg.DataFile)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		cfg, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
		fmt.Printf("Configuration from %s:\n\n", path)
		fmt.Printf("Data file:     %s\n", cfg.DataFile)
		fmt.Printf("Log dir:       %s\n", cfg.LogDir)
		fmt.Printf("History limit: %d\n", cfg.History.Limit)
		fmt.Printf("Debounce:      %dms\n", cfg.Watch.DebounceMs)
		return nil
	},
}

// undo/redo commands
var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last change",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Undo")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			if err := a.Service().Undo(); err != nil {
				return nil, err
			}
			return map[string]bool{"can_undo": a.Service().CanUndo(), "can_redo": a.Service().CanRedo()}, nil
		})
	},
}

var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Redo the last undone change",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Redo")
		if err != nil {
			return err
		}
		defer a.Close()
		return run(func() (any, error) {
			if err := a.Service().Redo(); err != nil {
				return nil, err
			}
			return map[string]bool{"can_undo": a.Service().CanUndo(), "can_redo": a.Service().CanRedo()}, nil
		})
	},
}

// watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the data file and report external changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Watch")
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err = a.Service().Watch(ctx, func() {
			fmt.Println("data file changed, snapshot reloaded")
		})
		if err != nil {
			return writeError(err)
		}
		fmt.Printf("watching %s\n", a.Config().DataFile)
		<-ctx.Done()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path")

	configCmd.AddCommand(configInitCmd, configListCmd)
	rootCmd.AddCommand(configCmd, undoCmd, redoCmd, watchCmd)
}
