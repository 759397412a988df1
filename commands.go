package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"algoviz/internal/algo"
	"algoviz/internal/anim"
)

var (
	configPath  string
	verifyFlag  bool
	metricsAddr string

	exportOut    string
	exportFormat string
	exportWidth  int
	exportHeight int
)

var rootCmd = &cobra.Command{
	Use:   "algoviz [algorithm]",
	Short: "Step through animated algorithms in the terminal",
	Long: `algoviz plays recorded algorithm animations one step at a time.
Every action is recorded as reversible steps, so playback runs both ways.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runPlayer,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available algorithms and their actions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, name := range algo.Names() {
			alg, err := algo.New(name, anim.NewController())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-12s %s\n", name, alg.Title())
			for _, a := range alg.Actions() {
				fmt.Fprintf(out, "    %-28s %s\n", a.Usage, a.Help)
			}
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <algorithm> <action> [; <action>...]",
	Short: "Render every step of a recorded action to files",
	Example: `  algoviz export dfs run A
  algoviz export treemap "put 1 a" "put 2 b" "remove 1" --format txt`,
	Args: cobra.MinimumNArgs(2),
	RunE: runExport,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/"+configFileName+")")
	rootCmd.PersistentFlags().BoolVar(&verifyFlag, "verify", false, "check every jump against a replay of the log")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", ".", "output directory")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "png", "frame format: png or txt")
	exportCmd.Flags().IntVar(&exportWidth, "width", 100, "text frame width")
	exportCmd.Flags().IntVar(&exportHeight, "height", 40, "text frame height")

	rootCmd.AddCommand(listCmd, exportCmd)
}

// setup loads the config, opens the log and starts the metrics endpoint.
func setup() (*Config, *slog.Logger, func(), error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if verifyFlag {
		config.VerifyReplay = true
	}
	logger, closer, err := newLogger(config)
	if err != nil {
		return nil, nil, nil, err
	}

	var server *http.Server
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server = &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", "addr", metricsAddr, "error", err)
			}
		}()
		logger.Info("serving metrics", "addr", metricsAddr)
	}

	cleanup := func() {
		if server != nil {
			server.Close()
		}
		closer.Close()
	}
	return config, logger, cleanup, nil
}

func runPlayer(cmd *cobra.Command, args []string) error {
	config, logger, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	name := config.DefaultAlgorithm
	if len(args) == 1 {
		name = args[0]
	}
	m, err := initialModel(config, logger, name)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run player: %w", err)
	}
	return nil
}

// splitActions accepts either one action spread over the arguments or
// several quoted actions, each holding its own arguments.
func splitActions(args []string) [][]string {
	var actions [][]string
	var current []string
	for _, arg := range args {
		if arg == ";" {
			if len(current) > 0 {
				actions = append(actions, current)
			}
			current = nil
			continue
		}
		fields := strings.Fields(arg)
		if len(fields) > 1 {
			if len(current) > 0 {
				actions = append(actions, current)
				current = nil
			}
			actions = append(actions, fields)
			continue
		}
		current = append(current, fields...)
	}
	if len(current) > 0 {
		actions = append(actions, current)
	}
	return actions
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(exportFormat)
	if err != nil {
		return err
	}
	config, logger, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	ctrl := newController(config, logger)
	alg, err := algo.New(args[0], ctrl)
	if err != nil {
		return err
	}
	files, err := exportSteps(ctrl, alg, splitActions(args[1:]), exportOut, format, exportWidth, exportHeight)
	if err != nil {
		return err
	}
	logger.Info("export finished", "algorithm", alg.Name(), "frames", len(files), "dir", exportOut)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d frames to %s\n", len(files), exportOut)
	return nil
}
