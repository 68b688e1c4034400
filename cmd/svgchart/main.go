// Package main provides the svgchart command line renderer.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/odyssey-erp/svgchart/cmd/svgchart/cli"
	"github.com/odyssey-erp/svgchart/internal/chart"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "svgchart",
		Short:        "Render bar, pie, doughnut and line charts as SVG",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newRenderCmd(), newKindsCmd(), newWarmupCmd(), newQueueCmd())
	return rootCmd
}

func newRenderCmd() *cobra.Command {
	var (
		inputPath  string
		kind       string
		outputPath string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a chart request file to SVG",
		Long: `Render reads a YAML or JSON request with the keys kind, data and options
and writes the SVG document. Dataset key order is the drawing order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := cli.LoadRequestFile(inputPath, kind, cmd.InOrStdin())
			if err != nil {
				return err
			}
			markup, err := cli.Render(req)
			if err != nil {
				return err
			}
			return cli.WriteMarkup(cmd.OutOrStdout(), outputPath, markup)
		},
	}
	cmd.Flags().StringVarP(&inputPath, "file", "f", "-", "Request file (default: stdin)")
	cmd.Flags().StringVar(&kind, "kind", "", "Chart kind, overrides the request: "+kindList())
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List supported chart kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, k := range chart.Kinds() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), k); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newWarmupCmd() *cobra.Command {
	var (
		inputPath string
		kind      string
		redisAddr string
	)
	cmd := &cobra.Command{
		Use:   "warmup",
		Short: "Queue a chart request for the worker to cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := cli.LoadRequestFile(inputPath, kind, cmd.InOrStdin())
			if err != nil {
				return err
			}
			jobsCLI := cli.NewJobsCLI(redisAddr)
			defer func() { _ = jobsCLI.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			taskID, err := jobsCLI.Warm(ctx, req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "queued %s\n", taskID)
			return err
		},
	}
	cmd.Flags().StringVarP(&inputPath, "file", "f", "-", "Request file (default: stdin)")
	cmd.Flags().StringVar(&kind, "kind", "", "Chart kind, overrides the request")
	cmd.Flags().StringVar(&redisAddr, "redis", defaultRedisAddr(), "Redis address of the job queue")
	return cmd
}

func newQueueCmd() *cobra.Command {
	var redisAddr string
	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Show the warmup queue state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jobsCLI := cli.NewJobsCLI(redisAddr)
			defer func() { _ = jobsCLI.Close() }()

			stats, err := jobsCLI.InspectQueue(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "queue=%s pending=%d active=%d scheduled=%d retry=%d\n",
				stats.Queue, stats.Pending, stats.Active, stats.Scheduled, stats.Retry)
			return err
		},
	}
	cmd.Flags().StringVar(&redisAddr, "redis", defaultRedisAddr(), "Redis address of the job queue")
	return cmd
}

func defaultRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "127.0.0.1:6379"
}

func kindList() string {
	kinds := chart.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
