package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/philipparndt/arcademia/internal/logging"
	"github.com/philipparndt/arcademia/pkg/catalog"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List the models in a folder",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Print the model list whenever the folder changes",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
}

func modelsDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.ModelsDir
}

func printEntries(w io.Writer, entries []catalog.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "(no models)")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%-40s %s\n", e.Name, e.Format)
	}
}

func runList(cmd *cobra.Command, args []string) error {
	c := catalog.New(modelsDir(args), logging.Logger())
	entries, err := c.Scan()
	if err != nil {
		return err
	}
	printEntries(cmd.OutOrStdout(), entries)
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := catalog.New(modelsDir(args), logging.Logger())
	defer c.Close()

	entries, err := c.Scan()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printEntries(out, entries)

	err = c.Watch(cfg.Watch.Debounce.Duration, func(entries []catalog.Entry) {
		fmt.Fprintln(out, "---")
		printEntries(out, entries)
	})
	if err != nil {
		return err
	}

	logging.Info("watching %s, press Ctrl+C to stop", c.Dir())
	<-ctx.Done()
	if ctx.Err() == context.Canceled {
		return nil
	}
	return ctx.Err()
}
