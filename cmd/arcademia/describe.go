package main

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/philipparndt/arcademia/pkg/analysis"
	"github.com/philipparndt/arcademia/pkg/describe"
	"github.com/philipparndt/arcademia/pkg/loader"
	"github.com/philipparndt/arcademia/pkg/scene"
	"github.com/spf13/cobra"
)

var (
	speakAloud bool
	precision  int
)

var describeCmd = &cobra.Command{
	Use:   "describe [file]",
	Short: "Describe a model in plain sentences",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

var sceneCmd = &cobra.Command{
	Use:   "scene [file...]",
	Short: "Describe several models displayed together",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScene,
}

func init() {
	for _, c := range []*cobra.Command{describeCmd, sceneCmd} {
		c.Flags().BoolVar(&speakAloud, "speak", false, "read the description aloud")
		c.Flags().IntVar(&precision, "precision", -1, "decimals for measurements (default from config)")
		rootCmd.AddCommand(c)
	}
}

func describer() *describe.Describer {
	if precision >= 0 {
		return describe.New(precision)
	}
	return describe.New(cfg.Describe.Precision)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	m, err := loader.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	sentences := describer().DescribeModel(m.Name, analysis.Analyze(m))
	return present(cmd, sentences)
}

func runScene(cmd *cobra.Command, args []string) error {
	s, err := loadScene(cmd.Context(), args)
	if err != nil {
		return err
	}
	sentences := describer().DescribeScene(s.Summary())
	return present(cmd, sentences)
}

// loadScene loads every file into a scene keyed by file name. Two files
// with the same name would replace each other, so they are rejected.
func loadScene(ctx context.Context, paths []string) (*scene.Scene, error) {
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		name := filepath.Base(path)
		if first, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate model name %q: %s and %s", name, first, path)
		}
		seen[name] = path
	}

	meshes, err := loader.LoadAll(ctx, paths, runtime.NumCPU())
	if err != nil {
		return nil, err
	}
	s := scene.New()
	for i, m := range meshes {
		s.Add(filepath.Base(paths[i]), m)
	}
	return s, nil
}

// present prints one sentence per line and optionally speaks them
func present(cmd *cobra.Command, sentences []string) error {
	for _, s := range sentences {
		fmt.Fprintln(cmd.OutOrStdout(), s)
	}
	if !speakAloud {
		return nil
	}
	return speak(cmd.Context(), describe.Join(sentences))
}

// speak reads text aloud and waits until playback finishes
func speak(ctx context.Context, text string) error {
	speaker := newSpeaker()
	defer speaker.Close()

	done, err := speaker.Say(text)
	if err != nil {
		return err
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
