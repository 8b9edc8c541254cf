// Package cli wires the envsense commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/technicalpickles/envsense/internal/detect"
	"github.com/technicalpickles/envsense/internal/mapping"
)

var mappingsPath string

var rootCmd = &cobra.Command{
	Use:   "envsense",
	Short: "envsense - detect where your program is running",
	Long: `envsense inspects the process environment and reports where the program
is running: inside a coding agent, an IDE, a CI system, and what kind of
terminal is attached - together with the evidence for each conclusion.

Scripts use it to adapt behavior: disable color, simplify prompts, skip
pagers, set editor commands.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&mappingsPath, "mappings", "", "Path to an extra mapping pack YAML file")
}

func Execute() error {
	return rootCmd.Execute()
}

// stderrLogger is the CLI's detect.Logger: best-effort warnings on stderr.
type stderrLogger struct{}

func (stderrLogger) Warn(msg string) {
	fmt.Fprintf(os.Stderr, "envsense: warning: %s\n", msg)
}

// buildEngine assembles the detection engine, appending any --mappings pack
// after the builtin tables so builtins win ties.
func buildEngine() (*detect.Engine, error) {
	var agents, ides, cis []mapping.Mapping
	if mappingsPath != "" {
		pack, err := mapping.LoadPack(mappingsPath)
		if err != nil {
			return nil, err
		}
		agents, ides, cis = pack.Agents, pack.IDEs, pack.CIs
	}
	detectors := []detect.Detector{
		&detect.TerminalDetector{},
		detect.NewAgentDetector(agents...),
		detect.NewIDEDetector(ides...),
		detect.NewCIDetector(cis...),
	}
	return detect.NewEngine(detectors, stderrLogger{}), nil
}
