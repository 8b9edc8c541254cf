package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/technicalpickles/envsense/internal/schema"
)

var (
	Version   = "0.3.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print envsense version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("envsense %s\n", Version)
		fmt.Printf("  Commit: %s\n", GitCommit)
		fmt.Printf("  Built:  %s\n", BuildDate)
		fmt.Printf("  Schema: %s\n", schema.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
