package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/colorstring"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/technicalpickles/envsense/internal/schema"
	"github.com/technicalpickles/envsense/internal/snapshot"
)

var (
	infoJSON     bool
	infoEvidence bool
	infoNoColor  bool
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the detected environment",
	Long: `Run a detection cycle and print the result.

  envsense info
  envsense info --json
  envsense info --evidence`,
	RunE: infoCommand,
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Emit the canonical JSON document")
	infoCmd.Flags().BoolVar(&infoEvidence, "evidence", false, "Include evidence lines in the human output")
	infoCmd.Flags().BoolVar(&infoNoColor, "no-color", false, "Disable colored output")
	rootCmd.AddCommand(infoCmd)
}

func infoCommand(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine()
	if err != nil {
		return err
	}
	result := engine.Detect(snapshot.Current(nil))

	if infoJSON {
		data, err := result.MarshalIndent()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	printHuman(&result)
	return nil
}

// colorize renders colorstring markup, stripping it when stdout is not a
// terminal or color is suppressed.
func colorize(format string, args ...any) string {
	c := colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: infoNoColor || os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd())),
		Reset:   true,
	}
	return c.Color(fmt.Sprintf(format, args...))
}

func printHuman(result *schema.Result) {
	contexts := "none"
	if len(result.Contexts) > 0 {
		contexts = strings.Join(result.Contexts, ", ")
	}
	fmt.Println(colorize("[bold]Contexts:[reset] %s", contexts))
	fmt.Println()

	printID := func(label string, id *string) {
		if id != nil {
			fmt.Println(colorize("  %-10s [green]%s", label, *id))
		} else {
			fmt.Println(colorize("  %-10s [dark_gray]-", label))
		}
	}
	fmt.Println(colorize("[bold]Traits:"))
	printID("agent.id", result.Traits.Agent.ID)
	printID("ide.id", result.Traits.IDE.ID)
	printID("ci.id", result.Traits.CI.ID)
	ci := result.Traits.CI
	if ci.Vendor != nil {
		printID("ci.vendor", ci.Vendor)
	}
	if ci.Name != nil {
		printID("ci.name", ci.Name)
	}
	if ci.Branch != nil {
		printID("ci.branch", ci.Branch)
	}
	if ci.IsPR != nil {
		fmt.Println(colorize("  %-10s %v", "ci.is_pr", *ci.IsPR))
	}

	t := result.Traits.Terminal
	fmt.Println()
	fmt.Println(colorize("[bold]Terminal:"))
	fmt.Println(colorize("  interactive %v, color %s, hyperlinks %v",
		t.Interactive, t.ColorLevel, t.SupportsHyperlinks))
	fmt.Println(colorize("  stdin tty=%v stdout tty=%v stderr tty=%v",
		t.Stdin.TTY, t.Stdout.TTY, t.Stderr.TTY))

	if infoEvidence {
		fmt.Println()
		fmt.Println(colorize("[bold]Evidence:"))
		for _, e := range result.Evidence {
			value := ""
			if e.Value != nil {
				value = "=" + *e.Value
			}
			fmt.Println(colorize("  [%s] %s%s -> %s (%.1f)",
				string(e.Signal), e.Key, value, strings.Join(e.Supports, ","), e.Confidence))
		}
	}
}
