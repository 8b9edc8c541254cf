package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/technicalpickles/envsense/internal/check"
	"github.com/technicalpickles/envsense/internal/registry"
	"github.com/technicalpickles/envsense/internal/snapshot"
)

var (
	checkAny        bool
	checkQuiet      bool
	checkExplain    bool
	checkLenient    bool
	checkListFields bool
)

var checkCmd = &cobra.Command{
	Use:   "check <predicate>...",
	Short: "Evaluate predicates against the detected environment",
	Long: `Evaluate one or more predicates against a fresh detection.

  envsense check agent
  envsense check agent.id=cursor
  envsense check '!terminal.interactive'
  envsense check --any ci agent

Exit codes: 0 when all predicates match (any, with --any), 1 when they
evaluate false, 2 on a parse error.`,
	RunE: checkCommand,
}

func init() {
	checkCmd.Flags().BoolVar(&checkAny, "any", false, "Succeed when any predicate matches instead of all")
	checkCmd.Flags().BoolVarP(&checkQuiet, "quiet", "q", false, "Suppress per-predicate output")
	checkCmd.Flags().BoolVar(&checkExplain, "explain", false, "Print comparison detail")
	checkCmd.Flags().BoolVar(&checkLenient, "lenient", false, "Ignore unknown field paths instead of rejecting them")
	checkCmd.Flags().BoolVar(&checkListFields, "list-fields", false, "List the addressable fields and exit")
	rootCmd.AddCommand(checkCmd)
}

func checkCommand(cmd *cobra.Command, args []string) error {
	if checkListFields {
		listFields()
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("at least one predicate is required")
	}

	engine, err := buildEngine()
	if err != nil {
		return err
	}
	result := engine.Detect(snapshot.Current(nil))
	opts := check.Options{Lenient: checkLenient}

	matchedAll := true
	matchedAny := false
	for _, arg := range args {
		parsed, warnings, err := parsePredicate(arg, opts)
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "envsense: %s\n", w)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "envsense: %s\n", err)
			os.Exit(2)
		}

		outcome, err := check.Evaluate(parsed, &result, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "envsense: %s\n", err)
			os.Exit(2)
		}

		matched := outcome.Matched()
		matchedAll = matchedAll && matched
		matchedAny = matchedAny || matched
		if !checkQuiet {
			printOutcome(arg, outcome)
		}
	}

	ok := matchedAll
	if checkAny {
		ok = matchedAny
	}
	if !ok {
		os.Exit(1)
	}
	return nil
}

func parsePredicate(arg string, opts check.Options) (check.ParsedCheck, []string, error) {
	if opts.Lenient {
		parsed, err := check.ParseWithOptions(arg, opts)
		if err != nil {
			return parsed, nil, err
		}
		var warnings []string
		switch parsed.Check.Kind {
		case check.KindLegacyFacet, check.KindLegacyTrait:
			// Legacy forms parse the same in both modes, so the strict
			// parser supplies their deprecation notices.
			_, warnings, _ = check.ParseWithWarnings(arg)
		}
		return parsed, warnings, nil
	}
	return check.ParseWithWarnings(arg)
}

func printOutcome(arg string, outcome check.CheckResult) {
	switch outcome.Kind {
	case check.ResultString:
		fmt.Printf("%s: %s\n", arg, outcome.Str)
	case check.ResultComparison:
		cmp := outcome.Comparison
		if checkExplain {
			fmt.Printf("%s: %v (actual %q, expected %q)\n", arg, cmp.Matched, cmp.Actual, cmp.Expected)
		} else {
			fmt.Printf("%s: %v\n", arg, cmp.Matched)
		}
	default:
		if outcome.Reason != "" && checkExplain {
			fmt.Printf("%s: %v (%s)\n", arg, outcome.Bool, outcome.Reason)
		} else {
			fmt.Printf("%s: %v\n", arg, outcome.Bool)
		}
	}
}

func listFields() {
	for _, context := range registry.Contexts() {
		fmt.Printf("%s:\n", context)
		for _, f := range registry.FieldsOf(context) {
			fmt.Printf("  %-32s %-16s %s\n", f.Dotted(), string(f.Type), f.Description)
		}
	}
}
