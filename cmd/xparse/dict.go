package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/xparse-go/pkg/xparse/textnorm"
)

func newDictCommand(c *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dict <category> <term>",
		Short: "Resolve a term against the loaded dictionaries",
		Long: `dict looks up a term the way the document mapper does. On a miss the
term passes through unchanged and the closest known term is suggested.`,
		Example: "  xparse dict objectType \"Квартира\"",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDict(cmd, c, args[0], args[1])
		},
	}
}

func runDict(cmd *cobra.Command, c *cliContext, category, term string) error {
	dict, err := c.loadDictionaries()
	if err != nil {
		return err
	}
	if err := dict.Check(category); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if v, ok := dict.Lookup(category, term); ok {
		fmt.Fprintf(out, "%s -> %s\n", term, v.String())
		return nil
	}

	fmt.Fprintf(out, "%s: not in %s, passed through unchanged\n", term, category)
	if best, dist, ok := dict.BestMatch(category, textnorm.Fold(term)); ok {
		code, _ := dict.Lookup(category, best)
		fmt.Fprintf(out, "closest: %s -> %s (distance %d)\n", best, code.String(), dist)
	}
	return nil
}
