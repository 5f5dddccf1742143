package main

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/XavierBriggs/fortuna/services/slate-dashboard/pkg/models"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the operator / game type / slate hierarchy of the dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := loadIndex(cmd.Context(), cfg.Dataset)
		if err != nil {
			return eris.Wrap(err, "load slates")
		}
		printTree(cmd.OutOrStdout(), index.Tree())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func printTree(w io.Writer, tree []models.OperatorSummary) {
	if len(tree) == 0 {
		fmt.Fprintln(w, "(no slates)")
		return
	}
	for _, op := range tree {
		fmt.Fprintln(w, op.Name)
		for _, gt := range op.GameTypes {
			fmt.Fprintf(w, "  %s\n", gt.Name)
			for _, s := range gt.Slates {
				fmt.Fprintf(w, "    %s (%d players)\n", s.Name, s.PlayerCount)
			}
		}
	}
}
