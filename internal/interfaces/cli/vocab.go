package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	recog "github.com/turtacn/PlasmidCatalog/internal/intelligence/recognition"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// NewVocabCmd creates the vocab command.
func NewVocabCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "Print vocabulary sizes per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			b, err := openBackend(cmd, cliCtx)
			if err != nil {
				return err
			}
			defer b.Close()

			stats, err := b.Vocabulary(ctx)
			if err != nil {
				return err
			}
			return PrintResult(cmd, &vocabReport{stats})
		},
	}
}

type vocabReport struct {
	*ptypes.VocabularyStats
}

func (v *vocabReport) TableHeaders() []string { return []string{"CATEGORY", "TERMS"} }

func (v *vocabReport) TableRows() [][]string {
	rows := make([][]string, 0, len(v.Sizes))
	for _, c := range recog.Categories() {
		rows = append(rows, []string{string(c), strconv.Itoa(v.Sizes[string(c)])})
	}
	return rows
}

func (v *vocabReport) WriteText(w io.Writer) {
	fmt.Fprintf(w, "%s v%d  records=%d  corrections=%d  backbone profiles=%d\n",
		color.New(color.Bold).Sprint("vocabulary"), v.Version, v.Records, v.Corrections, v.Backbones)
	for _, c := range recog.Categories() {
		fmt.Fprintf(w, "  %-21s %d\n", c.Label()+":", v.Sizes[string(c)])
	}
}

//Personal.AI order the ending
