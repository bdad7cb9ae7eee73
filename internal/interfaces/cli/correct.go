package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// NewCorrectCmd creates the correct command.
func NewCorrectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "correct <file> <category> <old> <new>",
		Short: "Record a user correction for one field of a file",
		Long: "Record that <category> of <file> should read <new> instead of <old>.\n" +
			"Values are comma separated signatures, e.g. \"Amp, Kan\".  The correction\n" +
			"is stored in the configured correction backend and applied to later\n" +
			"recognitions of the same file name.",
		Example: "  plasmidcat correct pX330-mouse.dna species 人 小鼠",
		Args:    cobra.ExactArgs(4),
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

			res, err := b.RecordCorrection(ctx, &ptypes.CorrectionRequest{
				Filename:     filepath.Base(args[0]),
				Category:     args[1],
				OldSignature: args[2],
				NewSignature: args[3],
			})
			if err != nil {
				return err
			}
			return PrintResult(cmd, res)
		},
	}
}

func (o *correctionOutcome) WriteText(w io.Writer) {
	c := o.Correction
	if !o.Applied {
		fmt.Fprintf(w, "%s %s %s: no change\n", color.YellowString("="), c.Filename, c.Category)
		return
	}
	fmt.Fprintf(w, "%s %s %s: %q -> %q\n", color.GreenString("✓"), c.Filename, c.Category, c.OldSignature, c.NewSignature)
	if !o.Persisted || o.ephemeral {
		fmt.Fprintln(w, color.YellowString("  not persisted: configure recognition.correction_backend to keep it"))
	}
}

func (o *correctionOutcome) TableHeaders() []string {
	return []string{"FILE", "CATEGORY", "OLD", "NEW", "APPLIED", "PERSISTED"}
}

func (o *correctionOutcome) TableRows() [][]string {
	c := o.Correction
	return [][]string{{c.Filename, c.Category, c.OldSignature, c.NewSignature, fmt.Sprint(o.Applied), fmt.Sprint(o.Persisted)}}
}

//Personal.AI order the ending
