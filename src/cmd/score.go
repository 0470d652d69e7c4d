package cmd

import (
	"fmt"

	"github.com/warp-contracts/batch-registry/src/batch"

	"github.com/spf13/cobra"
)

var (
	moisture string
	purity   string
)

func init() {
	scoreCmd.Flags().StringVar(&moisture, "moisture", "", "moisture in percent, 0-100")
	scoreCmd.Flags().StringVar(&purity, "purity", "", "purity, 1-10")
	RootCmd.AddCommand(scoreCmd)
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Print the quality score of an assessment",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		score := batch.ParseScore(moisture, purity)
		fmt.Fprintln(cmd.OutOrStdout(), score.String())
		if !score.Valid() {
			return batch.ErrInvalidScoreInput
		}
		return
	},
}
