package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kwalitee/kwalitee/models"
)

var threads int

// estimateFileCmd represents the estimateFile command
var estimateFileCmd = &cobra.Command{
	Use:   "estimate_file",
	Short: "Estimates the quality of every package in a manifest file",
	Long: `Estimates the consolidated quality of every package listed in a
YAML or JSON manifest file. Entries run concurrently, bounded by --threads;
each entry's pipeline stays strictly sequential inside.

Manifest format:

  packages:
    - name: lodash
      repository:
        type: git
        url: git@github.com:lodash/lodash.git
    - name: left-pad`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		manifest, err := models.LoadPackageManifest(args[0])
		if err != nil {
			return err
		}

		estimator, err := GetEstimator(ctx)
		if err != nil {
			return err
		}

		results, err := estimator.EstimateAll(ctx, manifest.Packages, &threads)
		if err != nil {
			return fmt.Errorf("failed to estimate packages from %s: %w", args[0], err)
		}

		fmt.Print("\n\n")

		formatter := GetFormatter()
		return formatter.Format(ctx, results)
	},
}

func init() {
	rootCmd.AddCommand(estimateFileCmd)

	estimateFileCmd.Flags().StringVarP(&Token, "token", "t", "", "GitHub access token (env: GH_TOKEN)")
	estimateFileCmd.Flags().IntVarP(&threads, "threads", "j", 2, "Number of packages to estimate in parallel")

	_ = viper.BindPFlag("token", estimateFileCmd.Flags().Lookup("token"))
	_ = viper.BindEnv("token", "GH_TOKEN")
}
