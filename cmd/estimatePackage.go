package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kwalitee/kwalitee/models"
)

// estimatePackageCmd represents the estimatePackage command
var estimatePackageCmd = &cobra.Command{
	Use:   "estimate_package",
	Short: "Estimates the quality of a single package",
	Long: `Estimates the consolidated quality of a single npm package.

The package may be given as a bare registry name or as a package URL:

  kwalitee estimate_package lodash
  kwalitee estimate_package pkg:npm/%40angular/core

The repository descriptor feeding the issue signal is resolved from the
package's registry metadata.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		name, err := resolvePackageName(args[0])
		if err != nil {
			return err
		}

		estimator, err := GetEstimator(ctx)
		if err != nil {
			return err
		}

		quality, err := estimator.EstimatePackage(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to estimate package %s: %w", name, err)
		}

		formatter := GetFormatter()
		return formatter.Format(ctx, []*models.PackageQuality{quality})
	},
}

func resolvePackageName(arg string) (string, error) {
	if !strings.HasPrefix(arg, "pkg:") {
		return arg, nil
	}

	purl, err := models.NewNpmPurl(arg)
	if err != nil {
		return "", fmt.Errorf("failed to parse package url %q: %w", arg, err)
	}
	return purl.PackageName(), nil
}

func init() {
	rootCmd.AddCommand(estimatePackageCmd)

	estimatePackageCmd.Flags().StringVarP(&Token, "token", "t", "", "GitHub access token (env: GH_TOKEN)")

	_ = viper.BindPFlag("token", estimatePackageCmd.Flags().Lookup("token"))
	_ = viper.BindEnv("token", "GH_TOKEN")
}
