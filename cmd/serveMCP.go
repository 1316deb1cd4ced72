package cmd

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveMcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Starts the kwalitee MCP server",
	Long: `Starts the kwalitee MCP server.
Example to start the MCP server: kwalitee serve-mcp --token "$GH_TOKEN"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Token = viper.GetString("token")
		ctx := cmd.Context()
		s := server.NewMCPServer("kwalitee", Version)
		estimator, err := GetEstimator(ctx)
		if err != nil {
			return err
		}

		estimatePackageTool := mcp.NewTool(
			"estimate_package",
			mcp.WithDescription("Estimates the consolidated quality score of an npm package."),
			mcp.WithString("package", mcp.Required(), mcp.Description("The npm package name or pkg:npm package URL to estimate.")),
		)

		s.AddTool(estimatePackageTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			arg, err := request.RequireString("package")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			name, err := resolvePackageName(arg)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			quality, err := estimator.EstimatePackage(ctx, name)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			jsonData, err := json.Marshal(quality)
			if err != nil {
				return mcp.NewToolResultError("Failed to marshal result to JSON: " + err.Error()), nil
			}
			return mcp.NewToolResultText(string(jsonData)), nil
		})

		return server.ServeStdio(s)
	},
}

func init() {
	rootCmd.AddCommand(serveMcpCmd)

	serveMcpCmd.Flags().StringVarP(&Token, "token", "t", "", "GitHub access token (env: GH_TOKEN)")

	_ = viper.BindPFlag("token", serveMcpCmd.Flags().Lookup("token"))
	_ = viper.BindEnv("token", "GH_TOKEN")
}
