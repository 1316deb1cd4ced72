package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kwalitee/kwalitee/estimate"
	"github.com/kwalitee/kwalitee/formatters/json"
	"github.com/kwalitee/kwalitee/formatters/pretty"
	"github.com/kwalitee/kwalitee/models"
	"github.com/kwalitee/kwalitee/providers/github"
	"github.com/kwalitee/kwalitee/providers/npm"
)

var Format string
var Verbose bool
var (
	Version string
	Commit  string
	Date    string
)
var Token string
var cfgFile string
var config *models.Config

const (
	exitCodeErr       = 1
	exitCodeInterrupt = 2
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kwalitee",
	Short: "A Consolidated Quality Estimator for npm Packages",
	Long: `A Consolidated Quality Estimator for npm Packages.
Scores issue resolution, download popularity and version churn into a single
quality value between 0 and 1.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if Verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		output := zerolog.ConsoleWriter{Out: os.Stderr}
		output.FormatLevel = func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
		}
		log.Logger = log.Output(output)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	defer func() {
		signal.Stop(signalChan)
		cancel()
	}()

	go func() {
		select {
		case <-signalChan: // first signal, cancel context
			cancel()
		case <-ctx.Done():
			return
		}
		<-signalChan // second signal, hard exit
		os.Exit(exitCodeInterrupt)
	}()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		log.Error().Err(err).Msg("")
		os.Exit(exitCodeErr)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .kwalitee.yml in the current directory)")
	rootCmd.PersistentFlags().StringVarP(&Format, "format", "f", "pretty", "Output format (pretty, json)")
	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("registry-url", "", "Base URL of the package registry (optional)")
	rootCmd.PersistentFlags().String("downloads-url", "", "Base URL of the download statistics API (optional)")
	rootCmd.PersistentFlags().StringP("github-base-url", "b", "", "Base domain of a self-hosted GitHub instance (optional)")

	_ = viper.BindPFlag("registry_url", rootCmd.PersistentFlags().Lookup("registry-url"))
	_ = viper.BindPFlag("downloads_url", rootCmd.PersistentFlags().Lookup("downloads-url"))
	_ = viper.BindPFlag("github_base_url", rootCmd.PersistentFlags().Lookup("github-base-url"))
}

func initConfig() {
	viper.AutomaticEnv()
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(".kwalitee")
	}

	config = models.DefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			applyConfigOverrides()
			return
		} else {
			log.Error().Err(err).Msg("Can't read config")
			os.Exit(1)
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		log.Error().Err(err).Msg("Unable to unmarshal config")
		os.Exit(1)
	}
	applyConfigOverrides()
}

func applyConfigOverrides() {
	if url := viper.GetString("registry_url"); url != "" {
		config.RegistryURL = url
	}
	if url := viper.GetString("downloads_url"); url != "" {
		config.DownloadsURL = url
	}
	if domain := viper.GetString("github_base_url"); domain != "" {
		config.GithubBaseURL = domain
	}
	if config.RegistryURL == "" {
		config.RegistryURL = models.DefaultConfig().RegistryURL
	}
	if config.DownloadsURL == "" {
		config.DownloadsURL = models.DefaultConfig().DownloadsURL
	}
}

func GetFormatter() estimate.Formatter {
	switch Format {
	case "pretty":
		return &pretty.Format{}
	case "json":
		return json.NewFormat(os.Stdout)
	}
	return &pretty.Format{}
}

func GetEstimator(ctx context.Context) (*estimate.Estimator, error) {
	token := Token
	if token == "" {
		token = viper.GetString("token")
	}
	if token == "" {
		token = config.Token
	}

	issuesClient, err := github.NewClient(ctx, token, config.GithubBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	registryClient := npm.NewClient(nil, config.RegistryURL, config.DownloadsURL)

	return estimate.NewEstimator(issuesClient, registryClient), nil
}
