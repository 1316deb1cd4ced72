package models

type Config struct {
	Token         string `mapstructure:"token"`
	RegistryURL   string `mapstructure:"registry_url"`
	DownloadsURL  string `mapstructure:"downloads_url"`
	GithubBaseURL string `mapstructure:"github_base_url"`
}

func DefaultConfig() *Config {
	return &Config{
		RegistryURL:  "https://registry.npmjs.org",
		DownloadsURL: "https://api.npmjs.org",
	}
}
