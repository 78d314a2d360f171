package config

const (
	defaultSiteBaseURL = "https://moneymatrix.me"
	defaultSiteName    = "MoneyMatrix.me"
	defaultSiteLogoURL = "https://moneymatrix.me/logo.png"

	defaultPublishIntervalHours = 2
	defaultGenerateDelaySeconds = 2
	defaultMaxBacklinksPerRun   = 3

	defaultAIBaseURL     = "https://api.openai.com/v1"
	defaultAIModel       = "gpt-4o-mini"
	defaultAIMaxTokens   = 2000
	defaultAITemperature = 0.7

	defaultImagesPerArticle = 3
	defaultImagesPerPage    = 5
	defaultImageSearchDelay = 500
	defaultPostDelayMinSec  = 30
	defaultPostDelayMaxSec  = 60

	defaultBuildCommand   = "npm run build"
	defaultBuildOutputDir = "dist"
	defaultDeployCommand  = "npx wrangler publish"

	defaultPollInterval       = 300
	defaultErrorRetryInterval = 600

	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultDataDir        = "~/.local/share/moneypress"
	defaultCategoriesFile = "data/categories.json"
	defaultTopicsFile     = "data/topics.json"

	// PlaceholderCredential marks sample credentials that have not been
	// filled in. Preflight treats any credential with this prefix as absent.
	PlaceholderCredential = "YOUR_"
)

func defaultRotation() []string {
	return []string{"medium", "dev_to", "blogger"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Site: Site{
			BaseURL: defaultSiteBaseURL,
			Name:    defaultSiteName,
			LogoURL: defaultSiteLogoURL,
		},
		Content: Content{
			PublishIntervalHours: defaultPublishIntervalHours,
			GenerateDelaySeconds: defaultGenerateDelaySeconds,
			CreateBacklinks:      true,
			MaxBacklinksPerRun:   defaultMaxBacklinksPerRun,
		},
		AI: AI{
			BaseURL:     defaultAIBaseURL,
			Model:       defaultAIModel,
			MaxTokens:   defaultAIMaxTokens,
			Temperature: defaultAITemperature,
		},
		Images: Images{
			PerArticle:    defaultImagesPerArticle,
			SearchPerPage: defaultImagesPerPage,
			SearchDelayMS: defaultImageSearchDelay,
		},
		Platforms: Platforms{
			Rotation:        defaultRotation(),
			PostDelayMinSec: defaultPostDelayMinSec,
			PostDelayMaxSec: defaultPostDelayMaxSec,
		},
		Build: Build{
			Command:   defaultBuildCommand,
			OutputDir: defaultBuildOutputDir,
		},
		Deploy: Deploy{
			Command: defaultDeployCommand,
		},
		Workflow: Workflow{
			PollInterval:       defaultPollInterval,
			ErrorRetryInterval: defaultErrorRetryInterval,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Paths: Paths{
			DataDir:        defaultDataDir,
			CategoriesFile: defaultCategoriesFile,
			TopicsFile:     defaultTopicsFile,
		},
	}
}
