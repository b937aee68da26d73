// Package config resolves the agent's settings from an env file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultEnvFile = ".env.local"

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// Environment keys.
const (
	KeyGroqAPIKey      = "GROQ_API_KEY"
	KeyGeminiAPIKey    = "GEMINI_API_KEY"
	KeyGitHubToken     = "GH_TOKEN"
	KeyProjectPath     = "PROJECT_PATH"
	KeyProvider        = "LLM_PROVIDER"
	KeyChatModel       = "LLM_CHAT_MODEL"
	KeyBareModel       = "LLM_BARE_MODEL"
	KeyGroqBaseURL     = "GROQ_BASE_URL"
	KeyGitHubAPIURL    = "GITHUB_API_URL"
	KeyGitHubTimeout   = "GITHUB_TIMEOUT"
	KeyScaffoldTimeout = "SCAFFOLD_TIMEOUT"
	KeyMaxDepth        = "AGENT_MAX_DEPTH"
	KeyWindow          = "AGENT_WINDOW"
	KeyExitKeyword     = "AGENT_EXIT_KEYWORD"
)

var ErrMissingConfig = errors.New("config: missing required configuration")

var defaultModels = map[string]string{
	ProviderGroq:   "llama-3.3-70b-versatile",
	ProviderGemini: "gemini-2.0-flash",
}

type Config struct {
	EnvFile  string
	Provider string
	Verbose  bool

	GroqAPIKey   string
	GeminiAPIKey string
	GitHubToken  string
	ProjectPath  string

	ChatModel   string
	BareModel   string
	GroqBaseURL string

	GitHubAPIURL    string
	GitHubTimeout   time.Duration
	ScaffoldTimeout time.Duration

	MaxDepth    int
	Window      int
	ExitKeyword string
}

// Load reads envFile (when it exists) and the environment. Environment values
// win over the file, the file wins over defaults.
func Load(envFile string) (*Config, error) {
	if strings.TrimSpace(envFile) == "" {
		envFile = DefaultEnvFile
	}
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(KeyProvider, ProviderGroq)
	v.SetDefault(KeyGitHubAPIURL, "https://api.github.com")
	v.SetDefault(KeyGitHubTimeout, 15*time.Second)
	v.SetDefault(KeyScaffoldTimeout, 120*time.Second)
	v.SetDefault(KeyMaxDepth, 5)
	v.SetDefault(KeyWindow, 10)
	v.SetDefault(KeyExitKeyword, "exit")

	fileVals, err := godotenv.Read(envFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("config: read %s: %w", envFile, err)
	default:
		m := make(map[string]any, len(fileVals))
		for k, val := range fileVals {
			m[k] = val
		}
		if err := v.MergeConfigMap(m); err != nil {
			return nil, fmt.Errorf("config: merge %s: %w", envFile, err)
		}
	}

	provider := strings.ToLower(strings.TrimSpace(v.GetString(KeyProvider)))
	cfg := &Config{
		EnvFile:         envFile,
		Provider:        provider,
		GroqAPIKey:      strings.TrimSpace(v.GetString(KeyGroqAPIKey)),
		GeminiAPIKey:    strings.TrimSpace(v.GetString(KeyGeminiAPIKey)),
		GitHubToken:     strings.TrimSpace(v.GetString(KeyGitHubToken)),
		ProjectPath:     strings.TrimSpace(v.GetString(KeyProjectPath)),
		ChatModel:       firstNonEmpty(v.GetString(KeyChatModel), defaultModels[provider]),
		BareModel:       firstNonEmpty(v.GetString(KeyBareModel), v.GetString(KeyChatModel), defaultModels[provider]),
		GroqBaseURL:     strings.TrimSpace(v.GetString(KeyGroqBaseURL)),
		GitHubAPIURL:    strings.TrimSpace(v.GetString(KeyGitHubAPIURL)),
		GitHubTimeout:   v.GetDuration(KeyGitHubTimeout),
		ScaffoldTimeout: v.GetDuration(KeyScaffoldTimeout),
		MaxDepth:        v.GetInt(KeyMaxDepth),
		Window:          v.GetInt(KeyWindow),
		ExitKeyword:     v.GetString(KeyExitKeyword),
	}
	return cfg, nil
}

// Validate reports every required key that is missing for the selected
// provider.
func (c *Config) Validate() error {
	var missing []string
	switch c.Provider {
	case ProviderGroq:
		if c.GroqAPIKey == "" {
			missing = append(missing, KeyGroqAPIKey)
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			missing = append(missing, KeyGeminiAPIKey)
		}
	default:
		return fmt.Errorf("config: unknown %s %q", KeyProvider, c.Provider)
	}
	if c.GitHubToken == "" {
		missing = append(missing, KeyGitHubToken)
	}
	if c.ProjectPath == "" {
		missing = append(missing, KeyProjectPath)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}
	if c.MaxDepth <= 0 || c.Window <= 0 {
		return fmt.Errorf("config: %s and %s must be positive", KeyMaxDepth, KeyWindow)
	}
	return nil
}

// PersistEnv sets key=value in the env file at path, keeping other entries.
// The file is created when absent.
func PersistEnv(path, key, value string) error {
	vals, err := godotenv.Read(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		vals = map[string]string{}
	}
	vals[key] = value
	if err := godotenv.Write(vals, path); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// EnvFileExists reports whether path names a regular file.
func EnvFileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && st.Mode().IsRegular()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
