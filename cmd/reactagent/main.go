package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"reactagent/internal/agent"
	"reactagent/internal/config"
	"reactagent/internal/console"
	"reactagent/internal/github"
	"reactagent/internal/llm"
	llmclient "reactagent/internal/llmClient"
	"reactagent/internal/scaffold"
)

var (
	groqAPIKey  string
	githubToken string
	prompt      string
	verbose     bool
	envFile     string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "reactagent",
	Short: "Starts the React ReAct agent.",
	Long: `Starts the React ReAct agent.

The agent interviews you about a single-page web application, reads your
GitHub READMEs when you give it a username, generates the App component and
scaffolds, installs and starts the project under PROJECT_PATH.

First create a .env.local file with:
  PROJECT_PATH=<directory the project is created in>
  GROQ_API_KEY=<your Groq API key>
  GH_TOKEN=<your GitHub access token>`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			cfg = zap.NewDevelopmentConfig()
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&groqAPIKey, "groq-api-key", "k", "", "Groq API key, saved into the env file")
	rootCmd.Flags().StringVarP(&githubToken, "github-token", "g", "", "GitHub access token, saved into the env file")
	rootCmd.Flags().StringVarP(&prompt, "prompt", "p", "", "starting prompt for the agent")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print tool calls and debug logs")
	rootCmd.Flags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "env file holding credentials and settings")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, console.ErrorText(err.Error()))
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	out := console.NewPrinter(cmd.OutOrStdout(), verbose)
	if groqAPIKey == "" && githubToken == "" && prompt == "" && !verbose {
		return cmd.Help()
	}

	for _, kv := range []struct{ key, value string }{
		{config.KeyGroqAPIKey, groqAPIKey},
		{config.KeyGitHubToken, githubToken},
	} {
		if kv.value == "" {
			continue
		}
		if err := config.PersistEnv(envFile, kv.key, kv.value); err != nil {
			return err
		}
		out.Info(fmt.Sprintf("%s environment variable added to %s.", kv.key, envFile))
	}

	if !config.EnvFileExists(envFile) {
		return fmt.Errorf("%s file not found. Please create one with the necessary environment variables", envFile)
	}
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	cfg.Verbose = verbose
	if err := cfg.Validate(); err != nil {
		return err
	}

	if prompt == "" {
		out.Info("Your environment is ready to start the React ReAct agent.")
		out.Info(`Run the following command to start the agent:
reactagent --prompt "Build a portfolio website."`)
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return chat(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), out)
}

func chat(ctx context.Context, cfg *config.Config, in io.Reader, w io.Writer, out *console.Printer) error {
	client, err := newChatClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	session, err := agent.New(cfg, agent.Deps{
		Chat:   client,
		GitHub: github.NewClient(cfg.GitHubAPIURL, cfg.GitHubToken, cfg.GitHubTimeout, logger),
		Builder: &scaffold.Scaffolder{
			Root:    cfg.ProjectPath,
			Runner:  scaffold.ExecRunner{},
			Timeout: cfg.ScaffoldTimeout,
			Log:     logger,
		},
		Out: out,
		In:  console.NewLineReader(in, w),
		Log: logger,
	})
	if err != nil {
		return err
	}
	logger.Info("session started", zap.String("session", session.ID), zap.String("provider", cfg.Provider))

	if err := session.Chat(ctx, prompt); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return nil
}

func newChatClient(ctx context.Context, cfg *config.Config) (llmclient.ChatClient, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return llmclient.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.ChatModel)
	default:
		c, err := llmclient.NewGroqClient(cfg.GroqAPIKey, cfg.ChatModel, cfg.GroqBaseURL)
		if err != nil {
			return nil, err
		}
		c.SetRateLimitHeaderHandler(llm.RateLimitLogger(logger))
		return c, nil
	}
}
