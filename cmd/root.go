package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gemini-relay/api"
	"gemini-relay/backend"
	"gemini-relay/config"
	"gemini-relay/logging"
)

var version = "0.1.0"

var cliArgs *config.CliConfig

var rootCmd = &cobra.Command{
	Use:   "gemini-relay",
	Short: "Relay text prompts to the Gemini API",
	Long: `gemini-relay serves POST /api/generate, forwards the prompt to the Gemini
generateContent API and answers with the generated text. A small web page is
served on / for trying it out.

The API key is read from GEMINI_API_KEY (a .env file in the working directory is
loaded if present).`,
	Version:      version,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	cliArgs = config.RegisterFlags(rootCmd.Flags())
}

func run(cmd *cobra.Command, args []string) error {
	if cliArgs.Debug {
		logging.InitLogger(logrus.DebugLevel)
	} else {
		logging.InitLogger(logrus.InfoLevel)
	}
	log := logging.GetLogger()

	if !config.LoadEnvFile() {
		log.Debugln("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig(cliArgs.ConfigFile, cmd.Flags())
	if err != nil {
		return err
	}
	log.Debugf("Using model %s at %s (timeout %s)", cfg.Model, cfg.APIRoot, cfg.RequestTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := backend.NewBackendClient(cfg)
	return api.StartServer(ctx, cfg, api.NewRouter(cfg, client))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.GetLogger().Errorln(err)
		os.Exit(1)
	}
}
