package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-reading-cache/internal/config"
	"github.com/goliatone/go-reading-cache/persistence"
	"github.com/goliatone/go-reading-cache/pkg/di"
	"github.com/goliatone/go-reading-cache/provider"
)

// app carries state shared by all commands of one invocation.
type app struct {
	v          *viper.Viper
	opts       []di.Option
	configFile string
	asJSON     bool

	cfg       config.Config
	container *di.Container
}

// Execute runs the command line with os.Args.
func Execute(ctx context.Context, opts ...di.Option) error {
	root, a := newRootCommand(opts...)
	defer a.close()
	return root.ExecuteContext(ctx)
}

func newRootCommand(opts ...di.Option) (*cobra.Command, *app) {
	a := &app{v: config.New(), opts: opts}

	root := &cobra.Command{
		Use:   "bibliothek",
		Short: "Literary reading companion",
		Long: `Analyses, tables of contents and chapters are generated once by Gemini and
then served from memory or the local SQLite database.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (yaml, json or toml)")
	flags.String("db", persistence.DefaultPath, "SQLite database path")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("api-key", "", "Gemini API key")
	flags.String("model", provider.DefaultModel, "Gemini model")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	flags.BoolVar(&a.asJSON, "json", false, "print results as JSON")

	for key, name := range map[string]string{
		config.KeyDBPath:      "db",
		config.KeyDebug:       "debug",
		config.KeyAPIKey:      "api-key",
		config.KeyModel:       "model",
		config.KeyMetricsAddr: "metrics-addr",
	} {
		_ = a.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		a.analysisCommand(),
		a.tocCommand(),
		a.readCommand(),
		a.worksCommand(),
		a.searchCommand(),
		a.recommendCommand(),
		a.quizCommand(),
		a.discoverCommand(),
		a.storyCommand(),
		a.chatCommand(),
		a.clearCommand(),
	)
	return root, a
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}

	container, err := di.NewContainer(ctx, cfg, a.opts...)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.container = container
	return container.Start(ctx)
}

func (a *app) close() {
	if a.container == nil {
		return
	}
	if err := a.container.Close(context.Background()); err != nil {
		a.container.Logger().WithError(err).Warn("[STORE] close failed")
	}
}

// print writes v as indented JSON with --json, otherwise calls text.
func (a *app) print(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if a.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}
