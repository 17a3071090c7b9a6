package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/webhelp/internal/cmdtree"
	"git.home.luguber.info/inful/webhelp/internal/config"
	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
	"git.home.luguber.info/inful/webhelp/internal/helptext"
)

// Global carries state shared by all subcommands.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
}

func (g *Global) stdout() io.Writer {
	if g == nil || g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"webhelp.yaml" env:"WEBHELP_CONFIG"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Generate the help site when the documented packages changed"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
	Show    ShowCmd    `cmd:"" help:"Render the help of one command in the terminal"`
	Verify  VerifyCmd  `cmd:"" help:"Check the links between generated pages"`
	History HistoryCmd `cmd:"" help:"List recent builds from the build history"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(config.NewLogger(os.Stderr, c.logLevel(""), config.LogFormatText))
	return nil
}

// logLevel resolves the level: -v, then WEBHELP_LOG_LEVEL, then the configured level.
func (c *CLI) logLevel(configured string) config.LogLevel {
	if c.Verbose {
		return config.LogLevelDebug
	}
	if env := strings.TrimSpace(os.Getenv("WEBHELP_LOG_LEVEL")); env != "" {
		return config.NormalizeLogLevel(env)
	}
	return config.NormalizeLogLevel(configured)
}

// loadConfig loads the configuration file and installs the logger it configures.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	logger := config.NewLogger(os.Stderr, root.logLevel(cfg.Logging.Level), config.NormalizeLogFormat(cfg.Logging.Format))
	slog.SetDefault(logger)
	if g != nil {
		g.Logger = logger
	}
	return cfg, nil
}

// loadTree reads the command definition file named by the configuration.
func loadTree(cfg *config.Config) (*cmdtree.Node, error) {
	if strings.TrimSpace(cfg.Tree) == "" {
		return nil, errors.ConfigError("tree is required: set it to a command definition file").Build()
	}
	def, err := cmdtree.LoadDefinition(cfg.Resolve(cfg.Tree))
	if err != nil {
		return nil, err
	}
	return cmdtree.FromDefinition(def, helptext.New)
}

func logger(g *Global) *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}
