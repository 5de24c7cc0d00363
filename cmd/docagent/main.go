package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/agent"
	"github.com/fwojciec/docagent/anthropic"
	"github.com/fwojciec/docagent/fs"
	"github.com/fwojciec/docagent/gemini"
	"github.com/fwojciec/docagent/goquery"
	"github.com/fwojciec/docagent/htmltomarkdown"
	dahttp "github.com/fwojciec/docagent/http"
	"github.com/fwojciec/docagent/mcp"
	"github.com/fwojciec/docagent/openai"
	"github.com/fwojciec/docagent/readability"
	daredis "github.com/fwojciec/docagent/redis"
	"github.com/fwojciec/docagent/rod"
	daslog "github.com/fwojciec/docagent/slog"
	"github.com/fwojciec/docagent/sqlite"
	"github.com/fwojciec/docagent/tools"
	"github.com/fwojciec/docagent/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Input for the interactive chat.
	Stdin io.Reader

	// Config file read when --config is not given. A missing file is fine.
	ConfigPath string

	// Services for end-to-end testing. Nil fields are built from flags.
	Fetcher   docagent.Fetcher
	Completer docagent.Completer

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin:      os.Stdin,
		ConfigPath: defaultConfigPath(),
	}
}

// Close releases everything Run opened, in reverse order.
func (m *Main) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		errs = append(errs, m.closers[i]())
	}
	m.closers = nil
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:          ctx,
		Stdin:        m.Stdin,
		Stdout:       stdout,
		Stderr:       stderr,
		Instructions: agent.DefaultInstructions,
	}

	options := []kong.Option{
		kong.Name("docagent"),
		kong.Description("Document analysis assistant with persistent document memory."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	}

	configPath, explicit := configFlag(args, m.ConfigPath)
	resolver, err := loadConfig(configPath, explicit)
	if err != nil {
		return err
	}
	if resolver != nil {
		options = append(options, kong.Resolvers(resolver))
	}

	cli := &CLI{}
	parser, err := kong.New(cli, options...)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger := newLogger(stderr, cli.Verbose)
	defer m.Close()

	store, err := m.openStore(ctx, cli, logger)
	if err != nil {
		if cli.Store != "redis" {
			fmt.Fprintln(stderr, "Hint: Use --store-dir to choose a writable document memory directory")
		}
		return err
	}
	deps.Store = store
	deps.Tools = &tools.Toolset{
		Store:     store,
		Converter: newConverter(cli.Convert),
		Inspector: goquery.NewInspector(),
		Model:     cli.model(),
		Logger:    logger,
	}

	switch cmd {
	case "chat", "ask", "fetch", "serve":
		fetcher, err := m.fetcher(cli, logger)
		if err != nil {
			if cli.Fetcher == "browser" {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --fetcher=browser")
			}
			return fmt.Errorf("failed to start fetcher: %w", err)
		}
		deps.Tools.Fetcher = fetcher

		if cli.CountTokens {
			counter, err := gemini.NewTokenCounter("")
			if err != nil {
				return fmt.Errorf("failed to create token counter: %w", err)
			}
			deps.Tools.TokenCounter = counter
		}
	}

	switch cmd {
	case "chat", "ask", "serve":
		completer, err := m.completer(ctx, cli, stderr)
		if err != nil {
			return err
		}
		completer = daslog.NewLoggingCompleter(completer, logger)
		deps.Tools.Completer = completer

		runner := agent.NewRunner(completer,
			agent.WithModel(cli.model()),
			agent.WithMaxSteps(cli.MaxSteps),
			agent.WithLogger(logger),
		)
		deps.Agent = daslog.NewLoggingAgent(runner, logger)
	}

	if cmd == "serve" {
		server, err := mcp.NewServer(deps.Tools)
		if err != nil {
			return fmt.Errorf("failed to create MCP server: %w", err)
		}
		deps.Server = server
	}

	return kongCtx.Run(deps)
}

func (m *Main) openStore(ctx context.Context, cli *CLI, logger *slog.Logger) (docagent.DocumentStore, error) {
	switch cli.Store {
	case "redis":
		client, err := daredis.NewClient(ctx, cli.RedisAddr, cli.RedisPassword, cli.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %q: %w", cli.RedisAddr, err)
		}
		m.closers = append(m.closers, client.Close)
		return daslog.NewLoggingStore(daredis.NewDocumentStore(client), logger), nil
	case "sqlite":
		if err := os.MkdirAll(cli.StoreDir, 0755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
		db := sqlite.NewDB(filepath.Join(cli.StoreDir, sqliteFilename))
		if err := db.Open(); err != nil {
			return nil, fmt.Errorf("failed to open database in %q: %w", cli.StoreDir, err)
		}
		m.closers = append(m.closers, db.Close)
		return daslog.NewLoggingStore(sqlite.NewDocumentStore(db), logger), nil
	default:
		store := fs.NewDocumentStore(cli.StoreDir, fs.WithLogger(logger))
		if err := store.Open(); err != nil {
			return nil, fmt.Errorf("failed to open document memory at %q: %w", cli.StoreDir, err)
		}
		return daslog.NewLoggingStore(store, logger), nil
	}
}

func (m *Main) fetcher(cli *CLI, logger *slog.Logger) (docagent.Fetcher, error) {
	if m.Fetcher != nil {
		return daslog.NewLoggingFetcher(m.Fetcher, logger), nil
	}

	var fetcher docagent.Fetcher
	switch cli.Fetcher {
	case "browser":
		f, err := rod.NewFetcher(rod.WithTimeout(cli.FetchTimeout))
		if err != nil {
			return nil, err
		}
		fetcher = f
	default:
		fetcher = dahttp.NewFetcher(
			dahttp.WithTimeout(cli.FetchTimeout),
			dahttp.WithRateLimit(cli.FetchRPS),
		)
	}
	m.closers = append(m.closers, fetcher.Close)
	return daslog.NewLoggingFetcher(fetcher, logger), nil
}

func (m *Main) completer(ctx context.Context, cli *CLI, stderr io.Writer) (docagent.Completer, error) {
	if m.Completer != nil {
		return m.Completer, nil
	}

	switch cli.Provider {
	case "gemini":
		apiKey := cli.APIKey
		if apiKey == "" || apiKey == openai.DefaultAPIKey {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, docagent.Errorf(docagent.EINVALID, "GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewCompleter(client, cli.model()), nil
	case "anthropic":
		apiKey := cli.APIKey
		if apiKey == "" || apiKey == openai.DefaultAPIKey {
			apiKey = os.Getenv("ANTHROPIC_API_KEY")
		}
		if apiKey == "" {
			fmt.Fprintln(stderr, "ANTHROPIC_API_KEY environment variable not set")
			return nil, docagent.Errorf(docagent.EINVALID, "ANTHROPIC_API_KEY not set")
		}
		client := sdk.NewClient(option.WithAPIKey(apiKey))
		return anthropic.NewCompleter(&client, cli.model()), nil
	default:
		return openai.NewCompleter(
			openai.WithBaseURL(cli.BaseURL),
			openai.WithAPIKey(cli.APIKey),
			openai.WithModel(cli.model()),
		), nil
	}
}

// newConverter maps the --convert choice to a Converter.
func newConverter(name string) docagent.Converter {
	switch name {
	case "markdown":
		return htmltomarkdown.NewConverter()
	case "readability":
		return docagent.NewExtractingConverter(readability.NewExtractor(), htmltomarkdown.NewConverter())
	case "trafilatura":
		return docagent.NewExtractingConverter(trafilatura.NewExtractor(), htmltomarkdown.NewConverter())
	default:
		return docagent.TagStripper{}
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

const sqliteFilename = "documents.db"

func defaultConfigPath() string {
	if path := os.Getenv("DOCAGENT_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".docagent", "config.toml")
}
