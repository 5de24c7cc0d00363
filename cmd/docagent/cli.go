package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/docagent"
	"github.com/fwojciec/docagent/anthropic"
	"github.com/fwojciec/docagent/gemini"
	"github.com/fwojciec/docagent/mcp"
	"github.com/fwojciec/docagent/openai"
	"github.com/fwojciec/docagent/tools"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdin        io.Reader
	Stdout       io.Writer
	Stderr       io.Writer
	Store        docagent.DocumentStore
	Tools        *tools.Toolset
	Agent        docagent.Agent
	Instructions string
	Server       *mcp.Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `help:"TOML config file (default ~/.docagent/config.toml)" placeholder:"PATH"`

	StoreDir      string        `name:"store-dir" default:"./document_memory" env:"DOCAGENT_STORE_DIR" help:"Document memory directory"`
	Store         string        `enum:"fs,sqlite,redis" default:"fs" env:"DOCAGENT_STORE" help:"Document memory backend (fs, sqlite, redis)"`
	RedisAddr     string        `name:"redis-addr" default:"localhost:6379" env:"DOCAGENT_REDIS_ADDR" help:"Redis address for --store=redis"`
	RedisPassword string        `name:"redis-password" env:"DOCAGENT_REDIS_PASSWORD" help:"Redis password"`
	RedisDB       int           `name:"redis-db" default:"0" env:"DOCAGENT_REDIS_DB" help:"Redis database number"`
	Fetcher       string        `enum:"http,browser" default:"http" env:"DOCAGENT_FETCHER" help:"Document retrieval (http, browser)"`
	Convert       string        `enum:"strip,markdown,readability,trafilatura" default:"strip" env:"DOCAGENT_CONVERT" help:"How fetched HTML becomes stored text"`
	FetchTimeout  time.Duration `name:"fetch-timeout" default:"10s" env:"DOCAGENT_FETCH_TIMEOUT" help:"Per-request fetch timeout"`
	FetchRPS      float64       `name:"fetch-rps" default:"1" env:"DOCAGENT_FETCH_RPS" help:"Requests per second per domain (0 disables)"`
	CountTokens   bool          `name:"count-tokens" env:"DOCAGENT_COUNT_TOKENS" help:"Record token counts in document metadata"`

	Provider string `enum:"openai,gemini,anthropic" default:"openai" env:"DOCAGENT_PROVIDER" help:"Language model provider (openai, gemini, anthropic)"`
	BaseURL  string `name:"base-url" default:"http://localhost:11434/v1" env:"DOCAGENT_BASE_URL" help:"OpenAI-compatible API base URL"`
	APIKey   string `name:"api-key" default:"ollama" env:"DOCAGENT_API_KEY" help:"API key for the model provider"`
	Model    string `default:"mistral" env:"DOCAGENT_MODEL" help:"Model name"`
	MaxSteps int    `name:"max-steps" default:"5" env:"DOCAGENT_MAX_STEPS" help:"Tool calls allowed per message"`

	Verbose bool `short:"v" env:"DOCAGENT_VERBOSE" help:"Log debug details to stderr"`

	Chat  ChatCmd  `cmd:"" default:"1" help:"Start an interactive session (default)"`
	Ask   AskCmd   `cmd:"" help:"Answer a single request and exit"`
	List  ListCmd  `cmd:"" help:"List documents in memory"`
	Get   GetCmd   `cmd:"" help:"Print a stored document"`
	Fetch FetchCmd `cmd:"" help:"Fetch a document into memory"`
	Serve ServeCmd `cmd:"" help:"Serve the document tools over MCP"`
}

// model returns the configured model, mapping the OpenAI-compatible
// default to the selected provider's default.
func (c *CLI) model() string {
	if c.Model != openai.DefaultModel {
		return c.Model
	}
	switch c.Provider {
	case "gemini":
		return gemini.DefaultModel
	case "anthropic":
		return anthropic.DefaultModel
	}
	return c.Model
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct{}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Query []string `arg:"" help:"Request for the assistant"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	URL      string `arg:"" help:"Document URL"`
	Metadata bool   `short:"m" help:"Print metadata as JSON instead of content"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL   string `arg:"" help:"Document URL"`
	Quiet bool   `short:"q" help:"Do not print the content"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	HTTP string `name:"http" placeholder:"ADDR" help:"Serve streamable HTTP on ADDR instead of stdio"`
}
