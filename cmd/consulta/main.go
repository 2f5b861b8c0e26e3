// Package main is the consulta CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/andeslegal/consulta/internal/classify"
	"github.com/andeslegal/consulta/internal/config"
	"github.com/andeslegal/consulta/internal/corpus"
	"github.com/andeslegal/consulta/internal/docstore"
	"github.com/andeslegal/consulta/internal/engine"
	"github.com/andeslegal/consulta/internal/generation"
	"github.com/andeslegal/consulta/internal/models"
	"github.com/andeslegal/consulta/internal/retrieval"
	"github.com/andeslegal/consulta/internal/server"
	"github.com/andeslegal/consulta/internal/synthesis"
	"github.com/andeslegal/consulta/internal/vectorindex"
	"github.com/andeslegal/consulta/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/consulta/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ask":
		runAsk()
	case "suggest":
		runSuggest()
	case "version", "--version", "-v":
		fmt.Printf("consulta version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// Components holds the wired pipeline and its closable collaborators.
type Components struct {
	Engine  *engine.Engine
	Storage docstore.Storage
	Index   vectorindex.Index
	Loader  *corpus.Loader
	logger  *zap.Logger
}

// Close releases collaborator resources.
func (c *Components) Close() {
	if c.Index != nil {
		if err := c.Index.Close(); err != nil && c.logger != nil {
			c.logger.Warn("index close failed", zap.Error(err))
		}
	}
	if c.Storage != nil {
		if err := c.Storage.Close(); err != nil && c.logger != nil {
			c.logger.Warn("storage close failed", zap.Error(err))
		}
	}
}

// initializeComponents wires the pipeline from config. withStorage controls
// whether the document database is opened (the one-shot commands skip it).
func initializeComponents(cfg *config.Config, logger *zap.Logger, withStorage bool) (*Components, error) {
	c := &Components{logger: logger}

	switch cfg.Index.Provider {
	case "http":
		c.Index = vectorindex.NewHTTPIndex(cfg.Index.Endpoint, cfg.Index.APIKey, cfg.Index.Timeout())
	case "bleve":
		bleveIdx, err := vectorindex.NewBleveIndex(cfg.Index.Path)
		if err != nil {
			return nil, fmt.Errorf("opening local index: %w", err)
		}
		c.Index = bleveIdx
		c.Loader = corpus.NewLoader(bleveIdx, logger)
	default:
		return nil, fmt.Errorf("unknown index provider %q", cfg.Index.Provider)
	}

	generator := generation.NewHTTPGenerator(
		cfg.Generation.Endpoint,
		cfg.Generation.APIKey,
		cfg.Generation.Model,
		cfg.Generation.Timeout(),
	)

	retriever := retrieval.NewRetriever(c.Index, &cfg.Retrieval, logger)
	synthesizer := synthesis.NewSynthesizer(generator, logger)

	c.Engine = engine.New(c.Index, retriever, synthesizer, logger, engine.Options{
		MaxQuestionLength: cfg.Engine.MaxQuestionLength,
		CacheSize:         cfg.Engine.CacheSize,
	})

	if withStorage {
		storage, err := docstore.NewSQLiteStorage(cfg.Storage.DatabasePath)
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("opening document store: %w", err)
		}
		c.Storage = storage
	}
	return c, nil
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger, true)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if components.Loader != nil && cfg.Corpus.Path != "" {
		if files, err := components.Loader.LoadDir(cfg.Corpus.Path); err != nil {
			logger.Warn("corpus load failed", zap.String("path", cfg.Corpus.Path), zap.Error(err))
		} else {
			logger.Info("corpus ready", zap.Int("files", files))
		}
		if cfg.Corpus.Watch {
			watchSvc := corpus.NewWatcher(cfg.Corpus.Path, components.Loader, logger)
			if err := watchSvc.Start(watchCtx); err != nil {
				logger.Warn("corpus watcher failed to start", zap.Error(err))
			} else {
				defer watchSvc.Stop()
			}
		}
	}

	srv := server.NewServer(components.Engine, components.Storage, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runAsk() {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	jsonOut := fs.Bool("json", false, "print the full response envelope as JSON")
	contextText := fs.String("context", "", "additional requester context")
	_ = fs.Parse(os.Args[2:])

	question := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if question == "" {
		fmt.Println("Usage: consulta ask [flags] <question>")
		os.Exit(1)
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, false)
	if err != nil {
		fmt.Printf("Failed to initialize components: %v\n", err)
		os.Exit(1)
	}
	defer components.Close()

	if components.Loader != nil && cfg.Corpus.Path != "" {
		if _, err := components.Loader.LoadDir(cfg.Corpus.Path); err != nil {
			logger.Warn("corpus load failed", zap.Error(err))
		}
	}

	env, err := components.Engine.Answer(context.Background(), &models.Question{
		Text:    question,
		Context: *contextText,
	})
	if err != nil {
		fmt.Printf("Invalid question: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		data, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			fmt.Printf("Failed to encode response: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	fmt.Println(env.Answer)
	fmt.Println()
	fmt.Printf("Categoría: %s | Confianza: %.2f | %d ms\n", env.Category, env.Confidence, env.ResponseTimeMS)
	if len(env.Sources) > 0 {
		fmt.Printf("Fuentes: %s\n", strings.Join(env.Sources, ", "))
	}
}

func runSuggest() {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	category := fs.String("category", "", "category to suggest for (formation|labor|tax|contractual|general)")
	_ = fs.Parse(os.Args[2:])

	sets := engine.SuggestionCatalog()
	if *category != "" {
		sets = []engine.SuggestionSet{engine.Suggestions(classify.ParseCategory(*category))}
	}
	for _, set := range sets {
		fmt.Printf("%s\n", set.Title)
		for _, q := range set.Queries {
			fmt.Printf("  - %s\n", q)
		}
		fmt.Println()
	}
}

func printUsage() {
	fmt.Print(`consulta - asesor legal para PyMEs colombianas

Usage:
  consulta server [-config path] [-debug]    start the HTTP API
  consulta ask [-config path] [-json] [-context text] <question>
                                             answer one question
  consulta suggest [-category name]          print example questions
  consulta version                           print the version

`)
}
