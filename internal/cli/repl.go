package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"

	"github.com/jamesstrohm55/ALFRED/internal/automation"
	"github.com/jamesstrohm55/ALFRED/internal/brain"
	"github.com/jamesstrohm55/ALFRED/internal/calendar"
	"github.com/jamesstrohm55/ALFRED/internal/config"
	"github.com/jamesstrohm55/ALFRED/internal/files"
	"github.com/jamesstrohm55/ALFRED/internal/llm"
	"github.com/jamesstrohm55/ALFRED/internal/logger"
	"github.com/jamesstrohm55/ALFRED/internal/memory"
	"github.com/jamesstrohm55/ALFRED/internal/sysmon"
	"github.com/jamesstrohm55/ALFRED/internal/weather"
)

const (
	Version = "0.1.0"

	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// Run starts the interactive assistant.
func Run(cfg *config.Config) error {
	printWelcome()

	if !cfg.IsPrimaryConfigured() {
		return promptAPIKey(cfg)
	}

	b, cleanup, err := BuildBrain(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return runREPL(b, cfg)
}

// BuildBrain assembles the assistant from configuration. The returned
// cleanup closes the vector index when one was opened.
func BuildBrain(cfg *config.Config) (*brain.Brain, func(), error) {
	primary := llm.NewOpenAI(cfg.Model.Primary.APIKey, cfg.Model.Primary.BaseURL, cfg.Model.Primary.Model)

	var secondary llm.Provider
	if cfg.Model.Secondary.APIKey != "" {
		secondary = llm.NewClaude(cfg.Model.Secondary.APIKey, cfg.Model.Secondary.Model)
	}
	fallback := llm.NewFallbackClient(primary, secondary)

	// Semantic memory is best-effort: a missing index degrades recall
	// to exact keys only.
	var index *memory.Index
	cleanup := func() {}
	if cfg.Model.Primary.APIKey != "" {
		embedder := llm.NewOpenAIEmbedder(cfg.Model.Primary.APIKey, cfg.Model.EmbeddingModel)
		ix, err := memory.NewIndex(cfg.Memory.VectorDBPath, embedder, memory.DefaultEmbeddingDimension)
		if err != nil {
			logger.Warn("Semantic memory unavailable: %v", err)
		} else {
			index = ix
			cleanup = func() { ix.Close() }
		}
	}

	store, err := memory.NewStore(cfg.Memory.FilePath, index)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to initialize memory store: %w", err)
	}

	weatherHandler := weather.NewHandler(weather.NewService(
		cfg.Weather.APIKey,
		cfg.Weather.BaseURL,
		cfg.Weather.GeoURL,
		time.Duration(cfg.Weather.TimeoutSeconds)*time.Second,
	))

	var adder calendar.EventAdder
	if cfg.Calendar.Endpoint != "" {
		adder = calendar.NewClient(cfg.Calendar.Endpoint, time.Duration(cfg.Calendar.TimeoutSeconds)*time.Second)
	}
	calendarHandler := calendar.NewHandler(calendar.NewParser(), adder)

	fileHandler := files.NewHandler(
		files.NewAssistant(cfg.Files.SearchRoot, cfg.Files.MaxResults),
		confirmDangerousOp,
	)

	sysHandler := sysmon.NewHandler(nil)

	runner := automation.NewRunner(
		automation.NewCommands(cfg.Automation.MusicPath, nil),
		automation.NewRatioMatcher(automation.DefaultCutoff),
		automation.NewCommandLog(cfg.Automation.LogPath),
	)

	b := brain.New(cfg.Model.SystemPrompt,
		brain.WithMemoryHandler(memory.NewHandler(store)),
		brain.WithService(calendarHandler, "calendar", "schedule", "remind", "event"),
		brain.WithService(weatherHandler, "weather", "forecast", "temperature"),
		brain.WithService(fileHandler, "file", "document", "upload", "download"),
		brain.WithService(sysHandler, "system", "monitor", "status"),
		brain.WithAutomation(runner),
		brain.WithLLM(fallback),
		brain.WithHistory(brain.NewHistory(cfg.Conversation.MaxHistory)),
	)
	return b, cleanup, nil
}

// printWelcome prints welcome message
func printWelcome() {
	fmt.Printf("\n%sA.L.F.R.E.D v%s%s - At your service, sir\n", colorCyan, Version, colorReset)
	fmt.Printf("%sType /help for help, /exit to quit%s\n\n", colorGray, colorReset)
}

// promptAPIKey prompts user to configure the primary API key
func promptAPIKey(cfg *config.Config) error {
	fmt.Printf("%s⚠️  OpenAI API Key not configured%s\n\n", colorYellow, colorReset)

	rl, err := readline.New("Please enter your OpenAI API Key: ")
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	apiKey, err := rl.Readline()
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return fmt.Errorf("API Key cannot be empty")
	}

	cfg.Model.Primary.APIKey = apiKey
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("\n%s✅ API Key saved%s\n\n", colorGreen, colorReset)

	return Run(cfg)
}

// confirmDangerousOp asks the user to confirm a destructive operation.
func confirmDangerousOp(prompt string) bool {
	fmt.Printf("%s%s (yes/no): %s", colorYellow, prompt, colorReset)

	var answer string
	if _, err := fmt.Scanln(&answer); err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "yes" || answer == "y"
}

// getHistoryFilePath returns the readline history file path
func getHistoryFilePath() string {
	dir, err := config.ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}

// runREPL runs the interactive REPL with readline support
func runREPL(b *brain.Brain, cfg *config.Config) error {
	rlConfig := &readline.Config{
		Prompt:            fmt.Sprintf("%sYou: %s", colorGreen, colorReset),
		HistoryFile:       getHistoryFilePath(),
		HistoryLimit:      1000,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	}

	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Printf("\n\n%sGoodbye, sir.%s\n", colorCyan, colorReset)
		cancel()
		rl.Close()
		os.Exit(0)
	}()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				fmt.Printf("\n%sPress Ctrl+C again or type /exit to quit%s\n", colorYellow, colorReset)
				continue
			}
			if err == io.EOF {
				fmt.Printf("\n%sGoodbye, sir.%s\n", colorCyan, colorReset)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if handleCommand(input) {
				continue
			}
			return nil // /exit command
		}

		processInput(ctx, b, input)
	}
}

// processInput sends user input through the assistant and prints the reply
func processInput(ctx context.Context, b *brain.Brain, input string) {
	fmt.Printf("\n%sALFRED: %s", colorBlue, colorReset)
	fmt.Println(b.Respond(ctx, input))
	fmt.Println()
}

// handleCommand handles built-in commands, returns true to continue loop, false to exit
func handleCommand(cmd string) bool {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return true
	}

	switch strings.ToLower(parts[0]) {
	case "/help":
		printHelp()
		return true

	case "/exit", "/quit", "/q":
		fmt.Printf("%sGoodbye, sir.%s\n", colorCyan, colorReset)
		return false

	case "/config":
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("%s❌ Failed to load config: %v%s\n", colorRed, err, colorReset)
		} else {
			fmt.Println(cfg.String())
		}
		return true

	case "/version":
		fmt.Printf("A.L.F.R.E.D v%s\n", Version)
		return true

	default:
		fmt.Printf("%sUnknown command: %s (type /help for help)%s\n", colorYellow, parts[0], colorReset)
		return true
	}
}

// printHelp prints the built-in command reference
func printHelp() {
	fmt.Printf(`
%sBuilt-in commands:%s
  /help      Show this help
  /config    Show current configuration
  /version   Show version
  /exit      Quit

%sThings you can say:%s
  remember that my favorite color is blue
  what do you remember about my favorite color
  what's the weather in London
  add meeting Team standup tomorrow at 10am for 1 hour
  find report.pdf
  system status
  open browser / tell time / play music / lock computer

Anything else goes to the language model.

`, colorCyan, colorReset, colorCyan, colorReset)
}
