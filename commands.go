package main

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

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"mnemo/assistant"
	"mnemo/chat"
	"mnemo/config"
	"mnemo/provider"
	"mnemo/storage"
	"mnemo/ui"
)

var (
	flagProvider  string
	flagModel     string
	flagPlain     bool
	flagCopy      bool
	flagNoArchive bool
)

var rootCmd = &cobra.Command{
	Use:   "mnemo [message]",
	Short: "One-shot assistant with a persistent distilled memory",
	Long: `mnemo sends your message to an LLM together with everything it remembers
from previous runs, prints the reply, then asks the model to distill the
exchange into a compact memory blob for next time.

The message comes from the arguments or, when none are given, from stdin:

  mnemo "my cat is named Felix"
  echo "what is my cat called?" | mnemo`,
	Version:       Version,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runExchange,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagProvider, "provider", "", "provider to use (ollama, openai, openrouter, anthropic)")
	rootCmd.Flags().StringVar(&flagModel, "model", "", "model override for this run")
	rootCmd.Flags().BoolVar(&flagPlain, "plain", false, "print the reply without markdown rendering")
	rootCmd.Flags().BoolVar(&flagCopy, "copy", false, "copy the reply to the clipboard")
	rootCmd.Flags().BoolVar(&flagNoArchive, "no-archive", false, "skip the exchange archive for this run")

	memoryCmd.AddCommand(memoryShowCmd, memoryResetCmd, memoryPathCmd)
	historyCmd.AddCommand(historySearchCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(memoryCmd, historyCmd, modelsCmd, pingCmd, configCmd)
}

func runExchange(cmd *cobra.Command, args []string) error {
	message, err := readMessage(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	completer, providerID, err := buildCompleter(cfg)
	if err != nil {
		return err
	}

	store, closeStore, err := openMemoryStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	asst := assistant.New(completer, store, assistant.Options{
		Prompts: assistant.Prompts{
			System:             cfg.SystemPrompt,
			DistillInstruction: cfg.DistillInstruction,
		},
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := asst.Run(ctx, message)
	if err != nil {
		return err
	}

	printReply(res.Reply)

	if flagCopy {
		if err := clipboard.WriteAll(res.Reply); err != nil {
			warn("could not copy reply to clipboard: %v", err)
		}
	}

	if res.DistillErr != nil {
		warn("memory not updated: %v", res.DistillErr)
	}

	if cfg.ArchiveEnabled && !flagNoArchive {
		archiveExchange(cfg, providerID, completer.Model(), message, res)
	}

	return nil
}

// readMessage takes the message from args, falling back to stdin when no
// args are given and stdin is piped.
func readMessage(args []string) (string, error) {
	message := strings.TrimSpace(strings.Join(args, " "))
	if message != "" {
		return message, nil
	}

	if ui.IsTerminal(os.Stdin) {
		return "", fmt.Errorf("no message given (pass it as an argument or pipe it on stdin)")
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read message from stdin: %w", err)
	}
	message = strings.TrimSpace(string(data))
	if message == "" {
		return "", fmt.Errorf("empty message")
	}
	return message, nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	config.InitDebugLog(cfg.DataDir())
	return cfg, nil
}

// buildCompleter resolves the provider from flag and config and constructs
// its completer. API keys come from the environment first, then the
// credential store in the data directory.
func buildCompleter(cfg *config.Config) (chat.Completer, string, error) {
	providerID := cfg.DefaultProvider
	if flagProvider != "" {
		providerID = flagProvider
	}

	pcfg := cfg.Provider(providerID)
	model := pcfg.Model
	if flagModel != "" {
		model = flagModel
	}

	creds := config.NewCredentialStore(config.SecurityMethod(cfg.CredentialsMethod))
	if err := creds.Load(cfg.DataDir()); err != nil {
		return nil, "", fmt.Errorf("failed to load credentials: %w", err)
	}

	completer, err := provider.New(provider.Config{
		Type:    provider.MapProviderIDToType(providerID),
		BaseURL: pcfg.BaseURL,
		Model:   model,
		APIKey:  creds.Get(providerID),
	})
	if err != nil {
		return nil, "", err
	}
	return completer, providerID, nil
}

// openMemoryStore constructs the configured memory backend. The returned
// close function is a no-op for the file backend.
func openMemoryStore(cfg *config.Config) (storage.MemoryStore, func(), error) {
	dataDir := cfg.DataDir()

	onCorrupt := func(err error) {
		warn("stored memory was unreadable, starting fresh: %v", err)
	}

	switch cfg.MemoryBackend {
	case "sqlite":
		store, err := storage.NewSQLiteStore(dataDir)
		if err != nil {
			return nil, nil, err
		}
		store.OnCorrupt = onCorrupt
		return store, func() { _ = store.Close() }, nil

	case "", "file":
		store, err := storage.NewFileStore(dataDir)
		if err != nil {
			return nil, nil, err
		}
		store.OnCorrupt = onCorrupt
		return store, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown memory backend: %q", cfg.MemoryBackend)
	}
}

func printReply(reply string) {
	if ui.IsTerminal(os.Stdout) && !flagPlain {
		fmt.Print(ui.RenderMarkdown(reply, ui.Width()))
		return
	}
	fmt.Println(reply)
}

// archiveExchange appends the run to the exchange archive. The archive is an
// audit trail, so a write failure only warns.
func archiveExchange(cfg *config.Config, providerID, model, message string, res *assistant.Result) {
	archive, err := storage.NewExchangeArchive(cfg.DataDir())
	if err != nil {
		warn("could not open exchange archive: %v", err)
		return
	}

	rec := &storage.ExchangeRecord{
		Provider:       providerID,
		Model:          model,
		UserMessage:    message,
		AssistantReply: res.Reply,
		MemoryBefore:   res.MemoryBefore,
		CreatedAt:      time.Now(),
	}
	if res.Persisted() {
		rec.MemoryAfter = res.MemoryAfter
	}

	if err := archive.Append(rec); err != nil {
		warn("could not archive exchange: %v", err)
	}
}

func warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ui.WarningStyle.Render("Warning:"), fmt.Sprintf(format, args...))
}

// ===== memory =====

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Inspect or reset the persisted memory",
}

var memoryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current memory blob",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closeStore, err := openMemoryStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		blob, err := store.Load()
		if err != nil {
			return err
		}
		fmt.Println(blob)
		return nil
	},
}

var memoryResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the memory, starting the assistant fresh",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closeStore, err := openMemoryStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		if err := store.Save(storage.DefaultMemory); err != nil {
			return err
		}
		fmt.Println("Memory cleared.")
		return nil
	},
}

var memoryPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print where the memory is stored",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, closeStore, err := openMemoryStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		fmt.Println(store.Location())
		return nil
	},
}

// ===== history =====

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Work with the exchange archive",
}

var historySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy search past exchanges",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		archive, err := storage.NewExchangeArchive(cfg.DataDir())
		if err != nil {
			return err
		}

		matches, err := archive.Search(strings.Join(args, " "))
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			fmt.Println("No matches.")
			return nil
		}

		for _, m := range matches {
			timestamp := ui.DimStyle.Render(m.Record.CreatedAt.Format("2006-01-02 15:04"))
			role := ui.AccentStyle.Render(m.Role)
			fmt.Printf("%s  %s  %s\n", timestamp, role, m.Preview)
		}
		return nil
	},
}

// ===== models =====

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available from the configured provider",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		completer, providerID, err := buildCompleter(cfg)
		if err != nil {
			return err
		}

		lister, ok := completer.(provider.ModelLister)
		if !ok {
			return fmt.Errorf("provider %q cannot list models", providerID)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		models, err := lister.ListModels(ctx)
		if err != nil {
			return err
		}

		fmt.Println(ui.TitleStyle.Render(fmt.Sprintf("Models (%s)", providerID)))
		for _, m := range models {
			marker := "  "
			if m == completer.Model() {
				marker = ui.SuccessStyle.Render("* ")
			}
			fmt.Printf("%s%s\n", marker, m)
		}
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the configured provider is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		completer, providerID, err := buildCompleter(cfg)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := completer.Ping(ctx); err != nil {
			return fmt.Errorf("provider %q is not reachable: %w", providerID, err)
		}
		fmt.Printf("%s %s\n", ui.SuccessStyle.Render("OK"),
			ui.FormatKeyValues("provider", providerID, "model", completer.Model()))
		return nil
	},
}

// ===== config =====

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write default config files where they are missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settingsPath := config.GetSettingsFilePath()
		if config.FileExists(settingsPath) {
			fmt.Printf("%s %s\n", ui.DimStyle.Render("exists: "), settingsPath)
		} else {
			if err := config.CreateDefaultSystemConfig(); err != nil {
				return err
			}
			fmt.Printf("%s %s\n", ui.SuccessStyle.Render("created:"), settingsPath)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		userPath := filepath.Join(cfg.DataDir(), "config.toml")
		fmt.Printf("%s %s\n", ui.DimStyle.Render("config: "), userPath)
		return nil
	},
}
