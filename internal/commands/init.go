package commands

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallybook/tally/internal/accounts"
	"github.com/tallybook/tally/internal/activity"
	"github.com/tallybook/tally/internal/config"
	"github.com/tallybook/tally/internal/gitops"
	"github.com/tallybook/tally/internal/store"
)

func newInitCommand() *cobra.Command {
	var (
		name     string
		currency string
		noGit    bool
	)

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a new book with the default chart of accounts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			hash, err := runInit(absDir, name, currency, !noGit)
			if err != nil {
				return err
			}
			if hash != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized tally book at %s (%s)\n", absDir, hash)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized tally book at %s\n", absDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&currency, "currency", "QAR", "base currency (ISO 4217 code)")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "do not version the book with git")

	return cmd
}

// runInit lays out a new book in dir and returns the initial commit hash, if any.
func runInit(dir, name, currency string, useGit bool) (string, error) {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return "", fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	for _, d := range []string{"logs", "import", filepath.Join("import", "processed")} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(name, currency)
	if useGit {
		if _, err := exec.LookPath("git"); err != nil {
			useGit = false
		}
	}
	cfg.Git.AutoCommit = useGit
	if err := config.Save(cfgPath, cfg); err != nil {
		return "", err
	}

	// Chart, empty journal and books.yaml.
	if err := store.New(accounts.DefaultChart(), store.Options{}).Save(dir); err != nil {
		return "", fmt.Errorf("writing book: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(".env\nexports/\n"), 0o644); err != nil {
		return "", fmt.Errorf("writing .gitignore: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return "", fmt.Errorf("writing .gitkeep: %w", err)
	}

	var hash string
	if useGit {
		if err := gitops.Init(dir); err != nil {
			return "", err
		}
		repo := gitops.Repo{Dir: dir, AuthorName: cfg.Git.AuthorName, AuthorEmail: cfg.Git.AuthorEmail}
		h, err := repo.CommitAll("init: Initialize " + name)
		if err != nil {
			return "", fmt.Errorf("initial commit: %w", err)
		}
		hash = h
	}

	err := activity.Append(dir, activity.Entry{
		Timestamp:  time.Now(),
		Command:    "init",
		Action:     "create_book",
		Subject:    name,
		Details:    fmt.Sprintf("base currency %s", cfg.Business.BaseCurrency),
		CommitHash: hash,
	})
	return hash, err
}
