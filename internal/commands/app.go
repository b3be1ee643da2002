package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tallybook/tally/internal/activity"
	"github.com/tallybook/tally/internal/config"
	"github.com/tallybook/tally/internal/format"
	"github.com/tallybook/tally/internal/gitops"
	"github.com/tallybook/tally/internal/logging"
	"github.com/tallybook/tally/internal/schedule"
	"github.com/tallybook/tally/internal/store"
)

// ErrNoBook is returned when the data directory has no tally.yaml.
var ErrNoBook = errors.New("no tally book found (run `tally init` first)")

// book is an opened data directory: config, logger and state.
type book struct {
	root  string
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
}

// dataDir resolves the --dir flag of the root command.
func dataDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

// openBook loads the book in the --dir data directory.
func openBook(cmd *cobra.Command) (*book, error) {
	root, err := dataDir(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w in %s", ErrNoBook, root)
	}
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg, root); err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	st, err := store.Load(root, store.Options{
		Depreciation: schedule.DepreciationOptions{
			ExpenseAccountID:     cfg.Ledger.DepreciationExpense,
			AccumulatedAccountID: cfg.Ledger.AccumulatedDepreciation,
		},
		Logger: logger,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	return &book{root: root, cfg: cfg, log: logger, store: st}, nil
}

// close flushes the logger.
func (b *book) close() {
	_ = b.log.Sync()
}

// commit persists the book, commits it when git auto-commit is on and records
// the change in the activity log.
func (b *book) commit(command, action, subject, details string) error {
	if err := b.store.Save(b.root); err != nil {
		return err
	}

	var hash string
	if b.cfg.Git.AutoCommit && gitops.IsRepo(b.root) {
		repo := gitops.Repo{Dir: b.root, AuthorName: b.cfg.Git.AuthorName, AuthorEmail: b.cfg.Git.AuthorEmail}
		h, err := repo.CommitAll(fmt.Sprintf("%s: %s", command, details))
		if err != nil {
			b.log.Warn("git commit failed", zap.String("command", command), zap.Error(err))
		}
		hash = h
	}

	entry := activity.Entry{
		Timestamp:  time.Now(),
		Command:    command,
		Action:     action,
		Subject:    subject,
		Details:    details,
		CommitHash: hash,
	}
	if err := activity.Append(b.root, entry); err != nil {
		b.log.Warn("writing activity log failed", zap.Error(err))
	}
	return nil
}

// render writes a markdown document, styled unless --plain is set.
func render(cmd *cobra.Command, md string) error {
	plain, _ := cmd.Flags().GetBool("plain")
	return format.Render(cmd.OutOrStdout(), md, plain)
}

// today is the current calendar date at UTC midnight, the form journal dates
// are stored in.
func today() time.Time {
	return dateOf(time.Now())
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseDate accepts YYYY-MM-DD, or "" for today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return today(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return t, nil
}
