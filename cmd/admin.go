package cmd

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/caravansite/internal/audit"
	"github.com/ziadkadry99/caravansite/internal/auth"
	"github.com/ziadkadry99/caravansite/internal/notifications"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Back-office maintenance tasks",
}

var adminAddUserCmd = &cobra.Command{
	Use:   "add-user",
	Short: "Create a back-office login",
	RunE:  runAdminAddUser,
}

var adminRedeliverCmd = &cobra.Command{
	Use:   "redeliver",
	Short: "Retry lead notifications that were never delivered",
	RunE:  runAdminRedeliver,
}

var adminPruneAuditCmd = &cobra.Command{
	Use:   "prune-audit",
	Short: "Delete audit entries older than --days",
	RunE:  runAdminPruneAudit,
}

func init() {
	adminPruneAuditCmd.Flags().Int("days", 365, "keep entries newer than this many days")
	adminCmd.AddCommand(adminAddUserCmd, adminRedeliverCmd, adminPruneAuditCmd)
	rootCmd.AddCommand(adminCmd)
}

func runAdminAddUser(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	emailPrompt := promptui.Prompt{
		Label: "E-mail",
		Validate: func(s string) error {
			_, err := mail.ParseAddress(s)
			return err
		},
	}
	email, err := emailPrompt.Run()
	if err != nil {
		return fmt.Errorf("email: %w", err)
	}

	namePrompt := promptui.Prompt{Label: "Name"}
	name, err := namePrompt.Run()
	if err != nil {
		return fmt.Errorf("name: %w", err)
	}

	passwordPrompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(s string) error {
			if len(s) < auth.MinPasswordLength {
				return fmt.Errorf("at least %d characters", auth.MinPasswordLength)
			}
			return nil
		},
	}
	password, err := passwordPrompt.Run()
	if err != nil {
		return fmt.Errorf("password: %w", err)
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	u, err := auth.NewStore(database).CreateUser(context.Background(), email, strings.TrimSpace(name), password)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	fmt.Printf("Created %s. Sign in at %s/admin\n", u.Email, cfg.Site.BaseURL)
	return nil
}

func runAdminRedeliver(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	senders := notifications.SendersFromConfig(cfg.Notifications, cfg.Site.Name)
	if len(senders) == 0 {
		return fmt.Errorf("no notification channel configured: set notifications.webhook_url or notifications.sendgrid_api_key")
	}

	store := notifications.NewStore(database)
	dispatcher := notifications.NewDispatcher(store, log, senders...)
	pending, err := store.GetPending(ctx)
	if err != nil {
		return err
	}

	var failed int
	for _, n := range pending {
		if err := dispatcher.Redeliver(ctx, n.ID); err != nil {
			failed++
			fmt.Printf("%s  %s: %v\n", n.ID, n.Title, err)
		}
	}
	fmt.Printf("Redelivered %d of %d pending notifications\n", len(pending)-failed, len(pending))
	return nil
}

func runAdminPruneAudit(cmd *cobra.Command, args []string) error {
	days, _ := cmd.Flags().GetInt("days")
	if days <= 0 {
		return fmt.Errorf("--days must be positive")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	database, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	before := time.Now().UTC().AddDate(0, 0, -days)
	n, err := audit.NewStore(database).DeleteBefore(context.Background(), before)
	if err != nil {
		return err
	}
	fmt.Printf("Deleted %d audit entries before %s\n", n, before.Format(time.DateOnly))
	return nil
}
