package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to caravansite! Let's configure the site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Site name.
	namePrompt := promptui.Prompt{
		Label:   "Site name",
		Default: cfg.Site.Name,
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site name: %w", err)
	}
	cfg.Site.Name = strings.TrimSpace(name)

	// 2. Public base URL.
	urlPrompt := promptui.Prompt{
		Label:   "Public base URL",
		Default: cfg.Site.BaseURL,
	}
	baseURL, err := urlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}
	cfg.Site.BaseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")

	// 3. Port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("port must be between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// 4. Database path.
	dbPrompt := promptui.Prompt{
		Label:   "Database file",
		Default: cfg.Database.Path,
	}
	dbPath, err := dbPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("database path: %w", err)
	}
	cfg.Database.Path = dbPath

	// 5. Sales inbox for lead alerts.
	salesPrompt := promptui.Prompt{
		Label:   "Sales e-mail for lead alerts (blank to skip)",
		Default: "",
		Validate: func(s string) error {
			if s == "" {
				return nil
			}
			_, err := mail.ParseAddress(s)
			return err
		},
	}
	sales, err := salesPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("sales email: %w", err)
	}
	cfg.Notifications.SalesEmail = sales

	// 6. Log format.
	formatPrompt := promptui.Select{
		Label: "Log format",
		Items: []string{string(LogConsole), string(LogJSON)},
	}
	_, format, err := formatPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("log format: %w", err)
	}
	cfg.Log.Format = LogFormat(format)

	secret, err := randomSecret()
	if err != nil {
		return nil, err
	}
	cfg.Admin.JWTSecret = secret

	if sales != "" {
		fmt.Printf("\nNote: set %sNOTIFICATIONS_SENDGRID_API_KEY and notifications.from_email to e-mail lead alerts.\n", EnvPrefix)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	fmt.Println("Create the first back-office login with `caravansite admin add-user`.")
	return cfg, nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
