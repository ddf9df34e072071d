package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/caravansite/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "caravansite",
	Short: "Caravan manufacturer website and sales back office",
	Long: `caravansite serves the public marketing site for a caravan range
(models, dealer and service-agent locators, news, events and owner
reviews), stores the enquiries visitors submit, and exposes an
authenticated back office for working through them.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is normal in production.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading .env: %w", err)
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
