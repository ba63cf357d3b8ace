package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/synctv-org/authd/cmd/flags"
	"github.com/synctv-org/authd/internal/version"
)

var RootCmd = &cobra.Command{
	Use:   "authd",
	Short: "authd",
	Long:  `authd, email/password and oauth2 login with browser sessions`,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&flags.Dev, "dev", version.Version == "dev", "start with dev mode")
	RootCmd.PersistentFlags().BoolVar(&flags.LogStd, "log-std", true, "log to std")
	RootCmd.PersistentFlags().BoolVar(&flags.EnvNoPrefix, "env-no-prefix", false, "env no AUTHD_ prefix")
	RootCmd.PersistentFlags().BoolVar(&flags.SkipConfig, "skip-config", false, "skip config")
	RootCmd.PersistentFlags().BoolVar(&flags.SkipEnv, "skip-env", false, "skip env")
	RootCmd.PersistentFlags().StringVar(&flags.DataDir, "data-dir", "~/.authd", "data dir")
}
