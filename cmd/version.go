package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/synctv-org/authd/internal/version"
)

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of authd",
	Long:  `All software has versions. This is authd's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

func init() {
	RootCmd.AddCommand(VersionCmd)
}
