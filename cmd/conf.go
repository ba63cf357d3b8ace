package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/synctv-org/authd/internal/bootstrap"
	"github.com/synctv-org/authd/internal/conf"
	yamlcomment "github.com/zijiren233/yaml-comment"
	"gopkg.in/yaml.v3"
)

var ConfCmd = &cobra.Command{
	Use:   "conf",
	Short: "conf",
	Long:  `create or update the config file and print the effective config`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap.New(bootstrap.WithContext(cmd.Context())).Add(
			bootstrap.InitDiscardLog,
		).Run()
	},
	RunE: Conf,
}

func Conf(cmd *cobra.Command, args []string) error {
	err := bootstrap.InitConfig(cmd.Context())
	if err != nil {
		return err
	}
	return yamlcomment.NewEncoder(yaml.NewEncoder(os.Stdout)).Encode(conf.Conf)
}

func init() {
	RootCmd.AddCommand(ConfCmd)
}
