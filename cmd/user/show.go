package user

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/synctv-org/authd/internal/bootstrap"
	"github.com/synctv-org/authd/internal/model"
)

var app = bootstrap.NewApp()

var ShowCmd = &cobra.Command{
	Use:   "show <id|email>",
	Short: "show user and linked providers by id or email",
	Long:  `show user and linked providers by id or email`,
	Args:  cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bootstrap.New(bootstrap.WithContext(cmd.Context())).Add(
			bootstrap.InitDiscardLog,
			bootstrap.InitConfig,
			app.InitDatabase,
			app.InitPassword,
			app.InitSessionBackend,
			app.InitIdentity,
		).Run()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer app.Store.Close()
		ctx := cmd.Context()
		var (
			u   *model.User
			err error
		)
		if id, perr := strconv.ParseUint(args[0], 10, 64); perr == nil {
			u, err = app.Resolver.User(ctx, uint(id))
		} else {
			u, err = app.Resolver.UserByEmail(ctx, args[0])
		}
		if err != nil {
			return err
		}
		links, err := app.Resolver.ProviderLinks(ctx, u.ID)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "id: %d\tname: %s\temail: %s\temail_verified: %t\tpassword: %t\tcreated_at: %s\n",
			u.ID, u.Name, u.EmailString(), u.EmailVerified, u.HasPassword(), u.CreatedAt)
		for _, l := range links {
			fmt.Fprintf(out, "provider: %s\tprovider_user_id: %s\tlinked_at: %s\n", l.Provider, l.ProviderUserID, l.CreatedAt)
		}
		return nil
	},
}

func init() {
	UserCmd.AddCommand(ShowCmd)
}
