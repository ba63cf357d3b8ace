package cmd

import "github.com/synctv-org/authd/cmd/user"

func init() {
	RootCmd.AddCommand(user.UserCmd)
}
