package command

import (
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "User accounts",
	Long:  "The users command is used to manage user accounts",
}

func init() {
	rootCmd.AddCommand(usersCmd)
}
