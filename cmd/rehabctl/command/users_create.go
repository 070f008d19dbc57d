package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/motuslabs/rehab/users"
)

var createUserFlags struct {
	username string
	password string
	role     string
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	Long:  "The create command is used to provision doctor and manager accounts, which cannot self-register",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(createUser) },
}

func createUser(service users.Service) error {
	user, err := service.Register(context.TODO(), users.Registration{
		Username:        createUserFlags.username,
		Password:        createUserFlags.password,
		ConfirmPassword: createUserFlags.password,
		Role:            users.Role(createUserFlags.role),
	})
	if err != nil {
		return err
	}

	fmt.Printf("created %s (%s)\n", user.Username, user.Role)
	return nil
}

func init() {
	usersCreateCmd.Flags().StringVar(&createUserFlags.username, "username", "", "Username of the new account")
	usersCreateCmd.Flags().StringVar(&createUserFlags.password, "password", "", "Password of the new account")
	usersCreateCmd.Flags().StringVar(&createUserFlags.role, "role", string(users.RolePatient), "Role of the new account (patient, doctor or manager)")
	_ = usersCreateCmd.MarkFlagRequired("username")
	_ = usersCreateCmd.MarkFlagRequired("password")

	usersCmd.AddCommand(usersCreateCmd)
}
