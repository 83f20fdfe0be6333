/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/greenpress/apiserver/config"
	"github.com/greenpress/apiserver/internal/db"
	"github.com/greenpress/apiserver/internal/services"
	"github.com/greenpress/apiserver/internal/store"
	"github.com/greenpress/apiserver/types"
	"github.com/spf13/cobra"
)

// usersCmd represents the users command.
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Account maintenance helpers",
}

var usersPromoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Change an account's role",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		role, _ := cmd.Flags().GetString("role")
		if username == "" {
			return errors.New("--username is required")
		}
		if !types.ValidRole(role) {
			return fmt.Errorf("invalid role %q", role)
		}

		ctx := cmd.Context()
		cfg := config.LoadConfig()

		dbConn, err := db.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()

		userService := services.NewUserService(store.NewUserRepository(dbConn))
		user, err := userService.PromoteRole(ctx, username, role)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("user %q not found", username)
			}
			return err
		}

		fmt.Printf("%s is now %s\n", user.Username, user.Role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersPromoteCmd)

	usersPromoteCmd.Flags().String("username", "", "Account to change")
	usersPromoteCmd.Flags().String("role", "", "New role (writer, editor or admin)")
}
