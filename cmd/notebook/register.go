package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var password string

var registerCmd = &cobra.Command{
	Use:   "register [username]",
	Short: "Create a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp()
		if err != nil {
			return err
		}
		defer app.Close()

		user, err := app.svc.Register(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "User registered: %s\n", user.Username)
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVarP(&password, "password", "p", "", "password for the new user")
	_ = registerCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(registerCmd)
}
