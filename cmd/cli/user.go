package main

import (
	"context"

	"github.com/spf13/cobra"
)

func init() {
	UserCommand.AddCommand(&UserSignupCommand)
	UserCommand.AddCommand(&UserLoginCommand)
	UserCommand.AddCommand(&UserLogoutCommand)
	UserCommand.AddCommand(&UserMeCommand)

	RootCmd.AddCommand(&UserCommand)
}

var UserCommand = cobra.Command{
	Use:   "user",
	Short: "Manage the local session: signup, login, logout, me",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var UserSignupCommand = cobra.Command{
	Use:   "signup <email> <password> <pseudo>",
	Short: "Create an account and open a session",
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if err := sessionManager.Restore(ctx); err != nil {
			logger.Fatal("could not restore session:", err)
		}

		user, err := sessionManager.Signup(ctx, args[0], args[1], args[2])
		if err != nil {
			logger.Fatal(err)
		}
		logger.Printf("welcome %s (id %s)", user.Pseudo, user.ID)
	},
}

var UserLoginCommand = cobra.Command{
	Use:   "login <email> <password>",
	Short: "Open a session",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if err := sessionManager.Restore(ctx); err != nil {
			logger.Fatal("could not restore session:", err)
		}

		user, err := sessionManager.Login(ctx, args[0], args[1])
		if err != nil {
			logger.Fatal(err)
		}
		logger.Printf("logged in as %s", user.Pseudo)
	},
}

var UserLogoutCommand = cobra.Command{
	Use:   "logout",
	Short: "Close the session",
	Run: func(cmd *cobra.Command, args []string) {
		if err := sessionManager.Logout(); err != nil {
			logger.Fatal(err)
		}
		logger.Print("logged out")
	},
}

var UserMeCommand = cobra.Command{
	Use:   "me",
	Short: "Show the logged-in user",
	Run: func(cmd *cobra.Command, args []string) {
		if err := sessionManager.Restore(context.Background()); err != nil {
			logger.Fatal("could not restore session:", err)
		}

		user := sessionManager.Current()
		if user == nil {
			logger.Print("not logged in")
			return
		}

		logger.Printf("%s <%s> admin=%t", user.Pseudo, user.Email, user.IsAdmin)
	},
}
