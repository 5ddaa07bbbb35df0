package main

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/Youpsilon/Le-Loup-de-la-Creuse/auth"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/gin"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/jwt"
)

func init() {
	RootCmd.AddCommand(&WebCommand)
}

var WebCommand = cobra.Command{
	Use:   "web",
	Short: "Start the web server",
	Run: func(cmd *cobra.Command, args []string) {
		authenticator := &gin.Authenticator{
			Encoder:  jwt.NewEncodeDecoder(jwtKey),
			Accounts: accountService,
		}

		server := gin.NewServer(articleService, commentService, authenticator)
		auth.RegisterHTTPRoutes(server, authService(), jwtKey)

		addr := config.Web.Addr
		if addr == "" {
			addr = ":1705"
		}

		logger.Print("server started, listening on", addr)
		logger.Fatal(http.ListenAndServe(addr, server))
	},
}
