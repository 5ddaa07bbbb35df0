package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/Youpsilon/Le-Loup-de-la-Creuse/articles"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/auth"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/bleve"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/bolt"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/comments"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/jwt"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/log"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/session"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/users"
)

type Configuration struct {
	Auth struct {
		KeyPath string `toml:"key"`
	} `toml:"auth"`
	Bolt struct {
		Store string `toml:"store"`
	} `toml:"bolt"`
	Bleve struct {
		Store string `toml:"store"`
	} `toml:"bleve"`
	Web struct {
		Addr string `toml:"addr"`
	} `toml:"web"`
}

var (
	// flags
	env string

	// logger
	logger log.Logger

	// configuration
	config Configuration

	// auth
	jwtKey []byte

	// drivers
	boltDriver *bolt.Driver

	// indices
	articleIndex *bleve.ArticleIndex

	// services
	accountService *users.Service
	articleService *articles.Service
	commentService *comments.Service

	// identity
	sessionManager *session.Manager
)

func init() {
	RootCmd.PersistentFlags().StringVar(&env, "env", "dev", "")
}

var RootCmd = cobra.Command{
	Use:   "loup",
	Short: "Le Loup de la Creuse, rumors about markets that do not exist",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = log.New(env)

		// Load configuration
		cfgData, err := os.ReadFile(fmt.Sprintf("configuration/config.%s.toml", env))
		if err != nil {
			logger.Fatal("could not read configuration file:", err)
		}

		if err := toml.Unmarshal(cfgData, &config); err != nil {
			logger.Fatal("error unmarshalling configuration:", err)
		}

		// Read key file
		keyData, err := os.ReadFile(config.Auth.KeyPath)
		if err != nil {
			logger.Fatal("could not open key file:", err)
		}
		var key struct {
			Key string `json:"k"`
		}
		if err := json.Unmarshal(keyData, &key); err != nil {
			logger.Fatal("could not read key file:", err)
		}
		jwtKey = []byte(key.Key)

		// Open stores
		boltDriver = &bolt.Driver{}
		if err := boltDriver.Open(config.Bolt.Store); err != nil {
			logger.Fatal("could not open database:", err)
		}

		articleIndex = &bleve.ArticleIndex{}
		if err := articleIndex.Open(config.Bleve.Store); err != nil {
			logger.Fatal("could not open search index:", err)
		}

		// Create services
		accountService = users.NewService(&bolt.UserStore{Driver: boltDriver})
		articleService = articles.NewService(&bolt.ArticleStore{Driver: boltDriver}, articleIndex)
		commentService = comments.NewService(&bolt.CommentStore{Driver: boltDriver})

		// The session manager is built here, once, and handed to the
		// commands that need the current user.
		sessionManager = session.NewManager(accountService, &bolt.SessionStore{Driver: boltDriver})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if articleIndex != nil {
			articleIndex.Close()
		}
		if boltDriver != nil {
			boltDriver.Close()
		}
	},
}

func authService() *auth.Service {
	return auth.NewService(accountService, jwt.NewEncodeDecoder(jwtKey))
}
