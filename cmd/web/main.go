package main

import (
	"flag"
	"net/http"

	"github.com/Youpsilon/Le-Loup-de-la-Creuse/articles"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/auth"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/bleve"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/bolt"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/comments"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/gin"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/jwt"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/log"
	"github.com/Youpsilon/Le-Loup-de-la-Creuse/users"
)

var (
	dbpath     = "data/loup.bolt.db"
	searchpath = "data/loup.bleve"
	addr       = ":1705"
	jwtKey     = "dev-key-do-not-use-in-prod"
)

// Development bootstrap: everything on local files, no configuration
// needed. The cli binary is the configured entry point.
func main() {
	flag.StringVar(&dbpath, "dbpath", dbpath, "path to the db")
	flag.StringVar(&searchpath, "searchpath", searchpath, "path to the search index")
	flag.StringVar(&addr, "addr", addr, "address to listen on")
	flag.StringVar(&jwtKey, "key", jwtKey, "jwt signing key")
	flag.Parse()

	logger := log.New("dev")

	driver := &bolt.Driver{}
	if err := driver.Open(dbpath); err != nil {
		logger.Fatal("could not open database:", err)
	}
	defer driver.Close()

	index := &bleve.ArticleIndex{}
	if err := index.Open(searchpath); err != nil {
		logger.Fatal("could not open search index:", err)
	}
	defer index.Close()

	accountService := users.NewService(&bolt.UserStore{Driver: driver})
	articleService := articles.NewService(&bolt.ArticleStore{Driver: driver}, index)
	commentService := comments.NewService(&bolt.CommentStore{Driver: driver})

	encoder := jwt.NewEncodeDecoder([]byte(jwtKey))
	authenticator := &gin.Authenticator{Encoder: encoder, Accounts: accountService}

	server := gin.NewServer(articleService, commentService, authenticator)
	auth.RegisterHTTPRoutes(server, auth.NewService(accountService, encoder), []byte(jwtKey))

	logger.Print("server started, listening on", addr)
	logger.Fatal(http.ListenAndServe(addr, server))
}
