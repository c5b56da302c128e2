// cmd/adduser/main.go
// Creates or updates a user in the database.
//
// Usage:
//
//	go run ./cmd/adduser -username alice -password testing123 -display "Alice" [-admin]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/padraicbc/gridpredict/config"
	bundb "github.com/padraicbc/gridpredict/db"
	"github.com/padraicbc/gridpredict/handlers"
	"github.com/padraicbc/gridpredict/store"
)

func main() {
	username := flag.String("username", "", "username (required)")
	password := flag.String("password", "", "plain-text password (required)")
	display := flag.String("display", "", "display name shown in standings (defaults to username)")
	admin := flag.Bool("admin", false, "grant admin rights")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("both -username and -password are required")
	}

	user, err := handlers.NewUser(*username, *password, *display, *admin)
	if err != nil {
		log.Fatal("new user: ", err)
	}

	ctx := context.Background()
	cfg := config.Load()
	db, err := bundb.Setup(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatal("create tables: ", err)
	}

	if err := store.New(db).UpsertUser(ctx, user); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("user %q saved (admin=%t)\n", user.Username, user.IsAdmin)
}
