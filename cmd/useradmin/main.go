// Command useradmin seeds the first administrator account. User creation
// over the API always produces regular accounts, so the initial admin has
// to be written straight into the database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/taskboard/taskboard/internal/common"
	"github.com/taskboard/taskboard/internal/server/auth"
	"github.com/taskboard/taskboard/internal/server/config"
	"github.com/taskboard/taskboard/internal/server/models"
	"github.com/taskboard/taskboard/internal/server/storage"
)

func main() {
	name := flag.String("name", "Admin", "display name for the account")
	email := flag.String("email", "", "email address for the account")
	flag.Parse()

	if *email == "" {
		log.Fatal("the -email flag is required")
	}

	password, err := promptPassword()
	if err != nil {
		log.Fatal(err)
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()

	uri, err := cfg.MongoURI()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := storage.NewMongoStore(ctx, uri, cfg.DatabaseName)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer store.Close(context.Background())

	if _, err := store.Users().GetByEmail(ctx, *email); err == nil {
		log.Fatalf("a user with email %s already exists", *email)
	} else if !errors.Is(err, common.ErrorNotFound) {
		log.Fatal(err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal(err)
	}
	if hash == "" {
		log.Fatal("password must not be empty")
	}

	admin := &models.User{
		Name:     *name,
		Email:    *email,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if _, err := store.Users().Create(ctx, admin); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("admin account %s created with id %s\n", admin.Email, admin.ID.Hex())
}

func promptPassword() (string, error) {
	fmt.Println("Enter password")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}

	fmt.Println("Repeat password")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
