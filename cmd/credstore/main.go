// Command credstore is a minimal command-line front end for the credential
// core. Like the GUI surfaces it stands in for, it only wires input to the
// services and prints the outcome; every rule lives in the core.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/croftworks/credstore"
	"github.com/croftworks/credstore/domain"
	"github.com/croftworks/credstore/pkg/slogx"
)

func main() {
	// Fatalf skips defers, so all the work (and the Close) lives in run.
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		usage()
	}

	cfg := credstore.LoadConfig()

	core, err := credstore.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize credential store: %w", err)
	}
	defer core.Close()

	ctx := slogx.WithContext(context.Background(), core.Logger())

	switch os.Args[1] {
	case "register":
		return runRegister(ctx, core, os.Args[2:])
	case "login":
		return runLogin(ctx, core, os.Args[2:])
	case "list":
		return runList(ctx, core, os.Args[2:])
	default:
		usage()
	}
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: credstore <register|login|list> [flags]")
	os.Exit(2)
}

func runRegister(ctx context.Context, core *credstore.Core, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "username (3-20 chars, letters, digits, underscore)")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (8-64 chars)")
	_ = fs.Parse(args)

	user, err := core.Registration.Register(ctx, *username, *email, *password)
	if err != nil {
		return err
	}

	fmt.Printf("registered user %d (%s)\n", user.ID, user.Username)
	return nil
}

func runLogin(ctx context.Context, core *credstore.Core, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	identifier := fs.String("identifier", "", "username or email")
	password := fs.String("password", "", "password")
	remember := fs.Bool("remember", false, "remember this login on the surface's ledger")
	surface := fs.String("surface", domain.SurfaceTk.String(), "surface tag (tk, qt, kv)")
	_ = fs.Parse(args)

	result, err := core.Auth.Login(ctx, *identifier, *password)
	if err != nil {
		return err
	}
	if !result.Success {
		return errors.New("login failed: invalid credentials")
	}
	fmt.Printf("login ok: user %d\n", result.UserID)

	if !*remember {
		return nil
	}

	// Reuse the stored hash rather than re-hashing the password.
	hash, ok, err := core.Auth.PasswordHashIfValid(ctx, *identifier, *password)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("remember failed: credentials no longer valid")
	}
	if err := core.Auth.Remember(ctx, domain.Surface(*surface), *identifier, hash); err != nil {
		return err
	}
	fmt.Printf("remembered on %s\n", *surface)
	return nil
}

func runList(ctx context.Context, core *credstore.Core, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	surface := fs.String("surface", domain.SurfaceTk.String(), "surface tag (tk, qt, kv)")
	_ = fs.Parse(args)

	entries, err := core.Auth.ListRemembered(ctx, domain.Surface(*surface))
	if err != nil {
		return err
	}

	for _, e := range entries {
		fmt.Printf("%d\t%s\t%s\n", e.UserID, e.Username, e.Email)
	}
	return nil
}
