// Command adduser creates an account directly in the configured backend,
// optionally with staff privileges.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/hongminglow/finance-tracker-be/internal/auth"
	"github.com/hongminglow/finance-tracker-be/internal/backend"
	"github.com/hongminglow/finance-tracker-be/internal/config"
	"github.com/hongminglow/finance-tracker-be/internal/models"
	"github.com/hongminglow/finance-tracker-be/internal/storage"
)

type opener func(ctx context.Context) (storage.Store, error)

func main() {
	_ = godotenv.Load()

	open := func(ctx context.Context) (storage.Store, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return backend.Open(ctx, cfg)
	}

	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr, open); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, open opener) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	fs.SetOutput(stderr)

	username := fs.String("user", "", "Username")
	email := fs.String("email", "", "Email address (optional)")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	staff := fs.Bool("staff", false, "Grant staff privileges")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		fmt.Fprintln(stdout, "Usage: adduser -user <username> [-email <email>] [-password <password>] [-staff]")
		fs.PrintDefaults()
		return errors.New("missing required flags: user")
	}

	password := *passwordFlag
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = readPassword(stdin)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout)
	}

	if err := models.ValidateRegistration(*username, *email, password); err != nil {
		return err
	}

	store, err := open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer store.Close()

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.RoleMember
	if *staff {
		role = models.RoleStaff
	}

	user, err := store.CreateUser(ctx, models.User{Username: *username, Email: *email, Role: role, PasswordHash: hash})
	if errors.Is(err, storage.ErrAlreadyExists) {
		return fmt.Errorf("user %s already exists", *username)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintf(stdout, "User %s created successfully with ID %d (role %s)\n", user.Username, user.ID, user.Role)
	return nil
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
