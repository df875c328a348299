// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/taibuivan/usergate/internal/platform/config"
	"github.com/taibuivan/usergate/internal/platform/constants"
	"github.com/taibuivan/usergate/internal/platform/sec"
	"github.com/taibuivan/usergate/internal/users/auth"
	"github.com/taibuivan/usergate/internal/users/userstore"
)

// openedStore is the repository plus its release function and hashing cost.
type openedStore struct {
	users      auth.UserRepository
	bcryptCost int
	close      func(ctx context.Context) error
}

// storeOpener yields the credential store the command writes to.
type storeOpener func(ctx context.Context) (*openedStore, error)

// openConfiguredStore opens the store described by the environment.
func openConfiguredStore(log *slog.Logger) storeOpener {
	return func(ctx context.Context) (*openedStore, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}

		openCtx, cancel := context.WithTimeout(ctx, constants.StartupTimeout)
		defer cancel()

		store, err := userstore.Open(openCtx, cfg, log)
		if err != nil {
			return nil, err
		}

		return &openedStore{users: store.Users, bcryptCost: cfg.BcryptCost, close: store.Close}, nil
	}
}

func newApp(stdin io.Reader, stdout io.Writer, open storeOpener) *cli.App {
	var (
		username string
		password string
		email    string
		name     string
		disabled bool
	)

	return &cli.App{
		Name:      "createuser",
		Usage:     "Create a user in the credential store (password from --password or stdin)",
		Writer:    stdout,
		ErrWriter: stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "username",
				Aliases:     []string{"u"},
				Usage:       "Unique identity of the new user",
				Destination: &username,
				Required:    true,
			},
			&cli.StringFlag{
				Name:        "password",
				Aliases:     []string{"p"},
				Usage:       "Plain-text password; read from stdin when omitted",
				Destination: &password,
			},
			&cli.StringFlag{
				Name:        "email",
				Usage:       "Optional email address",
				Destination: &email,
			},
			&cli.StringFlag{
				Name:        "name",
				Usage:       "Optional display name",
				Destination: &name,
			},
			&cli.BoolFlag{
				Name:        "disabled",
				Usage:       "Create the account disabled",
				Destination: &disabled,
			},
		},
		Action: func(ctx *cli.Context) error {
			if !ctx.IsSet("password") {
				var err error
				password, err = readPassword(stdin)
				if err != nil {
					return err
				}
			}

			input := auth.ProvisionInput{
				Username: username,
				Password: password,
				Disabled: disabled,
			}
			if ctx.IsSet("email") {
				input.Email = &email
			}
			if ctx.IsSet("name") {
				input.Name = &name
			}

			return provision(ctx.Context, stdout, open, input)
		},
	}
}

func provision(ctx context.Context, stdout io.Writer, open storeOpener, input auth.ProvisionInput) error {
	store, err := open(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.close(context.WithoutCancel(ctx)) }()

	hasher, err := sec.NewPasswordHasher(store.bcryptCost)
	if err != nil {
		return err
	}

	// Provisioning never issues tokens.
	service := auth.NewService(store.users, hasher, nil, 0)

	user, err := service.Provision(ctx, input)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			_, _ = fmt.Fprintln(stdout, "User already exists.")
		}
		return err
	}

	_, _ = fmt.Fprintf(stdout, "User %s created successfully!\n", user.Username)
	return nil
}

// readPassword returns the first line of r without surrounding whitespace.
func readPassword(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", errors.New("missing password from stdin")
	}

	password := strings.TrimSpace(scanner.Text())
	if password == "" {
		return "", errors.New("missing password from stdin")
	}
	return password, nil
}
