package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/vmsouza/musicctl/internal/channel"
	"github.com/vmsouza/musicctl/internal/models"
	"github.com/vmsouza/musicctl/internal/shared"
	"github.com/vmsouza/musicctl/internal/validator"
)

// AuthLogin authenticates against POST /auth/login and stores the
// session. The previous session is cleared first, so a rejected login
// never leaves stale keys behind.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	credentials := models.Credentials{
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
	}

	if state, summary := validator.CheckCredentials(credentials); summary != "" {
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, summary)
	} else if !state.Valid() {
		for _, field := range []string{"email", "password"} {
			if message := state.Message(field); message != "" {
				return fmt.Errorf("%w: %s", shared.ErrInvalidInput, message)
			}
		}
	}

	r.store.Logout()

	sess, err := r.store.Login(ctx, credentials)
	if err != nil {
		return err
	}

	r.store.SetToken(sess.Token)
	r.store.SetUsername(sess.Username)
	r.store.SetUserEmail(sess.Email)
	r.store.SetExpired(false)

	return r.writePlain("✓ Logged in as %s\n", sess.Username)
}

// AuthLogout clears the stored session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	r.store.Logout()
	return r.writePlain("✓ Logged out\n")
}

// AuthStatus shows the stored session state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	sess := r.store.Current()

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"username":      sess.Username,
			"email":         sess.Email,
			"authenticated": sess.Authenticated(),
		}, true)
	}

	if !sess.Authenticated() {
		return r.writePlain("✗ Not authenticated\n")
	}

	r.writePlain("✓ Authenticated\n")
	r.writePlain("Username: %s\n", sess.Username)
	r.writePlain("E-Mail: %s\n", sess.Email)
	return nil
}

// AuthCreateUser registers a new account at POST /auth/create.
func (r *Runner) AuthCreateUser(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	user := models.User{
		Name:     cmd.String("name"),
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
	}

	if state, summary := validator.CheckNewUser(user, cmd.String("confirm-password")); summary != "" {
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, summary)
	} else if !state.Valid() {
		for _, field := range []string{"name", "email", "password", "confirmPassword"} {
			if message := state.Message(field); message != "" {
				return fmt.Errorf("%w: %s", shared.ErrInvalidInput, message)
			}
		}
	}

	if err := r.store.CreateUser(ctx, user); err != nil {
		return err
	}

	r.bus.Publish(channel.UserCreated)
	return r.writePlain("✓ User %s created\n", user.Name)
}
