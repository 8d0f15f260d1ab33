package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	cl "devcap/internal/cli"
	"devcap/internal/config"
	"devcap/internal/syncq"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "dvc",
		Short:        "Dev Capitalist terminal client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newRegisterCmd(&apiBase),
		newLoginCmd(&apiBase),
		newLogoutCmd(),
		newPlayCmd(&apiBase),
		newStatusCmd(&apiBase),
		newSyncCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func newRegisterCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create a Dev Capitalist account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := promptRequired("Email")
			if err != nil {
				return err
			}
			name, err := promptOptional("Name")
			if err != nil {
				return err
			}
			password, err := promptPassword("Password")
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			session, err := client.Register(ctx, email, password, name)
			if err != nil {
				return err
			}
			if err := cl.SaveSession(cl.Session{
				AccessToken: session.Token,
				ExpiresAt:   session.ExpiresAt,
				Email:       session.User.Email,
				UserID:      session.User.ID,
			}); err != nil {
				return err
			}
			printSuccess("Account created. Session saved; run `dvc play` to start.")
			return nil
		},
	}
}

func newLoginCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Log in to Dev Capitalist",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := promptRequired("Email")
			if err != nil {
				return err
			}
			password, err := promptPassword("Password")
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			session, err := client.Login(ctx, email, password)
			if err != nil {
				return err
			}
			if err := cl.SaveSession(cl.Session{
				AccessToken: session.Token,
				ExpiresAt:   session.ExpiresAt,
				Email:       session.User.Email,
				UserID:      session.User.ID,
			}); err != nil {
				return err
			}
			printSuccess("Login successful.")
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearSession(); err != nil {
				return err
			}
			printSuccess("Logged out.")
			return nil
		},
	}
}

func newStatusCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the saved progress on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("login required: %w", err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			client := newClient(apiBase)
			data, err := client.LoadGame(ctx, sess.AccessToken)
			if err != nil {
				return err
			}
			printInfo(fmt.Sprintf("Account: %s", sess.Email))
			printInfo(fmt.Sprintf("Balance: %s LoC (lifetime %s)", formatLoC(data.Progress.CurrentLoC), formatLoC(data.Progress.TotalLoC)))
			printInfo(fmt.Sprintf("Per keystroke: %s LoC", formatLoC(data.Progress.LoCPerClick)))
			printInfo(fmt.Sprintf("Businesses: %d  Team: %d  Upgrades: %d  Achievements: %d",
				len(data.Businesses), len(data.Team), len(data.Upgrades), len(data.Achievements)))
			if !data.Progress.UpdatedAt.IsZero() {
				printInfo(fmt.Sprintf("Last saved: %s", data.Progress.UpdatedAt.Local().Format("2006-01-02 15:04:05")))
			}
			return nil
		},
	}
}

func newSyncCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push saves queued while the API was unreachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return fmt.Errorf("login required: %w", err)
			}
			pending, ok, err := syncq.Take(sess.UserID)
			if err != nil {
				return err
			}
			if !ok {
				printInfo("No pending saves.")
				return nil
			}
			client := newClient(apiBase)
			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()
			if err := client.SaveGame(ctx, sess.AccessToken, pending.Payload); err != nil {
				// Keep it queued for the next attempt.
				if qErr := syncq.Push(pending.Payload); qErr != nil {
					printError(fmt.Sprintf("requeue failed: %v", qErr))
				}
				return fmt.Errorf("sync failed: %w", err)
			}
			printSuccess(fmt.Sprintf("Synced save from %s.", pending.QueuedAt.Local().Format("2006-01-02 15:04")))
			return nil
		},
	}
}
