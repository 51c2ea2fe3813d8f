package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/folio/pkg/account"
	"github.com/doodlesbykumbi/folio/pkg/config"
	"github.com/doodlesbykumbi/folio/pkg/model"
	"github.com/doodlesbykumbi/folio/pkg/server/store"
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user roles",
	Long: `Manage user roles.

The API never grants the admin role; administrators are created and
promoted here.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'user' requires a subcommand (promote, demote, create-admin)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var userPromoteCmd = &cobra.Command{
	Use:   "promote <email>",
	Short: "Grant the admin role to a user",
	Long: `Grant the admin role to a registered user.

Admins may update and delete any project or skill. They gain no access to
other users' blogs or contact messages.

Example:
  folioctl user promote alice@example.com`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withUsers(func(ctx context.Context, users store.UsersStore) error {
			return setRole(ctx, users, args[0], model.RoleAdmin)
		})
		fmt.Printf("%s is now an admin\n", args[0])
	},
}

var userDemoteCmd = &cobra.Command{
	Use:   "demote <email>",
	Short: "Revoke the admin role from a user",
	Long: `Revoke the admin role from a user.

Example:
  folioctl user demote alice@example.com`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withUsers(func(ctx context.Context, users store.UsersStore) error {
			return setRole(ctx, users, args[0], model.RoleUser)
		})
		fmt.Printf("%s is now a user\n", args[0])
	},
}

var userCreateAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator",
	Long: `Create an administrator account.

The password is read from FOLIO_ADMIN_PASSWORD so it never appears in the
process list or shell history.

Example:
  FOLIO_ADMIN_PASSWORD=... folioctl user create-admin --email admin@example.com --name Admin`,
	Run: func(cmd *cobra.Command, args []string) {
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")
		password := os.Getenv("FOLIO_ADMIN_PASSWORD")

		var id string
		withUsers(func(ctx context.Context, users store.UsersStore) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			user, err := createAdmin(ctx, users, cfg.BcryptCost, name, email, password)
			if err != nil {
				return err
			}
			id = user.ID
			return nil
		})
		fmt.Println(id)
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userPromoteCmd)
	userCmd.AddCommand(userDemoteCmd)
	userCmd.AddCommand(userCreateAdminCmd)

	userCreateAdminCmd.Flags().String("email", "", "administrator email")
	userCreateAdminCmd.Flags().String("name", "", "administrator display name")
	_ = userCreateAdminCmd.MarkFlagRequired("email")
	_ = userCreateAdminCmd.MarkFlagRequired("name")
}

// withUsers opens the configured store and runs fn against its users, exiting on error.
func withUsers(fn func(ctx context.Context, users store.UsersStore) error) {
	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if cfg.Store == config.StoreMemory {
		fmt.Fprintln(os.Stderr, "user commands need a persistent store; FOLIO_STORE is memory")
		os.Exit(1)
	}

	stores, closeStores, err := openStores(cfg, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open store: %v\n", err)
		os.Exit(1)
	}

	err = fn(context.Background(), stores.Users)
	closeStores()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func setRole(ctx context.Context, users store.UsersStore, email string, role model.Role) error {
	user, err := users.FindByEmail(ctx, account.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no user registered with %s", email)
		}
		return err
	}
	if user.Role == role {
		return nil
	}
	user.Role = role
	return users.Update(ctx, user)
}

// createAdmin registers a user directly with the admin role.
func createAdmin(ctx context.Context, users store.UsersStore, cost int, name, email, password string) (*model.User, error) {
	if password == "" {
		return nil, fmt.Errorf("FOLIO_ADMIN_PASSWORD is not set")
	}

	accounts, err := account.NewService(users, nil, cost, nil)
	if err != nil {
		return nil, err
	}
	hash, err := accounts.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         strings.TrimSpace(name),
		Email:        account.NormalizeEmail(email),
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if user.Name == "" || user.Email == "" {
		return nil, fmt.Errorf("name and email are required")
	}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%s is already registered; use folioctl user promote", user.Email)
		}
		return nil, err
	}
	return user, nil
}
