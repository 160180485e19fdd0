package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BearBump/ParcelDesk/config"
	"github.com/BearBump/ParcelDesk/internal/services/auth"
	"github.com/BearBump/ParcelDesk/internal/services/contacts"
	"github.com/BearBump/ParcelDesk/internal/storage/pgcourier"
	"github.com/spf13/cobra"
)

type adminCreator interface {
	EnsureAdmin(ctx context.Context, name, email, password string) (bool, error)
}

type contactImporter interface {
	ImportFile(ctx context.Context, path string) (contacts.ImportResult, error)
}

type backend struct {
	admins   adminCreator
	contacts contactImporter
	close    func()
}

type backendOpener func(configPath string) (*backend, error)

// openBackend wires the same services the API uses, minus cache and broker.
func openBackend(configPath string) (*backend, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	st, err := pgcourier.New(cfg.PostgresConnString())
	if err != nil {
		return nil, err
	}

	secret := cfg.ParcelDesk.JWTSecret
	if secret == "" {
		// Only EnsureAdmin is used here; no token is ever issued.
		secret = "unused"
	}
	authSvc, err := auth.New(st, nil, auth.Config{Secret: []byte(secret)})
	if err != nil {
		st.Close()
		return nil, err
	}

	return &backend{
		admins: authSvc,
		contacts: contacts.New(st, contacts.Config{
			UploadDir:      cfg.ParcelDesk.UploadDir,
			MaxUploadBytes: cfg.ParcelDesk.MaxUploadBytes,
			MaxRows:        cfg.ParcelDesk.MaxImportRows,
		}),
		close: st.Close,
	}, nil
}

func newRootCmd(open backendOpener) *cobra.Command {
	var configPath string
	var timeout time.Duration

	root := &cobra.Command{
		Use:           "parceldesk-admin",
		Short:         "Administrative tasks for the ParcelDesk backend",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("configPath"), "path to the YAML config")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall timeout")

	withBackend := func(cmd *cobra.Command, fn func(ctx context.Context, b *backend) error) error {
		if configPath == "" {
			return fmt.Errorf("--config or configPath env var is required")
		}
		b, err := open(configPath)
		if err != nil {
			return err
		}
		if b.close != nil {
			defer b.close()
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		return fn(ctx, b)
	}

	var name, email, password string
	createAdmin := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account unless the e-mail is already registered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, func(ctx context.Context, b *backend) error {
				created, err := b.admins.EnsureAdmin(ctx, name, email, password)
				if err != nil {
					return err
				}
				if created {
					fmt.Fprintf(cmd.OutOrStdout(), "admin %s created\n", email)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "admin %s already exists\n", email)
				}
				return nil
			})
		},
	}
	createAdmin.Flags().StringVar(&name, "name", "Admin", "display name")
	createAdmin.Flags().StringVar(&email, "email", "", "login e-mail")
	createAdmin.Flags().StringVar(&password, "password", "", "login password")
	_ = createAdmin.MarkFlagRequired("email")
	_ = createAdmin.MarkFlagRequired("password")

	importContacts := &cobra.Command{
		Use:   "import-contacts <file.csv|file.xlsx>",
		Short: "Import contacts from a local CSV or XLSX file in one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, func(ctx context.Context, b *backend) error {
				res, err := b.contacts.ImportFile(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported %d contacts\n", res.Imported)
				return nil
			})
		},
	}

	root.AddCommand(createAdmin, importContacts)
	return root
}
