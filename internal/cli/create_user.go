package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mrlokans/bookjournal/internal/auth"
	"github.com/mrlokans/bookjournal/internal/config"
	"github.com/mrlokans/bookjournal/internal/database"
	"github.com/mrlokans/bookjournal/internal/database/users"
)

var errPasswordMismatch = errors.New("passwords do not match")

// passwordReader prompts for a password and returns it without the trailing newline.
type passwordReader func(prompt string) (string, error)

func newCreateUserCommand(loadConfig func() *config.Config) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account; the password is read from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			read := stdinPasswordReader(cmd.InOrStdin(), cmd.ErrOrStderr())
			return createUser(loadConfig(), email, read, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address of the new account (required)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func createUser(cfg *config.Config, email string, read passwordReader, out io.Writer) error {
	password, err := read("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	confirm, err := read("Repeat password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if password != confirm {
		return errPasswordMismatch
	}

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	service := auth.NewService(users.NewRepository(db.DB), cfg.Auth)
	user, err := service.Register(email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Created user %s (id %d)\n", user.Email, user.ID)
	return nil
}

// stdinPasswordReader reads without echo when in is a terminal and falls
// back to reading lines, so passwords can be piped in scripts.
func stdinPasswordReader(in io.Reader, prompt io.Writer) passwordReader {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return func(label string) (string, error) {
			fmt.Fprint(prompt, label)
			password, err := term.ReadPassword(int(f.Fd()))
			fmt.Fprintln(prompt)
			if err != nil {
				return "", err
			}
			return string(password), nil
		}
	}

	scanner := bufio.NewScanner(in)
	return func(string) (string, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return strings.TrimRight(scanner.Text(), "\r"), nil
	}
}
