package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/devilmonastery/warehouse/internal/client"
	"github.com/devilmonastery/warehouse/internal/domain/entities"
	"github.com/devilmonastery/warehouse/internal/domain/services"
)

const signupFallback = "Signup failed. Please check your input and try again."

func newAuthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
		Long:  `Manage the stored warehouse API session`,
	}

	cmd.AddCommand(newAuthLoginCommand())
	cmd.AddCommand(newAuthSignupCommand())
	cmd.AddCommand(newAuthLogoutCommand())
	cmd.AddCommand(newAuthStatusCommand())
	cmd.AddCommand(newAuthTokenCommand())

	return cmd
}

func newAuthLoginCommand() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the warehouse API",
		Long: `Authenticate with username and password and store the returned tokens.

Examples:
  # Prompt for both
  warehouse auth login

  # Login with the account created by signup
  warehouse auth login --username ada@gmail.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := getCliContext(cmd)
			logger := cliCtx.Logger

			prompt := newPrompter(cmd)
			var err error
			if username == "" {
				if username, err = prompt.line("Username: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = prompt.password("Password: "); err != nil {
					return err
				}
			}

			logger.Info("Starting login", "username", username)
			if _, err := cliCtx.Services.Auth.Login(cmd.Context(), username, password); err != nil {
				if apiErr, ok := client.AsAPIError(err); ok && apiErr.StatusCode < 500 {
					return errors.New(apiErr.DisplayMessage("Login failed. Please check your credentials.", services.LoginErrorFields...))
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Logged in as %s\n", username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (if not provided, will prompt)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (if not provided, will prompt)")

	return cmd
}

func newAuthSignupCommand() *cobra.Command {
	var (
		email    string
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Long: `Register a new account. The email doubles as the username unless --username is given.
Signup does not log in; run 'warehouse auth login' afterwards.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := getCliContext(cmd)

			prompt := newPrompter(cmd)
			var err error
			if email == "" {
				if email, err = prompt.line("Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = prompt.password("Password: "); err != nil {
					return err
				}
				confirm, err := prompt.password("Confirm password: ")
				if err != nil {
					return err
				}
				if confirm != password {
					return fmt.Errorf("passwords do not match")
				}
			}

			authSvc := cliCtx.Services.Auth
			if username == "" {
				_, err = authSvc.Signup(cmd.Context(), email, password)
			} else {
				_, err = authSvc.Register(cmd.Context(), entities.RegisterRequest{Username: username, Email: email, Password: password})
			}
			if err != nil {
				if apiErr, ok := client.AsAPIError(err); ok && apiErr.StatusCode < 500 {
					return errors.New(apiErr.DisplayMessage(signupFallback, services.SignupErrorFields...))
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Account created. Run 'warehouse auth login' to sign in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (if not provided, will prompt)")
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (default: the email)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (if not provided, will prompt)")

	return cmd
}

func newAuthLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from the warehouse API",
		Long:  `Remove the stored access and refresh tokens`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := getCliContext(cmd).Services.Auth.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Successfully logged out")
			return nil
		},
	}
}

func newAuthStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx := getCliContext(cmd)
			status, err := cliCtx.Services.Auth.Status()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cliCtx.Output == OutputJSON {
				return printResult(out, OutputJSON, status, nil)
			}

			if !status.LoggedIn {
				fmt.Fprintln(out, "Not logged in")
				return nil
			}

			fmt.Fprintf(out, "API: %s (%s)\n", cliCtx.Config.API.URL, cliCtx.Config.Environment)
			if status.Claims == nil {
				fmt.Fprintln(out, "Logged in (access token is not a readable JWT)")
				return nil
			}

			claims := status.Claims
			fmt.Fprintf(out, "Logged in as: %s\n", claims.Subject())
			if claims.UserID != "" {
				fmt.Fprintf(out, "User ID: %s\n", claims.UserID)
			}
			if claims.ExpiresAt.IsZero() {
				return nil
			}

			// Show expiry in local timezone
			fmt.Fprintf(out, "Token expires: %s\n", claims.ExpiresAt.Local().Format("2006-01-02 15:04:05 MST"))
			if claims.IsExpired() {
				if status.HasRefreshToken {
					fmt.Fprintf(out, "⚠  Token expired %s ago - automatic refresh will be attempted on next request\n",
						formatDuration(time.Since(claims.ExpiresAt)))
				} else {
					fmt.Fprintf(out, "⚠  Token expired %s ago - run 'warehouse auth login'\n",
						formatDuration(time.Since(claims.ExpiresAt)))
				}
			} else {
				fmt.Fprintf(out, "✓  Valid for %s\n", formatDuration(claims.ExpiresIn()))
			}
			return nil
		},
	}
}

func newAuthTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Display the current access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := getCliContext(cmd).Tokens.GetAccessToken()
			if err != nil {
				return err
			}
			if token == "" {
				return fmt.Errorf("not logged in")
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

// prompter reads interactive answers from the command's input. One reader
// is shared across prompts so buffered input is not lost between them.
type prompter struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	in := cmd.InOrStdin()
	return &prompter{in: in, reader: bufio.NewReader(in), out: cmd.ErrOrStderr()}
}

// line reads one line, keeping inner spaces
func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	value, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && value != "") {
		return "", fmt.Errorf("failed to read %s: %w", strings.ToLower(strings.TrimSuffix(label, ": ")), err)
	}
	return strings.TrimRight(value, "\r\n"), nil
}

// password reads without echo when the input is a terminal
func (p *prompter) password(label string) (string, error) {
	f, ok := p.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		slog.Debug("input is not a terminal, reading password in the clear")
		return p.line(label)
	}

	fmt.Fprint(p.out, label)
	passwordBytes, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(p.out) // newline after password input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(passwordBytes), nil
}
