package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"organo/internal/backend"
	"organo/internal/crypto"
	"organo/internal/domain"
)

func loginCmd() *cobra.Command {
	var passwordStdin bool
	cmd := &cobra.Command{
		Use:   "login [username]",
		Short: "Sign in to the backend",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := bufio.NewReader(cmd.InOrStdin())

			var user string
			if len(args) == 1 {
				user = args[0]
			} else {
				last := appCtx.Auth.LastUsername()
				if last != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Username [%s]: ", last)
				} else {
					fmt.Fprint(cmd.ErrOrStderr(), "Username: ")
				}
				line, err := readLine(r)
				if err != nil {
					return err
				}
				user = line
				if user == "" {
					user = last.String()
				}
			}

			pw, err := readPassword(cmd, r, passwordStdin)
			if err != nil {
				return err
			}
			defer crypto.Wipe(pw)

			u, err := appCtx.Auth.Login(cmd.Context(), domain.Credentials{
				Username: domain.Username(user),
				Password: string(pw),
			})
			if backend.IsUnauthorized(err) {
				return errBadCredentials
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out(cmd), "Signed in as %s (%s)\n", u.Username, u.Role)
			return nil
		},
	}
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin instead of prompting")
	return cmd
}

// readPassword prompts without echo on a terminal and reads a plain line
// otherwise.
func readPassword(cmd *cobra.Command, r *bufio.Reader, fromStdin bool) ([]byte, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && !fromStdin && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		return pw, err
	}
	line, err := readLine(r)
	return []byte(line), err
}

// readLine returns the next line without its line ending. A final line
// without a newline is accepted.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session and forget the tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "Signed out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, exp, err := appCtx.Auth.Whoami()
			if err != nil {
				return err
			}
			if remote {
				// Goes through the session transport, so an expired token is refreshed.
				if u, err = appCtx.Backend.Me(cmd.Context()); err != nil {
					return err
				}
			}
			view := struct {
				domain.User
				Server    string    `json:"server"`
				ExpiresAt time.Time `json:"access_expires_at,omitzero"`
			}{u, appCtx.Config.ServerURL, exp}
			return render(cmd, view, func(w io.Writer) {
				row(w, "user", u.Username)
				row(w, "role", u.Role)
				if u.Email != "" {
					row(w, "email", u.Email)
				}
				row(w, "server", appCtx.Config.ServerURL)
				if !exp.IsZero() {
					row(w, "access token expires", exp.Local().Format(time.RFC1123))
				}
			})
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "ask the backend instead of reading the stored session")
	return cmd
}
