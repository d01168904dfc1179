package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/coachdesk/internal/logging"
	"github.com/terraincognita07/coachdesk/internal/services"
	"github.com/terraincognita07/coachdesk/internal/session"
	"go.uber.org/zap"
)

func newLoginCommand(options *rootOptions) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login --email <email>",
		Short: "Sign in and store the session locally",
		Long: `Sign in against the backend. The password is read from the terminal
without echo, or from stdin when piped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openCommandEnv(options)
			if err != nil {
				return err
			}
			defer env.Close()

			password, err := promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: ")
			if err != nil {
				return err
			}
			token, err := env.services.Auth.Login(cmd.Context(), email, password)
			if errors.Is(err, services.ErrAuthCredentialsInvalid) {
				return errors.New("a valid email and a password are required")
			}
			if err != nil {
				return fmt.Errorf("sign in failed: %w", err)
			}

			current := session.Inspect(token, env.now())
			if !current.IsAuthenticated() {
				return errors.New("sign in failed: backend issued an unusable session token")
			}
			if err := env.store.Save(cmd.Context(), token); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s), session valid until %s\n",
				current.Claims.Subject, displayRole(current.Claims.Role), current.Claims.ExpiresAt.Local().Format(time.RFC1123))
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openCommandEnv(options)
			if err != nil {
				return err
			}
			defer env.Close()

			token, err := env.store.Load(cmd.Context())
			if err != nil {
				return err
			}
			if token != "" {
				if err := env.services.Auth.Logout(cmd.Context(), token); err != nil {
					logging.L().Info("backend logout failed", zap.Error(err))
				}
			}
			if err := env.store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

type statusReport struct {
	Backend           string    `json:"backend"`
	BackendVersion    string    `json:"backend_version,omitempty"`
	BackendCompatible bool      `json:"backend_compatible"`
	BackendError      string    `json:"backend_error,omitempty"`
	Session           string    `json:"session"`
	Subject           string    `json:"subject,omitempty"`
	Role              string    `json:"role,omitempty"`
	ExpiresAt         time.Time `json:"expires_at,omitempty"`
}

func newStatusCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session and backend compatibility",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openCommandEnv(options)
			if err != nil {
				return err
			}
			defer env.Close()

			report, err := buildStatusReport(cmd.Context(), env)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), options.output, report, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "Backend:\t%s\n", report.Backend)
				switch {
				case report.BackendError != "":
					fmt.Fprintf(w, "Backend version:\tunknown (%s)\n", report.BackendError)
				case report.BackendCompatible:
					fmt.Fprintf(w, "Backend version:\t%s (supported)\n", report.BackendVersion)
				default:
					fmt.Fprintf(w, "Backend version:\t%s (requires >= %s)\n", report.BackendVersion, services.MinBackendVersion)
				}
				fmt.Fprintf(w, "Session:\t%s\n", report.Session)
				if report.Subject != "" {
					fmt.Fprintf(w, "User:\t%s (%s)\n", report.Subject, displayRole(report.Role))
					fmt.Fprintf(w, "Expires:\t%s\n", report.ExpiresAt.Local().Format(time.RFC1123))
				}
			})
		},
	}
}

func buildStatusReport(ctx context.Context, env *commandEnv) (statusReport, error) {
	report := statusReport{Backend: env.cfg.BackendURL}

	token, err := env.store.Load(ctx)
	if err != nil {
		return report, err
	}
	current := session.Inspect(token, env.now())
	report.Session = string(current.Status)
	if current.Status != session.StatusAnonymous {
		report.Subject = current.Claims.Subject
		report.Role = current.Claims.Role
		report.ExpiresAt = current.Claims.ExpiresAt
	}

	reported, err := env.services.Version.BackendVersion(ctx)
	if err != nil {
		report.BackendError = err.Error()
		return report, nil
	}
	report.BackendVersion = reported
	if err := services.CheckBackendCompatibility(reported, services.MinBackendVersion); err != nil {
		if !errors.Is(err, services.ErrBackendTooOld) {
			report.BackendError = err.Error()
		}
		return report, nil
	}
	report.BackendCompatible = true
	return report, nil
}

func displayRole(role string) string {
	if strings.TrimSpace(role) == "" {
		return "user"
	}
	return role
}
