package commands

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/Siliatu1/dashboard-inscritos/internal/pkg/jwt"
)

// IssueToken handles the issue-token subcommand. It prints an access token
// for the attendance endpoints to out.
func IssueToken(args []string, secret, defaultTTL string, out io.Writer) error {
	fs := flag.NewFlagSet("issue-token", flag.ContinueOnError)
	fs.SetOutput(out)
	actor := fs.String("actor", "", "Name recorded in the attendance history (required)")
	ttl := fs.String("ttl", defaultTTL, "Token lifetime, e.g. 12h")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: dashboard-inscritos issue-token -actor NAME [-ttl DURATION]\n\n")
		fmt.Fprintf(fs.Output(), "Mints a token for PUT /api/v1/reservations/{id}/attendance.\n\n")
		fmt.Fprintf(fs.Output(), "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(fs.Output(), "\nEnvironment Variables:\n")
		fmt.Fprintf(fs.Output(), "  JWT_SECRET_KEY    Signing secret shared with the API server\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *actor == "" {
		fs.Usage()
		return fmt.Errorf("-actor is required")
	}

	token, expiresAt, err := jwt.NewJWTService(secret, *ttl).GenerateAccessToken(*actor)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	fmt.Fprintln(out, token)
	fmt.Fprintf(out, "# expires %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
	return nil
}
