package cli

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/rcli/internal/jwt"
	"github.com/mrz1836/rcli/internal/tui"
)

// JWTSignFlags holds flags for jwt sign.
type JWTSignFlags struct {
	Subject  string
	Audience string
	Issuer   string
	Expiry   string
}

// jwtClaimsView is the JSON shape of token claims.
type jwtClaimsView struct {
	Subject   string    `json:"sub,omitempty"`
	Audience  string    `json:"aud,omitempty"`
	Issuer    string    `json:"iss,omitempty"`
	ID        string    `json:"jti"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

type jwtSignResult struct {
	Token  string        `json:"token"`
	Claims jwtClaimsView `json:"claims"`
}

func newClaimsView(c jwt.Claims) jwtClaimsView {
	return jwtClaimsView{
		Subject:   c.Subject,
		Audience:  c.Audience,
		Issuer:    c.Issuer,
		ID:        c.ID,
		IssuedAt:  c.IssuedAt.UTC(),
		ExpiresAt: c.ExpiresAt.UTC(),
	}
}

// AddJWTCommand adds the jwt command group to the root command.
func AddJWTCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "jwt",
		Short: "Issue and verify HS256 tokens",
		Long: `Issue and verify HS256 JSON Web Tokens.

The signing secret is read from jwt.secret in the configuration or from
RCLI_JWT_SECRET.`,
	}

	signFlags := &JWTSignFlags{}
	sign := &cobra.Command{
		Use:   "sign",
		Short: "Issue a token",
		Long: `Issue a token for a subject and audience.

--exp accepts Go durations plus d (days) and w (weeks), e.g. 30m, 14d, 2w.

Examples:
  rcli jwt sign --sub alice --aud device1 --exp 14d`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJWTSign(cmd.Context(), cmd.OutOrStdout(), outputFormat(cmd), signFlags)
		},
	}
	sign.Flags().StringVar(&signFlags.Subject, "sub", "", "subject claim")
	sign.Flags().StringVar(&signFlags.Audience, "aud", "", "audience claim (default from jwt.audience)")
	sign.Flags().StringVar(&signFlags.Issuer, "iss", "", "issuer claim (default from jwt.issuer)")
	sign.Flags().StringVar(&signFlags.Expiry, "exp", "", "token lifetime (default from jwt.ttl)")
	_ = sign.MarkFlagRequired("sub")

	var token string
	verify := &cobra.Command{
		Use:   "verify",
		Short: "Verify a token",
		Long: `Verify a token's signature and expiry and print its claims.

Examples:
  rcli jwt verify -t eyJhbGciOi...`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runJWTVerify(cmd.Context(), cmd.OutOrStdout(), outputFormat(cmd), token)
		},
	}
	verify.Flags().StringVarP(&token, "token", "t", "", "token to verify")
	_ = verify.MarkFlagRequired("token")

	cmd.AddCommand(sign, verify)
	root.AddCommand(cmd)
}

func newIssuer(ctx context.Context) (*jwt.Issuer, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	return jwt.NewIssuer(cfg.JWT.Secret)
}

func runJWTSign(ctx context.Context, w io.Writer, outFmt string, flags *JWTSignFlags) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	issuer, err := jwt.NewIssuer(cfg.JWT.Secret)
	if err != nil {
		return err
	}

	ttl := cfg.JWT.TTL
	if flags.Expiry != "" {
		if ttl, err = jwt.ParseDuration(flags.Expiry); err != nil {
			return err
		}
	}

	claims := jwt.Claims{
		Subject:  flags.Subject,
		Audience: firstNonEmpty(flags.Audience, cfg.JWT.Audience),
		Issuer:   firstNonEmpty(flags.Issuer, cfg.JWT.Issuer),
	}
	token, issued, err := issuer.Sign(claims, ttl)
	if err != nil {
		return err
	}

	out := tui.NewOutput(w, outFmt)
	if outFmt == OutputJSON {
		return out.JSON(jwtSignResult{Token: token, Claims: newClaimsView(issued)})
	}
	out.Value(token)
	return nil
}

func runJWTVerify(ctx context.Context, w io.Writer, outFmt string, token string) error {
	issuer, err := newIssuer(ctx)
	if err != nil {
		return err
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		return err
	}

	out := tui.NewOutput(w, outFmt)
	view := newClaimsView(claims)
	if outFmt == OutputJSON {
		return out.JSON(view)
	}

	out.Success("Token is valid")
	out.Table([]string{"CLAIM", "VALUE"}, [][]string{
		{"sub", view.Subject},
		{"aud", view.Audience},
		{"iss", view.Issuer},
		{"jti", view.ID},
		{"iat", view.IssuedAt.Format(time.RFC3339)},
		{"exp", view.ExpiresAt.Format(time.RFC3339)},
	})
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
