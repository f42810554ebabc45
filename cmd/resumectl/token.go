package main

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"resume-tailor/internal/shared/auth"
)

type tokenOptions struct {
	email string
	name  string
	admin bool
	ttl   time.Duration
}

func newTokenCmd() *cobra.Command {
	opts := &tokenOptions{}
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Sign a development JWT with JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			signed, err := runToken(args[0], opts, time.Now().UTC())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.email, "email", "", "email claim")
	cmd.Flags().StringVar(&opts.name, "name", "", "name claim")
	cmd.Flags().BoolVar(&opts.admin, "admin", false, "add role=admin")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

func runToken(userID string, opts *tokenOptions, now time.Time) (string, error) {
	if opts.ttl <= 0 {
		return "", errors.New("ttl must be positive")
	}
	claims := auth.Claims{
		Email: opts.email,
		Name:  opts.name,
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(opts.ttl).Unix(),
		},
	}
	if opts.admin {
		claims.Role = auth.RoleAdmin
	}
	signed, err := auth.SignJWT(claims)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}
