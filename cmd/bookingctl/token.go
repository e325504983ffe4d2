package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/plannivo/booking-api/internal/config"
	"github.com/plannivo/booking-api/internal/pkg/jwt"
)

func newTokenCmd() *cobra.Command {
	var (
		userID string
		role   string
		ttl    time.Duration
	)

	c := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token signed with JWT_SECRET (development only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cfg.IsProduction() {
				return fmt.Errorf("refusing to issue tokens with ENV=production")
			}

			id := uuid.New()
			if userID != "" {
				parsed, err := uuid.Parse(userID)
				if err != nil {
					return fmt.Errorf("invalid --user-id: %w", err)
				}
				id = parsed
			}

			switch role {
			case jwt.RoleAdmin, jwt.RoleManager, jwt.RoleInstructor, jwt.RoleStudent:
			default:
				return fmt.Errorf("invalid --role %q", role)
			}

			if ttl <= 0 {
				ttl = cfg.JWTAccessTTL
			}
			token, err := jwt.NewService(cfg.JWTSecret, ttl).GenerateAccessToken(id, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	c.Flags().StringVar(&userID, "user-id", "", "User UUID (random when empty)")
	c.Flags().StringVar(&role, "role", jwt.RoleManager, "Role claim: admin, manager, instructor or student")
	c.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to JWT_ACCESS_TTL)")
	return c
}
