package main

import (
	"fmt"
	"time"

	"github.com/SscSPs/academic_docs_app/internal/core/domain"
	"github.com/SscSPs/academic_docs_app/internal/middleware"
	"github.com/spf13/cobra"
)

// tokenCommand mints a session token for local testing. Production tokens come
// from the identity provider.
func tokenCommand() *cobra.Command {
	var (
		userID     string
		role       string
		department string
		ttl        time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed session token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			if cfg.IsProduction {
				return fmt.Errorf("refusing to mint tokens in production")
			}
			actor := domain.Actor{ID: userID, Role: domain.Role(role), DepartmentID: department}
			if actor.ID == "" || !actor.Role.IsValid() {
				return fmt.Errorf("a user id and a valid role are required")
			}
			token, err := middleware.IssueToken(actor, cfg.JWTSecret, cfg.JWTIssuer, ttl)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id (token subject)")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleTeacher), "student, teacher, department_head, college_dean or admin")
	cmd.Flags().StringVar(&department, "department", "", "department id")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
