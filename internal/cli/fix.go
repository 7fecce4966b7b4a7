package cli

import (
	"fmt"

	"github.com/fekuna/omnipos-fulfillment-service/internal/auth"
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/fekuna/omnipos-fulfillment-service/internal/pod"
	"github.com/fekuna/omnipos-fulfillment-service/internal/pod/dto"
	"github.com/spf13/cobra"
)

type fixResult struct {
	Report    *dto.RepairReport      `json:"report"`
	Remaining []model.IntegrityIssue `json:"remaining"`
}

func NewFixCommand(opts *RootOptions, open ServiceFactory) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Invoice completed orders that have no invoice, then re-check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), open, func(svc pod.UseCase) error {
				report, err := svc.AutoFixIntegrityIssues(cmd.Context(), model.UserID(user))
				if err != nil {
					return err
				}
				remaining, err := svc.CheckIntegrity(cmd.Context())
				if err != nil {
					return err
				}

				if opts.JSON {
					return writeJSON(cmd.OutOrStdout(), fixResult{Report: report, Remaining: remaining})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "fixed: %d, errors: %d\n", report.Fixed, report.Errors)
				for _, o := range report.Outcomes {
					if o.Err != nil {
						fmt.Fprintf(out, "  failed order %s: %v\n", o.Issue.OrderID, o.Err)
					}
				}
				_, err = fmt.Fprintf(out, "remaining issues: %d\n", len(remaining))
				return err
			})
		},
	}

	cmd.Flags().StringVar(&user, "user", string(auth.SystemUser), "acting user recorded as invoice creator")
	return cmd
}
