package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/fekuna/omnipos-fulfillment-service/internal/pod"
	"github.com/spf13/cobra"
)

func NewCheckCommand(opts *RootOptions, open ServiceFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report integrity issues in scan order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), open, func(svc pod.UseCase) error {
				issues, err := svc.CheckIntegrity(cmd.Context())
				if err != nil {
					return err
				}
				if opts.JSON {
					return writeJSON(cmd.OutOrStdout(), issues)
				}
				return writeIssues(cmd.OutOrStdout(), issues)
			})
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func issueRef(issue model.IntegrityIssue) string {
	switch {
	case issue.OrderID != "":
		return "order:" + string(issue.OrderID)
	case issue.InvoiceID != "":
		return "invoice:" + string(issue.InvoiceID)
	case issue.PODID != "":
		return "pod:" + string(issue.PODID)
	}
	return "-"
}

func writeIssues(w io.Writer, issues []model.IntegrityIssue) error {
	if len(issues) == 0 {
		_, err := fmt.Fprintln(w, "no integrity issues found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEVERITY\tTYPE\tREFERENCE\tDESCRIPTION")
	for _, issue := range issues {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", issue.Severity, issue.Type, issueRef(issue), issue.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d issue(s) found\n", len(issues))
	return err
}
