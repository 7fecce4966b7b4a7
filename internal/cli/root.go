package cli

import (
	"context"

	"github.com/fekuna/omnipos-fulfillment-service/internal/pod"
	"github.com/spf13/cobra"
)

// ServiceFactory opens the integrity engine and returns a cleanup func.
type ServiceFactory func(ctx context.Context) (pod.UseCase, func() error, error)

type RootOptions struct {
	JSON bool
}

// NewRootCommand creates the integrity command tree.
func NewRootCommand(open ServiceFactory) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "integrity",
		Short: "Reconcile orders, invoices and proofs of delivery",
		Long: `Scan the order, invoice and POD collections for broken links.

check reports issues without changing anything. fix invoices completed
orders that have no invoice and reports what is left.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&opts.JSON, "json", false, "print machine-readable JSON")

	cmd.AddCommand(NewCheckCommand(opts, open))
	cmd.AddCommand(NewFixCommand(opts, open))

	return cmd
}

func withService(ctx context.Context, open ServiceFactory, fn func(svc pod.UseCase) error) (err error) {
	svc, cleanup, err := open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cleanup(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(svc)
}
