// Command draftctl is the operator client for a festdraft server: sign in,
// browse and edit the roster, keep a team wishlist and run auctions.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"festdraft/internal/client/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := execute(ctx, a, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

// execute runs one command line against a.
func execute(ctx context.Context, a *app, args []string) error {
	defer a.close()
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	return root.ExecuteContext(ctx)
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, errNotSignedIn), errors.Is(err, errExpired):
		return 2
	case errors.Is(err, errDenied):
		return 3
	default:
		return 1
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "draftctl",
		Short:         "Operator client for the festdraft auction server",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	pf.StringVar(&a.flags.server, "server", "", "server base URL")
	pf.StringVar(&a.flags.profile, "profile", "", "profile database holding the session, wishlist and view preferences")
	pf.StringVarP(&a.flags.output, "output", "o", "", "output format: table or json")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.DurationVar(&a.flags.timeout, "timeout", 0, "per-request timeout")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newHomeCmd(a),
		newTeamsCmd(a),
		newSectionsCmd(a),
		newGroupsCmd(a),
		newParticipantsCmd(a),
		newCandidatesCmd(a),
		newWishlistCmd(a),
		newAuctionsCmd(a),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), userAgent())
			return err
		},
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}
}
