// Command erdash operates the dashboard data layer: seeding, sign-in, and
// reading or editing the stored collections. Output is indented JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"erdash/pkg/domain"

	"github.com/spf13/cobra"
)

var (
	exitFunc = os.Exit
	nowFunc  = time.Now
)

func main() {
	exitFunc(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := &cli{out: stdout}
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if c.app != nil {
		if c.dumpMetrics {
			if counters, cerr := c.app.counters(); cerr == nil {
				_ = writeJSON(stderr, counters)
			}
		}
		c.app.close()
	}
	if err != nil {
		return 1
	}
	return 0
}

type cli struct {
	out         io.Writer
	app         *app
	dumpMetrics bool
}

var errNotSignedIn = errors.New("not signed in")

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) printJSON(v any) error { return writeJSON(c.out, v) }

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "erdash",
		Short:         "ER dashboard data layer",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&c.dumpMetrics, "metrics", false, "Print storage operation counters to stderr on exit")

	root.AddCommand(c.initCmd())
	root.AddCommand(c.loginCmd())
	root.AddCommand(c.logoutCmd())
	root.AddCommand(c.whoamiCmd())
	root.AddCommand(c.patientsCmd())
	root.AddCommand(c.staffCmd())
	root.AddCommand(c.departmentsCmd())
	root.AddCommand(c.usersCmd())
	root.AddCommand(c.incidentsCmd())
	root.AddCommand(c.statsCmd())
	root.AddCommand(c.scheduleCmd())
	return root
}

// requireRole returns the current session when allowed accepts its role.
func (c *cli) requireRole(cmd *cobra.Command, allowed func(domain.Role) bool) error {
	user, ok := c.app.records.CurrentUser(cmd.Context())
	if !ok {
		return errNotSignedIn
	}
	if !allowed(user.Role) {
		return fmt.Errorf("role %q may not run %q", user.Role, cmd.CommandPath())
	}
	return nil
}
