package main

import (
	"errors"

	"erdash/internal/analytics"
	"erdash/internal/records"
	"erdash/pkg/domain"

	"github.com/spf13/cobra"
)

// analyticsPatientCount is generated when the analytics or patient views find no patients.
const analyticsPatientCount = 50000

var errInvalidCredentials = errors.New("invalid email or password")

func (c *cli) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "init",
		Aliases: []string{"reset"},
		Short:   "Erase the medium and reseed staff, departments and patients",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.records.Initialize(cmd.Context()); err != nil {
				return err
			}
			return c.printJSON(map[string]any{"initialized": true, "patients": c.app.cfg.SeedPatients})
		},
	}
}

func (c *cli) loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as a seed or created user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			ok, err := c.app.records.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if !ok {
				return errInvalidCredentials
			}
			user, _ := c.app.records.CurrentUser(cmd.Context())
			return c.printJSON(user)
		},
	}
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.records.Logout(cmd.Context()); err != nil {
				return err
			}
			return c.printJSON(map[string]bool{"signed_out": true})
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, ok := c.app.records.CurrentUser(cmd.Context())
			if !ok {
				return errNotSignedIn
			}
			return c.printJSON(user)
		},
	}
}

func (c *cli) patientsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "patients", Short: "Patient visits"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List patients, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			department, _ := cmd.Flags().GetString("department")
			status, _ := cmd.Flags().GetString("status")
			search, _ := cmd.Flags().GetString("search")
			limit, _ := cmd.Flags().GetInt("limit")
			patients, err := c.app.records.EnsurePatients(cmd.Context(), analyticsPatientCount)
			if err != nil {
				return err
			}
			return c.printJSON(analytics.FilterPatients(patients, analytics.PatientFilter{
				Department: department,
				Status:     domain.PatientStatus(status),
				IDContains: search,
				Limit:      limit,
			}))
		},
	}
	list.Flags().String("department", "", "Only this department")
	list.Flags().String("status", "", "Only this status (waiting|in_treatment|discharged)")
	list.Flags().String("search", "", "Case-insensitive id substring")
	list.Flags().Int("limit", analytics.DefaultPatientLimit, "Maximum rows")
	cmd.AddCommand(list)

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic patients",
		RunE: func(cmd *cobra.Command, _ []string) error {
			count, _ := cmd.Flags().GetInt("count")
			save, _ := cmd.Flags().GetBool("save")
			patients := c.app.records.Generator().GeneratePatients(count)
			if !save {
				return c.printJSON(patients)
			}
			if err := c.app.records.SetPatients(cmd.Context(), patients); err != nil {
				return err
			}
			return c.printJSON(map[string]int{"saved": len(patients)})
		},
	}
	generate.Flags().Int("count", records.DefaultSeedPatients, "Number of patients")
	generate.Flags().Bool("save", false, "Replace the stored patients instead of printing them")
	cmd.AddCommand(generate)
	return cmd
}

func (c *cli) staffCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "staff", Short: "Staff directory"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List staff members",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.printJSON(c.app.records.Staff(cmd.Context()))
		},
	})

	addShift := &cobra.Command{
		Use:   "add-shift",
		Short: "Append a schedule entry to a staff member (management only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireRole(cmd, domain.Role.CanManageStaff); err != nil {
				return err
			}
			id, _ := cmd.Flags().GetString("id")
			day, _ := cmd.Flags().GetString("day")
			hours, _ := cmd.Flags().GetString("hours")
			updated, err := c.app.records.AddShift(cmd.Context(), id, domain.ShiftEntry{Day: day, Hours: hours})
			if err != nil {
				return err
			}
			return c.printJSON(updated)
		},
	}
	addShift.Flags().String("id", "", "Staff id")
	addShift.Flags().String("day", "", "Weekday name, e.g. Monday")
	addShift.Flags().String("hours", "", "Shift hours, e.g. 7:00 AM - 3:00 PM")
	_ = addShift.MarkFlagRequired("id")
	cmd.AddCommand(addShift)
	return cmd
}

func (c *cli) departmentsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "departments", Short: "Department occupancy"}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List departments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			depts, err := c.app.records.EnsureDepartments(cmd.Context())
			if err != nil {
				return err
			}
			return c.printJSON(depts)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "near-full",
		Short: "List departments above 90% occupancy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.printJSON(analytics.NearFull(c.app.records.Departments(cmd.Context())))
		},
	})
	return cmd
}

func (c *cli) usersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Created user accounts"}
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var u records.NewUser
			u.Email, _ = cmd.Flags().GetString("email")
			u.Name, _ = cmd.Flags().GetString("name")
			role, _ := cmd.Flags().GetString("role")
			u.Role = domain.Role(role)
			u.Department, _ = cmd.Flags().GetString("department")
			u.Password, _ = cmd.Flags().GetString("password")
			created, err := c.app.records.CreateUser(cmd.Context(), u)
			if err != nil {
				return err
			}
			return c.printJSON(created)
		},
	}
	create.Flags().String("email", "", "Email")
	create.Flags().String("name", "", "Display name")
	create.Flags().String("role", string(domain.RoleStaff), "doctor|staff|management")
	create.Flags().String("department", "", "Department")
	create.Flags().String("password", "", "Password")
	cmd.AddCommand(create)
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List created users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.printJSON(c.app.records.Users(cmd.Context()))
		},
	})
	return cmd
}

func (c *cli) incidentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "incidents",
		Short: "List community incidents",
		RunE: func(*cobra.Command, []string) error {
			return c.printJSON(c.app.records.Incidents())
		},
	}
}

func (c *cli) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize stored patient visits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			patients, err := c.app.records.EnsurePatients(cmd.Context(), analyticsPatientCount)
			if err != nil {
				return err
			}
			return c.printJSON(analytics.Summarize(patients, nowFunc(), nil))
		},
	}
}

func (c *cli) scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Show the shift board",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireRole(cmd, domain.Role.CanViewSchedule); err != nil {
				return err
			}
			return c.printJSON(analytics.ShiftBoard(c.app.records.Staff(cmd.Context())))
		},
	}
}
