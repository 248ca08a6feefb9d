package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"festdraft/internal/guard"
)

func newLoginCmd(a *app) *cobra.Command {
	var (
		email         string
		passwordStdin bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session in the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				fmt.Fprint(a.errOut, "Email: ")
				line, err := a.readLine()
				if err != nil {
					return fmt.Errorf("read email: %w", err)
				}
				email = line
			}

			var password string
			if passwordStdin {
				line, err := a.readLine()
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = line
			} else {
				raw, err := a.readPassword()
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = string(raw)
			}

			res := a.gate.Login(cmd.Context(), email, password)
			if !res.OK {
				return errors.New(res.Message)
			}
			if a.jsonOutput() {
				return a.printJSON(res.Session)
			}
			a.printf("Signed in as %s (%s). Your home page is %s.\n",
				res.Session.DisplayName, res.Session.Role, guard.Landing(res.Session.Role))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email (prompted when empty)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from standard input")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session here and on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			signedIn := a.gate.Current() != nil
			a.gate.Logout(cmd.Context())
			if signedIn {
				a.printf("Signed out.\n")
			} else {
				a.printf("Not signed in.\n")
			}
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "whoami",
		Short:       "Show the signed-in account and what it may do",
		Args:        cobra.NoArgs,
		Annotations: requires(guardSession),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			sess := a.gate.Current()
			perms, err := a.client.Permissions(ctx)
			if err := a.check(ctx, err); err != nil {
				return err
			}
			if a.jsonOutput() {
				return a.printJSON(map[string]any{"session": sess, "permissions": perms})
			}

			t := newTable("Account", "FIELD", "VALUE")
			t.add("name", sess.DisplayName)
			t.add("email", sess.Email)
			t.add("role", sess.Role.String())
			if sess.Team != "" {
				t.add("team", sess.Team)
			}
			t.add("home", guard.Landing(sess.Role))
			t.render(a.out)

			var can []string
			for name, ok := range map[string]bool{
				"create auctions": perms.CanCreateAuction,
				"start auctions":  perms.CanStartAuction,
				"end auctions":    perms.CanEndAuction,
				"manage users":    perms.CanManageUsers,
				"assign roles":    perms.CanAssignRoles,
			} {
				if ok {
					can = append(can, name)
				}
			}
			if len(can) == 0 {
				a.printf("No administrative permissions.\n")
				return nil
			}
			slices.Sort(can)
			a.printf("May %s.\n", strings.Join(can, ", "))
			return nil
		},
	}
}

func newHomeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "home",
		Short:       "Show the landing page for the signed-in role",
		Args:        cobra.NoArgs,
		Annotations: requires(guardSession),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if a.gate.IsAdmin() {
				dash, err := a.client.Dashboard(ctx)
				if err := a.check(ctx, err); err != nil {
					return err
				}
				if a.jsonOutput() {
					return a.printJSON(dash)
				}
				a.printf("Welcome, %s.\n", dash.Welcome)
				o := dash.Overview
				t := newTable("Overview", "ITEM", "COUNT")
				t.add("teams", itoa(o.Teams))
				t.add("sections", itoa(o.Sections))
				t.add("groups", itoa(o.Groups))
				t.add("participants", itoa(o.Participants))
				t.add("available", itoa(o.AvailableParticipants))
				t.add("auctions", itoa(o.Auctions))
				t.add("live auctions", itoa(o.LiveAuctions))
				t.render(a.out)
				return nil
			}

			home, err := a.client.TeamHome(ctx)
			if err := a.check(ctx, err); err != nil {
				return err
			}
			if a.jsonOutput() {
				return a.printJSON(home)
			}
			a.printf("Welcome, %s.\n", home.Manager.DisplayName)
			if home.Team == nil {
				a.printf("No team is linked to this account yet.\n")
			} else {
				a.printf("Team %s", home.Team.Name)
				if home.Team.Colour != "" {
					a.printf(" (%s)", home.Team.Colour)
				}
				a.printf("\n")
			}
			a.printf("%d of %d participants are still available.\n", home.Candidates, home.Pool)
			return nil
		},
	}
}
