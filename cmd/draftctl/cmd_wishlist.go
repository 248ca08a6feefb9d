package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"festdraft/internal/client/wishlist"
	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
)

func newWishlistCmd(a *app) *cobra.Command {
	var team string
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Keep a team's shortlist of candidates in the profile",
	}
	cmd.PersistentFlags().StringVar(&team, "team", "", "team name (administrators only; managers use their own team)")

	// teamFor resolves whose wishlist a command works on.
	teamFor := func() (string, error) {
		sess := a.gate.Current()
		if a.gate.IsAdmin() {
			if team == "" {
				return "", errors.New("administrators must pass --team")
			}
			return team, nil
		}
		if team != "" && team != sess.Team {
			return "", fmt.Errorf("%w; managers can only edit their own team's wishlist", errDenied)
		}
		if sess.Team == "" {
			return "", wishlist.ErrNoTeam
		}
		return sess.Team, nil
	}

	list := &cobra.Command{
		Use:         "list",
		Short:       "Show the wishlist",
		Args:        cobra.NoArgs,
		Annotations: requires(guardSession),
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := teamFor()
			if err != nil {
				return err
			}
			wl, err := wishlist.Open(cmd.Context(), a.store, wishlist.WithLogger(a.logger))
			if err != nil {
				return err
			}
			defer wl.Close()
			return a.printWishlist(name, wl.List(name))
		},
	}

	add := &cobra.Command{
		Use:         "add <participant-id>",
		Short:       "Add an available participant to the wishlist",
		Args:        cobra.ExactArgs(1),
		Annotations: requires(guardSession),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := teamFor()
			if err != nil {
				return err
			}
			participantID, err := id.ParseParticipantID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			candidates, err := fetchAll(ctx, func(ctx context.Context, q url.Values) (*models.ListResponse[*models.Participant], error) {
				return a.client.AvailableParticipants(ctx, 0, q)
			})
			if err := a.check(ctx, err); err != nil {
				return err
			}
			var found *models.Participant
			for _, p := range candidates {
				if p.ID == participantID {
					found = p
					break
				}
			}
			if found == nil {
				return fmt.Errorf("participant %s is not available", participantID)
			}

			wl, err := wishlist.Open(ctx, a.store, wishlist.WithLogger(a.logger))
			if err != nil {
				return err
			}
			defer wl.Close()
			added, err := wl.Add(ctx, name, found)
			if err != nil {
				return err
			}
			if added {
				a.printf("Added %s to the %s wishlist.\n", found.Name, name)
			} else {
				a.printf("%s is already on the %s wishlist.\n", found.Name, name)
			}
			return nil
		},
	}

	remove := &cobra.Command{
		Use:         "remove <participant-id>",
		Short:       "Remove a participant from the wishlist",
		Args:        cobra.ExactArgs(1),
		Annotations: requires(guardSession),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := teamFor()
			if err != nil {
				return err
			}
			participantID, err := id.ParseParticipantID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			wl, err := wishlist.Open(ctx, a.store, wishlist.WithLogger(a.logger))
			if err != nil {
				return err
			}
			defer wl.Close()
			removed, err := wl.Remove(ctx, name, participantID)
			if err != nil {
				return err
			}
			if removed {
				a.printf("Removed %s from the %s wishlist.\n", participantID, name)
			} else {
				a.printf("%s was not on the %s wishlist.\n", participantID, name)
			}
			return nil
		},
	}

	var priority int
	var notes string
	update := &cobra.Command{
		Use:         "update <participant-id>",
		Short:       "Rank or annotate a wishlisted participant",
		Long:        fmt.Sprintf("Rank 1 is the first pick and %d the last; --priority 0 unranks. Only the flags you pass are changed.", wishlist.MaxPriority),
		Args:        cobra.ExactArgs(1),
		Annotations: requires(guardSession),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := teamFor()
			if err != nil {
				return err
			}
			participantID, err := id.ParseParticipantID(args[0])
			if err != nil {
				return err
			}
			var u wishlist.ItemUpdate
			fs := cmd.Flags()
			if fs.Changed("priority") {
				u.Priority = &priority
			}
			if fs.Changed("notes") {
				u.Notes = &notes
			}
			if u.Priority == nil && u.Notes == nil {
				return errors.New("nothing to update; pass --priority or --notes")
			}
			ctx := cmd.Context()
			wl, err := wishlist.Open(ctx, a.store, wishlist.WithLogger(a.logger))
			if err != nil {
				return err
			}
			defer wl.Close()
			updated, err := wl.Update(ctx, name, participantID, u)
			if err != nil {
				return err
			}
			if !updated {
				return fmt.Errorf("%s is not on the %s wishlist", participantID, name)
			}
			a.printf("Updated %s on the %s wishlist.\n", participantID, name)
			return nil
		},
	}
	update.Flags().IntVar(&priority, "priority", 0, fmt.Sprintf("rank from 1 to %d, 0 to unrank", wishlist.MaxPriority))
	update.Flags().StringVar(&notes, "notes", "", "free-form notes; an empty value clears them")

	clearCmd := &cobra.Command{
		Use:         "clear",
		Short:       "Empty the wishlist",
		Args:        cobra.NoArgs,
		Annotations: requires(guardSession),
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := teamFor()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			wl, err := wishlist.Open(ctx, a.store, wishlist.WithLogger(a.logger))
			if err != nil {
				return err
			}
			defer wl.Close()
			n, err := wl.Clear(ctx, name)
			if err != nil {
				return err
			}
			a.printf("Cleared %d from the %s wishlist.\n", n, name)
			return nil
		},
	}

	watch := &cobra.Command{
		Use:         "watch",
		Short:       "Print the wishlist again whenever another session changes it",
		Args:        cobra.NoArgs,
		Annotations: requires(guardSession),
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := teamFor()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			changed := make(chan struct{}, 1)
			wl, err := wishlist.Open(ctx, a.store,
				wishlist.WithLogger(a.logger),
				wishlist.WithOnChange(func() {
					select {
					case changed <- struct{}{}:
					default:
					}
				}),
			)
			if err != nil {
				return err
			}
			defer wl.Close()

			for {
				if err := a.printWishlist(name, wl.List(name)); err != nil {
					return err
				}
				select {
				case <-ctx.Done():
					return nil
				case <-changed:
				}
			}
		},
	}

	cmd.AddCommand(list, add, remove, update, clearCmd, watch)
	return cmd
}

func (a *app) printWishlist(team string, items []*wishlist.Item) error {
	if a.jsonOutput() {
		return a.printJSON(wishlist.Entry{Team: team, Participants: items})
	}
	headers := make([]string, 0, len(participantColumns)+2)
	headers = append(headers, "RANK")
	headers = append(headers, participantColumns...)
	t := newTable("Wishlist for "+team, append(headers, "NOTES")...)
	for _, it := range items {
		rank := "-"
		if it.Priority > 0 {
			rank = strconv.Itoa(it.Priority)
		}
		row := append([]string{rank}, participantRow(it.Participant)...)
		t.add(append(row, it.Notes)...)
	}
	t.render(a.out)
	return nil
}
