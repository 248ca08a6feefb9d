package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"festdraft/internal/client/api"
	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
)

var auctionColumns = []string{"ID", "NAME", "SECTION", "STATUS", "TIMER", "EXTRA", "TEAMS", "CODE"}

func auctionRow(au *models.Auction) []string {
	return []string{
		au.ID.String(),
		au.Name,
		au.SectionName,
		au.Status.String(),
		fmt.Sprintf("%ds", au.TimerSeconds),
		fmt.Sprintf("%ds", au.ExtraTimeSeconds),
		itoa(len(au.FirstTeamsOrder)),
		au.AccessCode,
	}
}

func newAuctionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "auctions", Short: "List auctions and drive their lifecycle"}

	var lf listFlags
	list := &cobra.Command{
		Use:         "list",
		Short:       "List auctions",
		Args:        cobra.NoArgs,
		Annotations: requires(guardSession),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, a, &lf, listing[*models.Auction]{
				view:        "auctions",
				title:       "Auctions",
				fields:      models.AuctionFields,
				remember:    []string{models.FilterStatus, models.FilterSection},
				defaultSort: "created",
				fetch:       a.client.Auctions,
				headers:     auctionColumns,
				row:         auctionRow,
			})
		},
	}
	lf.register(list)

	var req models.CreateAuctionRequest
	create := &cobra.Command{
		Use:         "create",
		Short:       "Create a draft auction",
		Args:        cobra.NoArgs,
		Annotations: requires(guardAdmin),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			au, err := a.client.CreateAuction(ctx, &req)
			if err := a.check(ctx, err); err != nil {
				return err
			}
			if err := a.printCreated("auction", au, auctionColumns, auctionRow(au)); err != nil {
				return err
			}
			if !a.jsonOutput() {
				a.printf("Share access code %s with the authorized managers.\n", au.AccessCode)
			}
			return nil
		},
	}
	cf := create.Flags()
	cf.StringVar(&req.Name, "name", "", "auction name")
	cf.StringVar(&req.Description, "description", "", "description")
	cf.StringVar(&req.SectionID, "section", "", "section id whose participants are drafted")
	cf.IntVar(&req.Timer, "timer", 0, "seconds per pick (default 30)")
	cf.IntVar(&req.ExtraTime, "extra-time", 0, "extra seconds a team may claim (default 10)")
	cf.StringSliceVar(&req.FirstTeamsOrder, "team", nil, "team id in first-round pick order, repeatable")
	cf.StringSliceVar(&req.AuthorizedManagers, "manager", nil, "user id allowed into the room, repeatable")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("section")
	_ = create.MarkFlagRequired("team")

	cmd.AddCommand(list, create, newAuctionUpdateCmd(a), newAuctionDeleteCmd(a),
		newAuctionCodeCmd(a, "start", "Move a draft auction to live", (*api.Client).StartAuction),
		newAuctionCodeCmd(a, "end", "Complete a live auction", (*api.Client).EndAuction),
		newVerifyCmd(a),
	)
	return cmd
}

// newAuctionUpdateCmd patches a draft auction. Only flags that were given
// are sent.
func newAuctionUpdateCmd(a *app) *cobra.Command {
	var (
		name, description, section string
		timer, extraTime           int
		teams, managers            []string
	)
	cmd := &cobra.Command{
		Use:         "update <auction-id>",
		Short:       "Change a draft auction",
		Args:        cobra.ExactArgs(1),
		Annotations: requires(guardAdmin),
		RunE: func(cmd *cobra.Command, args []string) error {
			auctionID, err := id.ParseAuctionID(args[0])
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			req := &models.UpdateAuctionRequest{}
			if fs.Changed("name") {
				req.Name = &name
			}
			if fs.Changed("description") {
				req.Description = &description
			}
			if fs.Changed("section") {
				req.SectionID = &section
			}
			if fs.Changed("timer") {
				req.Timer = &timer
			}
			if fs.Changed("extra-time") {
				req.ExtraTime = &extraTime
			}
			if fs.Changed("team") {
				req.FirstTeamsOrder = &teams
			}
			if fs.Changed("manager") {
				req.AuthorizedManagers = &managers
			}
			ctx := cmd.Context()
			au, err := a.client.UpdateAuction(ctx, auctionID, req)
			if err := a.check(ctx, err); err != nil {
				return err
			}
			if a.jsonOutput() {
				return a.printJSON(au)
			}
			t := newTable("Auction", auctionColumns...)
			t.add(auctionRow(au)...)
			t.render(a.out)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "auction name")
	f.StringVar(&description, "description", "", "description")
	f.StringVar(&section, "section", "", "section id whose participants are drafted")
	f.IntVar(&timer, "timer", 0, "seconds per pick")
	f.IntVar(&extraTime, "extra-time", 0, "extra seconds a team may claim")
	f.StringSliceVar(&teams, "team", nil, "team id in first-round pick order, repeatable; replaces the order")
	f.StringSliceVar(&managers, "manager", nil, "user id allowed into the room, repeatable; replaces the list")
	return cmd
}

func newAuctionDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "delete <auction-id>",
		Short:       "Delete an auction that has not started",
		Args:        cobra.ExactArgs(1),
		Annotations: requires(guardAdmin),
		RunE: func(cmd *cobra.Command, args []string) error {
			auctionID, err := id.ParseAuctionID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := a.check(ctx, a.client.DeleteAuction(ctx, auctionID)); err != nil {
				return err
			}
			a.printf("Deleted auction %s.\n", auctionID)
			return nil
		},
	}
}

// lifecycleCall is an api.Client method taking an auction id and its
// access code.
type lifecycleCall func(c *api.Client, ctx context.Context, auctionID id.AuctionID, code string) (*models.Auction, error)

func newAuctionCodeCmd(a *app, use, short string, call lifecycleCall) *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:         use + " <auction-id>",
		Short:       short,
		Args:        cobra.ExactArgs(1),
		Annotations: requires(guardAdmin),
		RunE: func(cmd *cobra.Command, args []string) error {
			auctionID, err := id.ParseAuctionID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			au, err := call(a.client, ctx, auctionID, code)
			if err := a.check(ctx, err); err != nil {
				return err
			}
			if a.jsonOutput() {
				return a.printJSON(au)
			}
			a.printf("Auction %s is now %s.\n", au.Name, au.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "auction access code")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

// newVerifyCmd checks an access code before entering the auction room.
func newVerifyCmd(a *app) *cobra.Command {
	var code string
	cmd := &cobra.Command{
		Use:         "verify <auction-id>",
		Short:       "Check an access code and whether this account may enter the room",
		Args:        cobra.ExactArgs(1),
		Annotations: requires(guardSession),
		RunE: func(cmd *cobra.Command, args []string) error {
			auctionID, err := id.ParseAuctionID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			res, err := a.client.VerifyAccess(ctx, auctionID, code)
			if err := a.check(ctx, err); err != nil {
				return err
			}
			if a.jsonOutput() {
				return a.printJSON(res)
			}
			if !res.Valid {
				return fmt.Errorf("access to auction %s denied", auctionID)
			}
			a.printf("Access granted to %s (%s).\n", res.Auction.Name, res.Auction.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&code, "code", "", "auction access code")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}
