package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
)

var teamColumns = []string{"ID", "NAME", "MANAGER", "COLOUR"}

func teamRow(t *models.Team) []string {
	return []string{t.ID.String(), t.Name, t.Manager, t.Colour}
}

var participantColumns = []string{"ID", "NAME", "SECTION", "GENDER", "SKILL", "EXPERIENCE", "TEAM", "STATUS"}

func participantRow(p *models.Participant) []string {
	return []string{p.ID.String(), p.Name, p.SectionName, p.Gender, p.Skill, p.Experience, p.TeamName, p.Status}
}

func newTeamsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "teams", Short: "List and manage teams"}

	var lf listFlags
	list := &cobra.Command{
		Use:         "list",
		Short:       "List teams",
		Args:        cobra.NoArgs,
		Annotations: requires(guardSession),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, a, &lf, listing[*models.Team]{
				view:        "teams",
				title:       "Teams",
				fields:      models.TeamFields,
				remember:    []string{"colour"},
				defaultSort: "name",
				fetch:       a.client.Teams,
				headers:     teamColumns,
				row:         teamRow,
			})
		},
	}
	lf.register(list)

	var req models.CreateTeamRequest
	create := &cobra.Command{
		Use:         "create",
		Short:       "Create a team",
		Args:        cobra.NoArgs,
		Annotations: requires(guardAdmin),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			team, err := a.client.CreateTeam(ctx, &req)
			if err := a.check(ctx, err); err != nil {
				return err
			}
			return a.printCreated("team", team, teamColumns, teamRow(team))
		},
	}
	create.Flags().StringVar(&req.Name, "name", "", "team name")
	create.Flags().StringVar(&req.Manager, "manager", "", "manager display name")
	create.Flags().StringVar(&req.Colour, "colour", "", "team colour")
	create.Flags().StringVar(&req.LogoURL, "logo", "", "logo URL")
	_ = create.MarkFlagRequired("name")

	del := &cobra.Command{
		Use:         "delete <team-id>",
		Short:       "Delete a team; its participants become unassigned",
		Args:        cobra.ExactArgs(1),
		Annotations: requires(guardAdmin),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID, err := id.ParseTeamID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := a.check(ctx, a.client.DeleteTeam(ctx, teamID)); err != nil {
				return err
			}
			a.printf("Deleted team %s.\n", teamID)
			return nil
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func newSectionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "sections", Short: "List and manage sections"}

	var lf listFlags
	list := &cobra.Command{
		Use:         "list",
		Short:       "List sections",
		Args:        cobra.NoArgs,
		Annotations: requires(guardSession),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, a, &lf, listing[*models.Section]{
				view:        "sections",
				title:       "Sections",
				fields:      models.SectionFields,
				defaultSort: "name",
				fetch:       a.client.Sections,
				headers:     []string{"ID", "NAME"},
				row: func(s *models.Section) []string {
					return []string{s.ID.String(), s.Name}
				},
			})
		},
	}
	lf.register(list)

	create := &cobra.Command{
		Use:         "create <name>",
		Short:       "Create a section",
		Args:        cobra.ExactArgs(1),
		Annotations: requires(guardAdmin),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			section, err := a.client.CreateSection(ctx, &models.SectionRequest{Name: args[0]})
			if err := a.check(ctx, err); err != nil {
				return err
			}
			return a.printCreated("section", section, []string{"ID", "NAME"}, []string{section.ID.String(), section.Name})
		},
	}

	del := &cobra.Command{
		Use:         "delete <section-id>",
		Short:       "Delete a section without participants or groups",
		Args:        cobra.ExactArgs(1),
		Annotations: requires(guardAdmin),
		RunE: func(cmd *cobra.Command, args []string) error {
			sectionID, err := id.ParseSectionID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := a.check(ctx, a.client.DeleteSection(ctx, sectionID)); err != nil {
				return err
			}
			a.printf("Deleted section %s.\n", sectionID)
			return nil
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

var groupColumns = []string{"ID", "NAME", "SECTION"}

func groupRow(g *models.Group) []string {
	return []string{g.ID.String(), g.Name, g.SectionName}
}

func newGroupsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "groups", Short: "List and manage groups within sections"}

	var (
		lf      listFlags
		section string
	)
	list := &cobra.Command{
		Use:         "list",
		Short:       "List groups",
		Args:        cobra.NoArgs,
		Annotations: requires(guardSession),
		RunE: func(cmd *cobra.Command, _ []string) error {
			sectionID, err := sectionScope(section)
			if err != nil {
				return err
			}
			return runList(cmd, a, &lf, listing[*models.Group]{
				view:        "groups",
				title:       "Groups",
				fields:      models.GroupFields,
				remember:    []string{models.FilterSection},
				defaultSort: "name",
				fetch: func(ctx context.Context, q url.Values) (*models.ListResponse[*models.Group], error) {
					return a.client.Groups(ctx, sectionID, q)
				},
				headers: groupColumns,
				row:     groupRow,
			})
		},
	}
	lf.register(list)
	list.Flags().StringVar(&section, "section", "", "only groups of this section id")

	var req models.CreateGroupRequest
	create := &cobra.Command{
		Use:         "create <name>",
		Short:       "Create a group in a section",
		Args:        cobra.ExactArgs(1),
		Annotations: requires(guardAdmin),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req.Name = args[0]
			group, err := a.client.CreateGroup(ctx, &req)
			if err := a.check(ctx, err); err != nil {
				return err
			}
			return a.printCreated("group", group, groupColumns, groupRow(group))
		},
	}
	create.Flags().StringVar(&req.SectionID, "section", "", "section id the group belongs to")
	_ = create.MarkFlagRequired("section")

	rename := &cobra.Command{
		Use:         "rename <group-id> <name>",
		Short:       "Rename a group",
		Args:        cobra.ExactArgs(2),
		Annotations: requires(guardAdmin),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupID, err := id.ParseGroupID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			group, err := a.client.UpdateGroup(ctx, groupID, &models.UpdateGroupRequest{Name: args[1]})
			if err := a.check(ctx, err); err != nil {
				return err
			}
			if a.jsonOutput() {
				return a.printJSON(group)
			}
			a.printf("Renamed group %s to %s.\n", groupID, group.Name)
			return nil
		},
	}

	del := &cobra.Command{
		Use:         "delete <group-id>",
		Short:       "Delete a group",
		Args:        cobra.ExactArgs(1),
		Annotations: requires(guardAdmin),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupID, err := id.ParseGroupID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := a.check(ctx, a.client.DeleteGroup(ctx, groupID)); err != nil {
				return err
			}
			a.printf("Deleted group %s.\n", groupID)
			return nil
		},
	}

	cmd.AddCommand(list, create, rename, del)
	return cmd
}

// sectionScope parses the optional --section flag of participant and group
// lists.
func sectionScope(raw string) (id.SectionID, error) {
	if raw == "" {
		return 0, nil
	}
	return id.ParseSectionID(raw)
}

func newParticipantsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "participants", Short: "List and manage participants"}

	var (
		lf      listFlags
		section string
	)
	list := &cobra.Command{
		Use:         "list",
		Short:       "List participants",
		Args:        cobra.NoArgs,
		Annotations: requires(guardSession),
		RunE: func(cmd *cobra.Command, _ []string) error {
			sectionID, err := sectionScope(section)
			if err != nil {
				return err
			}
			return runList(cmd, a, &lf, listing[*models.Participant]{
				view:   "participants",
				title:  "Participants",
				fields: models.ParticipantFields,
				remember: []string{
					models.FilterStatus, models.FilterSection, models.FilterGender,
					models.FilterTeam, models.FilterSkill,
				},
				defaultSort: "name",
				fetch: func(ctx context.Context, q url.Values) (*models.ListResponse[*models.Participant], error) {
					return a.client.Participants(ctx, sectionID, q)
				},
				headers: participantColumns,
				row:     participantRow,
			})
		},
	}
	lf.register(list)
	list.Flags().StringVar(&section, "section", "", "only participants of this section id")

	var req models.CreateParticipantRequest
	create := &cobra.Command{
		Use:         "create",
		Short:       "Create a participant",
		Args:        cobra.NoArgs,
		Annotations: requires(guardAdmin),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p, err := a.client.CreateParticipant(ctx, &req)
			if err := a.check(ctx, err); err != nil {
				return err
			}
			return a.printCreated("participant", p, participantColumns, participantRow(p))
		},
	}
	cf := create.Flags()
	cf.StringVar(&req.Name, "name", "", "full name")
	cf.StringVar(&req.Email, "email", "", "email address")
	cf.StringVar(&req.Phone, "phone", "", "phone number")
	cf.StringVar(&req.Gender, "gender", "", "MALE or FEMALE")
	cf.StringVar(&req.SectionID, "section", "", "section id")
	cf.StringVar(&req.Skill, "skill", "", "main skill")
	cf.StringVar(&req.Experience, "experience", "", "experience, e.g. \"3 years\"")
	cf.StringVar(&req.AdmNo, "adm-no", "", "admission number")
	cf.StringVar(&req.ChestNo, "chest-no", "", "chest number")
	_ = create.MarkFlagRequired("name")

	importCmd := &cobra.Command{
		Use:         "import <file.json|->",
		Short:       "Create participants in bulk from a JSON array",
		Args:        cobra.ExactArgs(1),
		Annotations: requires(guardAdmin),
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, err := a.readBatch(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			res, err := a.client.BulkCreateParticipants(ctx, batch)
			if err := a.check(ctx, err); err != nil {
				return err
			}
			if a.jsonOutput() {
				return a.printJSON(res)
			}
			a.printf("Created %d of %d participants.\n", res.Success, len(batch.Participants))
			if len(res.Errors) > 0 {
				t := newTable("Skipped", "INDEX", "NAME", "ERROR")
				for _, e := range res.Errors {
					t.add(itoa(e.Index), e.Name, e.Error)
				}
				t.render(a.out)
			}
			return nil
		},
	}

	var (
		team     string
		unassign bool
	)
	assign := &cobra.Command{
		Use:         "assign <participant-id>",
		Short:       "Put a participant on a team, or take them off with --unassign",
		Args:        cobra.ExactArgs(1),
		Annotations: requires(guardAdmin),
		RunE: func(cmd *cobra.Command, args []string) error {
			participantID, err := id.ParseParticipantID(args[0])
			if err != nil {
				return err
			}
			if unassign == (team != "") {
				return errors.New("pass exactly one of --team or --unassign")
			}
			ctx := cmd.Context()
			p, err := a.client.UpdateParticipant(ctx, participantID, &models.UpdateParticipantRequest{TeamID: &team})
			if err := a.check(ctx, err); err != nil {
				return err
			}
			if a.jsonOutput() {
				return a.printJSON(p)
			}
			if p.HasTeam() {
				a.printf("%s is now on %s (%s).\n", p.Name, p.TeamName, p.Status)
			} else {
				a.printf("%s is unassigned (%s).\n", p.Name, p.Status)
			}
			return nil
		},
	}
	assign.Flags().StringVar(&team, "team", "", "team id")
	assign.Flags().BoolVar(&unassign, "unassign", false, "remove the participant from their team")

	del := &cobra.Command{
		Use:         "delete <participant-id>",
		Short:       "Delete a participant",
		Args:        cobra.ExactArgs(1),
		Annotations: requires(guardAdmin),
		RunE: func(cmd *cobra.Command, args []string) error {
			participantID, err := id.ParseParticipantID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := a.check(ctx, a.client.DeleteParticipant(ctx, participantID)); err != nil {
				return err
			}
			a.printf("Deleted participant %s.\n", participantID)
			return nil
		},
	}

	cmd.AddCommand(list, create, importCmd, assign, del)
	return cmd
}

// readBatch accepts either a bare array of participants or the request
// body itself. "-" reads standard input.
func (a *app) readBatch(path string) (*models.BulkCreateParticipantsRequest, error) {
	var r io.Reader = a.in
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	batch := &models.BulkCreateParticipantsRequest{}
	if strings.HasPrefix(strings.TrimSpace(string(raw)), "[") {
		err = json.Unmarshal(raw, &batch.Participants)
	} else {
		err = json.Unmarshal(raw, batch)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(batch.Participants) == 0 {
		return nil, fmt.Errorf("%s lists no participants", path)
	}
	return batch, nil
}

func newCandidatesCmd(a *app) *cobra.Command {
	var (
		lf      listFlags
		section string
	)
	cmd := &cobra.Command{
		Use:         "candidates",
		Short:       "List participants still available for drafting",
		Args:        cobra.NoArgs,
		Annotations: requires(guardSession),
		RunE: func(cmd *cobra.Command, _ []string) error {
			sectionID, err := sectionScope(section)
			if err != nil {
				return err
			}
			return runList(cmd, a, &lf, listing[*models.Participant]{
				view:        "candidates",
				title:       "Candidates",
				fields:      models.ParticipantFields,
				remember:    []string{models.FilterSection, models.FilterGender, models.FilterSkill},
				defaultSort: "name",
				fetch: func(ctx context.Context, q url.Values) (*models.ListResponse[*models.Participant], error) {
					return a.client.AvailableParticipants(ctx, sectionID, q)
				},
				headers: participantColumns,
				row:     participantRow,
			})
		},
	}
	lf.register(cmd)
	cmd.Flags().StringVar(&section, "section", "", "only candidates of this section id")
	return cmd
}

func (a *app) printCreated(kind string, v any, headers, row []string) error {
	if a.jsonOutput() {
		return a.printJSON(v)
	}
	t := newTable("Created "+kind, headers...)
	t.add(row...)
	t.render(a.out)
	return nil
}
