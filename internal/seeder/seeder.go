package seeder

import (
	"context"
	"fmt"
	"log/slog"

	authmodels "festdraft/internal/auth/models"
	"festdraft/internal/roster/models"
	id "festdraft/pkg/domain"
	"festdraft/pkg/listquery"
	"festdraft/pkg/platform/httputil"
)

// Accounts creates the demo logins.
type Accounts interface {
	ListUsers(ctx context.Context) (*authmodels.UsersResult, error)
	CreateUser(ctx context.Context, req *authmodels.CreateUserRequest) (*authmodels.UserProfile, error)
}

// Roster creates the demo teams, sections and participants.
type Roster interface {
	ListTeams(ctx context.Context, spec listquery.Spec) (*models.ListResponse[*models.Team], error)
	CreateTeam(ctx context.Context, req *models.CreateTeamRequest) (*models.Team, error)
	CreateSection(ctx context.Context, req *models.SectionRequest) (*models.Section, error)
	CreateParticipant(ctx context.Context, req *models.CreateParticipantRequest) (*models.Participant, error)
	UpdateParticipant(ctx context.Context, participantID id.ParticipantID, req *models.UpdateParticipantRequest) (*models.Participant, error)
}

// Seeder populates an empty deployment with demo data
type Seeder struct {
	accounts Accounts
	roster   Roster
	logger   *slog.Logger
}

func New(accounts Accounts, roster Roster, logger *slog.Logger) *Seeder {
	return &Seeder{accounts: accounts, roster: roster, logger: logger}
}

// Summary counts what SeedAll created.
type Summary struct {
	Teams        int
	Sections     int
	Participants int
	Users        int
}

var demoTeams = []models.CreateTeamRequest{
	{Name: "Axis", Manager: "Midhlaj PM", Colour: "Green"},
	{Name: "Equinox", Manager: "Sinan KT", Colour: "Red"},
	{Name: "Nexus", Manager: "Naseeh", Colour: "Blue"},
	{Name: "Vertex", Manager: "Rizwan", Colour: "Yellow"},
}

var demoSections = []string{"Secondary", "Sen. Secondary", "Degree"}

type demoParticipant struct {
	name       string
	skill      string
	experience string
	section    string
	team       string
}

var demoParticipants = []demoParticipant{
	{"Muhammed O", "JavaScript", "5 years", "Secondary", ""},
	{"Jane Smith", "Python", "3 years", "Secondary", ""},
	{"Mike Johnson", "Java", "4 years", "Sen. Secondary", "Axis"},
	{"Emily Davis", "C#", "2 years", "Sen. Secondary", ""},
	{"David Wilson", "C++", "6 years", "Secondary", ""},
	{"Sarah Brown", "PHP", "3 years", "Secondary", ""},
	{"Chris Lee", "Ruby", "4 years", "Sen. Secondary", ""},
	{"Anna Garcia", "Go", "5 years", "Degree", "Equinox"},
	{"James Martinez", "Rust", "2 years", "Degree", ""},
	{"Laura Rodriguez", "Swift", "3 years", "Degree", "Nexus"},
	{"Daniel Hernandez", "Kotlin", "4 years", "Degree", ""},
	{"Sophia Lopez", "TypeScript", "5 years", "Sen. Secondary", ""},
}

const (
	adminEmail      = "admin@example.com"
	adminPassword   = "admin123"
	managerPassword = "user123"
)

// SeedAll creates the demo roster and accounts. It is a no-op for any part
// that already holds data, so restarting against a database is safe.
func (s *Seeder) SeedAll(ctx context.Context) (*Summary, error) {
	s.logger.InfoContext(ctx, "seeding demo data")
	summary := &Summary{}

	teams, err := s.seedRoster(ctx, summary)
	if err != nil {
		return nil, fmt.Errorf("failed to seed roster: %w", err)
	}
	if err := s.seedUsers(ctx, teams, summary); err != nil {
		return nil, fmt.Errorf("failed to seed users: %w", err)
	}

	s.logger.InfoContext(ctx, "demo data seeded",
		"teams", summary.Teams,
		"sections", summary.Sections,
		"participants", summary.Participants,
		"users", summary.Users,
	)
	return summary, nil
}

// seedRoster returns team ids by name, whether created now or earlier.
func (s *Seeder) seedRoster(ctx context.Context, summary *Summary) (map[string]id.TeamID, error) {
	existing, err := s.roster.ListTeams(ctx, listquery.Spec{PageSize: listquery.MaxPageSize})
	if err != nil {
		return nil, err
	}
	teams := make(map[string]id.TeamID, len(demoTeams))
	if existing.Total > 0 {
		for _, t := range existing.Items {
			teams[t.Name] = t.ID
		}
		return teams, nil
	}

	for _, req := range demoTeams {
		team, err := s.roster.CreateTeam(ctx, &req)
		if err != nil {
			return nil, err
		}
		teams[team.Name] = team.ID
		summary.Teams++
	}

	sections := make(map[string]id.SectionID, len(demoSections))
	for _, name := range demoSections {
		section, err := s.roster.CreateSection(ctx, &models.SectionRequest{Name: name})
		if err != nil {
			return nil, err
		}
		sections[name] = section.ID
		summary.Sections++
	}

	for _, p := range demoParticipants {
		req := &models.CreateParticipantRequest{
			Name:       p.name,
			Skill:      p.skill,
			Experience: p.experience,
			SectionID:  sections[p.section].String(),
		}
		if err := httputil.PrepareRequest(req); err != nil {
			return nil, err
		}
		created, err := s.roster.CreateParticipant(ctx, req)
		if err != nil {
			return nil, err
		}
		summary.Participants++
		if p.team == "" {
			continue
		}
		teamID := teams[p.team].String()
		assign := &models.UpdateParticipantRequest{TeamID: &teamID}
		if err := httputil.PrepareRequest(assign); err != nil {
			return nil, err
		}
		if _, err := s.roster.UpdateParticipant(ctx, created.ID, assign); err != nil {
			return nil, err
		}
	}
	return teams, nil
}

func (s *Seeder) seedUsers(ctx context.Context, teams map[string]id.TeamID, summary *Summary) error {
	existing, err := s.accounts.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(existing.Users) > 0 {
		return nil
	}

	requests := []*authmodels.CreateUserRequest{{
		Email:       adminEmail,
		DisplayName: "Admin",
		Password:    adminPassword,
		Role:        id.RoleAdmin.String(),
	}}
	for i, t := range demoTeams {
		teamID, ok := teams[t.Name]
		if !ok {
			continue
		}
		requests = append(requests, &authmodels.CreateUserRequest{
			Email:       fmt.Sprintf("team%d@example.com", i+1),
			DisplayName: t.Name + " Lead",
			Password:    managerPassword,
			Role:        id.RoleTeamManager.String(),
			TeamID:      teamID.String(),
		})
	}

	for _, req := range requests {
		if err := httputil.PrepareRequest(req); err != nil {
			return err
		}
		if _, err := s.accounts.CreateUser(ctx, req); err != nil {
			return err
		}
		summary.Users++
	}
	return nil
}
