package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=profile.go -destination=../../mocks/profile_repository.go -package=mocks -mock_names=Repository=MockProfileRepository

// Owner is the identity summary denormalized into read responses.
type Owner struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

type Social struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type Experience struct {
	ID          EntryID    `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

func (e Experience) entryID() EntryID { return e.ID }

type Education struct {
	ID           EntryID    `json:"id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

func (e Education) entryID() EntryID { return e.ID }

// Profile is the aggregate: one per owner, persisted as a unit together with its
// experience and education lists. Both lists are ordered newest first.
type Profile struct {
	OwnerID        uuid.UUID    `json:"owner_id"`
	Owner          *Owner       `json:"owner,omitempty"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Status         string       `json:"status"`
	GithubUsername string       `json:"githubusername,omitempty"`
	Skills         []string     `json:"skills"`
	Social         Social       `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// AddExperience assigns a fresh id to e and inserts it at the head of the list.
// When the position is current, any end date is dropped.
func (p *Profile) AddExperience(e Experience) Experience {
	e.ID = allocateID(p.Experience)
	if e.Current {
		e.To = nil
	}
	p.Experience = prepend(p.Experience, e)
	return e
}

// RemoveExperience drops the entry whose id matches token. It reports whether anything
// was removed; an unknown or malformed token leaves the list untouched.
func (p *Profile) RemoveExperience(token string) bool {
	var removed bool
	p.Experience, removed = removeByID(p.Experience, token)
	return removed
}

func (p *Profile) AddEducation(e Education) Education {
	e.ID = allocateID(p.Education)
	if e.Current {
		e.To = nil
	}
	p.Education = prepend(p.Education, e)
	return e
}

func (p *Profile) RemoveEducation(token string) bool {
	var removed bool
	p.Education, removed = removeByID(p.Education, token)
	return removed
}

// Normalize replaces nil collections with empty ones so the aggregate always
// serializes lists as arrays.
func (p *Profile) Normalize() {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
}

type Repository interface {
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	// Upsert creates the profile for ownerID or merges patch into the existing one in a
	// single statement, and returns the stored aggregate.
	Upsert(ctx context.Context, ownerID uuid.UUID, patch Patch) (*Profile, error)
	// Save overwrites the whole aggregate of an existing profile.
	Save(ctx context.Context, p *Profile) error
	// DeleteByOwner removes the profile if present and returns it, or nil when there was none.
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (*Profile, error)
}
