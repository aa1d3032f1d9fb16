package profile

import "strings"

// Fields is the validated, typed input of a profile upsert. Empty strings mean "not given".
type Fields struct {
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GithubUsername string
	Skills         string
	YouTube        string
	Twitter        string
	Facebook       string
	LinkedIn       string
	Instagram      string
}

type SocialPatch struct {
	YouTube   *string
	Twitter   *string
	Facebook  *string
	LinkedIn  *string
	Instagram *string
}

// Patch is a sparse profile update. A nil field is left alone; a non-nil field replaces
// the stored value entirely.
type Patch struct {
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         *[]string
	Social         SocialPatch
}

// Patch keeps only the non-empty fields. Skills are split on commas.
func (f Fields) Patch() Patch {
	p := Patch{
		Company:        optional(f.Company),
		Website:        optional(f.Website),
		Location:       optional(f.Location),
		Bio:            optional(f.Bio),
		Status:         optional(f.Status),
		GithubUsername: optional(f.GithubUsername),
		Social: SocialPatch{
			YouTube:   optional(f.YouTube),
			Twitter:   optional(f.Twitter),
			Facebook:  optional(f.Facebook),
			LinkedIn:  optional(f.LinkedIn),
			Instagram: optional(f.Instagram),
		},
	}
	if f.Skills != "" {
		skills := ParseSkills(f.Skills)
		p.Skills = &skills
	}
	return p
}

// ParseSkills splits a comma-delimited list and trims each segment. Order and
// duplicates are kept, and so are empty segments.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	for i, s := range parts {
		parts[i] = strings.TrimSpace(s)
	}
	return parts
}

func (s SocialPatch) IsEmpty() bool {
	return s.YouTube == nil && s.Twitter == nil && s.Facebook == nil && s.LinkedIn == nil && s.Instagram == nil
}

func (p Patch) IsEmpty() bool {
	return p.Company == nil && p.Website == nil && p.Location == nil && p.Bio == nil &&
		p.Status == nil && p.GithubUsername == nil && p.Skills == nil && p.Social.IsEmpty()
}

// Apply merges the patch into target. Social links merge key by key.
func (p Patch) Apply(target *Profile) {
	set(&target.Company, p.Company)
	set(&target.Website, p.Website)
	set(&target.Location, p.Location)
	set(&target.Bio, p.Bio)
	set(&target.Status, p.Status)
	set(&target.GithubUsername, p.GithubUsername)
	if p.Skills != nil {
		target.Skills = append([]string(nil), (*p.Skills)...)
	}
	set(&target.Social.YouTube, p.Social.YouTube)
	set(&target.Social.Twitter, p.Social.Twitter)
	set(&target.Social.Facebook, p.Social.Facebook)
	set(&target.Social.LinkedIn, p.Social.LinkedIn)
	set(&target.Social.Instagram, p.Social.Instagram)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
