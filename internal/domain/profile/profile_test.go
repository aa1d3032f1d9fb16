package profile

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkills(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"a, b ,c", []string{"a", "b", "c"}},
		{"go", []string{"go"}},
		{"go,go", []string{"go", "go"}},
		{"go,,rust", []string{"go", "", "rust"}},
		{" , ", []string{"", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSkills(tt.raw))
		})
	}
}

func TestFieldsPatch_OnlyPresentKeys(t *testing.T) {
	p := Fields{Status: "Developer", Skills: "go, sql", Twitter: "@me"}.Patch()

	require.NotNil(t, p.Status)
	assert.Equal(t, "Developer", *p.Status)
	require.NotNil(t, p.Skills)
	assert.Equal(t, []string{"go", "sql"}, *p.Skills)
	require.NotNil(t, p.Social.Twitter)
	assert.Equal(t, "@me", *p.Social.Twitter)

	assert.Nil(t, p.Company)
	assert.Nil(t, p.Website)
	assert.Nil(t, p.Bio)
	assert.Nil(t, p.GithubUsername)
	assert.Nil(t, p.Social.YouTube)
	assert.Nil(t, p.Social.Facebook)
	assert.False(t, p.IsEmpty())
}

func TestFieldsPatch_Empty(t *testing.T) {
	assert.True(t, Fields{}.Patch().IsEmpty())
}

func TestPatchApply_DisjointUpsertsYieldUnion(t *testing.T) {
	target := &Profile{}

	Fields{Status: "Developer", Company: "Acme", Skills: "go"}.Patch().Apply(target)
	Fields{Bio: "hello", Location: "Hanoi", YouTube: "yt"}.Patch().Apply(target)

	assert.Equal(t, "Developer", target.Status)
	assert.Equal(t, "Acme", target.Company)
	assert.Equal(t, []string{"go"}, target.Skills)
	assert.Equal(t, "hello", target.Bio)
	assert.Equal(t, "Hanoi", target.Location)
	assert.Equal(t, "yt", target.Social.YouTube)
}

func TestPatchApply_FieldsReplaceWholesale(t *testing.T) {
	target := &Profile{Skills: []string{"a", "b", "c"}, Social: Social{Twitter: "old", Facebook: "fb"}}

	Fields{Skills: "x", Twitter: "new"}.Patch().Apply(target)

	assert.Equal(t, []string{"x"}, target.Skills)
	assert.Equal(t, "new", target.Social.Twitter)
	assert.Equal(t, "fb", target.Social.Facebook, "social keys not in the patch are kept")
}

func TestAddExperience_NewestFirst(t *testing.T) {
	p := &Profile{}
	e1 := p.AddExperience(Experience{Title: "E1", Company: "A", From: time.Now()})
	e2 := p.AddExperience(Experience{Title: "E2", Company: "B", From: time.Now()})

	require.Len(t, p.Experience, 2)
	assert.Equal(t, e2.ID, p.Experience[0].ID)
	assert.Equal(t, e1.ID, p.Experience[1].ID)
	assert.NotEqual(t, e1.ID, e2.ID)
}

func TestAddEducation_NewestFirst(t *testing.T) {
	p := &Profile{}
	first := p.AddEducation(Education{School: "S1"})
	second := p.AddEducation(Education{School: "S2"})

	require.Len(t, p.Education, 2)
	assert.Equal(t, "S2", p.Education[0].School)
	assert.Equal(t, second.ID, p.Education[0].ID)
	assert.Equal(t, first.ID, p.Education[1].ID)
}

func TestAddEntry_CurrentClearsEndDate(t *testing.T) {
	p := &Profile{}
	to := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	exp := p.AddExperience(Experience{Title: "Dev", Company: "Acme", Current: true, To: &to})
	edu := p.AddEducation(Education{School: "Uni", Current: true, To: &to})
	past := p.AddExperience(Experience{Title: "Intern", Company: "Acme", To: &to})

	assert.Nil(t, exp.To)
	assert.Nil(t, edu.To)
	require.NotNil(t, past.To)
	assert.Equal(t, to, *past.To)
}

func TestRemoveExperience(t *testing.T) {
	p := &Profile{}
	keep := p.AddExperience(Experience{Title: "keep"})
	drop := p.AddExperience(Experience{Title: "drop"})

	removed := p.RemoveExperience(drop.ID.String())

	assert.True(t, removed)
	require.Len(t, p.Experience, 1)
	assert.Equal(t, keep.ID, p.Experience[0].ID)
	for _, e := range p.Experience {
		assert.NotEqual(t, drop.ID, e.ID)
	}
}

func TestRemoveEducation_UnknownIDIsNoop(t *testing.T) {
	p := &Profile{}
	p.AddEducation(Education{School: "a"})
	p.AddEducation(Education{School: "b"})
	before := append([]Education(nil), p.Education...)

	assert.False(t, p.RemoveEducation(uuid.NewString()))
	assert.False(t, p.RemoveEducation("5"))
	assert.Equal(t, before, p.Education)
}

func TestEntryID_CanonicalEquality(t *testing.T) {
	id := NewEntryID()

	assert.True(t, id.Matches(id.String()))
	assert.True(t, id.Matches(strings.ToUpper(id.String())))
	assert.True(t, id.Matches("urn:uuid:"+id.String()))
	assert.False(t, id.Matches("not-an-id"))
	assert.False(t, id.Matches(NewEntryID().String()))
}

func TestEntryID_JSON(t *testing.T) {
	e := Experience{ID: NewEntryID(), Title: "Dev", Company: "Acme"}

	raw, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"id":"`+e.ID.String()+`"`)

	var back Experience
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, e.ID, back.ID)
}

func TestNormalize(t *testing.T) {
	p := &Profile{}
	p.Normalize()

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"skills":[]`)
	assert.Contains(t, string(raw), `"experience":[]`)
	assert.Contains(t, string(raw), `"education":[]`)
}
