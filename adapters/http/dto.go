package http

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/khoahotran/devconnector-profile/internal/domain/profile"
)

// Request field names match the keys existing web clients already send. Profile responses
// use the same keys so a profile read back can be posted again unchanged.

type UpsertProfileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status" binding:"required"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills" binding:"required"`
	YouTube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	LinkedIn       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

func (req UpsertProfileRequest) ToFields() profile.Fields {
	return profile.Fields{
		Company:        req.Company,
		Website:        req.Website,
		Location:       req.Location,
		Bio:            req.Bio,
		Status:         req.Status,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		YouTube:        req.YouTube,
		Twitter:        req.Twitter,
		Facebook:       req.Facebook,
		LinkedIn:       req.LinkedIn,
		Instagram:      req.Instagram,
	}
}

type AddExperienceRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	From        string `json:"from" binding:"required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

func (req AddExperienceRequest) ToDomain() (profile.Experience, []ValidationErrorItem) {
	from, to, errs := parseRange(req.From, req.To)
	return profile.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	}, errs
}

type AddEducationRequest struct {
	School       string `json:"school" binding:"required"`
	Degree       string `json:"degree" binding:"required"`
	FieldOfStudy string `json:"fieldofstudy" binding:"required"`
	From         string `json:"from" binding:"required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (req AddEducationRequest) ToDomain() (profile.Education, []ValidationErrorItem) {
	from, to, errs := parseRange(req.From, req.To)
	return profile.Education{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	}, errs
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseRange(fromRaw, toRaw string) (time.Time, *time.Time, []ValidationErrorItem) {
	var errs []ValidationErrorItem

	from, ok := parseDate(fromRaw)
	if !ok {
		errs = append(errs, ValidationErrorItem{Param: "from", Msg: "From date is invalid"})
	}

	var to *time.Time
	if strings.TrimSpace(toRaw) != "" {
		t, ok := parseDate(toRaw)
		if !ok {
			errs = append(errs, ValidationErrorItem{Param: "to", Msg: "To date is invalid"})
		} else {
			to = &t
		}
	}
	return from, to, errs
}

type ValidationErrorItem struct {
	Param string `json:"param,omitempty"`
	Msg   string `json:"msg"`
}

type ValidationErrorResponse struct {
	Errors []ValidationErrorItem `json:"errors"`
}

var requiredMessages = map[string]ValidationErrorItem{
	"Status":       {Param: "status", Msg: "Status is required"},
	"Skills":       {Param: "skills", Msg: "Skills is required"},
	"Title":        {Param: "title", Msg: "Title is required"},
	"Company":      {Param: "company", Msg: "Company is required"},
	"From":         {Param: "from", Msg: "From date is required"},
	"School":       {Param: "school", Msg: "School is required"},
	"Degree":       {Param: "degree", Msg: "Degree is required"},
	"FieldOfStudy": {Param: "fieldofstudy", Msg: "Field of study is required"},
}

// toValidationErrors turns a binding failure into one message per offending field.
func toValidationErrors(err error) ValidationErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrorResponse{Errors: []ValidationErrorItem{{Msg: "Invalid request body"}}}
	}

	items := make([]ValidationErrorItem, 0, len(verrs))
	for _, fe := range verrs {
		if item, ok := requiredMessages[fe.Field()]; ok && fe.Tag() == "required" {
			items = append(items, item)
			continue
		}
		items = append(items, ValidationErrorItem{Param: strings.ToLower(fe.Field()), Msg: fe.Error()})
	}
	return ValidationErrorResponse{Errors: items}
}
