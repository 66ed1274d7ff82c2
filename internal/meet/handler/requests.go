package handler

import (
	"strings"

	"clubswim/internal/meet/models"
	"clubswim/internal/meet/service"
	id "clubswim/pkg/domain"
	dErrors "clubswim/pkg/domain-errors"
)

const maxNameLength = 100

// AddParticipantRequest is the body of POST /participants.
type AddParticipantRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender"`
	Birthday  string `json:"birthday"`
	GroupID   string `json:"group_id"`

	parsed service.NewParticipant
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *AddParticipantRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	if r.FirstName == "" || r.LastName == "" {
		return dErrors.New(dErrors.CodeValidation, "first_name and last_name are required")
	}
	if len(r.FirstName) > maxNameLength || len(r.LastName) > maxNameLength {
		return dErrors.New(dErrors.CodeValidation, "names must be at most 100 characters")
	}

	gender, err := models.ParseGender(r.Gender)
	if err != nil {
		return err
	}
	birthday, err := models.ParseDate(strings.TrimSpace(r.Birthday))
	if err != nil {
		return err
	}
	groupID, err := id.ParseGroupID(r.GroupID)
	if err != nil {
		return err
	}

	r.parsed = service.NewParticipant{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Gender:    gender,
		Birthday:  birthday,
		GroupID:   groupID,
	}
	return nil
}

func (r *AddParticipantRequest) Parsed() service.NewParticipant {
	return r.parsed
}

// AddCompetitionRequest is the body of POST /competitions. The distance rule
// is enforced by the service, not here.
type AddCompetitionRequest struct {
	Distance   uint32 `json:"distance"`
	Gender     string `json:"gender"`
	Stroke     string `json:"stroke"`
	TargetTime uint32 `json:"target_time"`

	parsed service.NewCompetition
}

func (r *AddCompetitionRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	gender, err := models.ParseGender(r.Gender)
	if err != nil {
		return err
	}
	stroke, err := models.ParseStroke(r.Stroke)
	if err != nil {
		return err
	}
	r.parsed = service.NewCompetition{
		Distance:   r.Distance,
		Gender:     gender,
		Stroke:     stroke,
		TargetTime: r.TargetTime,
	}
	return nil
}

func (r *AddCompetitionRequest) Parsed() service.NewCompetition {
	return r.parsed
}

// RegisterRequest is the body of POST /participants/{id}/registrations.
type RegisterRequest struct {
	CompetitionID string `json:"competition_id"`

	competitionID id.CompetitionID
}

func (r *RegisterRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	competitionID, err := id.ParseCompetitionID(r.CompetitionID)
	if err != nil {
		return err
	}
	r.competitionID = competitionID
	return nil
}

func (r *RegisterRequest) ParsedCompetitionID() id.CompetitionID {
	return r.competitionID
}

// AddResultRequest is the body of POST /results.
type AddResultRequest struct {
	RegistrationID string `json:"registration_id"`
	Disqualified   bool   `json:"disqualified"`
	TimeMillis     uint32 `json:"time_millis"`
	FinaPoints     uint32 `json:"fina_points"`

	registrationID id.RegistrationID
}

func (r *AddResultRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	registrationID, err := id.ParseRegistrationID(r.RegistrationID)
	if err != nil {
		return err
	}
	r.registrationID = registrationID
	return nil
}

func (r *AddResultRequest) ParsedRegistrationID() id.RegistrationID {
	return r.registrationID
}

func (r *AddResultRequest) Result() models.RegistrationResult {
	return models.RegistrationResult{
		Disqualified: r.Disqualified,
		TimeMillis:   r.TimeMillis,
		FinaPoints:   r.FinaPoints,
	}
}

// AddGroupRequest is the body of POST /groups.
type AddGroupRequest struct {
	Name string `json:"name"`
}

func (r *AddGroupRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if len(r.Name) > maxNameLength {
		return dErrors.New(dErrors.CodeValidation, "name must be at most 100 characters")
	}
	return nil
}
