package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "clubswim/pkg/domain-errors"
)

type ModelsSuite struct {
	suite.Suite
	now time.Time
}

func TestModelsSuite(t *testing.T) {
	suite.Run(t, new(ModelsSuite))
}

func (s *ModelsSuite) SetupTest() {
	s.now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

func (s *ModelsSuite) TestDerive() {
	s.Run("age counts full years only", func() {
		p := Participant{ShortID: 7, Birthday: NewDate(2010, time.June, 16)}.Derive(s.now)
		s.Equal(uint32(13), p.Age)

		p = Participant{Birthday: NewDate(2010, time.June, 15)}.Derive(s.now)
		s.Equal(uint32(14), p.Age)
	})

	s.Run("future birthday yields zero", func() {
		p := Participant{Birthday: NewDate(2030, time.January, 1)}.Derive(s.now)
		s.Equal(uint32(0), p.Age)
	})

	s.Run("short code is zero padded", func() {
		s.Equal("0007", Participant{ShortID: 7}.Derive(s.now).ShortCode)
		s.Equal("12345", Participant{ShortID: 12345}.Derive(s.now).ShortCode)
	})
}

func (s *ModelsSuite) TestEnums() {
	s.Run("parses canonical spellings", func() {
		g, err := ParseGender("Female")
		s.Require().NoError(err)
		s.Equal(GenderFemale, g)

		st, err := ParseStroke("Breast")
		s.Require().NoError(err)
		s.Equal(StrokeBreast, st)
	})

	s.Run("rejects unknown values as validation errors", func() {
		_, err := ParseGender("female")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		_, err = ParseStroke("Crawl")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *ModelsSuite) TestDateJSON() {
	var payload struct {
		Birthday Date `json:"birthday"`
	}
	s.Require().NoError(json.Unmarshal([]byte(`{"birthday":"2011-02-03"}`), &payload))
	s.Equal(NewDate(2011, time.February, 3), payload.Birthday)

	raw, err := json.Marshal(payload)
	s.Require().NoError(err)
	s.JSONEq(`{"birthday":"2011-02-03"}`, string(raw))

	s.Error(json.Unmarshal([]byte(`{"birthday":"03.02.2011"}`), &payload))
}

func (s *ModelsSuite) TestResultsMissing() {
	d := ParticipantDetails{Registrations: []ParticipantRegistration{
		{Result: &RegistrationResult{TimeMillis: 30000}},
	}}
	s.False(d.ResultsMissing())

	d.Registrations = append(d.Registrations, ParticipantRegistration{})
	s.True(d.ResultsMissing())
}
