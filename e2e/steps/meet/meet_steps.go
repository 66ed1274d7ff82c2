package meet

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string) error
	DELETE(path string) error
	Status() int
	DecodeResponse(v any) error
	Remember(name, id string)
	Lookup(name string) (string, error)
}

// RegisterSteps registers meet setup, result and scoreboard steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &meetSteps{tc: tc}

	// Setup
	ctx.Step(`^a group "([^"]*)"$`, steps.createGroup)
	ctx.Step(`^a (Female|Male) participant "([^"]*)" born "([^"]*)" in group "([^"]*)"$`, steps.createParticipant)
	ctx.Step(`^a competition "([^"]*)" for (Female|Male) (Butterfly|Back|Breast|Freestyle) over (\d+) meters$`, steps.createCompetition)
	ctx.Step(`^"([^"]*)" registers for "([^"]*)"$`, steps.register)

	// Results
	ctx.Step(`^"([^"]*)" swims "([^"]*)" in (\d+) ms for (\d+) FINA points$`, steps.recordResult)
	ctx.Step(`^"([^"]*)" is disqualified in "([^"]*)"$`, steps.disqualify)

	// Deletion
	ctx.Step(`^I delete competition "([^"]*)"$`, steps.deleteCompetition)
	ctx.Step(`^I force delete competition "([^"]*)"$`, steps.forceDeleteCompetition)

	// Assertions
	ctx.Step(`^"([^"]*)" should rank (\d+) in competition "([^"]*)"$`, steps.shouldRankInCompetition)
	ctx.Step(`^"([^"]*)" should have (\d+) FINA points in group "([^"]*)"$`, steps.shouldHavePointsInGroup)
	ctx.Step(`^competition "([^"]*)" should no longer exist$`, steps.competitionShouldNotExist)
}

type meetSteps struct {
	tc TestContext
}

type created struct {
	ID string `json:"id"`
}

func (s *meetSteps) create(name, path string, body any) error {
	if err := s.tc.POST(path, body); err != nil {
		return err
	}
	if s.tc.Status() != 201 {
		return fmt.Errorf("POST %s: expected 201, got %d", path, s.tc.Status())
	}
	var resp created
	if err := s.tc.DecodeResponse(&resp); err != nil {
		return err
	}
	s.tc.Remember(name, resp.ID)
	return nil
}

func (s *meetSteps) createGroup(_ context.Context, name string) error {
	return s.create("group "+name, "/groups", map[string]any{"name": name})
}

func (s *meetSteps) createParticipant(_ context.Context, gender, name, birthday, groupName string) error {
	groupID, err := s.tc.Lookup("group " + groupName)
	if err != nil {
		return err
	}
	return s.create("participant "+name, "/participants", map[string]any{
		"first_name": name,
		"last_name":  "E2E",
		"gender":     gender,
		"birthday":   birthday,
		"group_id":   groupID,
	})
}

func (s *meetSteps) createCompetition(_ context.Context, name, gender, stroke string, distance int) error {
	return s.create("competition "+name, "/competitions", map[string]any{
		"distance":    distance,
		"gender":      gender,
		"stroke":      stroke,
		"target_time": 60000,
	})
}

func (s *meetSteps) register(_ context.Context, participant, competition string) error {
	participantID, err := s.tc.Lookup("participant " + participant)
	if err != nil {
		return err
	}
	competitionID, err := s.tc.Lookup("competition " + competition)
	if err != nil {
		return err
	}
	return s.create(registrationName(participant, competition),
		"/participants/"+participantID+"/registrations",
		map[string]any{"competition_id": competitionID})
}

func (s *meetSteps) recordResult(_ context.Context, participant, competition string, timeMillis, points int) error {
	return s.postResult(participant, competition, false, timeMillis, points)
}

func (s *meetSteps) disqualify(_ context.Context, participant, competition string) error {
	return s.postResult(participant, competition, true, 0, 0)
}

func (s *meetSteps) postResult(participant, competition string, disqualified bool, timeMillis, points int) error {
	registrationID, err := s.tc.Lookup(registrationName(participant, competition))
	if err != nil {
		return err
	}
	return s.tc.POST("/results", map[string]any{
		"registration_id": registrationID,
		"disqualified":    disqualified,
		"time_millis":     timeMillis,
		"fina_points":     points,
	})
}

func (s *meetSteps) deleteCompetition(_ context.Context, name string) error {
	competitionID, err := s.tc.Lookup("competition " + name)
	if err != nil {
		return err
	}
	return s.tc.DELETE("/competitions/" + competitionID)
}

func (s *meetSteps) forceDeleteCompetition(_ context.Context, name string) error {
	competitionID, err := s.tc.Lookup("competition " + name)
	if err != nil {
		return err
	}
	return s.tc.DELETE("/competitions/" + competitionID + "?force_delete=true")
}

func (s *meetSteps) shouldRankInCompetition(_ context.Context, participant string, rank int, competition string) error {
	participantID, err := s.tc.Lookup("participant " + participant)
	if err != nil {
		return err
	}
	competitionID, err := s.tc.Lookup("competition " + competition)
	if err != nil {
		return err
	}
	if err := s.tc.GET("/competitions/" + competitionID + "/scoreboard"); err != nil {
		return err
	}
	var board struct {
		Scores []struct {
			Participant struct {
				ID string `json:"id"`
			} `json:"participant"`
			Rank int `json:"rank"`
		} `json:"scores"`
	}
	if err := s.tc.DecodeResponse(&board); err != nil {
		return err
	}
	for _, score := range board.Scores {
		if score.Participant.ID == participantID {
			if score.Rank != rank {
				return fmt.Errorf("%s ranks %d in %s, expected %d", participant, score.Rank, competition, rank)
			}
			return nil
		}
	}
	return fmt.Errorf("%s has no score in %s", participant, competition)
}

func (s *meetSteps) shouldHavePointsInGroup(_ context.Context, participant string, points int, groupName string) error {
	participantID, err := s.tc.Lookup("participant " + participant)
	if err != nil {
		return err
	}
	groupID, err := s.tc.Lookup("group " + groupName)
	if err != nil {
		return err
	}
	if err := s.tc.GET("/groups/" + groupID + "/scoreboard"); err != nil {
		return err
	}
	var board struct {
		Scores []struct {
			Participant struct {
				ID string `json:"id"`
			} `json:"participant"`
			FinaPoints int `json:"fina_points"`
		} `json:"scores"`
	}
	if err := s.tc.DecodeResponse(&board); err != nil {
		return err
	}
	for _, score := range board.Scores {
		if score.Participant.ID == participantID {
			if score.FinaPoints != points {
				return fmt.Errorf("%s has %d points in %s, expected %d", participant, score.FinaPoints, groupName, points)
			}
			return nil
		}
	}
	return fmt.Errorf("%s is missing from the %s scoreboard", participant, groupName)
}

func (s *meetSteps) competitionShouldNotExist(_ context.Context, name string) error {
	competitionID, err := s.tc.Lookup("competition " + name)
	if err != nil {
		return err
	}
	if err := s.tc.GET("/competitions/" + competitionID); err != nil {
		return err
	}
	if s.tc.Status() != 404 {
		return fmt.Errorf("expected competition %s to be gone, got status %d", name, s.tc.Status())
	}
	return nil
}

func registrationName(participant, competition string) string {
	return "registration " + participant + "/" + competition
}
