package models

import (
	dErrors "clubswim/pkg/domain-errors"
)

// Gender of a participant or of the field a competition is held for.
type Gender string

const (
	GenderFemale Gender = "Female"
	GenderMale   Gender = "Male"
)

// ParseGender accepts the canonical spelling only.
func ParseGender(s string) (Gender, error) {
	switch g := Gender(s); g {
	case GenderFemale, GenderMale:
		return g, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "gender must be Female or Male")
}

// Stroke swum in a competition.
type Stroke string

const (
	StrokeButterfly Stroke = "Butterfly"
	StrokeBack      Stroke = "Back"
	StrokeBreast    Stroke = "Breast"
	StrokeFreestyle Stroke = "Freestyle"
)

// ParseStroke accepts the canonical spelling only.
func ParseStroke(s string) (Stroke, error) {
	switch st := Stroke(s); st {
	case StrokeButterfly, StrokeBack, StrokeBreast, StrokeFreestyle:
		return st, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "stroke must be one of Butterfly, Back, Breast, Freestyle")
}
