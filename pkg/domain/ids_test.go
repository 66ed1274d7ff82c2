package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "clubswim/pkg/domain-errors"
)

// TestParseUUID_Invariants validates that ids are valid, non-empty, non-nil UUIDs.
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseParticipantID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseParticipantID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseParticipantID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseParticipantID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, ParticipantID(validUUID), id)
		assert.False(t, id.IsNil())
	})
}

func TestParseID_HostileInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE registrations;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCompetitionID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAllIDTypes_ConsistentBehavior(t *testing.T) {
	validUUID := uuid.New().String()

	t.Run("all accept valid UUID", func(t *testing.T) {
		_, errP := ParseParticipantID(validUUID)
		_, errC := ParseCompetitionID(validUUID)
		_, errR := ParseRegistrationID(validUUID)
		_, errG := ParseGroupID(validUUID)

		require.NoError(t, errP)
		require.NoError(t, errC)
		require.NoError(t, errR)
		require.NoError(t, errG)
	})

	for _, input := range []string{"", "invalid", uuid.Nil.String()} {
		t.Run("all reject: "+input, func(t *testing.T) {
			_, errP := ParseParticipantID(input)
			_, errC := ParseCompetitionID(input)
			_, errR := ParseRegistrationID(input)
			_, errG := ParseGroupID(input)

			require.Error(t, errP)
			require.Error(t, errC)
			require.Error(t, errR)
			require.Error(t, errG)
		})
	}
}

func TestIDs_JSON(t *testing.T) {
	type payload struct {
		Competition CompetitionID `json:"competition_id"`
	}
	id := NewCompetitionID()

	raw, err := json.Marshal(payload{Competition: id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"competition_id":"`+id.String()+`"}`, string(raw))

	var decoded payload
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, id, decoded.Competition)
}
