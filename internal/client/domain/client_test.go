package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	sharedUtils "github.com/davicafu/gymlab/internal/shared/infra/utils"
)

func TestClient_MembershipActive(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		endsAt   *time.Time
		expected bool
	}{
		{name: "sin membresía", endsAt: nil, expected: false},
		{name: "vence en el futuro", endsAt: sharedUtils.Ptr(now.AddDate(0, 1, 0)), expected: true},
		{name: "vence justo ahora", endsAt: sharedUtils.Ptr(now), expected: true},
		{name: "vencida", endsAt: sharedUtils.Ptr(now.AddDate(0, 0, -1)), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{MembershipEndsAt: tt.endsAt}
			assert.Equal(t, tt.expected, c.MembershipActive(now))
		})
	}
}

func TestClient_Validate(t *testing.T) {
	valid := Client{Names: "Ana", LastNames: "Pérez", IDNumber: "0102030405", Gender: GenderFemale}
	assert.NoError(t, valid.Validate())

	noID := valid
	noID.IDNumber = " "
	assert.ErrorIs(t, noID.Validate(), ErrInvalidClient)

	badGender := valid
	badGender.Gender = "X"
	assert.ErrorIs(t, badGender.Validate(), ErrInvalidClient)
}

func TestMembershipActiveCriteria(t *testing.T) {
	now := time.Now()
	assert.Len(t, MembershipActiveCriteria{Active: true, Now: now}.ToConditions(), 1)

	inactive := MembershipActiveCriteria{Active: false, Now: now}.ToConditions()
	assert.Len(t, inactive, 1)
	assert.Len(t, inactive[0].Any, 2)
}

func TestClient_FullName(t *testing.T) {
	c := Client{Names: "Ana", LastNames: "Pérez"}
	assert.Equal(t, "Ana Pérez", c.FullName())
}
