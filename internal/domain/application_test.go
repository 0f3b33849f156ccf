package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int32p(v int32) *int32 { return &v }

func TestApplication_ValidatePreferences(t *testing.T) {
	t.Run("first preference only", func(t *testing.T) {
		a := Application{FirstPreferenceSchoolID: 1}
		assert.NoError(t, a.ValidatePreferences())
	})

	t.Run("all three filled", func(t *testing.T) {
		a := Application{FirstPreferenceSchoolID: 1, SecondPreferenceSchoolID: int32p(2), ThirdPreferenceSchoolID: int32p(3)}
		assert.NoError(t, a.ValidatePreferences())
	})

	t.Run("missing first preference", func(t *testing.T) {
		a := Application{}
		assert.ErrorIs(t, a.ValidatePreferences(), ErrValidation)
	})

	t.Run("gap between first and third", func(t *testing.T) {
		a := Application{FirstPreferenceSchoolID: 1, ThirdPreferenceSchoolID: int32p(3)}
		assert.ErrorIs(t, a.ValidatePreferences(), ErrValidation)
	})

	t.Run("duplicate school", func(t *testing.T) {
		a := Application{FirstPreferenceSchoolID: 1, SecondPreferenceSchoolID: int32p(1)}
		assert.ErrorIs(t, a.ValidatePreferences(), ErrValidation)

		b := Application{FirstPreferenceSchoolID: 1, SecondPreferenceSchoolID: int32p(2), ThirdPreferenceSchoolID: int32p(2)}
		assert.ErrorIs(t, b.ValidatePreferences(), ErrValidation)
	})
}

func TestApplication_PreferenceOrder(t *testing.T) {
	a := Application{FirstPreferenceSchoolID: 1, SecondPreferenceSchoolID: int32p(2), ThirdPreferenceSchoolID: int32p(3)}

	assert.Equal(t, "1st", a.PreferenceOrder(1))
	assert.Equal(t, "2nd", a.PreferenceOrder(2))
	assert.Equal(t, "3rd", a.PreferenceOrder(3))
	assert.Equal(t, "", a.PreferenceOrder(9))
}

func TestApplication_PreferenceIDs(t *testing.T) {
	a := Application{FirstPreferenceSchoolID: 1, ThirdPreferenceSchoolID: int32p(3)}
	// The third slot is returned even when the second is empty; validation
	// rejects such gaps before anything consumes the list.
	assert.Equal(t, []int32{1, 3}, a.PreferenceIDs())

	b := Application{FirstPreferenceSchoolID: 1, SecondPreferenceSchoolID: int32p(2)}
	assert.Equal(t, []int32{1, 2}, b.PreferenceIDs())
}
