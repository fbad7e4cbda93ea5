package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucabarzi/ritmo/internal/core/domain"
)

func TestNewHabit(t *testing.T) {
	t.Run("Success: Valid habit with micro variant", func(t *testing.T) {
		h, err := domain.NewHabit("user-1", "  Morning run  ", "Walk around the block", 3, 0.5, []string{"Health", "health", " outdoors "})

		require.NoError(t, err)
		assert.NotEmpty(t, h.ID)
		assert.Equal(t, "Morning run", h.Title)
		assert.Equal(t, 3.0, h.WeightCU)
		assert.True(t, h.HasMicro)
		require.NotNil(t, h.MicroTitle)
		assert.Equal(t, "Walk around the block", *h.MicroTitle)
		assert.Equal(t, 0.5, h.MicroWeightCU)
		assert.Equal(t, []string{"health", "outdoors"}, h.ContextTags)
		assert.True(t, h.IsActive)
		assert.Equal(t, 1, h.Version)
	})

	t.Run("Success: No micro variant", func(t *testing.T) {
		h, err := domain.NewHabit("user-1", "Read", "", 2, 0, nil)

		require.NoError(t, err)
		assert.False(t, h.HasMicro)
		assert.Nil(t, h.MicroTitle)
	})

	t.Run("Fail: Empty title", func(t *testing.T) {
		_, err := domain.NewHabit("user-1", "   ", "", 2, 0, nil)
		assert.ErrorIs(t, err, domain.ErrHabitTitleEmpty)
	})

	t.Run("Fail: Title too long", func(t *testing.T) {
		_, err := domain.NewHabit("user-1", strings.Repeat("x", 101), "", 2, 0, nil)
		assert.ErrorIs(t, err, domain.ErrHabitTitleTooLong)
	})

	t.Run("Fail: Missing user", func(t *testing.T) {
		_, err := domain.NewHabit("", "Read", "", 2, 0, nil)
		assert.ErrorIs(t, err, domain.ErrHabitInvalidUserID)
	})

	t.Run("Fail: Weight out of range", func(t *testing.T) {
		_, err := domain.NewHabit("user-1", "Read", "", 0, 0, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidWeightCU)

		_, err = domain.NewHabit("user-1", "Read", "", 25, 0, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidWeightCU)
	})

	t.Run("Fail: Micro weight must be smaller than the full weight", func(t *testing.T) {
		_, err := domain.NewHabit("user-1", "Read", "Skim one page", 2, 2, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidMicroWeightCU)

		_, err = domain.NewHabit("user-1", "Read", "Skim one page", 2, 0, nil)
		assert.ErrorIs(t, err, domain.ErrInvalidMicroWeightCU)
	})

	t.Run("Fail: Too many context tags", func(t *testing.T) {
		_, err := domain.NewHabit("user-1", "Read", "", 2, 0, []string{"a", "b", "c", "d", "e", "f"})
		assert.ErrorIs(t, err, domain.ErrTooManyContextTags)
	})

	t.Run("Duplicate tags collapse before the limit check", func(t *testing.T) {
		h, err := domain.NewHabit("user-1", "Read", "", 2, 0, []string{"a", "A", "a ", "b", "c", "d", "e"})
		require.NoError(t, err)
		assert.Len(t, h.ContextTags, 5)
	})
}

func TestHabit_Update(t *testing.T) {
	newHabit := func(t *testing.T) *domain.Habit {
		t.Helper()
		h, err := domain.NewHabit("user-1", "Read", "", 2, 0, nil)
		require.NoError(t, err)
		return h
	}

	t.Run("Success: Adds a micro variant", func(t *testing.T) {
		h := newHabit(t)

		err := h.Update("Read more", "One paragraph", 3, 0.5, []string{"evening"})
		require.NoError(t, err)

		assert.Equal(t, "Read more", h.Title)
		assert.True(t, h.HasMicro)
		assert.Equal(t, 0.5, h.MicroWeightCU)
	})

	t.Run("Success: Clearing micro title removes the variant", func(t *testing.T) {
		h, err := domain.NewHabit("user-1", "Read", "One paragraph", 2, 0.5, nil)
		require.NoError(t, err)

		require.NoError(t, h.Update("Read", "", 2, 0, nil))
		assert.False(t, h.HasMicro)
		assert.Nil(t, h.MicroTitle)
		assert.Equal(t, 0.0, h.MicroWeightCU)
	})

	t.Run("Fail: Inactive habits reject updates", func(t *testing.T) {
		h := newHabit(t)
		h.Deactivate()

		err := h.Update("New title", "", 2, 0, nil)
		assert.ErrorIs(t, err, domain.ErrHabitInactive)
	})
}

func TestHabit_ActivationCycle(t *testing.T) {
	h, err := domain.NewHabit("user-1", "Read", "", 2, 0, nil)
	require.NoError(t, err)

	h.Deactivate()
	assert.False(t, h.IsActive)

	assert.ErrorIs(t, h.ChangePosition(3), domain.ErrHabitInactive)

	h.Activate()
	assert.True(t, h.IsActive)
	require.NoError(t, h.ChangePosition(3))
	assert.Equal(t, 3, h.SortOrder)
}
