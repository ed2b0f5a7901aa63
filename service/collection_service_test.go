package service

import (
	"context"
	"errors"
	"testing"

	"gacha/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionService_ListMine_Scoping(t *testing.T) {
	ctx := context.Background()
	rolls := []*models.Roll{{ID: 1, OwnerID: "111"}, {ID: 2, OwnerID: "111"}}

	tests := []struct {
		name          string
		scopeByGuild  bool
		expectedGuild string
	}{
		{"unscoped ignores guild", false, ""},
		{"scoped passes guild", true, "g1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newLedgerMocks()
			svc := NewCollectionService(m.factory, tt.scopeByGuild)

			m.rolls.On("ListByOwner", ctx, "111", tt.expectedGuild).Return(rolls, nil)

			result, err := svc.ListMine(ctx, "111", "g1")

			require.NoError(t, err)
			assert.Equal(t, rolls, result)
			m.rolls.AssertExpectations(t)
		})
	}
}

func TestCollectionService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("trims query", func(t *testing.T) {
		m := newLedgerMocks()
		svc := NewCollectionService(m.factory, false)

		expected := []*models.Roll{{ID: 3, Name: "BRAVE OTTER"}}
		m.rolls.On("Search", ctx, "otter").Return(expected, nil)

		result, err := svc.Search(ctx, "  otter ")

		require.NoError(t, err)
		assert.Equal(t, expected, result)
		m.rolls.AssertExpectations(t)
	})

	t.Run("blank query is invalid", func(t *testing.T) {
		m := newLedgerMocks()
		svc := NewCollectionService(m.factory, false)

		_, err := svc.Search(ctx, "   ")

		assert.True(t, errors.Is(err, ErrInvalidQuery))
		m.factory.AssertNotCalled(t, "Create")
	})

	t.Run("storage failure is not an empty result", func(t *testing.T) {
		m := newLedgerMocks()
		svc := NewCollectionService(m.factory, false)

		m.rolls.On("Search", ctx, "x").Return(nil, NewStorageError("search rolls", errors.New("boom")))

		result, err := svc.Search(ctx, "x")

		assert.Nil(t, result)
		assert.True(t, errors.Is(err, ErrStorage))
	})
}

func TestCollectionService_GetRoll_Missing(t *testing.T) {
	ctx := context.Background()
	m := newLedgerMocks()
	svc := NewCollectionService(m.factory, false)

	m.rolls.On("GetByID", ctx, int64(99)).Return(nil, nil)

	roll, err := svc.GetRoll(ctx, 99)

	require.NoError(t, err)
	assert.Nil(t, roll)
}

func TestStorageError_Wrapping(t *testing.T) {
	base := errors.New("connection refused")
	err := NewStorageError("get balance", base)

	assert.True(t, errors.Is(err, ErrStorage))
	assert.True(t, errors.Is(err, base))
	assert.Same(t, err, NewStorageError("outer", err))
	assert.Nil(t, NewStorageError("noop", nil))
}
