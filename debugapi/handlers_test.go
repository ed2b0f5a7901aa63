package debugapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gacha/models"
	"gacha/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter() (http.Handler, *service.MockLedgerService, *service.MockCollectionService) {
	ledger := new(service.MockLedgerService)
	collection := new(service.MockCollectionService)
	return NewRouter(ledger, collection), ledger, collection
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	router, _, _ := newTestRouter()

	rec := get(t, router, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetBalance(t *testing.T) {
	router, ledger, _ := newTestRouter()
	ledger.On("GetBalance", mock.Anything, "alice").Return(int64(400), nil)

	rec := get(t, router, "/debug/balances/alice")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"user_id":"alice","balance":400}`, rec.Body.String())
	ledger.AssertExpectations(t)
}

func TestGetBalance_StorageError(t *testing.T) {
	router, ledger, _ := newTestRouter()
	ledger.On("GetBalance", mock.Anything, "alice").
		Return(int64(0), service.NewStorageError("get balance", errors.New("connection refused")))

	rec := get(t, router, "/debug/balances/alice")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestGetHistory(t *testing.T) {
	t.Run("default limit", func(t *testing.T) {
		router, ledger, _ := newTestRouter()
		ledger.On("GetHistory", mock.Anything, "alice", service.DefaultHistoryLimit).Return([]*models.BalanceHistory{
			{ID: 2, UserID: "alice", BalanceBefore: 500, BalanceAfter: 400, ChangeAmount: -100, TransactionType: models.TransactionTypeRoll},
			{ID: 1, UserID: "alice", BalanceBefore: 0, BalanceAfter: 500, ChangeAmount: 500, TransactionType: models.TransactionTypeInitial},
		}, nil)

		rec := get(t, router, "/debug/balances/alice/history")

		require.Equal(t, http.StatusOK, rec.Code)
		var entries []historyEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, "roll", entries[0].Type)
		assert.Equal(t, int64(-100), entries[0].ChangeAmount)
	})

	t.Run("explicit limit", func(t *testing.T) {
		router, ledger, _ := newTestRouter()
		ledger.On("GetHistory", mock.Anything, "alice", 5).Return([]*models.BalanceHistory{}, nil)

		rec := get(t, router, "/debug/balances/alice/history?limit=5")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
		ledger.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		router, ledger, _ := newTestRouter()

		rec := get(t, router, "/debug/balances/alice/history?limit=-3")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		ledger.AssertNotCalled(t, "GetHistory", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListRolls(t *testing.T) {
	router, _, collection := newTestRouter()
	collection.On("ListMine", mock.Anything, "alice", "").Return([]*models.Roll{
		{ID: 7, OwnerID: "alice", Rarity: 5, Name: "BRAVE OTTER", Element: models.ElementWater, Attack: 10, Defense: 20, Speed: 30},
	}, nil)

	rec := get(t, router, "/debug/users/alice/rolls")

	require.Equal(t, http.StatusOK, rec.Code)
	var rolls []rollResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rolls))
	require.Len(t, rolls, 1)
	assert.Equal(t, int64(7), rolls[0].ID)
	assert.Equal(t, "Water", rolls[0].Element)
}

func TestSearchRolls(t *testing.T) {
	t.Run("blank query", func(t *testing.T) {
		router, _, collection := newTestRouter()
		collection.On("Search", mock.Anything, "").Return(nil, service.ErrInvalidQuery)

		rec := get(t, router, "/debug/rolls")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no matches", func(t *testing.T) {
		router, _, collection := newTestRouter()
		collection.On("Search", mock.Anything, "dragon").Return(nil, nil)

		rec := get(t, router, "/debug/rolls?q=dragon")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestGetRoll(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router, _, collection := newTestRouter()
		collection.On("GetRoll", mock.Anything, int64(3)).
			Return(&models.Roll{ID: 3, OwnerID: "bob", Rarity: 10, Element: models.ElementFire}, nil)

		rec := get(t, router, "/debug/rolls/3")

		require.Equal(t, http.StatusOK, rec.Code)
		var roll rollResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roll))
		assert.Equal(t, 10, roll.Rarity)
		assert.Equal(t, "bob", roll.OwnerID)
	})

	t.Run("missing", func(t *testing.T) {
		router, _, collection := newTestRouter()
		collection.On("GetRoll", mock.Anything, int64(99)).Return(nil, nil)

		rec := get(t, router, "/debug/rolls/99")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		router, _, collection := newTestRouter()

		rec := get(t, router, "/debug/rolls/abc")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		collection.AssertNotCalled(t, "GetRoll", mock.Anything, mock.Anything)
	})
}
