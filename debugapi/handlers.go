package debugapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"gacha/models"
	"gacha/service"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

type handler struct {
	ledger     service.LedgerService
	collection service.CollectionService
}

func newHandler(ledger service.LedgerService, collection service.CollectionService) *handler {
	return &handler{ledger: ledger, collection: collection}
}

type balanceResponse struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

type historyEntry struct {
	ID            int64          `json:"id"`
	BalanceBefore int64          `json:"balance_before"`
	BalanceAfter  int64          `json:"balance_after"`
	ChangeAmount  int64          `json:"change_amount"`
	Type          string         `json:"type"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

type rollResponse struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"owner_id"`
	GuildID   string    `json:"guild_id,omitempty"`
	Rarity    int       `json:"rarity"`
	Name      string    `json:"name"`
	Element   string    `json:"element"`
	Attack    int       `json:"attack"`
	Defense   int       `json:"defense"`
	Speed     int       `json:"speed"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toRollResponse(roll *models.Roll) rollResponse {
	return rollResponse{
		ID:        roll.ID,
		OwnerID:   roll.OwnerID,
		GuildID:   roll.GuildID,
		Rarity:    roll.Rarity,
		Name:      roll.Name,
		Element:   roll.Element.String(),
		Attack:    roll.Attack,
		Defense:   roll.Defense,
		Speed:     roll.Speed,
		ImageURL:  roll.ImageURL,
		CreatedAt: roll.CreatedAt,
	}
}

func toRollResponses(rolls []*models.Roll) []rollResponse {
	out := make([]rollResponse, 0, len(rolls))
	for _, roll := range rolls {
		out = append(out, toRollResponse(roll))
	}
	return out
}

func (h *handler) getBalance(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	balance, err := h.ledger.GetBalance(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{UserID: userID, Balance: balance})
}

func (h *handler) getHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	limit := service.DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	history, err := h.ledger.GetHistory(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	entries := make([]historyEntry, 0, len(history))
	for _, entry := range history {
		entries = append(entries, historyEntry{
			ID:            entry.ID,
			BalanceBefore: entry.BalanceBefore,
			BalanceAfter:  entry.BalanceAfter,
			ChangeAmount:  entry.ChangeAmount,
			Type:          string(entry.TransactionType),
			Metadata:      entry.TransactionMetadata,
			CreatedAt:     entry.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *handler) listRolls(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	rolls, err := h.collection.ListMine(r.Context(), userID, r.URL.Query().Get("guild"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRollResponses(rolls))
}

func (h *handler) searchRolls(w http.ResponseWriter, r *http.Request) {
	rolls, err := h.collection.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRollResponses(rolls))
}

func (h *handler) getRoll(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid roll id")
		return
	}

	roll, err := h.collection.GetRoll(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if roll == nil {
		writeError(w, http.StatusNotFound, "roll not found")
		return
	}
	writeJSON(w, http.StatusOK, toRollResponse(roll))
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrInvalidQuery) {
		writeError(w, http.StatusBadRequest, "query must not be blank")
		return
	}

	log.WithFields(log.Fields{
		"path":  r.URL.Path,
		"error": err,
	}).Error("Debug API request failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
