package handlers

import (
	"net/http"
	"strconv"

	"github.com/yojanasetu/voicebackend/internal/history"
)

type HistoryHandler struct {
	turns *history.Store
}

func NewHistoryHandler(turns *history.Store) *HistoryHandler {
	return &HistoryHandler{turns: turns}
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 200 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	turns, err := h.turns.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list history")
		return
	}
	if turns == nil {
		turns = []history.Turn{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"turns": turns})
}
