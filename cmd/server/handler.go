package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"assetwatch/internal/asset"
)

// assetGetter is what the handler needs from the aggregator.
type assetGetter interface {
	Get(ctx context.Context, symbol string) (asset.Snapshot, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleGetAsset serves GET /asset/{symbol}. Aggregation failures of
// any kind surface as 500 with an error body.
func handleGetAsset(svc assetGetter, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.ToUpper(chi.URLParam(r, "symbol"))

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		snap, err := svc.Get(ctx, symbol)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
