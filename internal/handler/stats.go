package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/minetally/minetally/internal/domain"
	"github.com/minetally/minetally/internal/logger"
	"github.com/minetally/minetally/internal/record"
	"github.com/minetally/minetally/internal/stats"
	"github.com/minetally/minetally/internal/utils"
)

// MaxTotalDecimals caps the decimals query parameter of total queries.
// Anything beyond this exceeds float64 display precision anyway.
const MaxTotalDecimals = 10

// RecordRowRequest represents a request to record a new statistic row
type RecordRowRequest struct {
	PlayerID string         `json:"player_id" validate:"required,uuid"`
	Stat     string         `json:"stat" validate:"required,max=50,stat"`
	Value    float64        `json:"value"`
	Fields   map[string]any `json:"fields,omitempty"`
}

// RowPayload is the JSON shape of one stored row
type RowPayload struct {
	Value  float64        `json:"value"`
	Fields map[string]any `json:"fields,omitempty"`
}

// PlayerStatsResponse summarizes every recorded stat of a player
type PlayerStatsResponse struct {
	PlayerID string                      `json:"player_id"`
	Stats    map[string]StatSummaryEntry `json:"stats"`
}

// StatSummaryEntry is the per-stat part of PlayerStatsResponse
type StatSummaryEntry struct {
	Rows  int     `json:"rows"`
	Total float64 `json:"total"`
}

// StatTotalResponse is the response for total queries
type StatTotalResponse struct {
	PlayerID string  `json:"player_id"`
	Stat     string  `json:"stat"`
	Total    float64 `json:"total"`
}

// DescribeResponse carries the rendered summary lines for a player
type DescribeResponse struct {
	PlayerID string   `json:"player_id"`
	Lines    []string `json:"lines"`
}

// HandleGetPlayerStats handles GET requests for a player's full statistics summary
func HandleGetPlayerStats(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID, ok := playerIDFromQuery(w, r)
		if !ok {
			return
		}

		info, err := svc.GetPlayerInfo(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to get player info", "error", err, "player_id", playerID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		resp := PlayerStatsResponse{
			PlayerID: playerID.String(),
			Stats:    make(map[string]StatSummaryEntry, info.StatCount()),
		}
		for _, stat := range info.Stats() {
			resp.Stats[stat.String()] = StatSummaryEntry{
				Rows:  info.RowCount(stat),
				Total: info.TotalValueRounded(stat, stats.DefaultDecimals),
			}
		}

		log.Debug("Retrieved player stats", "player_id", playerID, "stats", info.StatCount())
		respondJSON(w, http.StatusOK, resp)
	}
}

// HandleGetStatRows handles GET requests for the raw rows of one stat
func HandleGetStatRows(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID, ok := playerIDFromQuery(w, r)
		if !ok {
			return
		}

		stat := domain.Stat(r.URL.Query().Get("stat"))
		rows, err := svc.StatRows(r.Context(), playerID, stat)
		if err != nil {
			log.Error("Failed to get stat rows", "error", err, "player_id", playerID, "stat", stat)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		payload := make([]RowPayload, 0, len(rows))
		for _, row := range rows {
			entry := RowPayload{Value: row.Value()}
			if rec, ok := row.(*record.Row); ok {
				entry.Fields = rec.Fields()
			}
			payload = append(payload, entry)
		}

		respondJSON(w, http.StatusOK, payload)
	}
}

// HandleGetStatTotal handles GET requests for a filtered stat total.
// Optional query parameters: decimals, and field/value pairs as
// where_<field>=<value> row requirements.
func HandleGetStatTotal(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID, ok := playerIDFromQuery(w, r)
		if !ok {
			return
		}

		stat := domain.Stat(r.URL.Query().Get("stat"))

		decimals := stats.NoRounding
		if raw := r.URL.Query().Get("decimals"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				respondError(w, http.StatusBadRequest, "Invalid decimals value")
				return
			}
			decimals = utils.ClampInt(parsed, 0, MaxTotalDecimals)
		}

		var preds []domain.Predicate
		for name, values := range r.URL.Query() {
			if len(values) == 0 {
				continue
			}
			if field, found := strings.CutPrefix(name, "where_"); found && field != "" {
				preds = append(preds, record.NewRequirement(field, values[0]))
			}
		}

		total, err := svc.StatTotal(r.Context(), playerID, stat, decimals, preds...)
		if err != nil {
			log.Error("Failed to get stat total", "error", err, "player_id", playerID, "stat", stat)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, StatTotalResponse{
			PlayerID: playerID.String(),
			Stat:     stat.String(),
			Total:    total,
		})
	}
}

// HandleRecordRow handles POST requests to record a new statistic row
func HandleRecordRow(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RecordRowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode record row request", "error", err)
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", FormatValidationError(err)))
			return
		}

		playerID, err := uuid.Parse(req.PlayerID)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid player ID")
			return
		}

		row := record.New(req.Value, req.Fields)
		if err := svc.RecordRow(r.Context(), playerID, domain.Stat(req.Stat), row); err != nil {
			log.Error("Failed to record row", "error", err, "player_id", req.PlayerID, "stat", req.Stat)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Row recorded", "player_id", req.PlayerID, "stat", req.Stat, "value", req.Value)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Row recorded"})
	}
}

// HandleDescribePlayer handles GET requests for the human-readable summary
func HandleDescribePlayer(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID, ok := playerIDFromQuery(w, r)
		if !ok {
			return
		}

		lines, err := svc.DescribePlayer(r.Context(), playerID)
		if err != nil {
			log.Error("Failed to describe player", "error", err, "player_id", playerID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, DescribeResponse{
			PlayerID: playerID.String(),
			Lines:    lines,
		})
	}
}

// HandleDeletePlayer handles DELETE requests removing every stored row of a
// player, cached and persisted
func HandleDeletePlayer(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID, ok := playerIDFromQuery(w, r)
		if !ok {
			return
		}

		if err := svc.DeletePlayer(r.Context(), playerID); err != nil {
			log.Error("Failed to delete player", "error", err, "player_id", playerID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		log.Info("Player stats deleted", "player_id", playerID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Player deleted"})
	}
}

// HandleFlushPlayer handles POST requests to flush a player's cached store
func HandleFlushPlayer(svc stats.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		playerID, ok := playerIDFromQuery(w, r)
		if !ok {
			return
		}

		if err := svc.FlushPlayer(r.Context(), playerID); err != nil {
			log.Error("Failed to flush player", "error", err, "player_id", playerID)
			status, msg := mapServiceErrorToUserMessage(err)
			respondError(w, status, msg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Player flushed"})
	}
}

// playerIDFromQuery parses the player_id query parameter, writing the error
// response itself when the parameter is missing or malformed.
func playerIDFromQuery(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.URL.Query().Get("player_id")
	if raw == "" {
		respondError(w, http.StatusBadRequest, "player_id is required")
		return uuid.Nil, false
	}
	playerID, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid player ID")
		return uuid.Nil, false
	}
	return playerID, true
}
