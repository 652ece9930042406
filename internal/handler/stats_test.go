package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minetally/minetally/internal/domain"
	"github.com/minetally/minetally/internal/playerdata"
	"github.com/minetally/minetally/internal/record"
	"github.com/minetally/minetally/internal/stats"
)

// stubService implements stats.Service with per-method function fields so each
// test only wires the methods it exercises.
type stubService struct {
	getPlayerInfo func(ctx context.Context, playerID uuid.UUID) (*playerdata.PlayerInfo, error)
	recordRow     func(ctx context.Context, playerID uuid.UUID, stat domain.Stat, row domain.Row) error
	removeRow     func(ctx context.Context, playerID uuid.UUID, stat domain.Stat, row domain.Row) error
	statRows      func(ctx context.Context, playerID uuid.UUID, stat domain.Stat) ([]domain.Row, error)
	statTotal     func(ctx context.Context, playerID uuid.UUID, stat domain.Stat, decimals int, preds ...domain.Predicate) (float64, error)
	describe      func(ctx context.Context, playerID uuid.UUID) ([]string, error)
	deletePlayer  func(ctx context.Context, playerID uuid.UUID) error
	flushPlayer   func(ctx context.Context, playerID uuid.UUID) error
	flushAll      func(ctx context.Context) error
}

func (s *stubService) GetPlayerInfo(ctx context.Context, playerID uuid.UUID) (*playerdata.PlayerInfo, error) {
	return s.getPlayerInfo(ctx, playerID)
}

func (s *stubService) RecordRow(ctx context.Context, playerID uuid.UUID, stat domain.Stat, row domain.Row) error {
	return s.recordRow(ctx, playerID, stat, row)
}

func (s *stubService) RemoveRow(ctx context.Context, playerID uuid.UUID, stat domain.Stat, row domain.Row) error {
	return s.removeRow(ctx, playerID, stat, row)
}

func (s *stubService) StatRows(ctx context.Context, playerID uuid.UUID, stat domain.Stat) ([]domain.Row, error) {
	return s.statRows(ctx, playerID, stat)
}

func (s *stubService) StatTotal(ctx context.Context, playerID uuid.UUID, stat domain.Stat, decimals int, preds ...domain.Predicate) (float64, error) {
	return s.statTotal(ctx, playerID, stat, decimals, preds...)
}

func (s *stubService) DescribePlayer(ctx context.Context, playerID uuid.UUID) ([]string, error) {
	return s.describe(ctx, playerID)
}

func (s *stubService) DeletePlayer(ctx context.Context, playerID uuid.UUID) error {
	return s.deletePlayer(ctx, playerID)
}

func (s *stubService) FlushPlayer(ctx context.Context, playerID uuid.UUID) error {
	return s.flushPlayer(ctx, playerID)
}

func (s *stubService) FlushAll(ctx context.Context) error {
	return s.flushAll(ctx)
}

var _ stats.Service = (*stubService)(nil)

func TestHandleGetPlayerStats(t *testing.T) {
	playerID := uuid.New()
	svc := &stubService{
		getPlayerInfo: func(ctx context.Context, id uuid.UUID) (*playerdata.PlayerInfo, error) {
			require.Equal(t, playerID, id)
			info := playerdata.New(id)
			require.NoError(t, info.AddRow(domain.StatJoins, record.New(3, nil)))
			require.NoError(t, info.AddRow(domain.StatDeaths, record.New(1, map[string]any{"world": "earth"})))
			return info, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/player?player_id="+playerID.String(), nil)
	rec := httptest.NewRecorder()
	HandleGetPlayerStats(svc)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp PlayerStatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, playerID.String(), resp.PlayerID)
	require.Len(t, resp.Stats, 2)
	assert.Equal(t, StatSummaryEntry{Rows: 1, Total: 3}, resp.Stats["joins"])
	assert.Equal(t, StatSummaryEntry{Rows: 1, Total: 1}, resp.Stats["deaths"])
}

func TestHandleGetPlayerStatsMissingPlayerID(t *testing.T) {
	svc := &stubService{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/player", nil)
	rec := httptest.NewRecorder()
	HandleGetPlayerStats(svc)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "player_id is required")
}

func TestHandleGetPlayerStatsInvalidPlayerID(t *testing.T) {
	svc := &stubService{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/player?player_id=not-a-uuid", nil)
	rec := httptest.NewRecorder()
	HandleGetPlayerStats(svc)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid player ID")
}

func TestHandleGetPlayerStatsServiceError(t *testing.T) {
	svc := &stubService{
		getPlayerInfo: func(ctx context.Context, id uuid.UUID) (*playerdata.PlayerInfo, error) {
			return nil, errors.New("boom")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/player?player_id="+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	HandleGetPlayerStats(svc)(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgGenericServerError)
}

func TestHandleGetStatRows(t *testing.T) {
	svc := &stubService{
		statRows: func(ctx context.Context, id uuid.UUID, stat domain.Stat) ([]domain.Row, error) {
			require.Equal(t, domain.StatDeaths, stat)
			return []domain.Row{
				record.New(1, map[string]any{"world": "earth"}),
				record.New(2, map[string]any{"world": "nether"}),
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/stats/rows?player_id="+uuid.NewString()+"&stat=deaths", nil)
	rec := httptest.NewRecorder()
	HandleGetStatRows(svc)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload []RowPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload, 2)
	assert.Equal(t, 1.0, payload[0].Value)
	assert.Equal(t, "earth", payload[0].Fields["world"])
}

func TestHandleGetStatRowsUnknownStat(t *testing.T) {
	svc := &stubService{
		statRows: func(ctx context.Context, id uuid.UUID, stat domain.Stat) ([]domain.Row, error) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidStat, stat)
		},
	}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/stats/rows?player_id="+uuid.NewString()+"&stat=made_up", nil)
	rec := httptest.NewRecorder()
	HandleGetStatRows(svc)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrMsgUnknownStatError)
}

func TestHandleGetStatTotalForwardsDecimalsAndPredicates(t *testing.T) {
	var gotDecimals int
	var gotPreds []domain.Predicate
	svc := &stubService{
		statTotal: func(ctx context.Context, id uuid.UUID, stat domain.Stat, decimals int, preds ...domain.Predicate) (float64, error) {
			gotDecimals = decimals
			gotPreds = preds
			return 12.34, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/stats/total?player_id="+uuid.NewString()+"&stat=blocks_broken&decimals=2&where_world=earth", nil)
	rec := httptest.NewRecorder()
	HandleGetStatTotal(svc)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, gotDecimals)
	require.Len(t, gotPreds, 1)
	assert.Equal(t, record.NewRequirement("world", "earth"), gotPreds[0])

	var resp StatTotalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "blocks_broken", resp.Stat)
	assert.Equal(t, 12.34, resp.Total)
}

func TestHandleGetStatTotalDefaultsToNoRounding(t *testing.T) {
	var gotDecimals int
	svc := &stubService{
		statTotal: func(ctx context.Context, id uuid.UUID, stat domain.Stat, decimals int, preds ...domain.Predicate) (float64, error) {
			gotDecimals = decimals
			return 0, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/stats/total?player_id="+uuid.NewString()+"&stat=joins", nil)
	rec := httptest.NewRecorder()
	HandleGetStatTotal(svc)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, stats.NoRounding, gotDecimals)
}

func TestHandleGetStatTotalClampsDecimals(t *testing.T) {
	tests := []struct {
		name     string
		decimals string
		want     int
	}{
		{"above cap", "99", MaxTotalDecimals},
		{"negative", "-3", 0},
		{"in range", "4", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotDecimals int
			svc := &stubService{
				statTotal: func(ctx context.Context, id uuid.UUID, stat domain.Stat, decimals int, preds ...domain.Predicate) (float64, error) {
					gotDecimals = decimals
					return 0, nil
				},
			}

			req := httptest.NewRequest(http.MethodGet,
				"/api/v1/stats/total?player_id="+uuid.NewString()+"&stat=joins&decimals="+tt.decimals, nil)
			rec := httptest.NewRecorder()
			HandleGetStatTotal(svc)(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, gotDecimals)
		})
	}
}

func TestHandleGetStatTotalInvalidDecimals(t *testing.T) {
	svc := &stubService{}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/stats/total?player_id="+uuid.NewString()+"&stat=joins&decimals=two", nil)
	rec := httptest.NewRecorder()
	HandleGetStatTotal(svc)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid decimals value")
}

func TestHandleRecordRow(t *testing.T) {
	playerID := uuid.New()
	var gotStat domain.Stat
	var gotRow domain.Row
	svc := &stubService{
		recordRow: func(ctx context.Context, id uuid.UUID, stat domain.Stat, row domain.Row) error {
			require.Equal(t, playerID, id)
			gotStat = stat
			gotRow = row
			return nil
		},
	}

	body, err := json.Marshal(RecordRowRequest{
		PlayerID: playerID.String(),
		Stat:     "kills",
		Value:    1,
		Fields:   map[string]any{"weapon": "sword", "world": "earth"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stats/row", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	HandleRecordRow(svc)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.StatKills, gotStat)
	require.NotNil(t, gotRow)
	assert.Equal(t, 1.0, gotRow.Value())
	weapon, ok := gotRow.Field("weapon")
	require.True(t, ok)
	assert.Equal(t, "sword", weapon)
}

func TestHandleRecordRowInvalidBody(t *testing.T) {
	svc := &stubService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/stats/row", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	HandleRecordRow(svc)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request body")
}

func TestHandleRecordRowValidation(t *testing.T) {
	tests := []struct {
		name string
		req  RecordRowRequest
	}{
		{"missing player id", RecordRowRequest{Stat: "joins", Value: 1}},
		{"malformed player id", RecordRowRequest{PlayerID: "nope", Stat: "joins", Value: 1}},
		{"missing stat", RecordRowRequest{PlayerID: uuid.NewString(), Value: 1}},
		{"unknown stat", RecordRowRequest{PlayerID: uuid.NewString(), Stat: "made_up", Value: 1}},
	}

	svc := &stubService{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.req)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/stats/row", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			HandleRecordRow(svc)(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleDescribePlayer(t *testing.T) {
	svc := &stubService{
		describe: func(ctx context.Context, id uuid.UUID) ([]string, error) {
			return []string{"has joined the server 3 times"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/stats/describe?player_id="+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	HandleDescribePlayer(svc)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp DescribeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "has joined the server 3 times", resp.Lines[0])
}

func TestHandleDeletePlayer(t *testing.T) {
	playerID := uuid.New()
	var deleted uuid.UUID
	svc := &stubService{
		deletePlayer: func(ctx context.Context, id uuid.UUID) error {
			deleted = id
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodDelete,
		"/api/v1/stats/player?player_id="+playerID.String(), nil)
	rec := httptest.NewRecorder()
	HandleDeletePlayer(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, playerID, deleted)
	assert.Contains(t, rec.Body.String(), "Player deleted")
}

func TestHandleDeletePlayerServiceError(t *testing.T) {
	svc := &stubService{
		deletePlayer: func(ctx context.Context, id uuid.UUID) error {
			return errors.New("boom")
		},
	}

	req := httptest.NewRequest(http.MethodDelete,
		"/api/v1/stats/player?player_id="+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	HandleDeletePlayer(svc)(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleFlushPlayer(t *testing.T) {
	flushed := false
	svc := &stubService{
		flushPlayer: func(ctx context.Context, id uuid.UUID) error {
			flushed = true
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPost,
		"/api/v1/stats/flush?player_id="+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	HandleFlushPlayer(svc)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, flushed)
}

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"player not found", domain.ErrPlayerNotFound, http.StatusNotFound, ErrMsgPlayerNotFoundError},
		{"invalid stat", fmt.Errorf("wrapped: %w", domain.ErrInvalidStat), http.StatusBadRequest, ErrMsgUnknownStatError},
		{"row not set", domain.ErrRowNotSet, http.StatusBadRequest, ErrMsgInvalidRequestError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, ErrMsgGenericServerError},
		{"nil", nil, http.StatusInternalServerError, ErrMsgUnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
