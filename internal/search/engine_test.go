package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"railbook/internal/catalog"
	"railbook/internal/provider"
	"railbook/internal/shared/apperror"
	"railbook/internal/shared/utils/response"
	"railbook/pkg/cache"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	trains      []provider.IRTrain
	searchErr   error
	searchCalls int
	lastDate    string
}

func (p *stubProvider) GetAllStations(context.Context) ([]provider.IRStation, error) {
	return provider.FallbackStations(), nil
}

func (p *stubProvider) SearchTrains(ctx context.Context, _, _, date string) ([]provider.IRTrain, error) {
	p.searchCalls++
	p.lastDate = date
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.trains, p.searchErr
}

func (p *stubProvider) GetTrainSchedule(context.Context, string) (*provider.IRTrainSchedule, error) {
	return nil, nil
}

func newEngine(p provider.Provider, overlay AvailabilityOverlay) (*Engine, catalog.Service) {
	c := cache.NewMemoryService()
	cat := catalog.NewService(p, c, time.Hour)
	return NewEngine(p, cat, c, time.Minute, overlay), cat
}

func ndlsToMmct() provider.IRTrain {
	seats := 120
	return provider.IRTrain{
		TrainNumber:     "12952",
		TrainName:       "New Delhi Mumbai Rajdhani Express",
		FromStationCode: "NDLS",
		ToStationCode:   "MMCT",
		DepartureTime:   "16:55",
		ArrivalTime:     "08:15+1",
		AvailableSeats:  &seats,
	}
}

func TestSearch_MatchesExactRouteOnly(t *testing.T) {
	p := &stubProvider{trains: []provider.IRTrain{ndlsToMmct()}}
	engine, cat := newEngine(p, nil)
	ctx := context.Background()

	trains, err := engine.Search(ctx, "NDLS", "MMCT", "2025-06-01")
	require.NoError(t, err)
	require.Len(t, trains, 1)
	assert.Equal(t, 12952, trains[0].ID)
	assert.Equal(t, "2025-06-01", p.lastDate)

	reversed, err := engine.Search(ctx, "MMCT", "NDLS", "2025-06-01")
	require.NoError(t, err)
	assert.NotNil(t, reversed)
	assert.Empty(t, reversed)

	// returned trains resolve by id afterwards
	registered, ok := cat.Lookup(12952)
	require.True(t, ok)
	assert.Equal(t, "New Delhi Mumbai Rajdhani Express", registered.Name)
}

func TestSearch_CodesAreCaseSensitive(t *testing.T) {
	engine, _ := newEngine(&stubProvider{trains: []provider.IRTrain{ndlsToMmct()}}, nil)

	trains, err := engine.Search(context.Background(), "ndls", "mmct", "2025-06-01")
	require.NoError(t, err)
	assert.Empty(t, trains)
}

func TestSearch_CachesProviderResults(t *testing.T) {
	p := &stubProvider{trains: []provider.IRTrain{ndlsToMmct()}}
	engine, _ := newEngine(p, nil)

	_, err := engine.Search(context.Background(), "NDLS", "MMCT", "2025-06-01")
	require.NoError(t, err)
	_, err = engine.Search(context.Background(), "NDLS", "MMCT", "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, 1, p.searchCalls)
}

func TestSearch_FallsBackOnProviderError(t *testing.T) {
	p := &stubProvider{searchErr: apperror.NewProvider("search trains", errors.New("503"))}
	engine, _ := newEngine(p, nil)

	trains, err := engine.Search(context.Background(), "NDLS", "MMCT", "2025-06-01")
	require.NoError(t, err)
	require.Len(t, trains, 1)
	assert.Equal(t, "Rajdhani Express", trains[0].Name)
	assert.Equal(t, 1, trains[0].ID)
}

func TestSearch_CancelledContextIsProviderError(t *testing.T) {
	engine, _ := newEngine(&stubProvider{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trains, err := engine.Search(ctx, "NDLS", "MMCT", "2025-06-01")
	assert.Nil(t, trains)
	require.Error(t, err)
	assert.True(t, apperror.IsProvider(err))
	assert.ErrorIs(t, err, context.Canceled)
}

type fixedOverlay int

func (o fixedOverlay) Overlay(train *catalog.Train) {
	v := int(o)
	train.AvailableSeats = &v
}

func TestSearch_AppliesOverlay(t *testing.T) {
	engine, cat := newEngine(&stubProvider{trains: []provider.IRTrain{ndlsToMmct()}}, fixedOverlay(3))

	trains, err := engine.Search(context.Background(), "NDLS", "MMCT", "2025-06-01")
	require.NoError(t, err)
	require.Len(t, trains, 1)
	assert.Equal(t, 3, *trains[0].AvailableSeats)

	// the registry keeps the provider snapshot
	registered, _ := cat.Lookup(12952)
	assert.Equal(t, 120, *registered.AvailableSeats)
}

func TestFilter(t *testing.T) {
	ndls := &catalog.Station{ID: 1, Code: "NDLS"}
	mmct := &catalog.Station{ID: 2, Code: "MMCT"}
	trains := []catalog.Train{
		{ID: 1, Source: ndls, Destination: mmct},
		{ID: 2, Source: mmct, Destination: ndls},
		{ID: 3, Destination: mmct},
	}

	got := Filter(trains, "NDLS", "MMCT")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
	assert.NotNil(t, Filter(nil, "NDLS", "MMCT"))
}

func TestSearchRequest_Validate(t *testing.T) {
	cases := []struct {
		name string
		req  SearchRequest
		msg  string
	}{
		{"valid", SearchRequest{From: "NDLS", To: "MMCT", Date: "2025-06-01"}, ""},
		{"missing from", SearchRequest{To: "MMCT", Date: "2025-06-01"}, "Please fill in all search fields"},
		{"missing date", SearchRequest{From: "NDLS", To: "MMCT"}, "Please fill in all search fields"},
		{"same station", SearchRequest{From: "NDLS", To: "NDLS", Date: "2025-06-01"}, "Source and destination stations cannot be the same"},
		{"bad date", SearchRequest{From: "NDLS", To: "MMCT", Date: "01/06/2025"}, "Travel date must be in YYYY-MM-DD format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.msg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

type searcherFunc func(ctx context.Context, from, to, date string) ([]catalog.Train, error)

func (f searcherFunc) Search(ctx context.Context, from, to, date string) ([]catalog.Train, error) {
	return f(ctx, from, to, date)
}

func TestController_SearchTrains(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := searcherFunc(func(_ context.Context, from, _, _ string) ([]catalog.Train, error) {
		switch from {
		case "ERR":
			return nil, apperror.NewProvider("search trains", context.DeadlineExceeded)
		case "NDLS":
			return []catalog.Train{{ID: 1, Name: "Rajdhani Express"}}, nil
		default:
			return []catalog.Train{}, nil
		}
	})
	router := gin.New()
	SetupSearchRoutes(router.Group("/api/v1"), NewController(engine))

	cases := []struct {
		query   string
		code    int
		message string
	}{
		{"from=NDLS&to=MMCT&date=2025-06-01", http.StatusOK, "Trains retrieved successfully"},
		{"from=SBC&to=MAS&date=2025-06-01", http.StatusOK, "No trains found for the selected route and date"},
		{"from=NDLS&to=NDLS&date=2025-06-01", http.StatusBadRequest, "Source and destination stations cannot be the same"},
		{"from=NDLS&to=MMCT", http.StatusBadRequest, "Please fill in all search fields"},
		{"from=ERR&to=MMCT&date=2025-06-01", http.StatusBadGateway, ""},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/trains/search?"+tc.query, nil))

			var body response.StandardApiResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.code, w.Code)
			if tc.message != "" {
				assert.Equal(t, tc.message, body.Message)
			}
		})
	}
}
