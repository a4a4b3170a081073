package catalog

import (
	"testing"

	"railbook/internal/provider"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		wantType  TrainType
		wantSeats int
	}{
		{"Rajdhani Express", TrainTypeRajdhani, 300},
		{"Local Passenger", TrainTypePassenger, 200},
		{"NEW DELHI SHATABDI EXPRESS", TrainTypeShatabdi, 250},
		{"Sealdah Duronto Express", TrainTypeDuronto, 280},
		{"Kerala Superfast Express", TrainTypeSuperfast, 350},
		{"Kerala Express", TrainTypeExpress, 400},
		{"", TrainTypePassenger, 200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotType, gotSeats := Classify(tc.name)
			assert.Equal(t, tc.wantType, gotType)
			assert.Equal(t, tc.wantSeats, gotSeats)
		})
	}
}

func TestClassify_FirstRuleWins(t *testing.T) {
	// "duronto" precedes "superfast" and "express" in the rule list
	gotType, _ := Classify("Superfast Duronto Express")
	assert.Equal(t, TrainTypeDuronto, gotType)
}

func TestNormalizeStations(t *testing.T) {
	raw := []provider.IRStation{
		{StationCode: "NDLS", StationName: "New Delhi"},
		{StationCode: "DLI", StationName: "Delhi Junction"},
		{StationCode: "DLI", StationName: "Darjeeling"},
		{StationCode: "HWH", StationName: "Howrah Junction", StateCode: "WB", ZoneCode: "ER"},
		{StationID: 42, StationCode: "MAS", StationName: "Chennai Central"},
	}

	stations := NormalizeStations(raw)
	require.Len(t, stations, 4)
	assert.Equal(t, Station{ID: 1, Name: "New Delhi", Code: "NDLS"}, stations[0])
	assert.Equal(t, "Delhi Junction", stations[1].Name)
	assert.Equal(t, 4, stations[2].ID)
	assert.Equal(t, "WB", stations[2].State)
	assert.Equal(t, 42, stations[3].ID)

	// same ordering, same ids
	assert.Equal(t, stations, NormalizeStations(raw))

	t.Run("positional ids skip provider ids", func(t *testing.T) {
		mixed := NormalizeStations([]provider.IRStation{
			{StationCode: "AAA"},
			{StationID: 1, StationCode: "BBB"},
			{StationID: 1, StationCode: "CCC"},
		})
		require.Len(t, mixed, 3)
		assert.Equal(t, 1, mixed[1].ID)
		assert.Equal(t, 2, mixed[0].ID)
		assert.Equal(t, 3, mixed[2].ID)
	})
}

func TestNormalizeTrains(t *testing.T) {
	stations := NormalizeStations(provider.FallbackStations())
	raw := []provider.IRTrain{
		{
			TrainNumber:     "12951",
			TrainName:       "Mumbai Rajdhani Express",
			FromStationCode: "NDLS",
			ToStationCode:   "MMCT",
			DepartureTime:   "16:00",
			ArrivalTime:     "08:35+1",
			AvailableSeats:  intPtr(500),
			WaitingList:     intPtr(-3),
		},
		{
			TrainName:       "Local Passenger",
			FromStationCode: "XXX",
			ToStationCode:   "MAS",
			DepartureTime:   "23:30",
			ArrivalTime:     "01:15",
		},
	}

	trains := NormalizeTrains(raw, stations)
	require.Len(t, trains, 2)

	rajdhani := trains[0]
	assert.Equal(t, 12951, rajdhani.ID)
	assert.Equal(t, TrainTypeRajdhani, rajdhani.Type)
	assert.Equal(t, 300, rajdhani.TotalSeats)
	assert.Equal(t, "NDLS", rajdhani.SourceCode())
	assert.Equal(t, "MMCT", rajdhani.DestinationCode())
	assert.Equal(t, 1, rajdhani.SourceStationID)
	assert.Equal(t, "16h 35m", rajdhani.Duration)
	require.NotNil(t, rajdhani.AvailableSeats)
	assert.Equal(t, 300, *rajdhani.AvailableSeats)
	require.NotNil(t, rajdhani.WaitingList)
	assert.Equal(t, 0, *rajdhani.WaitingList)

	local := trains[1]
	assert.Equal(t, 2, local.ID)
	assert.Nil(t, local.Source)
	assert.Equal(t, 0, local.SourceStationID)
	assert.Equal(t, "", local.SourceCode())
	assert.Equal(t, "MAS", local.DestinationCode())
	assert.Nil(t, local.AvailableSeats)
	assert.Nil(t, local.WaitingList)
	assert.Equal(t, "1h 45m", local.Duration)
	assert.NotNil(t, local.Stops)
}

func TestNormalizeTrains_UniqueIDs(t *testing.T) {
	trains := NormalizeTrains([]provider.IRTrain{
		{TrainNumber: "2", TrainName: "Kerala Express"},
		{TrainName: "Local Passenger"},
		{TrainName: "Another Passenger"},
		{TrainNumber: "2", TrainName: "Duplicate Express"},
		{TrainNumber: "T-9", TrainName: "Lettered Express"},
	}, nil)
	require.Len(t, trains, 5)

	ids := make(map[int]string, len(trains))
	for _, tr := range trains {
		prev, dup := ids[tr.ID]
		assert.False(t, dup, "id %d given to %q and %q", tr.ID, prev, tr.Name)
		ids[tr.ID] = tr.Name
	}
	assert.Equal(t, 2, trains[0].ID)
	assert.Equal(t, 3, trains[1].ID)
	assert.Equal(t, 4, trains[2].ID)
	assert.Equal(t, 5, trains[3].ID)
	assert.Equal(t, 6, trains[4].ID)
}

func TestTravelDuration(t *testing.T) {
	assert.Equal(t, "17h 00m", travelDuration("16:55", "09:55+1", ""))
	assert.Equal(t, "47h 15m", travelDuration("11:45", "11:00+2", ""))
	assert.Equal(t, "8h 05m", travelDuration("06:00", "14:05", ""))
	assert.Equal(t, "12h 30m", travelDuration("Source", "14:05", "12h 30m"))
	assert.Equal(t, "", travelDuration("25:00", "14:05", ""))
}

func TestNormalizeStops(t *testing.T) {
	stations := NormalizeStations([]provider.IRStation{{StationCode: "NDLS", StationName: "New Delhi"}})
	platform := "16"
	schedule := &provider.IRTrainSchedule{
		TrainNumber: "12301",
		Stations: []provider.IRScheduleStop{
			{StationCode: "NDLS", StationName: "New Delhi", ArrivalTime: "Source", DepartureTime: "16:55", HaltTime: "0m", Day: 1, Platform: &platform},
			{StationCode: "HWH", StationName: "Howrah Junction", ArrivalTime: "09:55", DepartureTime: "Destination", Day: 2},
		},
	}

	stops := NormalizeStops(schedule, stations)
	require.Len(t, stops, 2)
	require.NotNil(t, stops[0].Station)
	assert.Equal(t, 1, stops[0].Station.ID)
	require.NotNil(t, stops[0].Platform)
	assert.Equal(t, "16", *stops[0].Platform)
	require.NotNil(t, stops[0].HaltDuration)
	assert.Nil(t, stops[1].Station)
	assert.Nil(t, stops[1].HaltDuration)
	assert.Equal(t, 2, stops[1].Day)

	assert.Empty(t, NormalizeStops(nil, stations))
}

func TestTrainClone(t *testing.T) {
	orig := &Train{ID: 1, AvailableSeats: intPtr(10), Classes: []string{"3A"}}
	c := orig.Clone()
	*c.AvailableSeats = 0
	c.Classes[0] = "SL"

	assert.Equal(t, 10, *orig.AvailableSeats)
	assert.Equal(t, "3A", orig.Classes[0])
	assert.True(t, TrainTypeRajdhani.IsPremium())
	assert.False(t, TrainTypeExpress.IsPremium())
}
