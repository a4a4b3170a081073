package provider

import (
	"context"
)

// StaticProvider serves a built-in dataset of major stations, a handful of
// long distance trains and one published schedule
type StaticProvider struct {
	stations  []IRStation
	trains    []IRTrain
	schedules map[string]IRTrainSchedule
}

func NewStatic() *StaticProvider {
	return &StaticProvider{
		stations:  append(FallbackStations(), majorStations...),
		trains:    append(FallbackTrains(), longDistanceTrains...),
		schedules: map[string]IRTrainSchedule{howrahRajdhani.TrainNumber: howrahRajdhani},
	}
}

func (p *StaticProvider) GetAllStations(ctx context.Context) ([]IRStation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]IRStation, len(p.stations))
	copy(out, p.stations)
	return out, nil
}

// SearchTrains returns the whole dataset. Route filtering is left to the
// search engine, which applies it uniformly to every provider.
func (p *StaticProvider) SearchTrains(ctx context.Context, _, _, _ string) ([]IRTrain, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return cloneTrains(p.trains), nil
}

func (p *StaticProvider) GetTrainSchedule(ctx context.Context, trainNumber string) (*IRTrainSchedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	schedule, ok := p.schedules[trainNumber]
	if !ok {
		return nil, nil
	}
	schedule.Stations = append([]IRScheduleStop(nil), schedule.Stations...)
	return &schedule, nil
}

// FallbackStations is the minimal station list served when the provider
// cannot be reached
func FallbackStations() []IRStation {
	return []IRStation{
		{StationID: 1, StationName: "New Delhi", StationCode: "NDLS"},
		{StationID: 2, StationName: "Mumbai Central", StationCode: "MMCT"},
		{StationID: 3, StationName: "Chennai Central", StationCode: "MAS"},
		{StationID: 4, StationName: "Kolkata", StationCode: "KOAA"},
		{StationID: 5, StationName: "Bangalore", StationCode: "SBC"},
		{StationID: 6, StationName: "Hyderabad", StationCode: "SC"},
		{StationID: 7, StationName: "Pune", StationCode: "PUNE"},
		{StationID: 8, StationName: "Ahmedabad", StationCode: "ADI"},
	}
}

// FallbackTrains is the static train list searched when the provider fails.
// These trains carry no number, so they are identified by position.
func FallbackTrains() []IRTrain {
	return []IRTrain{
		{
			TrainName:       "Rajdhani Express",
			FromStationCode: "NDLS",
			FromStationName: "New Delhi",
			ToStationCode:   "MMCT",
			ToStationName:   "Mumbai Central",
			DepartureTime:   "16:00",
			ArrivalTime:     "08:35+1",
			Distance:        "1384 km",
			Classes:         []string{"1A", "2A", "3A"},
			Days:            everyDay(),
			AvailableSeats:  intPtr(45),
			WaitingList:     intPtr(0),
		},
		{
			TrainName:       "Shatabdi Express",
			FromStationCode: "NDLS",
			FromStationName: "New Delhi",
			ToStationCode:   "MAS",
			ToStationName:   "Chennai Central",
			DepartureTime:   "06:00",
			ArrivalTime:     "14:05",
			Distance:        "448 km",
			Classes:         []string{"CC", "EC"},
			Days:            []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
			AvailableSeats:  intPtr(82),
			WaitingList:     intPtr(0),
		},
		{
			TrainName:       "Duronto Express",
			FromStationCode: "MMCT",
			FromStationName: "Mumbai Central",
			ToStationCode:   "KOAA",
			ToStationName:   "Kolkata",
			DepartureTime:   "20:05",
			ArrivalTime:     "07:40+1",
			Distance:        "846 km",
			Classes:         []string{"1A", "2A", "3A"},
			Days:            everyDay(),
			AvailableSeats:  intPtr(23),
			WaitingList:     intPtr(4),
		},
	}
}

var majorStations = []IRStation{
	{StationCode: "NDLS", StationName: "New Delhi", StateCode: "DL", ZoneCode: "NR"},
	{StationCode: "CSMT", StationName: "Mumbai CST", StateCode: "MH", ZoneCode: "CR"},
	{StationCode: "HWH", StationName: "Howrah Junction", StateCode: "WB", ZoneCode: "ER"},
	{StationCode: "DLI", StationName: "Delhi Junction", StateCode: "DL", ZoneCode: "NR"},
	{StationCode: "NZM", StationName: "Hazrat Nizamuddin", StateCode: "DL", ZoneCode: "NR"},
	{StationCode: "CNB", StationName: "Kanpur Central", StateCode: "UP", ZoneCode: "NR"},
	{StationCode: "LKO", StationName: "Lucknow Charbagh", StateCode: "UP", ZoneCode: "NER"},
	{StationCode: "BPL", StationName: "Bhopal Junction", StateCode: "MP", ZoneCode: "WCR"},
	{StationCode: "BCT", StationName: "Mumbai Central", StateCode: "MH", ZoneCode: "WR"},
	{StationCode: "JP", StationName: "Jaipur Junction", StateCode: "RJ", ZoneCode: "NWR"},
	{StationCode: "ERS", StationName: "Ernakulam Junction", StateCode: "KL", ZoneCode: "SR"},
	{StationCode: "TVC", StationName: "Thiruvananthapuram Central", StateCode: "KL", ZoneCode: "SR"},
	{StationCode: "ASN", StationName: "Asansol Junction", StateCode: "WB", ZoneCode: "ER"},
	{StationCode: "GHY", StationName: "Guwahati", StateCode: "AS", ZoneCode: "NFR"},
	{StationCode: "SML", StationName: "Shimla", StateCode: "HP", ZoneCode: "NR"},
	// upstream feed reuses DLI; the first occurrence wins
	{StationCode: "DLI", StationName: "Darjeeling", StateCode: "WB", ZoneCode: "NFR"},
}

var longDistanceTrains = []IRTrain{
	{
		TrainNumber:     "12301",
		TrainName:       "Howrah Rajdhani Express",
		FromStationCode: "NDLS",
		FromStationName: "New Delhi",
		ToStationCode:   "HWH",
		ToStationName:   "Howrah Junction",
		DepartureTime:   "16:55",
		ArrivalTime:     "09:55+1",
		TravelTime:      "17h 00m",
		Distance:        "1444 km",
		Classes:         []string{"1A", "2A", "3A"},
		Days:            everyDay(),
		AvailableSeats:  intPtr(142),
		WaitingList:     intPtr(0),
	},
	{
		TrainNumber:     "12002",
		TrainName:       "New Delhi Shatabdi Express",
		FromStationCode: "NDLS",
		FromStationName: "New Delhi",
		ToStationCode:   "BPL",
		ToStationName:   "Bhopal Junction",
		DepartureTime:   "06:00",
		ArrivalTime:     "14:05",
		TravelTime:      "8h 05m",
		Distance:        "448 km",
		Classes:         []string{"CC", "EC"},
		Days:            []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		AvailableSeats:  intPtr(89),
		WaitingList:     intPtr(0),
	},
	{
		TrainNumber:     "12626",
		TrainName:       "Kerala Express",
		FromStationCode: "NDLS",
		FromStationName: "New Delhi",
		ToStationCode:   "TVC",
		ToStationName:   "Thiruvananthapuram Central",
		DepartureTime:   "11:45",
		ArrivalTime:     "11:00+2",
		TravelTime:      "47h 15m",
		Distance:        "3032 km",
		Classes:         []string{"1A", "2A", "3A", "SL"},
		Days:            everyDay(),
		WaitingList:     intPtr(45),
	},
	{
		TrainNumber:     "12951",
		TrainName:       "Mumbai Rajdhani Express",
		FromStationCode: "BCT",
		FromStationName: "Mumbai Central",
		ToStationCode:   "NDLS",
		ToStationName:   "New Delhi",
		DepartureTime:   "17:00",
		ArrivalTime:     "08:32+1",
		TravelTime:      "15h 32m",
		Distance:        "1384 km",
		Classes:         []string{"1A", "2A", "3A"},
		Days:            everyDay(),
		AvailableSeats:  intPtr(0),
		WaitingList:     intPtr(89),
	},
	{
		TrainNumber:     "22691",
		TrainName:       "Rajdhani Express",
		FromStationCode: "SBC",
		FromStationName: "Bangalore City",
		ToStationCode:   "NZM",
		ToStationName:   "Hazrat Nizamuddin",
		DepartureTime:   "20:00",
		ArrivalTime:     "05:55+2",
		TravelTime:      "33h 55m",
		Distance:        "2365 km",
		Classes:         []string{"1A", "2A", "3A"},
		Days:            everyDay(),
		AvailableSeats:  intPtr(23),
		WaitingList:     intPtr(0),
	},
}

var howrahRajdhani = IRTrainSchedule{
	TrainNumber: "12301",
	TrainName:   "Howrah Rajdhani Express",
	Stations: []IRScheduleStop{
		{StationCode: "NDLS", StationName: "New Delhi", ArrivalTime: "Source", DepartureTime: "16:55", HaltTime: "0m", Distance: "0", Day: 1, Platform: strPtr("16")},
		{StationCode: "CNB", StationName: "Kanpur Central", ArrivalTime: "21:35", DepartureTime: "21:40", HaltTime: "5m", Distance: "440", Day: 1},
		{StationCode: "ALD", StationName: "Allahabad Junction", ArrivalTime: "23:40", DepartureTime: "23:42", HaltTime: "2m", Distance: "634", Day: 1},
		{StationCode: "MGS", StationName: "Mughal Sarai Junction", ArrivalTime: "01:50", DepartureTime: "02:00", HaltTime: "10m", Distance: "787", Day: 2},
		{StationCode: "PNBE", StationName: "Patna Junction", ArrivalTime: "04:00", DepartureTime: "04:05", HaltTime: "5m", Distance: "997", Day: 2},
		{StationCode: "ASN", StationName: "Asansol Junction", ArrivalTime: "07:25", DepartureTime: "07:27", HaltTime: "2m", Distance: "1243", Day: 2},
		{StationCode: "HWH", StationName: "Howrah Junction", ArrivalTime: "09:55", DepartureTime: "Destination", HaltTime: "0m", Distance: "1444", Day: 2, Platform: strPtr("9")},
	},
}

func everyDay() []string {
	return []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func cloneTrains(in []IRTrain) []IRTrain {
	out := make([]IRTrain, len(in))
	copy(out, in)
	return out
}
