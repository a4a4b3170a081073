package provider

// IRStation is a station as reported by the railway data provider
type IRStation struct {
	StationID   int    `json:"station_id,omitempty"`
	StationCode string `json:"station_code"`
	StationName string `json:"station_name"`
	StateCode   string `json:"state_code,omitempty"`
	ZoneCode    string `json:"zone_code,omitempty"`
}

// IRTrain is a train as reported by the provider's search endpoint.
// Seat figures are optional; many upstream feeds omit them.
type IRTrain struct {
	TrainNumber     string   `json:"train_number"`
	TrainName       string   `json:"train_name"`
	FromStationCode string   `json:"from_station_code"`
	FromStationName string   `json:"from_station_name"`
	ToStationCode   string   `json:"to_station_code"`
	ToStationName   string   `json:"to_station_name"`
	DepartureTime   string   `json:"departure_time"`
	ArrivalTime     string   `json:"arrival_time"`
	TravelTime      string   `json:"travel_time"`
	Distance        string   `json:"distance"`
	Classes         []string `json:"classes"`
	Days            []string `json:"days"`
	AvailableSeats  *int     `json:"available_seats,omitempty"`
	WaitingList     *int     `json:"waiting_list,omitempty"`
}

// IRTrainSchedule lists every halt of a train in running order
type IRTrainSchedule struct {
	TrainNumber string           `json:"train_number"`
	TrainName   string           `json:"train_name"`
	Stations    []IRScheduleStop `json:"stations"`
}

type IRScheduleStop struct {
	StationCode   string  `json:"station_code"`
	StationName   string  `json:"station_name"`
	ArrivalTime   string  `json:"arrival_time"`
	DepartureTime string  `json:"departure_time"`
	HaltTime      string  `json:"halt_time"`
	Distance      string  `json:"distance"`
	Day           int     `json:"day"`
	Platform      *string `json:"platform,omitempty"`
}
