package catalog

// TrainType is the service class derived from a train's name
type TrainType string

const (
	TrainTypeRajdhani  TrainType = "Rajdhani"
	TrainTypeShatabdi  TrainType = "Shatabdi"
	TrainTypeDuronto   TrainType = "Duronto"
	TrainTypeSuperfast TrainType = "Superfast"
	TrainTypeExpress   TrainType = "Express"
	TrainTypePassenger TrainType = "Passenger"
)

// IsPremium reports whether the type is one of the premium express services
func (t TrainType) IsPremium() bool {
	switch t {
	case TrainTypeRajdhani, TrainTypeShatabdi, TrainTypeDuronto:
		return true
	default:
		return false
	}
}

// Station is immutable once normalized
type Station struct {
	ID    int    `json:"station_id"`
	Name  string `json:"station_name"`
	Code  string `json:"station_code"`
	State string `json:"state,omitempty"`
	Zone  string `json:"zone,omitempty"`
}

// Train is a normalized catalog entry. Seat counts are the provider's
// snapshot at the time of the search.
type Train struct {
	ID                   int       `json:"train_id"`
	Number               string    `json:"train_number,omitempty"`
	Name                 string    `json:"train_name"`
	SourceStationID      int       `json:"source_station_id"`
	DestinationStationID int       `json:"destination_station_id"`
	Source               *Station  `json:"source_station,omitempty"`
	Destination          *Station  `json:"destination_station,omitempty"`
	TotalSeats           int       `json:"total_seats"`
	AvailableSeats       *int      `json:"available_seats,omitempty"`
	WaitingList          *int      `json:"waiting_list,omitempty"`
	DepartureTime        string    `json:"departure_time"`
	ArrivalTime          string    `json:"arrival_time"`
	Duration             string    `json:"duration"`
	Type                 TrainType `json:"train_type"`
	Classes              []string  `json:"classes,omitempty"`
	Days                 []string  `json:"days,omitempty"`
	Distance             string    `json:"distance,omitempty"`
	Stops                []Stop    `json:"stops"`
}

// Stop is one halt on a train's route
type Stop struct {
	StationCode  string   `json:"station_code"`
	StationName  string   `json:"station_name"`
	Station      *Station `json:"station,omitempty"`
	Arrival      string   `json:"arrival_time"`
	Departure    string   `json:"departure_time"`
	Platform     *string  `json:"platform,omitempty"`
	HaltDuration *string  `json:"halt_duration,omitempty"`
	Day          int      `json:"day"`
	Distance     string   `json:"distance"`
}

// SourceCode returns the resolved origin code, empty when unresolved
func (t *Train) SourceCode() string {
	if t.Source == nil {
		return ""
	}
	return t.Source.Code
}

// DestinationCode returns the resolved destination code, empty when unresolved
func (t *Train) DestinationCode() string {
	if t.Destination == nil {
		return ""
	}
	return t.Destination.Code
}

// Clone returns a copy that shares no mutable state with t. Stations are
// immutable and stay shared.
func (t *Train) Clone() *Train {
	if t == nil {
		return nil
	}
	c := *t
	if t.AvailableSeats != nil {
		v := *t.AvailableSeats
		c.AvailableSeats = &v
	}
	if t.WaitingList != nil {
		v := *t.WaitingList
		c.WaitingList = &v
	}
	c.Classes = append([]string(nil), t.Classes...)
	c.Days = append([]string(nil), t.Days...)
	c.Stops = append([]Stop{}, t.Stops...)
	return &c
}
