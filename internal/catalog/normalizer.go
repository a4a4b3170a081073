package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"railbook/internal/provider"
)

// classificationRule maps a name keyword to a train type and its capacity
type classificationRule struct {
	Keyword    string
	Type       TrainType
	TotalSeats int
}

// classificationRules is checked in order; the first keyword found in the
// lowercased train name wins.
var classificationRules = []classificationRule{
	{Keyword: "rajdhani", Type: TrainTypeRajdhani, TotalSeats: 300},
	{Keyword: "shatabdi", Type: TrainTypeShatabdi, TotalSeats: 250},
	{Keyword: "duronto", Type: TrainTypeDuronto, TotalSeats: 280},
	{Keyword: "superfast", Type: TrainTypeSuperfast, TotalSeats: 350},
	{Keyword: "express", Type: TrainTypeExpress, TotalSeats: 400},
}

var defaultClassification = classificationRule{Type: TrainTypePassenger, TotalSeats: 200}

// Classify derives type and seat capacity from a train name
func Classify(name string) (TrainType, int) {
	lower := strings.ToLower(name)
	for _, rule := range classificationRules {
		if strings.Contains(lower, rule.Keyword) {
			return rule.Type, rule.TotalSeats
		}
	}
	return defaultClassification.Type, defaultClassification.TotalSeats
}

// NormalizeStations converts provider stations into catalog stations. A
// station without a provider id, or whose id an earlier station already
// claimed, gets its 1-based position in raw or the next free id after it.
// Repeated codes keep the first occurrence.
func NormalizeStations(raw []provider.IRStation) []Station {
	type entry struct {
		index int
		code  string
		id    int
	}
	entries := make([]entry, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	ids := newIDSet(len(raw))

	for i, r := range raw {
		code := strings.TrimSpace(r.StationCode)
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		entries = append(entries, entry{index: i, code: code, id: ids.claim(r.StationID)})
	}

	stations := make([]Station, 0, len(entries))
	for _, e := range entries {
		id := e.id
		if id == 0 {
			id = ids.next(e.index + 1)
		}
		r := raw[e.index]
		stations = append(stations, Station{
			ID:    id,
			Name:  r.StationName,
			Code:  e.code,
			State: r.StateCode,
			Zone:  r.ZoneCode,
		})
	}
	return stations
}

// NormalizeTrains converts provider trains into catalog trains, resolving
// origin and destination against stations by exact code.
func NormalizeTrains(raw []provider.IRTrain, stations []Station) []Train {
	byCode := indexByCode(stations)
	trains := make([]Train, 0, len(raw))

	ids := newIDSet(len(raw))
	claimed := make([]int, len(raw))
	for i, r := range raw {
		claimed[i] = ids.claim(numericID(r.TrainNumber))
	}

	for i, r := range raw {
		id := claimed[i]
		if id == 0 {
			id = ids.next(i + 1)
		}
		trainType, totalSeats := Classify(r.TrainName)
		t := Train{
			ID:            id,
			Number:        r.TrainNumber,
			Name:          r.TrainName,
			TotalSeats:    totalSeats,
			DepartureTime: r.DepartureTime,
			ArrivalTime:   r.ArrivalTime,
			Duration:      travelDuration(r.DepartureTime, r.ArrivalTime, r.TravelTime),
			Type:          trainType,
			Classes:       append([]string(nil), r.Classes...),
			Days:          append([]string(nil), r.Days...),
			Distance:      r.Distance,
			Stops:         []Stop{},
		}

		if src, ok := byCode[r.FromStationCode]; ok {
			t.Source = src
			t.SourceStationID = src.ID
		}
		if dst, ok := byCode[r.ToStationCode]; ok {
			t.Destination = dst
			t.DestinationStationID = dst.ID
		}

		if r.AvailableSeats != nil {
			v := clamp(*r.AvailableSeats, 0, totalSeats)
			t.AvailableSeats = &v
		}
		if r.WaitingList != nil {
			v := *r.WaitingList
			if v < 0 {
				v = 0
			}
			t.WaitingList = &v
		}

		trains = append(trains, t)
	}
	return trains
}

// NormalizeStops converts a provider schedule into stops, linking each halt
// to a catalog station when its code is known.
func NormalizeStops(schedule *provider.IRTrainSchedule, stations []Station) []Stop {
	if schedule == nil {
		return []Stop{}
	}
	byCode := indexByCode(stations)
	stops := make([]Stop, 0, len(schedule.Stations))

	for _, s := range schedule.Stations {
		stop := Stop{
			StationCode: s.StationCode,
			StationName: s.StationName,
			Station:     byCode[s.StationCode],
			Arrival:     s.ArrivalTime,
			Departure:   s.DepartureTime,
			Day:         s.Day,
			Distance:    s.Distance,
		}
		if s.Platform != nil {
			p := *s.Platform
			stop.Platform = &p
		}
		if s.HaltTime != "" {
			h := s.HaltTime
			stop.HaltDuration = &h
		}
		stops = append(stops, stop)
	}
	return stops
}

func indexByCode(stations []Station) map[string]*Station {
	byCode := make(map[string]*Station, len(stations))
	for i := range stations {
		if _, ok := byCode[stations[i].Code]; !ok {
			byCode[stations[i].Code] = &stations[i]
		}
	}
	return byCode
}

// numericID returns a positive train number as an id, or 0
func numericID(number string) int {
	if n, err := strconv.Atoi(strings.TrimSpace(number)); err == nil && n > 0 {
		return n
	}
	return 0
}

// idSet hands out unique ids within one normalization pass. Provider and
// numeric ids are claimed first; positional entries then take their offset
// or the next id nobody holds.
type idSet map[int]struct{}

func newIDSet(size int) idSet { return make(idSet, size) }

// claim reserves id and returns it, or returns 0 when id is not positive or
// already held
func (s idSet) claim(id int) int {
	if id <= 0 {
		return 0
	}
	if _, taken := s[id]; taken {
		return 0
	}
	s[id] = struct{}{}
	return id
}

// next reserves the first free id at or after from
func (s idSet) next(from int) int {
	id := from
	for {
		if _, taken := s[id]; !taken {
			s[id] = struct{}{}
			return id
		}
		id++
	}
}

// travelDuration computes "17h 00m" style durations from HH:MM times. The
// arrival may carry a "+N" day offset; without one an arrival before the
// departure is taken as next day. Unparseable times fall back to the
// provider's own figure.
func travelDuration(departure, arrival, fallback string) string {
	dep, _, ok := parseClock(departure)
	if !ok {
		return fallback
	}
	arr, days, ok := parseClock(arrival)
	if !ok {
		return fallback
	}

	minutes := arr + days*24*60 - dep
	if days == 0 && minutes < 0 {
		minutes += 24 * 60
	}
	return fmt.Sprintf("%dh %02dm", minutes/60, minutes%60)
}

// parseClock parses "HH:MM" with an optional "+N" day suffix into minutes
// after midnight and the day offset
func parseClock(s string) (int, int, bool) {
	s = strings.TrimSpace(s)
	days := 0
	if idx := strings.Index(s, "+"); idx >= 0 {
		d, err := strconv.Atoi(s[idx+1:])
		if err != nil || d < 0 {
			return 0, 0, false
		}
		days = d
		s = s[:idx]
	}

	hh, mm, found := strings.Cut(s, ":")
	if !found {
		return 0, 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h*60 + m, days, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
