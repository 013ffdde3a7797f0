package flightinfo

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

type FlightRecord struct {
	FlightDate   string  `json:"flight_date"`
	FlightStatus string  `json:"flight_status"`
	Departure    Airport `json:"departure"`
	Arrival      Airport `json:"arrival"`
	Airline      Named   `json:"airline"`
	Flight       Named   `json:"flight"`
}

type Airport struct {
	Airport   string `json:"airport"`
	IATA      string `json:"iata"`
	Scheduled string `json:"scheduled"`
	Estimated string `json:"estimated"`
	Terminal  string `json:"terminal"`
	Gate      string `json:"gate"`
	Delay     int    `json:"delay"`
}

type Named struct {
	Name string `json:"name"`
	IATA string `json:"iata"`
}

// Snapshot is the subset of a flight record whose changes are worth
// alerting a traveler about.
type Snapshot struct {
	FlightIATA   string `json:"flight_iata"`
	FlightDate   string `json:"flight_date"`
	Status       string `json:"status"`
	DepAirport   string `json:"dep_airport"`
	DepIATA      string `json:"dep_iata"`
	DepScheduled string `json:"dep_scheduled"`
	DepEstimated string `json:"dep_estimated"`
	DepTerminal  string `json:"dep_terminal"`
	DepGate      string `json:"dep_gate"`
	DepDelay     int    `json:"dep_delay"`
	ArrAirport   string `json:"arr_airport"`
	ArrIATA      string `json:"arr_iata"`
	ArrScheduled string `json:"arr_scheduled"`
	ArrEstimated string `json:"arr_estimated"`
	Airline      string `json:"airline"`
}

func NewSnapshot(rec FlightRecord) Snapshot {
	return Snapshot{
		FlightIATA:   rec.Flight.IATA,
		FlightDate:   rec.FlightDate,
		Status:       rec.FlightStatus,
		DepAirport:   rec.Departure.Airport,
		DepIATA:      rec.Departure.IATA,
		DepScheduled: rec.Departure.Scheduled,
		DepEstimated: rec.Departure.Estimated,
		DepTerminal:  rec.Departure.Terminal,
		DepGate:      rec.Departure.Gate,
		DepDelay:     rec.Departure.Delay,
		ArrAirport:   rec.Arrival.Airport,
		ArrIATA:      rec.Arrival.IATA,
		ArrScheduled: rec.Arrival.Scheduled,
		ArrEstimated: rec.Arrival.Estimated,
		Airline:      rec.Airline.Name,
	}
}

// Hash is stable across identical snapshots; a changed hash means the
// flight moved in a way the watcher should hear about.
func (s Snapshot) Hash() string {
	data, _ := json.Marshal(s)
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

func (s Snapshot) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "✈️ %s %s\n", s.FlightIATA, s.FlightDate)
	fmt.Fprintf(&b, "Status: %s\n", s.Status)
	fmt.Fprintf(&b, "%s (%s) → %s (%s)\n", s.DepAirport, s.DepIATA, s.ArrAirport, s.ArrIATA)

	if s.DepEstimated != "" && s.DepEstimated != s.DepScheduled {
		fmt.Fprintf(&b, "Departure: %s (was %s)\n", s.DepEstimated, s.DepScheduled)
	} else if s.DepScheduled != "" {
		fmt.Fprintf(&b, "Departure: %s\n", s.DepScheduled)
	}

	if s.DepTerminal != "" {
		fmt.Fprintf(&b, "Terminal %s", s.DepTerminal)
		if s.DepGate != "" {
			fmt.Fprintf(&b, " gate %s", s.DepGate)
		}
		b.WriteString("\n")
	}

	if s.DepDelay > 0 {
		fmt.Fprintf(&b, "Delay: %d min\n", s.DepDelay)
	}

	if s.Airline != "" {
		fmt.Fprintf(&b, "Airline: %s", s.Airline)
	}

	return strings.TrimRight(b.String(), "\n")
}
