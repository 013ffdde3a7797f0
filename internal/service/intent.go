package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/tripline/travel-services/wagateway/pkg/assistant"
	"go.uber.org/zap"
)

const (
	IntentListFlights       = "list_flights"
	IntentListPersonFlights = "list_person_flights"
	IntentFlightDetails     = "flight_details"
	IntentFlightStatus      = "flight_status"
	IntentTrackFlight       = "track_flight"
	IntentUntrackFlight     = "untrack_flight"
	IntentWatchList         = "watch_list"
	IntentSendLastTicket    = "send_last_ticket"
	IntentNone              = "none"
)

type Intent struct {
	Type   string
	Params map[string]string
}

type IntentRouter interface {
	Route(ctx context.Context, text string) Intent
}

var (
	reListFlights   = regexp.MustCompile(`(?i)^(my flights|list flights|what (?:are )?my flights|upcoming flights)\b`)
	rePersonFlights = regexp.MustCompile(`(?i)^flights (?:of|for) (\S+)`)
	reDetails       = regexp.MustCompile(`(?i)^(flight )?details\b`)
	reStatus        = regexp.MustCompile(`(?i)^status\s+([A-Za-z]{1,3}\s?\d{1,4})\b`)
	reTrack         = regexp.MustCompile(`(?i)^track\s+([A-Za-z]{1,3}\s?\d{1,4})(?:\s+(\d{4}-\d{2}-\d{2}))?`)
	reUntrack       = regexp.MustCompile(`(?i)^untrack(?:\s+([A-Za-z]{1,3}\s?\d{1,4}))?`)
	reWatchList     = regexp.MustCompile(`(?i)^(watch list|watches|tracked flights)\b`)
	reTicket        = regexp.MustCompile(`(?i)(send .*ticket|last ticket|my ticket)\b`)
)

type intentRouter struct {
	assistant assistant.Assistant
	logger    *zap.Logger
}

func NewIntentRouter(assistant assistant.Assistant, logger *zap.Logger) IntentRouter {
	return &intentRouter{assistant: assistant, logger: logger}
}

// Route tries cheap regex patterns first and only asks the assistant to
// classify when nothing matches.
func (r *intentRouter) Route(ctx context.Context, text string) Intent {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Intent{Type: IntentNone}
	}

	if m := rePersonFlights.FindStringSubmatch(trimmed); m != nil {
		return Intent{Type: IntentListPersonFlights, Params: map[string]string{"person": m[1]}}
	}

	if reListFlights.MatchString(trimmed) {
		return Intent{Type: IntentListFlights}
	}

	if reDetails.MatchString(trimmed) {
		return Intent{Type: IntentFlightDetails, Params: map[string]string{"scope": "latest"}}
	}

	if m := reStatus.FindStringSubmatch(trimmed); m != nil {
		return Intent{Type: IntentFlightStatus, Params: map[string]string{"iata": normalizeIATA(m[1])}}
	}

	if m := reTrack.FindStringSubmatch(trimmed); m != nil {
		params := map[string]string{"iata": normalizeIATA(m[1])}
		if m[2] != "" {
			params["date"] = m[2]
		}
		return Intent{Type: IntentTrackFlight, Params: params}
	}

	if reWatchList.MatchString(trimmed) {
		return Intent{Type: IntentWatchList}
	}

	if m := reUntrack.FindStringSubmatch(trimmed); m != nil {
		params := map[string]string{}
		if m[1] != "" {
			params["iata"] = normalizeIATA(m[1])
		}
		return Intent{Type: IntentUntrackFlight, Params: params}
	}

	if reTicket.MatchString(trimmed) {
		return Intent{Type: IntentSendLastTicket}
	}

	return r.routeViaAssistant(ctx, trimmed)
}

func (r *intentRouter) routeViaAssistant(ctx context.Context, text string) Intent {
	result, err := r.assistant.Route(ctx, text)
	if err != nil {
		if err != assistant.ErrDisabled {
			r.logger.Debug("Assistant routing failed, treating as chat", zap.Error(err))
		}
		return Intent{Type: IntentNone}
	}

	switch result.Type {
	case IntentListFlights, IntentFlightDetails, IntentFlightStatus,
		IntentTrackFlight, IntentUntrackFlight, IntentSendLastTicket:
		return Intent{Type: result.Type, Params: result.Params}
	default:
		return Intent{Type: IntentNone}
	}
}

func normalizeIATA(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, " ", ""))
}
