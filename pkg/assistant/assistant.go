package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tripline/travel-services/wagateway/pkg/httpclient"
)

const (
	ErrCodeDisabled     = "ASSISTANT_DISABLED"
	ErrCodeServerError  = "SERVER_ERROR"
	ErrCodeTimeout      = "TIMEOUT"
	ErrCodeNetworkError = "NETWORK_ERROR"
	ErrCodeEmptyReply   = "EMPTY_REPLY"
)

var (
	ErrDisabled     = errors.New(ErrCodeDisabled)
	ErrServerError  = errors.New(ErrCodeServerError)
	ErrTimeout      = errors.New(ErrCodeTimeout)
	ErrNetworkError = errors.New(ErrCodeNetworkError)
	ErrEmptyReply   = errors.New(ErrCodeEmptyReply)
)

const chatCompletionsEndpoint = "/v1/chat/completions"

type Config struct {
	Enable       bool          `mapstructure:"enable"`
	BaseURL      string        `mapstructure:"base_url"`
	APIKey       string        `mapstructure:"api_key"`
	Model        string        `mapstructure:"model"`
	SystemPrompt string        `mapstructure:"system_prompt"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Assistant interface {
	Chat(ctx context.Context, history []Message, userText string) (string, error)
	Route(ctx context.Context, userText string) (RouteResult, error)
	ExtractBooking(ctx context.Context, text string) (BookingExtract, error)
	ExtractBookingFromImage(ctx context.Context, imageURL string, hint string) (BookingExtract, error)
}

type RouteResult struct {
	Type   string            `json:"type"`
	Params map[string]string `json:"params"`
}

type BookingExtract struct {
	Flights []ExtractedFlight `json:"flights"`
	Hotels  []ExtractedHotel  `json:"hotels"`
}

type ExtractedFlight struct {
	Origin       string `json:"origin"`
	Dest         string `json:"dest"`
	DepartDate   string `json:"depart_date"`
	DepartTime   string `json:"depart_time"`
	ArrivalDate  string `json:"arrival_date"`
	ArrivalTime  string `json:"arrival_time"`
	Airline      string `json:"airline"`
	FlightNumber string `json:"flight_number"`
	PNR          string `json:"pnr"`
}

type ExtractedHotel struct {
	HotelName    string `json:"hotel_name"`
	City         string `json:"city"`
	CheckinDate  string `json:"checkin_date"`
	CheckoutDate string `json:"checkout_date"`
	Address      string `json:"address"`
}

type client struct {
	cfg        Config
	httpClient httpclient.HTTPClient
}

func NewClient(cfg Config, httpClient httpclient.HTTPClient) Assistant {
	return &client{cfg: cfg, httpClient: httpClient}
}

func (c *client) Chat(ctx context.Context, history []Message, userText string) (string, error) {
	if !c.cfg.Enable {
		return "", ErrDisabled
	}

	messages := []chatMessage{{Role: "system", Content: c.cfg.SystemPrompt}}

	// keep the last exchanges only; WhatsApp threads grow unbounded
	trimmed := history
	if len(trimmed) > 8 {
		trimmed = trimmed[len(trimmed)-8:]
	}
	for _, m := range trimmed {
		messages = append(messages, chatMessage{Role: m.Role, Content: m.Content})
	}

	messages = append(messages, chatMessage{Role: "user", Content: userText})

	return c.complete(ctx, messages)
}

const routePrompt = `You are an intent router for a travel assistant. ` +
	`Reply with JSON only: {"type": "...", "params": {...}}. Types: ` +
	`list_flights (params: range_days), flight_details (params: scope), ` +
	`flight_status (params: iata), track_flight (params: iata, date), ` +
	`untrack_flight (params: iata), send_last_ticket, none.`

func (c *client) Route(ctx context.Context, userText string) (RouteResult, error) {
	if !c.cfg.Enable {
		return RouteResult{}, ErrDisabled
	}

	messages := []chatMessage{
		{Role: "system", Content: routePrompt},
		{Role: "user", Content: userText},
	}

	raw, err := c.complete(ctx, messages)
	if err != nil {
		return RouteResult{}, err
	}

	var result RouteResult
	if err := json.Unmarshal([]byte(extractJSON(raw)), &result); err != nil {
		return RouteResult{Type: "none"}, nil
	}

	if result.Type == "" {
		result.Type = "none"
	}

	return result, nil
}

const extractPrompt = `Extract every flight and hotel booking from the input. ` +
	`Reply with JSON only: {"flights": [{"origin", "dest", "depart_date", "depart_time", ` +
	`"arrival_date", "arrival_time", "airline", "flight_number", "pnr"}], ` +
	`"hotels": [{"hotel_name", "city", "checkin_date", "checkout_date", "address"}]}. ` +
	`Dates are YYYY-MM-DD, times HH:MM, unknown fields empty strings.`

func (c *client) ExtractBooking(ctx context.Context, text string) (BookingExtract, error) {
	if !c.cfg.Enable {
		return BookingExtract{}, ErrDisabled
	}

	messages := []chatMessage{
		{Role: "system", Content: extractPrompt},
		{Role: "user", Content: text},
	}

	return c.completeExtract(ctx, messages)
}

func (c *client) ExtractBookingFromImage(ctx context.Context, imageURL string, hint string) (BookingExtract, error) {
	if !c.cfg.Enable {
		return BookingExtract{}, ErrDisabled
	}

	content := []contentPart{
		{Type: "text", Text: "Extract the bookings from this document. " + hint},
		{Type: "image_url", ImageURL: &imageRef{URL: imageURL}},
	}

	messages := []chatMessage{
		{Role: "system", Content: extractPrompt},
		{Role: "user", Content: content},
	}

	return c.completeExtract(ctx, messages)
}

func (c *client) completeExtract(ctx context.Context, messages []chatMessage) (BookingExtract, error) {
	raw, err := c.complete(ctx, messages)
	if err != nil {
		return BookingExtract{}, err
	}

	var extract BookingExtract
	if err := json.Unmarshal([]byte(extractJSON(raw)), &extract); err != nil {
		return BookingExtract{}, nil
	}

	return extract, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageRef `json:"image_url,omitempty"`
}

type imageRef struct {
	URL string `json:"url"`
}

type completionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *client) complete(ctx context.Context, messages []chatMessage) (string, error) {
	request := completionRequest{Model: c.cfg.Model, Messages: messages}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return "", fmt.Errorf("encoding error: %w", err)
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + c.cfg.APIKey,
	}

	resp, err := c.httpClient.Post(ctx, c.cfg.BaseURL+chatCompletionsEndpoint, &buf, headers)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", ErrTimeout
		}

		return "", ErrNetworkError
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrServerError
	}

	var response completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", ErrServerError
	}

	if len(response.Choices) == 0 {
		return "", ErrEmptyReply
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

// extractJSON tolerates models wrapping their JSON in code fences or
// prose by cutting to the outermost braces.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return s
	}
	return s[start : end+1]
}
