package assistant_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tripline/travel-services/wagateway/pkg/assistant"
	"github.com/tripline/travel-services/wagateway/pkg/mocks"
)

func enabledConfig() assistant.Config {
	return assistant.Config{
		Enable:       true,
		BaseURL:      "https://api.openai.test",
		APIKey:       "sk-test",
		Model:        "gpt-4o-mini",
		SystemPrompt: "You are a concise, helpful WhatsApp assistant.",
		Timeout:      30 * time.Second,
	}
}

func completionBody(content string) string {
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	out, _ := json.Marshal(payload)
	return string(out)
}

func TestClient_Chat(t *testing.T) {
	endpoint := "https://api.openai.test/v1/chat/completions"

	t.Run("returns model reply", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		a := assistant.NewClient(enabledConfig(), mockClient)

		response := &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(completionBody("Bangkok is lovely in September."))),
		}

		mockClient.On("Post", context.Background(), endpoint, mock.Anything,
			mock.MatchedBy(func(headers map[string]string) bool {
				return headers["Authorization"] == "Bearer sk-test"
			})).Return(response, nil)

		reply, err := a.Chat(context.Background(), nil, "tell me about Bangkok")
		require.NoError(t, err)
		assert.Equal(t, "Bangkok is lovely in September.", reply)

		mockClient.AssertExpectations(t)
	})

	t.Run("disabled client refuses", func(t *testing.T) {
		cfg := enabledConfig()
		cfg.Enable = false
		a := assistant.NewClient(cfg, &mocks.HTTPClient{})

		_, err := a.Chat(context.Background(), nil, "hi")
		assert.ErrorIs(t, err, assistant.ErrDisabled)
	})

	t.Run("maps non-200 to server error", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		a := assistant.NewClient(enabledConfig(), mockClient)

		response := &http.Response{StatusCode: 429, Body: io.NopCloser(strings.NewReader("{}"))}
		mockClient.On("Post", mock.Anything, endpoint, mock.Anything, mock.Anything).
			Return(response, nil)

		_, err := a.Chat(context.Background(), nil, "hi")
		assert.ErrorIs(t, err, assistant.ErrServerError)
	})

	t.Run("empty choices is an error", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		a := assistant.NewClient(enabledConfig(), mockClient)

		response := &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(`{"choices": []}`))}
		mockClient.On("Post", mock.Anything, endpoint, mock.Anything, mock.Anything).
			Return(response, nil)

		_, err := a.Chat(context.Background(), nil, "hi")
		assert.ErrorIs(t, err, assistant.ErrEmptyReply)
	})
}

func TestClient_Route(t *testing.T) {
	endpoint := "https://api.openai.test/v1/chat/completions"

	t.Run("parses route json", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		a := assistant.NewClient(enabledConfig(), mockClient)

		routed := `{"type": "flight_status", "params": {"iata": "LY81"}}`
		response := &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(completionBody(routed)))}
		mockClient.On("Post", mock.Anything, endpoint, mock.Anything, mock.Anything).
			Return(response, nil)

		result, err := a.Route(context.Background(), "what's up with LY81?")
		require.NoError(t, err)
		assert.Equal(t, "flight_status", result.Type)
		assert.Equal(t, "LY81", result.Params["iata"])
	})

	t.Run("tolerates code fences", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		a := assistant.NewClient(enabledConfig(), mockClient)

		fenced := "```json\n{\"type\": \"list_flights\", \"params\": {}}\n```"
		response := &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(completionBody(fenced)))}
		mockClient.On("Post", mock.Anything, endpoint, mock.Anything, mock.Anything).
			Return(response, nil)

		result, err := a.Route(context.Background(), "my flights")
		require.NoError(t, err)
		assert.Equal(t, "list_flights", result.Type)
	})

	t.Run("garbage collapses to none", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		a := assistant.NewClient(enabledConfig(), mockClient)

		response := &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(completionBody("I cannot help with that")))}
		mockClient.On("Post", mock.Anything, endpoint, mock.Anything, mock.Anything).
			Return(response, nil)

		result, err := a.Route(context.Background(), "??")
		require.NoError(t, err)
		assert.Equal(t, "none", result.Type)
	})
}

func TestClient_ExtractBooking(t *testing.T) {
	endpoint := "https://api.openai.test/v1/chat/completions"

	t.Run("parses flights and hotels", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		a := assistant.NewClient(enabledConfig(), mockClient)

		extracted := `{
			"flights": [{"origin": "TLV", "dest": "BKK", "depart_date": "2025-09-08", "depart_time": "10:00", "airline": "El Al", "flight_number": "LY81", "pnr": "ABC123"}],
			"hotels": [{"hotel_name": "Riverside", "city": "Bangkok", "checkin_date": "2025-09-09", "checkout_date": "2025-09-14"}]
		}`
		response := &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(completionBody(extracted)))}
		mockClient.On("Post", mock.Anything, endpoint, mock.Anything, mock.Anything).
			Return(response, nil)

		result, err := a.ExtractBooking(context.Background(), "itinerary text")
		require.NoError(t, err)
		require.Len(t, result.Flights, 1)
		require.Len(t, result.Hotels, 1)
		assert.Equal(t, "LY81", result.Flights[0].FlightNumber)
		assert.Equal(t, "Riverside", result.Hotels[0].HotelName)
	})

	t.Run("image extraction posts image part", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		a := assistant.NewClient(enabledConfig(), mockClient)

		response := &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(completionBody(`{"flights": [], "hotels": []}`))),
		}

		mockClient.On("Post", mock.Anything, endpoint,
			mock.MatchedBy(func(body io.Reader) bool {
				raw, err := io.ReadAll(body)
				if err != nil {
					return false
				}
				return strings.Contains(string(raw), "https://media.test/img1")
			}), mock.Anything).Return(response, nil)

		_, err := a.ExtractBookingFromImage(context.Background(), "https://media.test/img1", "boarding pass")
		require.NoError(t, err)

		mockClient.AssertExpectations(t)
	})
}
