package twilio

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/tripline/travel-services/wagateway/pkg/httpclient"
)

const messagesEndpoint = "/2010-04-01/Accounts/%s/Messages.json"

type Client interface {
	SendWhatsApp(ctx context.Context, toWaID string, body string, mediaURLs []string) (SendResponse, error)
	DownloadMedia(ctx context.Context, mediaURL string) ([]byte, string, error)
}

type SendResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type client struct {
	cfg        Config
	httpClient httpclient.HTTPClient
}

func NewClient(cfg Config, httpClient httpclient.HTTPClient) Client {
	return &client{cfg: cfg, httpClient: httpClient}
}

func (c *client) SendWhatsApp(ctx context.Context, toWaID string, body string, mediaURLs []string) (SendResponse, error) {
	form := url.Values{}
	form.Set("From", ensureWhatsAppPrefix(c.cfg.WhatsAppFrom))
	form.Set("To", ensureWhatsAppPrefix(toWaID))
	form.Set("Body", body)
	for _, mediaURL := range mediaURLs {
		form.Add("MediaUrl", mediaURL)
	}

	endpoint := c.cfg.BaseURL + fmt.Sprintf(messagesEndpoint, c.cfg.AccountSID)

	resp, err := c.httpClient.PostForm(ctx, endpoint, form, c.authHeader())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return SendResponse{}, ErrTimeout
		}

		return SendResponse{}, ErrNetworkError
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return SendResponse{}, mapStatusToError(resp.StatusCode)
	}

	var response SendResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return SendResponse{}, ErrServerError
	}

	return response, nil
}

func (c *client) DownloadMedia(ctx context.Context, mediaURL string) ([]byte, string, error) {
	resp, err := c.httpClient.Get(ctx, mediaURL, c.authHeader())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, "", ErrTimeout
		}

		return nil, "", ErrNetworkError
	}

	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, "", mapStatusToError(resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", ErrNetworkError
	}

	return data, resp.Header.Get("Content-Type"), nil
}

func (c *client) authHeader() map[string]string {
	creds := base64.StdEncoding.EncodeToString([]byte(c.cfg.AccountSID + ":" + c.cfg.AuthToken))
	return map[string]string{"Authorization": "Basic " + creds}
}

// NormalizeWaID strips the whatsapp: scheme and any leading plus so
// identifiers compare equal regardless of which form Twilio sent.
func NormalizeWaID(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "whatsapp:")
	return strings.TrimPrefix(s, "+")
}

func ensureWhatsAppPrefix(s string) string {
	if strings.HasPrefix(s, "whatsapp:") {
		return s
	}
	if strings.HasPrefix(s, "+") {
		return "whatsapp:" + s
	}
	return "whatsapp:+" + s
}
