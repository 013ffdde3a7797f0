package v1

// TwilioWebhookRequest carries the form fields Twilio posts on every
// inbound WhatsApp message. Media fields are numbered (MediaUrl0..N)
// and read separately in the handler.
type TwilioWebhookRequest struct {
	MessageSid string `form:"MessageSid"`
	From       string `form:"From"`
	WaID       string `form:"WaId"`
	Body       string `form:"Body"`
	NumMedia   int    `form:"NumMedia"`
	Latitude   string `form:"Latitude"`
	Longitude  string `form:"Longitude"`
}
