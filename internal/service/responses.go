package service

// Reply is what the webhook workflow hands back to the transport layer,
// which renders it as TwiML.
type Reply struct {
	Messages []ReplyMessage
}

type ReplyMessage struct {
	Body      string
	MediaURLs []string
}

func (r *Reply) Add(body string) {
	r.Messages = append(r.Messages, ReplyMessage{Body: body})
}

func (r *Reply) AddWithMedia(body string, mediaURLs ...string) {
	r.Messages = append(r.Messages, ReplyMessage{Body: body, MediaURLs: mediaURLs})
}

type StatusReport struct {
	Service string `json:"service"`
	Uptime  string `json:"uptime,omitempty"`
	Flights int64  `json:"flights"`
	Hotels  int64  `json:"hotels"`
}
