package twilio

import (
	"bytes"
	"encoding/xml"
)

// SafeChunk is the largest message body Twilio reliably delivers over
// WhatsApp without truncation.
const SafeChunk = 1500

type MessagingResponse struct {
	XMLName  xml.Name       `xml:"Response"`
	Messages []TwiMLMessage `xml:"Message"`
}

type TwiMLMessage struct {
	Body  string   `xml:"Body,omitempty"`
	Media []string `xml:"Media,omitempty"`
}

func (r *MessagingResponse) Message(body string) {
	r.Messages = append(r.Messages, TwiMLMessage{Body: body})
}

func (r *MessagingResponse) MessageWithMedia(body string, mediaURLs ...string) {
	r.Messages = append(r.Messages, TwiMLMessage{Body: body, Media: mediaURLs})
}

func (r *MessagingResponse) Render() (string, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(r); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// ChunkText splits a reply into SafeChunk-sized segments. Empty input
// still produces a single empty segment so the caller always has a
// message to attach.
func ChunkText(s string) []string {
	if s == "" {
		return []string{""}
	}

	var chunks []string
	runes := []rune(s)
	for start := 0; start < len(runes); start += SafeChunk {
		end := start + SafeChunk
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
