package deepgram

import (
	"encoding/json"
	"fmt"
	"strings"

	"pranik/internal/domain"
)

// listenMessage is the part of a live listen frame this client reads.
type listenMessage struct {
	Type        string        `json:"type"`
	Message     string        `json:"message"`
	Description string        `json:"description"`
	IsFinal     bool          `json:"is_final"`
	SpeechFinal bool          `json:"speech_final"`
	Channel     listenChannel `json:"channel"`
	Results     struct {
		Channels []listenChannel `json:"channels"`
	} `json:"results"`
}

type listenChannel struct {
	Alternatives []struct {
		Transcript string `json:"transcript"`
	} `json:"alternatives"`
}

func (c listenChannel) transcript() string {
	if len(c.Alternatives) == 0 {
		return ""
	}
	return strings.TrimSpace(c.Alternatives[0].Transcript)
}

func (m listenMessage) transcript() string {
	if text := m.Channel.transcript(); text != "" {
		return text
	}
	if len(m.Results.Channels) > 0 {
		return m.Results.Channels[0].transcript()
	}
	return ""
}

// decodeListenMessage turns one frame into a transcript event. ok is false
// for frames without text (metadata, speech markers, empty results, noise).
// A provider error frame ends the pass and comes back as err.
func decodeListenMessage(payload []byte) (event domain.TranscriptEvent, ok bool, err error) {
	var message listenMessage
	if json.Unmarshal(payload, &message) != nil {
		return domain.TranscriptEvent{}, false, nil
	}

	switch strings.ToLower(message.Type) {
	case "error":
		reason := firstNonEmpty(message.Message, message.Description)
		if reason == "" {
			reason = "unknown provider error"
		}
		return domain.TranscriptEvent{}, false, fmt.Errorf("deepgram: %s", reason)
	case "metadata", "utteranceend", "speechstarted":
		return domain.TranscriptEvent{}, false, nil
	}

	text := message.transcript()
	if text == "" {
		return domain.TranscriptEvent{}, false, nil
	}

	event = domain.TranscriptEvent{Kind: domain.TranscriptKindPartial, Text: text, IsSpeechFinal: message.SpeechFinal}
	if message.IsFinal || message.SpeechFinal {
		event.Kind = domain.TranscriptKindFinal
	}
	return event, true, nil
}
