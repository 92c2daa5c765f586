package engine

import (
	"encoding/json"
	"fmt"
)

// TextContent is one content item of a tool response envelope.
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Envelope is the standard tool response: a list of content items plus
// an error marker. Every tool entry point returns one; pipeline
// failures are converted here and never escape as faults.
type Envelope struct {
	Content []TextContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// Text returns the concatenated text of the envelope's content items.
func (e Envelope) Text() string {
	var out string
	for _, c := range e.Content {
		out += c.Text
	}
	return out
}

// resultEnvelope marshals a payload into a success envelope. Marshal
// errors become error envelopes; payloads are plain structs, so this
// only triggers on programming mistakes.
func resultEnvelope(payload interface{}) Envelope {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errorEnvelope(fmt.Errorf("encode result: %w", err))
	}
	return Envelope{Content: []TextContent{{Type: "text", Text: string(data)}}}
}

// errorEnvelope converts any pipeline error into the standard error
// envelope. No partial results accompany an error.
func errorEnvelope(err error) Envelope {
	return Envelope{
		Content: []TextContent{{Type: "text", Text: "error: " + err.Error()}},
		IsError: true,
	}
}
