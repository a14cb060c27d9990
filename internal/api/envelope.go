package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// envelope matches the backend's wrapped response shape. Some endpoints
// return `{ "data": … }`, others return the payload bare; all responses
// are normalized here, at the single deserialization boundary.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// decodePayload unmarshals a response body into out, accepting both the
// wrapped and the bare shape. Bodies matching neither are rejected.
func decodePayload(body []byte, out interface{}) error {
	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("unexpected response shape inside data envelope: %w", err)
		}
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("unexpected response shape: %w", err)
	}
	return nil
}

// serverMessage extracts the backend's error string so it can be surfaced
// verbatim. Falls back to the raw body.
func serverMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Error != "" {
			return env.Error
		}
		if env.Message != "" {
			return env.Message
		}
	}
	s := string(body)
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
