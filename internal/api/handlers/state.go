package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rohits-web03/goalai/internal/utils"
)

var errInvalidState = errors.New("invalid oauth state")

// oauthState is what the Google callback needs to remember across the
// redirect. It travels as "<nonce>.<base64url json>" and is also kept in a
// cookie, so the callback can check it was issued to this browser.
type oauthState struct {
	Flow string `json:"flow"`
}

func (s oauthState) encode() (string, error) {
	nonce, err := utils.NewSessionID()
	if err != nil {
		return "", fmt.Errorf("generate state nonce: %w", err)
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	return nonce + "." + base64.RawURLEncoding.EncodeToString(payload), nil
}

func decodeState(raw string) (oauthState, error) {
	var s oauthState
	nonce, payload, ok := strings.Cut(raw, ".")
	if !ok || !utils.ValidSessionID(nonce) || payload == "" {
		return s, errInvalidState
	}
	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return s, errInvalidState
	}
	if err := json.Unmarshal(decoded, &s); err != nil {
		return s, errInvalidState
	}
	return s, nil
}
