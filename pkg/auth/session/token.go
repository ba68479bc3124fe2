package session

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Refresh tokens are opaque to clients: base64(userID.sessionID.secret).

func encodeRefreshToken(userID, sessionID, secret string) string {
	raw := strings.Join([]string{userID, sessionID, secret}, ".")
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeRefreshToken(token string) (userID, sessionID, secret string, err error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", "", "", fmt.Errorf("decoding refresh token: %w", err)
	}
	parts := strings.Split(string(raw), ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf("malformed refresh token")
	}
	return parts[0], parts[1], parts[2], nil
}

// Session values pack the secret and the current access id together.

func sessionValue(secret, accessID string) string {
	return secret + "|" + accessID
}

func splitSessionValue(value string) (secret, accessID string) {
	parts := strings.SplitN(value, "|", 2)
	if len(parts) != 2 {
		return value, ""
	}
	return parts[0], parts[1]
}
