package service

import (
	"encoding/base64"
	"strings"
)

// tokenPrefix versions the page token format.
const tokenPrefix = "v1:"

// encodePageToken returns the opaque token that resumes a listing after
// the record with id lastID.
func encodePageToken(lastID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(tokenPrefix + lastID))
}

// decodePageToken returns the last-seen id carried by token.
// The empty token means "start from the beginning" and decodes to "".
func decodePageToken(token string) (string, error) {
	if token == "" {
		return "", nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", invalidArgument("invalid page token")
	}

	lastID, ok := strings.CutPrefix(string(raw), tokenPrefix)
	if !ok || lastID == "" {
		return "", invalidArgument("invalid page token")
	}

	return lastID, nil
}
