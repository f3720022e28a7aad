// Package globalid implements relay-style opaque identifiers: the entity
// type name and the raw primary key are joined and base64-encoded so clients
// never see (or fabricate) raw keys.
package globalid

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
)

var ErrInvalid = errors.New("invalid_global_id")

// Encode builds the opaque identifier for an entity.
func Encode(typ string, id int64) string {
	raw := typ + ":" + strconv.FormatInt(id, 10)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// Decode splits an opaque identifier into its type name and raw key.
func Decode(value string) (string, int64, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(value))
	if err != nil {
		return "", 0, ErrInvalid
	}
	typ, idPart, ok := strings.Cut(string(raw), ":")
	if !ok || typ == "" {
		return "", 0, ErrInvalid
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id == 0 {
		return "", 0, ErrInvalid
	}
	return typ, id, nil
}

// DecodeID decodes an identifier, discarding the type name. Callers that
// look entities up by primary key use this form.
func DecodeID(value string) (int64, error) {
	_, id, err := Decode(value)
	return id, err
}
