package firestore

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NormalizeServiceAccount repairs a common deployment quirk: when the
// service-account bundle is pasted through a secrets UI, the private key's
// newlines arrive as literal "\n" sequences and the PEM block fails to parse.
// The bundle is unmarshalled, the private_key field is rewritten with real
// newlines, and the result re-marshalled.
func NormalizeServiceAccount(raw []byte) ([]byte, error) {
	var bundle map[string]any
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, fmt.Errorf("malformed service account json: %w", err)
	}

	key, ok := bundle["private_key"].(string)
	if !ok || key == "" {
		return nil, fmt.Errorf("service account json has no private_key")
	}
	bundle["private_key"] = strings.ReplaceAll(key, `\n`, "\n")

	return json.Marshal(bundle)
}
