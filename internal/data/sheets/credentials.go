package sheets

import (
	"bytes"
	"encoding/json"
	"errors"
)

// RepairCredentialJSON recovers a service-account key that was mangled
// during copy-paste into a secrets store. Two repairs are attempted in
// order: stripping stray control characters, then re-escaping raw
// newlines that ended up inside string literals (typically the private
// key). A key that cannot be repaired is rejected.
func RepairCredentialJSON(raw []byte) ([]byte, error) {
	if json.Valid(raw) {
		return raw, nil
	}

	cleaned := bytes.ReplaceAll(raw, []byte("\r"), nil)
	cleaned = bytes.ReplaceAll(cleaned, []byte("\t"), nil)
	if json.Valid(cleaned) {
		return cleaned, nil
	}

	reescaped := reescapeNewlinesInStrings(cleaned)
	if json.Valid(reescaped) {
		return reescaped, nil
	}

	return nil, errors.New("credential JSON could not be repaired; re-paste the service account key without extra whitespace")
}

// reescapeNewlinesInStrings replaces raw newline bytes that occur
// inside JSON string literals with the \n escape sequence.
func reescapeNewlinesInStrings(raw []byte) []byte {
	var out bytes.Buffer
	inString := false
	escaped := false

	for _, b := range raw {
		switch {
		case escaped:
			escaped = false
		case b == '\\' && inString:
			escaped = true
		case b == '"':
			inString = !inString
		case b == '\n' && inString:
			out.WriteString(`\n`)
			continue
		}
		out.WriteByte(b)
	}
	return out.Bytes()
}
