package credential

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrRecordCorrupt is returned when a stored record blob cannot be decoded
// or fails the token-presence invariant.
var ErrRecordCorrupt = errors.New("credential record corrupt")

// Encode serializes a record for the token store.
func Encode(rec *Record) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", ErrRecordCorrupt)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordCorrupt, err)
	}
	return data, nil
}

// Decode deserializes a stored record blob. A blob missing either token
// violates the record invariant and is rejected rather than silently
// defaulted.
func Decode(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecordCorrupt, err)
	}
	if rec.AccessToken == "" || rec.RefreshToken == "" {
		return nil, fmt.Errorf("%w: missing token pair", ErrRecordCorrupt)
	}
	if !rec.Provider.Known() {
		return nil, fmt.Errorf("%w: provider %q", ErrRecordCorrupt, rec.Provider)
	}
	return &rec, nil
}
