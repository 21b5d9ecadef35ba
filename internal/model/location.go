package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// UnmarshalJSON accepts lat/lng as numbers or numeric strings. Older rows
// were written by clients that sent coordinates as text. A coordinate that
// does not parse reads as 0.
func (l *Location) UnmarshalJSON(data []byte) error {
	var raw struct {
		Lat     json.RawMessage `json:"lat"`
		Lng     json.RawMessage `json:"lng"`
		Address string          `json:"address"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Lat, l.Lng, l.Address = looseFloat(raw.Lat), looseFloat(raw.Lng), raw.Address
	return nil
}

func looseFloat(raw json.RawMessage) float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	return f
}

// ParseLocation decodes a JSONB column value. A nil or empty column yields nil.
func ParseLocation(data []byte) (*Location, error) {
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	var loc Location
	if err := json.Unmarshal(data, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// Bytes encodes the location for a JSONB column; nil encodes as SQL NULL.
func (l *Location) Bytes() ([]byte, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}
