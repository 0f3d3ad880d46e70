package client

import (
	"bytes"
	"encoding/json"
	"strings"
)

// PointResponse is the decoded body of GET /points/{lat},{lon}. Every field is
// optional; a nil pointer means the key was absent or null.
type PointResponse struct {
	Properties *PointProperties `json:"properties"`
}

// PointProperties holds the fields of the points metadata this service reads.
type PointProperties struct {
	Forecast         Text              `json:"forecast"`
	RelativeLocation *RelativeLocation `json:"relativeLocation"`
}

// RelativeLocation is the nearest named place to the requested point.
type RelativeLocation struct {
	Properties *struct {
		City  Text `json:"city"`
		State Text `json:"state"`
	} `json:"properties"`
}

// City returns the city label or "" when absent.
func (p *PointProperties) City() string {
	if p == nil || p.RelativeLocation == nil || p.RelativeLocation.Properties == nil {
		return ""
	}
	return p.RelativeLocation.Properties.City.Value
}

// State returns the state label or "" when absent.
func (p *PointProperties) State() string {
	if p == nil || p.RelativeLocation == nil || p.RelativeLocation.Properties == nil {
		return ""
	}
	return p.RelativeLocation.Properties.State.Value
}

// ForecastResponse is the decoded body of the forecast-detail endpoint.
type ForecastResponse struct {
	Properties *ForecastProperties `json:"properties"`
}

// ForecastProperties keeps periods raw so a non-array value can be told apart
// from a decode failure.
type ForecastProperties struct {
	Updated Text            `json:"updated"`
	Periods json.RawMessage `json:"periods"`
}

// Period is one entry of the periods array.
type Period struct {
	Name             Text `json:"name"`
	DetailedForecast Text `json:"detailedForecast"`
}

// PeriodList decodes Periods. ok is false when periods is missing, null or not an array.
// Entries that are not objects decode as a zero Period.
func (p *ForecastProperties) PeriodList() (periods []Period, ok bool) {
	if p == nil {
		return nil, false
	}
	raw := bytes.TrimSpace(p.Periods)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false
	}
	periods = make([]Period, len(entries))
	for i, e := range entries {
		if err := json.Unmarshal(e, &periods[i]); err != nil {
			periods[i] = Period{}
		}
	}
	return periods, true
}

// Text is a lenient string field. Strings, numbers and booleans decode to their
// text; null, objects and arrays leave it unset. It never fails to decode.
type Text struct {
	Value string
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = Text{}
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*t = Text{Value: s, Set: true}
	case 'n', '{', '[':
		// null, object, array
	default:
		*t = Text{Value: string(data), Set: true}
	}
	return nil
}

// Or returns the value, or def when unset or blank.
func (t Text) Or(def string) string {
	if !t.Set || strings.TrimSpace(t.Value) == "" {
		return def
	}
	return t.Value
}
