package client

import (
	"encoding/json"
	"testing"
)

func TestText_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantSet bool
		wantVal string
	}{
		{"string", `{"v":"Boston"}`, true, "Boston"},
		{"empty string", `{"v":""}`, true, ""},
		{"number", `{"v":42}`, true, "42"},
		{"bool", `{"v":true}`, true, "true"},
		{"null", `{"v":null}`, false, ""},
		{"object", `{"v":{"a":1}}`, false, ""},
		{"array", `{"v":[1,2]}`, false, ""},
		{"missing", `{}`, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc struct {
				V Text `json:"v"`
			}
			if err := json.Unmarshal([]byte(tt.in), &doc); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if doc.V.Set != tt.wantSet || doc.V.Value != tt.wantVal {
				t.Errorf("Text = %+v, want Set=%v Value=%q", doc.V, tt.wantSet, tt.wantVal)
			}
		})
	}
}

func TestText_Or(t *testing.T) {
	if got := (Text{}).Or("N/A"); got != "N/A" {
		t.Errorf("unset Or() = %q", got)
	}
	if got := (Text{Value: "  ", Set: true}).Or("N/A"); got != "N/A" {
		t.Errorf("blank Or() = %q", got)
	}
	if got := (Text{Value: "Tonight", Set: true}).Or("N/A"); got != "Tonight" {
		t.Errorf("set Or() = %q", got)
	}
}

func TestPointProperties_MissingLocation(t *testing.T) {
	tests := []string{
		`{"properties":{"forecast":"u"}}`,
		`{"properties":{"forecast":"u","relativeLocation":null}}`,
		`{"properties":{"forecast":"u","relativeLocation":{}}}`,
		`{"properties":{"forecast":"u","relativeLocation":{"properties":{"city":"Boston"}}}}`,
	}
	for _, in := range tests {
		var resp PointResponse
		if err := json.Unmarshal([]byte(in), &resp); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", in, err)
		}
		if resp.Properties.State() != "" {
			t.Errorf("State() = %q for %s, want empty", resp.Properties.State(), in)
		}
	}
	var nilProps *PointProperties
	if nilProps.City() != "" {
		t.Error("City() on nil properties should be empty")
	}
}

func TestForecastProperties_PeriodList(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantOK  bool
		wantLen int
	}{
		{"array", `{"periods":[{"name":"Today"},{"name":"Tonight"}]}`, true, 2},
		{"empty array", `{"periods":[]}`, true, 0},
		{"missing", `{}`, false, 0},
		{"null", `{"periods":null}`, false, 0},
		{"object", `{"periods":{"name":"Today"}}`, false, 0},
		{"string", `{"periods":"none"}`, false, 0},
		{"non-object entries", `{"periods":[1,"x",{"name":"Today"}]}`, true, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var props ForecastProperties
			if err := json.Unmarshal([]byte(tt.in), &props); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			periods, ok := props.PeriodList()
			if ok != tt.wantOK || len(periods) != tt.wantLen {
				t.Errorf("PeriodList() = %d entries, ok=%v; want %d, ok=%v", len(periods), ok, tt.wantLen, tt.wantOK)
			}
		})
	}
}

func TestForecastProperties_PeriodList_NonObjectEntryIsZero(t *testing.T) {
	var props ForecastProperties
	_ = json.Unmarshal([]byte(`{"periods":[42]}`), &props)
	periods, ok := props.PeriodList()
	if !ok || len(periods) != 1 {
		t.Fatalf("PeriodList() = %+v, %v", periods, ok)
	}
	if periods[0].Name.Set || periods[0].DetailedForecast.Set {
		t.Errorf("non-object entry decoded as %+v, want zero Period", periods[0])
	}
}
