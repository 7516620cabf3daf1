package model

import (
	"encoding/json"
	"testing"
)

func TestNumberJSON(t *testing.T) {
	tests := []struct {
		raw     string
		value   float64
		numeric bool
	}{
		{`5`, 5, true},
		{`4.5`, 4.5, true},
		{`0`, 0, true},
		{`"4"`, 0, false},
		{`"n/a"`, 0, false},
		{`true`, 0, false},
		{`null`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var n Number
			if err := json.Unmarshal([]byte(tt.raw), &n); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.raw, err)
			}
			v, ok := n.Float()
			if ok != tt.numeric || v != tt.value {
				t.Errorf("Float() = %v, %v, want %v, %v", v, ok, tt.value, tt.numeric)
			}
			out, err := json.Marshal(n)
			if err != nil {
				t.Fatal(err)
			}
			if string(out) != tt.raw {
				t.Errorf("Marshal = %s, want %s", out, tt.raw)
			}
		})
	}
}

func TestNumberText(t *testing.T) {
	if got := Number(`"n/a"`).Text(); got != "n/a" {
		t.Errorf("Text() = %q, want n/a", got)
	}
	if got := NumberOf(4).IntOr(0); got != 4 {
		t.Errorf("IntOr = %d, want 4", got)
	}
	if got := Number("soon").IntOr(-1); got != -1 {
		t.Errorf("IntOr on text = %d, want the default", got)
	}
	out, _ := json.Marshal(Number("soon"))
	if string(out) != `"soon"` {
		t.Errorf("Marshal of plain text = %s, want a JSON string", out)
	}
}
