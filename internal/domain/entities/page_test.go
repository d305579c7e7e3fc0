package entities

import (
	"encoding/json"
	"testing"
)

func TestPage_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantCount int
		wantCodes []string
		wantNext  string
	}{
		{
			name:      "bare array",
			input:     `[{"product_code":"A"},{"product_code":"B"}]`,
			wantCount: 2,
			wantCodes: []string{"A", "B"},
		},
		{
			name:      "paginated",
			input:     `{"count":41,"next":"http://h/api/products/?page=2","previous":null,"results":[{"product_code":"A"}]}`,
			wantCount: 41,
			wantCodes: []string{"A"},
			wantNext:  "http://h/api/products/?page=2",
		},
		{
			name:      "results without count",
			input:     `{"results":[{"product_code":"A"},{"product_code":"B"},{"product_code":"C"}]}`,
			wantCount: 3,
			wantCodes: []string{"A", "B", "C"},
		},
		{
			name:      "empty object from a tolerated body",
			input:     `{}`,
			wantCount: 0,
		},
		{
			name:      "empty array",
			input:     ` [] `,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var page Page[Product]
			if err := json.Unmarshal([]byte(tt.input), &page); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if page.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", page.Count, tt.wantCount)
			}
			if len(page.Results) != len(tt.wantCodes) {
				t.Fatalf("len(Results) = %d, want %d", len(page.Results), len(tt.wantCodes))
			}
			for i, code := range tt.wantCodes {
				if page.Results[i].ProductCode != code {
					t.Errorf("Results[%d].ProductCode = %q, want %q", i, page.Results[i].ProductCode, code)
				}
			}
			if page.Next != tt.wantNext {
				t.Errorf("Next = %q, want %q", page.Next, tt.wantNext)
			}
			if page.HasMore() != (tt.wantNext != "") {
				t.Errorf("HasMore() = %v", page.HasMore())
			}
		})
	}
}

func TestPage_UnmarshalJSONErrors(t *testing.T) {
	for _, input := range []string{`"nope"`, `[1,2]`, `{"results":"x"}`} {
		var page Page[Product]
		if err := json.Unmarshal([]byte(input), &page); err == nil {
			t.Errorf("Unmarshal(%s) error = nil, want error", input)
		}
	}
}
