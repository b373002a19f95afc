package classifier

import (
	"testing"

	"github.com/SeakMengs/DocCollect/internal/constant"
)

func TestNormalize(t *testing.T) {
	candidates := []Candidate{
		{ID: "item-1", Title: "Resume"},
		{ID: "item-2", Title: "Transcript"},
	}

	tests := []struct {
		name       string
		raw        string
		wantStatus constant.FileStatus
		wantItemID string
	}{
		{name: "exact id", raw: "item-2", wantStatus: constant.FileStatusUploaded, wantItemID: "item-2"},
		{name: "id with whitespace and quotes", raw: "  \"item-1\"\n", wantStatus: constant.FileStatusUploaded, wantItemID: "item-1"},
		{name: "unclassified literal", raw: "unclassified", wantStatus: constant.FileStatusUnclassified},
		{name: "unclassified any case", raw: "Unclassified.", wantStatus: constant.FileStatusUnclassified},
		{name: "hallucinated id", raw: "item-99", wantStatus: constant.FileStatusUnclassified},
		{name: "title instead of id", raw: "Resume", wantStatus: constant.FileStatusUnclassified},
		{name: "empty answer", raw: "", wantStatus: constant.FileStatusUnclassified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, candidates)
			if got.Status != tt.wantStatus {
				t.Errorf("Normalize(%q) status = %s, want %s", tt.raw, got.Status, tt.wantStatus)
			}
			if tt.wantItemID == "" {
				if got.ItemID != nil {
					t.Errorf("Normalize(%q) item id = %s, want nil", tt.raw, *got.ItemID)
				}
				return
			}
			if got.ItemID == nil || *got.ItemID != tt.wantItemID {
				t.Errorf("Normalize(%q) item id = %v, want %s", tt.raw, got.ItemID, tt.wantItemID)
			}
		})
	}
}

func TestNormalizeNoCandidates(t *testing.T) {
	got := Normalize("item-1", nil)
	if got.Status != constant.FileStatusUnclassified || got.ItemID != nil {
		t.Errorf("Normalize() with no candidates = %+v, want unclassified", got)
	}
}
