package memory

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

func TestRecordToPoint(t *testing.T) {
	rec := Record{
		UserID:     7,
		MemoryText: "User's favorite color is blue",
		Categories: []string{"preferences", "colors"},
		Timestamp:  "2026-03-14 15:09",
		Embedding:  []float32{0.1, 0.2, 0.3},
	}
	id := "a3bb189e-8bf9-3888-9912-ace4e6543002"

	point := recordToPoint(rec, id)

	if point.Id.GetUuid() != id {
		t.Errorf("point id = %q, want %q", point.Id.GetUuid(), id)
	}
	if got := point.Payload["user_id"].GetIntegerValue(); got != 7 {
		t.Errorf("payload user_id = %d, want 7", got)
	}
	if got := point.Payload["memory_text"].GetStringValue(); got != rec.MemoryText {
		t.Errorf("payload memory_text = %q", got)
	}
	if got := point.Payload["timestamp"].GetStringValue(); got != rec.Timestamp {
		t.Errorf("payload timestamp = %q", got)
	}
	list := point.Payload["categories"].GetListValue()
	if list == nil || len(list.Values) != 2 {
		t.Fatalf("payload categories not a 2-element list")
	}
	if list.Values[0].GetStringValue() != "preferences" {
		t.Errorf("first category = %q", list.Values[0].GetStringValue())
	}
}

func TestPointToRetrieved(t *testing.T) {
	point := &qdrant.ScoredPoint{
		Id:    qdrant.NewIDUUID("a3bb189e-8bf9-3888-9912-ace4e6543002"),
		Score: 0.87,
		Payload: map[string]*qdrant.Value{
			"user_id":     qdrant.NewValueInt(7),
			"memory_text": qdrant.NewValueString("User is vegetarian"),
			"timestamp":   qdrant.NewValueString("2026-03-14 15:09"),
			"categories": {
				Kind: &qdrant.Value_ListValue{
					ListValue: &qdrant.ListValue{Values: []*qdrant.Value{
						qdrant.NewValueString("diet"),
					}},
				},
			},
		},
	}

	got := pointToRetrieved(point)
	if got.PointID != "a3bb189e-8bf9-3888-9912-ace4e6543002" {
		t.Errorf("point id = %q", got.PointID)
	}
	if got.UserID != 7 {
		t.Errorf("user id = %d, want 7", got.UserID)
	}
	if got.MemoryText != "User is vegetarian" {
		t.Errorf("memory text = %q", got.MemoryText)
	}
	if len(got.Categories) != 1 || got.Categories[0] != "diet" {
		t.Errorf("categories = %v", got.Categories)
	}
	if got.Score != float64(float32(0.87)) {
		t.Errorf("score = %f", got.Score)
	}
}

func TestBuildSearchFilter_UserOnly(t *testing.T) {
	filter := buildSearchFilter(7, nil)
	if len(filter.Must) != 1 {
		t.Fatalf("expected 1 condition, got %d", len(filter.Must))
	}
	field := filter.Must[0].GetField()
	if field == nil || field.Key != "user_id" {
		t.Errorf("expected user_id field condition, got %+v", filter.Must[0])
	}
}

func TestBuildSearchFilter_WithCategories(t *testing.T) {
	filter := buildSearchFilter(7, []string{"diet", "hobbies"})
	if len(filter.Must) != 2 {
		t.Fatalf("expected 2 conditions, got %d", len(filter.Must))
	}
	field := filter.Must[1].GetField()
	if field == nil || field.Key != "categories" {
		t.Errorf("expected categories field condition, got %+v", filter.Must[1])
	}
}

func TestPointToRetrieved_MissingPayloadFields(t *testing.T) {
	got := pointToRetrieved(&qdrant.ScoredPoint{Payload: map[string]*qdrant.Value{}})
	if got.MemoryText != "" || got.UserID != 0 || len(got.Categories) != 0 {
		t.Errorf("missing payload fields should yield zero values, got %+v", got)
	}
}
