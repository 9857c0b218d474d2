package memory

import (
	"reflect"
	"testing"
)

func TestRegistry_AddAndLabels(t *testing.T) {
	r := NewCategoryRegistry()
	r.Add("diet", "hobbies")
	r.Add("diet", "work") // duplicate ignored

	got := r.Labels()
	want := []string{"diet", "hobbies", "work"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Labels() = %v, want %v", got, want)
	}
}

func TestRegistry_MonotonicGrowth(t *testing.T) {
	r := NewCategoryRegistry("diet")
	before := r.Labels()

	r.Add("travel", "diet")

	after := r.Labels()
	if len(after) < len(before) {
		t.Fatalf("registry shrank: before %v, after %v", before, after)
	}
	for i, label := range before {
		if after[i] != label {
			t.Errorf("existing label %q moved or vanished after add", label)
		}
	}
}

func TestRegistry_IgnoresEmpty(t *testing.T) {
	r := NewCategoryRegistry()
	r.Add("", "food", "")
	if r.Len() != 1 {
		t.Errorf("expected 1 label, got %d", r.Len())
	}
}

func TestRegistry_LabelsReturnsCopy(t *testing.T) {
	r := NewCategoryRegistry("a", "b")
	labels := r.Labels()
	labels[0] = "mutated"
	if r.Labels()[0] != "a" {
		t.Errorf("mutating the returned slice changed registry state")
	}
}
