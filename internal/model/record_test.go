package model

import (
	"slices"
	"testing"
)

// TestFacultyRecordApplyFallbacks tests sentinel substitution.
func TestFacultyRecordApplyFallbacks(t *testing.T) {
	t.Parallel()

	t.Run("fills every empty optional field", func(t *testing.T) {
		t.Parallel()

		r := FacultyRecord{Name: "J. Doe"}
		r.ApplyFallbacks()

		want := FacultyRecord{
			Name:    "J. Doe",
			Title:   "Unknown Title",
			Office:  "Unknown Office",
			Phone:   "Unknown Phone",
			Email:   "No Email Provided",
			Website: "No Website Provided",
		}
		if r != want {
			t.Errorf("got %+v, want %+v", r, want)
		}
	})

	t.Run("keeps extracted values", func(t *testing.T) {
		t.Parallel()

		r := FacultyRecord{Name: "J. Doe", Phone: "(909) 869-1234", Email: "jdoe@cpp.edu"}
		r.ApplyFallbacks()

		if r.Phone != "(909) 869-1234" {
			t.Errorf("phone overwritten: %q", r.Phone)
		}
		if r.Email != "jdoe@cpp.edu" {
			t.Errorf("email overwritten: %q", r.Email)
		}
		if r.Title != UnknownTitle {
			t.Errorf("expected title sentinel, got %q", r.Title)
		}
	})
}

// TestFacultyRecordMissingFields tests missing field reporting.
func TestFacultyRecordMissingFields(t *testing.T) {
	t.Parallel()

	r := FacultyRecord{Name: "J. Doe", Title: "Professor", Office: "8-49"}
	r.ApplyFallbacks()

	got := r.MissingFields()
	want := []string{"phone", "email", "website"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
