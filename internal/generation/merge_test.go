package generation

import (
	"testing"
	"time"

	"resume-tailor/internal/profiles"
)

func date(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func sampleSnapshot() profiles.Snapshot {
	end := date(2021, time.February)
	eduEnd := date(2017, time.May)
	return profiles.Snapshot{
		Profile: profiles.Profile{ID: "p1", UserID: "user-1", Name: "Jane Doe", Email: "jane@example.com", Phone: "555", Location: "Austin"},
		WorkExperiences: []profiles.WorkExperience{
			{ID: "w1", Company: "Acme", Position: "Staff Engineer", StartDate: date(2021, time.March), IsCurrent: true},
			{ID: "w2", Company: "Globex", Position: "Engineer", StartDate: date(2017, time.June), EndDate: &end},
		},
		Educations: []profiles.Education{
			{ID: "e1", University: "State University", Degree: "BSc", StartDate: date(2013, time.September), EndDate: &eduEnd},
		},
	}
}

func TestMergeKeepsStoredFactsAndOrder(t *testing.T) {
	snap := sampleSnapshot()
	parsed := ParsedResponse{
		ProfessionalTitle: " Principal Engineer ",
		WorkExperiences: []ParsedWork{
			{Company: "Invented Co", Achievements: []string{"a1", " ", "a2"}},
			{Company: "Other", Achievements: []string{"b1"}},
			{Company: "Extra", Achievements: []string{"dropped"}},
		},
		TechnicalSkills: []string{"Languages: Go", ""},
	}

	got := Merge(snap, parsed)
	if len(got.WorkExperiences) != 2 {
		t.Fatalf("expected 2 work experiences, got %d", len(got.WorkExperiences))
	}
	first := got.WorkExperiences[0]
	if first.Company != "Acme" || first.Position != "Staff Engineer" || first.StartDate != "2021-03-01" || first.EndDate != "" || !first.IsCurrent {
		t.Fatalf("stored fields not preserved: %+v", first)
	}
	if len(first.Achievements) != 2 || first.Achievements[1] != "a2" {
		t.Fatalf("unexpected achievements %v", first.Achievements)
	}
	second := got.WorkExperiences[1]
	if second.Company != "Globex" || second.EndDate != "2021-02-01" || second.Achievements[0] != "b1" {
		t.Fatalf("unexpected second entry %+v", second)
	}
	if got.PersonalInfo.Name != "Jane Doe" || got.PersonalInfo.Location != "Austin" {
		t.Fatalf("personal info not from storage: %+v", got.PersonalInfo)
	}
	if len(got.Education) != 1 || got.Education[0].EndDate != "2017-05-01" {
		t.Fatalf("unexpected education %+v", got.Education)
	}
	if got.ProfessionalTitle != "Principal Engineer" || len(got.TechnicalSkills) != 1 {
		t.Fatalf("unexpected provider fields %+v", got)
	}
}

func TestMergeShortResponseLeavesEmptyAchievements(t *testing.T) {
	snap := sampleSnapshot()
	got := Merge(snap, ParsedResponse{WorkExperiences: []ParsedWork{{Achievements: []string{"only"}}}})
	if len(got.WorkExperiences) != 2 {
		t.Fatalf("expected 2 work experiences, got %d", len(got.WorkExperiences))
	}
	if got.WorkExperiences[1].Achievements == nil || len(got.WorkExperiences[1].Achievements) != 0 {
		t.Fatalf("expected empty achievements, got %#v", got.WorkExperiences[1].Achievements)
	}
}
