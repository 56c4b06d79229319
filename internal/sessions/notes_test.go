package sessions

import "testing"

func TestNotesTemplateCopies(t *testing.T) {
	first, ok := NotesTemplate(TypeGroup)
	if !ok {
		t.Fatal("expected a template for group sessions")
	}
	first.Interventions[0] = "mutated"
	first.NextSessionPlan = "mutated"

	second, _ := NotesTemplate(TypeGroup)
	if second.Interventions[0] == "mutated" {
		t.Error("template interventions shared between calls")
	}
	if second.NextSessionPlan != "Continue group participation" {
		t.Errorf("template plan = %q", second.NextSessionPlan)
	}
}

func TestNotesTemplateUnknownType(t *testing.T) {
	if _, ok := NotesTemplate("walk-in"); ok {
		t.Error("expected no template for unknown type")
	}
}

func TestSearchNotes(t *testing.T) {
	list := []Session{
		{ID: "s1", Notes: &Notes{
			PresentingConcerns: "Anxiety at work",
			Interventions:      []string{"breathing exercises", "thought records for anxiety"},
		}},
		{ID: "s2", Notes: &Notes{PrivateNotes: "discuss anxiety medication with GP"}},
		{ID: "s3", Notes: &Notes{PresentingConcerns: "Grief work"}},
		{ID: "s4"}, // no notes at all
	}

	got := SearchNotes(list, "Anxiety")
	if len(got) != 2 {
		t.Fatalf("SearchNotes() returned %d sessions, want 2", len(got))
	}
	if got[0].SessionID != "s1" || got[1].SessionID != "s2" {
		t.Errorf("matched sessions = %s, %s", got[0].SessionID, got[1].SessionID)
	}
	// s1 matched both the concerns and an intervention; interventions is
	// reported once.
	if len(got[0].Matches) != 2 {
		t.Errorf("s1 matches = %v, want presenting_concerns and interventions", got[0].Matches)
	}
	if got[1].Matches[0] != "private_notes" {
		t.Errorf("s2 matches = %v, want private_notes", got[1].Matches)
	}
}

func TestSearchNotesEmptyQuery(t *testing.T) {
	list := []Session{{ID: "s1", Notes: &Notes{PresentingConcerns: "anything"}}}
	if got := SearchNotes(list, "   "); len(got) != 0 {
		t.Errorf("SearchNotes(blank) = %v, want empty", got)
	}
}
