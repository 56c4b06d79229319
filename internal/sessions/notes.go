package sessions

import "strings"

// notesTemplates holds the starting clinical note for each session type.
var notesTemplates = map[Type]Notes{
	TypeIndividual: {
		Interventions: []string{"Active listening", "Cognitive restructuring"},
		Homework:      []string{},
		RiskLevel:     RiskLow,
	},
	TypeGroup: {
		PresentingConcerns: "Group dynamics and individual progress",
		Interventions:      []string{"Group discussion", "Peer support", "Skill building"},
		Homework:           []string{"Practice skills discussed in group"},
		RiskLevel:          RiskLow,
		NextSessionPlan:    "Continue group participation",
	},
	TypeFamily: {
		PresentingConcerns: "Family system dynamics",
		Interventions:      []string{"Family therapy techniques", "Communication skills"},
		Homework:           []string{"Family communication exercises"},
		RiskLevel:          RiskLow,
		NextSessionPlan:    "Continue family work",
	},
	TypeConsultation: {
		PresentingConcerns: "Professional consultation",
		Interventions:      []string{"Assessment", "Recommendations"},
		Homework:           []string{},
		RiskLevel:          RiskLow,
		NextSessionPlan:    "Follow-up as needed",
	},
	TypeIntake: {
		PresentingConcerns: "Initial assessment and intake",
		Interventions:      []string{"Clinical interview", "Assessment tools"},
		Homework:           []string{"Complete intake forms"},
		RiskLevel:          RiskLow,
		NextSessionPlan:    "Begin treatment planning",
	},
}

// NotesTemplate returns the starting clinical note for a session type.
func NotesTemplate(t Type) (*Notes, bool) {
	tmpl, ok := notesTemplates[t]
	if !ok {
		return nil, false
	}
	out := tmpl
	out.Interventions = append([]string(nil), tmpl.Interventions...)
	out.Homework = append([]string(nil), tmpl.Homework...)
	return &out, true
}

// NoteMatch is a session whose notes matched a search query.
type NoteMatch struct {
	SessionID string   `json:"session_id"`
	Matches   []string `json:"matches"`
}

// SearchNotes scans session notes for the query and returns the matching
// fields per session. PrivateNotes are searched too since the practitioner is
// the only reader.
func SearchNotes(list []Session, query string) []NoteMatch {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []NoteMatch{}
	}

	out := []NoteMatch{}
	for _, s := range list {
		if s.Notes == nil {
			continue
		}
		var matches []string
		check := func(field, value string) {
			if strings.Contains(strings.ToLower(value), query) {
				matches = append(matches, field)
			}
		}
		check("presenting_concerns", s.Notes.PresentingConcerns)
		check("client_response", s.Notes.ClientResponse)
		check("next_session_plan", s.Notes.NextSessionPlan)
		check("private_notes", s.Notes.PrivateNotes)
		for _, i := range s.Notes.Interventions {
			check("interventions", i)
		}
		for _, h := range s.Notes.Homework {
			check("homework", h)
		}
		if len(matches) > 0 {
			out = append(out, NoteMatch{SessionID: s.ID, Matches: dedupe(matches)})
		}
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
