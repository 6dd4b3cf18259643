package assessment

import "sort"

// SectionProgress counts answers in one section.
type SectionProgress struct {
	Section  Section `json:"section"`
	Answered int     `json:"answered"`
	Total    int     `json:"total"`
}

// ProgressReport summarises how far a questionnaire has got.
type ProgressReport struct {
	Answered     int               `json:"answered"`
	Total        int               `json:"total"`
	Sections     []SectionProgress `json:"sections"`
	NextQuestion int               `json:"next_question"` // 0 when every required question is answered
	Complete     bool              `json:"complete"`
	Unknown      []int             `json:"unknown_questions,omitempty"`
}

// Progress reports answered questions per section and the first unanswered
// required question. Answers to IDs outside the form are listed as unknown
// and otherwise ignored.
func Progress(r Responses) ProgressReport {
	p := ProgressReport{Total: len(questions)}
	bySection := make(map[Section]*SectionProgress)
	for _, s := range Sections() {
		sp := &SectionProgress{Section: s}
		bySection[s] = sp
	}

	for _, q := range questions {
		sp := bySection[q.Section]
		sp.Total++
		if r.Answered(q.ID) {
			sp.Answered++
			p.Answered++
			continue
		}
		if q.Required && p.NextQuestion == 0 {
			p.NextQuestion = q.ID
		}
	}
	for _, s := range Sections() {
		p.Sections = append(p.Sections, *bySection[s])
	}
	p.Complete = p.NextQuestion == 0

	for id := range r {
		if _, ok := QuestionByID(id); !ok {
			p.Unknown = append(p.Unknown, id)
		}
	}
	sort.Ints(p.Unknown)
	return p
}
