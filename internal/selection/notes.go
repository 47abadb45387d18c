package selection

import (
	"github.com/roach88/subsel/internal/criteria"
	"github.com/roach88/subsel/internal/queryir"
)

const supportingNotesTable = "supporting_notes_t"

// Supporting note types.
const (
	episodeNoteType        = 4110
	subjectNoteType        = 4111
	additionalCareNoteType = 4112
	kitNoteType            = 308015
)

func noteHandlers() map[criteria.Key]Handler {
	return map[criteria.Key]Handler{
		criteria.SubjectHasSubjectNotes:        notesExist(subjectNoteType, "sn"),
		criteria.SubjectHasAdditionalCareNotes: notesExist(additionalCareNoteType, "sn"),
		criteria.SubjectHasEpisodeNotes:        episodeNotes,
		criteria.SubjectNoteCount:              noteCount(subjectNoteType),
		criteria.AdditionalCareNoteCount:       noteCount(additionalCareNoteType),
		criteria.KitNoteCount:                  noteCount(kitNoteType),
	}
}

// liveNotes selects the subject's active notes of one type.
func (s *State) liveNotes(alias string, noteType int) []queryir.Predicate {
	return []queryir.Predicate{
		s.bySubject(alias),
		queryir.Eq(queryir.Col(alias, "type_id"), queryir.Int(noteType)),
		queryir.IsNull{Operand: queryir.Col(alias, "obsolete_date")},
	}
}

func notesExist(noteType int, alias string) Handler {
	return func(s *State, c criteria.Compiled) error {
		return matchExists(s, c, supportingNotesTable, alias, func(a string) []queryir.Predicate {
			return s.liveNotes(a, noteType)
		})
	}
}

// episodeNotes looks for episode notes attached to the latest episode.
func episodeNotes(s *State, c criteria.Compiled) error {
	ep := s.latestEpisode()
	return matchExists(s, c, supportingNotesTable, "sn", func(a string) []queryir.Predicate {
		return append(s.liveNotes(a, episodeNoteType), queryir.Eq(queryir.Col(a, "subject_epis_id"), queryir.Col(ep, "subject_epis_id")))
	})
}

// noteCount compares the number of live notes of one type with a whole
// number, e.g. "> 2".
func noteCount(noteType int) Handler {
	return func(s *State, c criteria.Compiled) error {
		n, err := wholeNumber(c.Value)
		if err != nil {
			return err
		}
		a := s.sel.Joins.Reserve("snc")
		count := queryir.Sub{
			Column: queryir.Expr{Template: "COUNT(*)"},
			Table:  supportingNotesTable,
			Alias:  a,
			Where:  s.liveNotes(a, noteType),
		}
		s.where(queryir.Cmp(count, c.Comparator, queryir.Int(n)))
		return nil
	}
}
