package selection

import (
	"regexp"
	"strings"

	"github.com/roach88/subsel/internal/criteria"
	"github.com/roach88/subsel/internal/ir"
	"github.com/roach88/subsel/internal/queryir"
)

const (
	notifyQueueTable   = "notify_message_queue"
	notifyArchiveTable = "notify_message_record"
)

// notifyMessage matches "<event status> (<message code>) - <status>".
var notifyMessage = regexp.MustCompile(`^(\S+)\s+\(([^)]*)\)\s+-\s+(\S+)$`)

func notifyHandlers() map[criteria.Key]Handler {
	return map[criteria.Key]Handler{
		criteria.NotifyQueuedMessageStatus:   notifyMessageStatus(notifyQueueTable, "nq"),
		criteria.NotifyArchivedMessageStatus: notifyMessageStatus(notifyArchiveTable, "nr"),
		criteria.SubjectHasQueuedNotifyMessages: func(s *State, c criteria.Compiled) error {
			return matchExists(s, c, notifyQueueTable, "nq", func(a string) []queryir.Predicate {
				return []queryir.Predicate{queryir.Eq(queryir.Col(a, "nhs_number"), s.contact("nhs_number"))}
			})
		},
	}
}

func notifyMessageStatus(table, alias string) Handler {
	return func(s *State, c criteria.Compiled) error {
		if err := noComparator(c); err != nil {
			return err
		}
		bySubject := func(a string) queryir.Predicate {
			return queryir.Eq(queryir.Col(a, "nhs_number"), s.contact("nhs_number"))
		}

		value := strings.TrimSpace(c.Value)
		if strings.EqualFold(value, "none") {
			s.where(s.exists(true, table, alias, func(a string) []queryir.Predicate {
				return []queryir.Predicate{bySubject(a)}
			}))
			return nil
		}

		m := notifyMessage.FindStringSubmatch(value)
		if m == nil {
			return ir.NewError(ir.ErrUnresolvableDomainValue, "%q is not of the form \"<event status> (<message code>) - <status>\"", value)
		}
		eventStatus, ok := s.vocab.EventStatus.Lookup(m[1])
		if !ok {
			return ir.UnresolvableDomainValue(s.vocab.EventStatus.Name(), m[1])
		}
		status, ok := s.vocab.NotifyStatus.Lookup(m[3])
		if !ok {
			return ir.UnresolvableDomainValue(s.vocab.NotifyStatus.Name(), m[3])
		}
		code := strings.TrimSpace(m[2])

		s.where(s.exists(false, table, alias, func(a string) []queryir.Predicate {
			where := []queryir.Predicate{
				bySubject(a),
				queryir.Eq(queryir.Col(a, "event_status_id"), queryir.Bind{Value: eventStatus}),
			}
			if code != "" {
				where = append(where, queryir.Eq(queryir.Col(a, "message_code"), queryir.Bind{Value: code}))
			}
			return append(where, queryir.Eq(queryir.Col(a, "message_status"), queryir.Bind{Value: status}))
		}))
		return nil
	}
}
