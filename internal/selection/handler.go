package selection

import (
	"maps"

	"github.com/roach88/subsel/internal/criteria"
)

// Handler compiles one criterion into the State.
type Handler func(s *State, c criteria.Compiled) error

// handlers returns the full key-to-handler table.
func handlers() map[criteria.Key]Handler {
	all := make(map[criteria.Key]Handler)
	for _, group := range []map[criteria.Key]Handler{
		demographicHandlers(),
		statusHandlers(),
		episodeHandlers(),
		kitHandlers(),
		diagnosticTestHandlers(),
		appointmentHandlers(),
		lynchHandlers(),
		notifyHandlers(),
		reviewHandlers(),
		noteHandlers(),
		symptomaticHandlers(),
	} {
		maps.Copy(all, group)
	}
	return all
}
