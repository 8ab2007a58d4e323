package components

import (
	"encoding/json"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/logger"
)

// JSON marshals an object to a JSON string, returning "{}" on error
func JSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		log := logger.WithComponent("templates")
		log.Error().Err(err).Msg("Error marshaling JSON")
		return "{}"
	}
	return string(b)
}
