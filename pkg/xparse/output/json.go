package output

import (
	"encoding/json"
	"io"

	"github.com/ukaji3/xparse-go/pkg/xparse/models"
)

// WriteJSON writes persons as {"persons": [...]}.
func WriteJSON(w io.Writer, persons []models.Person, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if persons == nil {
		persons = []models.Person{}
	}
	return enc.Encode(map[string][]models.Person{RootElement: persons})
}
