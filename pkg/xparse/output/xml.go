// Package output serializes person documents to XML or JSON files.
package output

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/ukaji3/xparse-go/pkg/xparse/dictionary"
	"github.com/ukaji3/xparse-go/pkg/xparse/models"
)

// RootElement is the name of the document root and of the persons collection.
const RootElement = "persons"

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" ?>`

// NamingRule returns the element name for an item of the named parent collection.
type NamingRule func(parent string) string

var singular = map[string]string{
	"realties":   "realty",
	"transports": "transport",
	"persons":    "person",
}

// ParentToChild names items after the singular of their collection and falls
// back to "item".
func ParentToChild(parent string) string {
	if name, ok := singular[parent]; ok {
		return name
	}
	return "item"
}

// WriteXML writes persons under a <persons> root. Absent values render as
// empty elements and no type attributes are emitted.
func WriteXML(w io.Writer, persons []models.Person, rule NamingRule) error {
	if rule == nil {
		rule = ParentToChild
	}
	if _, err := io.WriteString(w, xmlHeader); err != nil {
		return err
	}

	x := &xmlWriter{enc: xml.NewEncoder(w), rule: rule}
	err := x.list(RootElement, len(persons), func(i int) error {
		return x.person(persons[i])
	})
	if err != nil {
		return err
	}
	return x.enc.Flush()
}

type xmlWriter struct {
	enc  *xml.Encoder
	rule NamingRule
}

func (x *xmlWriter) open(name string) (xml.StartElement, error) {
	start := xml.StartElement{Name: xml.Name{Local: name}}
	return start, x.enc.EncodeToken(start)
}

func (x *xmlWriter) leaf(name string, text *string) error {
	start, err := x.open(name)
	if err != nil {
		return err
	}
	if text != nil && *text != "" {
		if err := x.enc.EncodeToken(xml.CharData(*text)); err != nil {
			return err
		}
	}
	return x.enc.EncodeToken(start.End())
}

// list writes a collection element holding n items; n == 0 leaves it empty.
func (x *xmlWriter) list(name string, n int, item func(i int) error) error {
	start, err := x.open(name)
	if err != nil {
		return err
	}
	child := x.rule(name)
	for i := 0; i < n; i++ {
		itemStart, err := x.open(child)
		if err != nil {
			return err
		}
		if err := item(i); err != nil {
			return err
		}
		if err := x.enc.EncodeToken(itemStart.End()); err != nil {
			return err
		}
	}
	return x.enc.EncodeToken(start.End())
}

func (x *xmlWriter) person(p models.Person) error {
	id := strconv.Itoa(p.ID)
	var relativeOf *string
	if p.RelativeOf != nil {
		s := strconv.Itoa(*p.RelativeOf)
		relativeOf = &s
	}

	fields := []struct {
		name string
		text *string
	}{
		{"id", &id},
		{"name", p.Name},
		{"relativeOf", relativeOf},
		{"relationType", dictText(p.RelationType)},
		{"position", p.Position},
	}
	for _, f := range fields {
		if err := x.leaf(f.name, f.text); err != nil {
			return err
		}
	}

	err := x.list("realties", len(p.Realties), func(i int) error {
		return x.realty(p.Realties[i])
	})
	if err != nil {
		return err
	}
	err = x.list("transports", len(p.Transports), func(i int) error {
		name := p.Transports[i].TransportName
		return x.leaf("transportName", &name)
	})
	if err != nil {
		return err
	}

	if err := x.leaf("income", p.Income); err != nil {
		return err
	}
	if err := x.leaf("incomeComment", p.IncomeComment); err != nil {
		return err
	}
	return x.leaf("incomeSource", p.IncomeSource)
}

func (x *xmlWriter) realty(r models.Realty) error {
	realtyType := strconv.Itoa(int(r.RealtyType))
	if err := x.leaf("realtyType", &realtyType); err != nil {
		return err
	}
	if err := x.leaf("objectType", dictText(r.ObjectType)); err != nil {
		return err
	}
	if r.RealtyType == models.RealtyOwned {
		if err := x.leaf("ownershipType", dictText(r.OwnershipType)); err != nil {
			return err
		}
		if err := x.leaf("ownershipPart", r.OwnershipPart); err != nil {
			return err
		}
	}
	if err := x.leaf("square", r.Square.Ptr()); err != nil {
		return err
	}
	return x.leaf("country", dictText(r.Country))
}

func dictText(v dictionary.Value) *string {
	if v.IsNull() {
		return nil
	}
	s := v.String()
	return &s
}
