package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/dd0wney/gridframe/pkg/elements"
	"github.com/dd0wney/gridframe/pkg/interactions"
)

// GroupRecord is the serialized form of a group: name to ordered ids.
type GroupRecord struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Document is the serializable model graph: nested records of elements,
// groups, and interactions. Downstream collaborators (CAD/BIM export,
// analysis engines, visualization) consume it as a plain data document; it
// is self-contained and round-trips losslessly.
type Document struct {
	Name         string                     `json:"name,omitempty"`
	Elements     []elements.Record          `json:"elements"`
	Groups       []GroupRecord              `json:"groups,omitempty"`
	Interactions []interactions.Interaction `json:"interactions,omitempty"`
}

// Document serializes the model.
func (m *Model) Document() *Document {
	doc := &Document{Name: m.name}
	for _, el := range m.Elements() {
		doc.Elements = append(doc.Elements, elements.EncodeRecord(el))
	}
	for _, g := range m.Groups() {
		rec := GroupRecord{Name: g.Name}
		for _, id := range g.Members {
			rec.Members = append(rec.Members, id.String())
		}
		doc.Groups = append(doc.Groups, rec)
	}
	doc.Interactions = append(doc.Interactions, m.Interactions()...)
	return doc
}

// FromDocument reconstructs a model from its document form. The result is
// equivalent to the original up to identifier equality.
func FromDocument(doc *Document) (*Model, error) {
	m := New(doc.Name)
	for _, rec := range doc.Elements {
		el, err := elements.DecodeRecord(rec)
		if err != nil {
			return nil, &ModelError{Op: "FromDocument", Entity: "element", ID: rec.ID, Cause: err}
		}
		if err := m.AddElement(el); err != nil {
			return nil, err
		}
	}
	for _, rec := range doc.Groups {
		members := make([]uuid.UUID, 0, len(rec.Members))
		for _, s := range rec.Members {
			id, err := uuid.Parse(s)
			if err != nil {
				return nil, &ModelError{Op: "FromDocument", Entity: "group", ID: rec.Name,
					Cause: err, Context: fmt.Sprintf("member %s", s)}
			}
			members = append(members, id)
		}
		if err := m.AddGroup(rec.Name, members); err != nil {
			return nil, err
		}
	}
	for _, in := range doc.Interactions {
		if err := m.AddInteraction(in); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Encode marshals the document to JSON.
func (d *Document) Encode() ([]byte, error) {
	return json.Marshal(d)
}

// Decode unmarshals a document from JSON.
func Decode(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &d, nil
}
