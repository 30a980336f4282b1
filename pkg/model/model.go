package model

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dd0wney/gridframe/pkg/elements"
	"github.com/dd0wney/gridframe/pkg/interactions"
)

// Group is a named, ordered set of element identifiers. Groups are purely
// organizational and carry no ownership over the elements.
type Group struct {
	Name    string      `json:"name"`
	Members []uuid.UUID `json:"members"`
}

// Model is the top-level aggregate: it exclusively owns all elements,
// groups, and interactions of one building model. Elements, groups, and
// interactions reference each other only through identifiers, never
// back-pointers, keeping the aggregate the single source of truth.
//
// All mutation operations are synchronous and atomic: they validate fully
// before applying, so a failed operation never leaves partial state.
type Model struct {
	name string

	elements     map[uuid.UUID]elements.Element
	elementOrder []uuid.UUID
	claims       map[string]uuid.UUID // member claim key -> element

	groups     map[string]*Group
	groupOrder []string

	interactions     map[uuid.UUID]interactions.Interaction
	interactionOrder []uuid.UUID
	pairKinds        map[string]struct{} // "a|b|kind"
	byEndpoint       map[uuid.UUID][]uuid.UUID
}

// New creates an empty model.
func New(name string) *Model {
	return &Model{
		name:         name,
		elements:     make(map[uuid.UUID]elements.Element),
		claims:       make(map[string]uuid.UUID),
		groups:       make(map[string]*Group),
		interactions: make(map[uuid.UUID]interactions.Interaction),
		pairKinds:    make(map[string]struct{}),
		byEndpoint:   make(map[uuid.UUID][]uuid.UUID),
	}
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// ElementCount returns the number of owned elements.
func (m *Model) ElementCount() int { return len(m.elements) }

// InteractionCount returns the number of recorded interactions.
func (m *Model) InteractionCount() int { return len(m.interactions) }

// AddElement inserts an element. It rejects duplicate identifiers and a
// second element claiming an already claimed topological member.
func (m *Model) AddElement(el elements.Element) error {
	if el == nil {
		return &ModelError{Op: "AddElement", Entity: "element", Cause: ErrNilElement}
	}
	if _, exists := m.elements[el.ID()]; exists {
		return &ModelError{Op: "AddElement", Entity: "element", ID: el.ID().String(), Cause: ErrDuplicateElement}
	}
	claim := elements.ClaimKey(el)
	if holder, taken := m.claims[claim]; taken {
		return &ModelError{
			Op: "AddElement", Entity: "element", ID: el.ID().String(),
			Cause:   ErrDuplicateMemberClaim,
			Context: fmt.Sprintf("member %s held by %s", claim, holder),
		}
	}

	m.elements[el.ID()] = el
	m.elementOrder = append(m.elementOrder, el.ID())
	m.claims[claim] = el.ID()
	return nil
}

// AddGroup inserts a named group. Every member must already exist in the
// model; a dangling member rejects the whole group with no partial insert.
func (m *Model) AddGroup(name string, members []uuid.UUID) error {
	if _, exists := m.groups[name]; exists {
		return &ModelError{Op: "AddGroup", Entity: "group", ID: name, Cause: ErrDuplicateGroup}
	}
	for _, id := range members {
		if _, ok := m.elements[id]; !ok {
			return &ModelError{
				Op: "AddGroup", Entity: "group", ID: name,
				Cause:   ErrElementNotFound,
				Context: fmt.Sprintf("member %s", id),
			}
		}
	}

	g := &Group{Name: name, Members: append([]uuid.UUID(nil), members...)}
	m.groups[name] = g
	m.groupOrder = append(m.groupOrder, name)
	return nil
}

// AddInteraction records an interaction. Both endpoints must exist in the
// model, and a pair may carry at most one interaction per kind: the same
// two elements can share e.g. a contact and a fastening, but not two
// contacts.
func (m *Model) AddInteraction(in interactions.Interaction) error {
	if _, ok := m.elements[in.A]; !ok {
		return &ModelError{Op: "AddInteraction", Entity: "interaction", ID: in.ID.String(),
			Cause: ErrDanglingEndpoint, Context: fmt.Sprintf("endpoint %s", in.A)}
	}
	if _, ok := m.elements[in.B]; !ok {
		return &ModelError{Op: "AddInteraction", Entity: "interaction", ID: in.ID.String(),
			Cause: ErrDanglingEndpoint, Context: fmt.Sprintf("endpoint %s", in.B)}
	}
	a, b := in.Pair()
	pairKind := a + "|" + b + "|" + string(in.Kind)
	if _, dup := m.pairKinds[pairKind]; dup {
		return &ModelError{Op: "AddInteraction", Entity: "interaction", ID: in.ID.String(),
			Cause: ErrDuplicateInteraction, Context: pairKind}
	}

	m.interactions[in.ID] = in
	m.interactionOrder = append(m.interactionOrder, in.ID)
	m.pairKinds[pairKind] = struct{}{}
	m.byEndpoint[in.A] = append(m.byEndpoint[in.A], in.ID)
	m.byEndpoint[in.B] = append(m.byEndpoint[in.B], in.ID)
	return nil
}

// Element returns the element with the given identifier.
func (m *Model) Element(id uuid.UUID) (elements.Element, error) {
	el, ok := m.elements[id]
	if !ok {
		return nil, &ModelError{Op: "Element", Entity: "element", ID: id.String(), Cause: ErrElementNotFound}
	}
	return el, nil
}

// Elements returns all elements in insertion order.
func (m *Model) Elements() []elements.Element {
	out := make([]elements.Element, 0, len(m.elementOrder))
	for _, id := range m.elementOrder {
		out = append(out, m.elements[id])
	}
	return out
}

// ElementsByKind returns all elements of the given kind, in insertion order.
func (m *Model) ElementsByKind(kind elements.Kind) []elements.Element {
	var out []elements.Element
	for _, id := range m.elementOrder {
		if el := m.elements[id]; el.Kind() == kind {
			out = append(out, el)
		}
	}
	return out
}

// Group returns the group with the given name.
func (m *Model) Group(name string) (*Group, error) {
	g, ok := m.groups[name]
	if !ok {
		return nil, &ModelError{Op: "Group", Entity: "group", ID: name, Cause: ErrGroupNotFound}
	}
	return g, nil
}

// Groups returns all groups in insertion order.
func (m *Model) Groups() []*Group {
	out := make([]*Group, 0, len(m.groupOrder))
	for _, name := range m.groupOrder {
		out = append(out, m.groups[name])
	}
	return out
}

// ElementsInGroup returns the elements of a named group, in group order.
func (m *Model) ElementsInGroup(name string) ([]elements.Element, error) {
	g, err := m.Group(name)
	if err != nil {
		return nil, err
	}
	out := make([]elements.Element, 0, len(g.Members))
	for _, id := range g.Members {
		if el, ok := m.elements[id]; ok {
			out = append(out, el)
		}
	}
	return out, nil
}

// Interaction returns the interaction with the given identifier.
func (m *Model) Interaction(id uuid.UUID) (interactions.Interaction, error) {
	in, ok := m.interactions[id]
	if !ok {
		return interactions.Interaction{}, &ModelError{Op: "Interaction", Entity: "interaction", ID: id.String(), Cause: ErrElementNotFound}
	}
	return in, nil
}

// Interactions returns all interactions in insertion order.
func (m *Model) Interactions() []interactions.Interaction {
	out := make([]interactions.Interaction, 0, len(m.interactionOrder))
	for _, id := range m.interactionOrder {
		out = append(out, m.interactions[id])
	}
	return out
}

// InteractionsOf returns the interactions touching the given element, in
// insertion order. This is the weak back-reference path: elements never
// store interaction links themselves.
func (m *Model) InteractionsOf(id uuid.UUID) []interactions.Interaction {
	ids := m.byEndpoint[id]
	out := make([]interactions.Interaction, 0, len(ids))
	for _, iid := range ids {
		out = append(out, m.interactions[iid])
	}
	return out
}
