package layout

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// The wire form is a self-describing tagged union: every node carries a
// "type" discriminator ("leaf" or "split"). The same DTO shape backs both
// the JSON encoding (used for layout files) and the compact CBOR encoding
// (used for snapshot blobs). Both round-trip tab identifiers, ordering and
// ratios losslessly, and both validate the full set of tree invariants on
// decode.

const (
	nodeTypeLeaf  = "leaf"
	nodeTypeSplit = "split"
)

type treeDTO struct {
	Version int      `json:"version" cbor:"version"`
	Root    *nodeDTO `json:"root" cbor:"root"`
}

type nodeDTO struct {
	Type      string     `json:"type" cbor:"type"`
	Panel     *panelDTO  `json:"panel,omitempty" cbor:"panel,omitempty"`
	Direction string     `json:"direction,omitempty" cbor:"direction,omitempty"`
	Ratios    []float64  `json:"ratios,omitempty" cbor:"ratios,omitempty"`
	Children  []*nodeDTO `json:"children,omitempty" cbor:"children,omitempty"`
}

type panelDTO struct {
	ID     string   `json:"id" cbor:"id"`
	Tabs   []tabDTO `json:"tabs" cbor:"tabs"`
	Active int      `json:"active" cbor:"active"`
}

type tabDTO struct {
	ID         string `json:"id" cbor:"id"`
	Title      string `json:"title" cbor:"title"`
	SessionRef int64  `json:"session_ref,omitempty" cbor:"session_ref,omitempty"`
}

// codecVersion is bumped on incompatible wire-form changes.
const codecVersion = 1

// EncodeJSON serializes the tree as indented, self-describing JSON.
func EncodeJSON(tree *Tree) ([]byte, error) {
	return json.MarshalIndent(toTreeDTO(tree), "", "  ")
}

// DecodeJSON parses a JSON-encoded tree and validates its invariants.
func DecodeJSON(data []byte) (*Tree, error) {
	var dto treeDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("layout: decode json: %w", err)
	}
	return fromTreeDTO(&dto)
}

// EncodeCBOR serializes the tree in the compact binary form used by the
// snapshot store.
func EncodeCBOR(tree *Tree) ([]byte, error) {
	return cbor.Marshal(toTreeDTO(tree))
}

// DecodeCBOR parses a CBOR-encoded tree and validates its invariants.
func DecodeCBOR(data []byte) (*Tree, error) {
	var dto treeDTO
	if err := cbor.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("layout: decode cbor: %w", err)
	}
	return fromTreeDTO(&dto)
}

func toTreeDTO(tree *Tree) *treeDTO {
	dto := &treeDTO{Version: codecVersion}
	if !tree.Empty() {
		dto.Root = toNodeDTO(tree.Root)
	}
	return dto
}

func toNodeDTO(n *Node) *nodeDTO {
	if n.IsLeaf() {
		p := n.Panel
		tabs := make([]tabDTO, len(p.Tabs))
		for i, tab := range p.Tabs {
			tabs[i] = tabDTO{ID: string(tab.ID), Title: tab.Title, SessionRef: tab.SessionRef}
		}
		return &nodeDTO{
			Type:  nodeTypeLeaf,
			Panel: &panelDTO{ID: string(p.ID), Tabs: tabs, Active: p.Active},
		}
	}
	children := make([]*nodeDTO, len(n.Children))
	for i, c := range n.Children {
		children[i] = toNodeDTO(c)
	}
	return &nodeDTO{
		Type:      nodeTypeSplit,
		Direction: string(n.Dir),
		Ratios:    append([]float64(nil), n.Ratios...),
		Children:  children,
	}
}

func fromTreeDTO(dto *treeDTO) (*Tree, error) {
	if dto.Version != codecVersion {
		return nil, fmt.Errorf("layout: unsupported layout version %d", dto.Version)
	}
	tree := &Tree{}
	if dto.Root != nil {
		root, err := fromNodeDTO(dto.Root)
		if err != nil {
			return nil, err
		}
		tree.Root = root
	}
	if err := tree.Validate(); err != nil {
		return nil, err
	}
	return tree, nil
}

func fromNodeDTO(dto *nodeDTO) (*Node, error) {
	switch dto.Type {
	case nodeTypeLeaf:
		if dto.Panel == nil {
			return nil, fmt.Errorf("layout: leaf node without panel")
		}
		tabs := make([]Tab, len(dto.Panel.Tabs))
		for i, tab := range dto.Panel.Tabs {
			tabs[i] = Tab{ID: TabID(tab.ID), Title: tab.Title, SessionRef: tab.SessionRef}
		}
		return NewLeaf(&Panel{ID: PanelID(dto.Panel.ID), Tabs: tabs, Active: dto.Panel.Active}), nil
	case nodeTypeSplit:
		children := make([]*Node, len(dto.Children))
		for i, c := range dto.Children {
			child, err := fromNodeDTO(c)
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		return NewSplit(Direction(dto.Direction), children, dto.Ratios)
	default:
		return nil, fmt.Errorf("layout: unknown node type %q", dto.Type)
	}
}
