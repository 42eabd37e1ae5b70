package schema

import "strings"

// RelationshipKind enumerates the supported relationship shapes.
type RelationshipKind string

const (
	RelationshipBelongsTo RelationshipKind = "belongsTo"
	RelationshipHasOne    RelationshipKind = "hasOne"
	RelationshipHasMany   RelationshipKind = "hasMany"
)

// Relationship captures how a relation field points at its target records.
type Relationship struct {
	Kind        RelationshipKind `json:"kind"`
	Target      string           `json:"target"`
	Cardinality string           `json:"cardinality"`
	ForeignKey  string           `json:"foreignKey,omitempty"`
	Inverse     string           `json:"inverse,omitempty"`
}

const (
	relationshipTypeKey       = "relationship.type"
	relationshipTargetKey     = "relationship.target"
	relationshipCardKey       = "relationship.cardinality"
	relationshipForeignKeyKey = "relationship.foreignKey"
	relationshipInverseKey    = "relationship.inverse"
)

// EnsureRelationship hydrates the typed relationship struct from metadata and
// mirrors the canonical dotted keys back into the metadata map. When required
// keys are absent the relationship pointer remains nil.
func EnsureRelationship(field *Field) {
	if field == nil {
		return
	}

	rel, ok := relationshipFromMetadata(field.Metadata)
	if !ok {
		field.Relationship = nil
		return
	}

	field.Relationship = rel
	field.Metadata = syncRelationshipMetadata(field.Metadata, rel)
}

func relationshipFromMetadata(metadata map[string]string) (*Relationship, bool) {
	if len(metadata) == 0 {
		return nil, false
	}

	rawType, ok := metadata[relationshipTypeKey]
	if !ok {
		return nil, false
	}

	kind, ok := normalizeRelationshipKind(rawType)
	if !ok {
		return nil, false
	}

	target := strings.TrimSpace(metadata[relationshipTargetKey])
	if target == "" {
		return nil, false
	}

	cardinality := strings.TrimSpace(metadata[relationshipCardKey])
	if cardinality == "" {
		cardinality = deriveCardinality(kind)
		if cardinality == "" {
			return nil, false
		}
	}

	relationship := &Relationship{
		Kind:        kind,
		Target:      target,
		Cardinality: strings.ToLower(cardinality),
	}

	if foreignKey := strings.TrimSpace(metadata[relationshipForeignKeyKey]); foreignKey != "" {
		relationship.ForeignKey = foreignKey
	}
	if inverse := strings.TrimSpace(metadata[relationshipInverseKey]); inverse != "" {
		relationship.Inverse = inverse
	}

	return relationship, true
}

func normalizeRelationshipKind(raw string) (RelationshipKind, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "belongsto":
		return RelationshipBelongsTo, true
	case "hasone":
		return RelationshipHasOne, true
	case "hasmany":
		return RelationshipHasMany, true
	default:
		return "", false
	}
}

func deriveCardinality(kind RelationshipKind) string {
	switch kind {
	case RelationshipHasMany:
		return "many"
	case RelationshipBelongsTo, RelationshipHasOne:
		return "one"
	default:
		return ""
	}
}

func syncRelationshipMetadata(metadata map[string]string, rel *Relationship) map[string]string {
	if rel == nil {
		return metadata
	}
	if metadata == nil {
		metadata = make(map[string]string)
	}
	metadata[relationshipTypeKey] = string(rel.Kind)
	metadata[relationshipTargetKey] = rel.Target
	metadata[relationshipCardKey] = rel.Cardinality

	if rel.ForeignKey != "" {
		metadata[relationshipForeignKeyKey] = rel.ForeignKey
	} else {
		delete(metadata, relationshipForeignKeyKey)
	}

	if rel.Inverse != "" {
		metadata[relationshipInverseKey] = rel.Inverse
	} else {
		delete(metadata, relationshipInverseKey)
	}

	return metadata
}
