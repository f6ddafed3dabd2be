// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/google/uuid"
)

// Part represents a part of a message or artifact.
// It can be a [*TextPart], a [*DataPart] or a [*FilePart].
type Part interface {
	GetKind() PartKind
	GetMetadata() map[string]any
	Validate() error
}

// TextPart represents a plain text segment.
type TextPart struct {
	Text     string
	Metadata map[string]any
}

var _ Part = (*TextPart)(nil)

// NewTextPart returns a TextPart holding text.
func NewTextPart(text string) *TextPart {
	return &TextPart{Text: text}
}

// GetKind returns [PartKindText].
func (tp *TextPart) GetKind() PartKind { return PartKindText }

// GetMetadata returns the part metadata.
func (tp *TextPart) GetMetadata() map[string]any { return tp.Metadata }

// Validate ensures the TextPart is valid.
func (tp *TextPart) Validate() error {
	if tp.Text == "" {
		return fmt.Errorf("text part text cannot be empty")
	}
	return nil
}

// MarshalJSON implements [json.Marshaler].
func (tp TextPart) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     PartKind       `json:"kind"`
		Text     string         `json:"text"`
		Metadata map[string]any `json:"metadata,omitzero"`
	}{PartKindText, tp.Text, tp.Metadata})
}

// DataPart represents a structured data segment.
type DataPart struct {
	Data     map[string]any
	Metadata map[string]any
}

var _ Part = (*DataPart)(nil)

// NewDataPart returns a DataPart holding data.
func NewDataPart(data map[string]any) *DataPart {
	return &DataPart{Data: data}
}

// GetKind returns [PartKindData].
func (dp *DataPart) GetKind() PartKind { return PartKindData }

// GetMetadata returns the part metadata.
func (dp *DataPart) GetMetadata() map[string]any { return dp.Metadata }

// Validate ensures the DataPart is valid.
func (dp *DataPart) Validate() error {
	if dp.Data == nil {
		return fmt.Errorf("data part data cannot be nil")
	}
	return nil
}

// MarshalJSON implements [json.Marshaler].
func (dp DataPart) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     PartKind       `json:"kind"`
		Data     map[string]any `json:"data"`
		Metadata map[string]any `json:"metadata,omitzero"`
	}{PartKindData, dp.Data, dp.Metadata})
}

// FileContent describes a file either inline (base64 Bytes) or by URI.
type FileContent struct {
	Name     string `json:"name,omitzero"`
	MimeType string `json:"mimeType,omitzero"`
	Bytes    string `json:"bytes,omitzero"`
	URI      string `json:"uri,omitzero"`
}

// FilePart represents a file segment.
type FilePart struct {
	File     FileContent
	Metadata map[string]any
}

var _ Part = (*FilePart)(nil)

// GetKind returns [PartKindFile].
func (fp *FilePart) GetKind() PartKind { return PartKindFile }

// GetMetadata returns the part metadata.
func (fp *FilePart) GetMetadata() map[string]any { return fp.Metadata }

// Validate ensures the FilePart carries exactly one of bytes or uri.
func (fp *FilePart) Validate() error {
	switch {
	case fp.File.Bytes == "" && fp.File.URI == "":
		return fmt.Errorf("file part must have either bytes or uri")
	case fp.File.Bytes != "" && fp.File.URI != "":
		return fmt.Errorf("file part cannot have both bytes and uri")
	}
	return nil
}

// MarshalJSON implements [json.Marshaler].
func (fp FilePart) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     PartKind       `json:"kind"`
		File     FileContent    `json:"file"`
		Metadata map[string]any `json:"metadata,omitzero"`
	}{PartKindFile, fp.File, fp.Metadata})
}

// Parts is an ordered list of parts decoded by their "kind" member.
type Parts []Part

// UnmarshalJSON implements [json.Unmarshaler].
func (ps *Parts) UnmarshalJSON(data []byte) error {
	var raws []jsontext.Value
	if err := json.Unmarshal(data, &raws); err != nil {
		return fmt.Errorf("failed to unmarshal parts: %w", err)
	}
	if raws == nil {
		*ps = nil
		return nil
	}

	parts := make(Parts, 0, len(raws))
	for i, raw := range raws {
		part, err := unmarshalPart(raw)
		if err != nil {
			return fmt.Errorf("part at index %d: %w", i, err)
		}
		parts = append(parts, part)
	}
	*ps = parts

	return nil
}

func unmarshalPart(raw jsontext.Value) (Part, error) {
	var head struct {
		Kind PartKind `json:"kind"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("failed to unmarshal part kind: %w", err)
	}

	switch head.Kind {
	case PartKindText:
		var v struct {
			Text     string         `json:"text"`
			Metadata map[string]any `json:"metadata"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal text part: %w", err)
		}
		return &TextPart{Text: v.Text, Metadata: v.Metadata}, nil
	case PartKindData:
		var v struct {
			Data     map[string]any `json:"data"`
			Metadata map[string]any `json:"metadata"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal data part: %w", err)
		}
		return &DataPart{Data: v.Data, Metadata: v.Metadata}, nil
	case PartKindFile:
		var v struct {
			File     FileContent    `json:"file"`
			Metadata map[string]any `json:"metadata"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("failed to unmarshal file part: %w", err)
		}
		return &FilePart{File: v.File, Metadata: v.Metadata}, nil
	default:
		return nil, fmt.Errorf("unknown part kind: %q", head.Kind)
	}
}

// Clone returns a deep copy of ps.
func (ps Parts) Clone() Parts {
	if ps == nil {
		return nil
	}

	out := make(Parts, len(ps))
	for i, p := range ps {
		switch p := p.(type) {
		case *TextPart:
			out[i] = &TextPart{Text: p.Text, Metadata: CloneMetadata(p.Metadata)}
		case *DataPart:
			out[i] = &DataPart{Data: CloneMetadata(p.Data), Metadata: CloneMetadata(p.Metadata)}
		case *FilePart:
			out[i] = &FilePart{File: p.File, Metadata: CloneMetadata(p.Metadata)}
		default:
			out[i] = p
		}
	}
	return out
}

// Artifact represents a generated output from a task, which can contain multiple parts.
type Artifact struct {
	// Unique identifier for the artifact.
	ArtifactID string `json:"artifactId"`

	// Optional description for the artifact.
	Description string `json:"description,omitzero"`

	// The URIs of extensions that are present or contributed to this Artifact.
	Extensions []string `json:"extensions,omitzero"`

	// Extension metadata.
	Metadata map[string]any `json:"metadata,omitzero"`

	// Optional name for the artifact.
	Name string `json:"name,omitzero"`

	// Artifact parts.
	Parts Parts `json:"parts"`
}

// Validate ensures the Artifact is valid.
func (a *Artifact) Validate() error {
	if a.ArtifactID == "" {
		return fmt.Errorf("artifact ID cannot be empty")
	}
	if len(a.Parts) == 0 {
		return fmt.Errorf("artifact must contain at least one part")
	}
	for i, part := range a.Parts {
		if part == nil {
			return fmt.Errorf("artifact part at index %d cannot be nil", i)
		}
		if err := part.Validate(); err != nil {
			return fmt.Errorf("artifact part at index %d is invalid: %w", i, err)
		}
	}
	return nil
}

// Clone returns a deep copy of a.
func (a *Artifact) Clone() *Artifact {
	if a == nil {
		return nil
	}

	return &Artifact{
		ArtifactID:  a.ArtifactID,
		Description: a.Description,
		Extensions:  cloneStrings(a.Extensions),
		Metadata:    CloneMetadata(a.Metadata),
		Name:        a.Name,
		Parts:       a.Parts.Clone(),
	}
}

// NewArtifact creates a new Artifact from a list of parts, a name, and an optional description.
// It generates a random UUID for the artifact ID.
func NewArtifact(parts []Part, name, description string) (*Artifact, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("artifact must contain at least one part")
	}
	for i, part := range parts {
		if part == nil {
			return nil, fmt.Errorf("part at index %d cannot be nil", i)
		}
		if err := part.Validate(); err != nil {
			return nil, fmt.Errorf("part at index %d is invalid: %w", i, err)
		}
	}

	return &Artifact{
		ArtifactID:  uuid.NewString(),
		Name:        name,
		Description: description,
		Parts:       Parts(parts),
	}, nil
}

// NewTextArtifact creates a new Artifact containing only a single TextPart.
func NewTextArtifact(name, text, description string) (*Artifact, error) {
	if text == "" {
		return nil, fmt.Errorf("text content cannot be empty")
	}
	return NewArtifact([]Part{NewTextPart(text)}, name, description)
}

// NewDataArtifact creates a new Artifact containing only a single DataPart.
func NewDataArtifact(name string, data map[string]any, description string) (*Artifact, error) {
	if data == nil {
		return nil, fmt.Errorf("data content cannot be nil")
	}
	return NewArtifact([]Part{NewDataPart(data)}, name, description)
}
