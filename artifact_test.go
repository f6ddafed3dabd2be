// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/google/go-cmp/cmp"
)

func TestParts_JSON(t *testing.T) {
	t.Parallel()

	parts := Parts{
		&TextPart{Text: "hello", Metadata: map[string]any{"lang": "en"}},
		NewDataPart(map[string]any{"answer": float64(42)}),
		&FilePart{File: FileContent{Name: "a.txt", MimeType: "text/plain", URI: "https://example.com/a.txt"}},
	}

	data, err := json.Marshal(parts)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `[{"kind":"text","text":"hello","metadata":{"lang":"en"}},` +
		`{"kind":"data","data":{"answer":42}},` +
		`{"kind":"file","file":{"name":"a.txt","mimeType":"text/plain","uri":"https://example.com/a.txt"}}]`
	if got := string(data); got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}

	var got Parts
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(parts, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParts_UnmarshalJSON_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"unknown kind": `[{"kind":"video"}]`,
		"missing kind": `[{"text":"hello"}]`,
		"not an array": `{"kind":"text"}`,
		"bad member":   `[{"kind":"text","text":1}]`,
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var got Parts
			if err := json.Unmarshal([]byte(data), &got); err == nil {
				t.Errorf("Unmarshal(%s) should fail", data)
			}
		})
	}
}

func TestPart_Validate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		part    Part
		wantErr bool
	}{
		"text":                 {part: NewTextPart("x")},
		"empty text":           {part: NewTextPart(""), wantErr: true},
		"data":                 {part: NewDataPart(map[string]any{})},
		"nil data":             {part: NewDataPart(nil), wantErr: true},
		"file with bytes":      {part: &FilePart{File: FileContent{Bytes: "aGk="}}},
		"file with uri":        {part: &FilePart{File: FileContent{URI: "https://example.com/f"}}},
		"file without content": {part: &FilePart{}, wantErr: true},
		"file with both":       {part: &FilePart{File: FileContent{Bytes: "aGk=", URI: "https://example.com/f"}}, wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if err := tt.part.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewArtifact(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		newArtifact func() (*Artifact, error)
		want        *Artifact
		wantErr     bool
	}{
		"success: text": {
			newArtifact: func() (*Artifact, error) { return NewTextArtifact("result", "hello", "greeting") },
			want:        &Artifact{Name: "result", Description: "greeting", Parts: Parts{NewTextPart("hello")}},
		},
		"success: data": {
			newArtifact: func() (*Artifact, error) { return NewDataArtifact("table", map[string]any{"rows": 2}, "") },
			want:        &Artifact{Name: "table", Parts: Parts{NewDataPart(map[string]any{"rows": 2})}},
		},
		"error: empty text": {
			newArtifact: func() (*Artifact, error) { return NewTextArtifact("result", "", "") },
			wantErr:     true,
		},
		"error: nil data": {
			newArtifact: func() (*Artifact, error) { return NewDataArtifact("table", nil, "") },
			wantErr:     true,
		},
		"error: no parts": {
			newArtifact: func() (*Artifact, error) { return NewArtifact(nil, "empty", "") },
			wantErr:     true,
		},
		"error: nil part": {
			newArtifact: func() (*Artifact, error) { return NewArtifact([]Part{nil}, "empty", "") },
			wantErr:     true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.newArtifact()
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.ArtifactID == "" {
				t.Error("artifact ID should be generated")
			}
			if err := got.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
			got.ArtifactID = ""
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("artifact mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestArtifact_Clone(t *testing.T) {
	t.Parallel()

	orig := &Artifact{
		ArtifactID: "a-1",
		Extensions: []string{"https://example.com/ext"},
		Metadata:   map[string]any{"k": []any{"v"}},
		Parts:      Parts{NewTextPart("x"), NewDataPart(map[string]any{"n": 1})},
	}

	got := orig.Clone()
	if diff := cmp.Diff(orig, got); diff != "" {
		t.Fatalf("Clone() mismatch (-want +got):\n%s", diff)
	}

	got.Parts[0].(*TextPart).Text = "changed"
	got.Parts[1].(*DataPart).Data["n"] = 2
	got.Extensions[0] = "changed"
	got.Metadata["k"].([]any)[0] = "changed"

	want := &Artifact{
		ArtifactID: "a-1",
		Extensions: []string{"https://example.com/ext"},
		Metadata:   map[string]any{"k": []any{"v"}},
		Parts:      Parts{NewTextPart("x"), NewDataPart(map[string]any{"n": 1})},
	}
	if diff := cmp.Diff(want, orig); diff != "" {
		t.Errorf("Clone() shares state with the original (-want +got):\n%s", diff)
	}
}
