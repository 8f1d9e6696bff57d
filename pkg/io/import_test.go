package io

import (
	"strings"
	"testing"

	"github.com/matzehuels/memstack/pkg/errors"
)

func TestReadJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  errors.Code
		wantName string
		check    func(t *testing.T, err error)
	}{
		{
			name:     "PlainIntegers",
			input:    `{"name":"soc","start":0,"size":4096}`,
			wantName: "soc",
		},
		{
			name:     "HexStrings",
			input:    `{"name":"soc","start":"0x2000_0000","size":"0x1000"}`,
			wantName: "soc",
		},
		{
			name:     "DecimalStrings",
			input:    `{"name":"soc","start":"512","size":"1024"}`,
			wantName: "soc",
		},
		{
			name:     "DefaultName",
			input:    `{"start":0,"size":16}`,
			wantName: "Unnamed",
		},
		{
			name:    "MissingStart",
			input:   `{"name":"soc","size":16}`,
			wantErr: errors.ErrCodeInvalidInput,
			check: func(t *testing.T, err error) {
				if !strings.Contains(err.Error(), `"start"`) {
					t.Errorf("error does not name the field: %v", err)
				}
			},
		},
		{
			name:    "MissingSizeInChild",
			input:   `{"name":"soc","start":0,"size":32,"children":[{"name":"kid","start":0}]}`,
			wantErr: errors.ErrCodeInvalidInput,
			check: func(t *testing.T, err error) {
				if !strings.Contains(err.Error(), "root/soc/kid") {
					t.Errorf("error does not name the path: %v", err)
				}
			},
		},
		{
			name:    "NegativeNumber",
			input:   `{"name":"soc","start":-1,"size":16}`,
			wantErr: errors.ErrCodeInvalidInput,
		},
		{
			name:    "BadHex",
			input:   `{"name":"soc","start":"0xzz","size":16}`,
			wantErr: errors.ErrCodeInvalidInput,
		},
		{
			name:    "NotJSON",
			input:   `{`,
			wantErr: errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := ReadJSON(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("code = %q, want %q (%v)", errors.GetCode(err), tt.wantErr, err)
				}
				if tt.check != nil {
					tt.check(t, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadJSON: %v", err)
			}
			if root.Name != tt.wantName {
				t.Errorf("name = %q, want %q", root.Name, tt.wantName)
			}
		})
	}
}

func TestReadJSONSortsChildren(t *testing.T) {
	input := `{
		"name": "soc", "start": 0, "size": "0x1000",
		"children": [
			{"name": "hi", "start": "0x800", "size": "0x100"},
			{"name": "lo", "start": "0x100", "size": "0x100"}
		]
	}`
	root, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if root.Children[0].Name != "lo" || root.Children[1].Name != "hi" {
		t.Errorf("children not sorted by start: %v, %v", root.Children[0].Name, root.Children[1].Name)
	}
}
