package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/memstack/pkg/errors"
	"github.com/matzehuels/memstack/pkg/memmap"
)

// defaultName is used for nodes without a name field.
const defaultName = "Unnamed"

// rawNode mirrors the JSON input shape. Numeric fields go through number so
// hex strings and plain integers both work.
type rawNode struct {
	Name     string     `json:"name"`
	Start    *number    `json:"start"`
	Size     *number    `json:"size"`
	Children []*rawNode `json:"children"`
}

// number is a uint64 that unmarshals from a JSON integer, a decimal string,
// or a hex string with a 0x prefix. Underscores are ignored so addresses can
// be written as "0x2000_0000".
type number uint64

func (n *number) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := parseNumber(s)
		if err != nil {
			return err
		}
		*n = number(v)
		return nil
	}

	var v json.Number
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	u, err := strconv.ParseUint(v.String(), 10, 64)
	if err != nil {
		return fmt.Errorf("not a non-negative integer: %s", v)
	}
	*n = number(u)
	return nil
}

func parseNumber(s string) (uint64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(strings.ToLower(s)), "_", "")
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		return strconv.ParseUint(rest, 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}

// ImportJSON reads an address space map from a file path.
func ImportJSON(path string) (*memmap.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// ReadJSON reads an address space map from r. Decode errors name the
// offending field and are fatal at load time.
func ReadJSON(r io.Reader) (*memmap.Node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw rawNode
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode map")
	}
	return buildNode(&raw, "root")
}

func buildNode(raw *rawNode, path string) (*memmap.Node, error) {
	name := raw.Name
	if name == "" {
		name = defaultName
	}
	if raw.Start == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s/%s: missing field %q", path, name, "start")
	}
	if raw.Size == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s/%s: missing field %q", path, name, "size")
	}

	children := make([]*memmap.Node, 0, len(raw.Children))
	for _, rc := range raw.Children {
		c, err := buildNode(rc, path+"/"+name)
		if err != nil {
			return nil, err
		}
		children = append(children, c)
	}

	return memmap.New(name, uint64(*raw.Start), uint64(*raw.Size), children...), nil
}

// Load imports, validates, and flattens a map file in one step: the common
// path for every command. Validation failures surface all violations.
func Load(path string) (*memmap.Node, *memmap.Index, error) {
	root, err := ImportJSON(path)
	if err != nil {
		return nil, nil, err
	}
	if vs := memmap.Validate(root); len(vs) > 0 {
		return nil, nil, errors.FromViolations(vs)
	}
	return root, memmap.NewIndex(memmap.Flatten(root)), nil
}
