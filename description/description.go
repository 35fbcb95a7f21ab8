// Package description loads human-authored declaration ROM descriptions.
//
// A description is a YAML sequence of resource lists:
//
//	- id: 128
//	  resources:
//	    - id: sRsrcType
//	      type: RsrcType
//	      data: {category: 3, cType: 1, drSW: 1, drHW: 0x1234}
//	    - id: sRsrcName
//	      type: String
//	      data: Display_Video_Sample
//	    - id: VendorInfo
//	      type: ResourceList
//	      resources:
//	        - id: VendorID
//	          type: String
//	          data: ACME
//
// Resource ids are either numbers or symbolic names. Names inside a list nested
// under VendorInfo are resolved against the VendorInfo id table.
package description

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/maja42/declrom/compiler"
)

type rawList struct {
	ID        yaml.Node      `yaml:"id"`
	Resources *[]rawResource `yaml:"resources"`
}

type rawResource struct {
	ID        yaml.Node      `yaml:"id"`
	Type      string         `yaml:"type"`
	Data      yaml.Node      `yaml:"data"`
	Resources *[]rawResource `yaml:"resources"`
}

// Parse converts a YAML description into the compiler's directory.
// An empty document yields an empty directory.
func Parse(data []byte) (compiler.Directory, error) {
	var raw []rawList
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return compiler.Directory{}, &compiler.Error{
			Code:   compiler.CodeMalformedInput,
			Detail: "invalid YAML description",
			Cause:  err,
		}
	}

	dir := compiler.Directory{Lists: make([]compiler.ResourceList, 0, len(raw))}
	for i, l := range raw {
		path := []string{fmt.Sprintf("lists[%d]", i)}

		id, err := resolveID(l.ID, compiler.ScopeGlobal, path)
		if err != nil {
			return compiler.Directory{}, err
		}
		if l.Resources == nil {
			return compiler.Directory{}, compiler.MalformedInput(path, "required field %q not found", "resources")
		}
		resources, err := convertResources(*l.Resources, compiler.ScopeGlobal, path)
		if err != nil {
			return compiler.Directory{}, err
		}
		dir.Lists = append(dir.Lists, compiler.ResourceList{
			ID:        id,
			Resources: resources,
		})
	}
	return dir, nil
}

// Load reads a YAML description from r.
func Load(r io.Reader) (compiler.Directory, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return compiler.Directory{}, fmt.Errorf("read description: %w", err)
	}
	return Parse(data)
}

// LoadFile reads a YAML description from the file at path.
func LoadFile(path string) (compiler.Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return compiler.Directory{}, err
	}
	return Parse(data)
}

func convertResources(raw []rawResource, scope compiler.Scope, path []string) ([]compiler.Resource, error) {
	resources := make([]compiler.Resource, 0, len(raw))
	for i, r := range raw {
		rpath := extend(path, fmt.Sprintf("resources[%d]", i))

		id, err := resolveID(r.ID, scope, rpath)
		if err != nil {
			return nil, err
		}
		if r.Type == "" {
			return nil, compiler.MalformedInput(rpath, "required field %q not found", "type")
		}
		kind, err := compiler.ParseKind(r.Type)
		if err != nil {
			return nil, compiler.UnknownResourceKind(rpath, r.Type)
		}

		var payload compiler.Payload
		if kind == compiler.KindResourceList {
			if r.Resources == nil {
				return nil, compiler.MalformedInput(rpath, "required field %q not found", "resources")
			}
			nested, err := convertResources(*r.Resources, scope.Child(id), rpath)
			if err != nil {
				return nil, err
			}
			payload = compiler.NestedList(nested)
		} else {
			payload, err = convertPayload(kind, &r.Data, extend(rpath, "data"))
			if err != nil {
				return nil, err
			}
		}

		resources = append(resources, compiler.Resource{
			ID:      id,
			Payload: payload,
		})
	}
	return resources, nil
}

// resolveID returns the numeric id of an id node.
// Numbers are used directly, strings are looked up in the id table of scope.
func resolveID(node yaml.Node, scope compiler.Scope, path []string) (uint8, error) {
	path = extend(path, "id")
	if node.Kind == 0 {
		return 0, compiler.MalformedInput(path, "required field %q not found", "id")
	}
	if node.Kind != yaml.ScalarNode {
		return 0, compiler.MalformedInput(path, "id must be a number or a name")
	}

	if node.ShortTag() == "!!int" {
		var id int64
		if err := node.Decode(&id); err != nil {
			return 0, compiler.MalformedInput(path, "invalid id %q", node.Value)
		}
		if id < 0 || id > 0xFF {
			return 0, compiler.MalformedInput(path, "id %d out of range", id)
		}
		return uint8(id), nil
	}

	id, err := compiler.ResolveID(scope, node.Value)
	if err != nil {
		return 0, compiler.UnknownResourceID(path, scope, node.Value)
	}
	return id, nil
}

func extend(path []string, elem string) []string {
	p := make([]string, len(path), len(path)+1)
	copy(p, path)
	return append(p, elem)
}
