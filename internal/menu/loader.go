package menu

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrUnknownAction reports a declarative entry whose action reference is not
// registered with the loader.
var ErrUnknownAction = errors.New("unknown action")

// Spec is one entry of a declarative menu document. Submenus nest through
// Items; the top-level document describes the root container.
type Spec struct {
	Name     string          `json:"name"`
	Type     string          `json:"type,omitempty"` // "item" or "submenu"
	Action   string          `json:"action,omitempty"`
	Args     json.RawMessage `json:"args,omitempty"`
	Wait     *bool           `json:"wait,omitempty"` // defaults to true
	Threaded bool            `json:"threaded,omitempty"`
	Hotkey   string          `json:"hotkey,omitempty"`
	Items    []Spec          `json:"items,omitempty"`
}

// Registry maps action references from declarative documents to callables.
// Resolving references is the loader's job; the navigation core only ever
// sees bound ActionFunc values.
type Registry map[string]ActionFunc

// Register binds a reference name to an action.
func (r Registry) Register(ref string, fn ActionFunc) {
	r[ref] = fn
}

// Load reads a declarative JSON document and builds the menu tree. The root
// container is a horizontal bar; every nested submenu is a vertical
// drop-down, matching the cascading layout convention.
func Load(r io.Reader, actions Registry) (*Container, error) {
	var spec Spec
	dec := json.NewDecoder(r)
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("decode menu document: %w", err)
	}
	return Build(spec, actions)
}

// LoadFile reads a declarative menu document from disk.
func LoadFile(path string, actions Registry) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open menu document: %w", err)
	}
	defer f.Close()
	return Load(f, actions)
}

// Build assembles the tree described by spec.
func Build(spec Spec, actions Registry) (*Container, error) {
	name := spec.Name
	if name == "" {
		name = "Main Menu"
	}
	root := NewContainer(name, Horizontal)
	root.Hotkey = firstRune(spec.Hotkey)
	for _, entry := range spec.Items {
		if err := buildInto(root, entry, actions); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func buildInto(parent *Container, spec Spec, actions Registry) error {
	if spec.Type == "submenu" || len(spec.Items) > 0 {
		sub := NewContainer(spec.Name, Vertical)
		sub.Hotkey = firstRune(spec.Hotkey)
		if err := parent.Attach(sub); err != nil {
			return err
		}
		for _, entry := range spec.Items {
			if err := buildInto(sub, entry, actions); err != nil {
				return err
			}
		}
		return nil
	}

	fn, ok := actions[spec.Action]
	if !ok {
		return fmt.Errorf("item %q: %w: %q", spec.Name, ErrUnknownAction, spec.Action)
	}
	item := NewItem(spec.Name, fn)
	item.Hotkey = firstRune(spec.Hotkey)
	item.Background = spec.Threaded
	item.Pause = spec.Wait == nil || *spec.Wait
	if err := decodeArgs(item, spec.Args); err != nil {
		return fmt.Errorf("item %q: %w", spec.Name, err)
	}
	return parent.Attach(item)
}

// decodeArgs interprets the declarative args field: absent means no
// arguments, the empty string requests an interactive prompt, a list is
// passed through, and a single scalar becomes a one-element argument list.
func decodeArgs(item *Item, raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if str == "" {
			item.PromptForArgs = true
			return nil
		}
		item.Args = []interface{}{str}
		return nil
	}
	var list []interface{}
	if err := json.Unmarshal(raw, &list); err == nil {
		item.Args = list
		return nil
	}
	var scalar interface{}
	if err := json.Unmarshal(raw, &scalar); err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	item.Args = []interface{}{scalar}
	return nil
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
