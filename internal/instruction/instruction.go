// Package instruction defines the value types produced by the command parser:
// the CRUD action, the target entity and the validated instruction itself.
package instruction

import (
	"fmt"
	"sort"
	"strings"
)

// Action is the CRUD verb of a command
type Action string

const (
	ActionCreate Action = "crear"
	ActionList   Action = "listar"
	ActionUpdate Action = "actualizar"
	ActionDelete Action = "eliminar"
)

// Entity is the noun a command targets
// The set is open: new entities only need vocabulary and a service binding
type Entity string

const (
	EntityCategories Entity = "categorias"
)

// Instruction is a parsed and validated command ready for execution.
// It is only constructed by the parser once the per-action completeness
// rules hold, so an Instruction in flight is always executable.
//
// Params depends on Action:
//   - create: "descripcion" (non-empty string)
//   - list:   empty
//   - update: "id" (int) plus at least one field key (string or bool value)
//   - delete: "id" (int)
type Instruction struct {
	Action Action
	Entity Entity
	Params map[string]any
}

// ID returns the numeric id parameter, or false when absent
func (in *Instruction) ID() (int, bool) {
	v, ok := in.Params["id"]
	if !ok {
		return 0, false
	}
	id, ok := v.(int)
	return id, ok
}

// Fields returns every parameter except the id, in a fresh map
// For update instructions these are the field/value pairs to write
func (in *Instruction) Fields() map[string]any {
	fields := make(map[string]any, len(in.Params))
	for k, v := range in.Params {
		if k == "id" {
			continue
		}
		fields[k] = v
	}
	return fields
}

// String renders the instruction for logs and debugging
func (in *Instruction) String() string {
	keys := make([]string, 0, len(in.Params))
	for k := range in.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", in.Action, in.Entity)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, in.Params[k])
	}
	return b.String()
}
