// Package executor dispatches validated instructions to the entity service
// and renders every outcome, success or failure, as a single user-facing
// Spanish message for the chat transcript.
package executor

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"asisto/internal/instruction"
	"asisto/internal/store"
)

// CategoryService is the CRUD contract the executor consumes. Update and
// Delete report the number of affected rows so a missing id can be told
// apart from a store fault.
type CategoryService interface {
	Create(ctx context.Context, description string) (int64, error)
	ListAll(ctx context.Context) ([]store.Category, error)
	Update(ctx context.Context, id int64, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// Executor routes instructions to the service for their entity
type Executor struct {
	categories CategoryService
}

// New creates an executor backed by the given category service
func New(categories CategoryService) *Executor {
	return &Executor{categories: categories}
}

// Execute runs the instruction and returns the message to show the user.
// It never fails outward: store errors are rendered as "Error: …" text and
// zero-row updates or deletes as an explicit "no existe" message. Either the
// single store call happens with fully validated parameters or no call
// happens at all.
func (e *Executor) Execute(ctx context.Context, inst *instruction.Instruction) string {
	if inst.Entity != instruction.EntityCategories {
		// Unreachable through the parser, which only emits known entities.
		return "Entidad no soportada."
	}
	return e.executeCategories(ctx, inst)
}

func (e *Executor) executeCategories(ctx context.Context, inst *instruction.Instruction) string {
	switch inst.Action {
	case instruction.ActionCreate:
		desc, _ := inst.Params["descripcion"].(string)
		desc = strings.TrimSpace(desc)
		if desc == "" {
			return "Falta la descripción de la categoría."
		}
		id, err := e.categories.Create(ctx, desc)
		if err != nil {
			return errorMessage(err)
		}
		return fmt.Sprintf("Categoría creada: «%s» (id %d).", desc, id)

	case instruction.ActionList:
		rows, err := e.categories.ListAll(ctx)
		if err != nil {
			return errorMessage(err)
		}
		if len(rows) == 0 {
			return "No hay categorías."
		}
		lines := make([]string, 0, len(rows))
		for _, c := range rows {
			lines = append(lines, fmt.Sprintf("• %d: %s", c.ID, c.Description))
		}
		return "Categorías:\n" + strings.Join(lines, "\n")

	case instruction.ActionUpdate:
		id, ok := inst.ID()
		if !ok {
			return "Falta el id para actualizar."
		}
		fields := inst.Fields()
		if len(fields) == 0 {
			return "Falta al menos un campo a actualizar."
		}
		n, err := e.categories.Update(ctx, int64(id), fields)
		if err != nil {
			return errorMessage(err)
		}
		if n == 0 {
			return fmt.Sprintf("No existe categoría con id %d.", id)
		}
		return fmt.Sprintf("Categoría %d actualizada: %s.", id, summarizeFields(fields))

	case instruction.ActionDelete:
		id, ok := inst.ID()
		if !ok {
			return "Falta el id de la categoría a eliminar."
		}
		n, err := e.categories.Delete(ctx, int64(id))
		if err != nil {
			return errorMessage(err)
		}
		if n == 0 {
			return fmt.Sprintf("No existe categoría con id %d.", id)
		}
		return fmt.Sprintf("Categoría %d eliminada.", id)
	}

	return "Acción no implementada."
}

// summarizeFields renders the applied field/value pairs in stable order
func summarizeFields(fields map[string]any) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(parts, ", ")
}

func errorMessage(err error) string {
	return fmt.Sprintf("Error: %v", err)
}
