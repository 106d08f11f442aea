package parser

import "asisto/internal/instruction"

// Action vocabulary. The per-action sets are disjoint, so the first match on
// the leading token is unambiguous.
var actionWords = map[string]instruction.Action{
	// create
	"nueva":     instruction.ActionCreate,
	"nuevo":     instruction.ActionCreate,
	"crear":     instruction.ActionCreate,
	"insertar":  instruction.ActionCreate,
	"agregar":   instruction.ActionCreate,
	"anadir":    instruction.ActionCreate,
	"alta":      instruction.ActionCreate,
	"registrar": instruction.ActionCreate,

	// list
	"listado": instruction.ActionList,
	"listar":  instruction.ActionList,
	"mostrar": instruction.ActionList,
	"ver":     instruction.ActionList,
	"todas":   instruction.ActionList,
	"todos":   instruction.ActionList,

	// update
	"editar":     instruction.ActionUpdate,
	"actualizar": instruction.ActionUpdate,
	"modificar":  instruction.ActionUpdate,
	"cambiar":    instruction.ActionUpdate,
	"actualiza":  instruction.ActionUpdate,
	"modifica":   instruction.ActionUpdate,

	// delete
	"eliminar": instruction.ActionDelete,
	"borrar":   instruction.ActionDelete,
	"quitar":   instruction.ActionDelete,
	"elimina":  instruction.ActionDelete,
	"borra":    instruction.ActionDelete,
}

// Entity vocabulary, singular and plural surface forms. Input reaches the
// lookup already diacritic-free, accented forms never occur here.
var entityWords = map[string]instruction.Entity{
	"categoria":  instruction.EntityCategories,
	"categorias": instruction.EntityCategories,
}

// Filler tokens skipped while scanning for the entity, the id and field
// values ("listar todas las categorias", "eliminar la categoria 3").
var stopwords = map[string]bool{
	"la": true, "las": true, "los": true, "el": true,
	"de": true, "a": true, "en": true, "con": true,
	"todas": true, "todos": true,
}

// Field names recognized inside an update. The grammar accepts any of these
// as an anchor, but today every value is written to the description column.
var updatableFields = map[string]bool{
	"descripcion": true,
}

// Boolean surface forms for value coercion. The accented "sí" is kept for
// callers that bypass normalization.
var (
	trueWords  = map[string]bool{"verdadero": true, "true": true, "1": true, "si": true, "sí": true, "yes": true}
	falseWords = map[string]bool{"falso": true, "false": true, "0": true, "no": true}
)
