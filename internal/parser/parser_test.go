package parser

import (
	"reflect"
	"testing"

	"asisto/internal/instruction"
)

func TestParseCreate(t *testing.T) {
	inst := Parse("Nueva categoria Conciertos")
	if inst == nil {
		t.Fatal("Parse() returned nil")
	}
	if inst.Action != instruction.ActionCreate {
		t.Errorf("Action = %v, want create", inst.Action)
	}
	if inst.Entity != instruction.EntityCategories {
		t.Errorf("Entity = %v, want categorias", inst.Entity)
	}
	if got := inst.Params["descripcion"]; got != "Conciertos" {
		t.Errorf("descripcion = %v, want Conciertos", got)
	}
}

func TestParseDiacriticInsensitive(t *testing.T) {
	a := Parse("Nueva categoría Conciertos")
	b := Parse("Nueva categoria Conciertos")
	if a == nil || b == nil {
		t.Fatal("Parse() returned nil")
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("accented parse = %+v, plain parse = %+v", a, b)
	}
}

func TestParseCreateSynonyms(t *testing.T) {
	for _, verb := range []string{"nueva", "nuevo", "crear", "insertar", "agregar", "añadir", "alta", "registrar"} {
		inst := Parse(verb + " categoria Teatro")
		if inst == nil {
			t.Errorf("Parse(%q …) = nil, want create", verb)
			continue
		}
		if inst.Action != instruction.ActionCreate {
			t.Errorf("Parse(%q …) action = %v, want create", verb, inst.Action)
		}
	}
}

func TestParseCreateMultiWordDescription(t *testing.T) {
	inst := Parse("nueva categoria Conciertos de Rock")
	if inst == nil {
		t.Fatal("Parse() returned nil")
	}
	if got := inst.Params["descripcion"]; got != "Conciertos de Rock" {
		t.Errorf("descripcion = %v, want 'Conciertos de Rock'", got)
	}
}

func TestParseCreateWithoutDescription(t *testing.T) {
	if inst := Parse("nueva categoria"); inst != nil {
		t.Errorf("Parse() = %+v, want nil for create without description", inst)
	}
}

func TestParseList(t *testing.T) {
	tests := []string{
		"listar categorias",
		"listado de categorias",
		"mostrar las categorias",
		"ver categorias",
		"ver todas las categorias",
		"ver todos los categorias",
		"listar todas las categorias",
	}
	for _, text := range tests {
		inst := Parse(text)
		if inst == nil {
			t.Errorf("Parse(%q) = nil, want list", text)
			continue
		}
		if inst.Action != instruction.ActionList {
			t.Errorf("Parse(%q) action = %v, want list", text, inst.Action)
		}
		if len(inst.Params) != 0 {
			t.Errorf("Parse(%q) params = %v, want empty", text, inst.Params)
		}
	}
}

func TestParseUpdate(t *testing.T) {
	inst := Parse("editar categoria 1 descripcion Cine clasico")
	if inst == nil {
		t.Fatal("Parse() returned nil")
	}
	if inst.Action != instruction.ActionUpdate {
		t.Errorf("Action = %v, want update", inst.Action)
	}
	if got := inst.Params["id"]; got != 1 {
		t.Errorf("id = %v, want 1", got)
	}
	if got := inst.Params["descripcion"]; got != "Cine clasico" {
		t.Errorf("descripcion = %v, want 'Cine clasico'", got)
	}
}

func TestParseUpdateDropsStopwordsInValue(t *testing.T) {
	inst := Parse("editar categoria 1 descripcion Conciertos de Jazz")
	if inst == nil {
		t.Fatal("Parse() returned nil")
	}
	// "de" is a stopword and is dropped from collected values.
	if got := inst.Params["descripcion"]; got != "Conciertos Jazz" {
		t.Errorf("descripcion = %v, want 'Conciertos Jazz'", got)
	}
}

func TestParseUpdateRequiresField(t *testing.T) {
	// An id alone is not a complete update.
	if inst := Parse("editar categoria 1"); inst != nil {
		t.Errorf("Parse() = %+v, want nil for update without fields", inst)
	}
}

func TestParseUpdateRequiresID(t *testing.T) {
	if inst := Parse("editar categoria descripcion Teatro"); inst != nil {
		t.Errorf("Parse() = %+v, want nil for update without id", inst)
	}
}

func TestParseUpdateToleratesNoiseBeforeField(t *testing.T) {
	inst := Parse("actualiza la categoria 7 su descripcion Opera")
	if inst == nil {
		t.Fatal("Parse() returned nil")
	}
	if got := inst.Params["id"]; got != 7 {
		t.Errorf("id = %v, want 7", got)
	}
	if got := inst.Params["descripcion"]; got != "Opera" {
		t.Errorf("descripcion = %v, want Opera", got)
	}
}

func TestParseUpdateEmptyValueDiscarded(t *testing.T) {
	// A field anchor with no value tokens leaves the update incomplete.
	if inst := Parse("editar categoria 3 descripcion"); inst != nil {
		t.Errorf("Parse() = %+v, want nil for empty field value", inst)
	}
}

func TestParseUpdateBooleanCoercion(t *testing.T) {
	tests := []struct {
		value string
		want  any
	}{
		{"si", true},
		{"verdadero", true},
		{"true", true},
		{"1", true},
		{"yes", true},
		{"no", false},
		{"falso", false},
		{"false", false},
		{"0", false},
		{"Teatro", "Teatro"},
	}
	for _, tt := range tests {
		inst := Parse("editar categoria 3 descripcion " + tt.value)
		if inst == nil {
			t.Errorf("Parse(… %q) = nil", tt.value)
			continue
		}
		if got := inst.Params["descripcion"]; got != tt.want {
			t.Errorf("descripcion for %q = %v (%T), want %v", tt.value, got, got, tt.want)
		}
	}
}

func TestParseDelete(t *testing.T) {
	inst := Parse("eliminar categoria 5")
	if inst == nil {
		t.Fatal("Parse() returned nil")
	}
	if inst.Action != instruction.ActionDelete {
		t.Errorf("Action = %v, want delete", inst.Action)
	}
	if got := inst.Params["id"]; got != 5 {
		t.Errorf("id = %v, want 5", got)
	}
}

func TestParseDeleteRequiresID(t *testing.T) {
	if inst := Parse("eliminar categoria"); inst != nil {
		t.Errorf("Parse() = %+v, want nil for delete without id", inst)
	}
	if inst := Parse("eliminar la categoria cinco"); inst != nil {
		t.Errorf("Parse() = %+v, want nil for non-numeric id", inst)
	}
}

func TestParseDeleteSkipsStopwordsBeforeID(t *testing.T) {
	inst := Parse("borrar la categoria 12")
	if inst == nil {
		t.Fatal("Parse() returned nil")
	}
	if got := inst.Params["id"]; got != 12 {
		t.Errorf("id = %v, want 12", got)
	}
}

func TestParseTrailingPunctuation(t *testing.T) {
	a := Parse("nueva categoria Cine.")
	b := Parse("nueva categoria Cine")
	if a == nil || b == nil {
		t.Fatal("Parse() returned nil")
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("punctuated parse = %+v, plain parse = %+v", a, b)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"hola que tal",
		"nueva lista de tareas", // unknown entity
		"cantar categoria 1",    // unknown action
	}
	for _, text := range tests {
		if inst := Parse(text); inst != nil {
			t.Errorf("Parse(%q) = %+v, want nil", text, inst)
		}
	}
}
