// Package assistant is the top of the command pipeline: it parses incoming
// text and either executes the instruction or answers with usage examples.
package assistant

import (
	"context"

	"go.uber.org/zap"

	"asisto/internal/executor"
	"asisto/internal/parser"
)

// Assistant answers chat input with the result of the command it contains
type Assistant struct {
	exec *executor.Executor
	log  *zap.SugaredLogger
}

// New creates an assistant on top of the given executor
func New(exec *executor.Executor, log *zap.SugaredLogger) *Assistant {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Assistant{exec: exec, log: log}
}

// Respond parses text and returns the message to show the user. Unparseable
// input gets the help message, it is user error and not a system fault.
func (a *Assistant) Respond(ctx context.Context, text string) string {
	inst := parser.Parse(text)
	if inst == nil {
		a.log.Debugw("command not understood", "text", text)
		return Help()
	}
	a.log.Infow("executing", "instruction", inst.String())
	return a.exec.Execute(ctx, inst)
}

// Help returns the usage message with example commands
func Help() string {
	return `No entendí la instrucción. Prueba por ejemplo:
  • Nueva categoría Conciertos
  • Listar todas las categorías
  • Editar categoría 1 descripción Teatro
  • Eliminar categoría 1`
}
