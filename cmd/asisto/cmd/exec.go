package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"asisto/internal/assistant"
	"asisto/internal/config"
	"asisto/internal/executor"
	"asisto/internal/logging"
	"asisto/internal/store"
)

var execCmd = &cobra.Command{
	Use:   "exec <instrucción...>",
	Short: "Ejecuta una instrucción y muestra el resultado",
	Long: `Ejecuta una única instrucción sin abrir el chat.

Ejemplos:
  asisto exec nueva categoria Conciertos
  asisto exec listar todas las categorias
  asisto exec editar categoria 1 descripcion Teatro
  asisto exec eliminar categoria 1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		printError("configuración", err)
		return err
	}

	log, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		printError("log", err)
		return err
	}
	defer log.Sync()

	st, err := store.Open(store.Config{Path: cfg.Store.Path})
	if err != nil {
		printError("almacén", err)
		return err
	}
	defer st.Close()

	asst := assistant.New(executor.New(st), log)
	fmt.Println(asst.Respond(context.Background(), strings.Join(args, " ")))
	return nil
}
