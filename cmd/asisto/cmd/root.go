package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "asisto",
	Short: "asisto - asistente de categorías por voz y texto",
	Long: `asisto interpreta instrucciones cortas en español, escritas o
dictadas, y las ejecuta contra el almacén de categorías.

Ejemplos de instrucciones:
  Nueva categoría Conciertos
  Listar todas las categorías
  Editar categoría 1 descripción Teatro
  Eliminar categoría 1`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Fichero de configuración (default: ./config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log detallado")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
