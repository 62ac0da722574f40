// Command salesctl agrupa las tareas de operador: migraciones, importación de planillas,
// vaciado de caché y emisión de tokens.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/changerank-api/pkg/config"
	"github.com/jhoicas/changerank-api/pkg/logger"
)

// version se fija con -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "salesctl",
		Short:         "Herramientas de operador para changerank",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newMigrateCmd(),
		newImportMasterCmd(),
		newImportSalesCmd(),
		newClearCacheCmd(),
		newTokenCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Muestra la versión",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)
	return root
}

// setup carga la configuración y un logger hacia la salida de error del comando.
func setup(cmd *cobra.Command) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	return cfg, logger.NewWriter(cmd.ErrOrStderr()), nil
}
