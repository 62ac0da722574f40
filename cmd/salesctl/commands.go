package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/changerank-api/internal/app"
	"github.com/jhoicas/changerank-api/internal/application/derived"
	"github.com/jhoicas/changerank-api/internal/infrastructure/postgres"
	"github.com/jhoicas/changerank-api/internal/infrastructure/xlsx"
	"github.com/jhoicas/changerank-api/pkg/jwt"
)

// ── Migraciones ─────────────────────────────────────────────────────────────

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Aplica o revierte el esquema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Component("migrate"))
			if err != nil {
				return err
			}
			defer m.Close()

			if args[0] == "down" {
				return m.Down()
			}
			return m.Up()
		},
	}
}

// ── Importaciones ───────────────────────────────────────────────────────────

func newImportMasterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-master FILE",
		Short: "Importa el maestro de categorías desde un .xlsx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkbook(cmd, args[0], func(a *app.App, wb *xlsx.Workbook) (any, error) {
				return a.MasterImport.Import(cmd.Context(), wb)
			})
		},
	}
}

func newImportSalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-sales FILE",
		Short: "Importa un libro de ventas por departamento desde un .xlsx",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withWorkbook(cmd, args[0], func(a *app.App, wb *xlsx.Workbook) (any, error) {
				return a.SalesImport.Import(cmd.Context(), wb)
			})
		},
	}
}

// withWorkbook abre el libro y las dependencias, ejecuta run e imprime el resultado en JSON.
func withWorkbook(cmd *cobra.Command, path string, run func(*app.App, *xlsx.Workbook) (any, error)) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	wb, err := xlsx.OpenFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer wb.Close()

	a, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := run(a, wb)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ── Caché ───────────────────────────────────────────────────────────────────

func newClearCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Vacía la caché derivada y avanza la generación",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			if !cfg.Cache.UsesRedis() {
				log.Warn().Msg("CACHE_BACKEND=memory: solo se vacía la caché de este proceso, no la del servidor")
			}
			store, err := app.NewCacheStore(cfg.Cache)
			if err != nil {
				return err
			}
			defer store.Close()

			svc := derived.NewService(store, nil, nil, derived.WithLogger(log.Component("derived")))
			if err := svc.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("vaciar caché: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "caché vaciada")
			return nil
		},
	}
}

// ── Tokens ──────────────────────────────────────────────────────────────────

func newTokenCmd() *cobra.Command {
	var subject, role string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un JWT para un operador o lector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if role != jwt.RoleOperator && role != jwt.RoleViewer {
				return fmt.Errorf("rol inválido %q (%s|%s)", role, jwt.RoleOperator, jwt.RoleViewer)
			}
			cfg, _, err := setup(cmd)
			if err != nil {
				return err
			}
			tok, err := jwt.Generate(cfg.JWT.Secret, subject, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "identificador del operador")
	cmd.Flags().StringVar(&role, "role", jwt.RoleOperator, "rol: operator|viewer")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
