// Comando feedimport: importación puntual y consultas sin levantar la API.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/warehouse-feeds/internal/application/importer"
	"github.com/jhoicas/warehouse-feeds/internal/bootstrap"
	"github.com/jhoicas/warehouse-feeds/internal/domain"
	"github.com/jhoicas/warehouse-feeds/pkg/config"
	"github.com/jhoicas/warehouse-feeds/pkg/logger"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitConflict = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitOK)
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return exitUsage
	case errors.Is(err, domain.ErrImportInProgress):
		return exitConflict
	}
	return exitFailure
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "feedimport",
		Short:         "Importa los feeds CSV de productos, inventario y precios",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newDetailsCmd(), newFilesCmd())
	return root
}

// withApp carga configuración y dependencias para un subcomando.
func withApp(cmd *cobra.Command, fn func(app *bootstrap.App, cfg *config.Config) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.NewWithWriter(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}, cmd.ErrOrStderr())

	app, err := bootstrap.New(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app, cfg)
}

func newRunCmd() *cobra.Command {
	var urls importer.FeedURLs

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Ejecuta una importación completa",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *bootstrap.App, cfg *config.Config) error {
				in := importer.FeedURLs{
					Products:  firstNonEmpty(urls.Products, cfg.Schedule.ProductsURL),
					Inventory: firstNonEmpty(urls.Inventory, cfg.Schedule.InventoryURL),
					Prices:    firstNonEmpty(urls.Prices, cfg.Schedule.PricesURL),
				}
				summary, err := app.Service.Import(cmd.Context(), in)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), summary)
			})
		},
	}

	cmd.Flags().StringVar(&urls.Products, "products", "", "URL del feed de productos (por defecto SCHEDULE_PRODUCTS_URL)")
	cmd.Flags().StringVar(&urls.Inventory, "inventory", "", "URL del feed de inventario (por defecto SCHEDULE_INVENTORY_URL)")
	cmd.Flags().StringVar(&urls.Prices, "prices", "", "URL del feed de precios (por defecto SCHEDULE_PRICES_URL)")
	return cmd
}

func newDetailsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "details <sku>",
		Short: "Muestra un producto importado con su inventario y precio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *bootstrap.App, _ *config.Config) error {
				out, err := app.Catalog.GetBySKU(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), out)
			})
		},
	}
}

func newFilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "Lista los ficheros descargados",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(app *bootstrap.App, _ *config.Config) error {
				files, err := app.Fetcher.ListFiles()
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", f.Path, f.Size, f.ModTime.Format("2006-01-02 15:04:05"))
				}
				return nil
			})
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
