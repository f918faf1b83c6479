// invoiceform serves an editable invoice form and exports invoices to PDF.
//
// Usage:
//
//	invoiceform serve [--port 8080]
//	invoiceform render --in invoice.yaml [--out invoice.pdf]
//	invoiceform totals --in invoice.yaml
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	invoiceform "github.com/porticus-lab/go-invoice-form"
	"github.com/porticus-lab/go-invoice-form/internal/config"
	"github.com/porticus-lab/go-invoice-form/internal/server"
)

func main() {
	_ = godotenv.Load()
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	inFlag := &cli.StringFlag{
		Name:     "in",
		Aliases:  []string{"i"},
		Usage:    "invoice file (YAML or JSON)",
		Required: true,
	}
	return &cli.App{
		Name:  "invoiceform",
		Usage: "edit invoices in the browser and export them to PDF",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the interactive invoice form",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "port", Aliases: []string{"p"}, Usage: "listen port (overrides PORT)"},
				},
				Action: runServe,
			},
			{
				Name:  "render",
				Usage: "export an invoice file to PDF",
				Flags: []cli.Flag{
					inFlag,
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: invoiceform.DefaultFilename, Usage: "output file"},
				},
				Action: runRender,
			},
			{
				Name:   "totals",
				Usage:  "print subtotal, tax and total of an invoice file",
				Flags:  []cli.Flag{inFlag},
				Action: runTotals,
			},
		},
	}
}

// runServe implements the "serve" command.
func runServe(c *cli.Context) error {
	cfg := config.Load()
	if p := c.String("port"); p != "" {
		cfg.Port = p
	}

	capt, err := invoiceform.NewChromeCapturer(append(cfg.CaptureOptions(), invoiceform.WithLogger(stdLogger{}))...)
	if err != nil {
		return err
	}
	defer capt.Close()

	exp := invoiceform.NewExporter(capt,
		invoiceform.WithPageConfig(cfg.PageConfig()),
		invoiceform.WithExportLogger(stdLogger{}),
	)
	store := server.NewStore(
		server.WithSessionTTL(cfg.SessionTTL),
		server.WithMaxSessions(cfg.MaxSessions),
	)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.WithLogging(server.New(exp, server.WithStore(store))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("Starting server env=%s addr=%s", cfg.Env, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errc:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}
	log.Println("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
	return nil
}

// runRender implements the "render" command.
func runRender(c *cli.Context) error {
	inv, err := loadInvoice(c.String("in"))
	if err != nil {
		return err
	}
	cfg := config.Load()
	pg := cfg.PageConfig()

	res, err := invoiceform.Export(c.Context, inv, &pg, cfg.CaptureOptions()...)
	if err != nil {
		return err
	}
	out := c.String("out")
	if err := res.WriteToFile(out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Fprintf(c.App.Writer, "wrote %s (%d bytes)\n", out, res.Len())
	return nil
}

// runTotals implements the "totals" command.
func runTotals(c *cli.Context) error {
	inv, err := loadInvoice(c.String("in"))
	if err != nil {
		return err
	}
	printTotals(c.App.Writer, inv)
	return nil
}
