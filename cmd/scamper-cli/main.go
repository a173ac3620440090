package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/futig/scamper-backend/internal/cli"
	"github.com/futig/scamper-backend/internal/config"
	"github.com/futig/scamper-backend/internal/entity"
	"github.com/futig/scamper-backend/internal/form"
	"github.com/futig/scamper-backend/internal/integration/common"
	"github.com/futig/scamper-backend/internal/pkg/formatter"
	pkgLogger "github.com/futig/scamper-backend/internal/pkg/logger"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

func main() {
	envFlag := flag.String("env", "local", "Environment to load (local, prod, or custom)")
	problem := flag.String("problem", "", "Analyze this problem once and exit")
	problemContext := flag.String("context", "", "Optional context for -problem")
	demo := flag.Bool("demo", false, "Analyze a sample problem and exit")
	out := flag.String("out", "", "Also save results to this file")
	format := flag.String("format", "markdown", "Format for -out: markdown, pdf or docx")
	flag.Parse()

	cfg, err := config.LoadClientConfig(*envFlag)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := pkgLogger.New(cfg.LogLevel, *envFlag)
	if err != nil {
		log.Fatal("Failed to setup logger:", err)
	}
	defer func() { _ = logger.Sync() }()

	var opts []cli.Option
	if *out != "" {
		resultFormat, err := entity.ParseResultFormat(*format)
		if err != nil {
			log.Fatal(err)
		}
		opts = append(opts, cli.WithExport(*out, resultFormat))
	}

	connector := common.NewAPIConnector(cfg.HTTP, common.ClientCLI, logger)
	forms := form.NewHandler(form.NewClient(connector), form.NewRenderer())
	session := cli.NewSession(forms, formatter.NewFactory(), cli.NewSurveyDriver(os.Stdin, os.Stdout, os.Stderr), os.Stdout, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = ctxzap.ToContext(ctx, logger)

	logger.Debug("SCAMPER client configured", zap.String("api_url", cfg.HTTP.Url))

	switch {
	case *demo:
		session.Banner()
		fmt.Printf("\n🎯 Problema de demostración: %s\n📋 Contexto: %s\n", cli.DemoProblem, cli.DemoContext)
		err = runOnce(ctx, session, cli.DemoProblem, cli.DemoContext)
	case *problem != "":
		err = runOnce(ctx, session, *problem, *problemContext)
	default:
		err = session.Run(ctx)
	}

	if err != nil {
		logger.Error("SCAMPER client failed", zap.Error(err))
		os.Exit(1)
	}
}

// runOnce exits non-zero when the analysis itself failed
func runOnce(ctx context.Context, session *cli.Session, problem, problemContext string) error {
	view, err := session.RunOnce(ctx, problem, problemContext)
	if err != nil {
		return err
	}
	if view.Error != "" {
		return fmt.Errorf("analysis failed: %s", view.Error)
	}
	return nil
}
