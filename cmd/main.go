package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/ijalalfrz/seatmap-parser/internal/app/config"
	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
	"github.com/ijalalfrz/seatmap-parser/internal/app/endpoints"
	"github.com/ijalalfrz/seatmap-parser/internal/app/service"
	"github.com/ijalalfrz/seatmap-parser/internal/app/transport"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/export"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/logger"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/seatmap"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/seatmapparser"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/seatmapparser/iata"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/seatmapparser/ota"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/storage"
	httptransport "github.com/ijalalfrz/seatmap-parser/internal/pkg/transport/http"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/utils"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
)

const shutdownTimeout = 10 * time.Second

// @title           Seatmap Parser API
// @version         0.0.1
// @description     seatmap-parser
// @host      localhost:8080
// @BasePath  /
// @license.name Rizal Alfarizi
// @license.url https://github.com/ijalalfrz
func main() {
	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel)
	must(dto.InitValidator())

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	ctx := context.Background()

	switch cmd := os.Args[1]; cmd {
	case "serve":
		runApp(cfg)
	case "history":
		fs := pflag.NewFlagSet(cmd, pflag.ExitOnError)
		limit := fs.Int("limit", 20, "number of conversions to list")
		_ = fs.Parse(os.Args[2:])

		deps, err := openDependencies(cfg)
		must(err)
		defer deps.Close()

		records, err := makeConverterService(cfg, deps).History(ctx, *limit)
		must(err)

		for _, record := range records {
			fmt.Printf("%d\t%s\t%s\t%s\trows=%d seats=%d\n",
				record.ID, record.CreatedAt, record.Format, record.Filename, record.TotalRows, record.TotalSeats)
		}
	case "help", "-h", "--help":
		usage()
	default:
		must(runConvert(ctx, os.Args[1:], os.Stdout, func() (*service.ConverterService, func(), error) {
			deps, err := openDependencies(cfg)
			if err != nil {
				return nil, nil, err
			}

			return makeConverterService(cfg, deps), deps.Close, nil
		}))
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  seatmap-parser <file.xml> [--format ota|iata] [--output path.json] [--xlsx path.xlsx]
  seatmap-parser serve
  seatmap-parser history [--limit n]`)
}

func must(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type convertOptions struct {
	input    string
	format   string
	output   string
	xlsxPath string
}

// runConvert parses the convert arguments and applies the extension guard
// before newService opens anything.
func runConvert(
	ctx context.Context,
	args []string,
	stdout io.Writer,
	newService func() (*service.ConverterService, func(), error),
) error {
	opts, ok, err := parseConvertArgs(args, stdout)
	if err != nil || !ok {
		return err
	}

	svc, closeService, err := newService()
	if err != nil {
		return err
	}
	defer closeService()

	return convertFile(ctx, svc, opts, stdout)
}

// parseConvertArgs reports ok=false for a name without the .xml extension,
// after printing the exit message.
func parseConvertArgs(args []string, stdout io.Writer) (convertOptions, bool, error) {
	var opts convertOptions

	fs := pflag.NewFlagSet("convert", pflag.ContinueOnError)
	fs.StringVar(&opts.format, "format", "", "source schema: ota|iata (detected when empty)")
	fs.StringVar(&opts.output, "output", "", "output JSON path")
	fs.StringVar(&opts.xlsxPath, "xlsx", "", "also export the seat map to this workbook")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return opts, false, nil
		}

		return opts, false, err
	}

	if fs.NArg() != 1 {
		return opts, false, errors.New("exactly one input file is required")
	}

	opts.input = fs.Arg(0)

	if !utils.HasXMLExtension(opts.input) {
		fmt.Fprintf(stdout, "The input file %s is not in XML format.  Parser script is now exiting...\n", opts.input)
		return opts, false, nil
	}

	return opts, true, nil
}

// convertFile converts one document and writes the JSON next to it.
func convertFile(ctx context.Context, svc *service.ConverterService, opts convertOptions, stdout io.Writer) error {
	input := opts.input

	raw, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}

	resp, err := svc.ConvertSeatMap(ctx, dto.ConvertRequest{
		Filename: input,
		Format:   opts.format,
		Document: raw,
	})
	if err != nil {
		return err
	}

	out, err := json.Marshal(resp.Result)
	if err != nil {
		return fmt.Errorf("encode seat map: %w", err)
	}

	outputPath := opts.output
	if outputPath == "" {
		outputPath = utils.ParsedOutputPath(input)
	}

	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	if opts.xlsxPath != "" {
		if err := export.SeatMapToXLSX(resp.Result, opts.xlsxPath); err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "The input file %s was converted and saved to %s.  Parser script is now exiting...\n", input, outputPath)

	return nil
}

func runApp(cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	var waitGroup sync.WaitGroup
	// Starts the server in a go routine
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		startHTTPServer(ctx, cfg)
	}()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-sigChannel:
		cancel()
		slog.InfoContext(ctx, "received OS signal. Exiting...", slog.String("signal", sig.String()))
	case <-ctx.Done():
		slog.ErrorContext(ctx, "failed to start HTTP server")
	}

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

func startHTTPServer(ctx context.Context, cfg config.Config) {
	deps, err := openDependencies(cfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to open dependencies", slog.String("error", err.Error()))
		return
	}
	defer deps.Close()

	endpts := makeEndpoints(&cfg, deps)

	// rate limit shares the cache redis and is off without it
	var limiter httptransport.Limiter
	if deps.redis != nil {
		limiter = redis_rate.NewLimiter(deps.redis)
	}

	router := transport.MakeHTTPRouter(&cfg, endpts, limiter)
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...", slog.Int("port", cfg.HTTP.Port))

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}

type dependencies struct {
	redis   *redis.Client
	archive *storage.DB
}

// openDependencies connects the optional redis cache and sqlite archive.
func openDependencies(cfg config.Config) (dependencies, error) {
	var deps dependencies

	if cfg.Redis.Addr != "" {
		deps.redis = redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  cfg.Redis.Timeout,
			ReadTimeout:  cfg.Redis.Timeout,
			WriteTimeout: cfg.Redis.Timeout,
		})
	}

	if cfg.Archive.DBPath != "" {
		db, err := storage.Open(cfg.Archive.DBPath)
		if err != nil {
			deps.Close()
			return dependencies{}, fmt.Errorf("open archive: %w", err)
		}

		deps.archive = db
	}

	return deps, nil
}

func (d dependencies) Close() {
	if d.redis != nil {
		_ = d.redis.Close()
	}

	if d.archive != nil {
		_ = d.archive.Close()
	}
}

func makeEndpoints(cfg *config.Config, deps dependencies) endpoints.Endpoints {
	return endpoints.Endpoints{
		ConverterEndpoint: endpoints.MakeConverterEndpoint(makeConverterService(*cfg, deps)),
	}
}

// register seat map parsers
func initParserFactory() *seatmapparser.ParserFactory {
	factory := seatmapparser.NewParserFactory()
	factory.AddParser(ota.FormatName, ota.NewParser())
	factory.AddParser(iata.FormatName, iata.NewParser())

	return factory
}

func makeConverterService(cfg config.Config, deps dependencies) *service.ConverterService {
	// interfaces stay nil when the backing store is disabled
	var (
		cache   service.SeatMapCacher
		archive service.ConversionArchiver
	)

	if deps.redis != nil {
		cache = seatmap.NewSeatMapCache(deps.redis)
	}

	if deps.archive != nil {
		archive = deps.archive
	}

	return service.NewConverterService(initParserFactory(), cache, archive,
		cfg.Converter.CacheExpiration, cfg.Converter.LockTimeout)
}
