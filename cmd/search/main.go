package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/benmeehan/climate-search/internal/models"
	"github.com/benmeehan/climate-search/internal/render"
	"github.com/benmeehan/climate-search/internal/services"
	"github.com/benmeehan/climate-search/internal/state_managers"
	"github.com/benmeehan/climate-search/internal/utils"
	"github.com/benmeehan/climate-search/pkg/file"
	"github.com/benmeehan/climate-search/pkg/page"
	"github.com/benmeehan/climate-search/pkg/places"
	"github.com/benmeehan/climate-search/pkg/s3"
	"github.com/rs/zerolog"
)

func main() {
	configFile := flag.String("config", "configs/config.yaml", "path to the configuration file")
	query := flag.String("q", "", "place to search for")
	pick := flag.Int("pick", 0, "select the N-th suggestion (1-based) instead of resolving free text")
	outputFile := flag.String("out", "", "write the rendered page here (overrides output.file)")
	flag.Parse()

	// Bootstrap logger until the configured one is available
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Initialize file operations handler
	fileClient := file.NewFileService()

	// Load configuration from file
	config, err := utils.LoadConfig(*configFile, fileClient)
	if err != nil {
		log.Fatal().Err(err).Str("file", *configFile).Msg("Failed to load configuration")
	}
	log = newLogger(config)

	if strings.TrimSpace(*query) == "" {
		log.Fatal().Msg("Nothing to search for, pass a place with -q")
	}
	if *outputFile != "" {
		config.Output.File = *outputFile
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, html, err := search(ctx, config, fileClient, *query, *pick, log)
	if err != nil {
		log.Error().Err(err).Str("query", *query).Msg("Search failed")
		os.Exit(1)
	}

	publisher, err := newPublisher(ctx, config, fileClient, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to object storage")
		os.Exit(1)
	}

	published, err := publisher.Publish(ctx, result, html)
	if err != nil {
		log.Error().Err(err).Msg("Failed to publish results")
		os.Exit(1)
	}

	printResult(result, published)
}

func newLogger(config *utils.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(config.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if config.Logging.Pretty {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

// search wires the pipeline and runs one submission. It returns the result
// and the page as rendered afterwards.
func search(ctx context.Context, config *utils.Config, fileClient file.FileOperations, query string, pick int,
	log zerolog.Logger) (*models.SearchResult, string, error) {
	mapsClient, err := places.NewGoogleClient(config.Maps.APIKey, config.Maps.BaseURL)
	if err != nil {
		return nil, "", err
	}

	session := places.NewSession(config.Session.RotateAfterResolve)
	autocomplete := places.NewAutocomplete(mapsClient, session, config.Maps.Country, config.Maps.Timeout, log)

	p, err := loadPage(config, fileClient)
	if err != nil {
		return nil, "", err
	}

	history := state_managers.NewHistoryStateManager(config.History.StateFile, config.History.BasePath, fileClient, log)
	if err := history.LoadState(); err != nil {
		return nil, "", err
	}

	searchService := services.NewSearchService(
		p,
		autocomplete,
		services.NewHTTPFormSubmitter(config.Page.BaseURL, nil, config.Submission.Timeout),
		render.NewRenderer(render.NewECharts(config.Render.ChartHeight), config.Render.Workers, log),
		history,
		log,
	)

	if pick > 0 {
		predictions, err := autocomplete.Predictions(ctx, query)
		if err != nil {
			return nil, "", err
		}
		if pick > len(predictions) {
			return nil, "", fmt.Errorf("only %d suggestions for %q", len(predictions), query)
		}

		place, err := autocomplete.Select(ctx, predictions[pick-1])
		if err != nil {
			return nil, "", err
		}
		query = place.Description
	}

	p.SetInputValue(query)

	result, err := searchService.Submit(ctx)
	if err != nil {
		return nil, "", err
	}

	html, err := p.HTML()
	if err != nil {
		return nil, "", err
	}

	return result, html, nil
}

func loadPage(config *utils.Config, fileClient file.FileOperations) (*page.Page, error) {
	if config.Page.Template == "" {
		return page.Load(strings.NewReader(page.DefaultTemplate), config.Page.Selectors)
	}

	raw, err := fileClient.ReadFileRaw(config.Page.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to read page template: %w", err)
	}
	return page.Load(strings.NewReader(string(raw)), config.Page.Selectors)
}

func newPublisher(ctx context.Context, config *utils.Config, fileClient file.FileOperations,
	log zerolog.Logger) (*services.PublishService, error) {
	var storage s3.ObjectStorageClient

	if config.Publish.Enabled {
		objectStorage := s3.NewObjectStorage(config.Publish.Region)
		err := objectStorage.Connect(ctx, config.Publish.Endpoint, config.Publish.AccessKeyID,
			config.Publish.SecretAccessKey, config.Publish.UseSSL)
		if err != nil {
			return nil, err
		}
		storage = objectStorage
	}

	return services.NewPublishService(config.Output.File, config.Publish.Bucket, config.Publish.Prefix,
		fileClient, storage, log), nil
}

func printResult(result *models.SearchResult, published *models.PublishedResult) {
	fmt.Printf("%s  %s\n", result.URL, result.Location)
	for _, outcome := range result.Indicators {
		if outcome.Charted() {
			fmt.Printf("  %-32s charted\n", outcome.IndicatorID)
			continue
		}
		fmt.Printf("  %-32s skipped: %v\n", outcome.IndicatorID, outcome.Err)
	}

	if published.File != "" {
		fmt.Printf("page: %s\n", published.File)
	}
	if published.PresignedURL != "" {
		fmt.Printf("share: %s\n", published.PresignedURL)
	}
}
