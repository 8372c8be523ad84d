package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/beevik/etree"
	"github.com/ijalalfrz/seatmap-parser/internal/app/dto"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/logger"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/seatmap"
	"github.com/ijalalfrz/seatmap-parser/internal/pkg/seatmapparser"
)

type SeatMapCacher interface {
	GetLockKey(format, documentHash string) string
	GetCacheKey(format, documentHash string) string
	AcquireLock(ctx context.Context, key string, timeout time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
	GetSeatMap(ctx context.Context, key string) (dto.SeatMapDocument, error)
	GetMetadata(ctx context.Context, key string) (dto.Metadata, error)
	SetSeatMap(ctx context.Context,
		key string,
		doc dto.SeatMapDocument,
		metadata dto.Metadata,
		expiration time.Duration,
	) error
}

type ConversionArchiver interface {
	SaveConversion(ctx context.Context, record dto.ConversionRecord) (int64, error)
	ListConversions(ctx context.Context, limit int) ([]dto.ConversionRecord, error)
}

// ConverterService turns seatmap XML documents into SeatMapDocuments.
// Cache and Archive are optional.
type ConverterService struct {
	ParserFactory          *seatmapparser.ParserFactory
	Cache                  SeatMapCacher
	Archive                ConversionArchiver
	SeatMapCacheExpiration time.Duration
	SeatMapLockTimeout     time.Duration
}

func NewConverterService(parserFactory *seatmapparser.ParserFactory,
	cache SeatMapCacher, archive ConversionArchiver,
	seatMapCacheExpiration time.Duration,
	seatMapLockTimeout time.Duration) *ConverterService {
	return &ConverterService{
		ParserFactory:          parserFactory,
		Cache:                  cache,
		Archive:                archive,
		SeatMapCacheExpiration: seatMapCacheExpiration,
		SeatMapLockTimeout:     seatMapLockTimeout,
	}
}

// ConvertSeatMap normalizes one XML seatmap document.
// ConvertSeatMap godoc
// @Summary      Convert seatmap
// @Tags         Seatmaps
// @Description  Convert an OTA or IATA seatmap XML document into normalized JSON
// @Param        filename query     string  true   "source file name, must end in .xml"
// @Param        format   query     string  false  "ota or iata, detected when empty"
// @Success      200      {object}  dto.ConvertResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      413      {object}  dto.ErrorResponse
// @Failure      422      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/v1/seatmaps/convert [post]
func (s *ConverterService) ConvertSeatMap(
	ctx context.Context,
	req dto.ConvertRequest,
) (dto.ConvertResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.ConvertResponse{}, err
	}

	ctx = logger.WithDocument(ctx, req.Filename)
	startTime := time.Now()

	sum := sha256.Sum256(req.Document)
	documentHash := hex.EncodeToString(sum[:])

	cacheFormat := cacheFormatKey(req)

	if s.Cache != nil {
		if resp, ok := s.fromCache(ctx, cacheFormat, documentHash); ok {
			resp.Metadata.ParseTimeMs = int(time.Since(startTime).Milliseconds())
			return resp, nil
		}
	}

	result, format, err := s.convert(ctx, req)
	if err != nil {
		return dto.ConvertResponse{}, err
	}

	metadata := seatmap.Summarize(format, result)
	metadata.DocumentHash = documentHash

	if s.Cache != nil {
		if err := s.toCache(ctx, cacheFormat, documentHash, result, metadata); err != nil {
			return dto.ConvertResponse{}, err
		}
	}

	if s.Archive != nil {
		if err := s.archive(ctx, req.Filename, result, metadata); err != nil {
			return dto.ConvertResponse{}, err
		}
	}

	metadata.ParseTimeMs = int(time.Since(startTime).Milliseconds())

	slog.InfoContext(ctx, "seatmap converted",
		slog.String("format", format),
		slog.Int("rows", metadata.TotalRows),
		slog.Int("seats", metadata.TotalSeats))

	return dto.ConvertResponse{
		Metadata: metadata,
		Result:   result,
	}, nil
}

// ListSeats converts a document and returns its seats flattened, filtered and sorted.
// ListSeats godoc
// @Summary      List seats
// @Tags         Seatmaps
// @Description  Convert a seatmap XML document and list its seats
// @Success      200      {object}  dto.SeatListResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      422      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/v1/seatmaps/seats [post]
func (s *ConverterService) ListSeats(
	ctx context.Context,
	req dto.SeatListRequest,
) (dto.SeatListResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.SeatListResponse{}, err
	}

	converted, err := s.ConvertSeatMap(ctx, req.ConvertRequest)
	if err != nil {
		return dto.SeatListResponse{}, err
	}

	seats := seatmap.FilterSeats(converted.Result.SeatMap.Listings(), req.FilterOption)
	seats = seatmap.SortSeats(seats, req.SortOption)

	return dto.SeatListResponse{
		Metadata: converted.Metadata,
		Seats:    seats,
	}, nil
}

// History lists the most recent archived conversions.
func (s *ConverterService) History(ctx context.Context, limit int) ([]dto.ConversionRecord, error) {
	if s.Archive == nil {
		return nil, ErrArchiveDisabled
	}

	records, err := s.Archive.ListConversions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversions: %w", err)
	}

	return records, nil
}

func (s *ConverterService) convert(ctx context.Context, req dto.ConvertRequest) (dto.SeatMapDocument, string, error) {
	doc, err := seatmapparser.ReadDocument(req.Document)
	if err != nil {
		return dto.SeatMapDocument{}, "", ErrMalformedXML.WithCause(err)
	}

	format, err := s.selectFormat(ctx, doc, req)
	if err != nil {
		return dto.SeatMapDocument{}, "", err
	}

	parser, ok := s.ParserFactory.GetParser(format)
	if !ok {
		return dto.SeatMapDocument{}, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	result, err := parser.Parse(ctx, doc)
	if err != nil {
		return dto.SeatMapDocument{}, "", fmt.Errorf("convert %s: %w", req.Filename, err)
	}

	return result, format, nil
}

// selectFormat prefers the requested format, then the document content, then
// the historical sample file names.
func (s *ConverterService) selectFormat(ctx context.Context, doc *etree.Document, req dto.ConvertRequest) (string, error) {
	if req.Format != "" {
		return req.Format, nil
	}

	if format, ok := seatmapparser.DetectFormat(doc); ok {
		slog.DebugContext(ctx, "format detected from content", slog.String("format", format))
		return format, nil
	}

	if format, ok := seatmapparser.FormatFromFilename(req.Filename); ok {
		slog.WarnContext(ctx, "no schema marker found, format selected by file name",
			slog.String("format", format))
		return format, nil
	}

	return "", fmt.Errorf("%w: cannot detect the schema of %s", ErrUnsupportedFormat, req.Filename)
}

// cacheFormatKey is the part of a request besides the document bytes that can
// steer format selection: the explicit format, else the legacy file name hint.
func cacheFormatKey(req dto.ConvertRequest) string {
	if req.Format != "" {
		return req.Format
	}

	if format, ok := seatmapparser.FormatFromFilename(req.Filename); ok {
		return "auto-" + format
	}

	return ""
}

func (s *ConverterService) fromCache(ctx context.Context, format, documentHash string) (dto.ConvertResponse, bool) {
	cacheKey := s.Cache.GetCacheKey(format, documentHash)

	result, err := s.Cache.GetSeatMap(ctx, cacheKey)
	if err != nil {
		slog.WarnContext(ctx, "failed to get seat map from cache", slog.String("error", err.Error()))
		return dto.ConvertResponse{}, false
	}

	metadata, err := s.Cache.GetMetadata(ctx, cacheKey)
	if err != nil {
		slog.WarnContext(ctx, "failed to get metadata from cache", slog.String("error", err.Error()))
		return dto.ConvertResponse{}, false
	}

	metadata.CacheHit = true

	return dto.ConvertResponse{Metadata: metadata, Result: result}, true
}

// toCache stores the result unless a concurrent conversion of the same
// document holds the lock; that conversion writes the same entry.
func (s *ConverterService) toCache(ctx context.Context,
	format, documentHash string,
	result dto.SeatMapDocument,
	metadata dto.Metadata,
) error {
	lockKey := s.Cache.GetLockKey(format, documentHash)

	acquired, err := s.Cache.AcquireLock(ctx, lockKey, s.SeatMapLockTimeout)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !acquired {
		return nil
	}
	defer s.Cache.ReleaseLock(ctx, lockKey)

	err = s.Cache.SetSeatMap(ctx, s.Cache.GetCacheKey(format, documentHash), result, metadata, s.SeatMapCacheExpiration)
	if err != nil {
		return fmt.Errorf("failed to set seat map to cache: %w", err)
	}

	return nil
}

func (s *ConverterService) archive(ctx context.Context, filename string, result dto.SeatMapDocument, metadata dto.Metadata) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal seat map: %w", err)
	}

	id, err := s.Archive.SaveConversion(ctx, dto.ConversionRecord{
		Filename:     filename,
		Format:       metadata.Format,
		DocumentHash: metadata.DocumentHash,
		TotalRows:    metadata.TotalRows,
		TotalSeats:   metadata.TotalSeats,
		ResultJSON:   string(resultJSON),
	})
	if err != nil {
		return fmt.Errorf("failed to archive conversion: %w", err)
	}

	slog.DebugContext(ctx, "conversion archived", slog.Int64("id", id))

	return nil
}
