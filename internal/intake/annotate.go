package intake

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"

	v1 "github.com/claimledger-lab/claimledger/internal/api/v1"
	"github.com/claimledger-lab/claimledger/internal/core/adapters"
	"github.com/claimledger-lab/claimledger/internal/extraction"
)

// annotated is one processed upload.
type annotated struct {
	doc     v1.IntakeDocument
	content []byte
}

// annotateAll saves and annotates files concurrently. Results keep upload order.
func (s *Service) annotateAll(ctx context.Context, claimID string, files []*multipart.FileHeader) ([]annotated, error) {
	results := make([]annotated, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, fh := range files {
		g.Go(func() error {
			a, err := s.annotate(gctx, claimID, fh)
			if err != nil {
				return fmt.Errorf("%s: %w", fh.Filename, err)
			}
			results[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) annotate(ctx context.Context, claimID string, fh *multipart.FileHeader) (annotated, error) {
	f, err := fh.Open()
	if err != nil {
		return annotated{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return annotated{}, fmt.Errorf("failed to read upload: %w", err)
	}

	url, err := s.blobs.Save(ctx, claimID, fh.Filename, bytes.NewReader(data))
	if err != nil {
		return annotated{}, err
	}

	contentType := detectContentType(fh, data)
	text := s.documentText(ctx, fh.Filename, contentType, data)
	parsed := s.extractFields(ctx, fh.Filename, text)
	score := s.scoreFields(ctx, fh.Filename, parsed)

	slog.Info("Annotated claim document",
		"claim_id", claimID,
		"filename", fh.Filename,
		"content_type", contentType,
		"has_text", text != "",
		"fraud", fraudLogValue(score))

	return annotated{
		doc: v1.IntakeDocument{
			Name: fh.Filename,
			URL:  url,
			Type: contentType,
			AI:   v1.DocumentAnnotation{Parsed: parsed, Fraud: score},
		},
		content: data,
	}, nil
}

// detectContentType prefers the declared type and sniffs when none was sent.
func detectContentType(fh *multipart.FileHeader, data []byte) string {
	ct := fh.Header.Get("Content-Type")
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if len(data) == 0 {
		return "application/octet-stream"
	}
	return mimetype.Detect(data).String()
}

func isText(filename, contentType string) bool {
	return strings.HasPrefix(contentType, "text") || strings.HasSuffix(strings.ToLower(filename), ".txt")
}

// documentText returns the text to extract fields from. Text files are
// decoded with invalid UTF-8 dropped; images are described by the vision
// model. Everything else yields "".
func (s *Service) documentText(ctx context.Context, filename, contentType string, data []byte) string {
	if isText(filename, contentType) {
		return strings.ToValidUTF8(string(data), "")
	}

	mimeType, ok := extraction.ImageMIMEType(filename)
	if !ok || s.describer == nil {
		return ""
	}
	desc, err := adapters.Call(ctx, "vision", "describe", s.opts.ExtractTimeout, func(ctx context.Context) (string, error) {
		return s.describer.Describe(ctx, data, mimeType)
	})
	if err != nil {
		slog.Warn("Image description failed", "filename", filename, "error", err)
		return ""
	}
	return desc
}

// extractFields falls back to the baseline record when there is no text or
// the extractor fails.
func (s *Service) extractFields(ctx context.Context, filename, text string) map[string]int {
	if strings.TrimSpace(text) == "" || s.extractor == nil {
		return extraction.DefaultFields()
	}

	fields, err := adapters.Call(ctx, "extraction", "extract", s.opts.ExtractTimeout, func(ctx context.Context) (map[string]int, error) {
		return s.extractor.Extract(ctx, text)
	})
	if err != nil {
		slog.Warn("Field extraction failed, using defaults", "filename", filename, "error", err)
		return extraction.DefaultFields()
	}
	if len(fields) == 0 {
		return extraction.DefaultFields()
	}
	return fields
}

// scoreFields returns nil when the scorer is absent or fails.
func (s *Service) scoreFields(ctx context.Context, filename string, fields map[string]int) *int {
	if s.scorer == nil {
		return nil
	}

	score, err := adapters.Call(ctx, "fraud", "score", s.opts.ScoreTimeout, func(ctx context.Context) (int, error) {
		return s.scorer.Score(ctx, fields)
	})
	if err != nil {
		slog.Warn("Fraud scoring failed", "filename", filename, "error", err)
		return nil
	}
	return &score
}

func fraudLogValue(score *int) any {
	if score == nil {
		return "null"
	}
	return *score
}

// claimFraud is the first non-null document score, or 0 when none scored.
func claimFraud(docs []annotated) int {
	for _, d := range docs {
		if d.doc.AI.Fraud != nil {
			return *d.doc.AI.Fraud
		}
	}
	return 0
}
