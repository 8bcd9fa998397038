// Package pdf provides the extractor for PDF sources.
//
// Text extraction shells out to pdftotext (poppler-utils) through the
// CommandRunner port. Pages are extracted one at a time so a single
// unreadable page degrades to an empty string instead of losing the
// whole document.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/lexidx/lexidx/internal/core/domain"
	"github.com/lexidx/lexidx/internal/core/ports/driven"
	"github.com/lexidx/lexidx/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// ErrPDFToolNotFound indicates pdftotext is not installed.
var ErrPDFToolNotFound = errors.New("pdftotext not found in PATH")

var pagesLine = regexp.MustCompile(`(?m)^Pages:\s+(\d+)\s*$`)

// Extractor handles PDF documents via pdftotext.
type Extractor struct {
	runner driven.CommandRunner
}

// New creates a PDF extractor using the real pdftotext binary.
func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

// NewWithRunner creates a PDF extractor with an injected command runner.
// Used in tests to avoid a pdftotext dependency.
func NewWithRunner(runner driven.CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Kinds returns the document kinds this extractor handles.
func (e *Extractor) Kinds() []domain.Kind {
	return []domain.Kind{domain.KindPDF}
}

// Extract returns the text of all pages joined by newlines, in page
// order. A page whose extraction fails contributes an empty string.
func (e *Extractor) Extract(ctx context.Context, raw *domain.RawDocument) (string, error) {
	if raw == nil {
		return "", domain.ErrInvalidInput
	}

	pages, err := e.pageCount(ctx, raw.Path)
	if err != nil {
		// Without a page count, fall back to extracting the whole
		// document in one pass.
		logger.Debug("pdfinfo failed for %s, extracting whole document: %v", raw.Path, err)
		out, err := e.runner.Run(ctx, "pdftotext", raw.Path, "-")
		if err != nil {
			if errors.Is(err, ErrPDFToolNotFound) {
				return "", fmt.Errorf("%w; %s", ErrPDFToolNotFound, InstallInstructions())
			}
			return "", fmt.Errorf("pdftotext: %w", err)
		}
		return string(out), nil
	}

	texts := make([]string, 0, pages)
	for p := 1; p <= pages; p++ {
		page := strconv.Itoa(p)
		out, err := e.runner.Run(ctx, "pdftotext", "-f", page, "-l", page, raw.Path, "-")
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			logger.Debug("page %d of %s unreadable: %v", p, raw.Path, err)
			texts = append(texts, "")
			continue
		}
		texts = append(texts, string(out))
	}
	return strings.Join(texts, "\n"), nil
}

// pageCount asks pdfinfo for the document's page count.
func (e *Extractor) pageCount(ctx context.Context, path string) (int, error) {
	out, err := e.runner.Run(ctx, "pdfinfo", path)
	if err != nil {
		return 0, fmt.Errorf("pdfinfo: %w", err)
	}
	m := pagesLine.FindSubmatch(out)
	if m == nil {
		return 0, fmt.Errorf("pdfinfo: no page count in output")
	}
	n, err := strconv.Atoi(string(m[1]))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("pdfinfo: bad page count %q", m[1])
	}
	return n, nil
}

// CheckAvailable returns an error when pdftotext is not installed.
func CheckAvailable() error {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return ErrPDFToolNotFound
	}
	return nil
}

// InstallInstructions returns a hint for installing the PDF tooling.
func InstallInstructions() string {
	return "pdftotext is required for PDF sources: " +
		"brew install poppler (macOS) or apt install poppler-utils (Debian/Ubuntu)"
}

// execRunner runs commands with os/exec. A missing binary maps to
// ErrPDFToolNotFound so callers can distinguish "not installed" from
// a failed extraction.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if errors.Is(err, exec.ErrNotFound) {
		return nil, ErrPDFToolNotFound
	}
	return out, err
}
