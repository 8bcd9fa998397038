package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexidx/lexidx/internal/core/domain"
	"github.com/lexidx/lexidx/internal/core/ports/driven"
)

// mockRunner is a test double for CommandRunner. It dispatches on the
// command name and, for pdftotext, on the requested page.
type mockRunner struct {
	pdfinfoOut []byte
	pdfinfoErr error
	pages      map[string][]byte
	pageErrs   map[string]error
	wholeOut   []byte
	wholeErr   error
	calls      []string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.calls = append(m.calls, name)
	if name == "pdfinfo" {
		return m.pdfinfoOut, m.pdfinfoErr
	}
	// pdftotext -f N -l N path -
	if len(args) >= 2 && args[0] == "-f" {
		page := args[1]
		if err, ok := m.pageErrs[page]; ok {
			return nil, err
		}
		return m.pages[page], nil
	}
	// pdftotext path - (whole document fallback)
	return m.wholeOut, m.wholeErr
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Extractor = (*Extractor)(nil)
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []domain.Kind{domain.KindPDF}, New().Kinds())
}

func TestExtract_NilDocument(t *testing.T) {
	e := NewWithRunner(&mockRunner{})
	text, err := e.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, text)
}

func TestExtract_PagesInOrder(t *testing.T) {
	runner := &mockRunner{
		pdfinfoOut: []byte("Title: EPF Act\nPages:          3\nEncrypted: no\n"),
		pages: map[string][]byte{
			"1": []byte("first page"),
			"2": []byte("second page"),
			"3": []byte("third page"),
		},
	}
	e := NewWithRunner(runner)

	text, err := e.Extract(context.Background(), &domain.RawDocument{Path: "/cache/doc.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "first page\nsecond page\nthird page", text)
}

func TestExtract_FailedPageContributesEmptyString(t *testing.T) {
	runner := &mockRunner{
		pdfinfoOut: []byte("Pages: 3\n"),
		pages: map[string][]byte{
			"1": []byte("first"),
			"3": []byte("third"),
		},
		pageErrs: map[string]error{
			"2": errors.New("syntax error in page tree"),
		},
	}
	e := NewWithRunner(runner)

	text, err := e.Extract(context.Background(), &domain.RawDocument{Path: "/cache/doc.pdf"})
	require.NoError(t, err)
	// Page order is preserved; the broken page becomes an empty line.
	assert.Equal(t, "first\n\nthird", text)
}

func TestExtract_PdfinfoFailureFallsBackToWholeDocument(t *testing.T) {
	runner := &mockRunner{
		pdfinfoErr: errors.New("not a pdf"),
		wholeOut:   []byte("whole document text"),
	}
	e := NewWithRunner(runner)

	text, err := e.Extract(context.Background(), &domain.RawDocument{Path: "/cache/doc.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "whole document text", text)
}

func TestExtract_WholeDocumentFallbackFails(t *testing.T) {
	runner := &mockRunner{
		pdfinfoErr: errors.New("not a pdf"),
		wholeErr:   errors.New("damaged file"),
	}
	e := NewWithRunner(runner)

	_, err := e.Extract(context.Background(), &domain.RawDocument{Path: "/cache/doc.pdf"})
	assert.Error(t, err)
}

func TestPageCount_Parsing(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    int
		wantErr bool
	}{
		{name: "normal output", out: "Creator: x\nPages:          412\nFile size: 1\n", want: 412},
		{name: "no pages line", out: "Creator: x\n", wantErr: true},
		{name: "zero pages", out: "Pages: 0\n", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewWithRunner(&mockRunner{pdfinfoOut: []byte(tc.out)})
			n, err := e.pageCount(context.Background(), "/cache/doc.pdf")
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, n)
		})
	}
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}

func TestErrPDFToolNotFound(t *testing.T) {
	assert.Error(t, ErrPDFToolNotFound)
	assert.Contains(t, ErrPDFToolNotFound.Error(), "pdftotext")
}

func TestExtract_MissingToolSurfacesInstallHint(t *testing.T) {
	runner := &mockRunner{
		pdfinfoErr: ErrPDFToolNotFound,
		wholeErr:   ErrPDFToolNotFound,
	}
	e := NewWithRunner(runner)

	_, err := e.Extract(context.Background(), &domain.RawDocument{Path: "/cache/act.pdf"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPDFToolNotFound)
	assert.Contains(t, err.Error(), "poppler")
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := execRunner{}.Run(context.Background(), "lexidx-no-such-binary-for-test")
	assert.ErrorIs(t, err, ErrPDFToolNotFound)
}
