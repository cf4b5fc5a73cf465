// Package importer recovers account records from heterogeneous files: JSON,
// CSV, XML, plain text, Excel workbooks, Word documents, and a best-effort
// text scan over anything else. Each extractor produces loosely-typed
// records that are normalized into canonical accounts and deduplicated.
package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"valorant-accounts/internal/constants"
	"valorant-accounts/internal/domain"
)

// Result is the success envelope of one bulk import.
type Result struct {
	Accounts []domain.Account
	Message  string
}

type Importer struct {
	logger zerolog.Logger
}

func New(logger zerolog.Logger) *Importer {
	return &Importer{logger: logger}
}

// Extract routes data to an extractor by the filename's extension, then
// deduplicates on riot ID (first occurrence wins). Parse failures and empty
// results come back as typed errors so callers can tell them apart.
func (im *Importer) Extract(data []byte, filename string) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		accounts []domain.Account
		err      error
	)

	switch ext {
	case ".json":
		accounts, err = extractJSON(data)
	case ".csv":
		accounts = extractCSV(string(data))
	case ".txt":
		accounts = extractText(string(data))
	case ".xml":
		accounts = extractXML(string(data))
	case ".xlsx", ".xls":
		accounts, err = extractExcel(data)
	case ".docx", ".doc":
		accounts, err = extractWord(data)
	default:
		// Unknown formats, .exe included: scan a bounded prefix as text.
		capped := data
		if len(capped) > constants.BinaryScanCap {
			capped = capped[:constants.BinaryScanCap]
		}
		accounts = extractText(string(capped))
	}

	if err != nil {
		im.logger.Warn().Err(err).Str("filename", filename).Msg("file extraction failed")
		return nil, err
	}

	unique := Dedupe(accounts)
	im.logger.Info().
		Str("filename", filename).
		Str("ext", ext).
		Int("extracted", len(accounts)).
		Int("unique", len(unique)).
		Msg("file extraction completed")

	if len(unique) == 0 {
		return nil, &NoAccountsError{Ext: ext}
	}

	return &Result{
		Accounts: unique,
		Message:  fmt.Sprintf("Found %d accounts in %s file", len(unique), ext),
	}, nil
}
