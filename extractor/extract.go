package extractor

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/investco-dev/investco/extractor/annuity"
	"github.com/investco-dev/investco/extractor/brokerage"
	"github.com/investco-dev/investco/extractor/common"
	"github.com/investco-dev/investco/extractor/retirement"
)

// DetectType classifies document text into one of the statement variants.
// Annuity indicators are checked first because they are the most specific.
func DetectType(text string) (common.StatementType, bool) {
	switch {
	case annuity.Detect(text):
		return common.TypeAnnuity, true
	case retirement.Detect(text):
		return common.TypeRetirement, true
	case brokerage.Detect(text):
		return common.TypeBrokerage, true
	}
	return "", false
}

// ProcessRows dispatches linearized document rows to the matching variant
// extractor. An empty override auto-detects the statement type from the text.
func ProcessRows(source string, rows []string, override string) (common.StatementRecord, bool) {
	text := strings.Join(rows, "\n")

	stmtType := common.StatementType(override)
	if override == "" {
		detected, ok := DetectType(text)
		if !ok {
			log.Printf("WARN %s: unrecognized statement type", source)
			return common.StatementRecord{}, false
		}
		stmtType = detected
	}

	switch stmtType {
	case common.TypeAnnuity:
		log.Printf("\t📄 Extracting annuity statement from %s", source)
		return annuity.Extract(source, rows), true
	case common.TypeRetirement:
		log.Printf("\t📄 Extracting 401(k) statement from %s", source)
		return retirement.Extract(source, rows), true
	case common.TypeBrokerage:
		log.Printf("\t📄 Extracting brokerage statement from %s", source)
		return brokerage.Extract(source, rows), true
	}

	log.Printf("WARN %s: unknown statement type override %q", source, override)
	return common.StatementRecord{}, false
}

// ProcessReader extracts one statement record from a PDF stream.
func ProcessReader(r io.Reader, filename string, override string) (common.StatementRecord, bool) {
	rows, err := common.ExtractRowsFromPDFReader(r)
	if err != nil || len(rows) < 1 {
		log.Printf("WARN %s: could not extract text: %v", filename, err)
		return common.StatementRecord{}, false
	}
	return ProcessRows(filename, rows, override)
}

// ProcessFile extracts one statement record from a PDF on disk.
func ProcessFile(path string, override string) (common.StatementRecord, bool) {
	rows, err := common.ExtractRowsFromPDF(path)
	if err != nil || len(rows) < 1 {
		log.Printf("WARN %s: could not extract text: %v", path, err)
		return common.StatementRecord{}, false
	}
	return ProcessRows(path, rows, override)
}

// ExecuteAgainstPath extracts the file or directory at path and prints the
// resulting records as JSON.
func ExecuteAgainstPath(path string) {
	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		result := []common.StatementRecord{}

		log.Println("📂 Scanning", path)
		entries, err := os.ReadDir(path)
		if err != nil {
			log.Fatal(err)
		}
		for _, e := range entries {
			if record, ok := ProcessFile(filepath.Join(path, e.Name()), ""); ok {
				result = append(result, record)
			}
		}

		asJSON, _ := json.Marshal(result)
		fmt.Println(string(asJSON))
		return
	}

	log.Println("📄 Scanning", path)
	record, ok := ProcessFile(path, "")
	if !ok {
		fmt.Println("{}")
		return
	}

	asJSON, _ := json.Marshal(record)
	fmt.Println(string(asJSON))
}
