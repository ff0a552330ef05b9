// Package genotype parses 23andMe-style raw genotype exports, either as
// plain text or as a zip archive containing one text entry.
package genotype

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/genelingua/pgs-server/internal/domain"
)

// variantIDPrefix is the identifier prefix a data line must start with to
// be taken as a variant row.
const variantIDPrefix = "rs"

// ParseFile reads and parses a genotype file from disk. Files named *.zip
// are treated as archives; everything else is decoded as text.
func ParseFile(path string) (domain.GenotypeMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewParseError("reading genotype file", err)
	}
	return Parse(data, filepath.Base(path))
}

// Parse parses a raw genotype blob. The filename decides the container
// format: a .zip suffix selects archive handling, anything else is decoded
// as text with best-effort replacement of undecodable byte sequences.
func Parse(data []byte, filename string) (domain.GenotypeMap, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".zip") {
		text, err := extractTextEntry(data)
		if err != nil {
			return nil, err
		}
		return ParseText(text), nil
	}
	return ParseText(decode(data)), nil
}

// ParseText parses raw genotype text into a variant-to-genotype map.
//
// Blank lines and # comments are skipped. A data line needs at least four
// whitespace-separated fields with an rs-prefixed identifier in the first;
// the fourth field is the genotype, upper-cased. Genotypes longer than two
// characters are stored as the no-call sentinel. Lines that do not match
// the expected shape are ignored, and later lines for the same identifier
// overwrite earlier ones.
func ParseText(text string) domain.GenotypeMap {
	snps := make(domain.GenotypeMap)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 || !strings.HasPrefix(fields[0], variantIDPrefix) {
			continue
		}
		gt := strings.ToUpper(strings.TrimSpace(fields[3]))
		if len(gt) > 2 {
			gt = domain.NoCall
		}
		snps[fields[0]] = gt
	}
	return snps
}

// extractTextEntry locates the first .txt entry inside a zip archive and
// returns its decoded contents.
func extractTextEntry(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.NewParseError("opening zip archive", err)
	}
	for _, entry := range reader.File {
		if !strings.HasSuffix(strings.ToLower(entry.Name), ".txt") {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return "", domain.NewParseError("opening zip entry "+entry.Name, err)
		}
		contents, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", domain.NewParseError("reading zip entry "+entry.Name, err)
		}
		return decode(contents), nil
	}
	return "", domain.NewParseError("no text entry found", nil)
}

// decode converts raw bytes to a string, replacing invalid UTF-8 sequences
// instead of failing.
func decode(data []byte) string {
	return strings.ToValidUTF8(string(data), "�")
}
