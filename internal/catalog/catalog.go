package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	pathutils "gitfleet/internal/utils/path"
)

const (
	// DefaultLocationConstant is the well-known home-relative catalog path.
	DefaultLocationConstant = "~/.git_projects.json"

	catalogNotFoundMessageConstant     = "catalog file not found"
	catalogReadErrorTemplateConstant   = "failed to read catalog %s: %w"
	catalogParseErrorTemplateConstant  = "failed to parse catalog %s: %w"
	catalogEncodeErrorTemplateConstant = "failed to encode catalog entry %q: %w"
	catalogWriteErrorTemplateConstant  = "failed to write catalog %s: %w"
	catalogEntryTemplateConstant       = "  {\"remote\": %s}"
	catalogOpeningBracketConstant      = "[\n"
	catalogClosingBracketConstant      = "]"
	catalogEntrySeparatorConstant      = ",\n"
	catalogEntryListTerminatorConstant = "\n"
	catalogFilePermissionsConstant     = 0o644
)

// RemoteRecord is one catalog entry: the remote URL of a discovered repository.
type RemoteRecord struct {
	Remote string `json:"remote"`
}

// ErrCatalogNotFound indicates the catalog file does not exist yet.
var ErrCatalogNotFound = errors.New(catalogNotFoundMessageConstant)

// ResolveLocation expands the configured catalog path, falling back to the
// default home-relative location when no path was configured.
func ResolveLocation(configuredPath string, homeExpander *pathutils.HomeExpander) string {
	trimmedPath := strings.TrimSpace(configuredPath)
	if len(trimmedPath) == 0 {
		trimmedPath = DefaultLocationConstant
	}
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}
	return homeExpander.Expand(trimmedPath)
}

// Store reads and writes the catalog document on the local filesystem.
type Store struct{}

// NewStore constructs a filesystem-backed catalog store.
func NewStore() *Store {
	return &Store{}
}

// Save serializes the records as a JSON array of single-field objects and
// fully replaces any previous catalog content at the given path. An empty
// record list produces an empty, still valid, JSON list.
func (store *Store) Save(catalogPath string, records []RemoteRecord) error {
	var documentBuilder strings.Builder
	documentBuilder.WriteString(catalogOpeningBracketConstant)

	encodedEntries := make([]string, 0, len(records))
	for _, record := range records {
		encodedRemote, encodeError := json.Marshal(record.Remote)
		if encodeError != nil {
			return fmt.Errorf(catalogEncodeErrorTemplateConstant, record.Remote, encodeError)
		}
		encodedEntries = append(encodedEntries, fmt.Sprintf(catalogEntryTemplateConstant, string(encodedRemote)))
	}
	if len(encodedEntries) > 0 {
		documentBuilder.WriteString(strings.Join(encodedEntries, catalogEntrySeparatorConstant))
		documentBuilder.WriteString(catalogEntryListTerminatorConstant)
	}
	documentBuilder.WriteString(catalogClosingBracketConstant)

	writeError := os.WriteFile(catalogPath, []byte(documentBuilder.String()), catalogFilePermissionsConstant)
	if writeError != nil {
		return fmt.Errorf(catalogWriteErrorTemplateConstant, catalogPath, writeError)
	}
	return nil
}

// Load reads the catalog document at the given path. A missing file is
// reported as ErrCatalogNotFound; catalogs produced by other tooling are
// accepted as long as they are a JSON list of objects with a remote field.
func (store *Store) Load(catalogPath string) ([]RemoteRecord, error) {
	catalogContent, readError := os.ReadFile(catalogPath)
	if readError != nil {
		if errors.Is(readError, os.ErrNotExist) {
			return nil, fmt.Errorf(catalogReadErrorTemplateConstant, catalogPath, ErrCatalogNotFound)
		}
		return nil, fmt.Errorf(catalogReadErrorTemplateConstant, catalogPath, readError)
	}

	var loadedRecords []RemoteRecord
	if unmarshalError := json.Unmarshal(catalogContent, &loadedRecords); unmarshalError != nil {
		return nil, fmt.Errorf(catalogParseErrorTemplateConstant, catalogPath, unmarshalError)
	}
	return loadedRecords, nil
}
