// Package corpus loads the legal text corpus into the local search index and
// keeps it current as files change on disk.
package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/andeslegal/consulta/internal/vectorindex"
)

// corpusExtensions are the file types the loader ingests.
var corpusExtensions = []string{".txt", ".md"}

// maxChunkChars bounds one indexed passage. Long articles are split on
// paragraph boundaries.
const maxChunkChars = 1200

// sourceTypeTags are matched against file names to tag passages with their
// normative source. Order matters for files naming more than one tag.
var sourceTypeTags = []string{
	"codigo_sustantivo_trabajo",
	"codigo_comercio",
	"codigo_civil",
	"estatuto_tributario",
}

// Loader ingests corpus files into a bleve index and tracks which passage IDs
// came from which file so changed files can be reindexed in place.
type Loader struct {
	index  *vectorindex.BleveIndex
	logger *zap.Logger

	mu      sync.Mutex
	fileIDs map[string][]string
}

// NewLoader creates a loader over index.
func NewLoader(index *vectorindex.BleveIndex, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		index:   index,
		logger:  logger,
		fileIDs: make(map[string][]string),
	}
}

// LoadDir walks dir and indexes every corpus file. It returns the number of
// files indexed.
func (l *Loader) LoadDir(dir string) (int, error) {
	files := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !hasCorpusExtension(path) {
			return nil
		}
		if err := l.LoadFile(path); err != nil {
			return fmt.Errorf("indexing %s: %w", path, err)
		}
		files++
		return nil
	})
	if err != nil {
		return files, err
	}
	l.logger.Info("corpus loaded", zap.String("dir", dir), zap.Int("files", files))
	return files, nil
}

// LoadFile indexes one file, replacing any passages previously loaded from
// the same path.
func (l *Loader) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.removeLocked(path); err != nil {
		return err
	}

	source := filepath.Base(path)
	sourceType := inferSourceType(source)
	chunks := splitChunks(string(data), maxChunkChars)

	ids := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		id := fmt.Sprintf("%s#%d", path, i)
		if err := l.index.Add(id, chunk, source, sourceType); err != nil {
			return err
		}
		ids = append(ids, id)
	}
	l.fileIDs[path] = ids

	l.logger.Debug("file indexed",
		zap.String("path", path),
		zap.String("source_type", sourceType),
		zap.Int("chunks", len(chunks)))
	return nil
}

// RemoveFile drops all passages loaded from path.
func (l *Loader) RemoveFile(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.removeLocked(path)
}

func (l *Loader) removeLocked(path string) error {
	for _, id := range l.fileIDs[path] {
		if err := l.index.Delete(id); err != nil {
			return err
		}
	}
	delete(l.fileIDs, path)
	return nil
}

func hasCorpusExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range corpusExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// inferSourceType derives the normative source tag from the file name.
// Unrecognized files get no tag and score without a source boost.
func inferSourceType(name string) string {
	lower := strings.ToLower(name)
	for _, tag := range sourceTypeTags {
		if strings.Contains(lower, tag) {
			return tag
		}
	}
	return ""
}

// splitChunks breaks text into passages at paragraph boundaries, packing
// consecutive paragraphs up to maxChars each.
func splitChunks(text string, maxChars int) []string {
	paragraphs := strings.Split(text, "\n\n")
	var chunks []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
	}

	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if current.Len() > 0 && current.Len()+len(p) > maxChars {
			flush()
		}
		// An oversize paragraph becomes its own chunk rather than being cut.
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(p)
		if current.Len() >= maxChars {
			flush()
		}
	}
	flush()
	return chunks
}
