package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"calc/internal/ast"
	"calc/internal/diag"
	"calc/internal/source"
)

// Current schema version - increment when CachedParse format changes
const diskCacheSchemaVersion uint16 = 1

// Digest addresses one cache entry.
type Digest [32]byte

// DiskCache хранит результаты разбора (дерево + диагностики) на диске,
// ключ - хэш содержимого и опций разбора. Thread-safe.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedParse is the on-disk form of one parse. Spans are stored as offsets;
// the file is implied by the key.
type CachedParse struct {
	Schema      uint16             `msgpack:"schema"`
	Root        *ast.Node          `msgpack:"root,omitempty"`
	OK          bool               `msgpack:"ok"`
	Diagnostics []CachedDiagnostic `msgpack:"diags,omitempty"`
}

type CachedDiagnostic struct {
	Severity uint8        `msgpack:"sev"`
	Code     uint16       `msgpack:"code"`
	Message  string       `msgpack:"msg"`
	Start    uint32       `msgpack:"s"`
	End      uint32       `msgpack:"e"`
	Notes    []CachedNote `msgpack:"notes,omitempty"`
	Fixes    []CachedFix  `msgpack:"fixes,omitempty"`
}

type CachedNote struct {
	Start uint32 `msgpack:"s"`
	End   uint32 `msgpack:"e"`
	Msg   string `msgpack:"msg"`
}

type CachedFix struct {
	ID    string       `msgpack:"id"`
	Title string       `msgpack:"title"`
	Edits []CachedEdit `msgpack:"edits"`
}

type CachedEdit struct {
	Start   uint32 `msgpack:"s"`
	End     uint32 `msgpack:"e"`
	NewText string `msgpack:"new"`
	OldText string `msgpack:"old,omitempty"`
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens (creating if needed) a cache rooted at dir.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первому байту, чтобы не держать тысячи файлов в одном месте
	return filepath.Join(c.dir, "parse", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload; the file appears atomically.
func (c *DiskCache) Put(key Digest, payload *CachedParse) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	if err := os.Rename(f.Name(), p); err != nil {
		return err
	}
	committed = true
	return nil
}

// Get reads a payload. A missing entry or one written under another schema
// version is a miss, not an error.
func (c *DiskCache) Get(key Digest, out *CachedParse) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим, чтобы параллельный читатель не увидел полупустой кэш
	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey hashes the file content together with every option that can
// change the parse outcome.
func cacheKey(file *source.File, opts Options) Digest {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint16(buf[:2], diskCacheSchemaVersion)
	h.Write(buf[:2])
	h.Write(file.Hash[:])
	h.Write([]byte{byte(opts.Recovery)})
	binary.LittleEndian.PutUint64(buf[:], uint64(opts.MaxDepth))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(opts.maxDiagnostics()))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(opts.maxErrors()))
	h.Write(buf[:])

	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func toCached(res *ParseResult) *CachedParse {
	out := &CachedParse{
		Root: ast.Snapshot(res.Builder.Exprs, res.Root),
		OK:   res.OK,
	}
	for _, d := range res.Bag.Items() {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		for _, f := range d.Fixes {
			cf := CachedFix{ID: f.ID, Title: f.Title}
			for _, e := range f.Edits {
				cf.Edits = append(cf.Edits, CachedEdit{Start: e.Span.Start, End: e.Span.End, NewText: e.NewText, OldText: e.OldText})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		out.Diagnostics = append(out.Diagnostics, cd)
	}
	return out
}

// restore fills res (fresh builder and bag) from a cached parse of res.File.
func (p *CachedParse) restore(res *ParseResult) error {
	file := res.File.ID
	sp := func(start, end uint32) source.Span { return source.Span{File: file, Start: start, End: end} }

	root, err := ast.Restore(res.Builder.Exprs, file, p.Root)
	if err != nil {
		return err
	}
	for _, cd := range p.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), sp(cd.Start, cd.End), cd.Message)
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Span: sp(n.Start, n.End), Msg: n.Msg})
		}
		for _, cf := range cd.Fixes {
			fx := diag.Fix{ID: cf.ID, Title: cf.Title}
			for _, e := range cf.Edits {
				fx.Edits = append(fx.Edits, diag.TextEdit{Span: sp(e.Start, e.End), NewText: e.NewText, OldText: e.OldText})
			}
			d.Fixes = append(d.Fixes, fx)
		}
		res.Bag.Add(d)
	}
	res.Root = root
	res.OK = p.OK
	res.Cached = true
	return nil
}
