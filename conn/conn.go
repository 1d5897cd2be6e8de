// Copyright 2018 The Solid Core Data Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package conn implements Conn, the directory-rooted orchestrator that ties
// feed and column catalogs to their backing data files and exposes the
// engine's full external interface.
package conn

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/fomalhaut88/lbasedb/catalog"
	"github.com/fomalhaut88/lbasedb/dataset"
	"github.com/fomalhaut88/lbasedb/datatype"
	"github.com/fomalhaut88/lbasedb/internal/pathutil"
	"github.com/fomalhaut88/lbasedb/internal/start"
	"github.com/fomalhaut88/lbasedb/list"
	"github.com/fomalhaut88/lbasedb/seq"
)

var (
	// ErrNotFound is returned when a named feed or column does not exist.
	ErrNotFound = errors.New("conn: not found")
	// ErrAlreadyExists is returned when a named feed or column is already
	// present.
	ErrAlreadyExists = errors.New("conn: already exists")
	// ErrInvalidInput is returned when a name fails validation or a
	// datatype string fails to parse.
	ErrInvalidInput = errors.New("conn: invalid input")
)

type feedList = list.List[catalog.FeedItem, *catalog.FeedItem, string]
type colList = list.List[catalog.ColItem, *catalog.ColItem, string]

// Conn manages every feed and column rooted at one directory. All exported
// methods are safe for concurrent use; the file system is the only
// resource not protected by Conn's own locks, so two Conn instances must
// never be opened on the same directory at once.
type Conn struct {
	path string

	feedListMu sync.RWMutex
	feedList   *feedList

	feedMapMu sync.RWMutex
	feedMap   map[string]catalog.FeedItem

	colListMu      sync.RWMutex
	colListMapping map[string]*colList

	colMapMu      sync.RWMutex
	colMapMapping map[string]map[string]catalog.ColItem

	seqMu      sync.RWMutex
	seqMapping map[string]map[string]*seq.Seq
}

// New opens (creating if missing) the directory at path as a Conn, and
// opens every feed and column already present there.
func New(path string) (*Conn, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("conn: new: %w", err)
	}

	fl, err := list.Open[catalog.FeedItem, *catalog.FeedItem, string](feedListPath(path))
	if err != nil {
		return nil, fmt.Errorf("conn: new: %w", err)
	}

	c := &Conn{
		path:           path,
		feedList:       fl,
		feedMap:        make(map[string]catalog.FeedItem),
		colListMapping: make(map[string]*colList),
		colMapMapping:  make(map[string]map[string]catalog.ColItem),
		seqMapping:     make(map[string]map[string]*seq.Seq),
	}

	feedMap, err := fl.Map()
	if err != nil {
		return nil, fmt.Errorf("conn: new: %w", err)
	}
	for name, item := range feedMap {
		if err := c.feedOpen(name, item); err != nil {
			return nil, fmt.Errorf("conn: new: %w", err)
		}
	}

	return c, nil
}

// Path returns the root directory Conn was opened on.
func (c *Conn) Path() string {
	return c.path
}

// FeedList returns every known feed, in no particular order.
func (c *Conn) FeedList() []catalog.FeedItem {
	c.feedMapMu.RLock()
	defer c.feedMapMu.RUnlock()
	out := make([]catalog.FeedItem, 0, len(c.feedMap))
	for _, item := range c.feedMap {
		out = append(out, item)
	}
	return out
}

// FeedExists reports whether feedName names a known feed.
func (c *Conn) FeedExists(feedName string) bool {
	c.feedMapMu.RLock()
	defer c.feedMapMu.RUnlock()
	_, ok := c.feedMap[feedName]
	return ok
}

// FeedAdd creates a new, empty feed named feedName.
func (c *Conn) FeedAdd(feedName string) error {
	if err := catalog.ValidateName(feedName); err != nil {
		return fmt.Errorf("conn: feed add %q: %w", feedName, ErrInvalidInput)
	}
	if c.FeedExists(feedName) {
		return fmt.Errorf("conn: feed add %q: %w", feedName, ErrAlreadyExists)
	}

	if err := os.MkdirAll(c.feedDir(feedName), 0o755); err != nil {
		return fmt.Errorf("conn: feed add: %w", err)
	}

	feedItem := catalog.NewFeedItem(feedName)
	c.feedListMu.Lock()
	err := c.feedList.Add(feedItem)
	c.feedListMu.Unlock()
	if err != nil {
		return fmt.Errorf("conn: feed add: %w", err)
	}

	if err := c.feedOpen(feedName, feedItem); err != nil {
		return fmt.Errorf("conn: feed add: %w", err)
	}
	return nil
}

// FeedRemove deletes feedName and every column it holds.
func (c *Conn) FeedRemove(feedName string) error {
	if !c.FeedExists(feedName) {
		return fmt.Errorf("conn: feed remove %q: %w", feedName, ErrNotFound)
	}

	c.feedClose(feedName)

	c.feedListMu.Lock()
	err := c.feedList.Remove(feedName)
	c.feedListMu.Unlock()
	if err != nil {
		return fmt.Errorf("conn: feed remove: %w", err)
	}

	if err := os.RemoveAll(c.feedDir(feedName)); err != nil {
		return fmt.Errorf("conn: feed remove: %w", err)
	}
	return nil
}

// FeedRename renames feedName to feedNameNew, keeping its size and columns.
func (c *Conn) FeedRename(feedName, feedNameNew string) error {
	if !c.FeedExists(feedName) {
		return fmt.Errorf("conn: feed rename %q: %w", feedName, ErrNotFound)
	}
	if err := catalog.ValidateName(feedNameNew); err != nil {
		return fmt.Errorf("conn: feed rename to %q: %w", feedNameNew, ErrInvalidInput)
	}
	if c.FeedExists(feedNameNew) {
		return fmt.Errorf("conn: feed rename to %q: %w", feedNameNew, ErrAlreadyExists)
	}

	feedItem := c.feedClose(feedName)
	feedItem = feedItem.Rename(feedNameNew)

	c.feedListMu.Lock()
	err := c.feedList.Modify(feedName, feedItem)
	c.feedListMu.Unlock()
	if err != nil {
		return fmt.Errorf("conn: feed rename: %w", err)
	}

	if err := os.Rename(c.feedDir(feedName), c.feedDir(feedNameNew)); err != nil {
		return fmt.Errorf("conn: feed rename: %w", err)
	}

	if err := c.feedOpen(feedNameNew, feedItem); err != nil {
		return fmt.Errorf("conn: feed rename: %w", err)
	}
	return nil
}

// ColList returns every column of feedName, in no particular order.
func (c *Conn) ColList(feedName string) ([]catalog.ColItem, error) {
	c.colMapMu.RLock()
	defer c.colMapMu.RUnlock()
	cols, ok := c.colMapMapping[feedName]
	if !ok {
		return nil, fmt.Errorf("conn: col list %q: %w", feedName, ErrNotFound)
	}
	out := make([]catalog.ColItem, 0, len(cols))
	for _, item := range cols {
		out = append(out, item)
	}
	return out, nil
}

// ColExists reports whether colName names a known column of feedName.
func (c *Conn) ColExists(feedName, colName string) bool {
	c.colMapMu.RLock()
	defer c.colMapMu.RUnlock()
	cols, ok := c.colMapMapping[feedName]
	if !ok {
		return false
	}
	_, ok = cols[colName]
	return ok
}

// ColAdd creates a new column colName of the given datatype (its canonical
// textual form, e.g. "Int64" or "Bytes[16]") in feedName, sized to match
// the feed's current row count.
func (c *Conn) ColAdd(feedName, colName, datatypeStr string) error {
	if !c.FeedExists(feedName) {
		return fmt.Errorf("conn: col add %q/%q: %w", feedName, colName, ErrNotFound)
	}
	if c.ColExists(feedName, colName) {
		return fmt.Errorf("conn: col add %q/%q: %w", feedName, colName, ErrAlreadyExists)
	}
	if err := catalog.ValidateName(colName); err != nil {
		return fmt.Errorf("conn: col add %q/%q: %w", feedName, colName, ErrInvalidInput)
	}
	dt, err := datatype.Parse(datatypeStr)
	if err != nil {
		return fmt.Errorf("conn: col add %q/%q: %w", feedName, colName, ErrInvalidInput)
	}

	colItem := catalog.NewColItem(colName, dt)

	c.colListMu.Lock()
	cl := c.colListMapping[feedName]
	err = cl.Add(colItem)
	c.colListMu.Unlock()
	if err != nil {
		return fmt.Errorf("conn: col add: %w", err)
	}

	if err := c.colOpen(feedName, colName, colItem); err != nil {
		return fmt.Errorf("conn: col add: %w", err)
	}

	c.feedMapMu.RLock()
	size := c.feedMap[feedName].Size
	c.feedMapMu.RUnlock()

	c.seqMu.RLock()
	s := c.seqMapping[feedName][colName]
	c.seqMu.RUnlock()
	if err := s.Resize(size); err != nil {
		return fmt.Errorf("conn: col add: %w", err)
	}
	return nil
}

// ColRename renames colName to colNameNew within feedName.
func (c *Conn) ColRename(feedName, colName, colNameNew string) error {
	if !c.FeedExists(feedName) {
		return fmt.Errorf("conn: col rename %q/%q: %w", feedName, colName, ErrNotFound)
	}
	if !c.ColExists(feedName, colName) {
		return fmt.Errorf("conn: col rename %q/%q: %w", feedName, colName, ErrNotFound)
	}
	if err := catalog.ValidateName(colNameNew); err != nil {
		return fmt.Errorf("conn: col rename to %q: %w", colNameNew, ErrInvalidInput)
	}
	if c.ColExists(feedName, colNameNew) {
		return fmt.Errorf("conn: col rename to %q: %w", colNameNew, ErrAlreadyExists)
	}

	colItem := c.colClose(feedName, colName)
	colItem = colItem.Rename(colNameNew)

	c.colListMu.Lock()
	cl := c.colListMapping[feedName]
	err := cl.Modify(colName, colItem)
	c.colListMu.Unlock()
	if err != nil {
		return fmt.Errorf("conn: col rename: %w", err)
	}

	if err := os.Rename(c.seqPath(feedName, colName), c.seqPath(feedName, colNameNew)); err != nil {
		return fmt.Errorf("conn: col rename: %w", err)
	}

	if err := c.colOpen(feedName, colNameNew, colItem); err != nil {
		return fmt.Errorf("conn: col rename: %w", err)
	}
	return nil
}

// ColRemove deletes column colName from feedName.
func (c *Conn) ColRemove(feedName, colName string) error {
	if !c.FeedExists(feedName) {
		return fmt.Errorf("conn: col remove %q/%q: %w", feedName, colName, ErrNotFound)
	}
	if !c.ColExists(feedName, colName) {
		return fmt.Errorf("conn: col remove %q/%q: %w", feedName, colName, ErrNotFound)
	}

	c.colClose(feedName, colName)

	c.colListMu.Lock()
	cl := c.colListMapping[feedName]
	err := cl.Remove(colName)
	c.colListMu.Unlock()
	if err != nil {
		return fmt.Errorf("conn: col remove: %w", err)
	}

	if err := os.Remove(c.seqPath(feedName, colName)); err != nil {
		return fmt.Errorf("conn: col remove: %w", err)
	}
	return nil
}

// SizeGet returns the current row count of feedName.
func (c *Conn) SizeGet(feedName string) (int64, error) {
	c.feedMapMu.RLock()
	defer c.feedMapMu.RUnlock()
	item, ok := c.feedMap[feedName]
	if !ok {
		return 0, fmt.Errorf("conn: size get %q: %w", feedName, ErrNotFound)
	}
	return item.Size, nil
}

// SizeSet changes the row count of feedName and every one of its columns'
// backing files, fanning the resize out across columns concurrently. It
// returns the feed's previous size.
func (c *Conn) SizeSet(feedName string, size int64) (int64, error) {
	if !c.FeedExists(feedName) {
		return 0, fmt.Errorf("conn: size set %q: %w", feedName, ErrNotFound)
	}

	c.seqMu.RLock()
	seqs := c.seqMapping[feedName]
	c.seqMu.RUnlock()

	runs := make([]func(context.Context) error, 0, len(seqs))
	for _, s := range seqs {
		s := s
		runs = append(runs, func(context.Context) error {
			return s.Resize(size)
		})
	}
	if err := start.RunAll(context.Background(), runs...); err != nil {
		return 0, fmt.Errorf("conn: size set: %w", err)
	}

	c.feedMapMu.Lock()
	feedItem := c.feedMap[feedName]
	oldSize := feedItem.Size
	feedItem.Size = size
	c.feedMap[feedName] = feedItem
	c.feedMapMu.Unlock()

	c.feedListMu.Lock()
	err := c.feedList.Modify(feedName, feedItem)
	c.feedListMu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("conn: size set: %w", err)
	}

	return oldSize, nil
}

// DataGet reads size rows starting at ix from each named column of
// feedName, fanning the reads out across columns concurrently.
func (c *Conn) DataGet(feedName string, ix, size int64, cols []string) (dataset.Dataset, error) {
	if !c.FeedExists(feedName) {
		return nil, fmt.Errorf("conn: data get %q: %w", feedName, ErrNotFound)
	}

	type result struct {
		name   string
		series []datatype.Dataunit
	}
	results := make([]result, len(cols))

	runs := make([]func(context.Context) error, len(cols))
	for i, colName := range cols {
		i, colName := i, colName
		runs[i] = func(context.Context) error {
			dt, s, err := c.colDatatypeAndSeq(feedName, colName)
			if err != nil {
				return err
			}
			block := make([]byte, size*int64(dt.Size()))
			if err := s.Get(ix, block); err != nil {
				return fmt.Errorf("conn: data get %q: %w", colName, err)
			}
			results[i] = result{name: colName, series: decodeSeries(dt, block)}
			return nil
		}
	}
	if err := start.RunAll(context.Background(), runs...); err != nil {
		return nil, err
	}

	ds := make(dataset.Dataset, len(cols))
	for _, r := range results {
		ds[r.name] = r.series
	}
	return ds, nil
}

// DataPush appends ds as new rows at the end of feedName, growing every
// column (missing columns are zero-filled).
func (c *Conn) DataPush(feedName string, ds dataset.Dataset) error {
	size, err := dataset.Size(ds)
	if err != nil {
		return fmt.Errorf("conn: data push: %w", err)
	}
	if size == 0 {
		return nil
	}

	ix, err := c.SizeGet(feedName)
	if err != nil {
		return fmt.Errorf("conn: data push: %w", err)
	}
	if _, err := c.SizeSet(feedName, ix+int64(size)); err != nil {
		return fmt.Errorf("conn: data push: %w", err)
	}
	return c.DataPatch(feedName, ix, ds)
}

// DataSave overwrites rows starting at ix with ds, zero-filling every
// column of feedName that ds does not mention.
func (c *Conn) DataSave(feedName string, ix int64, ds dataset.Dataset) error {
	cols, err := c.ColList(feedName)
	if err != nil {
		return fmt.Errorf("conn: data save: %w", err)
	}
	names := make([]string, len(cols))
	for i, item := range cols {
		names[i] = item.Name()
	}
	return c.dataUpdate(feedName, ix, ds, names)
}

// DataPatch overwrites rows starting at ix with ds, leaving every column
// ds does not mention untouched.
func (c *Conn) DataPatch(feedName string, ix int64, ds dataset.Dataset) error {
	names := make([]string, 0, len(ds))
	for name := range ds {
		names = append(names, name)
	}
	return c.dataUpdate(feedName, ix, ds, names)
}

// RawGet reads size rows of raw, still-encoded bytes from colName in
// feedName starting at ix.
func (c *Conn) RawGet(feedName, colName string, ix, size int64) ([]byte, error) {
	dt, s, err := c.colDatatypeAndSeq(feedName, colName)
	if err != nil {
		return nil, fmt.Errorf("conn: raw get: %w", err)
	}
	block := make([]byte, size*int64(dt.Size()))
	if err := s.Get(ix, block); err != nil {
		return nil, fmt.Errorf("conn: raw get: %w", err)
	}
	return block, nil
}

// RawSet overwrites colName in feedName starting at ix with already-encoded
// bytes.
func (c *Conn) RawSet(feedName, colName string, ix int64, block []byte) error {
	c.seqMu.RLock()
	cols, ok := c.seqMapping[feedName]
	c.seqMu.RUnlock()
	if !ok {
		return fmt.Errorf("conn: raw set %q: %w", feedName, ErrNotFound)
	}
	s, ok := cols[colName]
	if !ok {
		return fmt.Errorf("conn: raw set %q/%q: %w", feedName, colName, ErrNotFound)
	}
	if err := s.Update(ix, block); err != nil {
		return fmt.Errorf("conn: raw set: %w", err)
	}
	return nil
}

func (c *Conn) dataUpdate(feedName string, ix int64, ds dataset.Dataset, cols []string) error {
	size, err := dataset.Size(ds)
	if err != nil {
		return fmt.Errorf("conn: data update: %w", err)
	}
	if size == 0 {
		return nil
	}

	runs := make([]func(context.Context) error, len(cols))
	for i, colName := range cols {
		colName := colName
		runs[i] = func(context.Context) error {
			dt, s, err := c.colDatatypeAndSeq(feedName, colName)
			if err != nil {
				return err
			}

			var block []byte
			if series, ok := ds[colName]; ok {
				block = make([]byte, 0, len(series)*dt.Size())
				for _, unit := range series {
					encoded, ok := dt.ToBytes(unit)
					if !ok {
						return fmt.Errorf("conn: data update %q: %w", colName, ErrInvalidInput)
					}
					block = append(block, encoded...)
				}
			} else {
				block = make([]byte, size*dt.Size())
			}

			if err := s.Update(ix, block); err != nil {
				return fmt.Errorf("conn: data update %q: %w", colName, err)
			}
			return nil
		}
	}
	if err := start.RunAll(context.Background(), runs...); err != nil {
		return fmt.Errorf("conn: data update: %w", err)
	}
	return nil
}

func (c *Conn) colDatatypeAndSeq(feedName, colName string) (datatype.Datatype, *seq.Seq, error) {
	c.colMapMu.RLock()
	cols, ok := c.colMapMapping[feedName]
	var colItem catalog.ColItem
	if ok {
		colItem, ok = cols[colName]
	}
	c.colMapMu.RUnlock()
	if !ok {
		return datatype.Datatype{}, nil, fmt.Errorf("conn: %q/%q: %w", feedName, colName, ErrNotFound)
	}

	c.seqMu.RLock()
	s := c.seqMapping[feedName][colName]
	c.seqMu.RUnlock()

	return colItem.Datatype, s, nil
}

func decodeSeries(dt datatype.Datatype, block []byte) []datatype.Dataunit {
	width := dt.Size()
	if width == 0 || len(block) == 0 {
		return nil
	}
	out := make([]datatype.Dataunit, len(block)/width)
	for i := range out {
		out[i] = dt.FromBytes(block[i*width : (i+1)*width])
	}
	return out
}

func (c *Conn) feedOpen(feedName string, feedItem catalog.FeedItem) error {
	cl, err := list.Open[catalog.ColItem, *catalog.ColItem, string](c.colListPath(feedName))
	if err != nil {
		return fmt.Errorf("feed open %q: %w", feedName, err)
	}
	colMap, err := cl.Map()
	if err != nil {
		return fmt.Errorf("feed open %q: %w", feedName, err)
	}

	c.colMapMu.Lock()
	c.colMapMapping[feedName] = make(map[string]catalog.ColItem)
	c.colMapMu.Unlock()

	c.seqMu.Lock()
	c.seqMapping[feedName] = make(map[string]*seq.Seq)
	c.seqMu.Unlock()

	for colName, colItem := range colMap {
		if err := c.colOpen(feedName, colName, colItem); err != nil {
			return fmt.Errorf("feed open %q: %w", feedName, err)
		}
	}

	c.feedMapMu.Lock()
	c.feedMap[feedName] = feedItem
	c.feedMapMu.Unlock()

	c.colListMu.Lock()
	c.colListMapping[feedName] = cl
	c.colListMu.Unlock()

	return nil
}

func (c *Conn) feedClose(feedName string) catalog.FeedItem {
	c.seqMu.Lock()
	delete(c.seqMapping, feedName)
	c.seqMu.Unlock()

	c.colListMu.Lock()
	delete(c.colListMapping, feedName)
	c.colListMu.Unlock()

	c.colMapMu.Lock()
	delete(c.colMapMapping, feedName)
	c.colMapMu.Unlock()

	c.feedMapMu.Lock()
	defer c.feedMapMu.Unlock()
	item := c.feedMap[feedName]
	delete(c.feedMap, feedName)
	return item
}

func (c *Conn) colOpen(feedName, colName string, colItem catalog.ColItem) error {
	s, err := seq.Open(c.seqPath(feedName, colName), colItem.Datatype.Size())
	if err != nil {
		return fmt.Errorf("col open %q/%q: %w", feedName, colName, err)
	}

	c.colMapMu.Lock()
	c.colMapMapping[feedName][colName] = colItem
	c.colMapMu.Unlock()

	c.seqMu.Lock()
	c.seqMapping[feedName][colName] = s
	c.seqMu.Unlock()

	return nil
}

func (c *Conn) colClose(feedName, colName string) catalog.ColItem {
	c.seqMu.Lock()
	delete(c.seqMapping[feedName], colName)
	c.seqMu.Unlock()

	c.colMapMu.Lock()
	defer c.colMapMu.Unlock()
	item := c.colMapMapping[feedName][colName]
	delete(c.colMapMapping[feedName], colName)
	return item
}

func feedListPath(root string) string {
	return pathutil.Join(root, "feed.list")
}

func (c *Conn) feedDir(feedName string) string {
	return pathutil.Join(c.path, feedName)
}

func (c *Conn) colListPath(feedName string) string {
	return pathutil.Join(c.path, feedName, "col.list")
}

func (c *Conn) seqPath(feedName, colName string) string {
	return pathutil.Join(c.path, feedName, colName+".col")
}
