package service

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/printzz/printzz/internal/store"
	"github.com/printzz/printzz/models"
)

// memSlots is an in-memory SlotRepository with the same conflict semantics
// as the printer_slots primary key.
type memSlots struct {
	mu    sync.Mutex
	slots map[string]models.Document
}

func newMemSlots() *memSlots {
	return &memSlots{slots: make(map[string]models.Document)}
}

func (m *memSlots) InsertSlot(_ context.Context, doc models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.slots[doc.PrinterID]; ok {
		return store.ErrSlotOccupied
	}
	m.slots[doc.PrinterID] = doc
	return nil
}

func (m *memSlots) GetSlot(_ context.Context, printerID string) (models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.slots[printerID]
	if !ok {
		return models.Document{}, store.ErrSlotNotFound
	}
	return doc, nil
}

func (m *memSlots) DeleteSlot(_ context.Context, printerID, docID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.slots[printerID]
	if !ok || (docID != "" && doc.DocID != docID) {
		return store.ErrSlotNotFound
	}
	delete(m.slots, printerID)
	return nil
}

func (m *memSlots) UpdateProgress(_ context.Context, printerID, docID string, progress float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.slots[printerID]
	if !ok || doc.DocID != docID {
		return store.ErrSlotNotFound
	}
	doc.Progress = progress
	m.slots[printerID] = doc
	return nil
}

func (m *memSlots) ListSlots(_ context.Context, filter store.SlotFilter) ([]models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var docs []models.Document
	for _, doc := range m.slots {
		if filter.UserID != "" && doc.UserID != filter.UserID {
			continue
		}
		if filter.PrinterID != "" && doc.PrinterID != filter.PrinterID {
			continue
		}
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].PrinterID < docs[j].PrinterID })
	return docs, nil
}

type memBlob struct {
	data    []byte
	modTime time.Time
}

// memBlobs is an in-memory BlobStorage.
type memBlobs struct {
	mu    sync.Mutex
	blobs map[string]memBlob
	now   func() time.Time
}

func newMemBlobs() *memBlobs {
	return &memBlobs{blobs: make(map[string]memBlob), now: time.Now}
}

func (m *memBlobs) Put(_ context.Context, name string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[name] = memBlob{data: data, modTime: m.now()}
	return int64(len(data)), nil
}

func (m *memBlobs) Get(_ context.Context, name string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.blobs[name]
	if !ok {
		return nil, store.ErrBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(blob.data)), nil
}

func (m *memBlobs) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, name)
	return nil
}

func (m *memBlobs) List(_ context.Context) ([]store.BlobInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	infos := make([]store.BlobInfo, 0, len(m.blobs))
	for name, blob := range m.blobs {
		infos = append(infos, store.BlobInfo{Name: name, Size: int64(len(blob.data)), ModTime: blob.modTime})
	}
	return infos, nil
}

func (m *memBlobs) names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.blobs))
	for name := range m.blobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *memBlobs) put(name string, data []byte, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[name] = memBlob{data: data, modTime: modTime}
}
