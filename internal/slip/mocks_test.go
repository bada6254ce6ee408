package slip

import (
	"fmt"
	"time"
)

// mockStore is a mock implementation of Store
type mockStore struct {
	records           map[string]*Record
	insertErr         error
	existsErr         error
	listErr           error
	existsAlwaysFalse bool
}

func newMockStore() *mockStore {
	return &mockStore{
		records: make(map[string]*Record),
	}
}

func (m *mockStore) key(date string, atmID int, userID string) string {
	return fmt.Sprintf("%s|%d|%s", date, atmID, userID)
}

func (m *mockStore) Insert(record *Record) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	key := m.key(record.Date, record.ATMID, record.UserID)
	if _, ok := m.records[key]; ok {
		return ErrDuplicate
	}
	m.records[key] = record
	return nil
}

func (m *mockStore) Exists(date string, atmID int, userID string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	if m.existsAlwaysFalse {
		return false, nil
	}
	_, ok := m.records[m.key(date, atmID, userID)]
	return ok, nil
}

func (m *mockStore) List(date string, userID string) ([]*Record, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	records := make([]*Record, 0)
	for _, r := range m.records {
		if r.Date == date && r.UserID == userID {
			records = append(records, r)
		}
	}
	return records, nil
}

func (m *mockStore) Close() error {
	return nil
}

// mockExtractor is a mock implementation of extraction.Extractor
type mockExtractor struct {
	pair *Pair
	raw  string
	err  error
}

func newMockExtractor() *mockExtractor {
	pair := testPair()
	return &mockExtractor{
		pair: &pair,
		raw:  "raw model output",
	}
}

func (m *mockExtractor) ExtractSlips(imageData []byte, contentType string) (*Pair, string, error) {
	if m.err != nil {
		return nil, m.raw, m.err
	}
	return m.pair, m.raw, nil
}

func (m *mockExtractor) Close() error {
	return nil
}

// mockTimeSource is a mock implementation of TimeSource
type mockTimeSource struct {
	now time.Time
}

func (m *mockTimeSource) Now() time.Time {
	return m.now
}
