package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyStore shares cache entries through a Valkey server. Keys carry no
// server-side expiry so that stale entries stay readable as a fallback.
type ValkeyStore struct {
	client valkey.Client
	prefix string
	now    func() time.Time
}

// NewValkeyStore constructs a store backed by Valkey
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "beach"
	}
	return &ValkeyStore{client: client, prefix: prefix, now: time.Now}
}

// DialValkey connects to addr (host:port or a valkey:// URL) and pings it
func DialValkey(ctx context.Context, addr string) (valkey.Client, error) {
	opt, err := valkey.ParseURL(addr)
	if err != nil {
		opt = valkey.ClientOption{InitAddress: []string{addr}}
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("creating valkey client: %w", err)
	}
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging valkey: %w", err)
	}
	return client, nil
}

// Write stores payload under key, replacing any previous entry
func (s *ValkeyStore) Write(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	data, err := json.Marshal(Entry{Payload: payload, CapturedAt: s.now(), TTL: ttl})
	if err != nil {
		return fmt.Errorf("encoding cache entry %s: %w", key, err)
	}
	cmd := s.client.B().Set().Key(s.entryKey(key)).Value(string(data)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("writing cache entry %s: %w", key, err)
	}
	return nil
}

// Read returns the entry under key, expired or not
func (s *ValkeyStore) Read(ctx context.Context, key string) (Entry, bool, error) {
	cmd := s.client.B().Get().Key(s.entryKey(key)).Build()
	raw, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("reading cache entry %s: %w", key, err)
	}

	var entry Entry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return Entry{}, false, fmt.Errorf("decoding cache entry %s: %w", key, err)
	}
	if entry.Payload == nil {
		entry.Payload = []byte{}
	}
	return entry, true, nil
}

func (s *ValkeyStore) entryKey(key string) string {
	return s.prefix + ":cache:" + key
}
