package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"
)

// Valkey is a Store shared between instances through a Valkey server.
type Valkey struct {
	client valkey.Client
	prefix string
}

func NewValkey(client valkey.Client, prefix string) *Valkey {
	if prefix == "" {
		prefix = "conditions"
	}
	return &Valkey{client: client, prefix: prefix}
}

// Dial connects to addr, which is either host:port or a redis:// style URL,
// and pings the server before returning.
func Dial(ctx context.Context, addr, prefix string) (*Valkey, error) {
	opt, err := ClientOptions(addr)
	if err != nil {
		return nil, err
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping failed: %w", err)
	}
	return NewValkey(client, prefix), nil
}

func ClientOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	if addr == "" {
		return valkey.ClientOption{}, fmt.Errorf("valkey address is empty")
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func (v *Valkey) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := v.client.Do(ctx, v.client.B().Get().Key(v.key(key)).Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

func (v *Valkey) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	builder := v.client.B().Set().Key(v.key(key)).Value(valkey.BinaryString(value))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return v.client.Do(ctx, cmd).Error()
}

func (v *Valkey) Delete(ctx context.Context, key string) error {
	return v.client.Do(ctx, v.client.B().Del().Key(v.key(key)).Build()).Error()
}

// Flush removes every key under the prefix.
func (v *Valkey) Flush(ctx context.Context) error {
	var cursor uint64
	for {
		entry, err := v.client.Do(ctx, v.client.B().Scan().Cursor(cursor).Match(v.prefix+":*").Count(100).Build()).AsScanEntry()
		if err != nil {
			return err
		}
		if len(entry.Elements) > 0 {
			if err := v.client.Do(ctx, v.client.B().Del().Key(entry.Elements...).Build()).Error(); err != nil {
				return err
			}
		}
		if entry.Cursor == 0 {
			return nil
		}
		cursor = entry.Cursor
	}
}

func (v *Valkey) Type() string {
	return "valkey"
}

func (v *Valkey) Close() {
	v.client.Close()
}

func (v *Valkey) key(k string) string {
	return v.prefix + ":" + k
}

var _ Store = (*Valkey)(nil)
