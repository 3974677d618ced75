package cache

import "context"

// NoopStore never stores anything; every read is a miss.
type NoopStore struct{}

func (NoopStore) Get(context.Context, string) ([]byte, error)         { return nil, ErrCacheMiss }
func (NoopStore) Set(context.Context, string, []byte) error           { return nil }
func (NoopStore) DeleteMatching(context.Context, string) (int, error) { return 0, nil }
func (NoopStore) Ping(context.Context) error                          { return nil }
func (NoopStore) Flush(context.Context) error                         { return nil }
func (NoopStore) Close() error                                        { return nil }
