package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mikiasgoitom/yamdb/internal/domain/contract"
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
)

const (
	titleKeyPrefix   = "yamdb:title:id:"
	versionKeyPrefix = "yamdb:title:ver:"
	globalVersionKey = "yamdb:title:ver-all"
	scanBatch        = 1000
	deleteBatchSize  = 200
)

// setIfVersion stores the view only while both version counters still read
// what the caller saw before loading it from the database.
// KEYS: detail, title version, global version. ARGV: token, payload, ttl ms.
var setIfVersion = redis.NewScript(`
local v = (redis.call('GET', KEYS[2]) or '0') .. ':' .. (redis.call('GET', KEYS[3]) or '0')
if v ~= ARGV[1] then
  return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// TitleCacheStore keeps title detail views in Redis. Entries carry a rating,
// so every review write must invalidate the title it touches.
type TitleCacheStore struct {
	rdb        *redis.Client
	detailTTL  time.Duration
	versionTTL time.Duration
}

func NewTitleCacheStore(rdb *redis.Client) *TitleCacheStore {
	return &TitleCacheStore{
		rdb:        rdb,
		detailTTL:  10 * time.Minute,
		versionTTL: 24 * time.Hour,
	}
}

var _ contract.ITitleCache = (*TitleCacheStore)(nil)

func titleDetailKey(id string) string  { return titleKeyPrefix + id }
func titleVersionKey(id string) string { return versionKeyPrefix + id }

// versionToken joins the per-title and global counters; a missing counter reads as 0.
func versionToken(title, global interface{}) string {
	str := func(v interface{}) string {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
		return "0"
	}
	return str(title) + ":" + str(global)
}

func (c *TitleCacheStore) GetTitle(ctx context.Context, id string) (*entity.TitleView, bool, error) {
	b, err := c.rdb.Get(ctx, titleDetailKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	view, ok := decodeView(b)
	return view, ok, nil
}

func (c *TitleCacheStore) TitleVersion(ctx context.Context, id string) (string, error) {
	vals, err := c.rdb.MGet(ctx, titleVersionKey(id), globalVersionKey).Result()
	if err != nil {
		return "", err
	}
	return versionToken(vals[0], vals[1]), nil
}

func (c *TitleCacheStore) SetTitle(ctx context.Context, view *entity.TitleView, version string) (bool, error) {
	data, err := encodeView(view)
	if err != nil {
		return false, err
	}
	keys := []string{titleDetailKey(view.ID), titleVersionKey(view.ID), globalVersionKey}
	stored, err := setIfVersion.Run(ctx, c.rdb, keys, version, data, c.detailTTL.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("cache title %s: %w", view.ID, err)
	}
	return stored == 1, nil
}

// InvalidateTitle bumps the title's version before dropping the entry, so a
// fill that loaded the old view can no longer land.
func (c *TitleCacheStore) InvalidateTitle(ctx context.Context, id string) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, titleVersionKey(id))
		pipe.Expire(ctx, titleVersionKey(id), c.versionTTL)
		pipe.Del(ctx, titleDetailKey(id))
		return nil
	})
	return err
}

// InvalidateAllTitles drops every cached view; used when a category, genre
// or user delete can touch many titles at once.
func (c *TitleCacheStore) InvalidateAllTitles(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, globalVersionKey).Err(); err != nil {
		return err
	}
	iter := c.rdb.Scan(ctx, 0, titleKeyPrefix+"*", scanBatch).Iterator()
	pipe := c.rdb.Pipeline()
	n := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		n++
		if n%deleteBatchSize == 0 {
			if _, err := pipe.Exec(ctx); err != nil {
				return err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if n%deleteBatchSize != 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func encodeView(view *entity.TitleView) ([]byte, error) {
	if view == nil || view.ID == "" {
		return nil, errors.New("cache title: view without id")
	}
	return json.Marshal(view)
}

// decodeView treats a corrupt entry as a miss.
func decodeView(b []byte) (*entity.TitleView, bool) {
	var view entity.TitleView
	if err := json.Unmarshal(b, &view); err != nil || view.ID == "" {
		return nil, false
	}
	return &view, true
}
