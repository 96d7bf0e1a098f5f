package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()
	if _, err := kv.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := kv.Save(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := kv.Save(ctx, "k", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := kv.Load(ctx, "k")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"a":2}` {
		t.Fatalf("unexpected value %s", got)
	}
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestMemory(t *testing.T) {
	exerciseKV(t, NewMemory())
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	buf := []byte("abc")
	_ = m.Save(context.Background(), "k", buf)
	buf[0] = 'x'
	got, _ := m.Load(context.Background(), "k")
	if string(got) != "abc" {
		t.Fatalf("memory store aliases caller buffer: %s", got)
	}
}

func TestRedis(t *testing.T) {
	mr, client := newMiniredis(t)
	exerciseKV(t, NewRedis(client, "ff:"))
	if !mr.Exists("ff:k") {
		t.Fatalf("expected prefixed key")
	}
}

func TestSQLite(t *testing.T) {
	db, err := OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	exerciseKV(t, db)
}

func TestSQLiteReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "board.db")
	ctx := context.Background()

	db, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Save(ctx, "k", []byte("v")); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = db.Close()

	again, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = again.Close() })
	got, err := again.Load(ctx, "k")
	if err != nil || string(got) != "v" {
		t.Fatalf("unexpected reload %q %v", got, err)
	}
}

type fakeTable struct {
	entities map[string][]byte
	err      error
}

func (f *fakeTable) GetEntity(_ context.Context, pk, rk string, _ *aztables.GetEntityOptions) (aztables.GetEntityResponse, error) {
	if f.err != nil {
		return aztables.GetEntityResponse{}, f.err
	}
	v, ok := f.entities[pk+"/"+rk]
	if !ok {
		return aztables.GetEntityResponse{}, &azcore.ResponseError{StatusCode: 404}
	}
	return aztables.GetEntityResponse{Value: v}, nil
}

func (f *fakeTable) UpsertEntity(_ context.Context, entity []byte, _ *aztables.UpsertEntityOptions) (aztables.UpsertEntityResponse, error) {
	if f.err != nil {
		return aztables.UpsertEntityResponse{}, f.err
	}
	var ent documentEntity
	if err := sonic.Unmarshal(entity, &ent); err != nil {
		return aztables.UpsertEntityResponse{}, err
	}
	if f.entities == nil {
		f.entities = map[string][]byte{}
	}
	f.entities[ent.PartitionKey+"/"+ent.RowKey] = append([]byte(nil), entity...)
	return aztables.UpsertEntityResponse{}, nil
}

func TestTable(t *testing.T) {
	fake := &fakeTable{}
	exerciseKV(t, newTable(fake, ""))
	if _, ok := fake.entities[DefaultPartition+"/k"]; !ok {
		t.Fatalf("expected entity under default partition, got %v", fake.entities)
	}
}

func TestTablePropagatesOtherErrors(t *testing.T) {
	boom := &azcore.ResponseError{StatusCode: 503}
	tbl := newTable(&fakeTable{err: boom}, "p")
	_, err := tbl.Load(context.Background(), "k")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped service error, got %v", err)
	}
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) || respErr.StatusCode != 503 {
		t.Fatalf("expected response error to be preserved, got %v", err)
	}
}
