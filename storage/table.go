package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/bytedance/sonic"
)

// DefaultPartition groups every document of a single board.
const DefaultPartition = "focusflow"

type tableClient interface {
	GetEntity(ctx context.Context, partitionKey, rowKey string, options *aztables.GetEntityOptions) (aztables.GetEntityResponse, error)
	UpsertEntity(ctx context.Context, entity []byte, options *aztables.UpsertEntityOptions) (aztables.UpsertEntityResponse, error)
}

// Table stores each document as one Azure Table entity keyed by
// (partition, key).
type Table struct {
	client    tableClient
	partition string
}

type documentEntity struct {
	PartitionKey string `json:"PartitionKey"`
	RowKey       string `json:"RowKey"`
	Data         string `json:"Data"`
}

// NewTable connects to the named table using a storage connection string.
func NewTable(connStr, tableName, partition string) (*Table, error) {
	opts := aztables.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    3,
				TryTimeout:    time.Minute,
				RetryDelay:    time.Second,
				MaxRetryDelay: 15 * time.Second,
				StatusCodes:   []int{408, 429, 500, 502, 503, 504},
			},
		},
	}
	svc, err := aztables.NewServiceClientFromConnectionString(connStr, &opts)
	if err != nil {
		return nil, err
	}
	return newTable(svc.NewClient(tableName), partition), nil
}

func newTable(client tableClient, partition string) *Table {
	if partition == "" {
		partition = DefaultPartition
	}
	return &Table{client: client, partition: partition}
}

func (t *Table) Load(ctx context.Context, key string) ([]byte, error) {
	resp, err := t.client.GetEntity(ctx, t.partition, key, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get entity %s: %w", key, err)
	}
	var ent documentEntity
	if err := sonic.Unmarshal(resp.Value, &ent); err != nil {
		return nil, fmt.Errorf("decode entity %s: %w", key, err)
	}
	return []byte(ent.Data), nil
}

func (t *Table) Save(ctx context.Context, key string, value []byte) error {
	ent := documentEntity{PartitionKey: t.partition, RowKey: key, Data: string(value)}
	payload, err := sonic.Marshal(ent)
	if err != nil {
		return err
	}
	opts := &aztables.UpsertEntityOptions{UpdateMode: aztables.UpdateModeReplace}
	if _, err := t.client.UpsertEntity(ctx, payload, opts); err != nil {
		return fmt.Errorf("upsert entity %s: %w", key, err)
	}
	return nil
}
