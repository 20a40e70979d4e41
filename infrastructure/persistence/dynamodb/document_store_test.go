package dynamodb

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeClient stores items by PK/SK in memory. It honours the one
// condition the store sends, attribute_not_exists on the partition key.
type fakeClient struct {
	mu      sync.Mutex
	items   map[string]map[string]types.AttributeValue
	puts    int
	lastGet *dynamodb.GetItemInput
	lastPut *dynamodb.PutItemInput
	err     error

	// beforePut runs once ahead of the next put, outside the lock
	beforePut func()
}

func newFakeClient() *fakeClient {
	return &fakeClient{items: make(map[string]map[string]types.AttributeValue)}
}

func itemKey(key map[string]types.AttributeValue) string {
	pk := key["PK"].(*types.AttributeValueMemberS).Value
	sk := key["SK"].(*types.AttributeValueMemberS).Value
	return pk + "|" + sk
}

func (f *fakeClient) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastGet = in
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{Item: f.items[itemKey(in.Key)]}, nil
}

func (f *fakeClient) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if hook := f.beforePut; hook != nil {
		f.beforePut = nil
		hook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPut = in
	if f.err != nil {
		return nil, f.err
	}
	if in.ConditionExpression != nil {
		if _, exists := f.items[itemKey(in.Item)]; exists {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
		}
	}
	f.puts++
	f.items[itemKey(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

type record struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

func TestDocumentStore_SeedsMissingItem(t *testing.T) {
	// Arrange
	client := newFakeClient()
	store := NewDocumentStore[record](client, "portfolio", "projects", zap.NewNop())

	// Act
	items, err := store.Load(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []record{}, items)
	assert.Equal(t, 1, client.puts)

	stored := client.items["COLLECTION#projects|DOCUMENT"]
	require.NotNil(t, stored)
	assert.Equal(t, "[]", stored["Document"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "portfolio", aws.ToString(client.lastGet.TableName))
	assert.NotNil(t, client.lastGet.ProjectionExpression)
}

func TestDocumentStore_ReplaceThenLoad(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	projects := NewDocumentStore[record](client, "portfolio", "projects", zap.NewNop())
	testimonials := NewDocumentStore[record](client, "portfolio", "testimonials", zap.NewNop())

	require.NoError(t, projects.Replace(ctx, []record{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}))
	require.NoError(t, testimonials.Replace(ctx, []record{{ID: 9, Title: "t"}}))

	got, err := projects.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []record{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}, got)

	other, err := testimonials.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, other, 1)

	count := client.items["COLLECTION#projects|DOCUMENT"]["ItemCount"].(*types.AttributeValueMemberN).Value
	assert.Equal(t, "2", count)
}

func TestDocumentStore_SeedIsConditional(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := NewDocumentStore[record](client, "portfolio", "projects", zap.NewNop())
	writer := NewDocumentStore[record](client, "portfolio", "projects", zap.NewNop())

	// A concurrent writer lands after the empty read but before the seed.
	client.beforePut = func() {
		require.NoError(t, writer.Replace(ctx, []record{{ID: 7, Title: "first"}}))
	}

	items, err := store.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, []record{{ID: 7, Title: "first"}}, items)
	assert.Equal(t, 1, client.puts, "the seed put was rejected")
}

func TestDocumentStore_SeedSendsCondition(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := NewDocumentStore[record](client, "portfolio", "projects", zap.NewNop())

	_, err := store.Load(ctx)
	require.NoError(t, err)

	require.NotNil(t, client.lastPut)
	cond := aws.ToString(client.lastPut.ConditionExpression)
	assert.Contains(t, cond, "attribute_not_exists")
	assert.Contains(t, client.lastPut.ExpressionAttributeNames, "#0")
	assert.Equal(t, "PK", client.lastPut.ExpressionAttributeNames["#0"])

	// Seeding again over the existing item is a quiet no-op
	require.NoError(t, store.seed(ctx))
	assert.Equal(t, 1, client.puts)
}

func TestDocumentStore_ClientErrors(t *testing.T) {
	client := newFakeClient()
	client.err = errors.New("throttled")
	store := NewDocumentStore[record](client, "portfolio", "projects", zap.NewNop())

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, client.err)

	err = store.Replace(context.Background(), nil)
	assert.ErrorIs(t, err, client.err)
}

func TestDocumentStore_CorruptDocument(t *testing.T) {
	client := newFakeClient()
	client.items["COLLECTION#projects|DOCUMENT"] = map[string]types.AttributeValue{
		"PK":       &types.AttributeValueMemberS{Value: "COLLECTION#projects"},
		"SK":       &types.AttributeValueMemberS{Value: "DOCUMENT"},
		"Document": &types.AttributeValueMemberS{Value: "{oops"},
	}
	store := NewDocumentStore[record](client, "portfolio", "projects", zap.NewNop())

	_, err := store.Load(context.Background())

	assert.Error(t, err)
}
