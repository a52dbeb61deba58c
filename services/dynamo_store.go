package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"parche_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// DynamoStore implements DocumentStore on DynamoDB, one table per collection
// named TablePrefix + collection, partition key "id" (string).
type DynamoStore struct {
	Client      *dynamodb.Client
	TablePrefix string
}

// InitializeDynamoDBClient builds the DynamoDB client from the ambient AWS
// configuration (AWS_REGION and the default credential chain).
func InitializeDynamoDBClient() *dynamodb.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

// NewDynamoStore wires a store over the given client. TABLE_PREFIX lets
// multiple environments share one AWS account.
func NewDynamoStore(client *dynamodb.Client) *DynamoStore {
	return &DynamoStore{Client: client, TablePrefix: os.Getenv("TABLE_PREFIX")}
}

func (ds *DynamoStore) table(collection string) string {
	return ds.TablePrefix + collection
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

// marshalItem encodes fields plus the partition key into a Dynamo item.
func marshalItem(id string, fields models.Document) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	item["id"] = &types.AttributeValueMemberS{Value: id}
	return item, nil
}

// unmarshalItem decodes a Dynamo item into a Document, splitting off the
// partition key.
func unmarshalItem(item map[string]types.AttributeValue) (string, models.Document, error) {
	var doc models.Document
	if err := attributevalue.UnmarshalMap(item, &doc); err != nil {
		return "", nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	id, _ := doc["id"].(string)
	delete(doc, "id")
	return id, doc, nil
}

// Get retrieves one document; (nil, nil) when absent.
func (ds *DynamoStore) Get(ctx context.Context, collection, id string) (models.Document, error) {
	output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(ds.table(collection)),
		Key:       idKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item from '%s': %w", collection, err)
	}
	if output.Item == nil {
		return nil, nil
	}
	_, doc, err := unmarshalItem(output.Item)
	return doc, err
}

// Query scans the collection with an equality FilterExpression per field.
// With no predicates it returns the whole collection.
func (ds *DynamoStore) Query(ctx context.Context, collection string, equals map[string]interface{}) ([]StoredDocument, error) {
	input := &dynamodb.ScanInput{TableName: aws.String(ds.table(collection))}

	if len(equals) > 0 {
		var exprs []string
		names := map[string]string{}
		values := map[string]types.AttributeValue{}
		i := 0
		for field, value := range equals {
			av, err := attributevalue.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal predicate for '%s': %w", field, err)
			}
			nameRef := fmt.Sprintf("#f%d", i)
			valueRef := fmt.Sprintf(":v%d", i)
			names[nameRef] = field
			values[valueRef] = av
			exprs = append(exprs, fmt.Sprintf("%s = %s", nameRef, valueRef))
			i++
		}
		input.FilterExpression = aws.String(strings.Join(exprs, " AND "))
		input.ExpressionAttributeNames = names
		input.ExpressionAttributeValues = values
	}

	var results []StoredDocument
	paginator := dynamodb.NewScanPaginator(ds.Client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan '%s': %w", collection, err)
		}
		for _, item := range page.Items {
			id, doc, err := unmarshalItem(item)
			if err != nil {
				return nil, err
			}
			results = append(results, StoredDocument{ID: id, Fields: doc})
		}
	}
	return results, nil
}

// Set writes a document at a caller-chosen id. With merge, only the supplied
// fields are touched and the document is created if absent (UpdateItem is an
// upsert); without merge the document is replaced wholesale.
func (ds *DynamoStore) Set(ctx context.Context, collection, id string, fields models.Document, merge bool) error {
	if !merge {
		item, err := marshalItem(id, fields)
		if err != nil {
			return err
		}
		_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(ds.table(collection)),
			Item:      item,
		})
		if err != nil {
			return fmt.Errorf("failed to put item in '%s': %w", collection, err)
		}
		return nil
	}
	return ds.Update(ctx, collection, id, fields)
}

// Add writes a document under a fresh store-assigned id.
func (ds *DynamoStore) Add(ctx context.Context, collection string, fields models.Document) (string, error) {
	id := uuid.New().String()
	if err := ds.Set(ctx, collection, id, fields, false); err != nil {
		return "", err
	}
	return id, nil
}

// AddMany writes documents in BatchWriteItem chunks of 25, reporting the
// assigned ids in input order.
func (ds *DynamoStore) AddMany(ctx context.Context, collection string, fields []models.Document) ([]string, error) {
	const maxBatchSize = 25

	ids := make([]string, 0, len(fields))
	requests := make([]types.WriteRequest, 0, len(fields))
	for _, doc := range fields {
		id := uuid.New().String()
		item, err := marshalItem(id, doc)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		requests = append(requests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}

	for i := 0; i < len(requests); i += maxBatchSize {
		end := i + maxBatchSize
		if end > len(requests) {
			end = len(requests)
		}
		_, err := ds.Client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				ds.table(collection): requests[i:end],
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to batch write to '%s': %w", collection, err)
		}
	}
	return ids, nil
}

// Update applies a partial write via an UpdateItem SET expression.
func (ds *DynamoStore) Update(ctx context.Context, collection, id string, fields models.Document) error {
	if len(fields) == 0 {
		return nil
	}

	var exprs []string
	names := map[string]string{}
	values := map[string]types.AttributeValue{}
	i := 0
	for field, value := range fields {
		av, err := attributevalue.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal field '%s': %w", field, err)
		}
		nameRef := fmt.Sprintf("#f%d", i)
		valueRef := fmt.Sprintf(":v%d", i)
		names[nameRef] = field
		values[valueRef] = av
		exprs = append(exprs, fmt.Sprintf("%s = %s", nameRef, valueRef))
		i++
	}

	_, err := ds.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(ds.table(collection)),
		Key:                       idKey(id),
		UpdateExpression:          aws.String("SET " + strings.Join(exprs, ", ")),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return fmt.Errorf("failed to update item in '%s': %w", collection, err)
	}
	return nil
}

// Delete removes a document. Deleting a missing document is not an error.
func (ds *DynamoStore) Delete(ctx context.Context, collection, id string) error {
	_, err := ds.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(ds.table(collection)),
		Key:       idKey(id),
	})
	if err != nil {
		return fmt.Errorf("failed to delete item from '%s': %w", collection, err)
	}
	return nil
}
