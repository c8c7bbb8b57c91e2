package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DDBClient is the interface for DynamoDB operations.
type DDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

var _ DDBClient = (*dynamodb.Client)(nil)

// DynamoDB implements Catalog on a DynamoDB table.
//
// Table schema:
//   - Partition key: dataset (string)
//   - Sort key: version (number), monotonically increasing per dataset
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name elbow-catalog \
//	  --attribute-definitions AttributeName=dataset,AttributeType=S AttributeName=version,AttributeType=N \
//	  --key-schema AttributeName=dataset,KeyType=HASH AttributeName=version,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
type DynamoDB struct {
	client    DDBClient
	tableName string
	now       func() time.Time
}

// NewDynamoDB creates a catalog backed by the given table.
func NewDynamoDB(client DDBClient, tableName string) *DynamoDB {
	return &DynamoDB{
		client:    client,
		tableName: tableName,
		now:       time.Now,
	}
}

// Record commits e as latest version + 1. The put is conditional on the
// version not existing yet; losing the race returns ErrConcurrentModification.
func (d *DynamoDB) Record(ctx context.Context, e Entry) (uint64, error) {
	e, err := prepare(e, d.now)
	if err != nil {
		return 0, err
	}

	current, err := d.latestVersion(ctx, e.Dataset)
	if err != nil {
		return 0, err
	}
	e.Version = current + 1

	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(d.tableName),
		Item:                marshalEntry(e),
		ConditionExpression: aws.String("attribute_not_exists(version)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return 0, ErrConcurrentModification
		}
		return 0, fmt.Errorf("failed to record entry in DynamoDB: %w", err)
	}

	return e.Version, nil
}

// Latest returns the newest entry for dataset.
func (d *DynamoDB) Latest(ctx context.Context, dataset string) (Entry, error) {
	item, err := d.queryLatest(ctx, dataset, false)
	if err != nil {
		return Entry{}, err
	}
	if item == nil {
		return Entry{}, ErrNotFound
	}
	return unmarshalEntry(item)
}

func (d *DynamoDB) latestVersion(ctx context.Context, dataset string) (uint64, error) {
	item, err := d.queryLatest(ctx, dataset, true)
	if err != nil || item == nil {
		return 0, err
	}
	return numberAttr[uint64](item, "version")
}

func (d *DynamoDB) queryLatest(ctx context.Context, dataset string, keysOnly bool) (map[string]types.AttributeValue, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(d.tableName),
		KeyConditionExpression: aws.String("#ds = :ds"),
		ExpressionAttributeNames: map[string]string{
			"#ds": "dataset",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ds": &types.AttributeValueMemberS{Value: dataset},
		},
		ScanIndexForward: aws.Bool(false), // Descending order
		Limit:            aws.Int32(1),
	}
	if keysOnly {
		input.ProjectionExpression = aws.String("#v")
		input.ExpressionAttributeNames["#v"] = "version"
	}

	resp, err := d.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query DynamoDB: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, nil
	}
	return resp.Items[0], nil
}

func marshalEntry(e Entry) map[string]types.AttributeValue {
	curve := make([]types.AttributeValue, len(e.Curve))
	for i, p := range e.Curve {
		curve[i] = &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"k":    &types.AttributeValueMemberN{Value: strconv.Itoa(p.K)},
			"wcss": &types.AttributeValueMemberN{Value: strconv.FormatFloat(p.WCSS, 'g', -1, 64)},
		}}
	}

	item := map[string]types.AttributeValue{
		"dataset":     &types.AttributeValueMemberS{Value: e.Dataset},
		"version":     &types.AttributeValueMemberN{Value: strconv.FormatUint(e.Version, 10)},
		"k_max":       &types.AttributeValueMemberN{Value: strconv.Itoa(e.KMax)},
		"seed":        &types.AttributeValueMemberN{Value: strconv.FormatUint(e.Seed, 10)},
		"curve":       &types.AttributeValueMemberL{Value: curve},
		"recorded_at": &types.AttributeValueMemberS{Value: e.RecordedAt.Format(time.RFC3339Nano)},
	}
	if len(e.Failed) > 0 {
		failed := make([]types.AttributeValue, len(e.Failed))
		for i, k := range e.Failed {
			failed[i] = &types.AttributeValueMemberN{Value: strconv.Itoa(k)}
		}
		item["failed"] = &types.AttributeValueMemberL{Value: failed}
	}
	if e.Report != "" {
		item["report"] = &types.AttributeValueMemberS{Value: e.Report}
	}
	return item
}

func unmarshalEntry(item map[string]types.AttributeValue) (Entry, error) {
	var (
		e   Entry
		err error
	)

	if e.Dataset, err = stringAttr(item, "dataset"); err != nil {
		return Entry{}, err
	}
	if e.Version, err = numberAttr[uint64](item, "version"); err != nil {
		return Entry{}, err
	}
	if e.KMax, err = numberAttr[int](item, "k_max"); err != nil {
		return Entry{}, err
	}
	if e.Seed, err = numberAttr[uint64](item, "seed"); err != nil {
		return Entry{}, err
	}

	recorded, err := stringAttr(item, "recorded_at")
	if err != nil {
		return Entry{}, err
	}
	if e.RecordedAt, err = time.Parse(time.RFC3339Nano, recorded); err != nil {
		return Entry{}, fmt.Errorf("invalid recorded_at attribute in DynamoDB: %w", err)
	}

	if l, ok := item["curve"].(*types.AttributeValueMemberL); ok {
		for _, v := range l.Value {
			m, ok := v.(*types.AttributeValueMemberM)
			if !ok {
				return Entry{}, errors.New("invalid curve attribute in DynamoDB")
			}
			k, err := numberAttr[int](m.Value, "k")
			if err != nil {
				return Entry{}, err
			}
			wcss, err := numberAttr[float64](m.Value, "wcss")
			if err != nil {
				return Entry{}, err
			}
			e.Curve = append(e.Curve, Point{K: k, WCSS: wcss})
		}
	}

	if l, ok := item["failed"].(*types.AttributeValueMemberL); ok {
		for _, v := range l.Value {
			n, ok := v.(*types.AttributeValueMemberN)
			if !ok {
				return Entry{}, errors.New("invalid failed attribute in DynamoDB")
			}
			k, err := strconv.Atoi(n.Value)
			if err != nil {
				return Entry{}, fmt.Errorf("invalid failed attribute in DynamoDB: %w", err)
			}
			e.Failed = append(e.Failed, k)
		}
	}

	if s, ok := item["report"].(*types.AttributeValueMemberS); ok {
		e.Report = s.Value
	}

	return e, nil
}

func stringAttr(item map[string]types.AttributeValue, name string) (string, error) {
	v, ok := item[name].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("invalid %s attribute in DynamoDB", name)
	}
	return v.Value, nil
}

func numberAttr[T int | uint64 | float64](item map[string]types.AttributeValue, name string) (T, error) {
	v, ok := item[name].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("invalid %s attribute in DynamoDB", name)
	}

	var (
		out T
		err error
	)
	switch p := any(&out).(type) {
	case *int:
		*p, err = strconv.Atoi(v.Value)
	case *uint64:
		*p, err = strconv.ParseUint(v.Value, 10, 64)
	case *float64:
		*p, err = strconv.ParseFloat(v.Value, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return out, nil
}
