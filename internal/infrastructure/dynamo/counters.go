package dynamo

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
)

// Counters hands out increasing int64 ids, one sequence per entity, backed by
// a single table keyed by sequence name.
type Counters struct {
	client    API
	tableName string
}

func NewCounters(client API, tableName string) *Counters {
	return &Counters{client: client, tableName: tableName}
}

// Next atomically increments the named sequence and returns its new value.
// The first call for a sequence returns 1.
func (c *Counters) Next(ctx context.Context, sequence string) (int64, error) {
	out, err := c.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(c.tableName),
		Key:                      map[string]types.AttributeValue{"name": strValue(sequence)},
		UpdateExpression:         aws.String("ADD #c :one"),
		ExpressionAttributeNames: map[string]string{"#c": fieldCounter},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, errors.Wrapf(err, "next %s id", sequence)
	}
	n, ok := out.Attributes[fieldCounter].(*types.AttributeValueMemberN)
	if !ok {
		return 0, errors.Errorf("next %s id: counter attribute missing", sequence)
	}
	id, err := strconv.ParseInt(n.Value, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "next %s id", sequence)
	}
	return id, nil
}
