package dynamo

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
	"github.com/shop-assistant-api/internal/domain"
)

// API is the subset of *dynamodb.Client the repositories use.
type API interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// numKey builds a primary key map with a single numeric attribute.
func numKey(name string, id int64) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{name: numValue(id)}
}

func numValue(n int64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(n, 10)}
}

// updateExpr is a SET expression with its placeholder maps.
type updateExpr struct {
	Expr   string
	Names  map[string]string
	Values map[string]types.AttributeValue
}

// buildUpdateExpr converts a map of field->value into a DynamoDB SET
// expression. Fields are emitted in sorted order so the expression is stable.
func buildUpdateExpr(updates map[string]interface{}) (*updateExpr, error) {
	if len(updates) == 0 {
		return nil, errors.New("no fields to update")
	}
	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ue := &updateExpr{
		Expr:   "SET ",
		Names:  make(map[string]string, len(keys)),
		Values: make(map[string]types.AttributeValue, len(keys)),
	}
	for i, k := range keys {
		nameKey := "#f" + strconv.Itoa(i)
		valueKey := ":v" + strconv.Itoa(i)
		av, err := attributevalue.Marshal(updates[k])
		if err != nil {
			return nil, errors.Wrapf(err, "marshal field %s", k)
		}
		ue.Names[nameKey] = k
		ue.Values[valueKey] = av
		if i > 0 {
			ue.Expr += ", "
		}
		ue.Expr += nameKey + " = " + valueKey
	}
	return ue, nil
}

func isConditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// table holds the generic item operations shared by every repository.
type table[T any] struct {
	client API
	name   string
	key    string
	entity string
}

func newTable[T any](client API, name, key, entity string) table[T] {
	return table[T]{client: client, name: name, key: key, entity: entity}
}

// create writes item, failing with domain.ErrConflict if the key exists.
func (t table[T]) create(ctx context.Context, item *T) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return errors.Wrapf(err, "marshal %s", t.entity)
	}
	_, err = t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(t.name),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#k)"),
		ExpressionAttributeNames: map[string]string{"#k": t.key},
	})
	if isConditionFailed(err) {
		return errors.Wrapf(domain.ErrConflict, "%s already exists", t.entity)
	}
	return errors.Wrapf(err, "put %s", t.entity)
}

func (t table[T]) get(ctx context.Context, id int64) (*T, error) {
	out, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.name),
		Key:       numKey(t.key, id),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "get %s %d", t.entity, id)
	}
	if out.Item == nil {
		return nil, errors.Wrapf(domain.ErrNotFound, "%s %d", t.entity, id)
	}
	var v T
	if err := attributevalue.UnmarshalMap(out.Item, &v); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s", t.entity)
	}
	return &v, nil
}

// condition is an extra ConditionExpression ANDed with the item existence
// check. Its placeholders must not clash with #k, #f<n> or :v<n>.
type condition struct {
	expr   string
	names  map[string]string
	values map[string]types.AttributeValue
}

func (c *condition) apply(names map[string]string, values map[string]types.AttributeValue) string {
	expr := "attribute_exists(#k)"
	if c == nil {
		return expr
	}
	for k, v := range c.names {
		names[k] = v
	}
	for k, v := range c.values {
		values[k] = v
	}
	return expr + " AND " + c.expr
}

// update applies a SET of fields to an existing item. A failed existence
// check or cond yields domain.ErrConflict.
func (t table[T]) update(ctx context.Context, id int64, fields map[string]interface{}, cond *condition) error {
	ue, err := buildUpdateExpr(fields)
	if err != nil {
		return err
	}
	ue.Names["#k"] = t.key
	expr := cond.apply(ue.Names, ue.Values)
	_, err = t.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.name),
		Key:                       numKey(t.key, id),
		UpdateExpression:          aws.String(ue.Expr),
		ConditionExpression:       aws.String(expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	if isConditionFailed(err) {
		return errors.Wrapf(domain.ErrConflict, "update %s %d", t.entity, id)
	}
	return errors.Wrapf(err, "update %s %d", t.entity, id)
}

// adjust adds delta to a numeric attribute and returns the updated
// attributes. cond may reference the attribute as #a.
func (t table[T]) adjust(ctx context.Context, id int64, attr string, delta types.AttributeValue, cond *condition) (map[string]types.AttributeValue, error) {
	now, err := attributevalue.Marshal(time.Now().UTC())
	if err != nil {
		return nil, errors.Wrap(err, "marshal timestamp")
	}
	names := map[string]string{"#k": t.key, "#a": attr, "#u": fieldUpdatedAt}
	values := map[string]types.AttributeValue{":d": delta, ":now": now}
	expr := cond.apply(names, values)
	out, err := t.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(t.name),
		Key:                       numKey(t.key, id),
		UpdateExpression:          aws.String("SET #a = #a + :d, #u = :now"),
		ConditionExpression:       aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if isConditionFailed(err) {
		return nil, errors.Wrapf(domain.ErrConflict, "adjust %s of %s %d", attr, t.entity, id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "adjust %s of %s %d", attr, t.entity, id)
	}
	return out.Attributes, nil
}

func (t table[T]) delete(ctx context.Context, id int64) error {
	_, err := t.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(t.name),
		Key:                      numKey(t.key, id),
		ConditionExpression:      aws.String("attribute_exists(#k)"),
		ExpressionAttributeNames: map[string]string{"#k": t.key},
	})
	if isConditionFailed(err) {
		return errors.Wrapf(domain.ErrNotFound, "%s %d", t.entity, id)
	}
	return errors.Wrapf(err, "delete %s %d", t.entity, id)
}

// queryIndex returns every item whose attr equals value on index, following
// pagination. Items come back newest first when the index has a sort key.
func (t table[T]) queryIndex(ctx context.Context, index, attr string, value types.AttributeValue) ([]T, error) {
	input := &dynamodb.QueryInput{
		TableName:                 aws.String(t.name),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": value},
		ScanIndexForward:          aws.Bool(false),
	}
	var items []T
	for {
		out, err := t.client.Query(ctx, input)
		if err != nil {
			return nil, errors.Wrapf(err, "query %s by %s", t.entity, attr)
		}
		var page []T
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, errors.Wrapf(err, "unmarshal %s", t.entity)
		}
		items = append(items, page...)
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// first returns one item matching attr on index, or domain.ErrNotFound.
func (t table[T]) first(ctx context.Context, index, attr string, value types.AttributeValue) (*T, error) {
	out, err := t.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(t.name),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": value},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "query %s by %s", t.entity, attr)
	}
	if len(out.Items) == 0 {
		return nil, errors.Wrapf(domain.ErrNotFound, "%s by %s", t.entity, attr)
	}
	var v T
	if err := attributevalue.UnmarshalMap(out.Items[0], &v); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s", t.entity)
	}
	return &v, nil
}

func strValue(s string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: s}
}
