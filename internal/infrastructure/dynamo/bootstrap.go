package dynamo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shop-assistant-api/internal/config"
)

// TableCreator is the part of *dynamodb.Client Bootstrap needs.
type TableCreator interface {
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

type attr struct {
	name string
	typ  types.ScalarAttributeType
}

var (
	numAttr = types.ScalarAttributeTypeN
	strAttr = types.ScalarAttributeTypeS
)

// Bootstrap creates all DynamoDB tables and GSIs if they don't already exist.
// Safe to call on every startup; existing tables are skipped.
func Bootstrap(ctx context.Context, client TableCreator, tables config.DynamoTables) {
	createTable(ctx, client, tableInput(tables.Counters, attr{"name", strAttr}, nil))

	createTable(ctx, client, tableInput(tables.Users, attr{"user_id", numAttr},
		[]attr{{fieldEmailKey, strAttr}, {"google_sub", strAttr}},
		gsi(indexEmail, fieldEmailKey, ""),
		gsi(indexGoogleSub, "google_sub", ""),
	))

	createTable(ctx, client, tableInput(tables.Shops, attr{"shop_id", numAttr},
		[]attr{{"owner_id", numAttr}},
		gsi(indexOwner, "owner_id", ""),
	))

	for _, t := range []struct{ name, key string }{
		{tables.AccessTokens, "token_id"},
		{tables.Customers, "customer_id"},
		{tables.Products, "product_id"},
	} {
		createTable(ctx, client, tableInput(t.name, attr{t.key, numAttr},
			[]attr{{"shop_id", numAttr}},
			gsi(indexShop, "shop_id", ""),
		))
	}

	createTable(ctx, client, tableInput(tables.Orders, attr{"order_id", numAttr},
		[]attr{{"shop_id", numAttr}, {"created_at", strAttr}},
		gsi(indexShopCreated, "shop_id", "created_at"),
	))

	createTable(ctx, client, tableInput(tables.Feedbacks, attr{"feedback_id", numAttr},
		[]attr{{"product_id", numAttr}, {"created_at", strAttr}},
		gsi(indexProduct, "product_id", "created_at"),
	))

	createTable(ctx, client, tableInput(tables.Payments, attr{"payment_id", numAttr},
		[]attr{{"user_id", numAttr}, {"created_at", strAttr}, {"txn_ref", strAttr}},
		gsi(indexUserCreated, "user_id", "created_at"),
		gsi(indexTxnRef, "txn_ref", ""),
	))

	createTable(ctx, client, tableInput(tables.ImageRequests, attr{"image_id", numAttr},
		[]attr{{"product_id", numAttr}, {"created_at", strAttr}},
		gsi(indexProduct, "product_id", "created_at"),
	))
}

func tableInput(name string, key attr, indexed []attr, gsis ...types.GlobalSecondaryIndex) *dynamodb.CreateTableInput {
	defs := []types.AttributeDefinition{
		{AttributeName: aws.String(key.name), AttributeType: key.typ},
	}
	for _, a := range indexed {
		defs = append(defs, types.AttributeDefinition{AttributeName: aws.String(a.name), AttributeType: a.typ})
	}
	return &dynamodb.CreateTableInput{
		TableName:            aws.String(name),
		BillingMode:          types.BillingModePayPerRequest,
		AttributeDefinitions: defs,
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(key.name), KeyType: types.KeyTypeHash},
		},
		GlobalSecondaryIndexes: gsis,
	}
}

// gsi builds a GSI descriptor. If sortKey is empty, only a hash key is added.
func gsi(indexName, hashKey, sortKey string) types.GlobalSecondaryIndex {
	ks := []types.KeySchemaElement{
		{AttributeName: aws.String(hashKey), KeyType: types.KeyTypeHash},
	}
	if sortKey != "" {
		ks = append(ks, types.KeySchemaElement{
			AttributeName: aws.String(sortKey), KeyType: types.KeyTypeRange,
		})
	}
	return types.GlobalSecondaryIndex{
		IndexName:  aws.String(indexName),
		KeySchema:  ks,
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}
}

func createTable(ctx context.Context, client TableCreator, input *dynamodb.CreateTableInput) {
	_, err := client.CreateTable(ctx, input)
	if err != nil {
		// ResourceInUseException means the table already exists.
		var riue *types.ResourceInUseException
		if !errors.As(err, &riue) {
			slog.Warn("could not create table", "table", *input.TableName, "err", err)
		}
		return
	}
	slog.Info("created table", "table", *input.TableName)
}
