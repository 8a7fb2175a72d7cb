package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/shop-assistant-api/internal/config"
	"github.com/shop-assistant-api/internal/infrastructure/awsclient"
)

// NewClient creates a DynamoDB client. When cfg.AWSEndpointURL is set (LocalStack),
// it overrides the endpoint so all traffic goes to the local instance.
func NewClient(ctx context.Context, cfg *config.Config) (*dynamodb.Client, error) {
	awsCfg, err := awsclient.Load(ctx, cfg, cfg.AWSRegion)
	if err != nil {
		return nil, err
	}
	var clientOpts []func(*dynamodb.Options)
	if cfg.AWSEndpointURL != "" {
		clientOpts = append(clientOpts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.AWSEndpointURL)
		})
	}
	return dynamodb.NewFromConfig(awsCfg, clientOpts...), nil
}

// Repos groups every repository over one client.
type Repos struct {
	Users         *UserRepo
	Shops         *ShopRepo
	AccessTokens  *AccessTokenRepo
	Customers     *CustomerRepo
	Products      *ProductRepo
	Orders        *OrderRepo
	Feedbacks     *FeedbackRepo
	Payments      *PaymentRepo
	ImageRequests *ImageRequestRepo
}

// NewRepos wires every repository to its table, sharing one id counter table.
func NewRepos(client API, tables config.DynamoTables) *Repos {
	ids := NewCounters(client, tables.Counters)
	return &Repos{
		Users:         NewUserRepo(client, tables.Users, ids),
		Shops:         NewShopRepo(client, tables.Shops, ids),
		AccessTokens:  NewAccessTokenRepo(client, tables.AccessTokens, ids),
		Customers:     NewCustomerRepo(client, tables.Customers, ids),
		Products:      NewProductRepo(client, tables.Products, ids),
		Orders:        NewOrderRepo(client, tables.Orders, ids),
		Feedbacks:     NewFeedbackRepo(client, tables.Feedbacks, ids),
		Payments:      NewPaymentRepo(client, tables.Payments, ids),
		ImageRequests: NewImageRequestRepo(client, tables.ImageRequests, ids),
	}
}
