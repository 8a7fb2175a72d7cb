package dynamo

// DynamoDB attribute names used in update and condition expressions.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldStatus      = "status"
	fieldBalance     = "balance"
	fieldStock       = "stock"
	fieldUpdatedAt   = "updated_at"
	fieldImageURL    = "image_url"
	fieldGatewayCode = "gateway_code"
	fieldCounter     = "counter"
	fieldEmailKey    = "email_key"
)

// Secondary indexes.
const (
	indexEmail       = "email-index"
	indexGoogleSub   = "google_sub-index"
	indexOwner       = "owner_id-index"
	indexShop        = "shop_id-index"
	indexShopCreated = "shop_id-created_at-index"
	indexProduct     = "product_id-created_at-index"
	indexUserCreated = "user_id-created_at-index"
	indexTxnRef      = "txn_ref-index"
)
