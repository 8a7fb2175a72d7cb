package domain

import "time"

type ShopStatus string

const (
	ShopStatusActive   ShopStatus = "ACTIVE"
	ShopStatusInactive ShopStatus = "INACTIVE"
)

type Shop struct {
	ID        int64      `dynamodbav:"shop_id"`
	Name      string     `dynamodbav:"name"`
	OwnerID   int64      `dynamodbav:"owner_id"`
	Status    ShopStatus `dynamodbav:"status"`
	CreatedAt time.Time  `dynamodbav:"created_at"`
	UpdatedAt time.Time  `dynamodbav:"updated_at"`

	Owner        *User         `dynamodbav:"-"`
	AccessTokens []AccessToken `dynamodbav:"-"`
}

// OwnedBy reports whether userID owns s.
func (s *Shop) OwnedBy(userID int64) bool { return s != nil && s.OwnerID == userID }

type TokenStatus string

const (
	TokenStatusActive  TokenStatus = "ACTIVE"
	TokenStatusRevoked TokenStatus = "REVOKED"
)

// ConnectionMethod is the messaging channel an access token connects a shop to.
type ConnectionMethod string

const (
	MethodFacebook  ConnectionMethod = "FACEBOOK"
	MethodInstagram ConnectionMethod = "INSTAGRAM"
	MethodTelegram  ConnectionMethod = "TELEGRAM"
	MethodZalo      ConnectionMethod = "ZALO"
	MethodWebsite   ConnectionMethod = "WEBSITE"
)

// ConnectionMethods lists every accepted ConnectionMethod.
var ConnectionMethods = []ConnectionMethod{MethodFacebook, MethodInstagram, MethodTelegram, MethodZalo, MethodWebsite}

type AccessToken struct {
	ID        int64            `dynamodbav:"token_id"`
	Token     string           `dynamodbav:"token"`
	Method    ConnectionMethod `dynamodbav:"method"`
	Status    TokenStatus      `dynamodbav:"status"`
	ShopID    int64            `dynamodbav:"shop_id"`
	UserID    int64            `dynamodbav:"user_id"`
	CreatedAt time.Time        `dynamodbav:"created_at"`
	UpdatedAt time.Time        `dynamodbav:"updated_at"`

	Shop *Shop `dynamodbav:"-"`
	User *User `dynamodbav:"-"`
}
