package domain

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// Money is a decimal amount stored as a DynamoDB number so that balance
// arithmetic can happen server-side in update expressions.
type Money struct {
	decimal.Decimal
}

// NewMoney wraps d.
func NewMoney(d decimal.Decimal) Money { return Money{Decimal: d} }

// MoneyFromInt returns a whole-unit amount.
func MoneyFromInt(n int64) Money { return Money{Decimal: decimal.NewFromInt(n)} }

func (m Money) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return &types.AttributeValueMemberN{Value: m.Decimal.String()}, nil
}

func (m *Money) UnmarshalDynamoDBAttributeValue(av types.AttributeValue) error {
	switch v := av.(type) {
	case *types.AttributeValueMemberN:
		d, err := decimal.NewFromString(v.Value)
		if err != nil {
			return fmt.Errorf("parse money %q: %w", v.Value, err)
		}
		m.Decimal = d
	case *types.AttributeValueMemberS:
		d, err := decimal.NewFromString(v.Value)
		if err != nil {
			return fmt.Errorf("parse money %q: %w", v.Value, err)
		}
		m.Decimal = d
	case *types.AttributeValueMemberNULL:
		m.Decimal = decimal.Zero
	default:
		return fmt.Errorf("unsupported attribute type %T for money", av)
	}
	return nil
}
