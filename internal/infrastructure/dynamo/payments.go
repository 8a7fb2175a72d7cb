package dynamo

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shop-assistant-api/internal/domain"
)

// PaymentRepo provides typed DynamoDB operations for the payments table.
type PaymentRepo struct {
	t   table[domain.Payment]
	ids *Counters
}

func NewPaymentRepo(client API, tableName string, ids *Counters) *PaymentRepo {
	return &PaymentRepo{t: newTable[domain.Payment](client, tableName, "payment_id", "payment"), ids: ids}
}

func (r *PaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	id, err := r.ids.Next(ctx, "payments")
	if err != nil {
		return err
	}
	p.ID = id
	return r.t.create(ctx, p)
}

func (r *PaymentRepo) Get(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	return r.t.get(ctx, paymentID)
}

func (r *PaymentRepo) GetByTxnRef(ctx context.Context, txnRef string) (*domain.Payment, error) {
	return r.t.first(ctx, indexTxnRef, "txn_ref", strValue(txnRef))
}

// ListByUser returns the user's payments, newest first.
func (r *PaymentRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	return r.t.queryIndex(ctx, indexUserCreated, "user_id", numValue(userID))
}

// Settle moves a pending payment to status. It fails with domain.ErrConflict
// when the payment has already been settled.
func (r *PaymentRepo) Settle(ctx context.Context, paymentID int64, status domain.PaymentStatus, gatewayCode string) error {
	fields := map[string]interface{}{
		fieldStatus:    status,
		fieldUpdatedAt: time.Now().UTC(),
	}
	if gatewayCode != "" {
		fields[fieldGatewayCode] = gatewayCode
	}
	return r.t.update(ctx, paymentID, fields, &condition{
		expr:   "#cur = :pending",
		names:  map[string]string{"#cur": fieldStatus},
		values: map[string]types.AttributeValue{":pending": strValue(string(domain.PaymentStatusPending))},
	})
}
