package dynamo

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
	"github.com/shop-assistant-api/internal/domain"
	"github.com/shopspring/decimal"
)

// UserRepo provides typed DynamoDB operations for the users table.
type UserRepo struct {
	t   table[domain.User]
	ids *Counters
}

func NewUserRepo(client API, tableName string, ids *Counters) *UserRepo {
	return &UserRepo{t: newTable[domain.User](client, tableName, "user_id", "user"), ids: ids}
}

// Create assigns the next user id and stores u.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	id, err := r.ids.Next(ctx, "users")
	if err != nil {
		return err
	}
	u.ID = id
	return r.t.create(ctx, u)
}

func (r *UserRepo) Get(ctx context.Context, userID int64) (*domain.User, error) {
	return r.t.get(ctx, userID)
}

// GetByEmail matches case-insensitively through the email_key index.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.t.first(ctx, indexEmail, fieldEmailKey, strValue(domain.EmailKey(email)))
}

func (r *UserRepo) GetByGoogleSub(ctx context.Context, sub string) (*domain.User, error) {
	return r.t.first(ctx, indexGoogleSub, "google_sub", strValue(sub))
}

// LinkGoogle attaches a Google identity to u, writing only the profile fields
// the link touches. It fails with domain.ErrConflict if the stored status is
// no longer from or another identity was linked first.
func (r *UserRepo) LinkGoogle(ctx context.Context, u *domain.User, from domain.UserStatus) error {
	return r.t.update(ctx, u.ID, map[string]interface{}{
		"google_sub":   u.GoogleSub,
		"full_name":    u.FullName,
		fieldStatus:    u.Status,
		fieldUpdatedAt: time.Now().UTC(),
	}, &condition{
		expr:   "#cur = :from AND attribute_not_exists(#gs)",
		names:  map[string]string{"#cur": fieldStatus, "#gs": "google_sub"},
		values: map[string]types.AttributeValue{":from": strValue(string(from))},
	})
}

func (r *UserRepo) SetStatus(ctx context.Context, userID int64, status domain.UserStatus) error {
	return r.t.update(ctx, userID, map[string]interface{}{
		fieldStatus:    status,
		fieldUpdatedAt: time.Now().UTC(),
	}, nil)
}

// AdjustBalance adds delta to the stored balance in a single conditional
// update and returns the new balance. A negative delta fails with
// domain.ErrConflict when the balance would drop below zero.
func (r *UserRepo) AdjustBalance(ctx context.Context, userID int64, delta decimal.Decimal) (domain.Money, error) {
	deltaAV, err := attributevalue.Marshal(domain.NewMoney(delta))
	if err != nil {
		return domain.Money{}, errors.Wrap(err, "marshal balance delta")
	}
	var cond *condition
	if delta.IsNegative() {
		needAV, err := attributevalue.Marshal(domain.NewMoney(delta.Neg()))
		if err != nil {
			return domain.Money{}, errors.Wrap(err, "marshal balance requirement")
		}
		cond = &condition{expr: "#a >= :need", values: map[string]types.AttributeValue{":need": needAV}}
	}
	attrs, err := r.t.adjust(ctx, userID, fieldBalance, deltaAV, cond)
	if err != nil {
		return domain.Money{}, err
	}
	var balance domain.Money
	if err := attributevalue.Unmarshal(attrs[fieldBalance], &balance); err != nil {
		return domain.Money{}, errors.Wrap(err, "unmarshal balance")
	}
	return balance, nil
}
