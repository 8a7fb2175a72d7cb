// Package vnpay builds signed VNPay payment URLs and verifies the parameters
// VNPay sends back on return and IPN callbacks.
package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shop-assistant-api/internal/config"
	"github.com/shopspring/decimal"
)

const (
	version       = "2.1.0"
	commandPay    = "pay"
	currencyVND   = "VND"
	orderType     = "other"
	dateLayout    = "20060102150405"
	expireAfter   = 15 * time.Minute
	paramHash     = "vnp_SecureHash"
	paramHashType = "vnp_SecureHashType"

	// ResponseSuccess is the vnp_ResponseCode of a paid transaction.
	ResponseSuccess = "00"
)

var (
	ErrInvalidSignature = errors.New("invalid vnpay signature")
	hundred             = decimal.NewFromInt(100)
	ict                 = time.FixedZone("ICT", 7*60*60)
)

// Client holds the merchant credentials.
type Client struct {
	tmnCode    string
	hashSecret string
	payURL     string
	returnURL  string
	now        func() time.Time
}

func NewClient(cfg config.VNPay) *Client {
	return &Client{
		tmnCode:    cfg.TmnCode,
		hashSecret: cfg.HashSecret,
		payURL:     cfg.PayURL,
		returnURL:  cfg.ReturnURL,
		now:        time.Now,
	}
}

// PaymentRequest describes one top-up sent to the gateway.
type PaymentRequest struct {
	TxnRef    string
	Amount    decimal.Decimal
	OrderInfo string
	BankCode  string
	Locale    string
	IPAddr    string
}

// PaymentURL returns the gateway URL the client should be redirected to.
// Amounts are sent in hundredths of a dong as VNPay requires.
func (c *Client) PaymentURL(req PaymentRequest) (string, error) {
	if c.payURL == "" || c.tmnCode == "" {
		return "", errors.New("vnpay is not configured")
	}
	now := c.now().In(ict)
	locale := req.Locale
	if locale == "" {
		locale = "vn"
	}
	params := url.Values{}
	params.Set("vnp_Version", version)
	params.Set("vnp_Command", commandPay)
	params.Set("vnp_TmnCode", c.tmnCode)
	params.Set("vnp_Amount", req.Amount.Mul(hundred).Truncate(0).String())
	params.Set("vnp_CurrCode", currencyVND)
	params.Set("vnp_TxnRef", req.TxnRef)
	params.Set("vnp_OrderInfo", req.OrderInfo)
	params.Set("vnp_OrderType", orderType)
	params.Set("vnp_Locale", locale)
	params.Set("vnp_ReturnUrl", c.returnURL)
	params.Set("vnp_IpAddr", req.IPAddr)
	params.Set("vnp_CreateDate", now.Format(dateLayout))
	params.Set("vnp_ExpireDate", now.Add(expireAfter).Format(dateLayout))
	if req.BankCode != "" {
		params.Set("vnp_BankCode", req.BankCode)
	}

	query := params.Encode()
	return c.payURL + "?" + query + "&" + paramHash + "=" + c.sign(query), nil
}

// ReturnResult is the verified outcome reported by VNPay.
type ReturnResult struct {
	TxnRef            string
	Amount            decimal.Decimal
	ResponseCode      string
	TransactionStatus string
	TransactionNo     string
	BankCode          string
}

// Successful reports whether the gateway confirmed the payment.
func (r *ReturnResult) Successful() bool {
	return r.ResponseCode == ResponseSuccess && (r.TransactionStatus == "" || r.TransactionStatus == ResponseSuccess)
}

// VerifyReturn checks the signature of callback parameters and decodes them.
func (c *Client) VerifyReturn(query url.Values) (*ReturnResult, error) {
	got := query.Get(paramHash)
	if got == "" {
		return nil, ErrInvalidSignature
	}
	signed := url.Values{}
	for k, v := range query {
		if strings.HasPrefix(k, "vnp_") && k != paramHash && k != paramHashType {
			signed[k] = v
		}
	}
	want := c.sign(signed.Encode())
	if !hmac.Equal([]byte(strings.ToLower(got)), []byte(want)) {
		return nil, ErrInvalidSignature
	}

	amount, err := decimal.NewFromString(query.Get("vnp_Amount"))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidSignature, "malformed vnp_Amount")
	}
	return &ReturnResult{
		TxnRef:            query.Get("vnp_TxnRef"),
		Amount:            amount.Div(hundred),
		ResponseCode:      query.Get("vnp_ResponseCode"),
		TransactionStatus: query.Get("vnp_TransactionStatus"),
		TransactionNo:     query.Get("vnp_TransactionNo"),
		BankCode:          query.Get("vnp_BankCode"),
	}, nil
}

func (c *Client) sign(data string) string {
	mac := hmac.New(sha512.New, []byte(c.hashSecret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
