package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"shuleni_backend/internals/configs"
)

var ErrDarajaNotConfigured = errors.New("daraja credentials not configured")

// DarajaClient talks to Safaricom's Daraja API (OAuth + STK push). The OAuth
// token is cached until shortly before expiry.
type DarajaClient struct {
	BaseURL     string
	ConsumerKey string
	Secret      string
	Shortcode   string
	Passkey     string
	CallbackURL string

	HTTP *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// Daraja is the process-wide client, set up once at bootstrap.
var Daraja *DarajaClient

func InitDaraja() {
	Daraja = &DarajaClient{
		BaseURL:     configs.MpesaBaseURL,
		ConsumerKey: configs.MpesaConsumerKey,
		Secret:      configs.MpesaConsumerSecret,
		Shortcode:   configs.MpesaShortcode,
		Passkey:     configs.MpesaPasskey,
		CallbackURL: configs.MpesaCallbackURL,
		HTTP:        &http.Client{Timeout: 30 * time.Second},
	}
	if Daraja.ConsumerKey == "" {
		log.Println("[INFO] M-PESA credentials not set, STK push disabled")
		return
	}
	log.Println("✅ Daraja client initialized:", Daraja.BaseURL)
}

func (d *DarajaClient) configured() bool {
	return d != nil && d.ConsumerKey != "" && d.Secret != "" && d.Shortcode != "" && d.Passkey != ""
}

type oauthResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

func (d *DarajaClient) token(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.accessToken != "" && time.Now().Before(d.tokenExpiry) {
		return d.accessToken, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		d.BaseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(d.ConsumerKey, d.Secret)

	resp, err := d.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("daraja oauth: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("daraja oauth: status %d: %s", resp.StatusCode, body)
	}

	var out oauthResponse
	if err := sonic.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("daraja oauth: %w", err)
	}
	d.accessToken = out.AccessToken
	// Tokens last an hour; renew a minute early.
	d.tokenExpiry = time.Now().Add(59 * time.Minute)
	return d.accessToken, nil
}

type stkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// STKPush sends a Lipa na M-PESA Online prompt to the payer's phone.
// msisdn must already be normalized to 2547XXXXXXXX form.
func (d *DarajaClient) STKPush(ctx context.Context, msisdn string, amount int64, accountRef, desc string) (*STKPushResponse, error) {
	if !d.configured() {
		return nil, ErrDarajaNotConfigured
	}
	tok, err := d.token(ctx)
	if err != nil {
		return nil, err
	}

	ts := time.Now().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString([]byte(d.Shortcode + d.Passkey + ts))

	payload := stkPushRequest{
		BusinessShortCode: d.Shortcode,
		Password:          password,
		Timestamp:         ts,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            amount,
		PartyA:            msisdn,
		PartyB:            d.Shortcode,
		PhoneNumber:       msisdn,
		CallBackURL:       d.CallbackURL,
		AccountReference:  accountRef,
		TransactionDesc:   desc,
	}
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		d.BaseURL+"/mpesa/stkpush/v1/processrequest", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("daraja stkpush: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("daraja stkpush: status %d: %s", resp.StatusCode, body)
	}

	var out STKPushResponse
	if err := sonic.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("daraja stkpush: %w", err)
	}
	if out.ResponseCode != "0" {
		return nil, fmt.Errorf("daraja stkpush rejected: %s", out.ResponseDescription)
	}
	return &out, nil
}
