// Package rpcclient provides a JSON-RPC 2.0 client for seedphrased.
package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Klingon-tech/seedphrase/internal/history"
	"github.com/Klingon-tech/seedphrase/internal/rpc"
)

// Client is a JSON-RPC 2.0 HTTP client.
type Client struct {
	endpoint string
	http     *http.Client
}

// New creates a new RPC client targeting the given endpoint URL.
func New(endpoint string) *Client {
	return NewWithTimeout(endpoint, 10*time.Second)
}

// NewWithTimeout creates a new RPC client with a custom HTTP timeout.
func NewWithTimeout(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

type request struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
	ID      int         `json:"id"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
	ID      int             `json:"id"`
}

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// RPCError is returned when the server responds with an error.
type RPCError struct {
	Code    int
	Message string
	Data    json.RawMessage
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// PhraseData decodes the data member of a derivation error. ok is false
// when the error carries no derivation data.
func (e *RPCError) PhraseData() (data rpc.PhraseErrorData, ok bool) {
	if len(e.Data) == 0 {
		return data, false
	}
	if err := json.Unmarshal(e.Data, &data); err != nil || data.Kind == "" {
		return data, false
	}
	return data, true
}

// Call invokes a JSON-RPC method and unmarshals the result into the provided pointer.
// If result is nil, the response result is discarded.
func (c *Client) Call(method string, params, result interface{}) error {
	return c.CallContext(context.Background(), method, params, result)
}

// CallContext is Call with a context for cancellation.
func (c *Client) CallContext(ctx context.Context, method string, params, result interface{}) error {
	req := request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("http request: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var rpcResp response
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if rpcResp.Error != nil {
		return &RPCError{
			Code:    rpcResp.Error.Code,
			Message: rpcResp.Error.Message,
			Data:    rpcResp.Error.Data,
		}
	}

	if result != nil && rpcResp.Result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("decode result: %w", err)
		}
	}

	return nil
}

// DeriveAddress calls seedphrase_deriveAddress.
func (c *Client) DeriveAddress(ctx context.Context, mnemonic, passphrase string) (*rpc.DeriveResult, error) {
	var res rpc.DeriveResult
	params := rpc.MnemonicParam{Mnemonic: mnemonic, Passphrase: passphrase}
	if err := c.CallContext(ctx, "seedphrase_deriveAddress", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Validate calls seedphrase_validate.
func (c *Client) Validate(ctx context.Context, mnemonic string) (*rpc.ValidateResult, error) {
	var res rpc.ValidateResult
	if err := c.CallContext(ctx, "seedphrase_validate", rpc.MnemonicParam{Mnemonic: mnemonic}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// History calls seedphrase_getHistory. A limit <= 0 returns everything
// the daemon retains.
func (c *Client) History(ctx context.Context, limit int) ([]history.Attempt, error) {
	var res rpc.HistoryResult
	var params interface{}
	if limit > 0 {
		params = rpc.HistoryParam{Limit: limit}
	}
	if err := c.CallContext(ctx, "seedphrase_getHistory", params, &res); err != nil {
		return nil, err
	}
	return res.Attempts, nil
}

// Info calls service_getInfo.
func (c *Client) Info(ctx context.Context) (*rpc.InfoResult, error) {
	var res rpc.InfoResult
	if err := c.CallContext(ctx, "service_getInfo", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
