package writefreely

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// apiPrefix is prepended to every endpoint path.
const apiPrefix = "/api"

// envelope is the wrapper the server places around every successful JSON
// payload.
type envelope struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
}

// endpointURL composes the full request URL from the instance base URL, the
// fixed API prefix, and the endpoint path.
func (c *Client) endpointURL(endpoint string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", &URLError{Base: c.baseURL, Endpoint: endpoint}
	}

	ref, err := url.Parse(apiPrefix + endpoint)
	if err != nil {
		return "", &URLError{Base: c.baseURL, Endpoint: endpoint}
	}

	return base.ResolveReference(ref).String(), nil
}

// do performs an HTTP request against the API and returns the raw response
// body. Headers, authentication, and error mapping are handled here; callers
// decode the body through decodeEnvelope.
func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body any) ([]byte, error) {
	requestURL, err := c.endpointURL(endpoint)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, &URLError{Base: c.baseURL, Endpoint: endpoint}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Msg("Making WriteFreely API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &RequestError{
			Code:   resp.StatusCode,
			Reason: strings.TrimSpace(string(raw)),
		}
	}

	return raw, nil
}

// decodeEnvelope unwraps the {code, data} response envelope and decodes the
// data field into the target type. Either decode failure yields a ParseError
// carrying the raw response text.
func decodeEnvelope[T any](raw []byte) (T, error) {
	var out T

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return out, &ParseError{Text: string(raw)}
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, &ParseError{Text: string(raw)}
	}

	return out, nil
}

// apiGet executes a GET request and decodes the enveloped response into T.
func apiGet[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	raw, err := c.do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeEnvelope[T](raw)
}

// apiPost executes a POST request with a JSON body and decodes the enveloped
// response into T.
func apiPost[T any](ctx context.Context, c *Client, endpoint string, body any) (T, error) {
	raw, err := c.do(ctx, http.MethodPost, endpoint, nil, body)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeEnvelope[T](raw)
}

// apiDelete executes a DELETE request. Delete endpoints return no body, so
// only the status check applies; no envelope unwrapping happens.
func (c *Client) apiDelete(ctx context.Context, endpoint string, query url.Values) error {
	_, err := c.do(ctx, http.MethodDelete, endpoint, query, nil)
	return err
}
