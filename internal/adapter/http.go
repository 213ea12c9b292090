package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ST10257746/prog7314-part1-sub000/internal/config"
	"github.com/ST10257746/prog7314-part1-sub000/internal/identity"
	"github.com/ST10257746/prog7314-part1-sub000/internal/logger"
	"github.com/ST10257746/prog7314-part1-sub000/internal/utils"
)

const userAgentPrefix = "fittrackr-sync/"

// Request is a single call to the remote store.
type Request struct {
	Method string
	// Path is joined to the base URL. Path segments taken from user data must
	// be escaped by the caller, see [PathEscape].
	Path string
	// Body is encoded as JSON when non-nil.
	Body any
}

// Response is a 2xx reply of the remote store.
type Response struct {
	StatusCode int
	Body       []byte
}

// Decode unmarshals the reply body into v.
func (r Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

// DocumentID extracts the id of the document stored under key in the reply
// envelope {"message": ..., key: {"id": ...}}. A top-level "id" is accepted
// as a fallback.
func (r Response) DocumentID(key string) (string, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(r.Body, &envelope); err != nil {
		return "", fmt.Errorf("decode reply envelope: %w", err)
	}

	var doc struct {
		ID string `json:"id"`
	}
	if raw, ok := envelope[key]; ok {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return "", fmt.Errorf("decode %q document: %w", key, err)
		}
	}
	if doc.ID == "" {
		if raw, ok := envelope["id"]; ok {
			if err := json.Unmarshal(raw, &doc.ID); err != nil {
				return "", fmt.Errorf("decode top-level id: %w", err)
			}
		}
	}
	if doc.ID == "" {
		return "", ErrMissingID
	}

	return doc.ID, nil
}

type httpRemoteClient struct {
	client  *utils.HTTPClient
	tokens  identity.TokenProvider
	timeout time.Duration

	logger *logger.Logger
}

// NewHTTPRemoteClient constructs the HTTP/REST implementation of
// [RemoteClient]. tokens may be nil, in which case calls are sent without an
// Authorization header.
func NewHTTPRemoteClient(adapterCfg config.ClientAdapter, appCfg config.ClientApp, tokens identity.TokenProvider, logger *logger.Logger) (RemoteClient, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout).
		SetHeader("User-Agent", userAgentPrefix+appCfg.Version)

	return &httpRemoteClient{
		client:  client,
		tokens:  tokens,
		timeout: adapterCfg.RequestTimeout,
		logger:  logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// PathEscape escapes a single path segment.
func PathEscape(segment string) string {
	return url.PathEscape(segment)
}

// Call implements [RemoteClient].
func (h *httpRemoteClient) Call(ctx context.Context, req Request) (Response, error) {
	log := logger.FromContext(ctx)

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	r, err := h.authedRequest(ctx)
	if err != nil {
		return Response{}, err
	}
	if req.Body != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		log.Debug().Err(err).
			Str("func", "httpRemoteClient.Call").
			Str("method", req.Method).
			Str("path", req.Path).
			Msg("remote call failed")
		return Response{}, fmt.Errorf("%w: %s %s: %w", ErrNetwork, req.Method, req.Path, err)
	}

	if err = mapHTTPError(resp); err != nil {
		log.Debug().Err(err).
			Str("func", "httpRemoteClient.Call").
			Str("method", req.Method).
			Str("path", req.Path).
			Int("status", resp.StatusCode()).
			Msg("remote call returned error status")
		return Response{}, err
	}

	return Response{StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
}

// authedRequest attaches a freshly obtained identity token. Without a
// signed-in identity the request goes out unauthenticated and the remote
// store answers 401.
func (h *httpRemoteClient) authedRequest(ctx context.Context) (*resty.Request, error) {
	req := h.client.R().SetContext(ctx)
	if h.tokens == nil {
		return req, nil
	}

	token, err := h.tokens.IDToken(ctx)
	switch {
	case err == nil:
		req.SetAuthToken(token)
	case errors.Is(err, identity.ErrNoIdentity), errors.Is(err, identity.ErrSessionRevoked):
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "httpRemoteClient.authedRequest").
			Msg("calling remote store without identity token")
	default:
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	return req, nil
}
