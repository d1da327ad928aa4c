package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/apperrors"
	"github.com/ndewijer/Holdings-Reconciler-Backend/internal/model"
)

// previewPayload is what a preview token carries between simulate and commit.
type previewPayload struct {
	UserID      string                      `json:"userId"`
	Matches     []model.MatchedUpdate       `json:"matches"`
	NewHoldings []model.NewHoldingCandidate `json:"newHoldings"`
}

// PreviewSealer encrypts and signs classification results so the client can hand them
// back on commit without the server keeping session state.
type PreviewSealer struct {
	key *fernet.Key
	ttl time.Duration
}

// NewPreviewSealer creates a sealer from a base64 fernet key.
// An empty key generates a random one.
func NewPreviewSealer(encodedKey string, ttl time.Duration) (*PreviewSealer, error) {
	var key *fernet.Key
	if encodedKey == "" {
		key = new(fernet.Key)
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate preview key: %w", err)
		}
	} else {
		var err error
		if key, err = fernet.DecodeKey(encodedKey); err != nil {
			return nil, fmt.Errorf("failed to decode preview key: %w", err)
		}
	}
	return &PreviewSealer{key: key, ttl: ttl}, nil
}

// TTL is how long a sealed token stays valid.
func (s *PreviewSealer) TTL() time.Duration {
	return s.ttl
}

func (s *PreviewSealer) seal(payload previewPayload) (string, error) {
	msg, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode preview: %w", err)
	}
	tok, err := fernet.EncryptAndSign(msg, s.key)
	if err != nil {
		return "", fmt.Errorf("failed to seal preview: %w", err)
	}
	return string(tok), nil
}

func (s *PreviewSealer) open(token string) (previewPayload, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), s.ttl, []*fernet.Key{s.key})
	if msg == nil {
		return previewPayload{}, apperrors.ErrInvalidPreviewToken
	}
	var payload previewPayload
	if err := json.Unmarshal(msg, &payload); err != nil {
		return previewPayload{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidPreviewToken, err)
	}
	return payload, nil
}
