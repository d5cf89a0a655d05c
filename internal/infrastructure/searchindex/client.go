package searchindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/config"
	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/domain/repository"
	"github.com/estate-backoffice/internal/pkg/errors"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	collection string
	logger     *zap.Logger
}

// NewClient creates the hosted search collection client.
func NewClient(cfg *config.SearchConfig, logger *zap.Logger) repository.SearchRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		logger:     logger,
	}
}

// UpsertDocument creates or replaces the document keyed by doc.ID.
func (c *client) UpsertDocument(ctx context.Context, doc *domain.ListingDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		c.logger.Error("Failed to marshal search document", zap.Error(err))
		return errors.ErrSearchIndexError
	}

	url := fmt.Sprintf("%s/collections/%s/documents?action=upsert", c.baseURL, c.collection)
	return c.do(ctx, http.MethodPost, url, bytes.NewReader(payload))
}

// DeleteDocument removes the document from the collection. A 404 from the
// index counts as success: the desired state is already reached.
func (c *client) DeleteDocument(ctx context.Context, documentID string) error {
	url := fmt.Sprintf("%s/collections/%s/documents/%s", c.baseURL, c.collection, documentID)

	err := c.do(ctx, http.MethodDelete, url, nil)
	if err == errNotFoundStatus {
		return nil
	}
	return err
}

var errNotFoundStatus = errors.New("SEARCH_DOCUMENT_NOT_FOUND", "Document not found in index", http.StatusNotFound)

func (c *client) do(ctx context.Context, method, url string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		c.logger.Error("Failed to create search index request", zap.Error(err))
		return errors.ErrSearchIndexError
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Search index request failed",
			zap.String("url", url),
			zap.Error(err))
		return errors.ErrSearchIndexError
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errNotFoundStatus
	}
	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		c.logger.Error("Search index returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(respBody)))
		return errors.ErrSearchIndexError
	}

	return nil
}
