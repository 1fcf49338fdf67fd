package shopify

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"feedbridge/internal/logger"
)

// FetchError is returned when the Shopify API answers with a non-2xx
// status. The upstream status and body are preserved for the caller.
type FetchError struct {
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("shopify API request failed: %d - %s", e.StatusCode, e.Body)
}

type Client struct {
	sourceURL   string
	accessToken string
	apiVersion  string
	httpClient  *http.Client
	logger      *logger.Logger
}

func NewClient(sourceURL, accessToken, apiVersion string, logger *logger.Logger) *Client {
	return &Client{
		sourceURL:   normalizeSourceURL(sourceURL),
		accessToken: accessToken,
		apiVersion:  apiVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// GetProducts fetches a page of products from the source shop.
func (c *Client) GetProducts(limit int, pageInfo string) (*ProductsResponse, error) {
	url := fmt.Sprintf("%s/admin/api/%s/products.json", c.sourceURL, c.apiVersion)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Add authentication header
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	// Add query parameters
	q := req.URL.Query()
	q.Set("limit", fmt.Sprintf("%d", limit))
	if pageInfo != "" {
		q.Set("page_info", pageInfo)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &FetchError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var productsResp ProductsResponse
	if err := json.NewDecoder(resp.Body).Decode(&productsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// The API carries the next-page cursor in the Link response header,
	// not the body.
	if next := nextPageInfo(resp.Header.Get("Link")); next != "" {
		productsResp.NextPageInfo = &next
	}

	return &productsResp, nil
}

// nextPageInfo extracts the page_info cursor from the rel="next" entry
// of a Link header. Empty when there is no next page.
func nextPageInfo(linkHeader string) string {
	for _, part := range strings.Split(linkHeader, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}

		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start == -1 || end <= start {
			continue
		}

		u, err := url.Parse(part[start+1 : end])
		if err != nil {
			continue
		}
		return u.Query().Get("page_info")
	}
	return ""
}

// GetAllProducts walks the paginated products endpoint until exhausted.
func (c *Client) GetAllProducts() ([]Product, error) {
	var products []Product
	pageInfo := ""
	limit := 250

	for {
		resp, err := c.GetProducts(limit, pageInfo)
		if err != nil {
			return nil, err
		}

		products = append(products, resp.Products...)

		if resp.NextPageInfo == nil {
			break
		}
		pageInfo = *resp.NextPageInfo
	}

	return products, nil
}

func normalizeSourceURL(sourceURL string) string {
	url := strings.TrimSuffix(sourceURL, "/")
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return url
}
