package tradermade

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// jwget performs an HTTP GET and unmarshals the JSON response body into
// data. The error message never echoes the full URL: the query string
// carries the API key.
func (c *Client) jwget(ctx context.Context, addr string, data interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := c.http().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, data)
}
