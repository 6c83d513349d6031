package boc

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/etnz/acb"
	"github.com/golang/glog"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// jget performs an HTTP GET request to the given address and decodes the
// JSON response body into a generic value suitable for jsonpath.
func jget(ctx context.Context, client *http.Client, addr string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	glog.V(1).Infof("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: cannot http GET %v%v: %v", acb.ErrRateUnavailable, req.URL.Host, req.URL.Path, resp.Status)
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(content, &v); err != nil {
		return nil, fmt.Errorf("invalid json from %v%v: %w", req.URL.Host, req.URL.Path, err)
	}
	return v, nil
}
