package util

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/torrejonv/movecall/errors"
	"go.uber.org/atomic"
)

// httpRequestTimeout is applied when the context carries no deadline.
var httpRequestTimeout = atomic.NewDuration(60 * time.Second)

// SetDefaultHTTPTimeout changes the timeout used for requests whose context has no deadline.
func SetDefaultHTTPTimeout(d time.Duration) {
	if d > 0 {
		httpRequestTimeout.Store(d)
	}
}

// DoHTTPRequest performs an HTTP GET or POST request and returns the response body as bytes.
// Uses GET by default, switches to a JSON POST if requestBody is provided.
func DoHTTPRequest(ctx context.Context, url string, requestBody ...[]byte) ([]byte, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancelFn context.CancelFunc

		ctx, cancelFn = context.WithTimeout(ctx, httpRequestTimeout.Load())
		defer cancelFn()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("failed to create http request for [%s]", url, err)
	}

	// If there is a request body assume we want a POST and write request body
	if len(requestBody) > 0 && requestBody[0] != nil {
		req.Body = io.NopCloser(bytes.NewReader(requestBody[0]))
		req.ContentLength = int64(len(requestBody[0]))
		req.Method = http.MethodPost
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, transportError(ctx, url, err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(ctx, url, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		errFn := errors.NewServiceError
		switch resp.StatusCode {
		case http.StatusNotFound:
			errFn = errors.NewNotFoundError
		case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
			errFn = errors.NewServiceUnavailableError
		}

		return nil, errFn("http request [%s] returned status code [%d] with body [%s]", url, resp.StatusCode, string(body))
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		return nil, errors.NewServiceError("http request [%s] returned HTML - assume bad URL", url)
	}

	return body, nil
}

func transportError(ctx context.Context, url string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return errors.NewNetworkTimeoutError("http request [%s] timed out", url, err)
	case errors.Is(err, context.Canceled):
		return errors.NewContextCanceledError("http request [%s] canceled", url, err)
	case errors.Is(err, syscall.ECONNREFUSED):
		return errors.NewNetworkConnectionRefusedError("http request [%s] connection refused", url, err)
	default:
		return errors.NewNetworkError("failed to do http request [%s]", url, err)
	}
}
