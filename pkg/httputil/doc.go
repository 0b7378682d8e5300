// Package httputil downloads edge lists served over HTTP.
//
// Public graph datasets are usually published as plain files on a web
// server. [Fetch] retrieves such a file with a bounded timeout, retrying
// transient failures (connection errors and 5xx responses) with
// exponential backoff via [Retry]. A 404 is reported as a missing file so
// the CLI treats a bad URL the same as a bad local path.
//
// # Usage
//
//	if httputil.IsRemote(path) {
//	    data, err := httputil.Fetch(ctx, nil, path)
//	    ...
//	}
//
// # Retry
//
// [Retry] only retries errors wrapped in [RetryableError]; any other error
// is returned immediately:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    ...
//	})
package httputil
