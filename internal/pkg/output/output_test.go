package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tegorov/flipt/internal/pkg/analytics"
	"github.com/tegorov/flipt/internal/pkg/analyticsclient"
)

func TestMarshalJSONPretty(t *testing.T) {
	v := map[string]int{"a": 1}

	compact, err := MarshalJSONPretty(v, false)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(compact))

	pretty, err := MarshalJSONPretty(v, true)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(pretty))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, analytics.EmptySeries(), false))
	assert.Equal(t, "{\"timestamps\":[],\"values\":[]}\n", buf.String())

	assert.Error(t, WriteJSON(&buf, make(chan int), false))
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"no flag", fmt.Errorf("query: %w", analytics.ErrNoFlag), ExitValidationError},
		{"no namespace", analytics.ErrNoNamespace, ExitValidationError},
		{"not found", &analyticsclient.StatusError{StatusCode: http.StatusNotFound}, ExitNotFoundError},
		{"bad request", &analyticsclient.StatusError{StatusCode: http.StatusBadRequest}, ExitValidationError},
		{"server error", &analyticsclient.StatusError{StatusCode: http.StatusBadGateway}, ExitConnectionError},
		{"timeout", context.DeadlineExceeded, ExitConnectionError},
		{"canceled", fmt.Errorf("request: %w", context.Canceled), ExitGeneralError},
		{"other", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFor(tt.err))
		})
	}
}

func TestExitCodeFor_DialFailure(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	client, err := analyticsclient.New(analyticsclient.Config{
		Address: "http://" + addr,
		Timeout: time.Second,
		Retries: 0,
	})
	require.NoError(t, err)

	_, err = client.GetFlagEvaluationsCount(context.Background(), analytics.Query{
		NamespaceKey: "default",
		FlagKey:      "checkout",
		From:         "2024-03-01 06:00:00",
		To:           "2024-03-01 07:00:00",
	})
	require.Error(t, err)
	assert.Equal(t, ExitConnectionError, ExitCodeFor(err))

	var buf bytes.Buffer
	assert.Equal(t, ExitConnectionError, WriteError(&buf, err))
	assert.Contains(t, buf.String(), `"code":"UNAVAILABLE"`)
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	code := WriteError(&buf, analytics.ErrNoFlag)

	assert.Equal(t, ExitValidationError, code)
	assert.JSONEq(t, `{"error":"no flag selected","code":"INVALID_ARGUMENT"}`, buf.String())

	buf.Reset()
	assert.Equal(t, ExitSuccess, WriteError(&buf, nil))
	assert.Empty(t, buf.String())
}
