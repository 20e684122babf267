package icons8

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"icons8dl/pkg/errors"
	"icons8dl/pkg/logger"
)

// mockRoundTripper intercepts requests without a listener
type mockRoundTripper struct {
	handler func(req *http.Request) (*http.Response, error)
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.handler(req)
}

func newResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func TestFetchPage(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success":true,"icons":[{"id":"1","name":"Home"}]}`)
	}))
	defer server.Close()

	client := NewClient(5*time.Second, "icons8dl-test", logger.NewNopLogger())
	body, page, err := client.FetchPage(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "icons8dl-test", gotUA)
	assert.JSONEq(t, `{"success":true,"icons":[{"id":"1","name":"Home"}]}`, string(body))
	require.Len(t, page.Icons, 1)
	assert.Equal(t, "Home", page.Icons[0].Name)
}

func TestFetchPageErrors(t *testing.T) {
	tests := []struct {
		name     string
		handler  func(req *http.Request) (*http.Response, error)
		wantType errors.ErrorType
		wantCode int
	}{
		{
			name:     "server error",
			handler:  func(*http.Request) (*http.Response, error) { return newResponse(500, "oops"), nil },
			wantType: errors.ErrorTypeHTTPStatus,
			wantCode: 500,
		},
		{
			name:     "not found",
			handler:  func(*http.Request) (*http.Response, error) { return newResponse(404, ""), nil },
			wantType: errors.ErrorTypeHTTPStatus,
			wantCode: 404,
		},
		{
			name:     "connection refused",
			handler:  func(*http.Request) (*http.Response, error) { return nil, io.ErrUnexpectedEOF },
			wantType: errors.ErrorTypeNetwork,
		},
		{
			name:     "schema",
			handler:  func(*http.Request) (*http.Response, error) { return newResponse(200, `{"success":true}`), nil },
			wantType: errors.ErrorTypeSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := logger.NewTestLogger()
			client := NewClientWithHTTP(&http.Client{Transport: &mockRoundTripper{handler: tt.handler}}, "", log)

			_, _, err := client.FetchPage(context.Background(), "http://icons.test/page")
			require.Error(t, err)
			assert.Equal(t, tt.wantType, errors.TypeOf(err))

			if tt.wantCode != 0 {
				var typed *errors.Error
				require.ErrorAs(t, err, &typed)
				assert.Equal(t, tt.wantCode, typed.Code)
			}
		})
	}
}

func TestFetchPageTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := NewClient(50*time.Millisecond, "", nil)
	_, _, err := client.FetchPage(context.Background(), server.URL)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeTimeout, errors.TypeOf(err))
}

func TestSchemaErrorLogsBodyPreview(t *testing.T) {
	log := logger.NewTestLogger()
	long := `{"success":true,"icons":[{"id":"1"}],"pad":"` + string(bytes.Repeat([]byte("x"), 300)) + `"}`
	client := NewClientWithHTTP(&http.Client{Transport: &mockRoundTripper{handler: func(*http.Request) (*http.Response, error) {
		return newResponse(200, long), nil
	}}}, "", log)

	_, _, err := client.FetchPage(context.Background(), "http://icons.test/page")
	require.Error(t, err)

	errs := log.GetMessagesByLevel("ERROR")
	require.Len(t, errs, 1)
	preview := errs[0].Fields["body_preview"].(string)
	assert.Len(t, preview, 203)
}

func TestOpenImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") == "missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("\x89PNG fake"))
	}))
	defer server.Close()

	client := NewClient(5*time.Second, "", nil)

	rc, err := client.OpenImage(context.Background(), ImageURL(server.URL, "abc", 48))
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG fake", string(data))

	_, err = client.OpenImage(context.Background(), ImageURL(server.URL, "missing", 48))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeHTTPStatus))
}
