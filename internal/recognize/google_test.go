package recognize

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testClient(url string) *Client {
	c := NewClient("en-US")
	c.Endpoint = url
	return c
}

func samples(n int) []float32 { return make([]float32, n) }

func TestRecognizeExtractsTranscript(t *testing.T) {
	var gotContentType, gotQuery string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotQuery = r.URL.RawQuery
		gotBody, _ = io.ReadAll(r.Body)
		fmt.Fprintln(w, `{"result":[]}`)
		fmt.Fprintln(w, `{"result":[{"alternative":[{"transcript":"hello world","confidence":0.93}],"final":true}],"result_index":0}`)
	}))
	defer srv.Close()

	text, err := testClient(srv.URL).Recognize(context.Background(), samples(160), 16000)

	require.NoError(t, err)
	require.Equal(t, "hello world", text)
	require.Equal(t, "audio/l16; rate=16000; channels=1", gotContentType)
	require.Contains(t, gotQuery, "lang=en-US")
	require.Len(t, gotBody, 320, "two bytes per sample")
}

func TestRecognizeEmptyResultIsNotRecognized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintln(w, `{"result":[]}`)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Recognize(context.Background(), samples(160), 16000)

	require.ErrorIs(t, err, ErrNotRecognized)
}

func TestRecognizeServiceErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Recognize(context.Background(), samples(160), 16000)

	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotRecognized)
}

func TestRecognizeNoAudioShortCircuits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no request expected for empty audio")
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Recognize(context.Background(), nil, 16000)

	require.ErrorIs(t, err, ErrNotRecognized)
}

func TestParseTranscriptSkipsBlankAndEmptyLines(t *testing.T) {
	body := "\n{\"result\":[]}\n\n{\"result\":[{\"alternative\":[{\"transcript\":\"ok\"}]}]}\n"

	text, err := parseTranscript(body)

	require.NoError(t, err)
	require.Equal(t, "ok", text)
}

func TestEncodeL16ClampsAndScales(t *testing.T) {
	out := encodeL16([]float32{0, 1, -1, 2, -2})

	require.Len(t, out, 10)
	// silence, then full-scale positive little-endian
	require.Equal(t, []byte{0x00, 0x00, 0xFF, 0x7F}, out[:4])
	// out-of-range input clamps to full scale
	require.Equal(t, out[2:4], out[6:8])
	require.Equal(t, out[4:6], out[8:10])
}
