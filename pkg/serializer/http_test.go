// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/NVIDIA/nvidia-checker/pkg/defaults"
)

func TestNewHttpReader_Defaults(t *testing.T) {
	r := NewHttpReader()
	if r.UserAgent != HttpReaderUserAgent {
		t.Errorf("UserAgent = %q", r.UserAgent)
	}
	if r.Client == nil {
		t.Fatal("Client is nil")
	}
	if r.Client.Timeout != defaults.HTTPClientTimeout {
		t.Errorf("Timeout = %v", r.Client.Timeout)
	}
	tr, ok := r.Client.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("Transport = %T", r.Client.Transport)
	}
	if tr.TLSHandshakeTimeout != defaults.HTTPTLSHandshakeTimeout {
		t.Errorf("TLSHandshakeTimeout = %v", tr.TLSHandshakeTimeout)
	}
}

func TestNewHttpReader_WithOptions(t *testing.T) {
	custom := &http.Client{}
	r := NewHttpReader(
		WithUserAgent("test-agent/2.0"),
		WithTotalTimeout(3*time.Second),
		WithClient(custom),
	)
	if r.UserAgent != "test-agent/2.0" {
		t.Errorf("UserAgent = %q", r.UserAgent)
	}
	if r.Client != custom {
		t.Error("custom client not used")
	}
	if custom.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v", custom.Timeout)
	}

	r = NewHttpReader(WithUserAgent(""))
	if r.UserAgent != HttpReaderUserAgent {
		t.Errorf("empty user agent should reset to default, got %q", r.UserAgent)
	}
}

func TestHttpReader_ReadWithContext(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("os: Ubuntu\n"))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("a", HttpReaderMaxBodySize+1)))
		case "/boom":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	r := NewHttpReader()
	ctx := context.Background()

	data, err := r.ReadWithContext(ctx, server.URL+"/ok")
	if err != nil {
		t.Fatalf("ReadWithContext() error = %v", err)
	}
	if string(data) != "os: Ubuntu\n" {
		t.Errorf("data = %q", data)
	}
	if gotUA != HttpReaderUserAgent {
		t.Errorf("User-Agent = %q", gotUA)
	}

	for _, p := range []string{"/missing", "/boom", "/big"} {
		if _, err := r.ReadWithContext(ctx, server.URL+p); err == nil {
			t.Errorf("ReadWithContext(%s) expected error", p)
		}
	}
}

func TestHttpReader_ReadWithContext_Errors(t *testing.T) {
	r := NewHttpReader()
	if _, err := r.ReadWithContext(context.Background(), ""); err == nil {
		t.Error("empty url should error")
	}
	if _, err := r.ReadWithContext(context.Background(), "://bad"); err == nil {
		t.Error("invalid url should error")
	}

	r.Client = nil
	if _, err := r.ReadWithContext(context.Background(), "http://example.com"); err == nil {
		t.Error("nil client should error")
	}
}

func TestHttpReader_ReadWithContext_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewHttpReader().ReadWithContext(ctx, server.URL); err == nil {
		t.Error("expected error for canceled context")
	}
}
