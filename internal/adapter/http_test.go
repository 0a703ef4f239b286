// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printzz/printzz/internal/config"
	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/utils"
	"github.com/printzz/printzz/models"
)

const (
	testPrinter = "lab-1"
	testDocID   = "9b7e3c1a-4d2f-4e8b-9c6a-1f0e2d3c4b5a"
)

func newTestAdapter(t *testing.T, serverURL, printerKey string) *httpServerAdapter {
	t.Helper()
	a, err := NewHTTPServerAdapter(config.AgentAdapter{
		HTTPAddress:    serverURL,
		RequestTimeout: 5 * time.Second,
		PrinterKey:     printerKey,
	}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── NewHTTPServerAdapter ────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"localhost:8080", "http://localhost:8080", false},
		{"https://print.example.com/", "https://print.example.com", false},
		{"  http://10.0.0.1:80  ", "http://10.0.0.1:80", false},
		{"", "", true},
		{"http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_EmptyAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.AgentAdapter{}, logger.Nop())

	assert.ErrorIs(t, err, ErrEmptyAddress)
}

// ── Register / Login ────────────────────────────────────────────────────────

func TestRegister_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/user/register", r.URL.Path)

		var user models.User
		require.NoError(t, json.NewDecoder(r.Body).Decode(&user))
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "secret", user.Password)

		w.Header().Set("Authorization", "Bearer abc.def.ghi")
		writeJSON(t, w, http.StatusCreated, models.User{UserID: "u-1", Username: "alice"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	got, err := a.Register(context.Background(), models.User{Username: "alice", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, models.User{UserID: "u-1", Username: "alice"}, got)
	assert.Equal(t, "abc.def.ghi", a.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "user already exists", http.StatusConflict)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.Register(context.Background(), models.User{Username: "alice", Password: "x"})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "user already exists")
	assert.Empty(t, a.Token())
}

func TestLogin_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.User{UserID: "u-1", Username: "alice"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.Login(context.Background(), models.User{Username: "alice", Password: "x"})

	assert.Error(t, err)
	assert.Empty(t, a.Token())
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid username or password", http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	_, err := a.Login(context.Background(), models.User{Username: "alice", Password: "x"})

	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── user routes ─────────────────────────────────────────────────────────────

func TestMe_SendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, models.User{UserID: "u-1", Username: "alice"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	a.SetToken(" tok ")
	got, err := a.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestSubmit_Multipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/documents/submit", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, testPrinter, r.FormValue("printer_id"))
		assert.Equal(t, "2", r.FormValue("copies"))
		assert.Equal(t, "1", r.FormValue("double_sided"))
		assert.Equal(t, "false", r.FormValue("color"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, _ := io.ReadAll(file)
		assert.Equal(t, "report.pdf", header.Filename)
		assert.Equal(t, "%PDF-", string(content))

		writeJSON(t, w, http.StatusCreated, models.SubmitResponse{DocID: testDocID})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	docID, err := a.Submit(context.Background(), models.SubmitRequest{
		PrinterID: testPrinter,
		FileName:  "report.pdf",
		Settings:  models.PrintSettings{Copies: 2, DoubleSided: models.DoubleSidedLongEdge, Color: false},
	}, bytes.NewReader([]byte("%PDF-")))

	require.NoError(t, err)
	assert.Equal(t, testDocID, docID)
}

func TestSubmit_Errors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusConflict, ErrConflict},
		{http.StatusRequestEntityTooLarge, ErrTooLarge},
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusInternalServerError, ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL, "")
			_, err := a.Submit(context.Background(), models.SubmitRequest{PrinterID: testPrinter, FileName: "a.pdf"}, bytes.NewReader(nil))

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestListDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/documents", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.DocumentsResponse{
			Documents: []models.Document{{DocID: testDocID, PrinterID: testPrinter}},
			Length:    1,
		})
	}))
	defer srv.Close()

	docs, err := newTestAdapter(t, srv.URL, "").ListDocuments(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, testDocID, docs[0].DocID)
}

func TestCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/documents/"+testDocID, r.URL.Path)
		assert.Equal(t, testPrinter, r.URL.Query().Get("printer_id"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL, "").Cancel(context.Background(), testPrinter, testDocID)

	assert.NoError(t, err)
}

func TestCancel_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("printer_id"))
		http.Error(w, "document belongs to another user", http.StatusForbidden)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL, "").Cancel(context.Background(), "", testDocID)

	assert.ErrorIs(t, err, ErrForbidden)
}

// ── printer routes ──────────────────────────────────────────────────────────

func TestGetSettings(t *testing.T) {
	doc := models.Document{DocID: testDocID, Extension: "pdf", Settings: models.DefaultPrintSettings()}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/printer/settings", r.URL.Path)
		if r.URL.Query().Get("printer_id") == "empty" {
			writeJSON(t, w, http.StatusOK, models.StatusResponse{Status: false})
			return
		}
		writeJSON(t, w, http.StatusOK, models.StatusResponse{Status: true, Data: &doc})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")

	got, ok, err := a.GetSettings(context.Background(), testPrinter)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, doc, got)

	_, ok, err = a.GetSettings(context.Background(), "empty")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPrinterRequests_Signed(t *testing.T) {
	const key = "printer-key"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, utils.HashString(testPrinter, key), r.Header.Get(printerSignatureHeader))
		writeJSON(t, w, http.StatusOK, models.StatusResponse{Status: true})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, key)

	require.NoError(t, a.Pop(context.Background(), testPrinter, testDocID))
	require.NoError(t, a.ReportProgress(context.Background(), models.ProgressRequest{PrinterID: testPrinter, DocID: testDocID, Progress: 1}))
}

func TestPrinterRequests_UnsignedWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(printerSignatureHeader))
		writeJSON(t, w, http.StatusOK, models.StatusResponse{Status: false})
	}))
	defer srv.Close()

	_, ok, err := newTestAdapter(t, srv.URL, "").GetSettings(context.Background(), testPrinter)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDownload_Streams(t *testing.T) {
	payload := bytes.Repeat([]byte("0123456789"), 1000)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/printer/document", r.URL.Path)
		assert.Equal(t, testPrinter, r.URL.Query().Get("printer_id"))
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set(models.HeaderDocID, testDocID)
		w.Header().Set(models.HeaderDocExt, "pdf")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	var buf bytes.Buffer
	info, err := newTestAdapter(t, srv.URL, "").Download(context.Background(), testPrinter, &buf)

	require.NoError(t, err)
	assert.Equal(t, models.DownloadInfo{DocID: testDocID, Extension: "pdf", Size: int64(len(payload))}, info)
	assert.Equal(t, payload, buf.Bytes())
}

func TestDownload_EmptySlot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, models.StatusResponse{Status: false, Error: "printer queue is empty"})
	}))
	defer srv.Close()

	var buf bytes.Buffer
	_, err := newTestAdapter(t, srv.URL, "").Download(context.Background(), testPrinter, &buf)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "printer queue is empty")
	assert.Zero(t, buf.Len())
}

func TestPop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/printer/pop", r.URL.Path)
		if r.URL.Query().Get("doc_id") != testDocID {
			writeJSON(t, w, http.StatusNotFound, models.StatusResponse{Status: false, Error: "document not found"})
			return
		}
		writeJSON(t, w, http.StatusOK, models.StatusResponse{Status: true})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")

	assert.NoError(t, a.Pop(context.Background(), testPrinter, testDocID))

	err := a.Pop(context.Background(), testPrinter, "stale")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPop_StatusFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.StatusResponse{Status: false, Error: "nope"})
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL, "").Pop(context.Background(), testPrinter, "")

	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, models.VersionResponse{Version: "v1.2.3"})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL, "").Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", got.Version)
}

func TestRequest_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestAdapter(t, srv.URL, "").Version(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// ── mapStatusError ──────────────────────────────────────────────────────────

func TestMapStatusError(t *testing.T) {
	assert.NoError(t, mapStatusError(http.StatusNoContent, nil))

	err := mapStatusError(http.StatusBadGateway, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad Gateway")

	err = mapStatusError(http.StatusNotFound, []byte(`{"status":false,"error":"printer queue is empty"}`))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "not found: printer queue is empty", err.Error())
}
