package adapter

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/printzz/printzz/internal/config"
	"github.com/printzz/printzz/internal/logger"
	"github.com/printzz/printzz/internal/utils"
	"github.com/printzz/printzz/models"
)

const printerSignatureHeader = "X-Printer-Signature"

// maxErrorBody bounds how much of a failed download is read for the message.
const maxErrorBody = 4 << 10

type httpServerAdapter struct {
	client *utils.HTTPClient

	printerKey string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the HTTP implementation of [ServerAdapter].
// HTTPAddress may omit the scheme, http:// is assumed.
func NewHTTPServerAdapter(cfg config.AgentAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(cfg.RequestTimeout)
	client.SetBaseURL(baseURL)

	return &httpServerAdapter{client: client, printerKey: cfg.PrinterKey, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register POSTs the credentials to /api/user/register and keeps the
// returned bearer token.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	return h.authenticate(ctx, "/api/user/register", user)
}

// Login POSTs the credentials to /api/user/login and keeps the returned
// bearer token.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.User, error) {
	return h.authenticate(ctx, "/api/user/login", user)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, user models.User) (models.User, error) {
	var identity models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&identity).
		Post(path)
	if err != nil {
		return models.User{}, fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("%s parse bearer token: %w", path, err)
	}

	h.SetToken(token)
	return identity, nil
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	var user models.User

	resp, err := h.authedRequest(ctx).SetResult(&user).Get("/api/user/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Submit uploads content as a multipart form together with the print
// settings.
func (h *httpServerAdapter) Submit(ctx context.Context, req models.SubmitRequest, content io.Reader) (string, error) {
	var submitted models.SubmitResponse

	resp, err := h.authedRequest(ctx).
		SetFormData(map[string]string{
			"printer_id":   req.PrinterID,
			"copies":       strconv.Itoa(req.Settings.Copies),
			"double_sided": strconv.Itoa(int(req.Settings.DoubleSided)),
			"color":        strconv.FormatBool(req.Settings.Color),
		}).
		SetFileReader("file", req.FileName, content).
		SetResult(&submitted).
		Post("/api/documents/submit")
	if err != nil {
		return "", fmt.Errorf("submit request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	h.logger.Debug().Str("doc_id", submitted.DocID).Str("printer_id", req.PrinterID).Msg("document submitted")
	return submitted.DocID, nil
}

func (h *httpServerAdapter) ListDocuments(ctx context.Context) ([]models.Document, error) {
	var list models.DocumentsResponse

	resp, err := h.authedRequest(ctx).SetResult(&list).Get("/api/documents")
	if err != nil {
		return nil, fmt.Errorf("list documents request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return list.Documents, nil
}

func (h *httpServerAdapter) Cancel(ctx context.Context, printerID, docID string) error {
	req := h.authedRequest(ctx).SetPathParam("doc_id", docID)
	if printerID != "" {
		req.SetQueryParam("printer_id", printerID)
	}

	resp, err := req.Delete("/api/documents/{doc_id}")
	if err != nil {
		return fmt.Errorf("cancel request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) GetSettings(ctx context.Context, printerID string) (models.Document, bool, error) {
	var envelope models.StatusResponse

	resp, err := h.printerRequest(ctx, printerID).
		SetResult(&envelope).
		Get("/api/printer/settings")
	if err != nil {
		return models.Document{}, false, fmt.Errorf("settings request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Document{}, false, err
	}

	if !envelope.Status || envelope.Data == nil {
		return models.Document{}, false, nil
	}
	return *envelope.Data, true, nil
}

// Download streams the body straight into w without buffering it.
func (h *httpServerAdapter) Download(ctx context.Context, printerID string, w io.Writer) (models.DownloadInfo, error) {
	resp, err := h.printerRequest(ctx, printerID).
		SetDoNotParseResponse(true).
		Get("/api/printer/document")
	if err != nil {
		return models.DownloadInfo{}, fmt.Errorf("download request: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(body, maxErrorBody))
		return models.DownloadInfo{}, mapStatusError(resp.StatusCode(), msg)
	}

	info := models.DownloadInfo{
		DocID:     resp.Header().Get(models.HeaderDocID),
		Extension: resp.Header().Get(models.HeaderDocExt),
	}
	info.Size, err = io.Copy(w, body)
	if err != nil {
		return info, fmt.Errorf("download copy: %w", err)
	}
	return info, nil
}

func (h *httpServerAdapter) Pop(ctx context.Context, printerID, docID string) error {
	req := h.printerRequest(ctx, printerID)
	if docID != "" {
		req.SetQueryParam("doc_id", docID)
	}

	var envelope models.StatusResponse
	resp, err := req.SetResult(&envelope).Get("/api/printer/pop")
	if err != nil {
		return fmt.Errorf("pop request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}
	if !envelope.Status {
		return fmt.Errorf("pop rejected: %s", envelope.Error)
	}

	return nil
}

func (h *httpServerAdapter) ReportProgress(ctx context.Context, req models.ProgressRequest) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeaders(h.signatureHeaders(req.PrinterID)).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/printer/progress")
	if err != nil {
		return fmt.Errorf("progress request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.VersionResponse, error) {
	var version models.VersionResponse

	resp, err := h.client.R().SetContext(ctx).SetResult(&version).Get("/api/version")
	if err != nil {
		return models.VersionResponse{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VersionResponse{}, err
	}

	return version, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func (h *httpServerAdapter) printerRequest(ctx context.Context, printerID string) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetQueryParam("printer_id", printerID).
		SetHeaders(h.signatureHeaders(printerID))
}

// signatureHeaders signs the printer id when a printer key is configured.
func (h *httpServerAdapter) signatureHeaders(printerID string) map[string]string {
	if h.printerKey == "" {
		return map[string]string{}
	}
	return map[string]string{printerSignatureHeader: utils.HashString(printerID, h.printerKey)}
}
